// Package naming derives output file names from a naming convention.
// Apply is a pure function: identical inputs always produce identical
// names, so two runs of the same batch name their outputs the same way.
package naming

import (
	"regexp"
	"strings"
	"time"

	"export-orchestrator/core/models"
)

var (
	profileNameRe = regexp.MustCompile(`[^a-zA-Z0-9]`)
	invalidCharRe = regexp.MustCompile(`[^\w\s-]`)
	spaceRunRe    = regexp.MustCompile(`\s+`)
	wordRe        = regexp.MustCompile(`\w\S*`)
)

// Context carries the values a convention may interpolate. Now is
// supplied by the caller so name generation stays deterministic.
type Context struct {
	Profile *models.ExportProfile
	Now     time.Time
}

// Apply turns a base name into a final file name. The transform order is
// fixed: variables are appended first (profile name, date, time), then
// the case style is applied, then invalid characters are replaced, then
// whitespace runs collapse to underscores when ReplaceSpaces is set.
func Apply(baseName string, convention models.NamingConvention, ctx Context) string {
	fileName := baseName

	if convention.Variables.ProfileName && ctx.Profile != nil {
		safe := profileNameRe.ReplaceAllString(ctx.Profile.Name, "_")
		fileName += convention.Separator + safe
	}

	if convention.Variables.Date {
		fileName += convention.Separator + ctx.Now.UTC().Format("2006-01-02")
	}

	if convention.Variables.Time {
		fileName += convention.Separator + ctx.Now.UTC().Format("15-04-05")
	}

	switch convention.CaseStyle {
	case models.CaseUppercase:
		fileName = strings.ToUpper(fileName)
	case models.CaseLowercase:
		fileName = strings.ToLower(fileName)
	case models.CaseTitleCase:
		fileName = wordRe.ReplaceAllStringFunc(fileName, func(word string) string {
			return strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		})
	}

	if convention.InvalidCharacterReplacement != "" {
		fileName = invalidCharRe.ReplaceAllString(fileName, convention.InvalidCharacterReplacement)
	}

	if convention.ReplaceSpaces {
		fileName = spaceRunRe.ReplaceAllString(fileName, "_")
	}

	return fileName
}
