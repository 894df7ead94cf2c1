package naming

import (
	"testing"
	"time"

	"export-orchestrator/core/models"
)

func testContext() Context {
	return Context{
		Profile: &models.ExportProfile{Name: "Print Ready PDF"},
		Now:     time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC),
	}
}

func TestApplyVariableOrder(t *testing.T) {
	convention := models.NamingConvention{
		Variables: models.NamingVariables{ProfileName: true, Date: true, Time: true},
		Separator: "_",
		CaseStyle: models.CaseOriginal,
	}

	got := Apply("poster", convention, testContext())
	want := "poster_Print_Ready_PDF_2025-03-14_09-26-53"
	if got != want {
		t.Errorf("Apply() = %q, want %q", got, want)
	}
}

func TestApplyCaseStyles(t *testing.T) {
	tests := []struct {
		name      string
		caseStyle models.CaseStyle
		base      string
		want      string
	}{
		{"original", models.CaseOriginal, "My Poster", "My Poster"},
		{"uppercase", models.CaseUppercase, "My Poster", "MY POSTER"},
		{"lowercase", models.CaseLowercase, "My Poster", "my poster"},
		{"title case", models.CaseTitleCase, "my POSTER design", "My Poster Design"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			convention := models.NamingConvention{CaseStyle: tt.caseStyle}
			if got := Apply(tt.base, convention, testContext()); got != tt.want {
				t.Errorf("Apply() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestApplyInvalidCharactersAndSpaces(t *testing.T) {
	convention := models.NamingConvention{
		CaseStyle:                   models.CaseOriginal,
		InvalidCharacterReplacement: "-",
		ReplaceSpaces:               true,
	}

	got := Apply("poster (final?) v2", convention, testContext())
	want := "poster_-final--_v2"
	if got != want {
		t.Errorf("Apply() = %q, want %q", got, want)
	}
}

// Same inputs must always yield the same name.
func TestApplyDeterministic(t *testing.T) {
	convention := models.NamingConvention{
		Variables:                   models.NamingVariables{ProfileName: true, Date: true, Time: true},
		Separator:                   "-",
		CaseStyle:                   models.CaseLowercase,
		ReplaceSpaces:               true,
		InvalidCharacterReplacement: "_",
	}
	ctx := testContext()

	first := Apply("Tarot Deck 22", convention, ctx)
	second := Apply("Tarot Deck 22", convention, ctx)
	if first != second {
		t.Errorf("Apply() not deterministic: %q != %q", first, second)
	}
}
