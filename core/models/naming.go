package models

// NamingConvention is a deterministic template for deriving output file
// names from job and profile context. Pure configuration.
type NamingConvention struct {
	Pattern   string          `json:"pattern"` // e.g. "{project_name}_{page}_{date}_{profile}"
	Variables NamingVariables `json:"variables"`
	Separator string          `json:"separator"`
	CaseStyle CaseStyle       `json:"case_style"`
	// ReplaceSpaces collapses whitespace runs to a single underscore
	// after all other transforms.
	ReplaceSpaces               bool   `json:"replace_spaces"`
	InvalidCharacterReplacement string `json:"invalid_character_replacement"`
}

// NamingVariables selects which context values are interpolated
type NamingVariables struct {
	ProjectName  bool     `json:"project_name"`
	PageNumber   bool     `json:"page_number"`
	Date         bool     `json:"date"`
	Time         bool     `json:"time"`
	ProfileName  bool     `json:"profile_name"`
	UserName     bool     `json:"user_name"`
	Version      bool     `json:"version"`
	CustomFields []string `json:"custom_fields,omitempty"`
}

// CaseStyle is the letter-casing applied to a generated file name
type CaseStyle string

const (
	CaseOriginal  CaseStyle = "original"
	CaseUppercase CaseStyle = "uppercase"
	CaseLowercase CaseStyle = "lowercase"
	CaseTitleCase CaseStyle = "title_case"
)
