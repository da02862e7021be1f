package validation

import (
	"regexp"
	"unicode/utf8"
)

// Validation rule patterns
var (
	// SubjectCodePattern matches catalogue codes such as EGS11101 or HUM12302
	SubjectCodePattern = `^[A-Z0-9]{3,20}$`

	UsernamePattern = `^[a-zA-Z0-9_.\-]{3,50}$`

	PasswordMinLength = 6

	NameMinLength = 2
	NameMaxLength = 255

	SemesterMin = 1
	SemesterMax = 12
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	SubjectCode *regexp.Regexp
	Username    *regexp.Regexp
}{
	SubjectCode: regexp.MustCompile(SubjectCodePattern),
	Username:    regexp.MustCompile(UsernamePattern),
}

// StringValidation checks a string against length and pattern rules.
// Lengths are counted in runes so Arabic text is measured correctly.
type StringValidation struct {
	Value    string
	MinLen   int
	MaxLen   int
	Required bool
	Pattern  *regexp.Regexp
}

// NewStringValidation creates a required string validation
func NewStringValidation(value string) *StringValidation {
	return &StringValidation{
		Value:    value,
		Required: true,
	}
}

func (v *StringValidation) WithMinLength(min int) *StringValidation {
	v.MinLen = min
	return v
}

func (v *StringValidation) WithMaxLength(max int) *StringValidation {
	v.MaxLen = max
	return v
}

func (v *StringValidation) WithPattern(pattern *regexp.Regexp) *StringValidation {
	v.Pattern = pattern
	return v
}

func (v *StringValidation) WithRequired(required bool) *StringValidation {
	v.Required = required
	return v
}

// Validate performs validation
func (v *StringValidation) Validate() bool {
	if v.Value == "" {
		return !v.Required
	}

	length := utf8.RuneCountInString(v.Value)
	if v.MinLen > 0 && length < v.MinLen {
		return false
	}
	if v.MaxLen > 0 && length > v.MaxLen {
		return false
	}

	if v.Pattern != nil && !v.Pattern.MatchString(v.Value) {
		return false
	}

	return true
}

// NumericValidation checks an integer against optional inclusive bounds
type NumericValidation struct {
	Value int
	min   *int
	max   *int
}

func NewNumericValidation(value int) *NumericValidation {
	return &NumericValidation{Value: value}
}

func (v *NumericValidation) WithMin(min int) *NumericValidation {
	v.min = &min
	return v
}

func (v *NumericValidation) WithMax(max int) *NumericValidation {
	v.max = &max
	return v
}

// Validate performs validation
func (v *NumericValidation) Validate() bool {
	if v.min != nil && v.Value < *v.min {
		return false
	}
	if v.max != nil && v.Value > *v.max {
		return false
	}
	return true
}
