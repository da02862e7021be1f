package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStringValidation(t *testing.T) {
	assert.True(t, NewStringValidation("EGS11101").WithPattern(CompiledPatterns.SubjectCode).Validate())
	assert.False(t, NewStringValidation("egs-11101").WithPattern(CompiledPatterns.SubjectCode).Validate())
	assert.False(t, NewStringValidation("").Validate())
	assert.True(t, NewStringValidation("").WithRequired(false).WithMinLength(3).Validate())

	// "الحسبان" is seven runes but fourteen bytes
	assert.True(t, NewStringValidation("الحسبان").WithMaxLength(7).Validate())
	assert.False(t, NewStringValidation("ا").WithMinLength(NameMinLength).Validate())
}

func TestNumericValidation(t *testing.T) {
	assert.True(t, NewNumericValidation(0).WithMin(0).Validate())
	assert.False(t, NewNumericValidation(-1).WithMin(0).Validate())
	assert.False(t, NewNumericValidation(13).WithMin(SemesterMin).WithMax(SemesterMax).Validate())
	assert.True(t, NewNumericValidation(1).WithMin(SemesterMin).WithMax(SemesterMax).Validate())
	assert.True(t, NewNumericValidation(-100).Validate())
}
