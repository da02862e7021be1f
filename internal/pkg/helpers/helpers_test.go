package helpers

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func contextWithQuery(query string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+query, nil)
	return c
}

func TestParseLimitParam(t *testing.T) {
	tests := []struct {
		query string
		want  int
	}{
		{"", 5},
		{"limit=3", 3},
		{"limit=0", 5},
		{"limit=-2", 5},
		{"limit=abc", 5},
		{"limit=500", 50},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLimitParam(contextWithQuery(tt.query), "limit", 5, 50), tt.query)
	}
}

func TestParseBoolParam(t *testing.T) {
	assert.True(t, ParseBoolParam(contextWithQuery(""), "active_only", true))
	assert.False(t, ParseBoolParam(contextWithQuery("active_only=false"), "active_only", true))
	assert.True(t, ParseBoolParam(contextWithQuery("active_only=nope"), "active_only", true))
}

func TestParseOptionalInt64Param(t *testing.T) {
	v, ok := ParseOptionalInt64Param(contextWithQuery(""), "subject_id")
	assert.True(t, ok)
	assert.Nil(t, v)

	v, ok = ParseOptionalInt64Param(contextWithQuery("subject_id=12"), "subject_id")
	assert.True(t, ok)
	assert.Equal(t, int64(12), *v)

	_, ok = ParseOptionalInt64Param(contextWithQuery("subject_id=x"), "subject_id")
	assert.False(t, ok)
}

func TestTrimmedOrNil(t *testing.T) {
	blank := "   "
	value := "  Notes "
	assert.Nil(t, TrimmedOrNil(nil))
	assert.Nil(t, TrimmedOrNil(&blank))
	assert.Equal(t, "Notes", *TrimmedOrNil(&value))
}
