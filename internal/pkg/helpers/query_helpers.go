package helpers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// ParseLimitParam reads a positive integer query parameter, clamped to max.
// Missing or invalid values yield def.
func ParseLimitParam(c *gin.Context, key string, def, max int) int {
	raw := c.Query(key)
	if raw == "" {
		return def
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return def
	}
	if max > 0 && limit > max {
		return max
	}
	return limit
}

// ParseBoolParam reads a boolean query parameter, returning def when absent or malformed.
func ParseBoolParam(c *gin.Context, key string, def bool) bool {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return def
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return def
	}
	return value
}

// ParseOptionalInt64Param returns nil when the parameter is absent.
// ok is false when the parameter is present but not an integer.
func ParseOptionalInt64Param(c *gin.Context, key string) (value *int64, ok bool) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, true
	}
	parsed, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, false
	}
	return &parsed, true
}
