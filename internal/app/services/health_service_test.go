package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProber struct {
	failTable string
	missing   []string
}

func (p fakeProber) CountRows(_ context.Context, table string) (int64, error) {
	if table == p.failTable {
		return 0, errBoom
	}
	return 3, nil
}

func (p fakeProber) MissingColumns(_ context.Context, _ string, _ []string) ([]string, error) {
	return p.missing, nil
}

func TestHealthCheck(t *testing.T) {
	ok := NewHealthService(fakeProber{}).Check(context.Background())
	assert.Equal(t, "ok", ok.Status)
	require.Len(t, ok.Tables, 7)
	assert.Equal(t, int64(3), ok.Tables[0].Rows)

	failing := NewHealthService(fakeProber{failTable: "questions"}).Check(context.Background())
	assert.Equal(t, "error", failing.Status)

	missing := NewHealthService(fakeProber{missing: []string{"order_index"}}).Check(context.Background())
	assert.Equal(t, "error", missing.Status)
	for _, th := range missing.Tables {
		if th.Table == "resources" {
			assert.Contains(t, th.Error, "order_index")
		}
	}
}
