package repositories

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eee-uofk/coursehub/internal/app/models"
)

func TestBuildStatisticsUpsert_OverwritesEveryCounter(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	counters := models.StatisticsCounters{TotalLectures: 3, TotalExams: 1, TotalQuestions: 2, TotalLabs: 4}

	sql, args, err := buildStatisticsUpsert(statementBuilder(), 9, counters, now, false)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(sql, "INSERT INTO subject_statistics (subject_id,total_lectures,"))
	assert.Contains(t, sql, "VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)")
	assert.Contains(t, sql, "ON CONFLICT (subject_id) DO UPDATE SET ")
	for _, c := range counterColumns {
		assert.Contains(t, sql, c+" = EXCLUDED."+c)
	}
	assert.Contains(t, sql, "updated_at = EXCLUDED.updated_at")
	assert.Contains(t, sql, "RETURNING total_lectures,")

	require.Len(t, args, 12)
	assert.Equal(t, int64(9), args[0])
	assert.Equal(t, 3, args[1])
	assert.Equal(t, 4, args[8])
	assert.Equal(t, now, args[11])
}

func TestBuildStatisticsUpsert_KeepManualCounters(t *testing.T) {
	sql, args, err := buildStatisticsUpsert(statementBuilder(), 9, models.StatisticsCounters{TotalLabs: 2}, time.Now(), true)
	require.NoError(t, err)
	require.Len(t, args, 12)

	conflict := sql[strings.Index(sql, "ON CONFLICT"):strings.Index(sql, " RETURNING")]
	for _, c := range counterColumns {
		if manualCounterColumns[c] {
			assert.NotContains(t, conflict, c+" = EXCLUDED."+c)
			continue
		}
		assert.Contains(t, conflict, c+" = EXCLUDED."+c)
	}
	assert.Contains(t, conflict, "updated_at = EXCLUDED.updated_at")
	assert.Equal(t, 2, args[8], "labs still supplied for the insert branch")
}
