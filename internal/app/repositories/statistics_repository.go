package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eee-uofk/coursehub/internal/app/models"
	"github.com/eee-uofk/coursehub/internal/pkg/logger"
)

// counterColumns lists the statistics counters in scan order
var counterColumns = []string{
	"total_lectures", "total_assignments", "total_exams", "total_sheets", "total_references",
	"total_important_questions", "total_questions", "total_labs", "total_practicals", "total_tutorials",
}

// statisticsCoalescedColumns selects each counter from alias, defaulting to 0 for a missing row
func statisticsCoalescedColumns(alias string) []string {
	cols := make([]string, len(counterColumns))
	for i, c := range counterColumns {
		cols[i] = fmt.Sprintf("COALESCE(%s.%s, 0)", alias, c)
	}
	return cols
}

func counterDest(c *models.StatisticsCounters) []interface{} {
	return []interface{}{
		&c.TotalLectures, &c.TotalAssignments, &c.TotalExams, &c.TotalSheets, &c.TotalReferences,
		&c.TotalImportantQuestions, &c.TotalQuestions, &c.TotalLabs, &c.TotalPracticals, &c.TotalTutorials,
	}
}

func counterValues(c models.StatisticsCounters) []interface{} {
	return []interface{}{
		c.TotalLectures, c.TotalAssignments, c.TotalExams, c.TotalSheets, c.TotalReferences,
		c.TotalImportantQuestions, c.TotalQuestions, c.TotalLabs, c.TotalPracticals, c.TotalTutorials,
	}
}

// IStatisticsRepository defines persistence for the denormalized statistics table
type IStatisticsRepository interface {
	// GetBySubjectID returns nil, nil when the subject has no statistics row yet
	GetBySubjectID(ctx context.Context, subjectID int64) (*models.SubjectStatistics, error)
	Upsert(ctx context.Context, subjectID int64, counters models.StatisticsCounters) (*models.SubjectStatistics, error)
	UpsertCounted(ctx context.Context, subjectID int64, counters models.StatisticsCounters) (*models.SubjectStatistics, error)
	Totals(ctx context.Context) (models.StatisticsCounters, error)
	ListWithSubjects(ctx context.Context) ([]models.SubjectStatisticsView, error)
}

// StatisticsRepository handles subject_statistics rows
type StatisticsRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewStatisticsRepository creates a new StatisticsRepository
func NewStatisticsRepository(db *pgxpool.Pool) *StatisticsRepository {
	return &StatisticsRepository{db: db, sb: statementBuilder()}
}

// GetBySubjectID retrieves the statistics row of one subject
func (r *StatisticsRepository) GetBySubjectID(ctx context.Context, subjectID int64) (*models.SubjectStatistics, error) {
	columns := append([]string{"subject_id"}, counterColumns...)
	columns = append(columns, "updated_at")

	sql, args, err := r.sb.Select(columns...).
		From("subject_statistics").
		Where(squirrel.Eq{"subject_id": subjectID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get statistics query: %w", err)
	}

	stats := &models.SubjectStatistics{}
	dest := append([]interface{}{&stats.SubjectID}, counterDest(&stats.StatisticsCounters)...)
	dest = append(dest, &stats.UpdatedAt)
	if err := r.db.QueryRow(ctx, sql, args...).Scan(dest...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		logger.Error().Err(err).Int64("subjectID", subjectID).Msg("Error reading statistics row")
		return nil, fmt.Errorf("error getting statistics: %w", err)
	}
	return stats, nil
}

// manualCounterColumns are maintained only by admin edits; recounts never overwrite them
var manualCounterColumns = map[string]bool{
	"total_labs":       true,
	"total_practicals": true,
	"total_tutorials":  true,
}

// buildStatisticsUpsert builds the insert-or-update of one statistics row. With
// keepManual the conflict branch leaves the manually maintained counters alone.
func buildStatisticsUpsert(sb squirrel.StatementBuilderType, subjectID int64, counters models.StatisticsCounters, now time.Time, keepManual bool) (string, []interface{}, error) {
	columns := append([]string{"subject_id"}, counterColumns...)
	columns = append(columns, "updated_at")
	values := append([]interface{}{subjectID}, counterValues(counters)...)
	values = append(values, now)

	assignments := make([]string, 0, len(counterColumns)+1)
	for _, c := range counterColumns {
		if keepManual && manualCounterColumns[c] {
			continue
		}
		assignments = append(assignments, c+" = EXCLUDED."+c)
	}
	assignments = append(assignments, "updated_at = EXCLUDED.updated_at")

	returning := append([]string{}, counterColumns...)
	returning = append(returning, "updated_at")

	return sb.Insert("subject_statistics").
		Columns(columns...).
		Values(values...).
		Suffix("ON CONFLICT (subject_id) DO UPDATE SET " + strings.Join(assignments, ", ") +
			" RETURNING " + strings.Join(returning, ", ")).
		ToSql()
}

// Upsert writes all ten counters for a subject, inserting the row when absent
func (r *StatisticsRepository) Upsert(ctx context.Context, subjectID int64, counters models.StatisticsCounters) (*models.SubjectStatistics, error) {
	return r.upsert(ctx, subjectID, counters, false)
}

// UpsertCounted writes recomputed counters. An existing row keeps its lab,
// practical and tutorial counters; the values passed for them apply only on insert.
func (r *StatisticsRepository) UpsertCounted(ctx context.Context, subjectID int64, counters models.StatisticsCounters) (*models.SubjectStatistics, error) {
	return r.upsert(ctx, subjectID, counters, true)
}

func (r *StatisticsRepository) upsert(ctx context.Context, subjectID int64, counters models.StatisticsCounters, keepManual bool) (*models.SubjectStatistics, error) {
	sql, args, err := buildStatisticsUpsert(r.sb, subjectID, counters, time.Now().UTC(), keepManual)
	if err != nil {
		return nil, fmt.Errorf("failed to build upsert statistics query: %w", err)
	}

	stats := &models.SubjectStatistics{SubjectID: subjectID}
	dest := append(counterDest(&stats.StatisticsCounters), &stats.UpdatedAt)
	if err := r.db.QueryRow(ctx, sql, args...).Scan(dest...); err != nil {
		logger.Error().Err(err).Int64("subjectID", subjectID).Msg("Error upserting statistics row")
		return nil, fmt.Errorf("error upserting statistics: %w", err)
	}
	return stats, nil
}

// Totals sums each counter across all statistics rows
func (r *StatisticsRepository) Totals(ctx context.Context) (models.StatisticsCounters, error) {
	sums := make([]string, len(counterColumns))
	for i, c := range counterColumns {
		sums[i] = fmt.Sprintf("COALESCE(SUM(%s), 0)", c)
	}

	var totals models.StatisticsCounters
	sql, args, err := r.sb.Select(sums...).From("subject_statistics").ToSql()
	if err != nil {
		return totals, fmt.Errorf("failed to build statistics totals query: %w", err)
	}
	if err := r.db.QueryRow(ctx, sql, args...).Scan(counterDest(&totals)...); err != nil {
		return totals, fmt.Errorf("error summing statistics: %w", err)
	}
	return totals, nil
}

// ListWithSubjects returns every subject's counters joined with its identity
func (r *StatisticsRepository) ListWithSubjects(ctx context.Context) ([]models.SubjectStatisticsView, error) {
	columns := append([]string{"s.id", "s.code", "s.name_ar", "s.name_en", "s.semester"}, statisticsCoalescedColumns("st")...)
	columns = append(columns, "st.updated_at")

	sql, args, err := r.sb.Select(columns...).
		From("subjects s").
		LeftJoin("subject_statistics st ON st.subject_id = s.id").
		OrderBy("s.semester ASC", "s.code ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list statistics query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying statistics: %w", err)
	}
	defer rows.Close()

	views := []models.SubjectStatisticsView{}
	for rows.Next() {
		var v models.SubjectStatisticsView
		dest := append([]interface{}{&v.SubjectID, &v.Code, &v.NameAr, &v.NameEn, &v.Semester}, counterDest(&v.StatisticsCounters)...)
		dest = append(dest, &v.UpdatedAt)
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("error scanning statistics row: %w", err)
		}
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating statistics rows: %w", err)
	}
	return views, nil
}
