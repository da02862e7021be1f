package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// HealthTables are the tables probed by the health check
var HealthTables = []string{
	"users", "subjects", "resources", "questions", "announcements", "announcement_reactions", "subject_statistics",
}

// RequiredResourceColumns must exist on the resources table
var RequiredResourceColumns = []string{
	"id", "subject_id", "type", "title_ar", "title_en", "file_url", "order_index", "created_at",
}

// HealthRepository probes the database schema
type HealthRepository struct {
	db *pgxpool.Pool
}

// NewHealthRepository creates a new HealthRepository
func NewHealthRepository(db *pgxpool.Pool) *HealthRepository {
	return &HealthRepository{db: db}
}

// CountRows returns the number of rows in table. table must be one of HealthTables.
func (r *HealthRepository) CountRows(ctx context.Context, table string) (int64, error) {
	known := false
	for _, t := range HealthTables {
		if t == table {
			known = true
			break
		}
	}
	if !known {
		return 0, fmt.Errorf("unknown table %q", table)
	}

	var n int64
	query := "SELECT COUNT(*) FROM " + pgx.Identifier{table}.Sanitize()
	if err := r.db.QueryRow(ctx, query).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return n, nil
}

// MissingColumns returns the entries of columns absent from table
func (r *HealthRepository) MissingColumns(ctx context.Context, table string, columns []string) ([]string, error) {
	rows, err := r.db.Query(ctx,
		`SELECT column_name FROM information_schema.columns WHERE table_schema = current_schema() AND table_name = $1`, table)
	if err != nil {
		return nil, fmt.Errorf("list columns of %s: %w", table, err)
	}
	present, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("collect columns of %s: %w", table, err)
	}

	have := make(map[string]bool, len(present))
	for _, c := range present {
		have[c] = true
	}
	var missing []string
	for _, c := range columns {
		if !have[c] {
			missing = append(missing, c)
		}
	}
	return missing, nil
}
