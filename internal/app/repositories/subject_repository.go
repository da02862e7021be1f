package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eee-uofk/coursehub/internal/app/models"
	"github.com/eee-uofk/coursehub/internal/db"
	"github.com/eee-uofk/coursehub/internal/pkg/apperrors"
	"github.com/eee-uofk/coursehub/internal/pkg/dberrors"
	"github.com/eee-uofk/coursehub/internal/pkg/logger"
)

// ISubjectRepository defines subject persistence operations
type ISubjectRepository interface {
	Create(ctx context.Context, subject *models.Subject) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Subject, error)
	List(ctx context.Context) ([]models.SubjectSummary, error)
	ListIDs(ctx context.Context) ([]int64, error)
	Update(ctx context.Context, subject *models.Subject) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
}

// SubjectRepository handles subject database operations
type SubjectRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewSubjectRepository creates a new SubjectRepository
func NewSubjectRepository(db *pgxpool.Pool) *SubjectRepository {
	return &SubjectRepository{db: db, sb: statementBuilder()}
}

var subjectColumns = []string{
	"s.id", "s.name_ar", "s.name_en", "s.description_ar", "s.description_en",
	"s.code", "s.semester", "s.created_at", "s.updated_at",
}

// Create inserts the subject together with its zero statistics row
func (r *SubjectRepository) Create(ctx context.Context, subject *models.Subject) (int64, error) {
	insertSQL, insertArgs, err := r.sb.Insert("subjects").
		Columns("name_ar", "name_en", "description_ar", "description_en", "code", "semester").
		Values(subject.NameAr, subject.NameEn, subject.DescriptionAr, subject.DescriptionEn, subject.Code, subject.Semester).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create subject query: %w", err)
	}

	err = db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, insertSQL, insertArgs...).Scan(&subject.ID, &subject.CreatedAt, &subject.UpdatedAt); err != nil {
			if dberrors.IsDuplicateKeyError(err) {
				return apperrors.ErrSubjectCodeExists
			}
			return fmt.Errorf("error creating subject: %w", err)
		}

		statsSQL, statsArgs, err := r.sb.Insert("subject_statistics").
			Columns("subject_id").
			Values(subject.ID).
			Suffix("ON CONFLICT (subject_id) DO NOTHING").
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build statistics row query: %w", err)
		}
		if _, err := tx.Exec(ctx, statsSQL, statsArgs...); err != nil {
			return fmt.Errorf("error creating statistics row: %w", err)
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrSubjectCodeExists) {
			logger.Error().Err(err).Str("code", subject.Code).Msg("Error creating subject")
		}
		return 0, err
	}
	return subject.ID, nil
}

// GetByID retrieves a subject by ID
func (r *SubjectRepository) GetByID(ctx context.Context, id int64) (*models.Subject, error) {
	sql, args, err := r.sb.Select(subjectColumns...).
		From("subjects s").
		Where(squirrel.Eq{"s.id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get subject query: %w", err)
	}

	s := &models.Subject{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&s.ID, &s.NameAr, &s.NameEn, &s.DescriptionAr, &s.DescriptionEn,
		&s.Code, &s.Semester, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSubjectNotFound
		}
		logger.Error().Err(err).Int64("subjectID", id).Msg("Error scanning subject row")
		return nil, fmt.Errorf("error getting subject: %w", err)
	}
	return s, nil
}

// List returns every subject with its cached counters, zero when no statistics row exists
func (r *SubjectRepository) List(ctx context.Context) ([]models.SubjectSummary, error) {
	columns := append([]string{}, subjectColumns...)
	columns = append(columns, statisticsCoalescedColumns("st")...)

	sql, args, err := r.sb.Select(columns...).
		From("subjects s").
		LeftJoin("subject_statistics st ON st.subject_id = s.id").
		OrderBy("s.semester ASC", "s.code ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list subjects query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list subjects query")
		return nil, fmt.Errorf("error querying subjects: %w", err)
	}
	defer rows.Close()

	subjects := []models.SubjectSummary{}
	for rows.Next() {
		var s models.SubjectSummary
		dest := []interface{}{
			&s.ID, &s.NameAr, &s.NameEn, &s.DescriptionAr, &s.DescriptionEn,
			&s.Code, &s.Semester, &s.CreatedAt, &s.UpdatedAt,
		}
		dest = append(dest, counterDest(&s.StatisticsCounters)...)
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("error scanning subject row: %w", err)
		}
		subjects = append(subjects, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating subject rows: %w", err)
	}
	return subjects, nil
}

// ListIDs returns every subject ID in ascending order
func (r *SubjectRepository) ListIDs(ctx context.Context) ([]int64, error) {
	sql, args, err := r.sb.Select("id").From("subjects").OrderBy("id ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list subject ids query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying subject ids: %w", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return nil, fmt.Errorf("error collecting subject ids: %w", err)
	}
	return ids, nil
}

// Update replaces a subject's editable fields
func (r *SubjectRepository) Update(ctx context.Context, subject *models.Subject) error {
	sql, args, err := r.sb.Update("subjects").
		SetMap(map[string]interface{}{
			"name_ar":        subject.NameAr,
			"name_en":        subject.NameEn,
			"description_ar": subject.DescriptionAr,
			"description_en": subject.DescriptionEn,
			"code":           subject.Code,
			"semester":       subject.Semester,
			"updated_at":     squirrel.Expr("NOW()"),
		}).
		Where(squirrel.Eq{"id": subject.ID}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update subject query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&subject.CreatedAt, &subject.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrSubjectNotFound
		}
		if dberrors.IsDuplicateKeyError(err) {
			return apperrors.ErrSubjectCodeExists
		}
		logger.Error().Err(err).Int64("subjectID", subject.ID).Msg("Error updating subject")
		return fmt.Errorf("error updating subject: %w", err)
	}
	return nil
}

// Delete removes a subject and its statistics row. It refuses while
// resources or questions still reference the subject.
func (r *SubjectRepository) Delete(ctx context.Context, id int64) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		var hasContent bool
		err := tx.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM resources WHERE subject_id = $1)
			     OR EXISTS (SELECT 1 FROM questions WHERE subject_id = $1)`, id).Scan(&hasContent)
		if err != nil {
			return fmt.Errorf("error checking subject content: %w", err)
		}
		if hasContent {
			return apperrors.ErrSubjectHasContent
		}

		statsSQL, statsArgs, err := r.sb.Delete("subject_statistics").Where(squirrel.Eq{"subject_id": id}).ToSql()
		if err != nil {
			return fmt.Errorf("failed to build delete statistics query: %w", err)
		}
		if _, err := tx.Exec(ctx, statsSQL, statsArgs...); err != nil {
			return fmt.Errorf("error deleting statistics row: %w", err)
		}

		sql, args, err := r.sb.Delete("subjects").Where(squirrel.Eq{"id": id}).ToSql()
		if err != nil {
			return fmt.Errorf("failed to build delete subject query: %w", err)
		}
		tag, err := tx.Exec(ctx, sql, args...)
		if err != nil {
			if dberrors.IsForeignKeyError(err) {
				return apperrors.ErrSubjectHasContent
			}
			return fmt.Errorf("error deleting subject: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return apperrors.ErrSubjectNotFound
		}
		return nil
	})
}

// Count returns the live number of subjects
func (r *SubjectRepository) Count(ctx context.Context) (int64, error) {
	sql, args, err := r.sb.Select("COUNT(*)").From("subjects").ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count subjects query: %w", err)
	}
	var n int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("error counting subjects: %w", err)
	}
	return n, nil
}
