package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eee-uofk/coursehub/internal/app/models"
	"github.com/eee-uofk/coursehub/internal/pkg/apperrors"
	"github.com/eee-uofk/coursehub/internal/pkg/dberrors"
	"github.com/eee-uofk/coursehub/internal/pkg/logger"
)

// IResourceRepository defines resource persistence operations
type IResourceRepository interface {
	Create(ctx context.Context, resource *models.Resource) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Resource, error)
	List(ctx context.Context, filter models.ResourceFilter) ([]models.Resource, error)
	Latest(ctx context.Context, limit int) ([]models.Resource, error)
	Update(ctx context.Context, resource *models.Resource) error
	Delete(ctx context.Context, id int64) error
	ListTypesBySubject(ctx context.Context, subjectID int64) ([]string, error)
	UpdateOrderIndex(ctx context.Context, id int64, orderIndex int) error
}

// ResourceRepository handles resource database operations
type ResourceRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewResourceRepository creates a new ResourceRepository
func NewResourceRepository(db *pgxpool.Pool) *ResourceRepository {
	return &ResourceRepository{db: db, sb: statementBuilder()}
}

var resourceColumns = []string{
	"r.id", "r.subject_id", "r.type", "r.title_ar", "r.title_en", "r.description_ar", "r.description_en",
	"r.file_path", "r.file_url", "r.file_size", "r.file_type", "r.source", "r.order_index", "r.added_by",
	"r.created_at", "r.updated_at", "s.name_ar", "s.name_en", "s.code",
}

func (r *ResourceRepository) selectResources() squirrel.SelectBuilder {
	return r.sb.Select(resourceColumns...).
		From("resources r").
		LeftJoin("subjects s ON s.id = r.subject_id")
}

func scanResource(row pgx.Row) (models.Resource, error) {
	var res models.Resource
	var rawType string
	err := row.Scan(
		&res.ID, &res.SubjectID, &rawType, &res.TitleAr, &res.TitleEn, &res.DescriptionAr, &res.DescriptionEn,
		&res.FilePath, &res.FileURL, &res.FileSize, &res.FileType, &res.Source, &res.OrderIndex, &res.AddedBy,
		&res.CreatedAt, &res.UpdatedAt, &res.SubjectNameAr, &res.SubjectNameEn, &res.SubjectCode,
	)
	if err != nil {
		return res, err
	}
	if t, ok := models.ParseResourceType(rawType); ok {
		res.Type = t
	} else {
		res.Type = models.ResourceType(rawType)
	}
	return res, nil
}

func (r *ResourceRepository) queryResources(ctx context.Context, builder squirrel.SelectBuilder) ([]models.Resource, error) {
	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list resources query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list resources query")
		return nil, fmt.Errorf("error querying resources: %w", err)
	}
	defer rows.Close()

	resources := []models.Resource{}
	for rows.Next() {
		res, err := scanResource(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning resource row: %w", err)
		}
		resources = append(resources, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating resource rows: %w", err)
	}
	return resources, nil
}

// Create inserts a resource and returns its ID
func (r *ResourceRepository) Create(ctx context.Context, res *models.Resource) (int64, error) {
	sql, args, err := r.sb.Insert("resources").
		Columns("subject_id", "type", "title_ar", "title_en", "description_ar", "description_en",
			"file_path", "file_url", "file_size", "file_type", "source", "order_index", "added_by").
		Values(res.SubjectID, res.Type, res.TitleAr, res.TitleEn, res.DescriptionAr, res.DescriptionEn,
			res.FilePath, res.FileURL, res.FileSize, res.FileType, res.Source, res.OrderIndex, res.AddedBy).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create resource query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&res.ID, &res.CreatedAt, &res.UpdatedAt); err != nil {
		if dberrors.IsForeignKeyError(err) {
			return 0, apperrors.ErrSubjectNotFound
		}
		logger.Error().Err(err).Int64("subjectID", res.SubjectID).Msg("Error creating resource")
		return 0, fmt.Errorf("error creating resource: %w", err)
	}
	return res.ID, nil
}

// GetByID retrieves a resource with its subject names
func (r *ResourceRepository) GetByID(ctx context.Context, id int64) (*models.Resource, error) {
	sql, args, err := r.selectResources().Where(squirrel.Eq{"r.id": id}).Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get resource query: %w", err)
	}

	res, err := scanResource(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResourceNotFound
		}
		logger.Error().Err(err).Int64("resourceID", id).Msg("Error scanning resource row")
		return nil, fmt.Errorf("error getting resource: %w", err)
	}
	return &res, nil
}

// List returns resources sorted by order_index (absent last) then newest first
func (r *ResourceRepository) List(ctx context.Context, filter models.ResourceFilter) ([]models.Resource, error) {
	builder := r.selectResources().OrderBy("r.order_index ASC NULLS LAST", "r.created_at DESC")
	if filter.SubjectID != nil {
		builder = builder.Where(squirrel.Eq{"r.subject_id": *filter.SubjectID})
	}
	if filter.Type != nil {
		if *filter.Type == models.ResourceTypeImportantQuestion {
			builder = builder.Where("LOWER(r.type) IN (?, ?)", "important_question", "important_questions")
		} else {
			builder = builder.Where("LOWER(r.type) = ?", string(*filter.Type))
		}
	}
	if filter.Limit > 0 {
		builder = builder.Limit(uint64(filter.Limit))
	}
	return r.queryResources(ctx, builder)
}

// Latest returns the most recently created resources
func (r *ResourceRepository) Latest(ctx context.Context, limit int) ([]models.Resource, error) {
	return r.queryResources(ctx, r.selectResources().OrderBy("r.created_at DESC").Limit(uint64(limit)))
}

// Update replaces a resource's stored fields
func (r *ResourceRepository) Update(ctx context.Context, res *models.Resource) error {
	sql, args, err := r.sb.Update("resources").
		SetMap(map[string]interface{}{
			"subject_id":     res.SubjectID,
			"type":           res.Type,
			"title_ar":       res.TitleAr,
			"title_en":       res.TitleEn,
			"description_ar": res.DescriptionAr,
			"description_en": res.DescriptionEn,
			"file_path":      res.FilePath,
			"file_url":       res.FileURL,
			"file_size":      res.FileSize,
			"file_type":      res.FileType,
			"source":         res.Source,
			"order_index":    res.OrderIndex,
			"updated_at":     squirrel.Expr("NOW()"),
		}).
		Where(squirrel.Eq{"id": res.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update resource query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&res.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrResourceNotFound
		}
		if dberrors.IsForeignKeyError(err) {
			return apperrors.ErrSubjectNotFound
		}
		logger.Error().Err(err).Int64("resourceID", res.ID).Msg("Error updating resource")
		return fmt.Errorf("error updating resource: %w", err)
	}
	return nil
}

// Delete removes a resource row
func (r *ResourceRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("resources").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete resource query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("resourceID", id).Msg("Error deleting resource")
		return fmt.Errorf("error deleting resource: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}
	return nil
}

// ListTypesBySubject returns the raw type value of every resource in a subject
func (r *ResourceRepository) ListTypesBySubject(ctx context.Context, subjectID int64) ([]string, error) {
	sql, args, err := r.sb.Select("COALESCE(type, '')").
		From("resources").
		Where(squirrel.Eq{"subject_id": subjectID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build resource types query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying resource types: %w", err)
	}
	types, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("error collecting resource types: %w", err)
	}
	return types, nil
}

// UpdateOrderIndex sets one resource's order_index
func (r *ResourceRepository) UpdateOrderIndex(ctx context.Context, id int64, orderIndex int) error {
	sql, args, err := r.sb.Update("resources").
		Set("order_index", orderIndex).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update order query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating order index: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}
	return nil
}
