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
	"github.com/eee-uofk/coursehub/internal/pkg/logger"
)

// IAnnouncementRepository defines announcement persistence operations
type IAnnouncementRepository interface {
	Create(ctx context.Context, a *models.Announcement) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Announcement, error)
	List(ctx context.Context, filter models.AnnouncementFilter) ([]models.Announcement, error)
	Update(ctx context.Context, a *models.Announcement) error
	Delete(ctx context.Context, id int64) error
	Exists(ctx context.Context, id int64) (bool, error)
}

// AnnouncementRepository handles announcement database operations
type AnnouncementRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewAnnouncementRepository creates a new AnnouncementRepository
func NewAnnouncementRepository(db *pgxpool.Pool) *AnnouncementRepository {
	return &AnnouncementRepository{db: db, sb: statementBuilder()}
}

var announcementColumns = []string{
	"id", "title_ar", "title_en", "content_ar", "content_en", "priority", "type",
	"is_active", "added_by", "created_at", "updated_at",
}

// priorityRank sorts urgent > high > medium > low
const priorityRank = `CASE priority WHEN 'urgent' THEN 4 WHEN 'high' THEN 3 WHEN 'medium' THEN 2 WHEN 'low' THEN 1 ELSE 0 END DESC`

func scanAnnouncement(row pgx.Row) (models.Announcement, error) {
	var a models.Announcement
	err := row.Scan(&a.ID, &a.TitleAr, &a.TitleEn, &a.ContentAr, &a.ContentEn, &a.Priority, &a.Type,
		&a.IsActive, &a.AddedBy, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

// Create inserts an announcement and returns its ID
func (r *AnnouncementRepository) Create(ctx context.Context, a *models.Announcement) (int64, error) {
	sql, args, err := r.sb.Insert("announcements").
		Columns("title_ar", "title_en", "content_ar", "content_en", "priority", "type", "is_active", "added_by").
		Values(a.TitleAr, a.TitleEn, a.ContentAr, a.ContentEn, a.Priority, a.Type, a.IsActive, a.AddedBy).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create announcement query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt); err != nil {
		logger.Error().Err(err).Msg("Error creating announcement")
		return 0, fmt.Errorf("error creating announcement: %w", err)
	}
	return a.ID, nil
}

// GetByID retrieves an announcement
func (r *AnnouncementRepository) GetByID(ctx context.Context, id int64) (*models.Announcement, error) {
	sql, args, err := r.sb.Select(announcementColumns...).From("announcements").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get announcement query: %w", err)
	}

	a, err := scanAnnouncement(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAnnouncementNotFound
		}
		return nil, fmt.Errorf("error getting announcement: %w", err)
	}
	return &a, nil
}

// List returns announcements ordered by priority then newest first
func (r *AnnouncementRepository) List(ctx context.Context, filter models.AnnouncementFilter) ([]models.Announcement, error) {
	builder := r.sb.Select(announcementColumns...).
		From("announcements").
		OrderBy(priorityRank, "created_at DESC")
	if filter.ActiveOnly {
		builder = builder.Where(squirrel.Eq{"is_active": true})
	}
	if filter.Type != nil {
		builder = builder.Where(squirrel.Eq{"type": *filter.Type})
	}
	if filter.Limit > 0 {
		builder = builder.Limit(uint64(filter.Limit))
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list announcements query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list announcements query")
		return nil, fmt.Errorf("error querying announcements: %w", err)
	}
	defer rows.Close()

	announcements := []models.Announcement{}
	for rows.Next() {
		a, err := scanAnnouncement(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning announcement row: %w", err)
		}
		announcements = append(announcements, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating announcement rows: %w", err)
	}
	return announcements, nil
}

// Update replaces an announcement's fields
func (r *AnnouncementRepository) Update(ctx context.Context, a *models.Announcement) error {
	sql, args, err := r.sb.Update("announcements").
		SetMap(map[string]interface{}{
			"title_ar":   a.TitleAr,
			"title_en":   a.TitleEn,
			"content_ar": a.ContentAr,
			"content_en": a.ContentEn,
			"priority":   a.Priority,
			"type":       a.Type,
			"is_active":  a.IsActive,
			"updated_at": squirrel.Expr("NOW()"),
		}).
		Where(squirrel.Eq{"id": a.ID}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update announcement query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&a.CreatedAt, &a.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrAnnouncementNotFound
		}
		return fmt.Errorf("error updating announcement: %w", err)
	}
	return nil
}

// Delete removes an announcement; its reactions cascade
func (r *AnnouncementRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("announcements").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete announcement query: %w", err)
	}
	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting announcement: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrAnnouncementNotFound
	}
	return nil
}

// Exists reports whether an announcement with id exists
func (r *AnnouncementRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM announcements WHERE id = $1)", id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking announcement: %w", err)
	}
	return exists, nil
}
