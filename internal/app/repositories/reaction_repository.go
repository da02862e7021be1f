package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eee-uofk/coursehub/internal/app/models"
	"github.com/eee-uofk/coursehub/internal/pkg/apperrors"
	"github.com/eee-uofk/coursehub/internal/pkg/dberrors"
)

// IReactionRepository defines announcement reaction counters
type IReactionRepository interface {
	Increment(ctx context.Context, announcementID int64, reaction models.ReactionType) (int, error)
	ListByAnnouncement(ctx context.Context, announcementID int64) ([]models.AnnouncementReaction, error)
}

// ReactionRepository handles announcement_reactions rows
type ReactionRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewReactionRepository creates a new ReactionRepository
func NewReactionRepository(db *pgxpool.Pool) *ReactionRepository {
	return &ReactionRepository{db: db, sb: statementBuilder()}
}

// Increment atomically adds one to the (announcement, reaction) counter and returns the new value
func (r *ReactionRepository) Increment(ctx context.Context, announcementID int64, reaction models.ReactionType) (int, error) {
	sql, args, err := r.sb.Insert("announcement_reactions").
		Columns("announcement_id", "reaction_type", "count").
		Values(announcementID, reaction, 1).
		Suffix("ON CONFLICT (announcement_id, reaction_type) DO UPDATE SET count = announcement_reactions.count + 1 RETURNING count").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build increment reaction query: %w", err)
	}

	var count int
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		if dberrors.IsForeignKeyError(err) {
			return 0, apperrors.ErrAnnouncementNotFound
		}
		return 0, fmt.Errorf("error incrementing reaction: %w", err)
	}
	return count, nil
}

// ListByAnnouncement returns the stored counters of an announcement
func (r *ReactionRepository) ListByAnnouncement(ctx context.Context, announcementID int64) ([]models.AnnouncementReaction, error) {
	sql, args, err := r.sb.Select("announcement_id", "reaction_type", "count").
		From("announcement_reactions").
		Where(squirrel.Eq{"announcement_id": announcementID}).
		OrderBy("reaction_type").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list reactions query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying reactions: %w", err)
	}
	defer rows.Close()

	reactions := []models.AnnouncementReaction{}
	for rows.Next() {
		var re models.AnnouncementReaction
		if err := rows.Scan(&re.AnnouncementID, &re.ReactionType, &re.Count); err != nil {
			return nil, fmt.Errorf("error scanning reaction row: %w", err)
		}
		reactions = append(reactions, re)
	}
	return reactions, rows.Err()
}
