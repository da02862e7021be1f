package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/eee-uofk/coursehub/internal/app/models"
	"github.com/eee-uofk/coursehub/internal/app/models/dto"
	"github.com/eee-uofk/coursehub/internal/app/repositories"
	"github.com/eee-uofk/coursehub/internal/pkg/apperrors"
	"github.com/eee-uofk/coursehub/internal/pkg/metrics"
)

// ReactionService counts emoji reactions on announcements
type ReactionService interface {
	React(ctx context.Context, announcementID int64, reaction models.ReactionType) (*models.AnnouncementReaction, error)
	GetReactions(ctx context.Context, announcementID int64) (*dto.ReactionsResponse, error)
}

type reactionServiceImpl struct {
	reactionRepo     repositories.IReactionRepository
	announcementRepo repositories.IAnnouncementRepository
	metrics          *metrics.Metrics
	logger           zerolog.Logger
}

// NewReactionService creates a new reaction service
func NewReactionService(
	reactionRepo repositories.IReactionRepository,
	announcementRepo repositories.IAnnouncementRepository,
	m *metrics.Metrics,
	logger zerolog.Logger,
) ReactionService {
	return &reactionServiceImpl{
		reactionRepo:     reactionRepo,
		announcementRepo: announcementRepo,
		metrics:          m,
		logger:           logger,
	}
}

func (s *reactionServiceImpl) ensureAnnouncement(ctx context.Context, id int64) error {
	exists, err := s.announcementRepo.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return apperrors.ErrAnnouncementNotFound
	}
	return nil
}

func (s *reactionServiceImpl) React(ctx context.Context, announcementID int64, reaction models.ReactionType) (*models.AnnouncementReaction, error) {
	if !reaction.IsValid() {
		return nil, apperrors.NewBadRequestError("reaction_type must be one of like, love, wow, sad")
	}
	if err := s.ensureAnnouncement(ctx, announcementID); err != nil {
		return nil, err
	}

	count, err := s.reactionRepo.Increment(ctx, announcementID, reaction)
	if err != nil {
		return nil, err
	}
	s.metrics.ObserveReaction(string(reaction))

	return &models.AnnouncementReaction{
		AnnouncementID: announcementID,
		ReactionType:   reaction,
		Count:          count,
	}, nil
}

// GetReactions returns a counter for every reaction type, zero when never used
func (s *reactionServiceImpl) GetReactions(ctx context.Context, announcementID int64) (*dto.ReactionsResponse, error) {
	if err := s.ensureAnnouncement(ctx, announcementID); err != nil {
		return nil, err
	}
	stored, err := s.reactionRepo.ListByAnnouncement(ctx, announcementID)
	if err != nil {
		return nil, err
	}

	resp := &dto.ReactionsResponse{
		AnnouncementID: announcementID,
		Counts:         make(map[string]int, len(models.ReactionTypes)),
	}
	for _, t := range models.ReactionTypes {
		resp.Counts[string(t)] = 0
	}
	for _, r := range stored {
		if r.ReactionType.IsValid() {
			resp.Counts[string(r.ReactionType)] = r.Count
			resp.Total += r.Count
		}
	}
	return resp, nil
}
