package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/eee-uofk/coursehub/internal/app/models"
	"github.com/eee-uofk/coursehub/internal/app/models/dto"
	"github.com/eee-uofk/coursehub/internal/app/repositories"
	"github.com/eee-uofk/coursehub/internal/pkg/apperrors"
)

// AnnouncementService defines notice board operations
type AnnouncementService interface {
	ListAnnouncements(ctx context.Context, filter models.AnnouncementFilter) ([]models.Announcement, error)
	GetAnnouncement(ctx context.Context, id int64) (*models.Announcement, error)
	CreateAnnouncement(ctx context.Context, req dto.AnnouncementRequest, addedBy *int64) (*models.Announcement, error)
	UpdateAnnouncement(ctx context.Context, id int64, req dto.AnnouncementRequest) (*models.Announcement, error)
	DeleteAnnouncement(ctx context.Context, id int64) error
}

type announcementServiceImpl struct {
	announcementRepo repositories.IAnnouncementRepository
	logger           zerolog.Logger
}

// NewAnnouncementService creates a new announcement service
func NewAnnouncementService(announcementRepo repositories.IAnnouncementRepository, logger zerolog.Logger) AnnouncementService {
	return &announcementServiceImpl{announcementRepo: announcementRepo, logger: logger}
}

func applyAnnouncementRequest(a *models.Announcement, req dto.AnnouncementRequest) error {
	a.TitleAr = strings.TrimSpace(req.TitleAr)
	a.TitleEn = strings.TrimSpace(req.TitleEn)
	a.ContentAr = strings.TrimSpace(req.ContentAr)
	a.ContentEn = strings.TrimSpace(req.ContentEn)
	if a.TitleAr == "" || a.TitleEn == "" || a.ContentAr == "" || a.ContentEn == "" {
		return apperrors.NewBadRequestError("Title and content in both languages are required")
	}

	a.Priority = models.AnnouncementPriority(req.Priority)
	if a.Priority == "" {
		a.Priority = models.PriorityMedium
	}
	if a.Priority.Rank() == 0 {
		return apperrors.NewBadRequestError("priority must be one of low, medium, high, urgent")
	}

	a.Type = models.AnnouncementType(req.Type)
	switch a.Type {
	case "":
		a.Type = models.AnnouncementTypeGeneral
	case models.AnnouncementTypeGeneral, models.AnnouncementTypeExam, models.AnnouncementTypeSubmission:
	default:
		return apperrors.NewBadRequestError("type must be one of general, exam, submission")
	}

	a.IsActive = true
	if req.IsActive != nil {
		a.IsActive = *req.IsActive
	}
	return nil
}

func (s *announcementServiceImpl) ListAnnouncements(ctx context.Context, filter models.AnnouncementFilter) ([]models.Announcement, error) {
	return s.announcementRepo.List(ctx, filter)
}

func (s *announcementServiceImpl) GetAnnouncement(ctx context.Context, id int64) (*models.Announcement, error) {
	return s.announcementRepo.GetByID(ctx, id)
}

func (s *announcementServiceImpl) CreateAnnouncement(ctx context.Context, req dto.AnnouncementRequest, addedBy *int64) (*models.Announcement, error) {
	a := &models.Announcement{AddedBy: addedBy}
	if err := applyAnnouncementRequest(a, req); err != nil {
		return nil, err
	}
	if _, err := s.announcementRepo.Create(ctx, a); err != nil {
		return nil, err
	}
	s.logger.Info().Int64("announcementID", a.ID).Str("priority", string(a.Priority)).Msg("Announcement created")
	return a, nil
}

func (s *announcementServiceImpl) UpdateAnnouncement(ctx context.Context, id int64, req dto.AnnouncementRequest) (*models.Announcement, error) {
	a, err := s.announcementRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyAnnouncementRequest(a, req); err != nil {
		return nil, err
	}
	if err := s.announcementRepo.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *announcementServiceImpl) DeleteAnnouncement(ctx context.Context, id int64) error {
	return s.announcementRepo.Delete(ctx, id)
}
