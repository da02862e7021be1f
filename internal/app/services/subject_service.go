package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/eee-uofk/coursehub/internal/app/models"
	"github.com/eee-uofk/coursehub/internal/app/models/dto"
	"github.com/eee-uofk/coursehub/internal/app/repositories"
	"github.com/eee-uofk/coursehub/internal/pkg/apperrors"
	"github.com/eee-uofk/coursehub/internal/pkg/helpers"
	"github.com/eee-uofk/coursehub/internal/pkg/validation"
)

// SubjectService defines subject catalogue operations
type SubjectService interface {
	ListSubjects(ctx context.Context) ([]models.SubjectSummary, error)
	GetSubjectDetail(ctx context.Context, id int64) (*dto.SubjectDetailResponse, error)
	CreateSubject(ctx context.Context, req dto.SubjectRequest) (*models.Subject, error)
	UpdateSubject(ctx context.Context, id int64, req dto.SubjectRequest) (*models.Subject, error)
	DeleteSubject(ctx context.Context, id int64) error
}

type subjectServiceImpl struct {
	subjectRepo  repositories.ISubjectRepository
	resourceRepo repositories.IResourceRepository
	statsRepo    repositories.IStatisticsRepository
	invalidator  OverallInvalidator
	logger       zerolog.Logger
}

// NewSubjectService creates a new subject service
func NewSubjectService(
	subjectRepo repositories.ISubjectRepository,
	resourceRepo repositories.IResourceRepository,
	statsRepo repositories.IStatisticsRepository,
	invalidator OverallInvalidator,
	logger zerolog.Logger,
) SubjectService {
	return &subjectServiceImpl{
		subjectRepo:  subjectRepo,
		resourceRepo: resourceRepo,
		statsRepo:    statsRepo,
		invalidator:  invalidator,
		logger:       logger,
	}
}

// subjectFromRequest normalises and validates a subject request
func subjectFromRequest(req dto.SubjectRequest) (*models.Subject, error) {
	subject := &models.Subject{
		NameAr:        strings.TrimSpace(req.NameAr),
		NameEn:        strings.TrimSpace(req.NameEn),
		DescriptionAr: helpers.TrimmedOrNil(req.DescriptionAr),
		DescriptionEn: helpers.TrimmedOrNil(req.DescriptionEn),
		Code:          strings.ToUpper(strings.TrimSpace(req.Code)),
		Semester:      req.Semester,
	}
	if subject.Semester == 0 {
		subject.Semester = 1
	}

	for _, f := range [][2]string{{"name_ar", subject.NameAr}, {"name_en", subject.NameEn}} {
		field, value := f[0], f[1]
		if !validation.NewStringValidation(value).
			WithMinLength(validation.NameMinLength).
			WithMaxLength(validation.NameMaxLength).
			Validate() {
			return nil, apperrors.NewBadRequestError(fmt.Sprintf("%s must be between %d and %d characters",
				field, validation.NameMinLength, validation.NameMaxLength))
		}
	}
	if !validation.NewStringValidation(subject.Code).WithPattern(validation.CompiledPatterns.SubjectCode).Validate() {
		return nil, apperrors.NewBadRequestError("code must be 3-20 upper-case letters or digits")
	}
	if !validation.NewNumericValidation(subject.Semester).
		WithMin(validation.SemesterMin).
		WithMax(validation.SemesterMax).
		Validate() {
		return nil, apperrors.NewBadRequestError(fmt.Sprintf("semester must be between %d and %d",
			validation.SemesterMin, validation.SemesterMax))
	}
	return subject, nil
}

func (s *subjectServiceImpl) ListSubjects(ctx context.Context) ([]models.SubjectSummary, error) {
	return s.subjectRepo.List(ctx)
}

// GetSubjectDetail returns the subject, its statistics and its resources grouped by type
func (s *subjectServiceImpl) GetSubjectDetail(ctx context.Context, id int64) (*dto.SubjectDetailResponse, error) {
	subject, err := s.subjectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &dto.SubjectDetailResponse{
		Subject:   *subject,
		Resources: make(map[models.ResourceType][]models.Resource, len(models.ResourceTypes)),
	}
	for _, t := range models.ResourceTypes {
		detail.Resources[t] = []models.Resource{}
	}

	stats, err := s.statsRepo.GetBySubjectID(ctx, id)
	if err != nil {
		return nil, err
	}
	if stats != nil {
		detail.Statistics = stats.StatisticsCounters
	}

	resources, err := s.resourceRepo.List(ctx, models.ResourceFilter{SubjectID: &id})
	if err != nil {
		return nil, err
	}
	models.SortResources(resources)
	for _, r := range resources {
		if _, known := detail.Resources[r.Type]; known {
			detail.Resources[r.Type] = append(detail.Resources[r.Type], r)
		}
	}
	return detail, nil
}

func (s *subjectServiceImpl) CreateSubject(ctx context.Context, req dto.SubjectRequest) (*models.Subject, error) {
	subject, err := subjectFromRequest(req)
	if err != nil {
		return nil, err
	}
	if _, err := s.subjectRepo.Create(ctx, subject); err != nil {
		return nil, err
	}
	s.invalidateOverall(ctx)
	s.logger.Info().Int64("subjectID", subject.ID).Str("code", subject.Code).Msg("Subject created")
	return subject, nil
}

func (s *subjectServiceImpl) UpdateSubject(ctx context.Context, id int64, req dto.SubjectRequest) (*models.Subject, error) {
	subject, err := subjectFromRequest(req)
	if err != nil {
		return nil, err
	}
	subject.ID = id
	if err := s.subjectRepo.Update(ctx, subject); err != nil {
		return nil, err
	}
	return subject, nil
}

func (s *subjectServiceImpl) DeleteSubject(ctx context.Context, id int64) error {
	if err := s.subjectRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateOverall(ctx)
	s.logger.Info().Int64("subjectID", id).Msg("Subject deleted")
	return nil
}

func (s *subjectServiceImpl) invalidateOverall(ctx context.Context) {
	if s.invalidator != nil {
		s.invalidator.InvalidateOverall(ctx)
	}
}
