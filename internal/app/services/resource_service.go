package services

import (
	"context"
	"errors"
	"mime/multipart"
	"strings"

	"github.com/rs/zerolog"

	"github.com/eee-uofk/coursehub/internal/app/models"
	"github.com/eee-uofk/coursehub/internal/app/models/dto"
	"github.com/eee-uofk/coursehub/internal/app/repositories"
	"github.com/eee-uofk/coursehub/internal/pkg/apperrors"
	"github.com/eee-uofk/coursehub/internal/pkg/filestorage"
	"github.com/eee-uofk/coursehub/internal/pkg/helpers"
)

const resourceFolder = "resources"

// ResourceService defines course material operations
type ResourceService interface {
	ListResources(ctx context.Context, filter models.ResourceFilter) ([]models.Resource, error)
	LatestResources(ctx context.Context, limit int) ([]models.Resource, error)
	GetResource(ctx context.Context, id int64) (*models.Resource, error)
	CreateResource(ctx context.Context, req dto.ResourceRequest, file *multipart.FileHeader, addedBy *int64) (*models.Resource, error)
	UpdateResource(ctx context.Context, id int64, req dto.ResourceRequest, file *multipart.FileHeader) (*models.Resource, error)
	DeleteResource(ctx context.Context, id int64) error
}

type resourceServiceImpl struct {
	resourceRepo   repositories.IResourceRepository
	subjectRepo    repositories.ISubjectRepository
	storage        filestorage.FileStorage
	recounter      Recounter
	maxUploadBytes int64
	logger         zerolog.Logger
}

// NewResourceService creates a new resource service
func NewResourceService(
	resourceRepo repositories.IResourceRepository,
	subjectRepo repositories.ISubjectRepository,
	storage filestorage.FileStorage,
	recounter Recounter,
	maxUploadBytes int64,
	logger zerolog.Logger,
) ResourceService {
	return &resourceServiceImpl{
		resourceRepo:   resourceRepo,
		subjectRepo:    subjectRepo,
		storage:        storage,
		recounter:      recounter,
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
	}
}

// uploadFile checks the size limit and stores the file under folder
func uploadFile(ctx context.Context, storage filestorage.FileStorage, file *multipart.FileHeader, folder string, maxBytes int64) (*filestorage.StoredFile, error) {
	if err := filestorage.CheckSize(file, maxBytes); err != nil {
		return nil, apperrors.NewBadRequestError(err.Error()).WithCode(string(dto.ErrorCodeFileTooLarge))
	}
	stored, err := storage.Save(ctx, file, folder)
	if err != nil {
		return nil, err
	}
	return stored, nil
}

// discardFile removes a stored object, logging failures
func discardFile(ctx context.Context, storage filestorage.FileStorage, path string, logger zerolog.Logger) {
	if path == "" {
		return
	}
	if err := storage.Delete(ctx, path); err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("Failed to delete stored file")
	}
}

// recountSubjects refreshes statistics for each distinct subject; failures are logged only
func recountSubjects(ctx context.Context, recounter Recounter, logger zerolog.Logger, subjectIDs ...int64) {
	if recounter == nil {
		return
	}
	seen := make(map[int64]bool, len(subjectIDs))
	for _, id := range subjectIDs {
		if id <= 0 || seen[id] {
			continue
		}
		seen[id] = true
		if err := recounter.RecountSubject(ctx, id); err != nil {
			logger.Error().Err(err).Int64("subjectID", id).Msg("Failed to recount subject statistics")
		}
	}
}

func applyResourceRequest(res *models.Resource, req dto.ResourceRequest) error {
	t, ok := models.ParseResourceType(req.Type)
	if !ok {
		return apperrors.NewBadRequestError("type must be one of lecture, sheet, assignment, exam, reference, important_question")
	}
	titleAr, titleEn := strings.TrimSpace(req.TitleAr), strings.TrimSpace(req.TitleEn)
	if req.SubjectID <= 0 || titleAr == "" || titleEn == "" {
		return apperrors.NewBadRequestError("Subject ID, type, and titles are required")
	}

	res.SubjectID = req.SubjectID
	res.Type = t
	res.TitleAr = titleAr
	res.TitleEn = titleEn
	res.DescriptionAr = helpers.TrimmedOrNil(req.DescriptionAr)
	res.DescriptionEn = helpers.TrimmedOrNil(req.DescriptionEn)
	res.Source = helpers.TrimmedOrNil(req.Source)
	res.OrderIndex = req.OrderIndex
	return nil
}

func (s *resourceServiceImpl) ListResources(ctx context.Context, filter models.ResourceFilter) ([]models.Resource, error) {
	resources, err := s.resourceRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	models.SortResources(resources)
	return resources, nil
}

func (s *resourceServiceImpl) LatestResources(ctx context.Context, limit int) ([]models.Resource, error) {
	return s.resourceRepo.Latest(ctx, limit)
}

func (s *resourceServiceImpl) GetResource(ctx context.Context, id int64) (*models.Resource, error) {
	return s.resourceRepo.GetByID(ctx, id)
}

func (s *resourceServiceImpl) CreateResource(ctx context.Context, req dto.ResourceRequest, file *multipart.FileHeader, addedBy *int64) (*models.Resource, error) {
	res := &models.Resource{AddedBy: addedBy}
	if err := applyResourceRequest(res, req); err != nil {
		return nil, err
	}
	if _, err := s.subjectRepo.GetByID(ctx, res.SubjectID); err != nil {
		return nil, err
	}

	res.FileURL = helpers.TrimmedOrNil(req.FileURL)
	if file != nil {
		stored, err := uploadFile(ctx, s.storage, file, resourceFolder, s.maxUploadBytes)
		if err != nil {
			return nil, err
		}
		setStoredFile(res, stored)
	}

	if _, err := s.resourceRepo.Create(ctx, res); err != nil {
		if res.FilePath != nil {
			discardFile(ctx, s.storage, *res.FilePath, s.logger)
		}
		return nil, err
	}

	s.logger.Info().Int64("resourceID", res.ID).Int64("subjectID", res.SubjectID).Str("type", string(res.Type)).Msg("Resource created")
	recountSubjects(ctx, s.recounter, s.logger, res.SubjectID)
	return res, nil
}

func setStoredFile(res *models.Resource, stored *filestorage.StoredFile) {
	res.FilePath = helpers.StringPtr(stored.Path)
	res.FileURL = helpers.StringPtr(stored.URL)
	size := stored.Size
	res.FileSize = &size
	res.FileType = helpers.StringPtr(stored.ContentType)
}

func (s *resourceServiceImpl) UpdateResource(ctx context.Context, id int64, req dto.ResourceRequest, file *multipart.FileHeader) (*models.Resource, error) {
	res, err := s.resourceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	previousSubject := res.SubjectID
	previousPath := helpers.Deref(res.FilePath)

	if err := applyResourceRequest(res, req); err != nil {
		return nil, err
	}
	if res.SubjectID != previousSubject {
		if _, err := s.subjectRepo.GetByID(ctx, res.SubjectID); err != nil {
			return nil, err
		}
	}

	replaced := false
	if file != nil {
		stored, err := uploadFile(ctx, s.storage, file, resourceFolder, s.maxUploadBytes)
		if err != nil {
			return nil, err
		}
		setStoredFile(res, stored)
		replaced = true
	} else if link := helpers.TrimmedOrNil(req.FileURL); link != nil && res.FilePath == nil {
		res.FileURL = link
	}

	if err := s.resourceRepo.Update(ctx, res); err != nil {
		if replaced {
			discardFile(ctx, s.storage, helpers.Deref(res.FilePath), s.logger)
		}
		return nil, err
	}
	if replaced {
		discardFile(ctx, s.storage, previousPath, s.logger)
	}

	recountSubjects(ctx, s.recounter, s.logger, previousSubject, res.SubjectID)
	return res, nil
}

func (s *resourceServiceImpl) DeleteResource(ctx context.Context, id int64) error {
	res, err := s.resourceRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.resourceRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.ErrResourceNotFound
		}
		return err
	}

	discardFile(ctx, s.storage, helpers.Deref(res.FilePath), s.logger)
	s.logger.Info().Int64("resourceID", id).Msg("Resource deleted")
	recountSubjects(ctx, s.recounter, s.logger, res.SubjectID)
	return nil
}
