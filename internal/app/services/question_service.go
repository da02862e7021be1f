package services

import (
	"context"
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

const questionFolder = "questions"

// QuestionImages carries the optional uploads of a question form
type QuestionImages struct {
	Image       *multipart.FileHeader
	AnswerImage *multipart.FileHeader
}

// QuestionService defines question bank operations
type QuestionService interface {
	ListQuestions(ctx context.Context, filter models.QuestionFilter) ([]models.Question, error)
	GetQuestion(ctx context.Context, id int64) (*models.Question, error)
	CreateQuestion(ctx context.Context, req dto.QuestionRequest, images QuestionImages, addedBy *int64) (*models.Question, error)
	UpdateQuestion(ctx context.Context, id int64, req dto.QuestionRequest, images QuestionImages) (*models.Question, error)
	DeleteQuestion(ctx context.Context, id int64) error
}

type questionServiceImpl struct {
	questionRepo   repositories.IQuestionRepository
	subjectRepo    repositories.ISubjectRepository
	storage        filestorage.FileStorage
	recounter      Recounter
	maxUploadBytes int64
	logger         zerolog.Logger
}

// NewQuestionService creates a new question service
func NewQuestionService(
	questionRepo repositories.IQuestionRepository,
	subjectRepo repositories.ISubjectRepository,
	storage filestorage.FileStorage,
	recounter Recounter,
	maxUploadBytes int64,
	logger zerolog.Logger,
) QuestionService {
	return &questionServiceImpl{
		questionRepo:   questionRepo,
		subjectRepo:    subjectRepo,
		storage:        storage,
		recounter:      recounter,
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
	}
}

func subjectIDOf(q *models.Question) int64 {
	if q == nil || q.SubjectID == nil {
		return 0
	}
	return *q.SubjectID
}

func applyQuestionRequest(q *models.Question, req dto.QuestionRequest) error {
	textAr, textEn := strings.TrimSpace(req.QuestionTextAr), strings.TrimSpace(req.QuestionTextEn)
	if textAr == "" || textEn == "" {
		return apperrors.NewBadRequestError("Question text in both languages is required")
	}

	difficulty := models.Difficulty(strings.ToLower(strings.TrimSpace(req.Difficulty)))
	switch difficulty {
	case "":
		difficulty = models.DifficultyMedium
	case models.DifficultyEasy, models.DifficultyMedium, models.DifficultyHard:
	default:
		return apperrors.NewBadRequestError("difficulty must be one of easy, medium, hard")
	}

	q.SubjectID = req.SubjectID
	q.TopicAr = helpers.TrimmedOrNil(req.TopicAr)
	q.TopicEn = helpers.TrimmedOrNil(req.TopicEn)
	q.QuestionTextAr = textAr
	q.QuestionTextEn = textEn
	q.AnswerTextAr = helpers.TrimmedOrNil(req.AnswerTextAr)
	q.AnswerTextEn = helpers.TrimmedOrNil(req.AnswerTextEn)
	q.Difficulty = difficulty
	return nil
}

func (s *questionServiceImpl) ensureSubject(ctx context.Context, subjectID *int64) error {
	if subjectID == nil {
		return nil
	}
	_, err := s.subjectRepo.GetByID(ctx, *subjectID)
	return err
}

// storeImages uploads whichever images are present and returns the stored paths
func (s *questionServiceImpl) storeImages(ctx context.Context, q *models.Question, images QuestionImages) ([]string, error) {
	var paths []string
	for _, item := range []struct {
		file *multipart.FileHeader
		dst  **string
	}{
		{images.Image, &q.ImageURL},
		{images.AnswerImage, &q.AnswerImageURL},
	} {
		if item.file == nil {
			continue
		}
		stored, err := uploadFile(ctx, s.storage, item.file, questionFolder, s.maxUploadBytes)
		if err != nil {
			for _, p := range paths {
				discardFile(ctx, s.storage, p, s.logger)
			}
			return nil, err
		}
		*item.dst = helpers.StringPtr(stored.URL)
		paths = append(paths, stored.Path)
	}
	return paths, nil
}

func (s *questionServiceImpl) ListQuestions(ctx context.Context, filter models.QuestionFilter) ([]models.Question, error) {
	return s.questionRepo.List(ctx, filter)
}

func (s *questionServiceImpl) GetQuestion(ctx context.Context, id int64) (*models.Question, error) {
	return s.questionRepo.GetByID(ctx, id)
}

func (s *questionServiceImpl) CreateQuestion(ctx context.Context, req dto.QuestionRequest, images QuestionImages, addedBy *int64) (*models.Question, error) {
	q := &models.Question{AddedBy: addedBy}
	if err := applyQuestionRequest(q, req); err != nil {
		return nil, err
	}
	if err := s.ensureSubject(ctx, q.SubjectID); err != nil {
		return nil, err
	}

	paths, err := s.storeImages(ctx, q, images)
	if err != nil {
		return nil, err
	}
	if _, err := s.questionRepo.Create(ctx, q); err != nil {
		for _, p := range paths {
			discardFile(ctx, s.storage, p, s.logger)
		}
		return nil, err
	}

	s.logger.Info().Int64("questionID", q.ID).Msg("Question created")
	recountSubjects(ctx, s.recounter, s.logger, subjectIDOf(q))
	return q, nil
}

func (s *questionServiceImpl) UpdateQuestion(ctx context.Context, id int64, req dto.QuestionRequest, images QuestionImages) (*models.Question, error) {
	q, err := s.questionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	previousSubject := subjectIDOf(q)

	if err := applyQuestionRequest(q, req); err != nil {
		return nil, err
	}
	if subjectIDOf(q) != previousSubject {
		if err := s.ensureSubject(ctx, q.SubjectID); err != nil {
			return nil, err
		}
	}
	if req.RemoveImage {
		q.ImageURL = nil
	}
	if req.RemoveAnswerImage {
		q.AnswerImageURL = nil
	}

	paths, err := s.storeImages(ctx, q, images)
	if err != nil {
		return nil, err
	}
	if err := s.questionRepo.Update(ctx, q); err != nil {
		for _, p := range paths {
			discardFile(ctx, s.storage, p, s.logger)
		}
		return nil, err
	}

	recountSubjects(ctx, s.recounter, s.logger, previousSubject, subjectIDOf(q))
	return q, nil
}

func (s *questionServiceImpl) DeleteQuestion(ctx context.Context, id int64) error {
	q, err := s.questionRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.questionRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("questionID", id).Msg("Question deleted")
	recountSubjects(ctx, s.recounter, s.logger, subjectIDOf(q))
	return nil
}
