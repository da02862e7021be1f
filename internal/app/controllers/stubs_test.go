package controllers

import (
	"context"
	"mime/multipart"

	"github.com/eee-uofk/coursehub/internal/app/models"
	"github.com/eee-uofk/coursehub/internal/app/models/dto"
	"github.com/eee-uofk/coursehub/internal/app/services"
)

type stubSubjectService struct {
	subjects []models.SubjectSummary
	detail   *dto.SubjectDetailResponse
	created  *dto.SubjectRequest
	err      error
}

func (s *stubSubjectService) ListSubjects(context.Context) ([]models.SubjectSummary, error) {
	return s.subjects, s.err
}

func (s *stubSubjectService) GetSubjectDetail(context.Context, int64) (*dto.SubjectDetailResponse, error) {
	return s.detail, s.err
}

func (s *stubSubjectService) CreateSubject(_ context.Context, req dto.SubjectRequest) (*models.Subject, error) {
	s.created = &req
	if s.err != nil {
		return nil, s.err
	}
	return &models.Subject{ID: 1, Code: req.Code, NameEn: req.NameEn, NameAr: req.NameAr}, nil
}

func (s *stubSubjectService) UpdateSubject(_ context.Context, id int64, req dto.SubjectRequest) (*models.Subject, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.Subject{ID: id, Code: req.Code}, nil
}

func (s *stubSubjectService) DeleteSubject(context.Context, int64) error { return s.err }

type stubResourceService struct {
	filter    models.ResourceFilter
	limit     int
	file      *multipart.FileHeader
	addedBy   *int64
	resources []models.Resource
	err       error
}

func (s *stubResourceService) ListResources(_ context.Context, filter models.ResourceFilter) ([]models.Resource, error) {
	s.filter = filter
	return s.resources, s.err
}

func (s *stubResourceService) LatestResources(_ context.Context, limit int) ([]models.Resource, error) {
	s.limit = limit
	return s.resources, s.err
}

func (s *stubResourceService) GetResource(_ context.Context, id int64) (*models.Resource, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.Resource{ID: id}, nil
}

func (s *stubResourceService) CreateResource(_ context.Context, req dto.ResourceRequest, file *multipart.FileHeader, addedBy *int64) (*models.Resource, error) {
	s.file = file
	s.addedBy = addedBy
	if s.err != nil {
		return nil, s.err
	}
	return &models.Resource{ID: 9, SubjectID: req.SubjectID, Type: models.ResourceType(req.Type), TitleEn: req.TitleEn}, nil
}

func (s *stubResourceService) UpdateResource(_ context.Context, id int64, req dto.ResourceRequest, file *multipart.FileHeader) (*models.Resource, error) {
	s.file = file
	if s.err != nil {
		return nil, s.err
	}
	return &models.Resource{ID: id, SubjectID: req.SubjectID}, nil
}

func (s *stubResourceService) DeleteResource(context.Context, int64) error { return s.err }

type stubOrderingService struct {
	items     []dto.ResourceOrderItem
	direction string
	err       error
}

func (s *stubOrderingService) ApplyOrder(_ context.Context, items []dto.ResourceOrderItem) dto.OrderUpdateResult {
	s.items = items
	return dto.OrderUpdateResult{Updated: items, Failed: []dto.OrderFailure{}}
}

func (s *stubOrderingService) MoveResource(_ context.Context, _ int64, direction string) (dto.OrderUpdateResult, error) {
	s.direction = direction
	return dto.OrderUpdateResult{Updated: []dto.ResourceOrderItem{}, Failed: []dto.OrderFailure{}}, s.err
}

type stubQuestionService struct {
	filter models.QuestionFilter
	images services.QuestionImages
	err    error
}

func (s *stubQuestionService) ListQuestions(_ context.Context, filter models.QuestionFilter) ([]models.Question, error) {
	s.filter = filter
	return []models.Question{}, s.err
}

func (s *stubQuestionService) GetQuestion(_ context.Context, id int64) (*models.Question, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.Question{ID: id}, nil
}

func (s *stubQuestionService) CreateQuestion(_ context.Context, req dto.QuestionRequest, images services.QuestionImages, _ *int64) (*models.Question, error) {
	s.images = images
	if s.err != nil {
		return nil, s.err
	}
	return &models.Question{ID: 2, QuestionTextEn: req.QuestionTextEn}, nil
}

func (s *stubQuestionService) UpdateQuestion(_ context.Context, id int64, _ dto.QuestionRequest, images services.QuestionImages) (*models.Question, error) {
	s.images = images
	if s.err != nil {
		return nil, s.err
	}
	return &models.Question{ID: id}, nil
}

func (s *stubQuestionService) DeleteQuestion(context.Context, int64) error { return s.err }

type stubAnnouncementService struct {
	filter models.AnnouncementFilter
	err    error
}

func (s *stubAnnouncementService) ListAnnouncements(_ context.Context, filter models.AnnouncementFilter) ([]models.Announcement, error) {
	s.filter = filter
	return []models.Announcement{}, s.err
}

func (s *stubAnnouncementService) GetAnnouncement(_ context.Context, id int64) (*models.Announcement, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.Announcement{ID: id}, nil
}

func (s *stubAnnouncementService) CreateAnnouncement(_ context.Context, req dto.AnnouncementRequest, _ *int64) (*models.Announcement, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.Announcement{ID: 5, TitleEn: req.TitleEn}, nil
}

func (s *stubAnnouncementService) UpdateAnnouncement(_ context.Context, id int64, _ dto.AnnouncementRequest) (*models.Announcement, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.Announcement{ID: id}, nil
}

func (s *stubAnnouncementService) DeleteAnnouncement(context.Context, int64) error { return s.err }

type stubReactionService struct {
	reacted models.ReactionType
	err     error
}

func (s *stubReactionService) React(_ context.Context, id int64, reaction models.ReactionType) (*models.AnnouncementReaction, error) {
	s.reacted = reaction
	if s.err != nil {
		return nil, s.err
	}
	return &models.AnnouncementReaction{AnnouncementID: id, ReactionType: reaction, Count: 1}, nil
}

func (s *stubReactionService) GetReactions(_ context.Context, id int64) (*dto.ReactionsResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &dto.ReactionsResponse{AnnouncementID: id, Counts: map[string]int{"like": 2}, Total: 2}, nil
}

type stubStatisticsService struct {
	counters models.StatisticsCounters
	report   *dto.SyncReport
	overall  dto.OverallStatistics
	err      error
}

func (s *stubStatisticsService) GetSubjectStatistics(_ context.Context, id int64) (*models.SubjectStatistics, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.SubjectStatistics{SubjectID: id}, nil
}

func (s *stubStatisticsService) GetOverall(context.Context) dto.OverallStatistics { return s.overall }

func (s *stubStatisticsService) ListStatistics(context.Context) ([]models.SubjectStatisticsView, error) {
	return []models.SubjectStatisticsView{}, s.err
}

func (s *stubStatisticsService) UpdateSubjectStatistics(_ context.Context, id int64, counters models.StatisticsCounters) (*models.SubjectStatistics, error) {
	s.counters = counters
	if s.err != nil {
		return nil, s.err
	}
	return &models.SubjectStatistics{SubjectID: id, StatisticsCounters: counters}, nil
}

func (s *stubStatisticsService) Sync(context.Context) (*dto.SyncReport, error) {
	return s.report, s.err
}

func (s *stubStatisticsService) RecountSubject(context.Context, int64) error { return s.err }
func (s *stubStatisticsService) InvalidateOverall(context.Context)           {}

type stubAuthService struct {
	err error
}

func (s *stubAuthService) Login(_ context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &dto.LoginResponse{Token: "tok", TokenType: "Bearer", ExpiresIn: 3600, User: dto.UserResponse{ID: 1, Username: req.Username, Role: "admin"}}, nil
}

func (s *stubAuthService) Me(_ context.Context, id int64) (*dto.UserResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &dto.UserResponse{ID: id, Username: "admin1", Role: "admin"}, nil
}

type stubHealthService struct {
	resp dto.HealthResponse
}

func (s *stubHealthService) Check(context.Context) dto.HealthResponse { return s.resp }
