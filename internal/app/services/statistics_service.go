package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/eee-uofk/coursehub/internal/app/models"
	"github.com/eee-uofk/coursehub/internal/app/models/dto"
	"github.com/eee-uofk/coursehub/internal/app/repositories"
	"github.com/eee-uofk/coursehub/internal/pkg/metrics"
)

const (
	overallCacheKey = "statistics:overall"
	syncLockName    = "statistics-sync"
	syncConcurrency = 4
)

// StatisticsService serves and maintains the denormalized subject statistics
type StatisticsService interface {
	GetSubjectStatistics(ctx context.Context, subjectID int64) (*models.SubjectStatistics, error)
	GetOverall(ctx context.Context) dto.OverallStatistics
	ListStatistics(ctx context.Context) ([]models.SubjectStatisticsView, error)
	UpdateSubjectStatistics(ctx context.Context, subjectID int64, counters models.StatisticsCounters) (*models.SubjectStatistics, error)
	Sync(ctx context.Context) (*dto.SyncReport, error)
	RecountSubject(ctx context.Context, subjectID int64) error
	InvalidateOverall(ctx context.Context)
}

// StatisticsOptions carries the optional collaborators of the statistics service
type StatisticsOptions struct {
	Cache    Cache
	CacheTTL time.Duration
	Locker   Locker
	Metrics  *metrics.Metrics
	// Concurrency bounds parallel per-subject recounts during a sync
	Concurrency int
}

type statisticsServiceImpl struct {
	subjectRepo  repositories.ISubjectRepository
	resourceRepo repositories.IResourceRepository
	questionRepo repositories.IQuestionRepository
	statsRepo    repositories.IStatisticsRepository
	opts         StatisticsOptions
	logger       zerolog.Logger
}

// NewStatisticsService creates a new statistics service
func NewStatisticsService(
	subjectRepo repositories.ISubjectRepository,
	resourceRepo repositories.IResourceRepository,
	questionRepo repositories.IQuestionRepository,
	statsRepo repositories.IStatisticsRepository,
	opts StatisticsOptions,
	logger zerolog.Logger,
) StatisticsService {
	if opts.Concurrency <= 0 {
		opts.Concurrency = syncConcurrency
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = 5 * time.Minute
	}
	return &statisticsServiceImpl{
		subjectRepo:  subjectRepo,
		resourceRepo: resourceRepo,
		questionRepo: questionRepo,
		statsRepo:    statsRepo,
		opts:         opts,
		logger:       logger,
	}
}

// GetSubjectStatistics returns the subject's row, or a zero-filled record when none exists yet
func (s *statisticsServiceImpl) GetSubjectStatistics(ctx context.Context, subjectID int64) (*models.SubjectStatistics, error) {
	stats, err := s.statsRepo.GetBySubjectID(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	if stats == nil {
		return &models.SubjectStatistics{SubjectID: subjectID}, nil
	}
	return stats, nil
}

// GetOverall sums all statistics rows and counts subjects live. It never fails:
// store errors yield zeros. Only the counter sums are cached.
func (s *statisticsServiceImpl) GetOverall(ctx context.Context) dto.OverallStatistics {
	totals, err := s.overallTotals(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to sum statistics, returning zeros")
		return dto.OverallStatistics{}
	}
	count, err := s.subjectRepo.Count(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to count subjects, returning zeros")
		return dto.OverallStatistics{}
	}

	return dto.OverallStatistics{
		TotalSubjects:           count,
		TotalLectures:           int64(totals.TotalLectures),
		TotalAssignments:        int64(totals.TotalAssignments),
		TotalExams:              int64(totals.TotalExams),
		TotalSheets:             int64(totals.TotalSheets),
		TotalReferences:         int64(totals.TotalReferences),
		TotalImportantQuestions: int64(totals.TotalImportantQuestions),
		TotalQuestions:          int64(totals.TotalQuestions),
		TotalLabs:               int64(totals.TotalLabs),
		TotalPracticals:         int64(totals.TotalPracticals),
		TotalTutorials:          int64(totals.TotalTutorials),
	}
}

func (s *statisticsServiceImpl) overallTotals(ctx context.Context) (models.StatisticsCounters, error) {
	var totals models.StatisticsCounters
	if s.opts.Cache != nil {
		found, err := s.opts.Cache.Get(ctx, overallCacheKey, &totals)
		if err != nil {
			s.logger.Warn().Err(err).Msg("Overall statistics cache read failed")
		} else if found {
			return totals, nil
		}
	}

	totals, err := s.statsRepo.Totals(ctx)
	if err != nil {
		return models.StatisticsCounters{}, err
	}
	if s.opts.Cache != nil {
		if err := s.opts.Cache.Set(ctx, overallCacheKey, totals, s.opts.CacheTTL); err != nil {
			s.logger.Warn().Err(err).Msg("Overall statistics cache write failed")
		}
	}
	return totals, nil
}

// ListStatistics returns every subject with its counters
func (s *statisticsServiceImpl) ListStatistics(ctx context.Context) ([]models.SubjectStatisticsView, error) {
	return s.statsRepo.ListWithSubjects(ctx)
}

// UpdateSubjectStatistics overwrites all ten counters of a subject
func (s *statisticsServiceImpl) UpdateSubjectStatistics(ctx context.Context, subjectID int64, counters models.StatisticsCounters) (*models.SubjectStatistics, error) {
	if _, err := s.subjectRepo.GetByID(ctx, subjectID); err != nil {
		return nil, err
	}

	stats, err := s.statsRepo.Upsert(ctx, subjectID, counters)
	if err != nil {
		return nil, err
	}
	s.InvalidateOverall(ctx)

	s.logger.Info().Int64("subjectID", subjectID).Msg("Subject statistics overridden")
	return stats, nil
}

// InvalidateOverall drops the cached overall totals
func (s *statisticsServiceImpl) InvalidateOverall(ctx context.Context) {
	if s.opts.Cache == nil {
		return
	}
	if err := s.opts.Cache.Delete(ctx, overallCacheKey); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to invalidate overall statistics cache")
	}
}
