package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/eee-uofk/coursehub/internal/app/models"
	"github.com/eee-uofk/coursehub/internal/app/models/dto"
	"github.com/eee-uofk/coursehub/internal/pkg/apperrors"
	"github.com/eee-uofk/coursehub/internal/pkg/cache"
)

// Sync recomputes every subject's statistics from the resources and questions tables.
// A failure on one subject is recorded and does not stop the others; only a failure
// to enumerate subjects aborts the run.
func (s *statisticsServiceImpl) Sync(ctx context.Context) (report *dto.SyncReport, err error) {
	if s.opts.Locker != nil {
		release, lockErr := s.opts.Locker.Acquire(ctx, syncLockName)
		if lockErr != nil {
			if errors.Is(lockErr, cache.ErrLockHeld) {
				return nil, apperrors.ErrSyncInProgress
			}
			return nil, fmt.Errorf("acquire sync lock: %w", lockErr)
		}
		defer func() {
			if relErr := release(context.WithoutCancel(ctx)); relErr != nil {
				s.logger.Warn().Err(relErr).Msg("Failed to release sync lock")
			}
		}()
	}

	started := time.Now()
	defer func() {
		if report != nil {
			s.opts.Metrics.ObserveSync(nil, report.Count, len(report.Failed))
		} else {
			s.opts.Metrics.ObserveSync(err, 0, 0)
		}
	}()

	ids, err := s.subjectRepo.ListIDs(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("Statistics sync could not list subjects")
		return nil, fmt.Errorf("list subjects: %w", err)
	}

	var (
		mu       sync.Mutex
		count    int
		failures []dto.SyncFailure
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Concurrency)
	for _, id := range ids {
		subjectID := id
		g.Go(func() error {
			_, recountErr := s.recount(gctx, subjectID)

			mu.Lock()
			defer mu.Unlock()
			if recountErr != nil {
				s.logger.Error().Err(recountErr).Int64("subjectID", subjectID).Msg("Failed to sync subject statistics")
				failures = append(failures, dto.SyncFailure{SubjectID: subjectID, Error: recountErr.Error()})
				return nil
			}
			count++
			return nil
		})
	}
	_ = g.Wait()

	sort.Slice(failures, func(i, j int) bool { return failures[i].SubjectID < failures[j].SubjectID })
	s.InvalidateOverall(ctx)

	report = &dto.SyncReport{
		Count:     count,
		Processed: len(ids),
		Failed:    failures,
		StartedAt: started,
		Duration:  time.Since(started),
	}
	s.logger.Info().
		Int("count", report.Count).
		Int("processed", report.Processed).
		Int("failed", len(report.Failed)).
		Dur("duration", report.Duration).
		Msg("Statistics sync finished")
	return report, nil
}

// RecountSubject recomputes a single subject's statistics
func (s *statisticsServiceImpl) RecountSubject(ctx context.Context, subjectID int64) error {
	if _, err := s.recount(ctx, subjectID); err != nil {
		return err
	}
	s.InvalidateOverall(ctx)
	return nil
}

// recount counts the subject's resources by type and its questions, carries the
// manually maintained lab/practical/tutorial counters over from the prior row, and
// writes all ten counters. An existing row keeps its stored manual counters, so an
// admin edit landing between the read and the write is not lost.
func (s *statisticsServiceImpl) recount(ctx context.Context, subjectID int64) (*models.SubjectStatistics, error) {
	types, err := s.resourceRepo.ListTypesBySubject(ctx, subjectID)
	if err != nil {
		return nil, fmt.Errorf("fetch resource types: %w", err)
	}
	questions, err := s.questionRepo.CountBySubject(ctx, subjectID)
	if err != nil {
		return nil, fmt.Errorf("count questions: %w", err)
	}
	prior, err := s.statsRepo.GetBySubjectID(ctx, subjectID)
	if err != nil {
		return nil, fmt.Errorf("read prior statistics: %w", err)
	}

	var counters models.StatisticsCounters
	if prior != nil {
		counters.TotalLabs = prior.TotalLabs
		counters.TotalPracticals = prior.TotalPracticals
		counters.TotalTutorials = prior.TotalTutorials
	}
	models.CountResourceTypes(types).ApplyTo(&counters)
	counters.TotalQuestions = questions

	stats, err := s.statsRepo.UpsertCounted(ctx, subjectID, counters)
	if err != nil {
		return nil, fmt.Errorf("upsert statistics: %w", err)
	}
	return stats, nil
}
