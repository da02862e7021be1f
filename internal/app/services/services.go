package services

import (
	"context"
	"time"
)

// Services defined in this package:
// - StatisticsService: read model, manual override and the sync aggregator
// - OrderingService: applies resource order_index changes
// - SubjectService, ResourceService, QuestionService, AnnouncementService: content CRUD
// - ReactionService: announcement reaction counters
// - AuthService: admin login
// - HealthService: database table probes

// Cache is the subset of a JSON key/value cache the services use
type Cache interface {
	Get(ctx context.Context, key string, dst interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// Locker hands out named cross-process locks
type Locker interface {
	Acquire(ctx context.Context, name string) (release func(context.Context) error, err error)
}

// OverallInvalidator drops cached overall statistics after catalogue changes
type OverallInvalidator interface {
	InvalidateOverall(ctx context.Context)
}

// Recounter recomputes one subject's statistics after a content write
type Recounter interface {
	RecountSubject(ctx context.Context, subjectID int64) error
}
