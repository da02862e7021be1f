package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/eee-uofk/coursehub/internal/app/models"
	"github.com/eee-uofk/coursehub/internal/app/models/dto"
	"github.com/eee-uofk/coursehub/internal/app/repositories"
	"github.com/eee-uofk/coursehub/internal/pkg/apperrors"
)

const (
	MoveUp   = "up"
	MoveDown = "down"

	orderConcurrency = 8
)

// OrderingService persists admin-assigned resource order within a subject
type OrderingService interface {
	// ApplyOrder sets each pair independently; failures are reported per item and never roll back others
	ApplyOrder(ctx context.Context, items []dto.ResourceOrderItem) dto.OrderUpdateResult
	// MoveResource swaps a resource with its neighbour in the subject's display order
	MoveResource(ctx context.Context, resourceID int64, direction string) (dto.OrderUpdateResult, error)
}

type orderingServiceImpl struct {
	resourceRepo repositories.IResourceRepository
	logger       zerolog.Logger
}

// NewOrderingService creates a new ordering service
func NewOrderingService(resourceRepo repositories.IResourceRepository, logger zerolog.Logger) OrderingService {
	return &orderingServiceImpl{resourceRepo: resourceRepo, logger: logger}
}

func (s *orderingServiceImpl) ApplyOrder(ctx context.Context, items []dto.ResourceOrderItem) dto.OrderUpdateResult {
	errs := make([]error, len(items))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(orderConcurrency)
	for i, item := range items {
		i, item := i, item
		g.Go(func() error {
			if item.OrderIndex == nil {
				errs[i] = fmt.Errorf("%w: order_index is required", apperrors.ErrValidationFailed)
				return nil
			}
			errs[i] = s.resourceRepo.UpdateOrderIndex(gctx, item.ID, *item.OrderIndex)
			return nil
		})
	}
	_ = g.Wait()

	result := dto.OrderUpdateResult{Updated: []dto.ResourceOrderItem{}}
	for i, item := range items {
		if errs[i] != nil {
			s.logger.Warn().Err(errs[i]).Int64("resourceID", item.ID).Msg("Failed to update resource order")
			result.Failed = append(result.Failed, dto.OrderFailure{ID: item.ID, Error: errs[i].Error()})
			continue
		}
		result.Updated = append(result.Updated, item)
	}
	return result
}

func (s *orderingServiceImpl) MoveResource(ctx context.Context, resourceID int64, direction string) (dto.OrderUpdateResult, error) {
	if direction != MoveUp && direction != MoveDown {
		return dto.OrderUpdateResult{}, apperrors.NewBadRequestError("direction must be up or down")
	}

	resource, err := s.resourceRepo.GetByID(ctx, resourceID)
	if err != nil {
		return dto.OrderUpdateResult{}, err
	}

	siblings, err := s.resourceRepo.List(ctx, models.ResourceFilter{SubjectID: &resource.SubjectID})
	if err != nil {
		return dto.OrderUpdateResult{}, err
	}
	models.SortResources(siblings)

	pairs := MovePairs(siblings, resourceID, direction)
	if len(pairs) == 0 {
		return dto.OrderUpdateResult{Updated: []dto.ResourceOrderItem{}}, nil
	}
	return s.ApplyOrder(ctx, pairs), nil
}

// MovePairs swaps the resource with its neighbour in the sorted list and renumbers
// the list densely from zero. Only resources whose index changes are returned.
// Moving the first item up or the last item down yields no pairs.
func MovePairs(sorted []models.Resource, resourceID int64, direction string) []dto.ResourceOrderItem {
	pos := -1
	for i, r := range sorted {
		if r.ID == resourceID {
			pos = i
			break
		}
	}
	if pos < 0 {
		return nil
	}

	target := pos - 1
	if direction == MoveDown {
		target = pos + 1
	}
	if target < 0 || target >= len(sorted) {
		return nil
	}

	reordered := make([]models.Resource, len(sorted))
	copy(reordered, sorted)
	reordered[pos], reordered[target] = reordered[target], reordered[pos]

	var pairs []dto.ResourceOrderItem
	for i, r := range reordered {
		if r.OrderIndex != nil && *r.OrderIndex == i {
			continue
		}
		idx := i
		pairs = append(pairs, dto.ResourceOrderItem{ID: r.ID, OrderIndex: &idx})
	}
	return pairs
}
