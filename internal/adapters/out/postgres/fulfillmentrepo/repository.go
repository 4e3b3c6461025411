package fulfillmentrepo

import (
	"context"
	"errors"

	"fulfillment/internal/adapters/out/postgres/trackingrepo"
	"fulfillment/internal/core/domain/model/fulfillment"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormFulfillmentRepository implements FulfillmentRepository using GORM.
type GormFulfillmentRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormFulfillmentRepository creates a new GORM fulfillment repository.
func NewGormFulfillmentRepository(db *gorm.DB, tracker aggregateTracker) *GormFulfillmentRepository {
	return &GormFulfillmentRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new fulfillment with its line items.
func (r *GormFulfillmentRepository) Add(ctx context.Context, aggregate *fulfillment.Fulfillment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves status, archive flag and platform link. Line items never change
// after creation. The tracking row is owned by the ledger and is removed only
// when ClearTracking was applied to the aggregate.
func (r *GormFulfillmentRepository) Update(ctx context.Context, aggregate *fulfillment.Fulfillment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	id := aggregate.ID().Bytes()
	result := r.db.WithContext(ctx).
		Model(&FulfillmentDTO{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":                        int(aggregate.Status()),
			"archived":                      aggregate.IsArchived(),
			"platform_fulfillment_order_id": aggregate.PlatformFulfillmentOrderID(),
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("fulfillment", aggregate.ID().String())
	}

	if aggregate.TrackingCleared() {
		if err := r.db.WithContext(ctx).
			Delete(&trackingrepo.TrackingInfoDTO{}, "fulfillment_id = ?", id).Error; err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a fulfillment by ID with its line items and tracking.
func (r *GormFulfillmentRepository) Get(ctx context.Context, id kernel.UUID) (*fulfillment.Fulfillment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto FulfillmentDTO
	if err := r.preloaded(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("fulfillment", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// ListByOrder retrieves the fulfillments of an order in creation order.
func (r *GormFulfillmentRepository) ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*fulfillment.Fulfillment, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []FulfillmentDTO
	if err := r.preloaded(ctx).Where("order_id = ?", orderID.Bytes()).Order("created_at, name").Find(&dtos).Error; err != nil {
		return nil, err
	}

	fulfillments := make([]*fulfillment.Fulfillment, 0, len(dtos))
	for _, dto := range dtos {
		f, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		fulfillments = append(fulfillments, f)
	}

	return fulfillments, nil
}

func (r *GormFulfillmentRepository) preloaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("LineItems", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Preload("Tracking")
}
