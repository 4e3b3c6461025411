package trackingrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/fulfillment"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTrackingLedger implements ports.TrackingLedger.
type GormTrackingLedger struct {
	db *gorm.DB
}

func NewGormTrackingLedger(db *gorm.DB) *GormTrackingLedger {
	return &GormTrackingLedger{db: db}
}

func (l *GormTrackingLedger) Get(ctx context.Context, fulfillmentID kernel.UUID) (*fulfillment.TrackingInfo, error) {
	if err := fulfillmentID.Validate(); err != nil {
		return nil, err
	}

	var dto TrackingInfoDTO
	err := l.db.WithContext(ctx).First(&dto, "fulfillment_id = ?", fulfillmentID.Bytes()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	info, err := ToDomain(dto)
	if err != nil {
		return nil, err
	}
	return &info, nil
}

// Record overwrites the carrier, number and label and clears the live status,
// which belonged to the previous number.
func (l *GormTrackingLedger) Record(ctx context.Context, fulfillmentID kernel.UUID, info fulfillment.TrackingInfo) error {
	if err := errors.Join(fulfillmentID.Validate(), info.Validate()); err != nil {
		return err
	}

	dto := FromDomain(fulfillmentID, info)
	return l.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "fulfillment_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"carrier", "number", "label_url", "live_status", "updated_at"}),
		}).
		Create(&dto).Error
}

func (l *GormTrackingLedger) RecordIfAbsent(
	ctx context.Context,
	fulfillmentID kernel.UUID,
	info fulfillment.TrackingInfo,
) (fulfillment.TrackingInfo, bool, error) {
	if err := errors.Join(fulfillmentID.Validate(), info.Validate()); err != nil {
		return fulfillment.TrackingInfo{}, false, err
	}

	dto := FromDomain(fulfillmentID, info)
	result := l.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "fulfillment_id"}},
			DoNothing: true,
		}).
		Create(&dto)
	if result.Error != nil {
		return fulfillment.TrackingInfo{}, false, result.Error
	}
	if result.RowsAffected > 0 {
		return info, true, nil
	}

	var existing TrackingInfoDTO
	if err := l.db.WithContext(ctx).First(&existing, "fulfillment_id = ?", fulfillmentID.Bytes()).Error; err != nil {
		return fulfillment.TrackingInfo{}, false, err
	}

	stored, err := ToDomain(existing)
	if err != nil {
		return fulfillment.TrackingInfo{}, false, err
	}
	return stored, false, nil
}

func (l *GormTrackingLedger) UpdateLiveStatus(ctx context.Context, fulfillmentID kernel.UUID, status string) error {
	if err := fulfillmentID.Validate(); err != nil {
		return err
	}

	result := l.db.WithContext(ctx).
		Model(&TrackingInfoDTO{}).
		Where("fulfillment_id = ?", fulfillmentID.Bytes()).
		Update("live_status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("tracking", fulfillmentID.String())
	}
	return nil
}

func (l *GormTrackingLedger) ListActive(ctx context.Context) ([]ports.TrackedFulfillment, error) {
	var dtos []TrackingInfoDTO
	err := l.db.WithContext(ctx).
		Model(&TrackingInfoDTO{}).
		Joins("JOIN fulfillments ON fulfillments.id = tracking_infos.fulfillment_id").
		Where("fulfillments.archived = ? AND fulfillments.status NOT IN ?",
			false, []int{int(fulfillment.Complete), int(fulfillment.Cancelled)}).
		Order("tracking_infos.created_at").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	active := make([]ports.TrackedFulfillment, 0, len(dtos))
	for _, dto := range dtos {
		id, idErr := kernel.UUIDFromBytes(dto.FulfillmentID[:])
		if idErr != nil {
			return nil, idErr
		}
		info, infoErr := ToDomain(dto)
		if infoErr != nil {
			return nil, infoErr
		}
		active = append(active, ports.TrackedFulfillment{FulfillmentID: id, Tracking: info})
	}

	return active, nil
}
