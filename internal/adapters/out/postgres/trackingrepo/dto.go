// Package trackingrepo is the tracking ledger: one tracking row per
// fulfillment, written with single-row upserts outside any unit of work.
package trackingrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/fulfillment"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// TrackingInfoDTO is keyed by fulfillment, which is what makes the
// insert-if-absent write race free.
type TrackingInfoDTO struct {
	FulfillmentID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Carrier       string    `gorm:"type:varchar(32)"`
	Number        string    `gorm:"type:varchar(64);not null;index"`
	LabelURL      string    `gorm:"type:text"`
	LiveStatus    string    `gorm:"type:text"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName specifies the database table name for tracking records.
func (TrackingInfoDTO) TableName() string {
	return "tracking_infos"
}

// FromDomain maps a tracking record for the given fulfillment.
func FromDomain(fulfillmentID kernel.UUID, info fulfillment.TrackingInfo) TrackingInfoDTO {
	return TrackingInfoDTO{
		FulfillmentID: fulfillmentID.Bytes(),
		Carrier:       info.Carrier(),
		Number:        info.Number(),
		LabelURL:      info.LabelURL(),
		LiveStatus:    info.LiveStatus(),
	}
}

// ToDomain restores the tracking record including its live status.
func ToDomain(dto TrackingInfoDTO) (fulfillment.TrackingInfo, error) {
	return fulfillment.RestoreTrackingInfo(dto.Carrier, dto.Number, dto.LabelURL, dto.LiveStatus)
}
