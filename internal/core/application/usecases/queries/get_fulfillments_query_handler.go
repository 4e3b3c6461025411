package queries

import (
	"context"
	"database/sql"
	"fmt"

	"fulfillment/internal/core/domain/model/fulfillment"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/services"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const selectFulfillmentRows = `
	SELECT
		f.id,
		f.order_id,
		o.name,
		f.vendor_id,
		f.name,
		f.status,
		f.archived,
		COALESCE(f.platform_fulfillment_order_id, ''),
		(SELECT COUNT(*) FROM fulfillment_line_items li WHERE li.fulfillment_id = f.id),
		COALESCE(t.carrier, ''),
		COALESCE(t.number, ''),
		COALESCE(t.label_url, ''),
		COALESCE(t.live_status, '')
	FROM fulfillments f
	JOIN orders o ON o.id = f.order_id
	LEFT JOIN tracking_infos t ON t.fulfillment_id = f.id
`

// GetFulfillmentsQueryHandler reads fulfillment rows with plain SQL.
type GetFulfillmentsQueryHandler struct {
	db *gorm.DB
}

func NewGetFulfillmentsQueryHandler(db *gorm.DB) GetFulfillmentsQueryHandler {
	return GetFulfillmentsQueryHandler{db: db}
}

// Handle returns rows ordered by creation time. Unknown ids are skipped.
func (h GetFulfillmentsQueryHandler) Handle(
	ctx context.Context,
	query GetFulfillmentsQuery,
) ([]GetFulfillmentsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var (
		rows *sql.Rows
		err  error
	)
	if ids := query.FulfillmentIDs(); len(ids) > 0 {
		rows, err = h.db.WithContext(ctx).Raw(
			selectFulfillmentRows+` WHERE f.id IN ? ORDER BY f.created_at, f.name`,
			rawIDs(ids),
		).Rows()
	} else {
		rows, err = h.db.WithContext(ctx).Raw(
			selectFulfillmentRows + ` WHERE f.archived = false ORDER BY f.created_at, f.name`,
		).Rows()
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]GetFulfillmentsQueryResponse, 0)
	for rows.Next() {
		var (
			row                   GetFulfillmentsQueryResponse
			id, orderID, vendorID uuid.UUID
			status                int
		)
		err = rows.Scan(
			&id,
			&orderID,
			&row.OrderName,
			&vendorID,
			&row.Name,
			&status,
			&row.Archived,
			&row.PlatformFulfillmentOrderID,
			&row.LineItemCount,
			&row.Carrier,
			&row.TrackingNumber,
			&row.LabelURL,
			&row.LiveStatus,
		)
		if err != nil {
			return nil, err
		}

		if row.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if row.OrderID, err = kernel.UUIDFromBytes(orderID[:]); err != nil {
			return nil, err
		}
		if row.VendorID, err = kernel.UUIDFromBytes(vendorID[:]); err != nil {
			return nil, err
		}

		s := fulfillment.Status(status)
		if err = s.Validate(); err != nil {
			return nil, fmt.Errorf("fulfillment %s: %w", row.ID, err)
		}
		row.Status = s.String()

		if row.TrackingNumber != "" {
			row.TrackingURL = services.TrackingURL(row.Carrier, row.TrackingNumber)
		}
		result = append(result, row)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func rawIDs(ids []kernel.UUID) []uuid.UUID {
	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, id.Bytes())
	}
	return raw
}
