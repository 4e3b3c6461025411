package queries

import (
	"context"
	"fmt"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PageBreak separates tickets in a rendered document.
const PageBreak = "\f"

type GetPickTicketsQueryHandler struct {
	db *gorm.DB
}

func NewGetPickTicketsQueryHandler(db *gorm.DB) GetPickTicketsQueryHandler {
	return GetPickTicketsQueryHandler{db: db}
}

// Handle returns one ticket per requested id, in request order. Any unknown id
// fails the whole query with *errs.ObjectNotFoundError.
func (h GetPickTicketsQueryHandler) Handle(ctx context.Context, query GetPickTicketsQuery) ([]PickTicket, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	ids := query.FulfillmentIDs()

	tickets, err := h.headers(ctx, ids)
	if err != nil {
		return nil, err
	}
	if err = h.attachItems(ctx, ids, tickets); err != nil {
		return nil, err
	}

	result := make([]PickTicket, 0, len(ids))
	for _, id := range ids {
		ticket, ok := tickets[id]
		if !ok {
			return nil, errs.NewObjectNotFoundError("fulfillment", id.String())
		}
		result = append(result, *ticket)
	}
	return result, nil
}

func (h GetPickTicketsQueryHandler) headers(ctx context.Context, ids []kernel.UUID) (map[kernel.UUID]*PickTicket, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			f.id,
			f.name,
			o.name,
			o.address_line1,
			o.address_line2,
			o.address_line3,
			o.address_line4,
			o.address_city,
			o.address_state,
			o.address_postal_code,
			o.address_phone
		FROM fulfillments f
		JOIN orders o ON o.id = f.order_id
		WHERE f.id IN ?
	`, rawIDs(ids)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tickets := make(map[kernel.UUID]*PickTicket, len(ids))
	for rows.Next() {
		var (
			ticket PickTicket
			id     uuid.UUID
			f      kernel.AddressFields
		)
		err = rows.Scan(
			&id,
			&ticket.FulfillmentName,
			&ticket.OrderName,
			&f.Line1,
			&f.Line2,
			&f.Line3,
			&f.Line4,
			&f.City,
			&f.State,
			&f.PostalCode,
			&f.Phone,
		)
		if err != nil {
			return nil, err
		}

		if ticket.FulfillmentID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		ticket.ShipTo = kernel.NewAddress(f)
		ticket.Items = make([]PickTicketItem, 0)
		tickets[ticket.FulfillmentID] = &ticket
	}

	return tickets, rows.Err()
}

func (h GetPickTicketsQueryHandler) attachItems(
	ctx context.Context,
	ids []kernel.UUID,
	tickets map[kernel.UUID]*PickTicket,
) error {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			fli.fulfillment_id,
			oli.sample_name,
			oli.quantity
		FROM fulfillment_line_items fli
		JOIN order_line_items oli ON oli.id = fli.order_line_item_id
		WHERE fli.fulfillment_id IN ?
		ORDER BY fli.fulfillment_id, fli.position
	`, rawIDs(ids)).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			item PickTicketItem
			id   uuid.UUID
		)
		if err = rows.Scan(&id, &item.SampleName, &item.Quantity); err != nil {
			return err
		}

		fid, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return idErr
		}
		if ticket, ok := tickets[fid]; ok {
			ticket.Items = append(ticket.Items, item)
		}
	}

	return rows.Err()
}

// RenderPickTickets lays the tickets out as one plain-text document, one
// ticket per page.
func RenderPickTickets(tickets []PickTicket) string {
	pages := make([]string, 0, len(tickets))
	for _, t := range tickets {
		var b strings.Builder
		fmt.Fprintf(&b, "PICK TICKET %s\n", t.FulfillmentName)
		fmt.Fprintf(&b, "Order: %s\n\n", t.OrderName)

		b.WriteString("Ship to:\n")
		addr := t.ShipTo
		for _, line := range append([]string{addr.Line1()}, addr.StreetLines()...) {
			if line != "" {
				fmt.Fprintf(&b, "  %s\n", line)
			}
		}
		fmt.Fprintf(&b, "  %s, %s %s\n", addr.City(), addr.State(), addr.PostalCode())
		if addr.Phone() != "" {
			fmt.Fprintf(&b, "  %s\n", addr.Phone())
		}

		b.WriteString("\nItems:\n")
		for _, item := range t.Items {
			fmt.Fprintf(&b, "  [ ] %d x %s\n", item.Quantity, item.SampleName)
		}
		pages = append(pages, b.String())
	}
	return strings.Join(pages, PageBreak)
}
