package queries

import (
	"context"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LabelFilenameResolver maps a stored label URL back to the filename it was
// stored under. It reports false for labels hosted elsewhere.
type LabelFilenameResolver func(labelURL string) (string, bool)

type GetLabelDocumentsQueryHandler struct {
	db       *gorm.DB
	store    ports.LabelStore
	filename LabelFilenameResolver
}

func NewGetLabelDocumentsQueryHandler(
	db *gorm.DB,
	store ports.LabelStore,
	filename LabelFilenameResolver,
) GetLabelDocumentsQueryHandler {
	return GetLabelDocumentsQueryHandler{
		db:       db,
		store:    store,
		filename: filename,
	}
}

// Handle returns one result per requested id in request order. A fulfillment
// that is unknown, untracked, or whose label lives outside the store gets an
// error result; the others still load.
func (h GetLabelDocumentsQueryHandler) Handle(
	ctx context.Context,
	query GetLabelDocumentsQuery,
) ([]LabelDocumentResult, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	ids := query.FulfillmentIDs()

	type labelRow struct {
		name     string
		labelURL string
	}
	found := make(map[kernel.UUID]labelRow, len(ids))

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			f.id,
			f.name,
			COALESCE(t.label_url, '')
		FROM fulfillments f
		LEFT JOIN tracking_infos t ON t.fulfillment_id = f.id
		WHERE f.id IN ?
	`, rawIDs(ids)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id  uuid.UUID
			row labelRow
		)
		if err = rows.Scan(&id, &row.name, &row.labelURL); err != nil {
			return nil, err
		}
		fid, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		found[fid] = row
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	results := make([]LabelDocumentResult, 0, len(ids))
	for _, id := range ids {
		result := LabelDocumentResult{FulfillmentID: id}
		row, ok := found[id]
		if !ok {
			result.Err = errs.NewObjectNotFoundError("fulfillment", id.String())
			results = append(results, result)
			continue
		}
		result.FulfillmentName = row.name

		filename, stored := h.filename(row.labelURL)
		switch {
		case row.labelURL == "":
			result.Err = errs.NewObjectNotFoundError("label", row.name)
		case !stored:
			result.Err = errs.NewObjectNotFoundErrorWithCause("label", row.name,
				fmt.Errorf("label %s is not held by the label store", row.labelURL))
		default:
			doc, loadErr := h.store.Load(ctx, filename)
			if loadErr != nil {
				result.Err = loadErr
			} else {
				result.Document = &doc
			}
		}
		results = append(results, result)
	}

	return results, nil
}
