// Package labelstore keeps purchased label files in postgres and serves them
// back under a stable public URL.
package labelstore

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	ContentTypePDF = "application/pdf"
	LabelsPath     = "/api/v1/labels/"
)

// LabelDocumentDTO is one stored label file.
type LabelDocumentDTO struct {
	Filename    string `gorm:"type:varchar(255);primaryKey"`
	ContentType string `gorm:"type:varchar(64);not null"`
	Data        []byte `gorm:"type:bytea;not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName specifies the database table name for label files.
func (LabelDocumentDTO) TableName() string {
	return "label_documents"
}

// GormLabelStore implements ports.LabelStore.
type GormLabelStore struct {
	db            *gorm.DB
	publicBaseURL string
}

// NewGormLabelStore returns a store whose URLs are rooted at publicBaseURL,
// for example "https://console.example.com".
func NewGormLabelStore(db *gorm.DB, publicBaseURL string) *GormLabelStore {
	return &GormLabelStore{
		db:            db,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
	}
}

// Store saves the label, replacing an older file with the same name.
func (s *GormLabelStore) Store(ctx context.Context, data []byte, filename string) (string, error) {
	if strings.TrimSpace(filename) == "" {
		return "", errs.NewStorageUploadError(filename, errs.NewValueIsRequiredError("filename"))
	}
	if len(data) == 0 {
		return "", errs.NewStorageUploadError(filename, errs.NewValueIsRequiredError("label data"))
	}

	dto := LabelDocumentDTO{
		Filename:    filename,
		ContentType: ContentTypePDF,
		Data:        data,
	}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "filename"}},
			DoUpdates: clause.AssignmentColumns([]string{"content_type", "data", "updated_at"}),
		}).
		Create(&dto).Error
	if err != nil {
		return "", errs.NewStorageUploadError(filename, err)
	}

	return s.URL(filename), nil
}

func (s *GormLabelStore) Load(ctx context.Context, filename string) (ports.LabelDocument, error) {
	var dto LabelDocumentDTO
	if err := s.db.WithContext(ctx).First(&dto, "filename = ?", filename).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.LabelDocument{}, errs.NewObjectNotFoundError("label", filename)
		}
		return ports.LabelDocument{}, err
	}

	return ports.LabelDocument{
		Filename:    dto.Filename,
		ContentType: dto.ContentType,
		Data:        dto.Data,
	}, nil
}

// URL is the public address of a stored label.
func (s *GormLabelStore) URL(filename string) string {
	return s.publicBaseURL + LabelsPath + url.PathEscape(filename)
}

// FilenameFromURL extracts the stored filename from a label URL produced by
// URL. It reports false for URLs that point elsewhere.
func FilenameFromURL(labelURL string) (string, bool) {
	u, err := url.Parse(labelURL)
	if err != nil {
		return "", false
	}
	name, ok := strings.CutPrefix(u.Path, LabelsPath)
	if !ok || name == "" || strings.Contains(name, "/") {
		return "", false
	}
	return name, true
}
