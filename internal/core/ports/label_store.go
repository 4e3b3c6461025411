package ports

import "context"

// LabelDocument is a stored label file.
type LabelDocument struct {
	Filename    string
	ContentType string
	Data        []byte
}

// LabelStore keeps label files and hands out URLs for them.
type LabelStore interface {
	// Store saves data under filename, replacing an older file of the same
	// name, and returns its URL. Failures are *errs.StorageUploadError.
	Store(ctx context.Context, data []byte, filename string) (url string, err error)

	// Load returns *errs.ObjectNotFoundError for an unknown filename.
	Load(ctx context.Context, filename string) (LabelDocument, error)
}
