package domain

import (
	"context"
	"io"
)

type MediaKind string

const (
	MediaImage MediaKind = "image"
	MediaVideo MediaKind = "video"
)

// MediaHandle points at an externally stored asset. PublicID is the key the
// store uses to delete it.
type MediaHandle struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
}

// MediaFile is an uploaded file waiting to be stored.
type MediaFile struct {
	Filename    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// MediaDeleteResult is the outcome of one deletion in a batch.
type MediaDeleteResult struct {
	PublicID string
	Err      error
}

// MediaStore uploads and deletes listing media. Deletions are best effort:
// failures are reported to the caller and never retried.
type MediaStore interface {
	UploadImage(ctx context.Context, file MediaFile) (MediaHandle, error)
	UploadVideo(ctx context.Context, file MediaFile) (MediaHandle, error)
	DeleteOne(ctx context.Context, publicID string, kind MediaKind) error
	DeleteMany(ctx context.Context, publicIDs []string, kind MediaKind) []MediaDeleteResult
}
