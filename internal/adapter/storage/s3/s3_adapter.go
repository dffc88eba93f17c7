package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/Abdurahmanit/GroupProject/property-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/property-service/internal/property/domain"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

const (
	imageFolder = "properties/images"
	videoFolder = "properties/videos"
)

type Options struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	// PublicURL overrides the endpoint in returned media URLs, e.g. a CDN.
	PublicURL string
}

// S3Storage keeps listing media in an S3-compatible bucket. The object key
// is the media handle's public id.
type S3Storage struct {
	client  *minio.Client
	bucket  string
	baseURL string
	log     *logger.Logger
}

func NewS3Storage(ctx context.Context, opts Options, log *logger.Logger) (*S3Storage, error) {
	log = log.Named("S3Storage")
	log.Info("Initializing S3 storage", zap.String("endpoint", opts.Endpoint), zap.String("bucket", opts.Bucket), zap.Bool("use_ssl", opts.UseSSL))

	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client for %s: %w", opts.Endpoint, err)
	}

	exists, err := client.BucketExists(ctx, opts.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %s: %w", opts.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, opts.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket %s: %w", opts.Bucket, err)
		}
		log.Info("Bucket created", zap.String("bucket", opts.Bucket))
	}

	base := strings.TrimRight(opts.PublicURL, "/")
	if base == "" {
		base = client.EndpointURL().String()
	}
	return &S3Storage{client: client, bucket: opts.Bucket, baseURL: base, log: log}, nil
}

func (s *S3Storage) UploadImage(ctx context.Context, file domain.MediaFile) (domain.MediaHandle, error) {
	data, err := io.ReadAll(file.Reader)
	if err != nil {
		return domain.MediaHandle{}, fmt.Errorf("%w: read image %s: %v", domain.ErrMedia, file.Filename, err)
	}

	contentType := file.ContentType
	out, transformedType, err := transformImage(data, ImageProfile)
	if errors.Is(err, domain.ErrValidation) {
		return domain.MediaHandle{}, fmt.Errorf("%s: %w", file.Filename, err)
	}
	if err != nil {
		return domain.MediaHandle{}, fmt.Errorf("%w: %s is not a readable image: %v", domain.ErrValidation, file.Filename, err)
	}
	if transformedType != "" {
		contentType = transformedType
	}
	return s.put(ctx, imageFolder, file.Filename, out, contentType, ImageProfile)
}

// UploadVideo stores the video as-is and records the delivery profile as
// object metadata for the transcoding pipeline in front of the bucket.
func (s *S3Storage) UploadVideo(ctx context.Context, file domain.MediaFile) (domain.MediaHandle, error) {
	data, err := io.ReadAll(file.Reader)
	if err != nil {
		return domain.MediaHandle{}, fmt.Errorf("%w: read video %s: %v", domain.ErrMedia, file.Filename, err)
	}
	return s.put(ctx, videoFolder, file.Filename, data, file.ContentType, VideoProfile)
}

func (s *S3Storage) put(ctx context.Context, folder, filename string, data []byte, contentType string, profile Profile) (domain.MediaHandle, error) {
	key := fmt.Sprintf("%s/%s%s", folder, uuid.New().String(), strings.ToLower(filepath.Ext(filename)))

	info, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
		UserMetadata: map[string]string{
			"original-filename": filepath.Base(filename),
			"transform":         profile.Name,
		},
	})
	if err != nil {
		s.log.Error("PutObject failed", zap.String("key", key), zap.Error(err))
		return domain.MediaHandle{}, fmt.Errorf("%w: upload %s: %v", domain.ErrMedia, filename, err)
	}

	s.log.Debug("Object uploaded", zap.String("key", info.Key), zap.Int64("size", info.Size))
	return domain.MediaHandle{
		URL:      fmt.Sprintf("%s/%s/%s", s.baseURL, s.bucket, key),
		PublicID: key,
	}, nil
}

func (s *S3Storage) DeleteOne(ctx context.Context, publicID string, kind domain.MediaKind) error {
	if publicID == "" {
		return nil
	}
	if err := s.client.RemoveObject(ctx, s.bucket, publicID, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("%w: delete %s %s: %v", domain.ErrMedia, kind, publicID, err)
	}
	return nil
}

// DeleteMany removes the objects in one batch request and reports a result
// per id, in input order.
func (s *S3Storage) DeleteMany(ctx context.Context, publicIDs []string, kind domain.MediaKind) []domain.MediaDeleteResult {
	results := make([]domain.MediaDeleteResult, len(publicIDs))
	objects := make(chan minio.ObjectInfo, len(publicIDs))
	for i, id := range publicIDs {
		results[i].PublicID = id
		if id != "" {
			objects <- minio.ObjectInfo{Key: id}
		}
	}
	close(objects)

	failed := make(map[string]error)
	for rerr := range s.client.RemoveObjects(ctx, s.bucket, objects, minio.RemoveObjectsOptions{}) {
		failed[rerr.ObjectName] = fmt.Errorf("%w: delete %s %s: %v", domain.ErrMedia, kind, rerr.ObjectName, rerr.Err)
	}
	for i := range results {
		results[i].Err = failed[results[i].PublicID]
	}
	return results
}
