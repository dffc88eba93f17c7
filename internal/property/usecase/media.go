package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/Abdurahmanit/GroupProject/property-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/property-service/internal/platform/metrics"
	"github.com/Abdurahmanit/GroupProject/property-service/internal/property/domain"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// mediaManager wraps the store with the upload/release policies listing
// writes share.
type mediaManager struct {
	store   domain.MediaStore
	metrics *metrics.MetricsManager
	log     *logger.Logger
}

func asMediaErr(err error) error {
	if errors.Is(err, domain.ErrMedia) || errors.Is(err, domain.ErrValidation) {
		return err
	}
	return fmt.Errorf("%w: %v", domain.ErrMedia, err)
}

// uploadImages uploads files in parallel and returns the handles in input
// order. The first failure cancels the rest; anything already uploaded is
// released before returning.
func (m *mediaManager) uploadImages(ctx context.Context, files []domain.MediaFile) ([]domain.MediaHandle, error) {
	handles := make([]domain.MediaHandle, len(files))
	uploaded := make([]bool, len(files))

	g, gctx := errgroup.WithContext(ctx)
	for i, f := range files {
		i, f := i, f
		g.Go(func() error {
			h, err := m.store.UploadImage(gctx, f)
			m.metrics.MediaUpload(string(domain.MediaImage), err)
			if err != nil {
				return err
			}
			handles[i], uploaded[i] = h, true
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		var orphans []domain.MediaHandle
		for i, ok := range uploaded {
			if ok {
				orphans = append(orphans, handles[i])
			}
		}
		m.release(ctx, orphans, nil)
		return nil, asMediaErr(err)
	}
	return handles, nil
}

func (m *mediaManager) uploadVideo(ctx context.Context, f *domain.MediaFile) (*domain.MediaHandle, error) {
	if f == nil {
		return nil, nil
	}
	h, err := m.store.UploadVideo(ctx, *f)
	m.metrics.MediaUpload(string(domain.MediaVideo), err)
	if err != nil {
		return nil, asMediaErr(err)
	}
	return &h, nil
}

// release deletes images and video concurrently. Failures are logged and
// counted, never returned. It outlives the request context so a client
// disconnect cannot leave half the assets behind.
func (m *mediaManager) release(ctx context.Context, images []domain.MediaHandle, video *domain.MediaHandle) int {
	ctx = context.WithoutCancel(ctx)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		failures int
	)
	fail := func(kind domain.MediaKind, publicID string, err error) {
		m.metrics.MediaDeleteFailed(string(kind))
		m.log.Warn("Media deletion failed", zap.String("kind", string(kind)), zap.String("public_id", publicID), zap.Error(err))
		mu.Lock()
		failures++
		mu.Unlock()
	}

	if len(images) > 0 {
		ids := make([]string, len(images))
		for i, h := range images {
			ids[i] = h.PublicID
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, res := range m.store.DeleteMany(ctx, ids, domain.MediaImage) {
				if res.Err != nil {
					fail(domain.MediaImage, res.PublicID, res.Err)
				}
			}
		}()
	}
	if video != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := m.store.DeleteOne(ctx, video.PublicID, domain.MediaVideo); err != nil {
				fail(domain.MediaVideo, video.PublicID, err)
			}
		}()
	}
	wg.Wait()
	return failures
}
