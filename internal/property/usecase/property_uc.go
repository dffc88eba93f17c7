package usecase

import (
	"context"
	"fmt"
	"slices"

	"github.com/Abdurahmanit/GroupProject/property-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/property-service/internal/platform/metrics"
	"github.com/Abdurahmanit/GroupProject/property-service/internal/property/domain"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("property-service/usecase")

// PropertyUsecase owns the listing lifecycle: validation, media handling
// and persistence.
type PropertyUsecase struct {
	repo    domain.PropertyRepository
	media   *mediaManager
	events  domain.EventPublisher
	metrics *metrics.MetricsManager
	log     *logger.Logger
}

func NewPropertyUsecase(repo domain.PropertyRepository, store domain.MediaStore, events domain.EventPublisher, m *metrics.MetricsManager, log *logger.Logger) *PropertyUsecase {
	log = log.Named("PropertyUsecase")
	return &PropertyUsecase{
		repo:    repo,
		media:   &mediaManager{store: store, metrics: m, log: log},
		events:  events,
		metrics: m,
		log:     log,
	}
}

func (uc *PropertyUsecase) Create(ctx context.Context, in domain.PropertyInput, images []domain.MediaFile, video *domain.MediaFile) (*domain.Property, error) {
	ctx, span := tracer.Start(ctx, "PropertyUsecase.Create", oteltrace.WithAttributes(
		attribute.Int("images", len(images)),
		attribute.Bool("video", video != nil),
	))
	defer span.End()

	p, err := in.ToProperty()
	if err != nil {
		return nil, err
	}
	if len(images) > domain.MaxImages {
		return nil, fmt.Errorf("%w: maximum %d images allowed", domain.ErrValidation, domain.MaxImages)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	uploaded, err := uc.media.uploadImages(ctx, images)
	if err != nil {
		uc.log.Error("Image upload failed, listing not created", zap.Error(err))
		return nil, err
	}
	vh, err := uc.media.uploadVideo(ctx, video)
	if err != nil {
		uc.log.Error("Video upload failed, listing not created", zap.Error(err))
		uc.media.release(ctx, uploaded, nil)
		return nil, err
	}
	p.Images = uploaded
	p.Video = vh

	if err := uc.repo.Create(ctx, p); err != nil {
		uc.media.release(ctx, uploaded, vh)
		return nil, err
	}

	uc.metrics.PropertyCreated()
	uc.publish(ctx, domain.SubjectPropertyCreated, p)
	uc.log.Info("Property created", zap.String("property_id", p.ID), zap.Int("images", len(p.Images)))
	return p, nil
}

func (uc *PropertyUsecase) Update(ctx context.Context, id string, in domain.PropertyInput, newImages []domain.MediaFile, newVideo *domain.MediaFile) (*domain.Property, error) {
	ctx, span := tracer.Start(ctx, "PropertyUsecase.Update", oteltrace.WithAttributes(attribute.String("property_id", id)))
	defer span.End()

	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := in.ApplyTo(p); err != nil {
		return nil, err
	}
	if len(p.Images)+len(newImages) > domain.MaxImages {
		return nil, fmt.Errorf("%w: total images cannot exceed %d", domain.ErrValidation, domain.MaxImages)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	uploaded, err := uc.media.uploadImages(ctx, newImages)
	if err != nil {
		return nil, err
	}
	vh, err := uc.media.uploadVideo(ctx, newVideo)
	if err != nil {
		uc.media.release(ctx, uploaded, nil)
		return nil, err
	}

	previousVideo := p.Video
	p.Images = append(p.Images, uploaded...)
	if vh != nil {
		p.Video = vh
	}
	if err := uc.repo.Update(ctx, p); err != nil {
		uc.media.release(ctx, uploaded, vh)
		return nil, err
	}

	// The old video goes only once the new one is stored and referenced.
	if vh != nil && previousVideo != nil {
		uc.media.release(ctx, nil, previousVideo)
	}

	uc.publish(ctx, domain.SubjectPropertyUpdated, p)
	uc.log.Info("Property updated", zap.String("property_id", p.ID), zap.Int("new_images", len(uploaded)), zap.Bool("video_replaced", vh != nil))
	return p, nil
}

// DeleteImageAt removes the image at index, keeping the order of the rest.
func (uc *PropertyUsecase) DeleteImageAt(ctx context.Context, id string, index int) (*domain.Property, error) {
	ctx, span := tracer.Start(ctx, "PropertyUsecase.DeleteImageAt", oteltrace.WithAttributes(
		attribute.String("property_id", id),
		attribute.Int("index", index),
	))
	defer span.End()

	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(p.Images) {
		return nil, fmt.Errorf("%w: invalid image index", domain.ErrValidation)
	}

	removed := p.Images[index]
	uc.media.release(ctx, []domain.MediaHandle{removed}, nil)
	p.Images = slices.Delete(slices.Clone(p.Images), index, index+1)

	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	uc.publish(ctx, domain.SubjectPropertyImageDeleted, map[string]any{"id": p.ID, "index": index, "publicId": removed.PublicID})
	return p, nil
}

// Delete removes the listing and attempts to delete every media asset it
// references. Asset deletion failures never block removing the record.
func (uc *PropertyUsecase) Delete(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "PropertyUsecase.Delete", oteltrace.WithAttributes(attribute.String("property_id", id)))
	defer span.End()

	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if failed := uc.media.release(ctx, p.Images, p.Video); failed > 0 {
		uc.log.Warn("Some media could not be deleted", zap.String("property_id", id), zap.Int("failed", failed))
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}

	uc.metrics.PropertyDeleted()
	uc.publish(ctx, domain.SubjectPropertyDeleted, map[string]any{"id": id})
	uc.log.Info("Property deleted", zap.String("property_id", id))
	return nil
}

func (uc *PropertyUsecase) GetByID(ctx context.Context, id string) (*domain.Property, error) {
	return uc.repo.FindByID(ctx, id)
}

func (uc *PropertyUsecase) List(ctx context.Context, p domain.Pagination) (domain.Page[*domain.Property], error) {
	return uc.repo.List(ctx, p.Normalize())
}

func (uc *PropertyUsecase) Filter(ctx context.Context, f domain.PropertyFilter) (domain.Page[*domain.Property], error) {
	ctx, span := tracer.Start(ctx, "PropertyUsecase.Filter", oteltrace.WithAttributes(attribute.String("sort", string(f.Sort))))
	defer span.End()

	f.Pagination = f.Pagination.Normalize()
	if f.Sort == "" {
		f.Sort = domain.SortNewest
	}
	return uc.repo.Filter(ctx, f)
}

func (uc *PropertyUsecase) Cities(ctx context.Context) ([]string, error) {
	return uc.repo.DistinctCities(ctx)
}

func (uc *PropertyUsecase) publish(ctx context.Context, subject string, payload any) {
	if uc.events == nil {
		return
	}
	if err := uc.events.Publish(ctx, subject, payload); err != nil {
		uc.log.Warn("Failed to publish event", zap.String("subject", subject), zap.Error(err))
	}
}
