package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Abdurahmanit/GroupProject/property-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/property-service/internal/platform/metrics"
	"github.com/Abdurahmanit/GroupProject/property-service/internal/property/domain"
	"go.opentelemetry.io/otel/attribute"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// notifyTimeout bounds a single admin notification.
const notifyTimeout = 30 * time.Second

// EnquiryUsecase handles visitor submissions and admin triage.
type EnquiryUsecase struct {
	repo       domain.EnquiryRepository
	properties domain.PropertyRepository
	events     domain.EventPublisher
	notifier   domain.Notifier
	metrics    *metrics.MetricsManager
	log        *logger.Logger

	notifying sync.WaitGroup
}

// NewEnquiryUsecase builds the usecase. notifier may be nil.
func NewEnquiryUsecase(repo domain.EnquiryRepository, properties domain.PropertyRepository, events domain.EventPublisher, notifier domain.Notifier, m *metrics.MetricsManager, log *logger.Logger) *EnquiryUsecase {
	return &EnquiryUsecase{
		repo:       repo,
		properties: properties,
		events:     events,
		notifier:   notifier,
		metrics:    m,
		log:        log.Named("EnquiryUsecase"),
	}
}

func (uc *EnquiryUsecase) Submit(ctx context.Context, in domain.EnquiryInput) (*domain.Enquiry, error) {
	ctx, span := tracer.Start(ctx, "EnquiryUsecase.Submit", oteltrace.WithAttributes(attribute.String("property_id", in.PropertyID)))
	defer span.End()

	in = in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}

	property, err := uc.properties.FindByID(ctx, in.PropertyID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: property not found", domain.ErrNotFound)
		}
		return nil, err
	}

	e := &domain.Enquiry{
		Name:       in.Name,
		Email:      in.Email,
		Phone:      in.Phone,
		Message:    in.Message,
		PropertyID: property.ID,
		Status:     domain.EnquiryPending,
	}
	if err := uc.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	e.Property = property.Summary(domain.SummaryBasic)

	uc.metrics.EnquirySubmitted()
	uc.publish(ctx, domain.SubjectEnquirySubmitted, e)
	uc.notify(ctx, *e)
	uc.log.Info("Enquiry submitted", zap.String("enquiry_id", e.ID), zap.String("property_id", e.PropertyID))
	return e, nil
}

// List returns enquiries newest first. status filters only when it names a
// known status.
func (uc *EnquiryUsecase) List(ctx context.Context, status string, p domain.Pagination) (domain.Page[*domain.Enquiry], error) {
	f := domain.EnquiryFilter{Pagination: p.Normalize()}
	if s := domain.EnquiryStatus(status); s.IsValid() {
		f.Status = s
	}
	page, err := uc.repo.List(ctx, f)
	if err != nil {
		return page, err
	}
	if err := uc.attachSummaries(ctx, page.Items, domain.SummaryWithImages); err != nil {
		return page, err
	}
	return page, nil
}

func (uc *EnquiryUsecase) ListByProperty(ctx context.Context, propertyID string, p domain.Pagination) (domain.Page[*domain.Enquiry], error) {
	return uc.repo.List(ctx, domain.EnquiryFilter{PropertyID: propertyID, Pagination: p.Normalize()})
}

func (uc *EnquiryUsecase) GetByID(ctx context.Context, id string) (*domain.Enquiry, error) {
	e, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := uc.attachSummaries(ctx, []*domain.Enquiry{e}, domain.SummaryDetailed); err != nil {
		return nil, err
	}
	return e, nil
}

// UpdateStatus allows any transition between the three statuses.
func (uc *EnquiryUsecase) UpdateStatus(ctx context.Context, id, status string) (*domain.Enquiry, error) {
	s := domain.EnquiryStatus(status)
	if !s.IsValid() {
		return nil, fmt.Errorf("%w: please provide a valid status (pending, contacted, closed)", domain.ErrValidation)
	}
	e, err := uc.repo.UpdateStatus(ctx, id, s)
	if err != nil {
		return nil, err
	}
	if err := uc.attachSummaries(ctx, []*domain.Enquiry{e}, domain.SummaryBasic); err != nil {
		return nil, err
	}
	uc.publish(ctx, domain.SubjectEnquiryStatusUpdated, map[string]any{"id": e.ID, "status": e.Status})
	return e, nil
}

func (uc *EnquiryUsecase) Delete(ctx context.Context, id string) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.publish(ctx, domain.SubjectEnquiryDeleted, map[string]any{"id": id})
	return nil
}

func (uc *EnquiryUsecase) Stats(ctx context.Context) (domain.EnquiryStats, error) {
	return uc.repo.Stats(ctx)
}

// attachSummaries fills in the referenced listing for each enquiry. Listings
// that no longer exist leave the summary nil.
func (uc *EnquiryUsecase) attachSummaries(ctx context.Context, items []*domain.Enquiry, level domain.SummaryLevel) error {
	if len(items) == 0 {
		return nil
	}
	ids := make([]string, 0, len(items))
	for _, e := range items {
		ids = append(ids, e.PropertyID)
	}
	found, err := uc.properties.FindByIDs(ctx, ids)
	if err != nil {
		return err
	}
	for _, e := range items {
		if p, ok := found[e.PropertyID]; ok {
			e.Property = p.Summary(level)
		}
	}
	return nil
}

func (uc *EnquiryUsecase) publish(ctx context.Context, subject string, payload any) {
	if uc.events == nil {
		return
	}
	if err := uc.events.Publish(ctx, subject, payload); err != nil {
		uc.log.Warn("Failed to publish event", zap.String("subject", subject), zap.Error(err))
	}
}

// notify mails the admin in the background so a slow SMTP server never holds
// up the submission response.
func (uc *EnquiryUsecase) notify(ctx context.Context, e domain.Enquiry) {
	if uc.notifier == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
	uc.notifying.Add(1)
	go func() {
		defer uc.notifying.Done()
		defer cancel()
		if err := uc.notifier.NotifyEnquiry(ctx, &e); err != nil {
			uc.log.Warn("Enquiry notification failed", zap.String("enquiry_id", e.ID), zap.Error(err))
		}
	}()
}

// Wait blocks until background notifications have finished.
func (uc *EnquiryUsecase) Wait() {
	uc.notifying.Wait()
}
