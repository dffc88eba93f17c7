package domain

import "context"

const (
	SubjectPropertyCreated      = "property.created"
	SubjectPropertyUpdated      = "property.updated"
	SubjectPropertyDeleted      = "property.deleted"
	SubjectPropertyImageDeleted = "property.image.deleted"
	SubjectEnquirySubmitted     = "enquiry.submitted"
	SubjectEnquiryStatusUpdated = "enquiry.status.updated"
	SubjectEnquiryDeleted       = "enquiry.deleted"
)

// EventPublisher emits domain events. Publishing is fire-and-forget from the
// caller's point of view; errors are only logged.
type EventPublisher interface {
	Publish(ctx context.Context, subject string, payload any) error
}

// Notifier tells the admin inbox about new enquiries.
type Notifier interface {
	NotifyEnquiry(ctx context.Context, e *Enquiry) error
}

// SubmissionThrottle limits public enquiry submissions per client key.
type SubmissionThrottle interface {
	Allow(ctx context.Context, key string) (bool, error)
}
