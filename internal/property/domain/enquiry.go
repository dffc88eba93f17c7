package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

const (
	MaxEnquiryNameLen    = 50
	MaxEnquiryMessageLen = 1000
)

var (
	phonePattern = regexp.MustCompile(`^[0-9]{10}$`)
	emailPattern = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)
)

type EnquiryStatus string

const (
	EnquiryPending   EnquiryStatus = "pending"
	EnquiryContacted EnquiryStatus = "contacted"
	EnquiryClosed    EnquiryStatus = "closed"
)

func (s EnquiryStatus) IsValid() bool {
	switch s {
	case EnquiryPending, EnquiryContacted, EnquiryClosed:
		return true
	}
	return false
}

type Enquiry struct {
	ID         string           `json:"id"`
	Name       string           `json:"name"`
	Email      string           `json:"email"`
	Phone      string           `json:"phone"`
	Message    string           `json:"message"`
	PropertyID string           `json:"propertyId"`
	Property   *PropertySummary `json:"property,omitempty"`
	Status     EnquiryStatus    `json:"status"`
	CreatedAt  time.Time        `json:"createdAt"`
	UpdatedAt  time.Time        `json:"updatedAt"`
}

// EnquiryInput is a visitor's submission before validation.
type EnquiryInput struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Message    string `json:"message"`
	PropertyID string `json:"propertyId"`
}

// Normalize trims every field and lower-cases the email.
func (in EnquiryInput) Normalize() EnquiryInput {
	return EnquiryInput{
		Name:       strings.TrimSpace(in.Name),
		Email:      strings.ToLower(strings.TrimSpace(in.Email)),
		Phone:      strings.TrimSpace(in.Phone),
		Message:    strings.TrimSpace(in.Message),
		PropertyID: strings.TrimSpace(in.PropertyID),
	}
}

// Validate expects a normalized input.
func (in EnquiryInput) Validate() error {
	if in.Name == "" || in.Email == "" || in.Phone == "" || in.Message == "" || in.PropertyID == "" {
		return fmt.Errorf("%w: please provide all required fields", ErrValidation)
	}
	if !phonePattern.MatchString(in.Phone) {
		return fmt.Errorf("%w: please provide a valid 10-digit phone number", ErrValidation)
	}
	if !ValidEmail(in.Email) {
		return fmt.Errorf("%w: please provide a valid email", ErrValidation)
	}
	if len([]rune(in.Name)) > MaxEnquiryNameLen {
		return fmt.Errorf("%w: name cannot exceed %d characters", ErrValidation, MaxEnquiryNameLen)
	}
	if len([]rune(in.Message)) > MaxEnquiryMessageLen {
		return fmt.Errorf("%w: message cannot exceed %d characters", ErrValidation, MaxEnquiryMessageLen)
	}
	return nil
}

// ValidEmail reports whether s looks like an email address.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// EnquiryFilter selects enquiries. Empty fields are not applied.
type EnquiryFilter struct {
	Status     EnquiryStatus
	PropertyID string
	Pagination Pagination
}

type EnquiryStats struct {
	Total     int64 `json:"total"`
	Pending   int64 `json:"pending"`
	Contacted int64 `json:"contacted"`
	Closed    int64 `json:"closed"`
}
