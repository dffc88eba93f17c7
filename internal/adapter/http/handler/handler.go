// Package handler holds the HTTP handlers of the listing API.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/Abdurahmanit/GroupProject/property-service/internal/property/domain"
	"github.com/Abdurahmanit/GroupProject/property-service/internal/property/usecase"
)

// PropertyService is the listing lifecycle as the handlers see it.
type PropertyService interface {
	Create(ctx context.Context, in domain.PropertyInput, images []domain.MediaFile, video *domain.MediaFile) (*domain.Property, error)
	Update(ctx context.Context, id string, in domain.PropertyInput, images []domain.MediaFile, video *domain.MediaFile) (*domain.Property, error)
	DeleteImageAt(ctx context.Context, id string, index int) (*domain.Property, error)
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Property, error)
	List(ctx context.Context, p domain.Pagination) (domain.Page[*domain.Property], error)
	Filter(ctx context.Context, f domain.PropertyFilter) (domain.Page[*domain.Property], error)
	Cities(ctx context.Context) ([]string, error)
}

type EnquiryService interface {
	Submit(ctx context.Context, in domain.EnquiryInput) (*domain.Enquiry, error)
	List(ctx context.Context, status string, p domain.Pagination) (domain.Page[*domain.Enquiry], error)
	ListByProperty(ctx context.Context, propertyID string, p domain.Pagination) (domain.Page[*domain.Enquiry], error)
	GetByID(ctx context.Context, id string) (*domain.Enquiry, error)
	UpdateStatus(ctx context.Context, id, status string) (*domain.Enquiry, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (domain.EnquiryStats, error)
}

type AdminService interface {
	Register(ctx context.Context, in usecase.RegisterInput) (*domain.AuthResult, error)
	Login(ctx context.Context, email, password string) (*domain.AuthResult, error)
	GetProfile(ctx context.Context, adminID string) (*domain.AdminProfile, error)
	UpdateProfile(ctx context.Context, adminID string, patch usecase.ProfilePatch) (*domain.AuthResult, error)
}

const maxJSONBody = 1 << 20

// decodeJSON reads a JSON body into dst. An empty body leaves dst untouched.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	body := http.MaxBytesReader(w, r.Body, maxJSONBody)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("%w: invalid request body", domain.ErrValidation)
	}
	return nil
}
