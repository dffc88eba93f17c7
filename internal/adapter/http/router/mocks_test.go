package router

import (
	"context"

	"github.com/Abdurahmanit/GroupProject/property-service/internal/property/domain"
	"github.com/Abdurahmanit/GroupProject/property-service/internal/property/usecase"
	"github.com/stretchr/testify/mock"
)

type MockPropertyService struct{ mock.Mock }

func (m *MockPropertyService) Create(ctx context.Context, in domain.PropertyInput, images []domain.MediaFile, video *domain.MediaFile) (*domain.Property, error) {
	args := m.Called(ctx, in, images, video)
	p, _ := args.Get(0).(*domain.Property)
	return p, args.Error(1)
}

func (m *MockPropertyService) Update(ctx context.Context, id string, in domain.PropertyInput, images []domain.MediaFile, video *domain.MediaFile) (*domain.Property, error) {
	args := m.Called(ctx, id, in, images, video)
	p, _ := args.Get(0).(*domain.Property)
	return p, args.Error(1)
}

func (m *MockPropertyService) DeleteImageAt(ctx context.Context, id string, index int) (*domain.Property, error) {
	args := m.Called(ctx, id, index)
	p, _ := args.Get(0).(*domain.Property)
	return p, args.Error(1)
}

func (m *MockPropertyService) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockPropertyService) GetByID(ctx context.Context, id string) (*domain.Property, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*domain.Property)
	return p, args.Error(1)
}

func (m *MockPropertyService) List(ctx context.Context, p domain.Pagination) (domain.Page[*domain.Property], error) {
	args := m.Called(ctx, p)
	return args.Get(0).(domain.Page[*domain.Property]), args.Error(1)
}

func (m *MockPropertyService) Filter(ctx context.Context, f domain.PropertyFilter) (domain.Page[*domain.Property], error) {
	args := m.Called(ctx, f)
	return args.Get(0).(domain.Page[*domain.Property]), args.Error(1)
}

func (m *MockPropertyService) Cities(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	c, _ := args.Get(0).([]string)
	return c, args.Error(1)
}

type MockEnquiryService struct{ mock.Mock }

func (m *MockEnquiryService) Submit(ctx context.Context, in domain.EnquiryInput) (*domain.Enquiry, error) {
	args := m.Called(ctx, in)
	e, _ := args.Get(0).(*domain.Enquiry)
	return e, args.Error(1)
}

func (m *MockEnquiryService) List(ctx context.Context, status string, p domain.Pagination) (domain.Page[*domain.Enquiry], error) {
	args := m.Called(ctx, status, p)
	return args.Get(0).(domain.Page[*domain.Enquiry]), args.Error(1)
}

func (m *MockEnquiryService) ListByProperty(ctx context.Context, propertyID string, p domain.Pagination) (domain.Page[*domain.Enquiry], error) {
	args := m.Called(ctx, propertyID, p)
	return args.Get(0).(domain.Page[*domain.Enquiry]), args.Error(1)
}

func (m *MockEnquiryService) GetByID(ctx context.Context, id string) (*domain.Enquiry, error) {
	args := m.Called(ctx, id)
	e, _ := args.Get(0).(*domain.Enquiry)
	return e, args.Error(1)
}

func (m *MockEnquiryService) UpdateStatus(ctx context.Context, id, status string) (*domain.Enquiry, error) {
	args := m.Called(ctx, id, status)
	e, _ := args.Get(0).(*domain.Enquiry)
	return e, args.Error(1)
}

func (m *MockEnquiryService) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockEnquiryService) Stats(ctx context.Context) (domain.EnquiryStats, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.EnquiryStats), args.Error(1)
}

type MockAdminService struct{ mock.Mock }

func (m *MockAdminService) Register(ctx context.Context, in usecase.RegisterInput) (*domain.AuthResult, error) {
	args := m.Called(ctx, in)
	r, _ := args.Get(0).(*domain.AuthResult)
	return r, args.Error(1)
}

func (m *MockAdminService) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	args := m.Called(ctx, email, password)
	r, _ := args.Get(0).(*domain.AuthResult)
	return r, args.Error(1)
}

func (m *MockAdminService) GetProfile(ctx context.Context, adminID string) (*domain.AdminProfile, error) {
	args := m.Called(ctx, adminID)
	p, _ := args.Get(0).(*domain.AdminProfile)
	return p, args.Error(1)
}

func (m *MockAdminService) UpdateProfile(ctx context.Context, adminID string, patch usecase.ProfilePatch) (*domain.AuthResult, error) {
	args := m.Called(ctx, adminID, patch)
	r, _ := args.Get(0).(*domain.AuthResult)
	return r, args.Error(1)
}

// stubVerifier accepts exactly one token.
type stubVerifier struct {
	token string
	admin *domain.Admin
}

func (v stubVerifier) VerifyToken(_ context.Context, token string) (*domain.Admin, error) {
	if token != v.token {
		return nil, domain.ErrTokenInvalid
	}
	return v.admin, nil
}

type countingThrottle struct {
	limit int
	seen  map[string]int
}

func (c *countingThrottle) Allow(_ context.Context, key string) (bool, error) {
	c.seen[key]++
	return c.seen[key] <= c.limit, nil
}
