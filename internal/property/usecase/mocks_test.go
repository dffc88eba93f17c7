package usecase

import (
	"context"
	"strings"
	"sync"

	"github.com/Abdurahmanit/GroupProject/property-service/internal/property/domain"
	"github.com/stretchr/testify/mock"
)

type MockPropertyRepository struct{ mock.Mock }

func (m *MockPropertyRepository) Create(ctx context.Context, p *domain.Property) error {
	return m.Called(ctx, p).Error(0)
}
func (m *MockPropertyRepository) Update(ctx context.Context, p *domain.Property) error {
	return m.Called(ctx, p).Error(0)
}
func (m *MockPropertyRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}
func (m *MockPropertyRepository) FindByID(ctx context.Context, id string) (*domain.Property, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Property), args.Error(1)
}
func (m *MockPropertyRepository) FindByIDs(ctx context.Context, ids []string) (map[string]*domain.Property, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]*domain.Property), args.Error(1)
}
func (m *MockPropertyRepository) List(ctx context.Context, p domain.Pagination) (domain.Page[*domain.Property], error) {
	args := m.Called(ctx, p)
	return args.Get(0).(domain.Page[*domain.Property]), args.Error(1)
}
func (m *MockPropertyRepository) Filter(ctx context.Context, f domain.PropertyFilter) (domain.Page[*domain.Property], error) {
	args := m.Called(ctx, f)
	return args.Get(0).(domain.Page[*domain.Property]), args.Error(1)
}
func (m *MockPropertyRepository) DistinctCities(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type MockEnquiryRepository struct{ mock.Mock }

func (m *MockEnquiryRepository) Create(ctx context.Context, e *domain.Enquiry) error {
	return m.Called(ctx, e).Error(0)
}
func (m *MockEnquiryRepository) FindByID(ctx context.Context, id string) (*domain.Enquiry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Enquiry), args.Error(1)
}
func (m *MockEnquiryRepository) List(ctx context.Context, f domain.EnquiryFilter) (domain.Page[*domain.Enquiry], error) {
	args := m.Called(ctx, f)
	return args.Get(0).(domain.Page[*domain.Enquiry]), args.Error(1)
}
func (m *MockEnquiryRepository) UpdateStatus(ctx context.Context, id string, status domain.EnquiryStatus) (*domain.Enquiry, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Enquiry), args.Error(1)
}
func (m *MockEnquiryRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}
func (m *MockEnquiryRepository) Stats(ctx context.Context) (domain.EnquiryStats, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.EnquiryStats), args.Error(1)
}

type MockAdminRepository struct{ mock.Mock }

func (m *MockAdminRepository) Create(ctx context.Context, a *domain.Admin) error {
	return m.Called(ctx, a).Error(0)
}
func (m *MockAdminRepository) Update(ctx context.Context, a *domain.Admin) error {
	return m.Called(ctx, a).Error(0)
}
func (m *MockAdminRepository) FindByID(ctx context.Context, id string) (*domain.Admin, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Admin), args.Error(1)
}
func (m *MockAdminRepository) FindByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Admin), args.Error(1)
}

type MockPublisher struct{ mock.Mock }

func (m *MockPublisher) Publish(ctx context.Context, subject string, payload any) error {
	return m.Called(ctx, subject, payload).Error(0)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) NotifyEnquiry(ctx context.Context, e *domain.Enquiry) error {
	return m.Called(ctx, e).Error(0)
}

// fakeStore is a concurrency-safe in-memory media store. Uploads of files
// named in failUpload fail; every deletion is recorded and fails with
// failDelete when it is set.
type fakeStore struct {
	mu         sync.Mutex
	failUpload map[string]error
	failDelete error
	uploaded   []string
	deleted    []string
}

func (s *fakeStore) UploadImage(_ context.Context, f domain.MediaFile) (domain.MediaHandle, error) {
	return s.upload("properties/images/", f)
}

func (s *fakeStore) UploadVideo(_ context.Context, f domain.MediaFile) (domain.MediaHandle, error) {
	return s.upload("properties/videos/", f)
}

func (s *fakeStore) upload(prefix string, f domain.MediaFile) (domain.MediaHandle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failUpload[f.Filename]; err != nil {
		return domain.MediaHandle{}, err
	}
	id := prefix + f.Filename
	s.uploaded = append(s.uploaded, id)
	return domain.MediaHandle{URL: "https://media.example.com/" + id, PublicID: id}, nil
}

func (s *fakeStore) DeleteOne(_ context.Context, publicID string, _ domain.MediaKind) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted = append(s.deleted, publicID)
	return s.failDelete
}

func (s *fakeStore) DeleteMany(_ context.Context, ids []string, _ domain.MediaKind) []domain.MediaDeleteResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.MediaDeleteResult, 0, len(ids))
	for _, id := range ids {
		s.deleted = append(s.deleted, id)
		out = append(out, domain.MediaDeleteResult{PublicID: id, Err: s.failDelete})
	}
	return out
}

func (s *fakeStore) snapshot() (uploaded, deleted []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.uploaded...), append([]string(nil), s.deleted...)
}

func files(names ...string) []domain.MediaFile {
	out := make([]domain.MediaFile, 0, len(names))
	for _, n := range names {
		out = append(out, domain.MediaFile{Filename: n, ContentType: "image/jpeg", Reader: strings.NewReader("data")})
	}
	return out
}

func handle(id string) domain.MediaHandle {
	return domain.MediaHandle{URL: "https://media.example.com/" + id, PublicID: id}
}
