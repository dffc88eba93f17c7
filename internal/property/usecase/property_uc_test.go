package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/Abdurahmanit/GroupProject/property-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/property-service/internal/platform/metrics"
	"github.com/Abdurahmanit/GroupProject/property-service/internal/property/domain"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const propertyID = "665f1c2b9d1e8a0012345678"

type propertyFixture struct {
	repo    *MockPropertyRepository
	store   *fakeStore
	pub     *MockPublisher
	metrics *metrics.MetricsManager
	uc      *PropertyUsecase
}

func newPropertyFixture() *propertyFixture {
	f := &propertyFixture{
		repo:    new(MockPropertyRepository),
		store:   &fakeStore{failUpload: map[string]error{}},
		pub:     new(MockPublisher),
		metrics: metrics.NewMetricsManager("property-service"),
	}
	f.pub.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	f.uc = NewPropertyUsecase(f.repo, f.store, f.pub, f.metrics, logger.NewNop())
	return f
}

func createInput() domain.PropertyInput {
	return domain.PropertyInput{
		Title:     "Garden villa",
		Price:     "12500000",
		City:      "Bengaluru",
		BHK:       "4",
		Bathrooms: "3",
		Area:      "2400 sqft",
		Amenities: []string{`["pool","gym"]`},
		Featured:  "true",
	}
}

func storedProperty(images []domain.MediaHandle, video *domain.MediaHandle) *domain.Property {
	return &domain.Property{
		ID:        propertyID,
		Title:     "Garden villa",
		Price:     12500000,
		City:      "Bengaluru",
		BHK:       4,
		Bathrooms: 3,
		Area:      "2400 sqft",
		Images:    images,
		Video:     video,
		Status:    domain.StatusAvailable,
	}
}

func TestPropertyCreate_UploadsMediaAndPersists(t *testing.T) {
	f := newPropertyFixture()
	video := files("tour.mp4")[0]

	f.repo.On("Create", mock.Anything, mock.MatchedBy(func(p *domain.Property) bool {
		return len(p.Images) == 2 &&
			p.Images[0].PublicID == "properties/images/front.jpg" &&
			p.Images[1].PublicID == "properties/images/back.jpg" &&
			p.Video != nil && p.Video.PublicID == "properties/videos/tour.mp4"
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Property).ID = propertyID
	}).Return(nil).Once()

	p, err := f.uc.Create(context.Background(), createInput(), files("front.jpg", "back.jpg"), &video)
	require.NoError(t, err)

	assert.Equal(t, propertyID, p.ID)
	assert.Equal(t, []string{"pool", "gym"}, p.Amenities)
	assert.True(t, p.Featured)
	assert.Equal(t, domain.StatusAvailable, p.Status)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.PropertiesCreatedTotal))
	f.repo.AssertExpectations(t)
	f.pub.AssertCalled(t, "Publish", mock.Anything, domain.SubjectPropertyCreated, mock.Anything)
}

func TestPropertyCreate_RejectsMoreThanFiveImages(t *testing.T) {
	f := newPropertyFixture()

	_, err := f.uc.Create(context.Background(), createInput(), files("1.jpg", "2.jpg", "3.jpg", "4.jpg", "5.jpg", "6.jpg"), nil)
	assert.ErrorIs(t, err, domain.ErrValidation)

	uploaded, _ := f.store.snapshot()
	assert.Empty(t, uploaded)
	f.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestPropertyCreate_MissingRequiredField(t *testing.T) {
	f := newPropertyFixture()
	in := createInput()
	in.Bathrooms = ""

	_, err := f.uc.Create(context.Background(), in, files("a.jpg"), nil)
	assert.ErrorIs(t, err, domain.ErrValidation)

	uploaded, _ := f.store.snapshot()
	assert.Empty(t, uploaded)
}

func TestPropertyCreate_ImageFailureAbortsWithoutPersisting(t *testing.T) {
	f := newPropertyFixture()
	f.store.failUpload["broken.jpg"] = errors.New("connection reset")

	_, err := f.uc.Create(context.Background(), createInput(), files("a.jpg", "broken.jpg", "c.jpg"), nil)
	assert.ErrorIs(t, err, domain.ErrMedia)

	uploaded, deleted := f.store.snapshot()
	assert.ElementsMatch(t, uploaded, deleted)
	f.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestPropertyCreate_VideoFailureReleasesImages(t *testing.T) {
	f := newPropertyFixture()
	f.store.failUpload["tour.mp4"] = errors.New("timeout")
	video := files("tour.mp4")[0]

	_, err := f.uc.Create(context.Background(), createInput(), files("a.jpg", "b.jpg"), &video)
	assert.ErrorIs(t, err, domain.ErrMedia)

	_, deleted := f.store.snapshot()
	assert.ElementsMatch(t, []string{"properties/images/a.jpg", "properties/images/b.jpg"}, deleted)
	f.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestPropertyCreate_RepositoryFailureReleasesMedia(t *testing.T) {
	f := newPropertyFixture()
	f.repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("write concern")).Once()

	_, err := f.uc.Create(context.Background(), createInput(), files("a.jpg"), nil)
	assert.EqualError(t, err, "write concern")

	_, deleted := f.store.snapshot()
	assert.Equal(t, []string{"properties/images/a.jpg"}, deleted)
}

func TestPropertyUpdate_TotalImagesCannotExceedFive(t *testing.T) {
	f := newPropertyFixture()
	existing := []domain.MediaHandle{handle("i1"), handle("i2"), handle("i3"), handle("i4")}
	f.repo.On("FindByID", mock.Anything, propertyID).Return(storedProperty(existing, nil), nil)

	_, err := f.uc.Update(context.Background(), propertyID, domain.PropertyInput{}, files("a.jpg", "b.jpg"), nil)
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, err.Error(), "total images cannot exceed 5")

	uploaded, _ := f.store.snapshot()
	assert.Empty(t, uploaded)
	f.repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestPropertyUpdate_AppendsImagesAndAppliesProvidedFields(t *testing.T) {
	f := newPropertyFixture()
	f.repo.On("FindByID", mock.Anything, propertyID).Return(storedProperty([]domain.MediaHandle{handle("i1"), handle("i2")}, nil), nil)
	f.repo.On("Update", mock.Anything, mock.Anything).Return(nil).Once()

	p, err := f.uc.Update(context.Background(), propertyID, domain.PropertyInput{Price: "9900000"}, files("new.jpg"), nil)
	require.NoError(t, err)

	assert.Equal(t, 9900000.0, p.Price)
	assert.Equal(t, "Garden villa", p.Title)
	require.Len(t, p.Images, 3)
	assert.Equal(t, "i1", p.Images[0].PublicID)
	assert.Equal(t, "i2", p.Images[1].PublicID)
	assert.Equal(t, "properties/images/new.jpg", p.Images[2].PublicID)
}

func TestPropertyUpdate_FailedVideoReplacementKeepsOldVideo(t *testing.T) {
	f := newPropertyFixture()
	old := handle("properties/videos/old.mp4")
	stored := storedProperty(nil, &old)
	f.repo.On("FindByID", mock.Anything, propertyID).Return(stored, nil)
	f.store.failUpload["new.mp4"] = errors.New("quota exceeded")
	video := files("new.mp4")[0]

	_, err := f.uc.Update(context.Background(), propertyID, domain.PropertyInput{}, nil, &video)
	assert.ErrorIs(t, err, domain.ErrMedia)

	_, deleted := f.store.snapshot()
	assert.Empty(t, deleted)
	assert.Equal(t, "properties/videos/old.mp4", stored.Video.PublicID)
	f.repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestPropertyUpdate_OldVideoDeletedOnlyAfterSave(t *testing.T) {
	f := newPropertyFixture()
	old := handle("properties/videos/old.mp4")
	f.repo.On("FindByID", mock.Anything, propertyID).Return(storedProperty(nil, &old), nil)
	f.repo.On("Update", mock.Anything, mock.MatchedBy(func(p *domain.Property) bool {
		return p.Video != nil && p.Video.PublicID == "properties/videos/new.mp4"
	})).Run(func(mock.Arguments) {
		_, deleted := f.store.snapshot()
		assert.Empty(t, deleted, "old video deleted before the record was saved")
	}).Return(nil).Once()
	video := files("new.mp4")[0]

	_, err := f.uc.Update(context.Background(), propertyID, domain.PropertyInput{}, nil, &video)
	require.NoError(t, err)

	_, deleted := f.store.snapshot()
	assert.Equal(t, []string{"properties/videos/old.mp4"}, deleted)
	f.repo.AssertExpectations(t)
}

func TestPropertyUpdate_NotFound(t *testing.T) {
	f := newPropertyFixture()
	f.repo.On("FindByID", mock.Anything, propertyID).Return(nil, domain.ErrNotFound)

	_, err := f.uc.Update(context.Background(), propertyID, domain.PropertyInput{Title: "x"}, files("a.jpg"), nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	uploaded, _ := f.store.snapshot()
	assert.Empty(t, uploaded)
}

func TestPropertyDeleteImageAt(t *testing.T) {
	f := newPropertyFixture()
	f.repo.On("FindByID", mock.Anything, propertyID).Return(storedProperty([]domain.MediaHandle{handle("i0"), handle("i1"), handle("i2")}, nil), nil)
	f.repo.On("Update", mock.Anything, mock.Anything).Return(nil).Once()

	p, err := f.uc.DeleteImageAt(context.Background(), propertyID, 1)
	require.NoError(t, err)

	require.Len(t, p.Images, 2)
	assert.Equal(t, "i0", p.Images[0].PublicID)
	assert.Equal(t, "i2", p.Images[1].PublicID)
	_, deleted := f.store.snapshot()
	assert.Equal(t, []string{"i1"}, deleted)
}

func TestPropertyDeleteImageAt_OutOfBounds(t *testing.T) {
	for _, idx := range []int{-1, 2, 7} {
		f := newPropertyFixture()
		f.repo.On("FindByID", mock.Anything, propertyID).Return(storedProperty([]domain.MediaHandle{handle("i0"), handle("i1")}, nil), nil)

		_, err := f.uc.DeleteImageAt(context.Background(), propertyID, idx)
		assert.ErrorIs(t, err, domain.ErrValidation, "index %d", idx)

		_, deleted := f.store.snapshot()
		assert.Empty(t, deleted)
		f.repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	}
}

func TestPropertyDelete_AttemptsEveryAssetEvenWhenAllFail(t *testing.T) {
	f := newPropertyFixture()
	video := handle("properties/videos/v.mp4")
	images := []domain.MediaHandle{handle("i0"), handle("i1"), handle("i2")}
	f.repo.On("FindByID", mock.Anything, propertyID).Return(storedProperty(images, &video), nil)
	f.repo.On("Delete", mock.Anything, propertyID).Return(nil).Once()
	f.store.failDelete = errors.New("media store unavailable")

	err := f.uc.Delete(context.Background(), propertyID)
	require.NoError(t, err)

	_, deleted := f.store.snapshot()
	assert.ElementsMatch(t, []string{"i0", "i1", "i2", "properties/videos/v.mp4"}, deleted)
	assert.Equal(t, 3.0, testutil.ToFloat64(f.metrics.MediaDeleteFailuresTotal.WithLabelValues("image")))
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.MediaDeleteFailuresTotal.WithLabelValues("video")))
	f.repo.AssertExpectations(t)
}

func TestPropertyDelete_NotFound(t *testing.T) {
	f := newPropertyFixture()
	f.repo.On("FindByID", mock.Anything, propertyID).Return(nil, domain.ErrNotFound)

	err := f.uc.Delete(context.Background(), propertyID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	f.repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestPropertyFilter_NormalizesRequest(t *testing.T) {
	f := newPropertyFixture()
	want := domain.PropertyFilter{City: "Pune", Sort: domain.SortNewest, Pagination: domain.Pagination{Page: 1, Limit: 10}}
	f.repo.On("Filter", mock.Anything, want).Return(domain.NewPage[*domain.Property](nil, 0, want.Pagination), nil).Once()

	page, err := f.uc.Filter(context.Background(), domain.PropertyFilter{City: "Pune"})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	f.repo.AssertExpectations(t)
}
