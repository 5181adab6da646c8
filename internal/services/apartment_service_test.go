package services

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stwalsh4118/apartments/internal/logger"
	"github.com/stwalsh4118/apartments/internal/models"
)

// MockApartmentRepository is a mock implementation of ApartmentRepository for testing
type MockApartmentRepository struct {
	mock.Mock
}

func (m *MockApartmentRepository) Create(ctx context.Context, apartment *models.Apartment) error {
	args := m.Called(ctx, apartment)
	return args.Error(0)
}

func (m *MockApartmentRepository) List(ctx context.Context, filter models.ApartmentFilter) ([]models.Apartment, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	apartments, ok := args.Get(0).([]models.Apartment)
	if !ok {
		return nil, args.Error(1)
	}
	return apartments, args.Error(1)
}

func (m *MockApartmentRepository) Delete(ctx context.Context, id uint) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func intPtr(v int) *int {
	return &v
}

func typePtr(v models.ApartmentType) *models.ApartmentType {
	return &v
}

func newListing() *models.Apartment {
	return &models.Apartment{
		AppartmentType: models.ApartmentTypeApartment,
		NumRooms:       3,
		FloorArea:      65.5,
		Floor:          2,
		Improvement:    "renovated",
		Address:        "1 Main St",
	}
}

func TestCreateApartment_Success(t *testing.T) {
	// Arrange
	mockRepo := new(MockApartmentRepository)
	service := NewApartmentService(mockRepo, logger.New("test"))

	ctx := context.Background()
	listing := newListing()

	mockRepo.On("Create", ctx, listing).
		Run(func(args mock.Arguments) {
			args.Get(1).(*models.Apartment).ID = 1
		}).
		Return(nil)

	// Act
	created, err := service.CreateApartment(ctx, listing)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, uint(1), created.ID)
	assert.Equal(t, "1 Main St", created.Address)
	assert.Equal(t, 65.5, created.FloorArea)
	mockRepo.AssertExpectations(t)
}

func TestCreateApartment_ZeroValuesAccepted(t *testing.T) {
	mockRepo := new(MockApartmentRepository)
	service := NewApartmentService(mockRepo, logger.New("test"))

	ctx := context.Background()
	listing := &models.Apartment{AppartmentType: models.ApartmentTypeHouse}

	mockRepo.On("Create", ctx, listing).Return(nil)

	_, err := service.CreateApartment(ctx, listing)

	require.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestCreateApartment_InvalidType(t *testing.T) {
	// Arrange
	mockRepo := new(MockApartmentRepository)
	service := NewApartmentService(mockRepo, logger.New("test"))

	listing := newListing()
	listing.AppartmentType = "castle"

	// Act
	created, err := service.CreateApartment(context.Background(), listing)

	// Assert
	assert.Nil(t, created)
	assert.ErrorIs(t, err, ErrInvalidApartmentType)
	assert.Contains(t, err.Error(), "castle")
	// Repository should not be called for validation errors
	mockRepo.AssertNotCalled(t, "Create")
}

func TestCreateApartment_RepositoryError(t *testing.T) {
	mockRepo := new(MockApartmentRepository)
	service := NewApartmentService(mockRepo, logger.New("test"))

	ctx := context.Background()
	listing := newListing()

	dbError := errors.New("database is locked")
	mockRepo.On("Create", ctx, listing).Return(dbError)

	created, err := service.CreateApartment(ctx, listing)

	assert.Nil(t, created)
	assert.ErrorIs(t, err, dbError)
	assert.Contains(t, err.Error(), "failed to create apartment")
	mockRepo.AssertExpectations(t)
}

func TestListApartments_NoFilter(t *testing.T) {
	// Arrange
	mockRepo := new(MockApartmentRepository)
	service := NewApartmentService(mockRepo, logger.New("test"))

	ctx := context.Background()
	expected := []models.Apartment{
		{ID: 1, AppartmentType: models.ApartmentTypeApartment, Floor: 2},
		{ID: 2, AppartmentType: models.ApartmentTypeHouse, Floor: 3},
	}
	mockRepo.On("List", ctx, models.ApartmentFilter{}).Return(expected, nil)

	// Act
	apartments, err := service.ListApartments(ctx, models.ApartmentFilter{})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, expected, apartments)
	mockRepo.AssertExpectations(t)
}

func TestListApartments_PassesFilterThrough(t *testing.T) {
	mockRepo := new(MockApartmentRepository)
	service := NewApartmentService(mockRepo, logger.New("test"))

	ctx := context.Background()
	filter := models.ApartmentFilter{
		Floor:          intPtr(0),
		AppartmentType: typePtr(models.ApartmentTypeHouse),
	}
	mockRepo.On("List", ctx, filter).Return([]models.Apartment{}, nil)

	apartments, err := service.ListApartments(ctx, filter)

	require.NoError(t, err)
	assert.NotNil(t, apartments)
	assert.Empty(t, apartments)
	mockRepo.AssertExpectations(t)
}

func TestListApartments_InvalidTypeFilter(t *testing.T) {
	mockRepo := new(MockApartmentRepository)
	service := NewApartmentService(mockRepo, logger.New("test"))

	filter := models.ApartmentFilter{AppartmentType: typePtr("castle")}

	apartments, err := service.ListApartments(context.Background(), filter)

	assert.Nil(t, apartments)
	assert.ErrorIs(t, err, ErrInvalidApartmentType)
	mockRepo.AssertNotCalled(t, "List")
}

func TestListApartments_RepositoryError(t *testing.T) {
	mockRepo := new(MockApartmentRepository)
	service := NewApartmentService(mockRepo, logger.New("test"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	mockRepo.On("List", ctx, models.ApartmentFilter{}).Return(nil, context.Canceled)

	apartments, err := service.ListApartments(ctx, models.ApartmentFilter{})

	assert.Nil(t, apartments)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Contains(t, err.Error(), "failed to query apartments")
	mockRepo.AssertExpectations(t)
}

func TestListApartments_LogsCount(t *testing.T) {
	var buf bytes.Buffer
	mockRepo := new(MockApartmentRepository)
	service := NewApartmentService(mockRepo, logger.NewWithWriter(&buf, zerolog.InfoLevel))

	ctx := context.Background()
	filter := models.ApartmentFilter{Floor: intPtr(2)}
	mockRepo.On("List", ctx, filter).Return([]models.Apartment{{ID: 1, Floor: 2}}, nil)

	_, err := service.ListApartments(ctx, filter)

	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"count":1`)
	assert.Contains(t, buf.String(), `"floor":2`)
}

func TestDeleteApartment_Success(t *testing.T) {
	mockRepo := new(MockApartmentRepository)
	service := NewApartmentService(mockRepo, logger.New("test"))

	ctx := context.Background()
	mockRepo.On("Delete", ctx, uint(7)).Return(true, nil)

	err := service.DeleteApartment(ctx, 7)

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestDeleteApartment_NotFound(t *testing.T) {
	mockRepo := new(MockApartmentRepository)
	service := NewApartmentService(mockRepo, logger.New("test"))

	ctx := context.Background()
	mockRepo.On("Delete", ctx, uint(99)).Return(false, nil)

	err := service.DeleteApartment(ctx, 99)

	assert.ErrorIs(t, err, ErrApartmentNotFound)
	mockRepo.AssertExpectations(t)
}

func TestDeleteApartment_RepositoryError(t *testing.T) {
	mockRepo := new(MockApartmentRepository)
	service := NewApartmentService(mockRepo, logger.New("test"))

	ctx := context.Background()
	dbError := errors.New("connection reset")
	mockRepo.On("Delete", ctx, uint(3)).Return(false, dbError)

	err := service.DeleteApartment(ctx, 3)

	assert.ErrorIs(t, err, dbError)
	assert.NotErrorIs(t, err, ErrApartmentNotFound)
	mockRepo.AssertExpectations(t)
}
