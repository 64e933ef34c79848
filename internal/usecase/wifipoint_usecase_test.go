package usecase_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wifi-cdmx/wifi-api/internal/domain"
	apperrors "github.com/wifi-cdmx/wifi-api/internal/pkg/errors"
	"github.com/wifi-cdmx/wifi-api/internal/pkg/pagination"
	"github.com/wifi-cdmx/wifi-api/internal/usecase"
	"github.com/wifi-cdmx/wifi-api/internal/usecase/dto"
)

// MockWifiPointRepository is a mock of WifiPointRepository
type MockWifiPointRepository struct {
	mock.Mock
}

func (m *MockWifiPointRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockWifiPointRepository) BulkInsert(ctx context.Context, points []*domain.WifiPoint) error {
	args := m.Called(ctx, points)
	return args.Error(0)
}

func (m *MockWifiPointRepository) GetByID(ctx context.Context, id string) (*domain.WifiPoint, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WifiPoint), args.Error(1)
}

func (m *MockWifiPointRepository) FindByAlcaldia(ctx context.Context, alcaldia string, offset, limit int) ([]*domain.WifiPoint, int, error) {
	args := m.Called(ctx, alcaldia, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*domain.WifiPoint), args.Int(1), args.Error(2)
}

func (m *MockWifiPointRepository) FindAll(ctx context.Context, offset, limit int, sortField string) ([]*domain.WifiPoint, int, error) {
	args := m.Called(ctx, offset, limit, sortField)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*domain.WifiPoint), args.Int(1), args.Error(2)
}

func (m *MockWifiPointRepository) All(ctx context.Context) ([]*domain.WifiPoint, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.WifiPoint), args.Error(1)
}

// MockCacheRepository is a mock of CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

// missCache builds a cache mock that always misses and accepts writes.
func missCache() *MockCacheRepository {
	cache := &MockCacheRepository{}
	cache.On("Get", mock.Anything, mock.Anything).Return(nil, nil)
	cache.On("Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	return cache
}

func samplePoints() []*domain.WifiPoint {
	return []*domain.WifiPoint{
		{ID: "1", Program: "Red WiFi", Latitude: 19.4326, Longitude: -99.1332, Alcaldia: "Cuauhtémoc"},
		{ID: "2", Program: "Red WiFi", Latitude: 19.4426, Longitude: -99.1332, Alcaldia: "Cuauhtémoc"},
		{ID: "3", Program: "C5", Latitude: 19.4526, Longitude: -99.1332, Alcaldia: "Gustavo A. Madero"},
	}
}

func TestWifiPointUseCase_FindAll(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	t.Run("returns a page with envelope metadata", func(t *testing.T) {
		repo := &MockWifiPointRepository{}
		repo.On("FindAll", mock.Anything, 0, 2, "").Return(samplePoints()[:2], 3, nil)

		uc := usecase.NewWifiPointUseCase(repo, missCache(), logger, time.Minute)
		page, err := uc.FindAll(ctx, dto.ListWifiPointsRequest{Page: 0, Size: 2})

		require.NoError(t, err)
		assert.Equal(t, 3, page.TotalElements)
		assert.Equal(t, 2, page.TotalPages)
		assert.Equal(t, 0, page.CurrentPage)
		assert.Equal(t, 2, page.PageSize)
		assert.True(t, page.First)
		assert.False(t, page.Last)
		assert.Equal(t, "1", page.Content[0].ID)
		assert.Nil(t, page.Content[0].DistanceKm, "catalog listing carries no distance")
		repo.AssertExpectations(t)
	})

	t.Run("translates page and size into repository offset", func(t *testing.T) {
		repo := &MockWifiPointRepository{}
		repo.On("FindAll", mock.Anything, 40, 20, "alcaldia").Return([]*domain.WifiPoint{}, 3, nil)

		uc := usecase.NewWifiPointUseCase(repo, missCache(), logger, time.Minute)
		_, err := uc.FindAll(ctx, dto.ListWifiPointsRequest{Page: 2, Size: 20, Sort: "alcaldia"})

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("rejects invalid pagination", func(t *testing.T) {
		repo := &MockWifiPointRepository{}
		uc := usecase.NewWifiPointUseCase(repo, missCache(), logger, time.Minute)

		_, err := uc.FindAll(ctx, dto.ListWifiPointsRequest{Page: -1, Size: 20})
		assert.ErrorIs(t, err, apperrors.ErrInvalidPagination)

		_, err = uc.FindAll(ctx, dto.ListWifiPointsRequest{Page: 0, Size: 0})
		assert.ErrorIs(t, err, apperrors.ErrInvalidPagination)

		_, err = uc.FindAll(ctx, dto.ListWifiPointsRequest{Page: 0, Size: 1001})
		assert.ErrorIs(t, err, apperrors.ErrInvalidPagination)

		repo.AssertNotCalled(t, "FindAll", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("rejects unknown sort field", func(t *testing.T) {
		repo := &MockWifiPointRepository{}
		uc := usecase.NewWifiPointUseCase(repo, missCache(), logger, time.Minute)

		_, err := uc.FindAll(ctx, dto.ListWifiPointsRequest{Page: 0, Size: 20, Sort: "created_at; DROP TABLE"})

		var appErr *apperrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 400, appErr.StatusCode)
		repo.AssertNotCalled(t, "FindAll", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("serves repeated request from cache", func(t *testing.T) {
		cachedEnvelope := pagination.New([]dto.WifiPointDTO{{ID: "1"}}, 1, 0, 20)
		data, err := json.Marshal(cachedEnvelope)
		require.NoError(t, err)

		cache := &MockCacheRepository{}
		cache.On("Get", mock.Anything, mock.Anything).Return(data, nil)

		repo := &MockWifiPointRepository{}
		uc := usecase.NewWifiPointUseCase(repo, cache, logger, time.Minute)

		page, err := uc.FindAll(ctx, dto.ListWifiPointsRequest{Page: 0, Size: 20})
		require.NoError(t, err)
		assert.Equal(t, "1", page.Content[0].ID)
		repo.AssertNotCalled(t, "FindAll", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("cache write failure does not fail the request", func(t *testing.T) {
		cache := &MockCacheRepository{}
		cache.On("Get", mock.Anything, mock.Anything).Return(nil, nil)
		cache.On("Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("redis down"))

		repo := &MockWifiPointRepository{}
		repo.On("FindAll", mock.Anything, 0, 20, "").Return(samplePoints(), 3, nil)

		uc := usecase.NewWifiPointUseCase(repo, cache, logger, time.Minute)
		page, err := uc.FindAll(ctx, dto.ListWifiPointsRequest{Page: 0, Size: 20})

		require.NoError(t, err)
		assert.Equal(t, 3, page.TotalElements)
	})
}

func TestWifiPointUseCase_FindByID(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	t.Run("returns the point", func(t *testing.T) {
		repo := &MockWifiPointRepository{}
		repo.On("GetByID", mock.Anything, "42").Return(&domain.WifiPoint{
			ID: "42", Program: "Red WiFi", Latitude: 19.4, Longitude: -99.1, Alcaldia: "Tlalpan",
		}, nil)

		uc := usecase.NewWifiPointUseCase(repo, missCache(), logger, time.Minute)
		point, err := uc.FindByID(ctx, "42")

		require.NoError(t, err)
		assert.Equal(t, "42", point.ID)
		assert.Equal(t, "Tlalpan", point.Alcaldia)
		assert.Nil(t, point.DistanceKm)
	})

	t.Run("passes the not found error through", func(t *testing.T) {
		repo := &MockWifiPointRepository{}
		repo.On("GetByID", mock.Anything, "404").Return(nil, apperrors.WifiPointNotFound("404"))

		uc := usecase.NewWifiPointUseCase(repo, missCache(), logger, time.Minute)
		_, err := uc.FindByID(ctx, "404")

		var appErr *apperrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 404, appErr.StatusCode)
	})
}

func TestWifiPointUseCase_FindByAlcaldia(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	t.Run("returns the borough page", func(t *testing.T) {
		repo := &MockWifiPointRepository{}
		repo.On("FindByAlcaldia", mock.Anything, "Cuauhtémoc", 0, 20).
			Return(samplePoints()[:2], 2, nil)

		uc := usecase.NewWifiPointUseCase(repo, missCache(), logger, time.Minute)
		page, err := uc.FindByAlcaldia(ctx, dto.AlcaldiaWifiPointsRequest{
			Alcaldia: "Cuauhtémoc", Page: 0, Size: 20,
		})

		require.NoError(t, err)
		assert.Equal(t, 2, page.TotalElements)
		assert.Equal(t, 1, page.TotalPages)
		assert.True(t, page.Last)
	})

	t.Run("unknown borough is an empty page, not an error", func(t *testing.T) {
		repo := &MockWifiPointRepository{}
		repo.On("FindByAlcaldia", mock.Anything, "Atlantis", 0, 20).
			Return([]*domain.WifiPoint{}, 0, nil)

		uc := usecase.NewWifiPointUseCase(repo, missCache(), logger, time.Minute)
		page, err := uc.FindByAlcaldia(ctx, dto.AlcaldiaWifiPointsRequest{
			Alcaldia: "Atlantis", Page: 0, Size: 20,
		})

		require.NoError(t, err)
		assert.Zero(t, page.TotalElements)
		assert.Zero(t, page.TotalPages)
		assert.NotNil(t, page.Content)
		assert.Empty(t, page.Content)
		assert.True(t, page.Last)
	})

	t.Run("rejects invalid pagination", func(t *testing.T) {
		repo := &MockWifiPointRepository{}
		uc := usecase.NewWifiPointUseCase(repo, missCache(), logger, time.Minute)

		_, err := uc.FindByAlcaldia(ctx, dto.AlcaldiaWifiPointsRequest{Alcaldia: "Tlalpan", Page: 0, Size: -5})
		assert.ErrorIs(t, err, apperrors.ErrInvalidPagination)
	})
}

func TestWifiPointUseCase_Count(t *testing.T) {
	repo := &MockWifiPointRepository{}
	repo.On("Count", mock.Anything).Return(31998, nil)

	uc := usecase.NewWifiPointUseCase(repo, missCache(), zap.NewNop(), time.Minute)
	count, err := uc.Count(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 31998, count)
}
