package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/wifi-cdmx/wifi-api/internal/domain/repository"
	apperrors "github.com/wifi-cdmx/wifi-api/internal/pkg/errors"
	"github.com/wifi-cdmx/wifi-api/internal/pkg/pagination"
	"github.com/wifi-cdmx/wifi-api/internal/pkg/validator"
	"github.com/wifi-cdmx/wifi-api/internal/usecase/dto"
)

// WifiPointUseCase serves the catalog queries: paginated listing,
// lookup by id and filtering by alcaldia. List pages are cached since
// the dataset only changes on re-ingestion.
type WifiPointUseCase struct {
	wifiRepo  repository.WifiPointRepository
	cacheRepo repository.CacheRepository
	logger    *zap.Logger
	listTTL   time.Duration
}

func NewWifiPointUseCase(
	wifiRepo repository.WifiPointRepository,
	cacheRepo repository.CacheRepository,
	logger *zap.Logger,
	listTTL time.Duration,
) *WifiPointUseCase {
	return &WifiPointUseCase{
		wifiRepo:  wifiRepo,
		cacheRepo: cacheRepo,
		logger:    logger,
		listTTL:   listTTL,
	}
}

// FindAll returns one page of the full catalog, ordered by the
// requested sort field.
func (uc *WifiPointUseCase) FindAll(ctx context.Context, req dto.ListWifiPointsRequest) (*pagination.Page[dto.WifiPointDTO], error) {
	if err := validator.Validate(req); err != nil {
		return nil, apperrors.ErrInvalidPagination
	}
	if req.Sort != "" && !repository.ValidSortField(req.Sort) {
		return nil, apperrors.ErrInvalidSortField.WithDetails(map[string]interface{}{
			"sort": req.Sort,
		})
	}

	cacheKey := fmt.Sprintf("points:all:%d:%d:%s", req.Page, req.Size, req.Sort)
	if page, ok := cachedPage(ctx, uc.cacheRepo, uc.logger, cacheKey); ok {
		return page, nil
	}

	points, total, err := uc.wifiRepo.FindAll(ctx, pagination.Offset(req.Page, req.Size), req.Size, req.Sort)
	if err != nil {
		return nil, err
	}

	page := pagination.New(dto.FromWifiPoints(points), total, req.Page, req.Size)
	storePage(ctx, uc.cacheRepo, uc.logger, cacheKey, uc.listTTL, &page)
	return &page, nil
}

// FindByID returns a single wifi point.
func (uc *WifiPointUseCase) FindByID(ctx context.Context, id string) (*dto.WifiPointDTO, error) {
	point, err := uc.wifiRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	result := dto.FromWifiPoint(point)
	return &result, nil
}

// FindByAlcaldia returns one page of the wifi points inside a borough.
// Matching is case-insensitive, so "TLALPAN" and "Tlalpan" are the same
// borough.
func (uc *WifiPointUseCase) FindByAlcaldia(ctx context.Context, req dto.AlcaldiaWifiPointsRequest) (*pagination.Page[dto.WifiPointDTO], error) {
	if err := validator.Validate(req); err != nil {
		return nil, apperrors.ErrInvalidPagination
	}

	cacheKey := fmt.Sprintf("points:alcaldia:%s:%d:%d",
		strings.ToLower(req.Alcaldia), req.Page, req.Size)
	if page, ok := cachedPage(ctx, uc.cacheRepo, uc.logger, cacheKey); ok {
		return page, nil
	}

	points, total, err := uc.wifiRepo.FindByAlcaldia(ctx, req.Alcaldia, pagination.Offset(req.Page, req.Size), req.Size)
	if err != nil {
		return nil, err
	}

	page := pagination.New(dto.FromWifiPoints(points), total, req.Page, req.Size)
	storePage(ctx, uc.cacheRepo, uc.logger, cacheKey, uc.listTTL, &page)
	return &page, nil
}

// Count reports how many wifi points are stored.
func (uc *WifiPointUseCase) Count(ctx context.Context) (int, error) {
	return uc.wifiRepo.Count(ctx)
}

// cachedPage returns a previously stored page, treating any cache
// problem as a miss.
func cachedPage(ctx context.Context, cacheRepo repository.CacheRepository, logger *zap.Logger, key string) (*pagination.Page[dto.WifiPointDTO], bool) {
	cached, err := cacheRepo.Get(ctx, key)
	if err != nil || cached == nil {
		return nil, false
	}

	var page pagination.Page[dto.WifiPointDTO]
	if err := json.Unmarshal(cached, &page); err != nil {
		logger.Warn("Failed to decode cached page", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return &page, true
}

// storePage caches a page. A cache write failure is logged and
// swallowed, the response is already computed.
func storePage(ctx context.Context, cacheRepo repository.CacheRepository, logger *zap.Logger, key string, ttl time.Duration, page *pagination.Page[dto.WifiPointDTO]) {
	data, err := json.Marshal(page)
	if err != nil {
		logger.Warn("Failed to encode page for cache", zap.String("key", key), zap.Error(err))
		return
	}
	if err := cacheRepo.Set(ctx, key, data, ttl); err != nil {
		logger.Warn("Failed to cache page", zap.String("key", key), zap.Error(err))
	}
}
