package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/wifi-cdmx/wifi-api/internal/domain"
	"github.com/wifi-cdmx/wifi-api/internal/domain/repository"
	apperrors "github.com/wifi-cdmx/wifi-api/internal/pkg/errors"
	"github.com/wifi-cdmx/wifi-api/internal/pkg/pagination"
	"github.com/wifi-cdmx/wifi-api/internal/pkg/utils"
	"github.com/wifi-cdmx/wifi-api/internal/pkg/validator"
	"github.com/wifi-cdmx/wifi-api/internal/usecase/dto"
)

// ProximityUseCase ranks the whole catalog by distance from a caller
// position. The dataset is small enough that loading all points and
// sorting in memory beats shipping the math to the database, and it
// keeps the distance formula in exactly one place.
type ProximityUseCase struct {
	wifiRepo  repository.WifiPointRepository
	cacheRepo repository.CacheRepository
	logger    *zap.Logger
	nearbyTTL time.Duration
}

func NewProximityUseCase(
	wifiRepo repository.WifiPointRepository,
	cacheRepo repository.CacheRepository,
	logger *zap.Logger,
	nearbyTTL time.Duration,
) *ProximityUseCase {
	return &ProximityUseCase{
		wifiRepo:  wifiRepo,
		cacheRepo: cacheRepo,
		logger:    logger,
		nearbyTTL: nearbyTTL,
	}
}

// FindNearby returns one page of wifi points ordered by ascending
// distance from the given position. Coordinates are validated before
// any ranking happens, and total_elements always reflects the full
// catalog, not the page.
func (uc *ProximityUseCase) FindNearby(ctx context.Context, req dto.NearbyWifiPointsRequest) (*pagination.Page[dto.WifiPointDTO], error) {
	if !utils.ValidateCoordinates(req.Latitude, req.Longitude) {
		return nil, apperrors.ErrInvalidCoordinates
	}
	if err := validator.Validate(req); err != nil {
		return nil, apperrors.ErrInvalidPagination
	}

	cacheKey := fmt.Sprintf("nearby:%.6f:%.6f:%d:%d",
		req.Latitude, req.Longitude, req.Page, req.Size)
	if page, ok := cachedPage(ctx, uc.cacheRepo, uc.logger, cacheKey); ok {
		return page, nil
	}

	points, err := uc.wifiRepo.All(ctx)
	if err != nil {
		uc.logger.Error("Failed to load wifi points for ranking", zap.Error(err))
		return nil, err
	}

	ranked := RankByDistance(points, req.Latitude, req.Longitude)
	window := pagination.Window(ranked, pagination.Offset(req.Page, req.Size), req.Size)

	page := pagination.New(dto.FromNearbyWifiPoints(window), len(ranked), req.Page, req.Size)
	storePage(ctx, uc.cacheRepo, uc.logger, cacheKey, uc.nearbyTTL, &page)
	return &page, nil
}

// RankByDistance computes the great-circle distance from (lat, lon) to
// every point and returns them ordered by ascending distance, ties
// broken by ascending id so equal distances page deterministically.
func RankByDistance(points []*domain.WifiPoint, lat, lon float64) []*domain.NearbyWifiPoint {
	ranked := make([]*domain.NearbyWifiPoint, len(points))
	for i, p := range points {
		ranked[i] = &domain.NearbyWifiPoint{
			WifiPoint:  *p,
			DistanceKm: utils.DistanceKm(lat, lon, p.Latitude, p.Longitude),
		}
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].DistanceKm != ranked[j].DistanceKm {
			return ranked[i].DistanceKm < ranked[j].DistanceKm
		}
		return ranked[i].ID < ranked[j].ID
	})

	return ranked
}
