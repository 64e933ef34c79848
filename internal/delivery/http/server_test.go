package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wifi-cdmx/wifi-api/internal/config"
	httpDelivery "github.com/wifi-cdmx/wifi-api/internal/delivery/http"
	"github.com/wifi-cdmx/wifi-api/internal/delivery/http/handler"
	"github.com/wifi-cdmx/wifi-api/internal/domain"
	"github.com/wifi-cdmx/wifi-api/internal/pkg/pagination"
	"github.com/wifi-cdmx/wifi-api/internal/pkg/utils"
	"github.com/wifi-cdmx/wifi-api/internal/repository/cache"
	"github.com/wifi-cdmx/wifi-api/internal/repository/memory"
	"github.com/wifi-cdmx/wifi-api/internal/usecase"
	"github.com/wifi-cdmx/wifi-api/internal/usecase/dto"
)

// samplePoints are laid out north and west of the Zócalo so proximity
// order from it is 1, 2, 3, 4, 5.
func samplePoints() []*domain.WifiPoint {
	return []*domain.WifiPoint{
		{ID: "1", Program: "C5", Latitude: 19.4326, Longitude: -99.1332, Alcaldia: "Cuauhtémoc"},
		{ID: "2", Program: "C5", Latitude: 19.4426, Longitude: -99.1332, Alcaldia: "Cuauhtémoc"},
		{ID: "3", Program: "PILARES", Latitude: 19.4526, Longitude: -99.1332, Alcaldia: "Cuauhtémoc"},
		{ID: "4", Program: "PILARES", Latitude: 19.3626, Longitude: -99.1332, Alcaldia: "Coyoacán"},
		{ID: "5", Program: "Metro", Latitude: 19.4326, Longitude: -99.2332, Alcaldia: "Álvaro Obregón"},
	}
}

func newTestApp(t *testing.T, points []*domain.WifiPoint) *fiber.App {
	t.Helper()

	repo := memory.NewWifiPointRepository()
	if len(points) > 0 {
		require.NoError(t, repo.BulkInsert(context.Background(), points))
	}

	log := zap.NewNop()
	cacheRepo := cache.NewNoopRepository()

	wifiUC := usecase.NewWifiPointUseCase(repo, cacheRepo, log, time.Minute)
	proximityUC := usecase.NewProximityUseCase(repo, cacheRepo, log, time.Minute)

	server := httpDelivery.NewServer(
		&config.Config{},
		log,
		handler.NewWifiPointHandler(wifiUC, proximityUC, log),
		handler.NewHealthHandler(wifiUC, log),
	)

	return server.App()
}

func doGet(t *testing.T, app *fiber.App, path string) (*http.Response, []byte) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()

	return resp, body
}

func decodePage(t *testing.T, body []byte) pagination.Page[dto.WifiPointDTO] {
	t.Helper()

	var page pagination.Page[dto.WifiPointDTO]
	require.NoError(t, json.Unmarshal(body, &page))
	return page
}

func decodeError(t *testing.T, body []byte) utils.ErrorResponse {
	t.Helper()

	var envelope utils.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &envelope))
	return envelope
}

func contentIDs(page pagination.Page[dto.WifiPointDTO]) []string {
	ids := make([]string, 0, len(page.Content))
	for _, item := range page.Content {
		ids = append(ids, item.ID)
	}
	return ids
}

func TestListEndpoint(t *testing.T) {
	app := newTestApp(t, samplePoints())

	t.Run("default paging returns everything on one page", func(t *testing.T) {
		resp, body := doGet(t, app, "/api/v1/wifi-points")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		page := decodePage(t, body)
		assert.Equal(t, []string{"1", "2", "3", "4", "5"}, contentIDs(page))
		assert.Equal(t, 5, page.TotalElements)
		assert.Equal(t, 1, page.TotalPages)
		assert.Equal(t, 0, page.CurrentPage)
		assert.Equal(t, 5, page.PageSize)
		assert.True(t, page.First)
		assert.True(t, page.Last)
	})

	t.Run("window in the middle is neither first nor last", func(t *testing.T) {
		resp, body := doGet(t, app, "/api/v1/wifi-points?page=1&size=2")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		page := decodePage(t, body)
		assert.Equal(t, []string{"3", "4"}, contentIDs(page))
		assert.Equal(t, 5, page.TotalElements)
		assert.Equal(t, 3, page.TotalPages)
		assert.Equal(t, 1, page.CurrentPage)
		assert.False(t, page.First)
		assert.False(t, page.Last)
	})

	t.Run("sort by program", func(t *testing.T) {
		resp, body := doGet(t, app, "/api/v1/wifi-points?sort=program")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		page := decodePage(t, body)
		// C5 < Metro < PILARES, ids break the tie inside each program.
		assert.Equal(t, []string{"1", "2", "5", "3", "4"}, contentIDs(page))
	})

	t.Run("malformed page is a 400", func(t *testing.T) {
		resp, body := doGet(t, app, "/api/v1/wifi-points?page=abc")
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)

		envelope := decodeError(t, body)
		assert.Equal(t, http.StatusBadRequest, envelope.Status)
		assert.Equal(t, "INVALID_PAGINATION", envelope.Error)
		assert.Equal(t, "/api/v1/wifi-points", envelope.Path)
		assert.NotEmpty(t, envelope.Timestamp)
	})

	t.Run("unknown sort field is a 400", func(t *testing.T) {
		resp, body := doGet(t, app, "/api/v1/wifi-points?sort=created_at")
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)

		envelope := decodeError(t, body)
		assert.Equal(t, "INVALID_SORT_FIELD", envelope.Error)
	})
}

func TestGetByIDEndpoint(t *testing.T) {
	app := newTestApp(t, samplePoints())

	t.Run("returns the point", func(t *testing.T) {
		resp, body := doGet(t, app, "/api/v1/wifi-points/3")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var point dto.WifiPointDTO
		require.NoError(t, json.Unmarshal(body, &point))
		assert.Equal(t, "3", point.ID)
		assert.Equal(t, "PILARES", point.Program)
		assert.Equal(t, "Cuauhtémoc", point.Alcaldia)
		assert.Nil(t, point.DistanceKm)
	})

	t.Run("unknown id is a 404 echoing the id", func(t *testing.T) {
		resp, body := doGet(t, app, "/api/v1/wifi-points/no-such-point")
		require.Equal(t, http.StatusNotFound, resp.StatusCode)

		envelope := decodeError(t, body)
		assert.Equal(t, http.StatusNotFound, envelope.Status)
		assert.Equal(t, "WIFI_POINT_NOT_FOUND", envelope.Error)
		assert.Contains(t, envelope.Message, "no-such-point")
		assert.Equal(t, "/api/v1/wifi-points/no-such-point", envelope.Path)
	})
}

func TestByAlcaldiaEndpoint(t *testing.T) {
	app := newTestApp(t, samplePoints())

	t.Run("matching is case-insensitive", func(t *testing.T) {
		resp, body := doGet(t, app, "/api/v1/wifi-points/alcaldia/cuauhtémoc")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		page := decodePage(t, body)
		assert.Equal(t, []string{"1", "2", "3"}, contentIDs(page))
		assert.Equal(t, 3, page.TotalElements)
	})

	t.Run("percent-encoded names are decoded", func(t *testing.T) {
		resp, body := doGet(t, app, "/api/v1/wifi-points/alcaldia/%C3%81lvaro%20Obreg%C3%B3n")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		page := decodePage(t, body)
		assert.Equal(t, []string{"5"}, contentIDs(page))
	})

	t.Run("unknown borough is an empty last page, not an error", func(t *testing.T) {
		resp, body := doGet(t, app, "/api/v1/wifi-points/alcaldia/Atlantis")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		page := decodePage(t, body)
		assert.Empty(t, page.Content)
		assert.Equal(t, 0, page.TotalElements)
		assert.Equal(t, 0, page.TotalPages)
		assert.True(t, page.Last)
	})
}

func TestNearbyEndpoint(t *testing.T) {
	app := newTestApp(t, samplePoints())

	t.Run("orders by distance and carries distance_km", func(t *testing.T) {
		resp, body := doGet(t, app, "/api/v1/wifi-points/nearby?lat=19.4326&lon=-99.1332")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		page := decodePage(t, body)
		assert.Equal(t, []string{"1", "2", "3", "4", "5"}, contentIDs(page))

		require.NotNil(t, page.Content[0].DistanceKm)
		assert.InDelta(t, 0.0, *page.Content[0].DistanceKm, 0.001)
		require.NotNil(t, page.Content[1].DistanceKm)
		assert.InDelta(t, 1.11, *page.Content[1].DistanceKm, 0.02)
	})

	t.Run("missing lon is a 400", func(t *testing.T) {
		resp, body := doGet(t, app, "/api/v1/wifi-points/nearby?lat=19.4326")
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)

		envelope := decodeError(t, body)
		assert.Equal(t, "MISSING_COORDINATES", envelope.Error)
	})

	t.Run("out-of-range latitude is a 400", func(t *testing.T) {
		resp, body := doGet(t, app, "/api/v1/wifi-points/nearby?lat=91&lon=-99.1332")
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)

		envelope := decodeError(t, body)
		assert.Equal(t, "INVALID_COORDINATES", envelope.Error)
	})

	t.Run("non-numeric latitude is a 400", func(t *testing.T) {
		resp, body := doGet(t, app, "/api/v1/wifi-points/nearby?lat=north&lon=-99.1332")
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)

		envelope := decodeError(t, body)
		assert.Equal(t, "INVALID_COORDINATES", envelope.Error)
	})
}

func TestHealthEndpoint(t *testing.T) {
	app := newTestApp(t, samplePoints())

	resp, body := doGet(t, app, "/api/v1/wifi-points/health")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var health handler.HealthResponse
	require.NoError(t, json.Unmarshal(body, &health))
	assert.Equal(t, "UP", health.Status)
	assert.Equal(t, "WiFi CDMX API is running", health.Message)
	assert.Equal(t, 5, health.TotalPoints)
}

func TestUnknownRouteEnvelope(t *testing.T) {
	app := newTestApp(t, nil)

	resp, body := doGet(t, app, "/api/v1/no-such-resource")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	envelope := decodeError(t, body)
	assert.Equal(t, http.StatusNotFound, envelope.Status)
	assert.Equal(t, "NOT_FOUND", envelope.Error)
	assert.Equal(t, "/api/v1/no-such-resource", envelope.Path)
	assert.NotEmpty(t, envelope.Timestamp)
}

func TestRequestIDHeader(t *testing.T) {
	app := newTestApp(t, nil)

	resp, _ := doGet(t, app, "/api/v1/wifi-points")
	assert.NotEmpty(t, resp.Header.Get(fiber.HeaderXRequestID))
}
