package handler

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	apperrors "github.com/wifi-cdmx/wifi-api/internal/pkg/errors"
	"github.com/wifi-cdmx/wifi-api/internal/pkg/utils"
	"github.com/wifi-cdmx/wifi-api/internal/usecase"
	"github.com/wifi-cdmx/wifi-api/internal/usecase/dto"
)

const (
	defaultPageSize  = 20
	defaultSortField = "id"
)

// WifiPointHandler serves the read-only WiFi point endpoints.
type WifiPointHandler struct {
	wifiUC      *usecase.WifiPointUseCase
	proximityUC *usecase.ProximityUseCase
	logger      *zap.Logger
}

// NewWifiPointHandler creates a new WifiPointHandler.
func NewWifiPointHandler(
	wifiUC *usecase.WifiPointUseCase,
	proximityUC *usecase.ProximityUseCase,
	logger *zap.Logger,
) *WifiPointHandler {
	return &WifiPointHandler{
		wifiUC:      wifiUC,
		proximityUC: proximityUC,
		logger:      logger,
	}
}

// List godoc
// @Summary List WiFi points
// @Description Returns a page of free WiFi access points in Mexico City, sorted by the requested field.
// @Tags WiFi Points
// @Produce json
// @Param page query int false "Zero-based page index" default(0)
// @Param size query int false "Page size, between 1 and 1000" default(20)
// @Param sort query string false "Sort field: id, program, alcaldia, latitude, longitude" default(id)
// @Success 200 {object} pagination.Page[dto.WifiPointDTO]
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/wifi-points [get]
func (h *WifiPointHandler) List(c *fiber.Ctx) error {
	page, size, err := queryPageWindow(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	req := dto.ListWifiPointsRequest{
		Page: page,
		Size: size,
		Sort: c.Query("sort", defaultSortField),
	}

	result, err := h.wifiUC.FindAll(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return c.JSON(result)
}

// GetByID godoc
// @Summary Get a WiFi point by id
// @Description Returns a single WiFi access point identified by its dataset id.
// @Tags WiFi Points
// @Produce json
// @Param id path string true "WiFi point id"
// @Success 200 {object} dto.WifiPointDTO
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/wifi-points/{id} [get]
func (h *WifiPointHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")

	result, err := h.wifiUC.FindByID(c.Context(), id)
	if err != nil {
		return utils.SendError(c, err)
	}

	return c.JSON(result)
}

// ByAlcaldia godoc
// @Summary List WiFi points in a borough
// @Description Returns a page of WiFi access points located in the given alcaldía. Matching is case-insensitive.
// @Tags WiFi Points
// @Produce json
// @Param alcaldia path string true "Borough name, e.g. Cuauhtémoc"
// @Param page query int false "Zero-based page index" default(0)
// @Param size query int false "Page size, between 1 and 1000" default(20)
// @Success 200 {object} pagination.Page[dto.WifiPointDTO]
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/wifi-points/alcaldia/{alcaldia} [get]
func (h *WifiPointHandler) ByAlcaldia(c *fiber.Ctx) error {
	page, size, err := queryPageWindow(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	req := dto.AlcaldiaWifiPointsRequest{
		Alcaldia: c.Params("alcaldia"),
		Page:     page,
		Size:     size,
	}

	result, err := h.wifiUC.FindByAlcaldia(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return c.JSON(result)
}

// Nearby godoc
// @Summary List WiFi points nearest to a location
// @Description Returns WiFi access points ordered by great-circle distance from the given coordinates. Every item carries its distance in kilometers.
// @Tags WiFi Points
// @Produce json
// @Param lat query number true "Latitude, between -90 and 90"
// @Param lon query number true "Longitude, between -180 and 180"
// @Param page query int false "Zero-based page index" default(0)
// @Param size query int false "Page size, between 1 and 1000" default(20)
// @Success 200 {object} pagination.Page[dto.WifiPointDTO]
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/wifi-points/nearby [get]
func (h *WifiPointHandler) Nearby(c *fiber.Ctx) error {
	lat, err := queryFloat(c, "lat")
	if err != nil {
		return utils.SendError(c, err)
	}
	lon, err := queryFloat(c, "lon")
	if err != nil {
		return utils.SendError(c, err)
	}
	page, size, err := queryPageWindow(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	req := dto.NearbyWifiPointsRequest{
		Latitude:  lat,
		Longitude: lon,
		Page:      page,
		Size:      size,
	}

	result, err := h.proximityUC.FindNearby(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return c.JSON(result)
}

// queryPageWindow parses the page and size query parameters. Absent
// parameters fall back to defaults; malformed ones are a client error
// rather than a silent fallback.
func queryPageWindow(c *fiber.Ctx) (page, size int, err error) {
	page, err = queryInt(c, "page", 0)
	if err != nil {
		return 0, 0, err
	}
	size, err = queryInt(c, "size", defaultPageSize)
	if err != nil {
		return 0, 0, err
	}
	return page, size, nil
}

func queryInt(c *fiber.Ctx, key string, def int) (int, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperrors.ErrInvalidPagination
	}
	return v, nil
}

// queryFloat parses a required coordinate parameter. A missing parameter
// and a malformed one map to distinct client errors.
func queryFloat(c *fiber.Ctx, key string) (float64, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return 0, apperrors.ErrMissingCoordinates
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, apperrors.ErrInvalidCoordinates
	}
	return v, nil
}
