package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/wifi-cdmx/wifi-api/internal/usecase"
)

// HealthResponse is the body returned by the health endpoint.
type HealthResponse struct {
	Status      string `json:"status"`
	Message     string `json:"message"`
	TotalPoints int    `json:"total_points,omitempty"`
}

// HealthHandler reports service liveness and store reachability.
type HealthHandler struct {
	wifiUC *usecase.WifiPointUseCase
	logger *zap.Logger
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(wifiUC *usecase.WifiPointUseCase, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		wifiUC: wifiUC,
		logger: logger,
	}
}

// Check godoc
// @Summary Health check
// @Description Reports whether the API and its record store are reachable, along with the number of loaded WiFi points.
// @Tags Health
// @Produce json
// @Success 200 {object} handler.HealthResponse
// @Failure 503 {object} handler.HealthResponse
// @Router /api/v1/wifi-points/health [get]
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	total, err := h.wifiUC.Count(c.Context())
	if err != nil {
		h.logger.Error("Health check failed", zap.Error(err))
		return c.Status(fiber.StatusServiceUnavailable).JSON(HealthResponse{
			Status:  "DOWN",
			Message: "WiFi point store is unreachable",
		})
	}

	return c.JSON(HealthResponse{
		Status:      "UP",
		Message:     "WiFi CDMX API is running",
		TotalPoints: total,
	})
}
