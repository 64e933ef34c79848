package http

import (
	"context"
	stderrors "errors"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"

	"github.com/wifi-cdmx/wifi-api/internal/config"
	"github.com/wifi-cdmx/wifi-api/internal/delivery/http/handler"
	"github.com/wifi-cdmx/wifi-api/internal/delivery/http/middleware"
	apperrors "github.com/wifi-cdmx/wifi-api/internal/pkg/errors"
	"github.com/wifi-cdmx/wifi-api/internal/pkg/utils"
)

// Server is the Fiber HTTP server hosting the WiFi point API.
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	wifiPointHandler *handler.WifiPointHandler
	healthHandler    *handler.HealthHandler
}

// NewServer creates the HTTP server with all routes and middleware wired.
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	wifiPointHandler *handler.WifiPointHandler,
	healthHandler *handler.HealthHandler,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "WiFi CDMX API",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:              app,
		config:           cfg,
		logger:           logger,
		wifiPointHandler: wifiPointHandler,
		healthHandler:    healthHandler,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery())
	s.app.Use(middleware.RequestID())
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS())
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

func (s *Server) setupRoutes() {
	// Swagger documentation route
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	api := s.app.Group("/api/v1")

	// Literal segments must be registered before the :id wildcard or
	// fiber would capture "nearby" and "health" as point ids.
	wifi := api.Group("/wifi-points")
	wifi.Get("/", s.wifiPointHandler.List)
	wifi.Get("/health", s.healthHandler.Check)
	wifi.Get("/nearby", s.wifiPointHandler.Nearby)
	wifi.Get("/alcaldia/:alcaldia", s.wifiPointHandler.ByAlcaldia)
	wifi.Get("/:id", s.wifiPointHandler.GetByID)

	// Anything that matched no route above gets the standard 404 envelope.
	s.app.Use(utils.SendNotFound)
}

// App exposes the underlying fiber app for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Start runs the HTTP server until it is shut down.
func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// customErrorHandler renders every error that escapes a handler as the
// standard error envelope. Unknown errors become a generic 500 so internal
// details stay out of the response body.
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var appErr *apperrors.AppError
		if stderrors.As(err, &appErr) {
			return utils.SendError(c, appErr)
		}

		code := fiber.StatusInternalServerError
		var fiberErr *fiber.Error
		if stderrors.As(err, &fiberErr) {
			code = fiberErr.Code
		}

		message := "Internal server error"
		if code < http.StatusInternalServerError {
			message = err.Error()
		}

		logger.Error("HTTP Error",
			zap.String("path", c.Path()),
			zap.Int("status", code),
			zap.Error(err),
		)

		return c.Status(code).JSON(utils.ErrorResponse{
			Status:    code,
			Error:     statusCode(code),
			Message:   message,
			Path:      c.Path(),
			Timestamp: time.Now().Format("2006-01-02T15:04:05"),
		})
	}
}

// statusCode turns an HTTP status into the envelope's error code,
// e.g. 404 -> NOT_FOUND.
func statusCode(code int) string {
	text := http.StatusText(code)
	if text == "" {
		return "UNKNOWN_ERROR"
	}
	return strings.ToUpper(strings.ReplaceAll(text, " ", "_"))
}
