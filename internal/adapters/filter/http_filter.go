package filter

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/mikey/snooker/internal/config"
	"github.com/mikey/snooker/internal/core"
	"github.com/mikey/snooker/pkg/snooker"
	"go.uber.org/zap"
)

// HTTPFilter serves the comment filter over HTTP for blog and forum backends
type HTTPFilter struct {
	service    *core.CommentFilterService
	logger     *zap.Logger
	listenAddr string
	app        *fiber.App
}

// NewHTTPFilter creates a new HTTP comment filter
func NewHTTPFilter(service *core.CommentFilterService, logger *zap.Logger, cfg config.ServerConfig) *HTTPFilter {
	f := &HTTPFilter{
		service:    service,
		logger:     logger,
		listenAddr: cfg.ListenAddress,
	}

	f.app = fiber.New(fiber.Config{
		AppName:               "snooker",
		ReadTimeout:           cfg.ReadTimeout,
		WriteTimeout:          cfg.WriteTimeout,
		BodyLimit:             cfg.BodyLimit,
		DisableStartupMessage: true,
	})
	f.app.Use(recover.New())
	f.app.Use(requestid.New())
	f.app.Use(requestLogger(logger))

	f.app.Get("/healthz", f.health)
	api := f.app.Group("/api/v1")
	api.Post("/comments/check", f.checkComment)
	api.Post("/comments/moderation", f.recordModeration)

	return f
}

// App returns the underlying fiber application
func (f *HTTPFilter) App() *fiber.App {
	return f.app
}

// Start binds the listen address and serves requests in the background
func (f *HTTPFilter) Start() error {
	ln, err := net.Listen("tcp", f.listenAddr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", f.listenAddr, err)
	}
	f.logger.Info("HTTP filter started", zap.String("address", ln.Addr().String()))

	go func() {
		if err := f.app.Listener(ln); err != nil {
			f.logger.Error("HTTP server error", zap.Error(err))
		}
	}()

	return nil
}

// Stop gracefully shuts the HTTP listener down
func (f *HTTPFilter) Stop() error {
	return f.app.Shutdown()
}

// ProcessComment scores a comment through the filter service
func (f *HTTPFilter) ProcessComment(ctx context.Context, comment *snooker.Comment) (*core.Analysis, error) {
	return f.service.AnalyzeComment(ctx, comment)
}

func (f *HTTPFilter) health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (f *HTTPFilter) checkComment(c *fiber.Ctx) error {
	var req CommentRequest
	if err := c.App().Config().JSONDecoder(c.Body(), &req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "invalid JSON: "+err.Error())
	}
	comment, err := req.ToComment()
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, err.Error())
	}

	analysis, err := f.ProcessComment(c.UserContext(), comment)
	if err != nil {
		f.logger.Error("Failed to analyze comment", zap.Error(err))
		return errorResponse(c, fiber.StatusInternalServerError, "failed to analyze comment")
	}

	f.logger.Info("Comment classified",
		zap.String("processing_id", analysis.ProcessingID),
		zap.Int("score", analysis.Result.Score),
		zap.String("decision", string(analysis.Decision)))

	return c.JSON(NewAnalysisResponse(analysis))
}

func (f *HTTPFilter) recordModeration(c *fiber.Ctx) error {
	var req ModerationRequest
	if err := c.App().Config().JSONDecoder(c.Body(), &req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "invalid JSON: "+err.Error())
	}
	if req.Email == "" {
		return errorResponse(c, fiber.StatusBadRequest, "email is required")
	}
	if !req.Status.Valid() {
		return errorResponse(c, fiber.StatusBadRequest, "status must be one of valid, moderate, spam")
	}

	err := f.service.RecordModeration(c.UserContext(), req.Email, req.Body, req.Status)
	switch {
	case err == nil:
		return c.SendStatus(fiber.StatusNoContent)
	case errors.Is(err, core.ErrHistoryDisabled):
		return errorResponse(c, fiber.StatusServiceUnavailable, err.Error())
	default:
		f.logger.Error("Failed to record moderation", zap.Error(err))
		return errorResponse(c, fiber.StatusInternalServerError, "failed to record moderation")
	}
}

func errorResponse(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"error": msg})
}

// requestLogger logs every request through zap
func requestLogger(logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		logger.Debug("Handled request",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", c.GetRespHeader(fiber.HeaderXRequestID)))
		return err
	}
}
