// Package api exposes the company service over HTTP with Fiber.
package api

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"
)

// Options configures the HTTP application.
type Options struct {
	Service     Service
	Logger      zerolog.Logger
	CORSOrigins string
}

// New builds the Fiber app with middleware and routes registered.
func New(opts Options) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "companies",
		DisableStartupMessage: true,
		UnescapePath:          true,
		ErrorHandler:          errorHandler,
	})

	app.Use(requestLogger(opts.Logger))
	app.Use(recover.New())
	origins := opts.CORSOrigins
	if origins == "" {
		origins = "*"
	}
	app.Use(cors.New(cors.Config{AllowOrigins: origins}))

	Router(app, opts)
	return app
}

// Router registers the API routes.
func Router(app *fiber.App, opts Options) {
	app.Get("/health", Health)

	companies := app.Group("/api/companies")
	h := NewCompanyHandler(opts.Service, opts.Logger)
	companies.Get("/", h.List)
	companies.Post("/", h.Create)
	companies.Put("/:id", h.Update)
	companies.Delete("/:id", h.Delete)
}

// errorHandler renders errors that escape handlers, such as unknown routes.
func errorHandler(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	msg := "Internal server error"
	var fe *fiber.Error
	if errors.As(err, &fe) {
		status = fe.Code
		msg = fe.Message
		if status == fiber.StatusNotFound {
			msg = "Not found"
		}
	}
	return c.Status(status).JSON(ErrorResponse{Error: msg})
}

// requestLogger logs one line per request.
func requestLogger(logger zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		if err != nil {
			// Let the error handler set the final status before logging.
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		logger.Info().
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", c.Response().StatusCode()).
			Dur("latency", time.Since(start)).
			Msg("request")
		return nil
	}
}
