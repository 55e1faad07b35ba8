package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jacentio/companies/company"
)

// Service is the record service the handlers call.
// *company.Service implements it.
type Service interface {
	List(ctx context.Context, location string) ([]company.View, error)
	Create(ctx context.Context, input any) (company.Record, error)
	Update(ctx context.Context, id string, input any) (company.Record, error)
	Delete(ctx context.Context, id string) (string, error)
}

var _ Service = (*company.Service)(nil)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// CompanyHandler serves the /api/companies resource.
type CompanyHandler struct {
	svc    Service
	logger zerolog.Logger
}

// NewCompanyHandler builds the handler around svc.
func NewCompanyHandler(svc Service, logger zerolog.Logger) *CompanyHandler {
	return &CompanyHandler{svc: svc, logger: logger}
}

// Health reports liveness.
func Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"ok": true})
}

// List handles GET /api/companies[?location=].
func (h *CompanyHandler) List(c *fiber.Ctx) error {
	views, err := h.svc.List(c.UserContext(), c.Query("location"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(views)
}

// Create handles POST /api/companies.
func (h *CompanyHandler) Create(c *fiber.Ctx) error {
	rec, err := h.svc.Create(c.UserContext(), decodeBody(c.Body()))
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(rec)
}

// Update handles PUT /api/companies/:id.
func (h *CompanyHandler) Update(c *fiber.Ctx) error {
	rec, err := h.svc.Update(c.UserContext(), c.Params("id"), decodeBody(c.Body()))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(rec)
}

// Delete handles DELETE /api/companies/:id.
func (h *CompanyHandler) Delete(c *fiber.Ctx) error {
	id, err := h.svc.Delete(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"deleted": id})
}

// decodeBody parses a JSON body. Empty, null or malformed bodies decode to
// an empty object so they surface as validation errors, not parse errors.
func decodeBody(body []byte) any {
	var v any
	if err := json.Unmarshal(body, &v); err != nil || v == nil {
		return map[string]any{}
	}
	return v
}

// fail maps service errors to status codes and user-facing messages.
func (h *CompanyHandler) fail(c *fiber.Ctx, err error) error {
	status, msg := classify(err)
	if status >= fiber.StatusInternalServerError {
		h.logger.Error().Err(err).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Msg("request failed")
	}
	return c.Status(status).JSON(ErrorResponse{Error: msg})
}

func classify(err error) (int, string) {
	var missing *company.MissingFieldError
	switch {
	case errors.As(err, &missing):
		return fiber.StatusBadRequest, fmt.Sprintf("Missing or empty '%s'", missing.Field)
	case errors.Is(err, company.ErrInvalidBody):
		return fiber.StatusBadRequest, "Invalid JSON body"
	case errors.Is(err, company.ErrEmptyUpdate):
		return fiber.StatusBadRequest, "No fields to update"
	case errors.Is(err, company.ErrNotFound):
		return fiber.StatusNotFound, "Not found"
	case errors.Is(err, company.ErrUnavailable):
		return fiber.StatusServiceUnavailable, "Service unavailable"
	default:
		return fiber.StatusInternalServerError, "Internal server error"
	}
}
