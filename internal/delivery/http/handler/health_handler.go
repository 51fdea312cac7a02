package handler

import (
	"github.com/gofiber/fiber/v3"

	"collab-match/internal/pkg/response"
	"collab-match/internal/usecase"
)

type HealthHandler struct {
	uc usecase.HealthUsecase
}

func NewHealthHandler(uc usecase.HealthUsecase) *HealthHandler {
	return &HealthHandler{uc: uc}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/healthz", h.Liveness)
	r.Get("/readyz", h.Readiness)
}

func (h *HealthHandler) Liveness(c fiber.Ctx) error {
	return response.Success(c, fiber.StatusOK, response.MessageOK, fiber.Map{"status": usecase.HealthStatusOK})
}

func (h *HealthHandler) Readiness(c fiber.Ctx) error {
	if h.uc == nil {
		return response.Success(c, fiber.StatusOK, response.MessageOK, fiber.Map{"status": usecase.HealthStatusOK})
	}
	report := h.uc.Readiness(c.Context())
	if !report.Healthy() {
		return response.Error(c, fiber.StatusServiceUnavailable, response.MessageServiceUnavailable, report)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, report)
}
