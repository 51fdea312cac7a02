package handler

import (
	"github.com/gofiber/fiber/v3"

	"collab-match/internal/pkg/response"
	"collab-match/internal/usecase"
)

type MatchHandler struct {
	uc usecase.MatchingUsecase
}

func NewMatchHandler(uc usecase.MatchingUsecase) *MatchHandler {
	return &MatchHandler{uc: uc}
}

func (h *MatchHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/colaboradores/por-projeto/:project_id", h.MatchProject)
}

// MatchProject ranks every collaborator against the skills the project asks for.
func (h *MatchHandler) MatchProject(c fiber.Ctx) error {
	projectID, err := idParam(c, "project_id")
	if err != nil {
		return err
	}
	res, err := h.uc.MatchProject(c.Context(), projectID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}
