package handler

import (
	"github.com/gofiber/fiber/v3"

	"collab-match/internal/pkg/response"
	"collab-match/internal/usecase"
)

type EnrolmentHandler struct {
	uc usecase.EnrolmentUsecase
}

func NewEnrolmentHandler(uc usecase.EnrolmentUsecase) *EnrolmentHandler {
	return &EnrolmentHandler{uc: uc}
}

func (h *EnrolmentHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/colaboradores")
	grp.Get("/inscritos/:project_id", h.ListEnrolled)
	grp.Post("/:id/projetos/:project_id", h.Enroll)
	grp.Delete("/:id/projetos/:project_id", h.Unenroll)
}

func (h *EnrolmentHandler) ListEnrolled(c fiber.Ctx) error {
	projectID, err := idParam(c, "project_id")
	if err != nil {
		return err
	}
	res, err := h.uc.ListEnrolled(c.Context(), projectID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func (h *EnrolmentHandler) Enroll(c fiber.Ctx) error {
	collaboratorID, err := idParam(c, "id")
	if err != nil {
		return err
	}
	projectID, err := idParam(c, "project_id")
	if err != nil {
		return err
	}
	res, err := h.uc.Enroll(c.Context(), collaboratorID, projectID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Created(c, res)
}

func (h *EnrolmentHandler) Unenroll(c fiber.Ctx) error {
	collaboratorID, err := idParam(c, "id")
	if err != nil {
		return err
	}
	projectID, err := idParam(c, "project_id")
	if err != nil {
		return err
	}
	if err := h.uc.Unenroll(c.Context(), collaboratorID, projectID); err != nil {
		return mapUsecaseError(err)
	}
	return response.NoContent(c)
}
