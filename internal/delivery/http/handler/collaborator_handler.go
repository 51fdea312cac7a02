package handler

import (
	"github.com/gofiber/fiber/v3"

	"collab-match/internal/pkg/response"
	"collab-match/internal/usecase"
)

type CollaboratorHandler struct {
	uc usecase.CollaboratorUsecase
}

func NewCollaboratorHandler(uc usecase.CollaboratorUsecase) *CollaboratorHandler {
	return &CollaboratorHandler{uc: uc}
}

func (h *CollaboratorHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/colaboradores")
	grp.Get("/", h.List)
	grp.Get("/email/:email", h.GetByEmail)
	grp.Get("/:id", h.Get)
	grp.Post("/", h.Create)
	grp.Put("/:id", h.Update)
	grp.Delete("/:id", h.Delete)
}

func (h *CollaboratorHandler) List(c fiber.Ctx) error {
	items, err := h.uc.List(c.Context())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, items)
}

func (h *CollaboratorHandler) GetByEmail(c fiber.Ctx) error {
	item, err := h.uc.GetByEmail(c.Context(), stringParam(c, "email"))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, item)
}

func (h *CollaboratorHandler) Get(c fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	item, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, item)
}

func (h *CollaboratorHandler) Create(c fiber.Ctx) error {
	var req usecase.CreateCollaboratorInput
	if err := bindBody(c, &req); err != nil {
		return err
	}
	created, err := h.uc.Create(c.Context(), req)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Created(c, created)
}

func (h *CollaboratorHandler) Update(c fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	var req usecase.UpdateCollaboratorInput
	if err := bindBody(c, &req); err != nil {
		return err
	}
	updated, err := h.uc.Update(c.Context(), id, req)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, updated)
}

func (h *CollaboratorHandler) Delete(c fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		return mapUsecaseError(err)
	}
	return response.NoContent(c)
}
