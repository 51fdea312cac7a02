package routes

import (
	"github.com/gofiber/fiber/v3"

	"collab-match/internal/delivery/http/handler"
	"collab-match/internal/ws"
)

// Handlers groups everything the registry mounts. Nil handlers are skipped.
type Handlers struct {
	Health        *handler.HealthHandler
	Collaborators *handler.CollaboratorHandler
	Enrolments    *handler.EnrolmentHandler
	Matches       *handler.MatchHandler
	Projects      *handler.ProjectHandler
	WS            *ws.Handler
}

type Registry struct {
	h Handlers
}

func NewRegistry(h Handlers) *Registry {
	return &Registry{h: h}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerHealth(app)
	r.registerWS(app)
	RegisterV1(app, r.h)
	r.registerAPI(app)
}

func (r *Registry) registerHealth(app *fiber.App) {
	if r.h.Health != nil {
		r.h.Health.RegisterRoutes(app)
	}
}

func (r *Registry) registerWS(app *fiber.App) {
	if r.h.WS != nil {
		app.Get("/ws/enrolments", r.h.WS.HandleEnrolmentsWS)
	}
}

// registerAPI mirrors the resource routes under /api/v1.
func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api")
	RegisterV1(api.Group("/v1"), r.h)
}
