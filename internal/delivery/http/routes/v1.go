package routes

import "github.com/gofiber/fiber/v3"

func RegisterV1(r fiber.Router, h Handlers) {
	if r == nil {
		return
	}

	if h.Enrolments != nil {
		h.Enrolments.RegisterRoutes(r)
	}
	if h.Matches != nil {
		h.Matches.RegisterRoutes(r)
	}
	if h.Collaborators != nil {
		h.Collaborators.RegisterRoutes(r)
	}
	if h.Projects != nil {
		h.Projects.RegisterRoutes(r)
	}
}
