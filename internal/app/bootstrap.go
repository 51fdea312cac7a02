package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"

	"collab-match/internal/config"
	"collab-match/internal/delivery/http/handler"
	"collab-match/internal/delivery/http/middleware"
	"collab-match/internal/delivery/http/routes"
	"collab-match/internal/usecase"
	"collab-match/internal/ws"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

// New builds the HTTP application on top of an already wired container.
func New(c *Container) *App {
	f := fiber.New(fiber.Config{AppName: c.Config.App.AppName})

	registerGlobalMiddleware(f, c.Logger)
	registerRoutes(f, c)

	return &App{Fiber: f, Container: c}
}

// Bootstrap wires every dependency, starts the websocket hub and returns the
// app with a cleanup function that stops the hub and releases connections.
func Bootstrap(ctx context.Context, cfg config.Config, logger *log.Logger) (*App, func() error, error) {
	c, err := NewContainer(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	hubCtx, stopHub := context.WithCancel(context.Background())
	go c.Hub.Run(hubCtx)

	app := New(c)
	cleanup := func() error {
		stopHub()
		return c.Close()
	}
	return app, cleanup, nil
}

func registerGlobalMiddleware(app *fiber.App, logger *log.Logger) {
	if app == nil {
		return
	}

	app.Use(middleware.NewAccessLogMiddleware(logger).Middleware())
	app.Use(middleware.NewErrorMiddleware(logger).Middleware())
	app.Use(cors.New())
}

func registerRoutes(app *fiber.App, c *Container) {
	if app == nil || c == nil {
		return
	}

	collaborators := usecase.NewCollaboratorUsecase(c.Collaborators, c.Logger)
	enrolments := usecase.NewEnrolmentUsecase(c.Collaborators, c.Projects, ws.NewEnrolmentNotifier(c.Hub), c.Logger)
	matches := usecase.NewMatchingUsecase(c.Collaborators, c.Projects, c.Tags, c.Logger)
	projectsUC := usecase.NewProjectUsecase(c.Projects)
	health := usecase.NewHealthUsecase(c.Logger, c.HealthChecks()...)

	routes.NewRegistry(routes.Handlers{
		Health:        handler.NewHealthHandler(health),
		Collaborators: handler.NewCollaboratorHandler(collaborators),
		Enrolments:    handler.NewEnrolmentHandler(enrolments),
		Matches:       handler.NewMatchHandler(matches),
		Projects:      handler.NewProjectHandler(projectsUC),
		WS:            ws.NewHandler(c.Hub, c.Logger),
	}).Register(app)
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
