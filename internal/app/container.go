package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"collab-match/internal/config"
	"collab-match/internal/database"
	"collab-match/internal/database/migration"
	dbpostgres "collab-match/internal/database/postgres"
	"collab-match/internal/database/seeder"
	"collab-match/internal/domain/collaborator"
	"collab-match/internal/infrastructure/cache"
	"collab-match/internal/infrastructure/projects"
	"collab-match/internal/repository"
	"collab-match/internal/usecase"
	"collab-match/internal/ws"
)

// Container owns the long-lived dependencies of the service.
type Container struct {
	Config config.Config
	Logger *log.Logger

	DB            database.DB
	// Migrations lists the migrations applied while the container was built.
	Migrations    []migration.Migration
	Cache         *cache.Redis
	Collaborators collaborator.Repository
	Projects      projects.Client
	Tags          *projects.TagCatalog
	Hub           *ws.Hub
}

func NewContainer(ctx context.Context, cfg config.Config, logger *log.Logger) (*Container, error) {
	if logger == nil {
		logger = log.Default()
	}
	c := &Container{Config: cfg, Logger: logger}

	switch cfg.Database.Driver {
	case config.DriverPostgres:
		if err := c.openPostgres(ctx); err != nil {
			return nil, err
		}
	default:
		c.Collaborators = repository.NewMemoryCollaboratorRepository()
		logger.Info("using in-memory collaborator store")
	}

	c.Cache = cache.NewRedis(ctx, cfg.Redis, logger.WithPrefix("cache"))
	c.Projects = projects.NewClient(
		cfg.Projects.BaseURL,
		cfg.Projects.Timeout,
		logger.WithPrefix("projects"),
		projects.WithCache(c.Cache, cfg.Redis.TTL),
	)

	tags, err := projects.NewTagCatalog(c.Projects, cfg.Projects.TagCacheSize)
	if err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("tag catalog: %w", err)
	}
	c.Tags = tags
	c.Hub = ws.NewHub(logger)

	if cfg.Seed.Demo {
		if err := c.SeedDemo(ctx); err != nil {
			_ = c.Close()
			return nil, err
		}
	}

	return c, nil
}

func (c *Container) openPostgres(ctx context.Context) error {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(connectCtx, c.Config.Database, c.Logger.WithPrefix("pg"))
	if err != nil {
		return err
	}
	c.DB = db

	if err := c.Migrate(ctx); err != nil {
		_ = db.Close()
		return err
	}

	c.Collaborators = repository.NewPostgresCollaboratorRepository(db)
	c.Logger.Info("using postgres collaborator store", "host", c.Config.Database.DBHost, "db", c.Config.Database.DBName)
	return nil
}

// Migrate applies pending SQL migrations, from DB_MIGRATIONS_DIR when set and
// the embedded files otherwise. It is a no-op for the memory store.
func (c *Container) Migrate(ctx context.Context) error {
	if c.DB == nil {
		return nil
	}
	runner := migration.Runner{
		Source: migration.Source(c.Config.Database.MigrationsDir),
		Logger: c.Logger.WithPrefix("migration"),
	}
	applied, err := runner.Run(ctx, c.DB)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	c.Migrations = append(c.Migrations, applied...)
	return nil
}

func (c *Container) SeedDemo(ctx context.Context) error {
	if c.DB != nil {
		if err := seeder.CheckCollaboratorSchema(ctx, c.DB); err != nil {
			return fmt.Errorf("seed: %w", err)
		}
	}
	runner := seeder.Runner{Seeders: seeder.Defaults(), Logger: c.Logger.WithPrefix("seed")}
	return runner.Run(ctx, c.Collaborators)
}

// HealthChecks lists the dependencies readiness depends on.
func (c *Container) HealthChecks() []usecase.HealthCheck {
	var checks []usecase.HealthCheck
	if c.DB != nil {
		checks = append(checks, usecase.HealthCheck{Name: "postgres", Ping: c.DB.Ping})
	}
	if c.Config.Redis.Enabled() {
		checks = append(checks, usecase.HealthCheck{Name: "redis", Ping: c.Cache.Ping})
	}
	return checks
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	var errs []error
	if c.Cache != nil {
		errs = append(errs, c.Cache.Close())
	}
	if c.DB != nil {
		errs = append(errs, c.DB.Close())
	}
	return errors.Join(errs...)
}
