package main

import (
	"context"
	"flag"
	"time"

	"github.com/charmbracelet/log"

	"collab-match/internal/app"
	"collab-match/internal/config"
	"collab-match/internal/pkg/logger"
)

func main() {
	seed := flag.Bool("seed", false, "insert the demo collaborators after migrating")
	dir := flag.String("dir", "", "migrations directory (defaults to DB_MIGRATIONS_DIR, then the embedded files)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("failed to load config", "err", err)
	}
	if cfg.Database.Driver != config.DriverPostgres {
		log.Fatal("migrations need DB_DRIVER=postgres", "driver", cfg.Database.Driver)
	}
	if *dir != "" {
		cfg.Database.MigrationsDir = *dir
	}
	// seeding is driven by -seed here
	cfg.Seed.Demo = false

	lg := logger.New(cfg.Log).WithPrefix("migrate")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	c, err := app.NewContainer(ctx, cfg, lg)
	if err != nil {
		lg.Fatal("failed to init container", "err", err)
	}
	defer func() {
		_ = c.Close()
	}()

	for _, m := range c.Migrations {
		lg.Info("applied", "migration", m.String())
	}

	if *seed {
		if err := c.SeedDemo(ctx); err != nil {
			lg.Fatal("seed failed", "err", err)
		}
	}
	lg.Info("done", "applied", len(c.Migrations), "seeded", *seed)
}
