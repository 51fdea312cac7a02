package seeder

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"collab-match/internal/domain/collaborator"
)

var ErrNilRepository = errors.New("nil collaborator repository")

type Runner struct {
	Seeders []Seeder
	Logger  *log.Logger
}

func (r Runner) Run(ctx context.Context, repo collaborator.Repository) error {
	if repo == nil {
		return ErrNilRepository
	}
	for _, s := range r.Seeders {
		if s == nil {
			continue
		}
		if err := s.Run(ctx, repo); err != nil {
			return fmt.Errorf("seed %s: %w", s.Name(), err)
		}
		if r.Logger != nil {
			r.Logger.Info("seeder finished", "name", s.Name())
		}
	}
	return nil
}
