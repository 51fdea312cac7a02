package seeder

import (
	"context"

	"collab-match/internal/domain/collaborator"
)

type Seeder interface {
	Name() string
	Run(ctx context.Context, repo collaborator.Repository) error
}
