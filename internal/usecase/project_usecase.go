package usecase

import (
	"context"

	"collab-match/internal/domain/project"
)

type ProjectUsecase interface {
	List(ctx context.Context) []project.Project
	Get(ctx context.Context, id int64) (project.Project, error)
}

// Projects proxies the project service. An unreachable service looks like an
// empty catalogue.
type Projects struct {
	source ProjectSource
}

func NewProjectUsecase(source ProjectSource) *Projects {
	return &Projects{source: source}
}

func (u *Projects) List(ctx context.Context) []project.Project {
	if u == nil || u.source == nil {
		return []project.Project{}
	}
	items := u.source.ListProjects(ctx)
	if items == nil {
		return []project.Project{}
	}
	return items
}

func (u *Projects) Get(ctx context.Context, id int64) (project.Project, error) {
	if u == nil || u.source == nil {
		return project.Project{}, ErrProjectNotFound
	}
	p, ok := u.source.GetProject(ctx, id)
	if !ok {
		return project.Project{}, ErrProjectNotFound
	}
	return p, nil
}

var _ ProjectUsecase = (*Projects)(nil)
