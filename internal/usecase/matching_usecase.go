package usecase

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"collab-match/internal/domain/collaborator"
	"collab-match/internal/domain/matching"
	"collab-match/internal/domain/project"
)

// TagEnricher fills in tag data the project service only references by id.
type TagEnricher interface {
	Enrich(ctx context.Context, tags []project.Tag) []project.Tag
}

type MatchingUsecase interface {
	MatchProject(ctx context.Context, projectID int64) (matching.ProjectMatch, error)
}

type Matching struct {
	repo     collaborator.Repository
	projects ProjectSource
	tags     TagEnricher
	log      *log.Logger
}

func NewMatchingUsecase(repo collaborator.Repository, projects ProjectSource, tags TagEnricher, logger *log.Logger) *Matching {
	if logger == nil {
		logger = log.Default()
	}
	return &Matching{repo: repo, projects: projects, tags: tags, log: logger.WithPrefix("matching")}
}

func (u *Matching) MatchProject(ctx context.Context, projectID int64) (matching.ProjectMatch, error) {
	var (
		p    project.Project
		pool []collaborator.Collaborator
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		found, ok := u.projects.GetProject(gctx, projectID)
		if !ok {
			return ErrProjectNotFound
		}
		p = found
		return nil
	})
	g.Go(func() error {
		items, err := u.repo.List(gctx)
		if err != nil {
			return err
		}
		pool = items
		return nil
	})

	if err := g.Wait(); err != nil {
		if errors.Is(err, ErrProjectNotFound) {
			return matching.ProjectMatch{}, ErrProjectNotFound
		}
		u.log.Error("load collaborators failed", "project_id", projectID, "err", err)
		return matching.ProjectMatch{}, ErrInternal
	}

	if u.tags != nil {
		p.Tags = u.tags.Enrich(ctx, p.Tags)
	}

	res := matching.MatchProject(p, pool)
	u.log.Debug("project matched", "project_id", projectID, "pool", len(pool), "matched", len(res.Collaborators))
	return res, nil
}

var _ MatchingUsecase = (*Matching)(nil)
