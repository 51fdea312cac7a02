package usecase

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"

	"collab-match/internal/domain/collaborator"
	"collab-match/internal/domain/project"
)

// ProjectSource is the read side of the project service.
type ProjectSource interface {
	GetProject(ctx context.Context, id int64) (project.Project, bool)
	ListProjects(ctx context.Context) []project.Project
}

// EnrolmentNotifier is told about enrolment changes after they are stored.
type EnrolmentNotifier interface {
	EnrolmentCreated(collaboratorID, projectID int64)
	EnrolmentDeleted(collaboratorID, projectID int64)
}

type Enrolment struct {
	Message        string `json:"message"`
	CollaboratorID int64  `json:"colaborador_id"`
	ProjectID      int64  `json:"project_id"`
}

type EnrolledCollaborators struct {
	Project       project.Summary             `json:"projeto"`
	Collaborators []collaborator.Collaborator `json:"colaboradores"`
}

type EnrolmentUsecase interface {
	Enroll(ctx context.Context, collaboratorID, projectID int64) (Enrolment, error)
	Unenroll(ctx context.Context, collaboratorID, projectID int64) error
	ListEnrolled(ctx context.Context, projectID int64) (EnrolledCollaborators, error)
}

type Enrolments struct {
	repo     collaborator.Repository
	projects ProjectSource
	notifier EnrolmentNotifier
	log      *log.Logger
}

func NewEnrolmentUsecase(repo collaborator.Repository, projects ProjectSource, notifier EnrolmentNotifier, logger *log.Logger) *Enrolments {
	if logger == nil {
		logger = log.Default()
	}
	return &Enrolments{repo: repo, projects: projects, notifier: notifier, log: logger.WithPrefix("enrolments")}
}

func (u *Enrolments) Enroll(ctx context.Context, collaboratorID, projectID int64) (Enrolment, error) {
	if collaboratorID <= 0 {
		return Enrolment{}, ErrCollaboratorNotFound
	}
	if _, err := u.repo.GetByID(ctx, collaboratorID); err != nil {
		if errors.Is(err, collaborator.ErrNotFound) {
			return Enrolment{}, ErrCollaboratorNotFound
		}
		return Enrolment{}, u.internal("get collaborator", err)
	}

	if _, ok := u.projects.GetProject(ctx, projectID); !ok {
		return Enrolment{}, ErrProjectNotFound
	}

	if err := u.repo.Enroll(ctx, collaboratorID, projectID); err != nil {
		switch {
		case errors.Is(err, collaborator.ErrAlreadyEnrolled):
			return Enrolment{}, ErrAlreadyEnrolled
		case errors.Is(err, collaborator.ErrNotFound):
			return Enrolment{}, ErrCollaboratorNotFound
		default:
			return Enrolment{}, u.internal("enroll", err)
		}
	}

	u.log.Info("collaborator enrolled", "collaborator_id", collaboratorID, "project_id", projectID)
	if u.notifier != nil {
		u.notifier.EnrolmentCreated(collaboratorID, projectID)
	}
	return Enrolment{
		Message:        "collaborator enrolled",
		CollaboratorID: collaboratorID,
		ProjectID:      projectID,
	}, nil
}

func (u *Enrolments) Unenroll(ctx context.Context, collaboratorID, projectID int64) error {
	if err := u.repo.Unenroll(ctx, collaboratorID, projectID); err != nil {
		if errors.Is(err, collaborator.ErrEnrolmentNotFound) {
			return ErrEnrolmentNotFound
		}
		return u.internal("unenroll", err)
	}

	u.log.Info("collaborator unenrolled", "collaborator_id", collaboratorID, "project_id", projectID)
	if u.notifier != nil {
		u.notifier.EnrolmentDeleted(collaboratorID, projectID)
	}
	return nil
}

func (u *Enrolments) ListEnrolled(ctx context.Context, projectID int64) (EnrolledCollaborators, error) {
	p, ok := u.projects.GetProject(ctx, projectID)
	if !ok {
		return EnrolledCollaborators{}, ErrProjectNotFound
	}

	ids, err := u.repo.ListEnrolledIDs(ctx, projectID)
	if err != nil {
		return EnrolledCollaborators{}, u.internal("list enrolled ids", err)
	}

	items := []collaborator.Collaborator{}
	if len(ids) > 0 {
		items, err = u.repo.GetByIDs(ctx, ids)
		if err != nil {
			return EnrolledCollaborators{}, u.internal("get enrolled collaborators", err)
		}
	}

	return EnrolledCollaborators{
		Project:       project.Summary{ID: p.ID, Title: p.Title},
		Collaborators: items,
	}, nil
}

func (u *Enrolments) internal(op string, err error) error {
	u.log.Error("enrolment store failed", "op", op, "err", err)
	return ErrInternal
}

var _ EnrolmentUsecase = (*Enrolments)(nil)
