package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/log"

	"collab-match/internal/domain/collaborator"
	"collab-match/internal/domain/skill"
)

type SkillInput struct {
	Name  string `json:"nome" validate:"notblank"`
	Level string `json:"nivel" validate:"required,level"`
}

type CreateCollaboratorInput struct {
	Email  string       `json:"email" validate:"required,email"`
	Name   string       `json:"nome" validate:"notblank"`
	Role   string       `json:"cargo" validate:"notblank"`
	Level  string       `json:"level" validate:"required,level"`
	Skills []SkillInput `json:"skills" validate:"required,dive"`
}

// UpdateCollaboratorInput is a partial update: nil fields are left unchanged.
// A non-nil Skills replaces the whole skill list.
type UpdateCollaboratorInput struct {
	Email  *string       `json:"email" validate:"omitnil,email"`
	Name   *string       `json:"nome" validate:"omitnil,notblank"`
	Role   *string       `json:"cargo" validate:"omitnil,notblank"`
	Level  *string       `json:"level" validate:"omitnil,level"`
	Skills *[]SkillInput `json:"skills" validate:"omitnil,dive"`
}

type CollaboratorUsecase interface {
	List(ctx context.Context) ([]collaborator.Collaborator, error)
	Get(ctx context.Context, id int64) (collaborator.Collaborator, error)
	GetByEmail(ctx context.Context, email string) (collaborator.Collaborator, error)
	Create(ctx context.Context, in CreateCollaboratorInput) (collaborator.Collaborator, error)
	Update(ctx context.Context, id int64, in UpdateCollaboratorInput) (collaborator.Collaborator, error)
	Delete(ctx context.Context, id int64) error
}

type Collaborators struct {
	repo collaborator.Repository
	log  *log.Logger
}

func NewCollaboratorUsecase(repo collaborator.Repository, logger *log.Logger) *Collaborators {
	if logger == nil {
		logger = log.Default()
	}
	return &Collaborators{repo: repo, log: logger.WithPrefix("collaborators")}
}

func (u *Collaborators) List(ctx context.Context) ([]collaborator.Collaborator, error) {
	items, err := u.repo.List(ctx)
	if err != nil {
		return nil, u.internal("list", err)
	}
	if items == nil {
		items = []collaborator.Collaborator{}
	}
	return items, nil
}

func (u *Collaborators) Get(ctx context.Context, id int64) (collaborator.Collaborator, error) {
	if id <= 0 {
		return collaborator.Collaborator{}, ErrCollaboratorNotFound
	}
	c, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return collaborator.Collaborator{}, u.mapRepoError("get", err)
	}
	return c, nil
}

func (u *Collaborators) GetByEmail(ctx context.Context, email string) (collaborator.Collaborator, error) {
	email = normalizeEmail(email)
	if email == "" {
		return collaborator.Collaborator{}, ErrCollaboratorNotFound
	}
	c, err := u.repo.GetByEmail(ctx, email)
	if err != nil {
		return collaborator.Collaborator{}, u.mapRepoError("get by email", err)
	}
	return c, nil
}

func (u *Collaborators) Create(ctx context.Context, in CreateCollaboratorInput) (collaborator.Collaborator, error) {
	in.Email = normalizeEmail(in.Email)
	if err := validateStruct(in); err != nil {
		return collaborator.Collaborator{}, err
	}

	level, _ := skill.ParseLevel(in.Level)
	created, err := u.repo.Create(ctx, collaborator.Collaborator{
		Email:  in.Email,
		Name:   strings.TrimSpace(in.Name),
		Role:   strings.TrimSpace(in.Role),
		Level:  level,
		Skills: toSkills(in.Skills),
	})
	if err != nil {
		return collaborator.Collaborator{}, u.mapRepoError("create", err)
	}
	u.log.Info("collaborator created", "id", created.ID)
	return created, nil
}

func (u *Collaborators) Update(ctx context.Context, id int64, in UpdateCollaboratorInput) (collaborator.Collaborator, error) {
	if in.Email != nil {
		email := normalizeEmail(*in.Email)
		in.Email = &email
	}
	if err := validateStruct(in); err != nil {
		return collaborator.Collaborator{}, err
	}

	current, err := u.Get(ctx, id)
	if err != nil {
		return collaborator.Collaborator{}, err
	}

	if in.Email != nil {
		current.Email = *in.Email
	}
	if in.Name != nil {
		current.Name = strings.TrimSpace(*in.Name)
	}
	if in.Role != nil {
		current.Role = strings.TrimSpace(*in.Role)
	}
	if in.Level != nil {
		current.Level, _ = skill.ParseLevel(*in.Level)
	}
	if in.Skills != nil {
		current.Skills = toSkills(*in.Skills)
	}

	updated, err := u.repo.Update(ctx, current)
	if err != nil {
		return collaborator.Collaborator{}, u.mapRepoError("update", err)
	}
	return updated, nil
}

func (u *Collaborators) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrCollaboratorNotFound
	}
	if err := u.repo.Delete(ctx, id); err != nil {
		return u.mapRepoError("delete", err)
	}
	u.log.Info("collaborator deleted", "id", id)
	return nil
}

func (u *Collaborators) mapRepoError(op string, err error) error {
	switch {
	case errors.Is(err, collaborator.ErrNotFound):
		return ErrCollaboratorNotFound
	case errors.Is(err, collaborator.ErrEmailTaken):
		return ErrEmailAlreadyExists
	default:
		return u.internal(op, err)
	}
}

func (u *Collaborators) internal(op string, err error) error {
	u.log.Error("collaborator store failed", "op", op, "err", err)
	return ErrInternal
}

func toSkills(in []SkillInput) []skill.Skill {
	out := make([]skill.Skill, 0, len(in))
	for _, s := range in {
		level, _ := skill.ParseLevel(s.Level)
		out = append(out, skill.Skill{Name: strings.TrimSpace(s.Name), Level: level})
	}
	return out
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

var _ CollaboratorUsecase = (*Collaborators)(nil)
