package usecase

import (
	"context"
	"errors"
	"testing"

	"collab-match/internal/domain/collaborator"
	"collab-match/internal/domain/skill"
	"collab-match/internal/pkg/logger"
	"collab-match/internal/repository"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *log.Logger {
	return logger.Discard()
}

func validCreateInput(email string) CreateCollaboratorInput {
	return CreateCollaboratorInput{
		Email: email,
		Name:  "Carlos Silva",
		Role:  "DevOps Engineer",
		Level: "advanced",
		Skills: []SkillInput{
			{Name: "DevOps", Level: "Advanced"},
			{Name: "Docker", Level: "intermediate"},
		},
	}
}

func ptr[T any](v T) *T { return &v }

type failingRepo struct {
	collaborator.Repository
}

func (failingRepo) List(context.Context) ([]collaborator.Collaborator, error) {
	return nil, errors.New("connection reset")
}

func TestCollaborators_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	uc := NewCollaboratorUsecase(repository.NewMemoryCollaboratorRepository(), quietLogger())

	created, err := uc.Create(ctx, validCreateInput("  Carlos@Example.com "))
	require.NoError(t, err)
	assert.Equal(t, "carlos@example.com", created.Email)
	assert.Equal(t, skill.LevelAdvanced, created.Level)
	assert.Equal(t, []skill.Skill{
		{Name: "DevOps", Level: skill.LevelAdvanced},
		{Name: "Docker", Level: skill.LevelIntermediate},
	}, created.Skills)

	got, err := uc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Email, got.Email)

	byEmail, err := uc.GetByEmail(ctx, "CARLOS@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)

	_, err = uc.Create(ctx, validCreateInput("carlos@example.com"))
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestCollaborators_CreateValidation(t *testing.T) {
	uc := NewCollaboratorUsecase(repository.NewMemoryCollaboratorRepository(), quietLogger())

	in := validCreateInput("not-an-email")
	in.Level = "expert"
	in.Skills[1].Name = "  "

	_, err := uc.Create(context.Background(), in)
	require.ErrorIs(t, err, ErrInvalidInput)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "email", verr.Fields["email"])
	assert.Equal(t, "level", verr.Fields["level"])
	assert.Equal(t, "notblank", verr.Fields["skills[1].nome"])
}

func TestCollaborators_CreateRequiresSkillsList(t *testing.T) {
	uc := NewCollaboratorUsecase(repository.NewMemoryCollaboratorRepository(), quietLogger())

	in := validCreateInput("a@example.com")
	in.Skills = nil
	_, err := uc.Create(context.Background(), in)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "required", verr.Fields["skills"])

	in.Skills = []SkillInput{}
	created, err := uc.Create(context.Background(), in)
	require.NoError(t, err)
	assert.Empty(t, created.Skills)
}

func TestCollaborators_PartialUpdate(t *testing.T) {
	ctx := context.Background()
	uc := NewCollaboratorUsecase(repository.NewMemoryCollaboratorRepository(), quietLogger())

	a, err := uc.Create(ctx, validCreateInput("a@example.com"))
	require.NoError(t, err)
	_, err = uc.Create(ctx, validCreateInput("b@example.com"))
	require.NoError(t, err)

	updated, err := uc.Update(ctx, a.ID, UpdateCollaboratorInput{Role: ptr("SRE")})
	require.NoError(t, err)
	assert.Equal(t, "SRE", updated.Role)
	assert.Equal(t, a.Name, updated.Name)
	assert.Len(t, updated.Skills, 2)

	updated, err = uc.Update(ctx, a.ID, UpdateCollaboratorInput{Skills: &[]SkillInput{}})
	require.NoError(t, err)
	assert.Empty(t, updated.Skills)

	_, err = uc.Update(ctx, a.ID, UpdateCollaboratorInput{Email: ptr("B@example.com")})
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)

	_, err = uc.Update(ctx, a.ID, UpdateCollaboratorInput{Level: ptr("guru")})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Update(ctx, 99, UpdateCollaboratorInput{Role: ptr("SRE")})
	assert.ErrorIs(t, err, ErrCollaboratorNotFound)
}

func TestCollaborators_Delete(t *testing.T) {
	ctx := context.Background()
	uc := NewCollaboratorUsecase(repository.NewMemoryCollaboratorRepository(), quietLogger())

	c, err := uc.Create(ctx, validCreateInput("a@example.com"))
	require.NoError(t, err)

	require.NoError(t, uc.Delete(ctx, c.ID))
	assert.ErrorIs(t, uc.Delete(ctx, c.ID), ErrCollaboratorNotFound)
	_, err = uc.Get(ctx, c.ID)
	assert.ErrorIs(t, err, ErrCollaboratorNotFound)
}

func TestCollaborators_StoreFailureIsInternal(t *testing.T) {
	uc := NewCollaboratorUsecase(failingRepo{}, quietLogger())
	_, err := uc.List(context.Background())
	assert.ErrorIs(t, err, ErrInternal)
}
