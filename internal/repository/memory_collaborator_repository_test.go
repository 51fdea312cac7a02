package repository

import (
	"context"
	"sync"
	"testing"

	"collab-match/internal/domain/collaborator"
	"collab-match/internal/domain/skill"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCollaborator(email string) collaborator.Collaborator {
	return collaborator.Collaborator{
		Email:  email,
		Name:   "Test",
		Role:   "Engineer",
		Level:  skill.LevelIntermediate,
		Skills: []skill.Skill{{Name: "Go", Level: skill.LevelAdvanced}},
	}
}

func TestMemoryCollaboratorRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryCollaboratorRepository()

	a, err := repo.Create(ctx, newCollaborator("a@example.com"))
	require.NoError(t, err)
	b, err := repo.Create(ctx, newCollaborator("b@example.com"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), a.ID)
	assert.Equal(t, int64(2), b.ID)
	assert.False(t, a.CreatedAt.IsZero())

	_, err = repo.Create(ctx, newCollaborator("A@Example.com"))
	assert.ErrorIs(t, err, collaborator.ErrEmailTaken)

	got, err := repo.GetByEmail(ctx, " B@EXAMPLE.COM ")
	require.NoError(t, err)
	assert.Equal(t, b.ID, got.ID)

	b.Name = "Renamed"
	b.Skills = nil
	updated, err := repo.Update(ctx, b)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	assert.NotNil(t, updated.Skills)
	assert.Equal(t, b.CreatedAt, updated.CreatedAt)

	b.Email = "a@example.com"
	_, err = repo.Update(ctx, b)
	assert.ErrorIs(t, err, collaborator.ErrEmailTaken)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, int64(1), list[0].ID)

	many, err := repo.GetByIDs(ctx, []int64{2, 99})
	require.NoError(t, err)
	require.Len(t, many, 1)
	assert.Equal(t, int64(2), many[0].ID)

	require.NoError(t, repo.Delete(ctx, a.ID))
	assert.ErrorIs(t, repo.Delete(ctx, a.ID), collaborator.ErrNotFound)
	_, err = repo.GetByID(ctx, a.ID)
	assert.ErrorIs(t, err, collaborator.ErrNotFound)
}

func TestMemoryCollaboratorRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryCollaboratorRepository()
	c, err := repo.Create(ctx, newCollaborator("a@example.com"))
	require.NoError(t, err)

	c.Skills[0].Name = "Mutated"
	got, err := repo.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Go", got.Skills[0].Name)
}

func TestMemoryCollaboratorRepository_Enrolments(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryCollaboratorRepository()
	a, _ := repo.Create(ctx, newCollaborator("a@example.com"))
	b, _ := repo.Create(ctx, newCollaborator("b@example.com"))

	require.NoError(t, repo.Enroll(ctx, b.ID, 7))
	require.NoError(t, repo.Enroll(ctx, a.ID, 7))
	assert.ErrorIs(t, repo.Enroll(ctx, a.ID, 7), collaborator.ErrAlreadyEnrolled)
	assert.ErrorIs(t, repo.Enroll(ctx, 42, 7), collaborator.ErrNotFound)

	ids, err := repo.ListEnrolledIDs(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, []int64{b.ID, a.ID}, ids)

	require.NoError(t, repo.Unenroll(ctx, b.ID, 7))
	assert.ErrorIs(t, repo.Unenroll(ctx, b.ID, 7), collaborator.ErrEnrolmentNotFound)

	require.NoError(t, repo.Delete(ctx, a.ID))
	ids, err = repo.ListEnrolledIDs(ctx, 7)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestMemoryCollaboratorRepository_ConcurrentCreate(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryCollaboratorRepository()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c := newCollaborator("")
			c.Email = string(rune('a'+i%26)) + string(rune('a'+i/26)) + "@example.com"
			_, _ = repo.Create(ctx, c)
		}(i)
	}
	wg.Wait()

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 50)
}
