package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"collab-match/internal/domain/collaborator"
	"collab-match/internal/domain/skill"
)

// MemoryCollaboratorRepository keeps collaborators and enrolments in process
// memory. Everything it returns is a copy.
type MemoryCollaboratorRepository struct {
	mu         sync.RWMutex
	nextID     int64
	items      map[int64]collaborator.Collaborator
	enrolments map[int64][]collaborator.Enrolment
	now        func() time.Time
}

func NewMemoryCollaboratorRepository() *MemoryCollaboratorRepository {
	return &MemoryCollaboratorRepository{
		nextID:     1,
		items:      map[int64]collaborator.Collaborator{},
		enrolments: map[int64][]collaborator.Enrolment{},
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func cloneCollaborator(c collaborator.Collaborator) collaborator.Collaborator {
	c.Skills = cloneSkills(c.Skills)
	return c
}

func (r *MemoryCollaboratorRepository) sortedLocked() []collaborator.Collaborator {
	out := make([]collaborator.Collaborator, 0, len(r.items))
	for _, c := range r.items {
		out = append(out, cloneCollaborator(c))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *MemoryCollaboratorRepository) emailTakenLocked(email string, exceptID int64) bool {
	for id, c := range r.items {
		if id != exceptID && strings.EqualFold(c.Email, email) {
			return true
		}
	}
	return false
}

func (r *MemoryCollaboratorRepository) List(ctx context.Context) ([]collaborator.Collaborator, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sortedLocked(), nil
}

func (r *MemoryCollaboratorRepository) GetByID(ctx context.Context, id int64) (collaborator.Collaborator, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.items[id]
	if !ok {
		return collaborator.Collaborator{}, collaborator.ErrNotFound
	}
	return cloneCollaborator(c), nil
}

func (r *MemoryCollaboratorRepository) GetByEmail(ctx context.Context, email string) (collaborator.Collaborator, error) {
	email = strings.TrimSpace(email)
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.sortedLocked() {
		if strings.EqualFold(c.Email, email) {
			return c, nil
		}
	}
	return collaborator.Collaborator{}, collaborator.ErrNotFound
}

func (r *MemoryCollaboratorRepository) GetByIDs(ctx context.Context, ids []int64) ([]collaborator.Collaborator, error) {
	want := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]collaborator.Collaborator, 0, len(ids))
	for _, c := range r.sortedLocked() {
		if _, ok := want[c.ID]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *MemoryCollaboratorRepository) Create(ctx context.Context, c collaborator.Collaborator) (collaborator.Collaborator, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.emailTakenLocked(c.Email, 0) {
		return collaborator.Collaborator{}, collaborator.ErrEmailTaken
	}

	now := r.now()
	c.ID = r.nextID
	r.nextID++
	c.CreatedAt = now
	c.UpdatedAt = now
	if c.Skills == nil {
		c.Skills = []skill.Skill{}
	}
	r.items[c.ID] = cloneCollaborator(c)
	return cloneCollaborator(c), nil
}

func (r *MemoryCollaboratorRepository) Update(ctx context.Context, c collaborator.Collaborator) (collaborator.Collaborator, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.items[c.ID]
	if !ok {
		return collaborator.Collaborator{}, collaborator.ErrNotFound
	}
	if r.emailTakenLocked(c.Email, c.ID) {
		return collaborator.Collaborator{}, collaborator.ErrEmailTaken
	}

	c.CreatedAt = existing.CreatedAt
	c.UpdatedAt = r.now()
	if c.Skills == nil {
		c.Skills = []skill.Skill{}
	}
	r.items[c.ID] = cloneCollaborator(c)
	return cloneCollaborator(c), nil
}

func (r *MemoryCollaboratorRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return collaborator.ErrNotFound
	}
	delete(r.items, id)
	for pid, list := range r.enrolments {
		kept := list[:0]
		for _, e := range list {
			if e.CollaboratorID != id {
				kept = append(kept, e)
			}
		}
		r.enrolments[pid] = kept
	}
	return nil
}

func (r *MemoryCollaboratorRepository) Enroll(ctx context.Context, collaboratorID, projectID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[collaboratorID]; !ok {
		return collaborator.ErrNotFound
	}
	for _, e := range r.enrolments[projectID] {
		if e.CollaboratorID == collaboratorID {
			return collaborator.ErrAlreadyEnrolled
		}
	}
	r.enrolments[projectID] = append(r.enrolments[projectID], collaborator.Enrolment{
		CollaboratorID: collaboratorID,
		ProjectID:      projectID,
		EnrolledAt:     r.now(),
	})
	return nil
}

func (r *MemoryCollaboratorRepository) Unenroll(ctx context.Context, collaboratorID, projectID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	list := r.enrolments[projectID]
	for i, e := range list {
		if e.CollaboratorID == collaboratorID {
			r.enrolments[projectID] = append(list[:i:i], list[i+1:]...)
			return nil
		}
	}
	return collaborator.ErrEnrolmentNotFound
}

func (r *MemoryCollaboratorRepository) ListEnrolledIDs(ctx context.Context, projectID int64) ([]int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := r.enrolments[projectID]
	out := make([]int64, 0, len(list))
	for _, e := range list {
		out = append(out, e.CollaboratorID)
	}
	return out, nil
}

var _ collaborator.Repository = (*MemoryCollaboratorRepository)(nil)
