package collaborator

import (
	"context"
	"errors"
)

var (
	ErrNotFound          = errors.New("collaborator not found")
	ErrEmailTaken        = errors.New("collaborator email already registered")
	ErrAlreadyEnrolled   = errors.New("collaborator already enrolled in project")
	ErrEnrolmentNotFound = errors.New("enrolment not found")
)

// Repository is the collaborator store. List returns collaborators ordered by id.
type Repository interface {
	List(ctx context.Context) ([]Collaborator, error)
	GetByID(ctx context.Context, id int64) (Collaborator, error)
	GetByEmail(ctx context.Context, email string) (Collaborator, error)
	GetByIDs(ctx context.Context, ids []int64) ([]Collaborator, error)
	Create(ctx context.Context, c Collaborator) (Collaborator, error)
	Update(ctx context.Context, c Collaborator) (Collaborator, error)
	Delete(ctx context.Context, id int64) error

	Enroll(ctx context.Context, collaboratorID, projectID int64) error
	Unenroll(ctx context.Context, collaboratorID, projectID int64) error
	ListEnrolledIDs(ctx context.Context, projectID int64) ([]int64, error)
}
