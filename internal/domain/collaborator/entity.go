package collaborator

import (
	"time"

	"collab-match/internal/domain/skill"
)

type Collaborator struct {
	ID        int64         `json:"id"`
	Email     string        `json:"email"`
	Name      string        `json:"nome"`
	Role      string        `json:"cargo"`
	Level     skill.Level   `json:"level"`
	Skills    []skill.Skill `json:"skills"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// Enrolment links a collaborator to a project owned by the project service.
type Enrolment struct {
	CollaboratorID int64
	ProjectID      int64
	EnrolledAt     time.Time
}
