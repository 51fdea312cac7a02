package seeder

import (
	"context"
	"errors"

	"collab-match/internal/domain/collaborator"
	"collab-match/internal/domain/skill"
)

// CollaboratorsSeeder inserts the demo collaborators. Collaborators whose
// email already exists are skipped, so the seeder can run on every start.
type CollaboratorsSeeder struct{}

func (CollaboratorsSeeder) Name() string { return "collaborators" }

func (CollaboratorsSeeder) Run(ctx context.Context, repo collaborator.Repository) error {
	for _, c := range DemoCollaborators() {
		_, err := repo.GetByEmail(ctx, c.Email)
		if err == nil {
			continue
		}
		if !errors.Is(err, collaborator.ErrNotFound) {
			return err
		}
		if _, err := repo.Create(ctx, c); err != nil && !errors.Is(err, collaborator.ErrEmailTaken) {
			return err
		}
	}
	return nil
}

func DemoCollaborators() []collaborator.Collaborator {
	return []collaborator.Collaborator{
		{
			Email: "ana@example.com",
			Name:  "Ana Souza",
			Role:  "Desenvolvedora Backend",
			Level: skill.LevelAdvanced,
			Skills: []skill.Skill{
				{Name: "Python", Level: skill.LevelAdvanced},
				{Name: "SQL", Level: skill.LevelIntermediate},
			},
		},
		{
			Email: "joao@example.com",
			Name:  "João Lima",
			Role:  "Desenvolvedor Frontend",
			Level: skill.LevelBeginner,
			Skills: []skill.Skill{
				{Name: "HTML", Level: skill.LevelBeginner},
				{Name: "CSS", Level: skill.LevelBeginner},
			},
		},
		{
			Email: "bia@example.com",
			Name:  "Beatriz Costa",
			Role:  "Engenheira de Software",
			Level: skill.LevelIntermediate,
			Skills: []skill.Skill{
				{Name: "JavaScript", Level: skill.LevelIntermediate},
				{Name: "React", Level: skill.LevelIntermediate},
			},
		},
		{
			Email: "carlos@example.com",
			Name:  "Carlos Silva",
			Role:  "DevOps Engineer",
			Level: skill.LevelAdvanced,
			Skills: []skill.Skill{
				{Name: "DevOps", Level: skill.LevelAdvanced},
				{Name: "Docker", Level: skill.LevelIntermediate},
			},
		},
		{
			Email: "lucia@example.com",
			Name:  "Lúcia Santos",
			Role:  "Designer UX/UI",
			Level: skill.LevelIntermediate,
			Skills: []skill.Skill{
				{Name: "Design UI", Level: skill.LevelAdvanced},
				{Name: "Figma", Level: skill.LevelIntermediate},
			},
		},
	}
}
