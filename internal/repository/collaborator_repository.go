package repository

import (
	"context"
	"fmt"
	"strings"

	"collab-match/internal/database"
	"collab-match/internal/domain/collaborator"
	"collab-match/internal/domain/skill"
)

type PostgresCollaboratorRepository struct {
	db database.DB
}

func NewPostgresCollaboratorRepository(db database.DB) *PostgresCollaboratorRepository {
	return &PostgresCollaboratorRepository{db: db}
}

const collaboratorColumns = `id, email, name, role, level, created_at, updated_at`

func scanCollaborator(row database.Row) (collaborator.Collaborator, error) {
	var c collaborator.Collaborator
	var level string
	if err := row.Scan(&c.ID, &c.Email, &c.Name, &c.Role, &level, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return collaborator.Collaborator{}, err
	}
	c.Level = skill.Level(level)
	c.Skills = []skill.Skill{}
	return c, nil
}

func (r *PostgresCollaboratorRepository) List(ctx context.Context) ([]collaborator.Collaborator, error) {
	return r.queryCollaborators(ctx, `SELECT `+collaboratorColumns+` FROM collaborators ORDER BY id ASC`)
}

func (r *PostgresCollaboratorRepository) GetByID(ctx context.Context, id int64) (collaborator.Collaborator, error) {
	return r.getOne(ctx, `SELECT `+collaboratorColumns+` FROM collaborators WHERE id = $1`, id)
}

func (r *PostgresCollaboratorRepository) GetByEmail(ctx context.Context, email string) (collaborator.Collaborator, error) {
	return r.getOne(ctx, `SELECT `+collaboratorColumns+` FROM collaborators WHERE lower(email) = lower($1)`, strings.TrimSpace(email))
}

func (r *PostgresCollaboratorRepository) GetByIDs(ctx context.Context, ids []int64) ([]collaborator.Collaborator, error) {
	if len(ids) == 0 {
		return []collaborator.Collaborator{}, nil
	}
	return r.queryCollaborators(ctx, `SELECT `+collaboratorColumns+` FROM collaborators WHERE id = ANY($1) ORDER BY id ASC`, ids)
}

func (r *PostgresCollaboratorRepository) getOne(ctx context.Context, query string, args ...any) (collaborator.Collaborator, error) {
	c, err := scanCollaborator(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if database.IsNoRows(err) {
			return collaborator.Collaborator{}, collaborator.ErrNotFound
		}
		return collaborator.Collaborator{}, fmt.Errorf("get collaborator: %w", err)
	}

	skills, err := loadSkills(ctx, r.db, []int64{c.ID})
	if err != nil {
		return collaborator.Collaborator{}, err
	}
	if s, ok := skills[c.ID]; ok {
		c.Skills = s
	}
	return c, nil
}

func (r *PostgresCollaboratorRepository) queryCollaborators(ctx context.Context, query string, args ...any) ([]collaborator.Collaborator, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list collaborators: %w", err)
	}
	defer rows.Close()

	out := make([]collaborator.Collaborator, 0)
	ids := make([]int64, 0)
	for rows.Next() {
		c, err := scanCollaborator(rows)
		if err != nil {
			return nil, fmt.Errorf("scan collaborator: %w", err)
		}
		out = append(out, c)
		ids = append(ids, c.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list collaborators: %w", err)
	}
	rows.Close()

	if len(ids) == 0 {
		return out, nil
	}
	skills, err := loadSkills(ctx, r.db, ids)
	if err != nil {
		return nil, err
	}
	for i := range out {
		if s, ok := skills[out[i].ID]; ok {
			out[i].Skills = s
		}
	}
	return out, nil
}

func loadSkills(ctx context.Context, q database.Querier, ids []int64) (map[int64][]skill.Skill, error) {
	rows, err := q.Query(ctx,
		`SELECT collaborator_id, name, level
		 FROM collaborator_skills
		 WHERE collaborator_id = ANY($1)
		 ORDER BY collaborator_id ASC, position ASC`,
		ids,
	)
	if err != nil {
		return nil, fmt.Errorf("load collaborator skills: %w", err)
	}
	defer rows.Close()

	out := make(map[int64][]skill.Skill, len(ids))
	for rows.Next() {
		var id int64
		var name, level string
		if err := rows.Scan(&id, &name, &level); err != nil {
			return nil, fmt.Errorf("scan collaborator skill: %w", err)
		}
		out[id] = append(out[id], skill.Skill{Name: name, Level: skill.Level(level)})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load collaborator skills: %w", err)
	}
	return out, nil
}

func replaceSkills(ctx context.Context, q database.Querier, id int64, skills []skill.Skill) error {
	if _, err := q.Exec(ctx, `DELETE FROM collaborator_skills WHERE collaborator_id = $1`, id); err != nil {
		return fmt.Errorf("clear collaborator skills: %w", err)
	}
	for i, s := range skills {
		_, err := q.Exec(ctx,
			`INSERT INTO collaborator_skills (collaborator_id, position, name, level) VALUES ($1, $2, $3, $4)`,
			id, i, s.Name, string(s.Level),
		)
		if err != nil {
			return fmt.Errorf("insert collaborator skill: %w", err)
		}
	}
	return nil
}

func (r *PostgresCollaboratorRepository) Create(ctx context.Context, c collaborator.Collaborator) (collaborator.Collaborator, error) {
	var created collaborator.Collaborator
	err := r.db.InTx(ctx, func(q database.Querier) error {
		var err error
		created, err = scanCollaborator(q.QueryRow(ctx,
			`INSERT INTO collaborators (email, name, role, level)
			 VALUES ($1, $2, $3, $4)
			 RETURNING `+collaboratorColumns,
			c.Email, c.Name, c.Role, string(c.Level),
		))
		if err != nil {
			if database.IsUniqueViolation(err) {
				return collaborator.ErrEmailTaken
			}
			return fmt.Errorf("insert collaborator: %w", err)
		}
		return replaceSkills(ctx, q, created.ID, c.Skills)
	})
	if err != nil {
		return collaborator.Collaborator{}, err
	}

	created.Skills = cloneSkills(c.Skills)
	return created, nil
}

func (r *PostgresCollaboratorRepository) Update(ctx context.Context, c collaborator.Collaborator) (collaborator.Collaborator, error) {
	var updated collaborator.Collaborator
	err := r.db.InTx(ctx, func(q database.Querier) error {
		var err error
		updated, err = scanCollaborator(q.QueryRow(ctx,
			`UPDATE collaborators
			 SET email = $1, name = $2, role = $3, level = $4, updated_at = now()
			 WHERE id = $5
			 RETURNING `+collaboratorColumns,
			c.Email, c.Name, c.Role, string(c.Level), c.ID,
		))
		switch {
		case database.IsNoRows(err):
			return collaborator.ErrNotFound
		case database.IsUniqueViolation(err):
			return collaborator.ErrEmailTaken
		case err != nil:
			return fmt.Errorf("update collaborator: %w", err)
		}
		return replaceSkills(ctx, q, updated.ID, c.Skills)
	})
	if err != nil {
		return collaborator.Collaborator{}, err
	}

	updated.Skills = cloneSkills(c.Skills)
	return updated, nil
}

func (r *PostgresCollaboratorRepository) Delete(ctx context.Context, id int64) error {
	affected, err := r.db.Exec(ctx, `DELETE FROM collaborators WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete collaborator: %w", err)
	}
	if affected == 0 {
		return collaborator.ErrNotFound
	}
	return nil
}

func (r *PostgresCollaboratorRepository) Enroll(ctx context.Context, collaboratorID, projectID int64) error {
	affected, err := r.db.Exec(ctx,
		`INSERT INTO project_enrolments (collaborator_id, project_id)
		 VALUES ($1, $2)
		 ON CONFLICT (collaborator_id, project_id) DO NOTHING`,
		collaboratorID, projectID,
	)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return collaborator.ErrNotFound
		}
		return fmt.Errorf("enroll collaborator: %w", err)
	}
	if affected == 0 {
		return collaborator.ErrAlreadyEnrolled
	}
	return nil
}

func (r *PostgresCollaboratorRepository) Unenroll(ctx context.Context, collaboratorID, projectID int64) error {
	affected, err := r.db.Exec(ctx,
		`DELETE FROM project_enrolments WHERE collaborator_id = $1 AND project_id = $2`,
		collaboratorID, projectID,
	)
	if err != nil {
		return fmt.Errorf("unenroll collaborator: %w", err)
	}
	if affected == 0 {
		return collaborator.ErrEnrolmentNotFound
	}
	return nil
}

func (r *PostgresCollaboratorRepository) ListEnrolledIDs(ctx context.Context, projectID int64) ([]int64, error) {
	rows, err := r.db.Query(ctx,
		`SELECT collaborator_id FROM project_enrolments WHERE project_id = $1 ORDER BY enrolled_at ASC, collaborator_id ASC`,
		projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("list enrolments: %w", err)
	}
	defer rows.Close()

	out := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan enrolment: %w", err)
		}
		out = append(out, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list enrolments: %w", err)
	}
	return out, nil
}

func cloneSkills(in []skill.Skill) []skill.Skill {
	out := make([]skill.Skill, len(in))
	copy(out, in)
	return out
}

var _ collaborator.Repository = (*PostgresCollaboratorRepository)(nil)
