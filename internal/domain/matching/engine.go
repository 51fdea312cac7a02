package matching

import (
	"sort"

	"collab-match/internal/domain/collaborator"
	"collab-match/internal/domain/project"
	"collab-match/internal/domain/skill"
)

type SkillMatch struct {
	SkillName     string      `json:"nome"`
	Level         skill.Level `json:"nivel"`
	RequiredLevel skill.Level `json:"nivel_necessario"`
}

type MatchResult struct {
	CollaboratorID int64        `json:"id"`
	Name           string       `json:"nome"`
	Email          string       `json:"email"`
	Role           string       `json:"cargo"`
	Matches        []SkillMatch `json:"skills_match"`
	Score          int          `json:"score_match"`
}

type ProjectMatch struct {
	Project       project.Summary `json:"projeto"`
	Collaborators []MatchResult   `json:"colaboradores"`
}

// Match scores every collaborator against reqs and returns only those with at
// least one satisfied requirement, highest score first. Equal scores keep the
// order of pool.
//
// Requirements are not consumed: one skill can satisfy several requirements
// with the same name and scores for each of them.
func Match(pool []collaborator.Collaborator, reqs []Requirement) []MatchResult {
	out := make([]MatchResult, 0)
	if len(reqs) == 0 {
		return out
	}

	for _, c := range pool {
		score := 0
		matched := make([]SkillMatch, 0)

		for _, r := range reqs {
			for _, s := range c.Skills {
				if !skill.SameName(s.Name, r.SkillName) {
					continue
				}
				if !s.Level.Satisfies(r.MinLevel) {
					continue
				}
				score += s.Level.Rank()
				matched = append(matched, SkillMatch{
					SkillName:     s.Name,
					Level:         s.Level,
					RequiredLevel: r.MinLevel,
				})
			}
		}

		if len(matched) == 0 {
			continue
		}
		out = append(out, MatchResult{
			CollaboratorID: c.ID,
			Name:           c.Name,
			Email:          c.Email,
			Role:           c.Role,
			Matches:        matched,
			Score:          score,
		})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}

// MatchProject extracts the requirements declared by p and ranks pool against them.
func MatchProject(p project.Project, pool []collaborator.Collaborator) ProjectMatch {
	return ProjectMatch{
		Project:       p.Summary(),
		Collaborators: Match(pool, ExtractRequirements(p.Tags)),
	}
}
