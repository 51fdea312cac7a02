package matching

import (
	"testing"

	"collab-match/internal/domain/collaborator"
	"collab-match/internal/domain/project"
	"collab-match/internal/domain/skill"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func colab(id int64, name string, skills ...skill.Skill) collaborator.Collaborator {
	return collaborator.Collaborator{
		ID:     id,
		Name:   name,
		Email:  name + "@example.com",
		Role:   "Engineer",
		Skills: skills,
	}
}

func sk(name string, level skill.Level) skill.Skill {
	return skill.Skill{Name: name, Level: level}
}

func req(name string, level skill.Level) Requirement {
	return Requirement{SkillName: name, MinLevel: level}
}

func demoPool() []collaborator.Collaborator {
	return []collaborator.Collaborator{
		colab(1, "ana", sk("Python", skill.LevelAdvanced), sk("SQL", skill.LevelIntermediate)),
		colab(2, "joao", sk("HTML", skill.LevelBeginner), sk("CSS", skill.LevelBeginner)),
		colab(3, "bia", sk("JavaScript", skill.LevelIntermediate), sk("React", skill.LevelIntermediate)),
		colab(4, "carlos", sk("DevOps", skill.LevelAdvanced), sk("Docker", skill.LevelIntermediate)),
		colab(5, "lucia", sk("Design UI", skill.LevelAdvanced), sk("Figma", skill.LevelIntermediate)),
	}
}

func TestMatch_SingleAdvancedRequirement(t *testing.T) {
	res := Match(demoPool(), []Requirement{req("DevOps", skill.LevelAdvanced)})

	require.Len(t, res, 1)
	assert.Equal(t, int64(4), res[0].CollaboratorID)
	assert.Equal(t, 3, res[0].Score)
	assert.Equal(t, []SkillMatch{{SkillName: "DevOps", Level: skill.LevelAdvanced, RequiredLevel: skill.LevelAdvanced}}, res[0].Matches)
}

func TestMatch_TwoRequirementsSumRanks(t *testing.T) {
	res := Match(demoPool(), []Requirement{
		req("React", skill.LevelIntermediate),
		req("JavaScript", skill.LevelIntermediate),
	})

	require.Len(t, res, 1)
	assert.Equal(t, int64(3), res[0].CollaboratorID)
	assert.Equal(t, 4, res[0].Score)
	require.Len(t, res[0].Matches, 2)
	assert.Equal(t, "React", res[0].Matches[0].SkillName)
	assert.Equal(t, "JavaScript", res[0].Matches[1].SkillName)
}

func TestMatch_LevelBelowMinimumExcluded(t *testing.T) {
	pool := []collaborator.Collaborator{colab(1, "x", sk("Go", skill.LevelIntermediate))}

	res := Match(pool, []Requirement{req("Go", skill.LevelAdvanced)})

	assert.Empty(t, res)
}

func TestMatch_EmptyRequirements(t *testing.T) {
	res := Match(demoPool(), nil)
	assert.NotNil(t, res)
	assert.Empty(t, res)
}

func TestMatch_EmptyPool(t *testing.T) {
	res := Match(nil, []Requirement{req("Go", skill.LevelBeginner)})
	assert.Empty(t, res)
}

func TestMatch_CaseInsensitiveNames(t *testing.T) {
	pool := []collaborator.Collaborator{colab(1, "x", sk("postgresql", skill.LevelAdvanced))}

	res := Match(pool, []Requirement{req("PostgreSQL", skill.LevelBeginner)})

	require.Len(t, res, 1)
	assert.Equal(t, "postgresql", res[0].Matches[0].SkillName)
	assert.Equal(t, skill.LevelBeginner, res[0].Matches[0].RequiredLevel)
}

func TestMatch_UnknownLevelsRankAsBeginner(t *testing.T) {
	pool := []collaborator.Collaborator{
		colab(1, "guru", sk("Go", "guru")),
		colab(2, "mid", sk("Go", skill.LevelIntermediate)),
	}

	res := Match(pool, []Requirement{req("Go", "expert")})

	require.Len(t, res, 2)
	assert.Equal(t, int64(2), res[0].CollaboratorID)
	assert.Equal(t, 2, res[0].Score)
	assert.Equal(t, int64(1), res[1].CollaboratorID)
	assert.Equal(t, 1, res[1].Score)

	res = Match(pool[:1], []Requirement{req("Go", skill.LevelIntermediate)})
	assert.Empty(t, res)
}

func TestMatch_DuplicateRequirementsScoreIndependently(t *testing.T) {
	pool := []collaborator.Collaborator{colab(1, "x", sk("Go", skill.LevelAdvanced))}

	res := Match(pool, []Requirement{
		req("Go", skill.LevelBeginner),
		req("go", skill.LevelAdvanced),
	})

	require.Len(t, res, 1)
	assert.Len(t, res[0].Matches, 2)
	assert.Equal(t, 6, res[0].Score)
}

func TestMatch_StableOrderForEqualScores(t *testing.T) {
	pool := []collaborator.Collaborator{
		colab(10, "a", sk("Go", skill.LevelIntermediate)),
		colab(11, "b", sk("Go", skill.LevelAdvanced)),
		colab(12, "c", sk("Go", skill.LevelIntermediate)),
		colab(13, "d", sk("Rust", skill.LevelAdvanced)),
		colab(14, "e", sk("Go", skill.LevelIntermediate)),
	}

	res := Match(pool, []Requirement{req("Go", skill.LevelBeginner)})

	ids := make([]int64, 0, len(res))
	for _, r := range res {
		ids = append(ids, r.CollaboratorID)
	}
	assert.Equal(t, []int64{11, 10, 12, 14}, ids)
}

func TestMatch_Properties(t *testing.T) {
	pool := demoPool()
	pool = append(pool,
		colab(6, "full", sk("Python", skill.LevelIntermediate), sk("React", skill.LevelAdvanced), sk("Docker", skill.LevelAdvanced)),
		colab(7, "none"),
	)
	reqs := []Requirement{
		req("Python", skill.LevelIntermediate),
		req("React", skill.LevelBeginner),
		req("Docker", skill.LevelIntermediate),
		req("Figma", "unknown"),
	}

	res := Match(pool, reqs)

	byID := map[int64]MatchResult{}
	for i, r := range res {
		assert.NotEmpty(t, r.Matches)
		if i > 0 {
			assert.GreaterOrEqual(t, res[i-1].Score, r.Score)
		}
		byID[r.CollaboratorID] = r
	}

	for _, c := range pool {
		want := 0
		pairs := 0
		for _, r := range reqs {
			for _, s := range c.Skills {
				if skill.SameName(s.Name, r.SkillName) && s.Level.Rank() >= r.MinLevel.Rank() {
					want += s.Level.Rank()
					pairs++
				}
			}
		}
		got, ok := byID[c.ID]
		if pairs == 0 {
			assert.False(t, ok, "collaborator %d should be excluded", c.ID)
			continue
		}
		require.True(t, ok, "collaborator %d should be included", c.ID)
		assert.Equal(t, want, got.Score)
		assert.Len(t, got.Matches, pairs)
	}
}

func TestMatchProject_EchoesProjectAndRanks(t *testing.T) {
	p := project.Project{
		ID:          2,
		Title:       "Sistema de Gestão DevOps",
		Description: "Dashboard",
		Tags: []project.Tag{
			{"nome": "DevOps", "skill_level": "advanced"},
			{"tag_id": float64(4), "skill_level": "intermediate"},
			{"skill_name": "Docker", "level": "intermediate"},
		},
	}

	got := MatchProject(p, demoPool())

	assert.Equal(t, project.Summary{ID: 2, Title: "Sistema de Gestão DevOps", Description: "Dashboard"}, got.Project)
	require.Len(t, got.Collaborators, 1)
	assert.Equal(t, int64(4), got.Collaborators[0].CollaboratorID)
	assert.Equal(t, 5, got.Collaborators[0].Score)
}
