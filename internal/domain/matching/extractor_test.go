package matching

import (
	"testing"

	"collab-match/internal/domain/project"
	"collab-match/internal/domain/skill"

	"github.com/stretchr/testify/assert"
)

func TestExtractRequirements(t *testing.T) {
	tests := []struct {
		name string
		tags []project.Tag
		want []Requirement
	}{
		{
			name: "nome with skill_level",
			tags: []project.Tag{{"nome": "DevOps", "skill_level": "advanced"}},
			want: []Requirement{{SkillName: "DevOps", MinLevel: skill.LevelAdvanced}},
		},
		{
			name: "tag_id without resolvable name is dropped",
			tags: []project.Tag{{"skill_level": "advanced", "tag_id": float64(3)}},
			want: []Requirement{},
		},
		{
			name: "tag_id with skill_name",
			tags: []project.Tag{{"tag_id": float64(1), "skill_name": "JavaScript", "skill_level": "intermediate"}},
			want: []Requirement{{SkillName: "JavaScript", MinLevel: skill.LevelIntermediate}},
		},
		{
			name: "generic name and level fields",
			tags: []project.Tag{{"name": "Figma", "level": "beginner"}},
			want: []Requirement{{SkillName: "Figma", MinLevel: skill.LevelBeginner}},
		},
		{
			name: "nome wins over alternates",
			tags: []project.Tag{{"nome": "Go", "skill_name": "Golang", "name": "golang"}},
			want: []Requirement{{SkillName: "Go", MinLevel: skill.LevelIntermediate}},
		},
		{
			name: "skill_name wins over name",
			tags: []project.Tag{{"skill_name": "React", "name": "ReactJS"}},
			want: []Requirement{{SkillName: "React", MinLevel: skill.LevelIntermediate}},
		},
		{
			name: "skill_level wins over level",
			tags: []project.Tag{{"nome": "SQL", "skill_level": "advanced", "level": "beginner"}},
			want: []Requirement{{SkillName: "SQL", MinLevel: skill.LevelAdvanced}},
		},
		{
			name: "missing level defaults to intermediate",
			tags: []project.Tag{{"nome": "Docker"}},
			want: []Requirement{{SkillName: "Docker", MinLevel: skill.LevelIntermediate}},
		},
		{
			name: "blank level counts as missing",
			tags: []project.Tag{{"nome": "Go", "level": ""}, {"nome": "Rust", "skill_level": " ", "level": "advanced"}},
			want: []Requirement{
				{SkillName: "Go", MinLevel: skill.LevelIntermediate},
				{SkillName: "Rust", MinLevel: skill.LevelAdvanced},
			},
		},
		{
			name: "blank nome falls through to skill_name",
			tags: []project.Tag{{"nome": "  ", "skill_name": "CSS"}},
			want: []Requirement{{SkillName: "CSS", MinLevel: skill.LevelIntermediate}},
		},
		{
			name: "non string name is ignored",
			tags: []project.Tag{{"nome": float64(12)}},
			want: []Requirement{},
		},
		{
			name: "unknown level kept verbatim",
			tags: []project.Tag{{"nome": "Go", "skill_level": "expert"}},
			want: []Requirement{{SkillName: "Go", MinLevel: "expert"}},
		},
		{
			name: "order and duplicates preserved",
			tags: []project.Tag{
				{"nome": "Go", "skill_level": "beginner"},
				nil,
				{"tag_id": float64(9)},
				{"nome": "Python"},
				{"nome": "Go", "skill_level": "advanced"},
			},
			want: []Requirement{
				{SkillName: "Go", MinLevel: skill.LevelBeginner},
				{SkillName: "Python", MinLevel: skill.LevelIntermediate},
				{SkillName: "Go", MinLevel: skill.LevelAdvanced},
			},
		},
		{
			name: "no tags",
			tags: nil,
			want: []Requirement{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractRequirements(tt.tags))
		})
	}
}
