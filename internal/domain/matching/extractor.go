package matching

import (
	"collab-match/internal/domain/project"
	"collab-match/internal/domain/skill"
)

type Requirement struct {
	SkillName string      `json:"nome"`
	MinLevel  skill.Level `json:"nivel_minimo"`
}

// DefaultMinLevel applies to tags that declare no level at all.
const DefaultMinLevel = skill.LevelIntermediate

var (
	// nameFields is tried in order; the first non-blank string wins.
	nameFields = []string{"nome", "skill_name", "name"}
	// levelFields is tried in order; DefaultMinLevel when none is set.
	levelFields = []string{"skill_level", "level"}
)

func firstString(tag project.Tag, keys []string) (string, bool) {
	for _, k := range keys {
		if v, ok := tag.String(k); ok {
			return v, true
		}
	}
	return "", false
}

// ResolveSkillName returns the skill name a tag declares, following the
// nome, skill_name, name order.
func ResolveSkillName(tag project.Tag) (string, bool) {
	return firstString(tag, nameFields)
}

// ExtractRequirements turns project tags into skill requirements, keeping
// input order and duplicates. Tags without a resolvable skill name are dropped.
// The level is kept verbatim so unknown values still rank as beginner.
func ExtractRequirements(tags []project.Tag) []Requirement {
	out := make([]Requirement, 0, len(tags))
	for _, tag := range tags {
		if tag == nil {
			continue
		}
		name, ok := ResolveSkillName(tag)
		if !ok {
			continue
		}

		level := DefaultMinLevel
		if v, ok := firstString(tag, levelFields); ok {
			level = skill.Level(v)
		}

		out = append(out, Requirement{SkillName: name, MinLevel: level})
	}
	return out
}
