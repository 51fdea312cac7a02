package skill

import "strings"

type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

// levelRanks is the only place proficiency levels are ordered. Both the
// requirement side and the collaborator side of a match resolve through it.
var levelRanks = map[Level]int{
	LevelBeginner:     1,
	LevelIntermediate: 2,
	LevelAdvanced:     3,
}

// Levels lists the recognized levels from lowest to highest.
func Levels() []Level {
	return []Level{LevelBeginner, LevelIntermediate, LevelAdvanced}
}

func normalizeLevel(l Level) Level {
	return Level(strings.ToLower(strings.TrimSpace(string(l))))
}

// Rank returns 1, 2 or 3. Unrecognized levels rank as beginner.
func (l Level) Rank() int {
	if r, ok := levelRanks[normalizeLevel(l)]; ok {
		return r
	}
	return levelRanks[LevelBeginner]
}

func (l Level) Valid() bool {
	_, ok := levelRanks[normalizeLevel(l)]
	return ok
}

func (l Level) Satisfies(min Level) bool {
	return l.Rank() >= min.Rank()
}

// ParseLevel returns the canonical form of s, or false when s is not a known level.
func ParseLevel(s string) (Level, bool) {
	l := normalizeLevel(Level(s))
	if _, ok := levelRanks[l]; !ok {
		return "", false
	}
	return l, true
}

type Skill struct {
	Name  string `json:"nome"`
	Level Level  `json:"nivel"`
}

// SameName reports whether two skill names refer to the same skill.
func SameName(a, b string) bool {
	return strings.EqualFold(a, b)
}
