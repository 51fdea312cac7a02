package project

import "strings"

// Tag is a raw tag record as emitted by the project service. Its shape varies
// between producers, so it is kept as a generic JSON object.
type Tag map[string]any

// String returns the trimmed string stored under key, or false when the key is
// missing, not a string, or blank.
func (t Tag) String(key string) (string, bool) {
	raw, ok := t[key]
	if !ok {
		return "", false
	}
	s, ok := raw.(string)
	if !ok {
		return "", false
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	return s, true
}

// TagID returns the numeric tag_id of the tag, if any. JSON numbers decode as
// float64, so both float and integer forms are accepted.
func (t Tag) TagID() (int64, bool) {
	switch v := t["tag_id"].(type) {
	case float64:
		return int64(v), true
	case int:
		return int64(v), true
	case int64:
		return v, true
	default:
		return 0, false
	}
}

type Project struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category,omitempty"`
	Tags        []Tag  `json:"tags"`
}

// Summary is the part of a project echoed back in match and enrolment responses.
type Summary struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

func (p Project) Summary() Summary {
	return Summary{ID: p.ID, Title: p.Title, Description: p.Description}
}

// CatalogTag is an entry of the project service tag catalog.
type CatalogTag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
