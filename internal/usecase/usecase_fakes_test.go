package usecase

import (
	"context"
	"sync"

	"collab-match/internal/domain/project"
)

type fakeProjects struct {
	items map[int64]project.Project
}

func newFakeProjects(items ...project.Project) *fakeProjects {
	m := make(map[int64]project.Project, len(items))
	for _, p := range items {
		m[p.ID] = p
	}
	return &fakeProjects{items: m}
}

func (f *fakeProjects) GetProject(_ context.Context, id int64) (project.Project, bool) {
	p, ok := f.items[id]
	return p, ok
}

func (f *fakeProjects) ListProjects(context.Context) []project.Project {
	out := make([]project.Project, 0, len(f.items))
	for _, p := range f.items {
		out = append(out, p)
	}
	return out
}

type enrolmentEvent struct {
	kind           string
	collaboratorID int64
	projectID      int64
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []enrolmentEvent
}

func (n *recordingNotifier) EnrolmentCreated(collaboratorID, projectID int64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, enrolmentEvent{"created", collaboratorID, projectID})
}

func (n *recordingNotifier) EnrolmentDeleted(collaboratorID, projectID int64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, enrolmentEvent{"deleted", collaboratorID, projectID})
}

type staticEnricher map[int64]string

func (e staticEnricher) Enrich(_ context.Context, tags []project.Tag) []project.Tag {
	out := make([]project.Tag, 0, len(tags))
	for _, t := range tags {
		id, ok := t.TagID()
		name, known := e[id]
		if !ok || !known {
			out = append(out, t)
			continue
		}
		cp := project.Tag{"skill_name": name}
		for k, v := range t {
			cp[k] = v
		}
		out = append(out, cp)
	}
	return out
}
