package ws

import (
	"encoding/json"
	"time"
)

const (
	EventEnrolmentCreated = "enrolment_created"
	EventEnrolmentDeleted = "enrolment_deleted"
)

type EnrolmentEvent struct {
	Type           string `json:"type"`
	CollaboratorID int64  `json:"colaborador_id"`
	ProjectID      int64  `json:"project_id"`
	Timestamp      string `json:"timestamp"`
}

// EnrolmentNotifier publishes enrolment changes to every hub client.
type EnrolmentNotifier struct {
	hub *Hub
	now func() time.Time
}

func NewEnrolmentNotifier(hub *Hub) *EnrolmentNotifier {
	return &EnrolmentNotifier{hub: hub, now: time.Now}
}

func (n *EnrolmentNotifier) EnrolmentCreated(collaboratorID, projectID int64) {
	n.publish(EventEnrolmentCreated, collaboratorID, projectID)
}

func (n *EnrolmentNotifier) EnrolmentDeleted(collaboratorID, projectID int64) {
	n.publish(EventEnrolmentDeleted, collaboratorID, projectID)
}

func (n *EnrolmentNotifier) publish(kind string, collaboratorID, projectID int64) {
	if n == nil || n.hub == nil {
		return
	}

	evt := EnrolmentEvent{
		Type:           kind,
		CollaboratorID: collaboratorID,
		ProjectID:      projectID,
		Timestamp:      n.now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}

	n.hub.Broadcast(b)
}
