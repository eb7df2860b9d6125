// Package notify hands complaint lifecycle events to delivery sinks without
// blocking the operation that produced them.
package notify

import (
	"time"

	"github.com/yigit/messdesk/internal/app/models"
)

// Kind names an event type
type Kind string

const (
	KindComplaintCreated Kind = "complaint_created"
	KindStatusChanged    Kind = "status_changed"
)

// Event is the single shape accepted at the dispatcher boundary
type Event struct {
	SubjectID  int64     `json:"subjectId"`
	Kind       Kind      `json:"kind"`
	MessID     int64     `json:"messId"`
	Payload    any       `json:"payload"`
	OccurredAt time.Time `json:"occurredAt"`
}

// ComplaintCreatedPayload is the payload of a complaint_created event
type ComplaintCreatedPayload struct {
	Complaint models.Complaint `json:"complaint"`
	Routable  bool             `json:"routable"`
}

// ComplaintCreated builds the event emitted after a complaint is stored
func ComplaintCreated(c models.Complaint, routable bool) Event {
	return Event{
		SubjectID:  c.ID,
		Kind:       KindComplaintCreated,
		MessID:     c.MessID,
		Payload:    ComplaintCreatedPayload{Complaint: c, Routable: routable},
		OccurredAt: c.CreatedAt,
	}
}

// StatusChanged builds the event emitted after a transition is applied
func StatusChanged(change models.StatusChange) Event {
	return Event{
		SubjectID:  change.ComplaintID,
		Kind:       KindStatusChanged,
		MessID:     change.MessID,
		Payload:    change,
		OccurredAt: change.Timestamp,
	}
}
