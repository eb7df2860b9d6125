package models

import (
	"fmt"
	"time"
)

// ComplaintStatus is the lifecycle state of a complaint
type ComplaintStatus string

const (
	StatusNew       ComplaintStatus = "New"
	StatusForwarded ComplaintStatus = "Forwarded"
	StatusReraised  ComplaintStatus = "Reraised"
	StatusResolved  ComplaintStatus = "Resolved"
)

// AllStatuses lists every complaint status
func AllStatuses() []ComplaintStatus {
	return []ComplaintStatus{StatusNew, StatusForwarded, StatusReraised, StatusResolved}
}

// transitions is the complete edge set. Resolved has no outgoing edges.
var transitions = map[ComplaintStatus][]ComplaintStatus{
	StatusNew:       {StatusForwarded, StatusResolved},
	StatusForwarded: {StatusReraised, StatusResolved},
	StatusReraised:  {StatusForwarded, StatusResolved},
	StatusResolved:  nil,
}

// Valid reports whether s is a known status
func (s ComplaintStatus) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// IsTerminal reports whether no transition leaves s
func (s ComplaintStatus) IsTerminal() bool {
	return s.Valid() && len(transitions[s]) == 0
}

// CanTransitionTo reports whether (s, target) is an edge of the status graph
func (s ComplaintStatus) CanTransitionTo(target ComplaintStatus) bool {
	for _, next := range transitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// NextStatuses returns the statuses reachable from s in one step
func (s ComplaintStatus) NextStatuses() []ComplaintStatus {
	next := make([]ComplaintStatus, len(transitions[s]))
	copy(next, transitions[s])
	return next
}

// ParseComplaintStatus converts a raw string into a ComplaintStatus
func ParseComplaintStatus(s string) (ComplaintStatus, error) {
	status := ComplaintStatus(s)
	if !status.Valid() {
		return "", fmt.Errorf("unknown complaint status %q", s)
	}
	return status, nil
}

// Complaint defines the complaint model based on the 'complaints' table
type Complaint struct {
	ID          int64           `json:"id" db:"id" example:"41"`
	StudentID   int64           `json:"studentId" db:"student_id" example:"7"`
	MessID      int64           `json:"messId" db:"mess_id" example:"3"`
	Category    string          `json:"category" db:"category" example:"Hygiene"`
	Description string          `json:"description" db:"description" example:"Plates were not washed"`
	Image       *string         `json:"image,omitempty" db:"image" example:"https://cdn.campus.edu/c/41.jpg"`
	Status      ComplaintStatus `json:"status" db:"status" example:"New"`
	CreatedAt   time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time       `json:"updatedAt" db:"updated_at"`
}

// StatusChange describes one applied transition
type StatusChange struct {
	ComplaintID int64           `json:"complaintId"`
	MessID      int64           `json:"messId"`
	StudentID   int64           `json:"studentId"`
	OldStatus   ComplaintStatus `json:"oldStatus"`
	NewStatus   ComplaintStatus `json:"newStatus"`
	Timestamp   time.Time       `json:"timestamp"`
}

// Route lists who may act on a complaint in its current status
type Route struct {
	ComplaintID int64           `json:"complaintId"`
	MessID      int64           `json:"messId"`
	Status      ComplaintStatus `json:"status"`
	ActingRoles []RoleType      `json:"actingRoles"`
	Supervisors []Supervisor    `json:"supervisors"`
	Routable    bool            `json:"routable"`
}
