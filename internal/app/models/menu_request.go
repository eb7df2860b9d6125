package models

import "time"

// MenuChangeRequest is a supervisor's proposal to change a mess menu.
// Deleting a request is its only outcome (withdrawn or rejected).
type MenuChangeRequest struct {
	ID           int64     `json:"id" db:"id" example:"5"`
	MessID       int64     `json:"messId" db:"mess_id" example:"3"`
	Date         string    `json:"date" db:"date" example:"2024-08-14"`
	CurrentMenu  string    `json:"currentMenu" db:"current_menu" example:"Rajma chawal"`
	ProposedMenu string    `json:"proposedMenu" db:"proposed_menu" example:"Chole chawal"`
	Reason       string    `json:"reason" db:"reason" example:"Repeated three times this week"`
	CreatedBy    int64     `json:"createdBy" db:"created_by" example:"12"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}
