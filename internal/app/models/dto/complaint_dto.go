package dto

import "github.com/yigit/messdesk/internal/app/models"

// CreateComplaintRequest represents a complaint filed by a student. The complaint always goes to
// the student's assigned mess; messId is optional and must match it when sent.
type CreateComplaintRequest struct {
	MessID      *int64  `json:"messId"`
	Category    string  `json:"category" binding:"required"`
	Description string  `json:"description" binding:"required"`
	Image       *string `json:"image" binding:"omitempty,url"`
}

// TransitionRequest moves a complaint to a new status. ExpectedStatus, when set, must equal the
// stored status for the write to apply.
type TransitionRequest struct {
	Status         string `json:"status" binding:"required,oneof=New Forwarded Reraised Resolved"`
	ExpectedStatus string `json:"expectedStatus" binding:"omitempty,oneof=New Forwarded Reraised Resolved"`
}

// CreateComplaintResponse carries the stored complaint and its routing
type CreateComplaintResponse struct {
	Complaint *models.Complaint `json:"complaint"`
	Route     *models.Route     `json:"route"`
}
