package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID         int64     `json:"userId" db:"user_id" example:"7"`                    // Unique, monotonically assigned
	RoleType   RoleType  `json:"role" db:"role" example:"student"`                   // User's role
	Email      string    `json:"email" db:"email" example:"asha@campus.edu"`         // Unique email address
	Credential string    `json:"-" db:"credential"`                                  // Hashed credential (excluded from JSON)
	CreatedAt  time.Time `json:"createdAt" db:"created_at" example:"2024-01-01T10:00:00Z"`
}

// Student defines the student model based on the 'students' table
type Student struct {
	UserID     int64     `json:"userId" db:"user_id" example:"7"`
	Name       string    `json:"name" db:"name" example:"Asha Rao"`
	CollegeID  string    `json:"collegeId" db:"college_id" example:"2024CS017"`
	MobileNo   string    `json:"mobileNo" db:"mobile_no" example:"9876543210"`
	Gender     string    `json:"gender" db:"gender" example:"female"`
	Batch      string    `json:"batch" db:"batch" example:"2024CS"`
	MessID     *int64    `json:"messId" db:"mess_id" example:"3"` // nil until assigned by the registry
	IsFeedback bool      `json:"isFeedback" db:"is_feedback"`
	UpdatedAt  time.Time `json:"updatedAt" db:"updated_at"`
}

// Supervisor defines the supervisor model based on the 'supervisors' table
type Supervisor struct {
	SupervisorID string    `json:"supervisorId" db:"supervisor_id" example:"SUP-004"`
	UserID       int64     `json:"userId" db:"user_id" example:"12"`
	Name         string    `json:"name" db:"name" example:"R. Menon"`
	MobileNo     string    `json:"mobileNo" db:"mobile_no" example:"9123456780"`
	MessID       *int64    `json:"messId" db:"mess_id" example:"3"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// Profile bundles a user with its role-specific record, if any
type Profile struct {
	User       User        `json:"user"`
	Student    *Student    `json:"student,omitempty"`
	Supervisor *Supervisor `json:"supervisor,omitempty"`
}

// ProfileUpdate carries the fields of updateProfile. Empty strings mean "not supplied".
type ProfileUpdate struct {
	Name     string
	MobileNo string
	Gender   string
	Batch    string
}

// IsEmpty reports whether no field was supplied
func (u ProfileUpdate) IsEmpty() bool {
	return u.Name == "" && u.MobileNo == "" && u.Gender == "" && u.Batch == ""
}

// ApplyToStudent merges the supplied fields into s
func (u ProfileUpdate) ApplyToStudent(s *Student) {
	if u.Name != "" {
		s.Name = u.Name
	}
	if u.MobileNo != "" {
		s.MobileNo = u.MobileNo
	}
	if u.Gender != "" {
		s.Gender = u.Gender
	}
	if u.Batch != "" {
		s.Batch = u.Batch
	}
}

// ApplyToSupervisor merges the supplied fields into s. Gender and batch do not apply.
func (u ProfileUpdate) ApplyToSupervisor(s *Supervisor) {
	if u.Name != "" {
		s.Name = u.Name
	}
	if u.MobileNo != "" {
		s.MobileNo = u.MobileNo
	}
}

// DeleteResult reports which records a cascading user delete removed
type DeleteResult struct {
	UserID            int64 `json:"userId"`
	StudentDeleted    bool  `json:"studentDeleted"`
	SupervisorDeleted bool  `json:"supervisorDeleted"`
}
