package dto

// CreateUserRequest represents an account created by staff. Student-type roles need the
// student fields, supervisors need the supervisor fields.
type CreateUserRequest struct {
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=8"`
	Role         string `json:"role" binding:"required,oneof=student representative supervisor coordinator director authority admin"`
	Name         string `json:"name"`
	MobileNo     string `json:"mobileNo" binding:"omitempty,mobile"`
	CollegeID    string `json:"collegeId"`
	Gender       string `json:"gender"`
	Batch        string `json:"batch"`
	SupervisorID string `json:"supervisorId"`
}

// UpdateProfileRequest carries a partial profile update; empty fields are left untouched
type UpdateProfileRequest struct {
	Name     string `json:"name"`
	MobileNo string `json:"mobileNo"`
	Gender   string `json:"gender"`
	Batch    string `json:"batch"`
}

// CreateUserResponse returns the id assigned to a new user
type CreateUserResponse struct {
	UserID int64 `json:"userId" example:"7"`
}
