package dto

import "github.com/yigit/messdesk/internal/app/models"

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse represents JWT token information
type TokenResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType" example:"Bearer"`
	ExpiresIn   int64  `json:"expiresIn"`
}

// RegisterStudentRequest represents a student self-registration
type RegisterStudentRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	Name      string `json:"name" binding:"required"`
	CollegeID string `json:"collegeId" binding:"required,collegeid"`
	MobileNo  string `json:"mobileNo" binding:"required,mobile"`
	Gender    string `json:"gender" binding:"required"`
	Batch     string `json:"batch" binding:"required"`
}

// AuthResponse represents successful authentication response
type AuthResponse struct {
	Token   TokenResponse   `json:"token"`
	Profile *models.Profile `json:"profile"`
}
