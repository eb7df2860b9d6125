package dto

// AssignMessRequest carries the target mess of an assignment
type AssignMessRequest struct {
	MessID *int64 `json:"messId" binding:"required,min=1"`
}
