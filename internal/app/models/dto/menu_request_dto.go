package dto

// CreateMenuRequestRequest represents a supervisor's menu change proposal
type CreateMenuRequestRequest struct {
	MessID       *int64 `json:"messId"`
	Date         string `json:"date" binding:"required,isodate"`
	CurrentMenu  string `json:"currentMenu" binding:"required"`
	ProposedMenu string `json:"proposedMenu" binding:"required"`
	Reason       string `json:"reason" binding:"required"`
}
