package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	appauth "github.com/yigit/messdesk/internal/app/auth"
	"github.com/yigit/messdesk/internal/app/models"
	"github.com/yigit/messdesk/internal/app/repositories"
	"github.com/yigit/messdesk/internal/pkg/apperrors"
	"github.com/yigit/messdesk/internal/pkg/validation"
)

// NewMenuRequest is the input of createMenuRequest. Every field is mandatory.
type NewMenuRequest struct {
	MessID       *int64
	Date         string
	CurrentMenu  string
	ProposedMenu string
	Reason       string
	CreatedBy    int64
}

// MenuRequestService runs the menu change workflow. A request is either pending or deleted;
// deletion covers both withdrawal and rejection.
type MenuRequestService struct {
	requests repositories.MenuRequestStore
	authz    *appauth.AuthorizationService
	logger   zerolog.Logger
}

// NewMenuRequestService creates a new MenuRequestService
func NewMenuRequestService(requests repositories.MenuRequestStore, authz *appauth.AuthorizationService, logger zerolog.Logger) *MenuRequestService {
	return &MenuRequestService{
		requests: requests,
		authz:    authz,
		logger:   logger,
	}
}

func (in *NewMenuRequest) normalize() {
	in.Date = strings.TrimSpace(in.Date)
	in.CurrentMenu = strings.TrimSpace(in.CurrentMenu)
	in.ProposedMenu = strings.TrimSpace(in.ProposedMenu)
	in.Reason = strings.TrimSpace(in.Reason)
}

func validateMenuRequest(in *NewMenuRequest) error {
	if in.MessID == nil {
		return apperrors.Validation("messId is required")
	}
	return validateMenuContent(in)
}

// validateMenuContent checks every field except the mess, which may come from the session
func validateMenuContent(in *NewMenuRequest) error {
	if in.MessID != nil && *in.MessID <= 0 {
		return apperrors.Validation("messId must be positive")
	}
	if in.Date == "" {
		return apperrors.Validation("date is required")
	}
	if !validation.IsValidDate(in.Date) {
		return apperrors.Validation("date must use the YYYY-MM-DD format")
	}
	if in.CurrentMenu == "" {
		return apperrors.Validation("currentMenu is required")
	}
	if in.ProposedMenu == "" {
		return apperrors.Validation("proposedMenu is required")
	}
	if in.Reason == "" {
		return apperrors.Validation("reason is required")
	}
	return nil
}

// CreateRequest stores a pending menu change request
func (s *MenuRequestService) CreateRequest(ctx context.Context, in NewMenuRequest) (*models.MenuChangeRequest, error) {
	in.normalize()
	if err := validateMenuRequest(&in); err != nil {
		return nil, err
	}

	req := &models.MenuChangeRequest{
		MessID:       *in.MessID,
		Date:         in.Date,
		CurrentMenu:  in.CurrentMenu,
		ProposedMenu: in.ProposedMenu,
		Reason:       in.Reason,
		CreatedBy:    in.CreatedBy,
	}
	if err := s.requests.CreateMenuRequest(ctx, req); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("requestID", req.ID).Int64("messID", req.MessID).Msg("Menu change request created")
	return req, nil
}

// ListRequests returns pending requests, optionally restricted to one mess
func (s *MenuRequestService) ListRequests(ctx context.Context, messID *int64) ([]models.MenuChangeRequest, error) {
	if messID != nil && *messID <= 0 {
		return nil, apperrors.Validation("messId must be positive")
	}
	return s.requests.ListMenuRequests(ctx, messID)
}

// GetRequest retrieves a request by ID
func (s *MenuRequestService) GetRequest(ctx context.Context, id int64) (*models.MenuChangeRequest, error) {
	if id <= 0 {
		return nil, apperrors.Validation("request id must be positive")
	}
	return s.requests.GetMenuRequestByID(ctx, id)
}

// DeleteRequest withdraws or rejects a request
func (s *MenuRequestService) DeleteRequest(ctx context.Context, id int64) error {
	if id <= 0 {
		return apperrors.Validation("request id must be positive")
	}
	if err := s.requests.DeleteMenuRequest(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("requestID", id).Msg("Menu change request deleted")
	return nil
}

// messFor fills in the session's assigned mess when messID is nil and checks the session's scope
func (s *MenuRequestService) messFor(ctx context.Context, session models.Session, messID *int64) (*int64, error) {
	if messID == nil {
		assigned, err := s.authz.AssignedMess(ctx, session)
		if err != nil {
			return nil, err
		}
		if assigned == nil {
			return nil, nil
		}
		messID = assigned
	}
	if *messID <= 0 {
		return nil, apperrors.Validation("messId must be positive")
	}
	if err := s.authz.AuthorizeMess(ctx, session, *messID); err != nil {
		return nil, err
	}
	return messID, nil
}

// CreateRequestAs files a request on behalf of a supervisor, defaulting to the supervisor's mess
func (s *MenuRequestService) CreateRequestAs(ctx context.Context, session models.Session, in NewMenuRequest) (*models.MenuChangeRequest, error) {
	in.normalize()
	if err := validateMenuContent(&in); err != nil {
		return nil, err
	}
	messID, err := s.messFor(ctx, session, in.MessID)
	if err != nil {
		return nil, err
	}
	in.MessID = messID
	in.CreatedBy = session.UserID
	return s.CreateRequest(ctx, in)
}

// ListRequestsAs lists the requests visible to the session. Supervisors only see their own mess.
func (s *MenuRequestService) ListRequestsAs(ctx context.Context, session models.Session, messID *int64) ([]models.MenuChangeRequest, error) {
	scoped, err := s.messFor(ctx, session, messID)
	if err != nil {
		return nil, err
	}
	if scoped == nil && !appauth.IsStaff(session.Role) {
		return []models.MenuChangeRequest{}, nil
	}
	return s.ListRequests(ctx, scoped)
}

// GetRequestAs returns a request of a mess in the session's scope
func (s *MenuRequestService) GetRequestAs(ctx context.Context, session models.Session, id int64) (*models.MenuChangeRequest, error) {
	req, err := s.GetRequest(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authz.AuthorizeMess(ctx, session, req.MessID); err != nil {
		return nil, err
	}
	return req, nil
}

// DeleteRequestAs withdraws (supervisor) or rejects (staff) a request in the session's scope
func (s *MenuRequestService) DeleteRequestAs(ctx context.Context, session models.Session, id int64) error {
	if _, err := s.GetRequestAs(ctx, session, id); err != nil {
		return err
	}
	return s.DeleteRequest(ctx, id)
}
