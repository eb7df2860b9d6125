package auth

import (
	"context"
	"errors"
	"slices"

	"github.com/yigit/messdesk/internal/app/models"
	"github.com/yigit/messdesk/internal/app/repositories"
	"github.com/yigit/messdesk/internal/pkg/apperrors"
	"github.com/yigit/messdesk/internal/pkg/logger"
)

// Edge is one arc of the complaint status graph
type Edge struct {
	From models.ComplaintStatus
	To   models.ComplaintStatus
}

// transitionRoles lists, per edge, the roles allowed to take it. Admin may take every edge.
var transitionRoles = map[Edge][]models.RoleType{
	{models.StatusNew, models.StatusForwarded}:      {models.RoleSupervisor, models.RoleCoordinator},
	{models.StatusForwarded, models.StatusReraised}: {models.RoleStudent, models.RoleRepresentative},
	{models.StatusReraised, models.StatusForwarded}: {models.RoleSupervisor, models.RoleCoordinator},
	{models.StatusNew, models.StatusResolved}:       resolvers,
	{models.StatusForwarded, models.StatusResolved}: resolvers,
	{models.StatusReraised, models.StatusResolved}:  resolvers,
}

var resolvers = []models.RoleType{
	models.RoleSupervisor,
	models.RoleCoordinator,
	models.RoleDirector,
	models.RoleAuthority,
}

// staffRoles may act on every mess
var staffRoles = []models.RoleType{
	models.RoleCoordinator,
	models.RoleDirector,
	models.RoleAuthority,
	models.RoleAdmin,
}

// RoleMayTransition reports whether role may move a complaint along (from, to).
// It does not check that the edge exists.
func RoleMayTransition(role models.RoleType, from, to models.ComplaintStatus) bool {
	if role == models.RoleAdmin {
		return true
	}
	return slices.Contains(transitionRoles[Edge{from, to}], role)
}

// ActingRoles returns the roles that can move a complaint out of status, in escalation order
func ActingRoles(status models.ComplaintStatus) []models.RoleType {
	roles := []models.RoleType{}
	for _, role := range models.AllRoles() {
		if role == models.RoleAdmin {
			continue
		}
		for _, next := range status.NextStatuses() {
			if RoleMayTransition(role, status, next) {
				roles = append(roles, role)
				break
			}
		}
	}
	return roles
}

// IsStaff reports whether role has visibility over every mess
func IsStaff(role models.RoleType) bool {
	return slices.Contains(staffRoles, role)
}

// AuthorizationService answers ownership and scope questions that need the directory
type AuthorizationService struct {
	students    repositories.StudentStore
	supervisors repositories.SupervisorStore
}

// NewAuthorizationService creates a new AuthorizationService
func NewAuthorizationService(students repositories.StudentStore, supervisors repositories.SupervisorStore) *AuthorizationService {
	return &AuthorizationService{
		students:    students,
		supervisors: supervisors,
	}
}

// AuthorizeTransition checks that session may move c to target.
// Students may only act on their own complaints; representatives and supervisors only within their mess.
func (s *AuthorizationService) AuthorizeTransition(ctx context.Context, session models.Session, c *models.Complaint, target models.ComplaintStatus) error {
	if !RoleMayTransition(session.Role, c.Status, target) {
		logger.Warn().Int64("userID", session.UserID).Str("role", string(session.Role)).
			Str("from", string(c.Status)).Str("to", string(target)).
			Msg("Role not allowed to take transition")
		return apperrors.NewForbiddenError("your role cannot move a complaint from " + string(c.Status) + " to " + string(target))
	}

	switch {
	case session.Role == models.RoleStudent:
		if c.StudentID != session.UserID {
			return apperrors.NewForbiddenError("students can only act on their own complaints")
		}
		return nil
	case session.Role == models.RoleRepresentative && c.StudentID == session.UserID:
		return nil
	}
	return s.AuthorizeMess(ctx, session, c.MessID)
}

// AuthorizeMess checks that session may see and act on complaints of messID
func (s *AuthorizationService) AuthorizeMess(ctx context.Context, session models.Session, messID int64) error {
	if IsStaff(session.Role) {
		return nil
	}

	var assigned *int64
	switch session.Role {
	case models.RoleStudent, models.RoleRepresentative:
		st, err := s.students.GetStudentByUserID(ctx, session.UserID)
		if err != nil {
			return denyOnMissing(err)
		}
		if session.Role == models.RoleStudent {
			return apperrors.NewForbiddenError("students cannot view a mess worklist")
		}
		assigned = st.MessID
	case models.RoleSupervisor:
		sv, err := s.supervisors.GetSupervisorByUserID(ctx, session.UserID)
		if err != nil {
			return denyOnMissing(err)
		}
		assigned = sv.MessID
	default:
		return apperrors.NewForbiddenError("role has no mess scope")
	}

	if assigned == nil || *assigned != messID {
		return apperrors.NewForbiddenError("you are not assigned to this mess")
	}
	return nil
}

// AssignedMess returns the mess the session's profile is assigned to. Staff and unassigned
// profiles yield nil.
func (s *AuthorizationService) AssignedMess(ctx context.Context, session models.Session) (*int64, error) {
	switch {
	case session.Role.HasStudentProfile():
		st, err := s.students.GetStudentByUserID(ctx, session.UserID)
		if err != nil {
			return nil, denyOnMissing(err)
		}
		return st.MessID, nil
	case session.Role == models.RoleSupervisor:
		sv, err := s.supervisors.GetSupervisorByUserID(ctx, session.UserID)
		if err != nil {
			return nil, denyOnMissing(err)
		}
		return sv.MessID, nil
	}
	return nil, nil
}

// AuthorizeProfile checks that session may modify the profile of userID
func AuthorizeProfile(session models.Session, userID int64) error {
	if session.UserID == userID || session.Role == models.RoleAdmin {
		return nil
	}
	return apperrors.NewForbiddenError("you can only modify your own profile")
}

func denyOnMissing(err error) error {
	if errors.Is(err, apperrors.ErrResourceNotFound) {
		return apperrors.NewForbiddenError("caller has no profile for this role")
	}
	return err
}
