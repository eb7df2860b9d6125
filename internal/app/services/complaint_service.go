package services

import (
	"context"
	"iter"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	appauth "github.com/yigit/messdesk/internal/app/auth"
	"github.com/yigit/messdesk/internal/app/models"
	"github.com/yigit/messdesk/internal/app/repositories"
	"github.com/yigit/messdesk/internal/pkg/apperrors"
	"github.com/yigit/messdesk/internal/pkg/metrics"
	"github.com/yigit/messdesk/internal/pkg/notify"
)

// NewComplaint is the input of createComplaint
type NewComplaint struct {
	StudentID   int64
	MessID      *int64
	Category    string
	Description string
	Image       *string
}

// ComplaintService owns the complaint status machine and routing decisions
type ComplaintService struct {
	complaints  repositories.ComplaintStore
	supervisors repositories.SupervisorStore
	authz       *appauth.AuthorizationService
	dispatcher  notify.Dispatcher
	metrics     *metrics.Metrics
	now         func() time.Time
	logger      zerolog.Logger
}

// NewComplaintService creates a new ComplaintService. A nil dispatcher discards events; m may be nil.
func NewComplaintService(
	complaints repositories.ComplaintStore,
	supervisors repositories.SupervisorStore,
	authz *appauth.AuthorizationService,
	dispatcher notify.Dispatcher,
	m *metrics.Metrics,
	logger zerolog.Logger,
) *ComplaintService {
	if dispatcher == nil {
		dispatcher = notify.Nop{}
	}
	return &ComplaintService{
		complaints:  complaints,
		supervisors: supervisors,
		authz:       authz,
		dispatcher:  dispatcher,
		metrics:     m,
		now:         func() time.Time { return time.Now().UTC() },
		logger:      logger,
	}
}

func (in *NewComplaint) normalize() {
	in.Category = strings.TrimSpace(in.Category)
	in.Description = strings.TrimSpace(in.Description)
	if in.Image != nil {
		img := strings.TrimSpace(*in.Image)
		if img == "" {
			in.Image = nil
		} else {
			in.Image = &img
		}
	}
}

// validateContent checks the fields the filer supplies; it needs no store access
func validateContent(in *NewComplaint) error {
	if in.Category == "" {
		return apperrors.Validation("category is required")
	}
	if in.Description == "" {
		return apperrors.Validation("description is required")
	}
	if in.Image != nil {
		u, err := url.ParseRequestURI(*in.Image)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return apperrors.Validation("image must be an absolute URI")
		}
	}
	if in.MessID != nil && *in.MessID <= 0 {
		return apperrors.Validation("messId must be positive")
	}
	return nil
}

func validateComplaint(in *NewComplaint) error {
	if in.StudentID <= 0 {
		return apperrors.Validation("studentId is required")
	}
	if in.MessID == nil {
		return apperrors.Validation("messId is required")
	}
	return validateContent(in)
}

// CreateComplaint files a complaint in status New and routes it to the mess's supervisors.
// A mess without supervisors still gets the complaint; the route reports it as unroutable.
func (s *ComplaintService) CreateComplaint(ctx context.Context, in NewComplaint) (*models.Complaint, *models.Route, error) {
	in.normalize()
	if err := validateComplaint(&in); err != nil {
		return nil, nil, err
	}

	now := s.now()
	c := &models.Complaint{
		StudentID:   in.StudentID,
		MessID:      *in.MessID,
		Category:    in.Category,
		Description: in.Description,
		Image:       in.Image,
		Status:      models.StatusNew,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.complaints.CreateComplaint(ctx, c); err != nil {
		return nil, nil, err
	}

	route, err := s.ResolveRoute(ctx, c)
	if err != nil {
		// the complaint is stored; report it as unroutable rather than failing the create
		s.logger.Error().Err(err).Int64("complaintID", c.ID).Msg("Error resolving complaint route")
		route = &models.Route{
			ComplaintID: c.ID,
			MessID:      c.MessID,
			Status:      c.Status,
			ActingRoles: appauth.ActingRoles(c.Status),
			Supervisors: []models.Supervisor{},
		}
	}

	if !route.Routable {
		s.logger.Warn().Int64("complaintID", c.ID).Int64("messID", c.MessID).Msg("Complaint filed against a mess with no supervisor")
	} else {
		s.logger.Info().Int64("complaintID", c.ID).Int64("messID", c.MessID).Int("supervisors", len(route.Supervisors)).Msg("Complaint created")
	}
	s.metrics.ComplaintCreated(c.Category, route.Routable)
	s.dispatcher.Dispatch(notify.ComplaintCreated(*c, route.Routable))

	return c, route, nil
}

// GetComplaint retrieves a complaint by ID
func (s *ComplaintService) GetComplaint(ctx context.Context, id int64) (*models.Complaint, error) {
	if id <= 0 {
		return nil, apperrors.Validation("complaint id must be positive")
	}
	return s.complaints.GetComplaintByID(ctx, id)
}

// GetComplaintAs returns a complaint the session may see: its own, or one of a mess in scope
func (s *ComplaintService) GetComplaintAs(ctx context.Context, session models.Session, id int64) (*models.Complaint, error) {
	c, err := s.GetComplaint(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.StudentID == session.UserID && session.Role.HasStudentProfile() {
		return c, nil
	}
	if err := s.authz.AuthorizeMess(ctx, session, c.MessID); err != nil {
		return nil, err
	}
	return c, nil
}

// CreateComplaintAs files a complaint for the session's student against the student's assigned
// mess. A messId naming any other mess is refused.
func (s *ComplaintService) CreateComplaintAs(ctx context.Context, session models.Session, in NewComplaint) (*models.Complaint, *models.Route, error) {
	in.normalize()
	if err := validateContent(&in); err != nil {
		return nil, nil, err
	}
	if !session.Role.HasStudentProfile() {
		return nil, nil, apperrors.NewForbiddenError("only students file complaints")
	}

	assigned, err := s.authz.AssignedMess(ctx, session)
	if err != nil {
		return nil, nil, err
	}
	if assigned == nil {
		return nil, nil, apperrors.Validation("you are not assigned to a mess yet")
	}
	if in.MessID != nil && *in.MessID != *assigned {
		return nil, nil, apperrors.NewForbiddenError("complaints can only be filed against your assigned mess")
	}

	in.StudentID = session.UserID
	in.MessID = assigned
	return s.CreateComplaint(ctx, in)
}

// RouteFor resolves the route of a complaint the session may see
func (s *ComplaintService) RouteFor(ctx context.Context, session models.Session, id int64) (*models.Route, error) {
	c, err := s.GetComplaintAs(ctx, session, id)
	if err != nil {
		return nil, err
	}
	return s.ResolveRoute(ctx, c)
}

// ListComplaintsForMessAs lists a mess's complaints after checking the session's scope
func (s *ComplaintService) ListComplaintsForMessAs(ctx context.Context, session models.Session, messID int64) (iter.Seq2[models.Complaint, error], error) {
	if messID <= 0 {
		return nil, apperrors.Validation("messId must be positive")
	}
	if err := s.authz.AuthorizeMess(ctx, session, messID); err != nil {
		return nil, err
	}
	return s.ListComplaintsForMess(ctx, messID)
}

// ListComplaintsForMess returns a lazy sequence over the mess's complaints.
// Each range over it reads a fresh snapshot.
func (s *ComplaintService) ListComplaintsForMess(ctx context.Context, messID int64) (iter.Seq2[models.Complaint, error], error) {
	if messID <= 0 {
		return nil, apperrors.Validation("messId must be positive")
	}
	return s.complaints.ComplaintsByMess(ctx, messID), nil
}

// ListComplaintsForStudent returns a student's complaints, newest first
func (s *ComplaintService) ListComplaintsForStudent(ctx context.Context, studentID int64) ([]models.Complaint, error) {
	if studentID <= 0 {
		return nil, apperrors.Validation("studentId must be positive")
	}
	return s.complaints.ListComplaintsByStudent(ctx, studentID)
}

// ResolveRoute lists who may act on c in its current status
func (s *ComplaintService) ResolveRoute(ctx context.Context, c *models.Complaint) (*models.Route, error) {
	supervisors, err := s.supervisors.ListSupervisorsByMess(ctx, c.MessID)
	if err != nil {
		return nil, err
	}
	return &models.Route{
		ComplaintID: c.ID,
		MessID:      c.MessID,
		Status:      c.Status,
		ActingRoles: appauth.ActingRoles(c.Status),
		Supervisors: supervisors,
		Routable:    len(supervisors) > 0,
	}, nil
}

// Transition moves a complaint along one edge of the status graph. Only edge legality is checked
// here; callers acting for a user go through TransitionAs. When expected is set the write applies
// only if the stored status still equals it.
func (s *ComplaintService) Transition(
	ctx context.Context,
	complaintID int64,
	actorRole models.RoleType,
	target models.ComplaintStatus,
	expected *models.ComplaintStatus,
) (*models.Complaint, error) {
	if err := validateTransitionInput(actorRole, target, expected); err != nil {
		return nil, err
	}
	current, err := s.GetComplaint(ctx, complaintID)
	if err != nil {
		return nil, err
	}
	if err := s.checkEdge(current.Status, target, expected); err != nil {
		return nil, err
	}
	return s.apply(ctx, current, actorRole, target)
}

// TransitionAs applies a transition on behalf of session after checking its role and scope
func (s *ComplaintService) TransitionAs(
	ctx context.Context,
	session models.Session,
	complaintID int64,
	target models.ComplaintStatus,
	expected *models.ComplaintStatus,
) (*models.Complaint, error) {
	if err := validateTransitionInput(session.Role, target, expected); err != nil {
		return nil, err
	}
	current, err := s.GetComplaint(ctx, complaintID)
	if err != nil {
		return nil, err
	}
	if err := s.checkEdge(current.Status, target, expected); err != nil {
		return nil, err
	}
	if err := s.authz.AuthorizeTransition(ctx, session, current, target); err != nil {
		s.metrics.TransitionRejected(string(apperrors.Kind(err)))
		return nil, err
	}
	return s.apply(ctx, current, session.Role, target)
}

func validateTransitionInput(actorRole models.RoleType, target models.ComplaintStatus, expected *models.ComplaintStatus) error {
	if !actorRole.Valid() {
		return apperrors.Validation("actor role %q is not recognised", actorRole)
	}
	if !target.Valid() {
		return apperrors.Validation("status %q is not recognised", target)
	}
	if expected != nil && !expected.Valid() {
		return apperrors.Validation("expected status %q is not recognised", *expected)
	}
	return nil
}

// checkEdge rejects a stale expected status and any move that is not an edge of the status graph
func (s *ComplaintService) checkEdge(from, target models.ComplaintStatus, expected *models.ComplaintStatus) error {
	err := edgeError(from, target, expected)
	if err != nil {
		s.metrics.TransitionRejected(string(apperrors.KindInvalidTransition))
	}
	return err
}

func edgeError(from, target models.ComplaintStatus, expected *models.ComplaintStatus) error {
	if expected != nil && *expected != from {
		return apperrors.InvalidTransition("complaint is %s, not %s", from, *expected)
	}
	if from.IsTerminal() {
		return apperrors.InvalidTransition("complaint is %s and cannot change status", from)
	}
	if !from.CanTransitionTo(target) {
		return apperrors.InvalidTransition("cannot move a complaint from %s to %s", from, target)
	}
	return nil
}

func (s *ComplaintService) apply(
	ctx context.Context,
	current *models.Complaint,
	actorRole models.RoleType,
	target models.ComplaintStatus,
) (*models.Complaint, error) {
	updated, err := s.complaints.CompareAndSetStatus(ctx, current.ID, current.Status, target, s.now())
	if err != nil {
		s.metrics.TransitionRejected(string(apperrors.Kind(err)))
		if apperrors.Kind(err) == apperrors.KindInvalidTransition {
			s.logger.Warn().Int64("complaintID", current.ID).Str("from", string(current.Status)).Msg("Complaint changed concurrently")
		}
		return nil, err
	}

	change := models.StatusChange{
		ComplaintID: updated.ID,
		MessID:      updated.MessID,
		StudentID:   updated.StudentID,
		OldStatus:   current.Status,
		NewStatus:   updated.Status,
		Timestamp:   updated.UpdatedAt,
	}
	s.metrics.TransitionApplied(string(change.OldStatus), string(change.NewStatus))
	s.dispatcher.Dispatch(notify.StatusChanged(change))

	s.logger.Info().
		Int64("complaintID", updated.ID).
		Str("role", string(actorRole)).
		Str("from", string(change.OldStatus)).
		Str("to", string(change.NewStatus)).
		Msg("Complaint status changed")
	return updated, nil
}
