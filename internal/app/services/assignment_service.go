package services

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/messdesk/internal/app/models"
	"github.com/yigit/messdesk/internal/app/repositories"
	"github.com/yigit/messdesk/internal/pkg/apperrors"
	"github.com/yigit/messdesk/internal/pkg/metrics"
)

// AssignmentService maps students and supervisors to messes
type AssignmentService struct {
	students    repositories.StudentStore
	supervisors repositories.SupervisorStore
	metrics     *metrics.Metrics
	now         func() time.Time
	logger      zerolog.Logger
}

// NewAssignmentService creates a new AssignmentService. m may be nil.
func NewAssignmentService(
	students repositories.StudentStore,
	supervisors repositories.SupervisorStore,
	m *metrics.Metrics,
	logger zerolog.Logger,
) *AssignmentService {
	return &AssignmentService{
		students:    students,
		supervisors: supervisors,
		metrics:     m,
		now:         func() time.Time { return time.Now().UTC() },
		logger:      logger,
	}
}

func validateMessID(messID *int64) (int64, error) {
	if messID == nil {
		return 0, apperrors.Validation("messId is required")
	}
	if *messID <= 0 {
		return 0, apperrors.Validation("messId must be positive")
	}
	return *messID, nil
}

// AssignMessByCollegeID assigns the student with the given college ID to a mess
func (s *AssignmentService) AssignMessByCollegeID(ctx context.Context, collegeID string, messID *int64) (*models.Student, error) {
	mess, err := validateMessID(messID)
	if err != nil {
		return nil, err
	}
	collegeID = strings.TrimSpace(collegeID)
	if collegeID == "" {
		return nil, apperrors.Validation("collegeId is required")
	}

	matches, err := s.students.FindStudentsByCollegeID(ctx, collegeID)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, apperrors.ErrStudentNotFound
	}

	return s.assignStudent(ctx, "collegeId", matches[0].UserID, mess)
}

// AssignMessByUserID assigns one student to a mess
func (s *AssignmentService) AssignMessByUserID(ctx context.Context, userID int64, messID *int64) (*models.Student, error) {
	mess, err := validateMessID(messID)
	if err != nil {
		return nil, err
	}
	if userID <= 0 {
		return nil, apperrors.Validation("userId must be positive")
	}
	return s.assignStudent(ctx, "userId", userID, mess)
}

func (s *AssignmentService) assignStudent(ctx context.Context, selector string, userID, messID int64) (*models.Student, error) {
	student, err := s.students.SetStudentMess(ctx, userID, messID, s.now())
	if err != nil {
		return nil, err
	}
	s.metrics.AssignmentsWritten(selector, 1)
	s.logger.Info().Int64("userID", userID).Int64("messID", messID).Str("selector", selector).Msg("Student assigned to mess")
	return student, nil
}

// AssignMessByBatch assigns every student of a batch to a mess. Students that could not be
// updated are listed in the result; a batch matching nobody is NotFound.
func (s *AssignmentService) AssignMessByBatch(ctx context.Context, batch string, messID *int64) (*models.BatchAssignmentResult, error) {
	mess, err := validateMessID(messID)
	if err != nil {
		return nil, err
	}
	batch = strings.TrimSpace(batch)
	if batch == "" {
		return nil, apperrors.Validation("batch is required")
	}

	result, err := s.students.SetBatchMess(ctx, batch, mess, s.now())
	if err != nil {
		return nil, err
	}
	if len(result.Updated) == 0 && len(result.Failed) == 0 {
		return nil, apperrors.NewResourceNotFoundError("no students found in batch " + batch)
	}

	s.metrics.AssignmentsWritten("batch", len(result.Updated))
	s.metrics.AssignmentsFailed(len(result.Failed))

	if !result.Complete() {
		s.logger.Warn().
			Str("batch", batch).
			Int64("messID", mess).
			Int("updated", len(result.Updated)).
			Int("failed", len(result.Failed)).
			Msg("Batch assignment partially applied")
	} else {
		s.logger.Info().Str("batch", batch).Int64("messID", mess).Int("updated", len(result.Updated)).Msg("Batch assigned to mess")
	}
	return result, nil
}

// AssignSupervisorMess assigns a supervisor to a mess
func (s *AssignmentService) AssignSupervisorMess(ctx context.Context, supervisorID string, messID *int64) (*models.Supervisor, error) {
	mess, err := validateMessID(messID)
	if err != nil {
		return nil, err
	}
	supervisorID = strings.TrimSpace(supervisorID)
	if supervisorID == "" {
		return nil, apperrors.Validation("supervisorId is required")
	}

	if err := s.supervisors.SetSupervisorMess(ctx, supervisorID, mess, s.now()); err != nil {
		return nil, err
	}
	s.metrics.AssignmentsWritten("supervisor", 1)
	s.logger.Info().Str("supervisorID", supervisorID).Int64("messID", mess).Msg("Supervisor assigned to mess")

	return s.supervisors.GetSupervisorByID(ctx, supervisorID)
}

// ListSupervisorsForMess returns the supervisors assigned to a mess
func (s *AssignmentService) ListSupervisorsForMess(ctx context.Context, messID int64) ([]models.Supervisor, error) {
	if messID <= 0 {
		return nil, apperrors.Validation("messId must be positive")
	}
	return s.supervisors.ListSupervisorsByMess(ctx, messID)
}
