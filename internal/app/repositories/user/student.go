package user

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/messdesk/internal/app/models"
	"github.com/yigit/messdesk/internal/db"
	"github.com/yigit/messdesk/internal/pkg/apperrors"
	"github.com/yigit/messdesk/internal/pkg/dberrors"
	"github.com/yigit/messdesk/internal/pkg/logger"
)

var studentColumns = []string{
	"user_id", "name", "college_id", "mobile_no", "gender", "batch", "mess_id", "is_feedback", "updated_at",
}

// StudentRepository handles student database operations
type StudentRepository struct {
	pg *db.PostgresDB
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(pg *db.PostgresDB) *StudentRepository {
	return &StudentRepository{
		pg: pg,
		sb: psql,
	}
}

func insertStudent(ctx context.Context, q db.Querier, sb squirrel.StatementBuilderType, s *models.Student) error {
	sql, args, err := sb.Insert("students").
		Columns("user_id", "name", "college_id", "mobile_no", "gender", "batch", "mess_id", "is_feedback").
		Values(s.UserID, s.Name, s.CollegeID, s.MobileNo, s.Gender, s.Batch, s.MessID, s.IsFeedback).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create student query: %w", err)
	}
	return q.QueryRow(ctx, sql, args...).Scan(&s.UpdatedAt)
}

func scanStudent(row pgx.Row, s *models.Student) error {
	return row.Scan(&s.UserID, &s.Name, &s.CollegeID, &s.MobileNo, &s.Gender, &s.Batch, &s.MessID, &s.IsFeedback, &s.UpdatedAt)
}

// GetStudentByUserID retrieves a student by user ID
func (r *StudentRepository) GetStudentByUserID(ctx context.Context, userID int64) (*models.Student, error) {
	sql, args, err := r.sb.Select(studentColumns...).
		From("students").
		Where(squirrel.Eq{"user_id": userID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, apperrors.Store("build get student query", err)
	}

	var student models.Student
	if err := scanStudent(r.pg.Pool.QueryRow(ctx, sql, args...), &student); err != nil {
		if dberrors.IsNoRows(err) {
			logger.Warn().Int64("userID", userID).Msg("Student not found by user ID")
			return nil, apperrors.ErrStudentNotFound
		}
		logger.Error().Err(err).Int64("userID", userID).Msg("Error scanning student row")
		return nil, apperrors.Store("get student", err)
	}
	return &student, nil
}

// CollegeIDExists checks if a college ID is already in use
func (r *StudentRepository) CollegeIDExists(ctx context.Context, collegeID string) (bool, error) {
	exists, err := existsWhere(ctx, r.pg.Pool, r.sb, "students", squirrel.Eq{"college_id": collegeID})
	if err != nil {
		return false, apperrors.Store("check college ID", err)
	}
	return exists, nil
}

// FindStudentsByCollegeID returns the students holding collegeID
func (r *StudentRepository) FindStudentsByCollegeID(ctx context.Context, collegeID string) ([]models.Student, error) {
	return r.findStudents(ctx, r.pg.Pool, squirrel.Eq{"college_id": collegeID})
}

// FindStudentsByBatch returns the students of a batch
func (r *StudentRepository) FindStudentsByBatch(ctx context.Context, batch string) ([]models.Student, error) {
	return r.findStudents(ctx, r.pg.Pool, squirrel.Eq{"batch": batch})
}

// FindStudentsByGender returns the students of a gender
func (r *StudentRepository) FindStudentsByGender(ctx context.Context, gender string) ([]models.Student, error) {
	return r.findStudents(ctx, r.pg.Pool, squirrel.Eq{"gender": gender})
}

func (r *StudentRepository) findStudents(ctx context.Context, q db.Querier, where squirrel.Eq) ([]models.Student, error) {
	sql, args, err := r.sb.Select(studentColumns...).
		From("students").
		Where(where).
		OrderBy("user_id ASC").
		ToSql()
	if err != nil {
		return nil, apperrors.Store("build find students query", err)
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error querying students")
		return nil, apperrors.Store("find students", err)
	}
	defer rows.Close()

	students := []models.Student{}
	for rows.Next() {
		var s models.Student
		if err := scanStudent(rows, &s); err != nil {
			return nil, apperrors.Store("scan student", err)
		}
		students = append(students, s)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Store("iterate students", err)
	}
	return students, nil
}

// UpdateStudentProfile writes the editable profile fields of s
func (r *StudentRepository) UpdateStudentProfile(ctx context.Context, s *models.Student) error {
	sql, args, err := r.sb.Update("students").
		Set("name", s.Name).
		Set("mobile_no", s.MobileNo).
		Set("gender", s.Gender).
		Set("batch", s.Batch).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"user_id": s.UserID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return apperrors.Store("build update student query", err)
	}

	if err := r.pg.Pool.QueryRow(ctx, sql, args...).Scan(&s.UpdatedAt); err != nil {
		if dberrors.IsNoRows(err) {
			return apperrors.ErrStudentNotFound
		}
		logger.Error().Err(err).Int64("userID", s.UserID).Msg("Error updating student profile")
		return apperrors.Store("update student", err)
	}
	return nil
}

// SetStudentMess assigns a single student to a mess and returns the row as written
func (r *StudentRepository) SetStudentMess(ctx context.Context, userID, messID int64, at time.Time) (*models.Student, error) {
	sql, args, err := r.sb.Update("students").
		Set("mess_id", messID).
		Set("updated_at", at).
		Where(squirrel.Eq{"user_id": userID}).
		Suffix("RETURNING " + strings.Join(studentColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, apperrors.Store("build assign mess query", err)
	}

	var student models.Student
	if err := scanStudent(r.pg.Pool.QueryRow(ctx, sql, args...), &student); err != nil {
		if dberrors.IsNoRows(err) {
			return nil, apperrors.ErrStudentNotFound
		}
		logger.Error().Err(err).Int64("userID", userID).Msg("Error assigning student mess")
		return nil, apperrors.Store("assign student mess", err)
	}
	return &student, nil
}

// SetBatchMess assigns every student of batch to messID within one transaction.
// Students whose row disappears between the read and the write are reported as failed;
// any other database error aborts the whole batch.
func (r *StudentRepository) SetBatchMess(ctx context.Context, batch string, messID int64, at time.Time) (*models.BatchAssignmentResult, error) {
	result := &models.BatchAssignmentResult{
		Batch:   batch,
		MessID:  messID,
		Updated: []int64{},
		Failed:  []models.AssignmentFailure{},
	}

	err := r.pg.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		students, err := r.findStudents(ctx, tx, squirrel.Eq{"batch": batch})
		if err != nil {
			return err
		}

		for _, s := range students {
			n, err := setStudentMess(ctx, tx, r.sb, s.UserID, messID, at)
			if err != nil {
				return err
			}
			if n == 0 {
				result.Failed = append(result.Failed, models.AssignmentFailure{
					UserID:  s.UserID,
					Kind:    string(apperrors.KindNotFound),
					Message: apperrors.ErrStudentNotFound.Error(),
				})
				continue
			}
			result.Updated = append(result.Updated, s.UserID)
		}
		return nil
	})
	if err != nil {
		logger.Error().Err(err).Str("batch", batch).Int64("messID", messID).Msg("Error assigning batch mess")
		return nil, apperrors.Store("assign batch mess", err)
	}

	logger.Info().Str("batch", batch).Int64("messID", messID).
		Int("updated", len(result.Updated)).
		Int("failed", len(result.Failed)).
		Msg("Batch mess assignment applied")
	return result, nil
}

func setStudentMess(ctx context.Context, q db.Querier, sb squirrel.StatementBuilderType, userID, messID int64, at time.Time) (int64, error) {
	sql, args, err := sb.Update("students").
		Set("mess_id", messID).
		Set("updated_at", at).
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build assign mess query: %w", err)
	}
	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
