package user

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/messdesk/internal/app/models"
	"github.com/yigit/messdesk/internal/db"
	"github.com/yigit/messdesk/internal/pkg/apperrors"
	"github.com/yigit/messdesk/internal/pkg/dberrors"
	"github.com/yigit/messdesk/internal/pkg/logger"
)

var supervisorColumns = []string{"supervisor_id", "user_id", "name", "mobile_no", "mess_id", "updated_at"}

// SupervisorRepository handles supervisor database operations
type SupervisorRepository struct {
	pg *db.PostgresDB
	sb squirrel.StatementBuilderType
}

// NewSupervisorRepository creates a new SupervisorRepository
func NewSupervisorRepository(pg *db.PostgresDB) *SupervisorRepository {
	return &SupervisorRepository{
		pg: pg,
		sb: psql,
	}
}

func insertSupervisor(ctx context.Context, q db.Querier, sb squirrel.StatementBuilderType, s *models.Supervisor) error {
	sql, args, err := sb.Insert("supervisors").
		Columns("supervisor_id", "user_id", "name", "mobile_no", "mess_id").
		Values(s.SupervisorID, s.UserID, s.Name, s.MobileNo, s.MessID).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create supervisor query: %w", err)
	}
	return q.QueryRow(ctx, sql, args...).Scan(&s.UpdatedAt)
}

func scanSupervisor(row pgx.Row, s *models.Supervisor) error {
	return row.Scan(&s.SupervisorID, &s.UserID, &s.Name, &s.MobileNo, &s.MessID, &s.UpdatedAt)
}

// GetSupervisorByUserID retrieves a supervisor by user ID
func (r *SupervisorRepository) GetSupervisorByUserID(ctx context.Context, userID int64) (*models.Supervisor, error) {
	return r.getSupervisor(ctx, squirrel.Eq{"user_id": userID})
}

// GetSupervisorByID retrieves a supervisor by its supervisor identifier
func (r *SupervisorRepository) GetSupervisorByID(ctx context.Context, supervisorID string) (*models.Supervisor, error) {
	return r.getSupervisor(ctx, squirrel.Eq{"supervisor_id": supervisorID})
}

func (r *SupervisorRepository) getSupervisor(ctx context.Context, where squirrel.Eq) (*models.Supervisor, error) {
	sql, args, err := r.sb.Select(supervisorColumns...).From("supervisors").Where(where).Limit(1).ToSql()
	if err != nil {
		return nil, apperrors.Store("build get supervisor query", err)
	}

	var s models.Supervisor
	if err := scanSupervisor(r.pg.Pool.QueryRow(ctx, sql, args...), &s); err != nil {
		if dberrors.IsNoRows(err) {
			return nil, apperrors.ErrSupervisorNotFound
		}
		logger.Error().Err(err).Msg("Error scanning supervisor row")
		return nil, apperrors.Store("get supervisor", err)
	}
	return &s, nil
}

// SupervisorIDExists checks if a supervisor ID is already in use
func (r *SupervisorRepository) SupervisorIDExists(ctx context.Context, supervisorID string) (bool, error) {
	exists, err := existsWhere(ctx, r.pg.Pool, r.sb, "supervisors", squirrel.Eq{"supervisor_id": supervisorID})
	if err != nil {
		return false, apperrors.Store("check supervisor ID", err)
	}
	return exists, nil
}

// ListSupervisorsByMess returns the supervisors assigned to messID
func (r *SupervisorRepository) ListSupervisorsByMess(ctx context.Context, messID int64) ([]models.Supervisor, error) {
	sql, args, err := r.sb.Select(supervisorColumns...).
		From("supervisors").
		Where(squirrel.Eq{"mess_id": messID}).
		OrderBy("supervisor_id ASC").
		ToSql()
	if err != nil {
		return nil, apperrors.Store("build list supervisors query", err)
	}

	rows, err := r.pg.Pool.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("messID", messID).Msg("Error querying supervisors")
		return nil, apperrors.Store("list supervisors", err)
	}
	defer rows.Close()

	supervisors := []models.Supervisor{}
	for rows.Next() {
		var s models.Supervisor
		if err := scanSupervisor(rows, &s); err != nil {
			return nil, apperrors.Store("scan supervisor", err)
		}
		supervisors = append(supervisors, s)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Store("iterate supervisors", err)
	}
	return supervisors, nil
}

// UpdateSupervisorProfile writes the editable profile fields of s
func (r *SupervisorRepository) UpdateSupervisorProfile(ctx context.Context, s *models.Supervisor) error {
	sql, args, err := r.sb.Update("supervisors").
		Set("name", s.Name).
		Set("mobile_no", s.MobileNo).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"user_id": s.UserID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return apperrors.Store("build update supervisor query", err)
	}

	if err := r.pg.Pool.QueryRow(ctx, sql, args...).Scan(&s.UpdatedAt); err != nil {
		if dberrors.IsNoRows(err) {
			return apperrors.ErrSupervisorNotFound
		}
		logger.Error().Err(err).Int64("userID", s.UserID).Msg("Error updating supervisor profile")
		return apperrors.Store("update supervisor", err)
	}
	return nil
}

// SetSupervisorMess assigns a supervisor to a mess
func (r *SupervisorRepository) SetSupervisorMess(ctx context.Context, supervisorID string, messID int64, at time.Time) error {
	sql, args, err := r.sb.Update("supervisors").
		Set("mess_id", messID).
		Set("updated_at", at).
		Where(squirrel.Eq{"supervisor_id": supervisorID}).
		ToSql()
	if err != nil {
		return apperrors.Store("build assign supervisor query", err)
	}

	tag, err := r.pg.Pool.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("supervisorID", supervisorID).Msg("Error assigning supervisor mess")
		return apperrors.Store("assign supervisor mess", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrSupervisorNotFound
	}
	return nil
}
