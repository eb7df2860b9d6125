package user

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/messdesk/internal/app/models"
	"github.com/yigit/messdesk/internal/db"
	"github.com/yigit/messdesk/internal/pkg/apperrors"
	"github.com/yigit/messdesk/internal/pkg/dberrors"
	"github.com/yigit/messdesk/internal/pkg/logger"
)

// Unique constraint names from migrations/001_init.sql
const (
	constraintUserEmail        = "users_email_key"
	constraintStudentCollegeID = "students_college_id_key"
	constraintSupervisorID     = "supervisors_supervisor_id_key"
)

var duplicateErrors = map[string]error{
	constraintUserEmail:        apperrors.ErrEmailAlreadyExists,
	constraintStudentCollegeID: apperrors.ErrCollegeIDExists,
	constraintSupervisorID:     apperrors.ErrSupervisorIDExists,
}

var userColumns = []string{"user_id", "role", "email", "credential", "created_at"}

// psql is the statement builder shared by the postgres repositories
var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Repository handles common user database operations
type Repository struct {
	pg *db.PostgresDB
	sb squirrel.StatementBuilderType
}

// NewRepository creates a new Repository
func NewRepository(pg *db.PostgresDB) *Repository {
	return &Repository{
		pg: pg,
		sb: psql,
	}
}

// CreateAccount creates a user and its optional role profile in one transaction
func (r *Repository) CreateAccount(ctx context.Context, u *models.User, student *models.Student, supervisor *models.Supervisor) (int64, error) {
	err := r.pg.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := r.checkUnique(ctx, tx, u, student, supervisor); err != nil {
			return err
		}

		sql, args, err := r.sb.Insert("users").
			Columns("role", "email", "credential").
			Values(u.RoleType, u.Email, u.Credential).
			Suffix("RETURNING user_id, created_at").
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build create user query: %w", err)
		}
		if err := tx.QueryRow(ctx, sql, args...).Scan(&u.ID, &u.CreatedAt); err != nil {
			return err
		}

		if student != nil {
			student.UserID = u.ID
			if err := insertStudent(ctx, tx, r.sb, student); err != nil {
				return err
			}
		}
		if supervisor != nil {
			supervisor.UserID = u.ID
			if err := insertSupervisor(ctx, tx, r.sb, supervisor); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if constraint, ok := dberrors.ViolatedUnique(err); ok && duplicateErrors[constraint] != nil {
			err = duplicateErrors[constraint]
		}
		if apperrors.Classified(err) {
			logger.Warn().Err(err).Str("email", u.Email).Msg("Account creation rejected")
			return 0, err
		}
		logger.Error().Err(err).Str("email", u.Email).Msg("Error creating account")
		return 0, apperrors.Store("create account", err)
	}

	logger.Info().Int64("userID", u.ID).Str("role", string(u.RoleType)).Msg("Account created successfully")
	return u.ID, nil
}

// checkUnique rejects duplicates before any insert so that no partial account is written
func (r *Repository) checkUnique(ctx context.Context, q db.Querier, u *models.User, student *models.Student, supervisor *models.Supervisor) error {
	exists, err := existsWhere(ctx, q, r.sb, "users", squirrel.Eq{"email": u.Email})
	if err != nil {
		return err
	}
	if exists {
		return apperrors.ErrEmailAlreadyExists
	}

	if student != nil {
		exists, err = existsWhere(ctx, q, r.sb, "students", squirrel.Eq{"college_id": student.CollegeID})
		if err != nil {
			return err
		}
		if exists {
			return apperrors.ErrCollegeIDExists
		}
	}

	if supervisor != nil {
		exists, err = existsWhere(ctx, q, r.sb, "supervisors", squirrel.Eq{"supervisor_id": supervisor.SupervisorID})
		if err != nil {
			return err
		}
		if exists {
			return apperrors.ErrSupervisorIDExists
		}
	}
	return nil
}

// GetUserByEmail retrieves a user by email
func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getUser(ctx, squirrel.Eq{"email": email})
}

// GetUserByID retrieves a user by ID
func (r *Repository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	return r.getUser(ctx, squirrel.Eq{"user_id": id})
}

func (r *Repository) getUser(ctx context.Context, where squirrel.Eq) (*models.User, error) {
	sql, args, err := r.sb.Select(userColumns...).From("users").Where(where).Limit(1).ToSql()
	if err != nil {
		return nil, apperrors.Store("build get user query", err)
	}

	u := &models.User{}
	err = r.pg.Pool.QueryRow(ctx, sql, args...).Scan(&u.ID, &u.RoleType, &u.Email, &u.Credential, &u.CreatedAt)
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Msg("Error scanning user row")
		return nil, apperrors.Store("get user", err)
	}
	return u, nil
}

// EmailExists checks if an email already exists
func (r *Repository) EmailExists(ctx context.Context, email string) (bool, error) {
	exists, err := existsWhere(ctx, r.pg.Pool, r.sb, "users", squirrel.Eq{"email": email})
	if err != nil {
		return false, apperrors.Store("check email", err)
	}
	return exists, nil
}

// DeleteUser deletes the user's profile rows and then the user itself in one transaction
func (r *Repository) DeleteUser(ctx context.Context, id int64) (*models.DeleteResult, error) {
	result := &models.DeleteResult{UserID: id}

	err := r.pg.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		n, err := deleteWhere(ctx, tx, r.sb, "students", squirrel.Eq{"user_id": id})
		if err != nil {
			return err
		}
		result.StudentDeleted = n > 0

		n, err = deleteWhere(ctx, tx, r.sb, "supervisors", squirrel.Eq{"user_id": id})
		if err != nil {
			return err
		}
		result.SupervisorDeleted = n > 0

		n, err = deleteWhere(ctx, tx, r.sb, "users", squirrel.Eq{"user_id": id})
		if err != nil {
			return err
		}
		if n == 0 {
			return apperrors.ErrUserNotFound
		}
		return nil
	})
	if err != nil {
		if apperrors.Classified(err) {
			return nil, err
		}
		logger.Error().Err(err).Int64("userID", id).Msg("Error deleting user")
		return nil, apperrors.Store("delete user", err)
	}

	logger.Info().Int64("userID", id).
		Bool("studentDeleted", result.StudentDeleted).
		Bool("supervisorDeleted", result.SupervisorDeleted).
		Msg("User deleted")
	return result, nil
}

func existsWhere(ctx context.Context, q db.Querier, sb squirrel.StatementBuilderType, table string, where squirrel.Sqlizer) (bool, error) {
	sql, args, err := sb.Select("1").
		From(table).
		Where(where).
		Prefix("SELECT EXISTS (").
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build exists query: %w", err)
	}

	var exists bool
	if err := q.QueryRow(ctx, sql, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("error checking %s existence: %w", table, err)
	}
	return exists, nil
}

func deleteWhere(ctx context.Context, q db.Querier, sb squirrel.StatementBuilderType, table string, where squirrel.Sqlizer) (int64, error) {
	sql, args, err := sb.Delete(table).Where(where).ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build delete query: %w", err)
	}
	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("error deleting from %s: %w", table, err)
	}
	return tag.RowsAffected(), nil
}
