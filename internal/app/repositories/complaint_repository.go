package repositories

import (
	"context"
	"iter"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/yigit/messdesk/internal/app/models"
	"github.com/yigit/messdesk/internal/db"
	"github.com/yigit/messdesk/internal/pkg/apperrors"
	"github.com/yigit/messdesk/internal/pkg/dberrors"
	"github.com/yigit/messdesk/internal/pkg/logger"
)

const complaintColumns = `id, student_id, mess_id, category, description, image, status, created_at, updated_at`

// ComplaintRepository handles database operations for complaints
type ComplaintRepository struct {
	pg *db.PostgresDB
}

// NewComplaintRepository creates a new complaint repository
func NewComplaintRepository(pg *db.PostgresDB) *ComplaintRepository {
	return &ComplaintRepository{
		pg: pg,
	}
}

func scanComplaint(row pgx.Row, c *models.Complaint) error {
	return row.Scan(
		&c.ID,
		&c.StudentID,
		&c.MessID,
		&c.Category,
		&c.Description,
		&c.Image,
		&c.Status,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
}

// CreateComplaint inserts c and fills in its ID and timestamps
func (r *ComplaintRepository) CreateComplaint(ctx context.Context, c *models.Complaint) error {
	query := `
		INSERT INTO complaints (student_id, mess_id, category, description, image, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err := r.pg.Pool.QueryRow(ctx, query, c.StudentID, c.MessID, c.Category, c.Description, c.Image, c.Status).
		Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", c.StudentID).Msg("Error creating complaint")
		return apperrors.Store("create complaint", err)
	}
	return nil
}

// GetComplaintByID retrieves a complaint by ID
func (r *ComplaintRepository) GetComplaintByID(ctx context.Context, id int64) (*models.Complaint, error) {
	query := `SELECT ` + complaintColumns + ` FROM complaints WHERE id = $1`

	var c models.Complaint
	if err := scanComplaint(r.pg.Pool.QueryRow(ctx, query, id), &c); err != nil {
		if dberrors.IsNoRows(err) {
			return nil, apperrors.ErrComplaintNotFound
		}
		return nil, apperrors.Store("get complaint", err)
	}
	return &c, nil
}

// ComplaintsByMess yields the complaints of a mess, oldest first.
// Every range over the sequence runs a new query.
func (r *ComplaintRepository) ComplaintsByMess(ctx context.Context, messID int64) iter.Seq2[models.Complaint, error] {
	query := `SELECT ` + complaintColumns + ` FROM complaints WHERE mess_id = $1 ORDER BY created_at ASC, id ASC`
	return r.stream(ctx, query, messID)
}

// ListComplaintsByStudent returns every complaint filed by a student, newest first
func (r *ComplaintRepository) ListComplaintsByStudent(ctx context.Context, studentID int64) ([]models.Complaint, error) {
	query := `SELECT ` + complaintColumns + ` FROM complaints WHERE student_id = $1 ORDER BY created_at DESC, id DESC`

	complaints := []models.Complaint{}
	for c, err := range r.stream(ctx, query, studentID) {
		if err != nil {
			return nil, err
		}
		complaints = append(complaints, c)
	}
	return complaints, nil
}

func (r *ComplaintRepository) stream(ctx context.Context, query string, args ...any) iter.Seq2[models.Complaint, error] {
	return func(yield func(models.Complaint, error) bool) {
		rows, err := r.pg.Pool.Query(ctx, query, args...)
		if err != nil {
			logger.Error().Err(err).Msg("Error querying complaints")
			yield(models.Complaint{}, apperrors.Store("list complaints", err))
			return
		}
		defer rows.Close()

		for rows.Next() {
			var c models.Complaint
			if err := scanComplaint(rows, &c); err != nil {
				yield(models.Complaint{}, apperrors.Store("scan complaint", err))
				return
			}
			if !yield(c, nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(models.Complaint{}, apperrors.Store("iterate complaints", err))
		}
	}
}

// CompareAndSetStatus moves the complaint from one status to another.
// The write only happens while the stored status still equals from.
func (r *ComplaintRepository) CompareAndSetStatus(ctx context.Context, id int64, from, to models.ComplaintStatus, at time.Time) (*models.Complaint, error) {
	query := `
		UPDATE complaints
		SET status = $1, updated_at = $2
		WHERE id = $3 AND status = $4
		RETURNING ` + complaintColumns

	var c models.Complaint
	err := scanComplaint(r.pg.Pool.QueryRow(ctx, query, to, at, id, from), &c)
	if err == nil {
		return &c, nil
	}
	if !dberrors.IsNoRows(err) {
		logger.Error().Err(err).Int64("complaintID", id).Msg("Error updating complaint status")
		return nil, apperrors.Store("update complaint status", err)
	}

	current, getErr := r.GetComplaintByID(ctx, id)
	if getErr != nil {
		return nil, getErr
	}
	return nil, apperrors.InvalidTransition("complaint %d is %s, expected %s", id, current.Status, from)
}
