package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/messdesk/internal/app/models"
	"github.com/yigit/messdesk/internal/db"
	"github.com/yigit/messdesk/internal/pkg/apperrors"
	"github.com/yigit/messdesk/internal/pkg/dberrors"
	"github.com/yigit/messdesk/internal/pkg/logger"
)

var menuRequestColumns = []string{
	"id", "mess_id", "date", "current_menu", "proposed_menu", "reason", "created_by", "created_at",
}

// MenuRequestRepository handles database operations for menu change requests
type MenuRequestRepository struct {
	pg *db.PostgresDB
	sb squirrel.StatementBuilderType
}

// NewMenuRequestRepository creates a new menu request repository
func NewMenuRequestRepository(pg *db.PostgresDB) *MenuRequestRepository {
	return &MenuRequestRepository{
		pg: pg,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateMenuRequest inserts m and fills in its ID and creation time
func (r *MenuRequestRepository) CreateMenuRequest(ctx context.Context, m *models.MenuChangeRequest) error {
	sql, args, err := r.sb.Insert("menu_change_requests").
		Columns("mess_id", "date", "current_menu", "proposed_menu", "reason", "created_by").
		Values(m.MessID, m.Date, m.CurrentMenu, m.ProposedMenu, m.Reason, m.CreatedBy).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return apperrors.Store("build create menu request query", err)
	}

	if err := r.pg.Pool.QueryRow(ctx, sql, args...).Scan(&m.ID, &m.CreatedAt); err != nil {
		logger.Error().Err(err).Int64("messID", m.MessID).Msg("Error creating menu request")
		return apperrors.Store("create menu request", err)
	}
	return nil
}

// GetMenuRequestByID retrieves a menu request by ID
func (r *MenuRequestRepository) GetMenuRequestByID(ctx context.Context, id int64) (*models.MenuChangeRequest, error) {
	sql, args, err := r.sb.Select(menuRequestColumns...).
		From("menu_change_requests").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, apperrors.Store("build get menu request query", err)
	}

	var m models.MenuChangeRequest
	err = r.pg.Pool.QueryRow(ctx, sql, args...).
		Scan(&m.ID, &m.MessID, &m.Date, &m.CurrentMenu, &m.ProposedMenu, &m.Reason, &m.CreatedBy, &m.CreatedAt)
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, apperrors.ErrMenuRequestNotFound
		}
		return nil, apperrors.Store("get menu request", err)
	}
	return &m, nil
}

// ListMenuRequests returns menu requests, optionally limited to one mess, oldest first
func (r *MenuRequestRepository) ListMenuRequests(ctx context.Context, messID *int64) ([]models.MenuChangeRequest, error) {
	builder := r.sb.Select(menuRequestColumns...).
		From("menu_change_requests").
		OrderBy("created_at ASC", "id ASC")
	if messID != nil {
		builder = builder.Where(squirrel.Eq{"mess_id": *messID})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, apperrors.Store("build list menu requests query", err)
	}

	rows, err := r.pg.Pool.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error querying menu requests")
		return nil, apperrors.Store("list menu requests", err)
	}
	defer rows.Close()

	requests := []models.MenuChangeRequest{}
	for rows.Next() {
		var m models.MenuChangeRequest
		if err := rows.Scan(&m.ID, &m.MessID, &m.Date, &m.CurrentMenu, &m.ProposedMenu, &m.Reason, &m.CreatedBy, &m.CreatedAt); err != nil {
			return nil, apperrors.Store("scan menu request", err)
		}
		requests = append(requests, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Store("iterate menu requests", err)
	}
	return requests, nil
}

// DeleteMenuRequest removes a menu request
func (r *MenuRequestRepository) DeleteMenuRequest(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("menu_change_requests").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return apperrors.Store("build delete menu request query", err)
	}

	tag, err := r.pg.Pool.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("id", id).Msg("Error deleting menu request")
		return apperrors.Store("delete menu request", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrMenuRequestNotFound
	}
	return nil
}
