package repositories

import (
	"context"

	"icc-dashboard/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type AdminActionLogRepository struct {
	DB *pgxpool.Pool
}

func NewAdminActionLogRepository(db *pgxpool.Pool) *AdminActionLogRepository {
	return &AdminActionLogRepository{DB: db}
}

// CreateActionLog records an admin action
func (r *AdminActionLogRepository) CreateActionLog(ctx context.Context, log *models.AdminActionLog) error {
	query := `
		INSERT INTO admin_action_logs (
			admin_user_id, admin_email, action_type, target_type, target_id,
			description, succeeded, ip_address, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
	`

	_, err := r.DB.Exec(ctx, query,
		log.AdminUserID, log.AdminEmail, log.ActionType, log.TargetType, log.TargetID,
		log.Description, log.Succeeded, log.IPAddress,
	)

	return err
}

// ListRecent retrieves the latest admin action logs
func (r *AdminActionLogRepository) ListRecent(ctx context.Context, limit int) ([]models.AdminActionLog, error) {
	query := `
		SELECT id, admin_user_id, admin_email, action_type, target_type, target_id,
		       description, succeeded, ip_address, created_at
		FROM admin_action_logs
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.DB.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []models.AdminActionLog
	for rows.Next() {
		var l models.AdminActionLog
		if err := rows.Scan(
			&l.ID, &l.AdminUserID, &l.AdminEmail, &l.ActionType, &l.TargetType, &l.TargetID,
			&l.Description, &l.Succeeded, &l.IPAddress, &l.CreatedAt,
		); err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}

	return logs, rows.Err()
}
