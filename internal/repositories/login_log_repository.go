package repositories

import (
	"context"
	"time"

	"icc-dashboard/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type LoginLogRepository struct {
	DB *pgxpool.Pool
}

func NewLoginLogRepository(db *pgxpool.Pool) *LoginLogRepository {
	return &LoginLogRepository{DB: db}
}

// CreateLoginLog records a new login event
func (r *LoginLogRepository) CreateLoginLog(ctx context.Context, log *models.LoginLog) (int, error) {
	query := `
		INSERT INTO login_logs (user_id, email, role, session_id, login_time, ip_address, user_agent)
		VALUES ($1, $2, $3, $4, NOW(), $5, $6)
		RETURNING id
	`

	var logID int
	err := r.DB.QueryRow(ctx, query,
		log.UserID, log.Email, log.Role, log.SessionID, log.IPAddress, log.UserAgent,
	).Scan(&logID)
	if err != nil {
		return 0, err
	}

	return logID, nil
}

// CloseSession stamps the logout time on the open login of a session
func (r *LoginLogRepository) CloseSession(ctx context.Context, sessionID, reason string) error {
	query := `
		UPDATE login_logs
		SET logout_time = NOW(), logout_reason = $2
		WHERE id = (
			SELECT id FROM login_logs
			WHERE session_id = $1 AND logout_time IS NULL
			ORDER BY login_time DESC
			LIMIT 1
		)
	`

	_, err := r.DB.Exec(ctx, query, sessionID, reason)
	return err
}

// ListRecent retrieves the latest login/logout logs
func (r *LoginLogRepository) ListRecent(ctx context.Context, limit int) ([]models.LoginLog, error) {
	query := `
		SELECT id, user_id, email, role, session_id, login_time,
		       logout_time, logout_reason, COALESCE(ip_address, ''), COALESCE(user_agent, '')
		FROM login_logs
		ORDER BY login_time DESC
		LIMIT $1
	`

	rows, err := r.DB.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []models.LoginLog
	for rows.Next() {
		var (
			l          models.LoginLog
			logoutTime *time.Time
		)
		if err := rows.Scan(
			&l.ID, &l.UserID, &l.Email, &l.Role, &l.SessionID, &l.LoginTime,
			&logoutTime, &l.LogoutReason, &l.IPAddress, &l.UserAgent,
		); err != nil {
			return nil, err
		}
		l.LogoutTime = logoutTime
		logs = append(logs, l)
	}

	return logs, rows.Err()
}
