package models

import "time"

type LoginLog struct {
	ID         int        `json:"id" db:"id"`
	UserID     int        `json:"user_id" db:"user_id"`
	Email      string     `json:"email" db:"email"`
	Role       string     `json:"role" db:"role"`
	SessionID  string     `json:"session_id" db:"session_id"`
	LoginTime  time.Time  `json:"login_time" db:"login_time"`
	LogoutTime *time.Time `json:"logout_time,omitempty" db:"logout_time"`
	// "user" for explicit sign-out, "unauthorized" when the backend rejected the token.
	LogoutReason *string `json:"logout_reason,omitempty" db:"logout_reason"`
	IPAddress    string  `json:"ip_address,omitempty" db:"ip_address"`
	UserAgent    string  `json:"user_agent,omitempty" db:"user_agent"`
}
