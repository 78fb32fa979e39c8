package auth

import (
	"errors"
	"time"

	"icc-dashboard/internal/config"
	"icc-dashboard/internal/timeutil"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims is what the session cookie carries. The backend access token
// never leaves the server; the cookie only names the session.
type SessionClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

type JWTManager struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

func NewJWTManager(cfg *config.Config) *JWTManager {
	return &JWTManager{
		secret: []byte(cfg.Session.Secret),
		issuer: cfg.Session.Issuer,
		ttl:    cfg.SessionTTL(),
	}
}

// TTL returns how long issued session tokens stay valid.
func (j *JWTManager) TTL() time.Duration {
	return j.ttl
}

// GenerateSessionToken signs a token naming the given session.
func (j *JWTManager) GenerateSessionToken(sessionID string) (string, error) {
	now := timeutil.Now()

	claims := &SessionClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    j.issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.secret)
}

// ValidateSessionToken verifies a session token and returns its claims
func (j *JWTManager) ValidateSessionToken(tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return j.secret, nil
	}, jwt.WithIssuer(j.issuer))
	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.SessionID == "" {
		return nil, errors.New("token has no session id")
	}

	return claims, nil
}
