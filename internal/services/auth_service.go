package services

import (
	"context"
	"fmt"

	"icc-dashboard/internal/auth"
	"icc-dashboard/internal/backend"
	"icc-dashboard/internal/models"
)

// ErrUnknownRole is returned when the backend hands back a user whose role
// this dashboard does not serve.
var ErrUnknownRole = backend.ErrUnknownRole

type AuthService struct {
	client *backend.Client
}

func NewAuthService(client *backend.Client) *AuthService {
	return &AuthService{client: client}
}

// Login exchanges credentials for the user and its token pair.
func (s *AuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginData, error) {
	env, err := backend.Post[models.LoginData](ctx, s.client, backend.Path(backend.AuthPrefix, "login"), req)
	if err != nil {
		return nil, err
	}
	if env.Data.AccessToken == "" {
		return nil, fmt.Errorf("login response carried no access token")
	}
	if _, ok := auth.ParseRole(env.Data.User.Role); !ok {
		return nil, ErrUnknownRole
	}
	return &env.Data, nil
}

// Register creates an unverified account; the backend emails an OTP.
func (s *AuthService) Register(ctx context.Context, req *models.RegisterRequest) (string, error) {
	env, err := backend.Post[map[string]interface{}](ctx, s.client, backend.Path(backend.AuthPrefix, "register"), req)
	if err != nil {
		return "", err
	}
	return env.Message, nil
}

func (s *AuthService) VerifyEmail(ctx context.Context, req *models.VerifyEmailRequest) (string, error) {
	env, err := backend.Post[map[string]interface{}](ctx, s.client, backend.Path(backend.AuthPrefix, "verify-email"), req)
	if err != nil {
		return "", err
	}
	return env.Message, nil
}

func (s *AuthService) ResendOTP(ctx context.Context, email string) (string, error) {
	env, err := backend.Post[map[string]interface{}](ctx, s.client, backend.Path(backend.AuthPrefix, "resend-otp"),
		map[string]string{"email": email})
	if err != nil {
		return "", err
	}
	return env.Message, nil
}

// Refresh trades a refresh token for a new access token.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	env, err := backend.Post[struct {
		Access string `json:"access"`
	}](ctx, s.client, backend.Path(backend.AuthPrefix, "token", "refresh"), map[string]string{"refresh": refreshToken})
	if err != nil {
		return "", err
	}
	if env.Data.Access == "" {
		return "", fmt.Errorf("refresh response carried no access token")
	}
	return env.Data.Access, nil
}

// RedirectFor is where a freshly signed-in user lands.
func (s *AuthService) RedirectFor(user *models.User) string {
	return auth.DashboardPath(user.Role)
}
