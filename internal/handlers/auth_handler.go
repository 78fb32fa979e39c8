package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"icc-dashboard/internal/audit"
	"icc-dashboard/internal/auth"
	"icc-dashboard/internal/backend"
	"icc-dashboard/internal/composition"
	"icc-dashboard/internal/metrics"
	"icc-dashboard/internal/middleware"
	"icc-dashboard/internal/models"
	"icc-dashboard/internal/services"
	"icc-dashboard/internal/session"
	"icc-dashboard/internal/validation"
	"icc-dashboard/pkg/utils"

	"github.com/sirupsen/logrus"
)

const VerifyEmailPath = "/verify-email"

// CookieIssuer sets the signed session cookie for a session id.
type CookieIssuer interface {
	IssueCookie(w http.ResponseWriter, sid string) error
}

type AuthHandler struct {
	Service  *services.AuthService
	Sessions *session.Manager
	Cookies  CookieIssuer
	Audit    *audit.Recorder
	log      *logrus.Logger
}

func NewAuthHandler(s *services.AuthService, sessions *session.Manager, cookies CookieIssuer, recorder *audit.Recorder, log *logrus.Logger) *AuthHandler {
	return &AuthHandler{
		Service:  s,
		Sessions: sessions,
		Cookies:  cookies,
		Audit:    recorder,
		log:      log,
	}
}

// anonymous drops the session's access token from ctx. Credential calls must
// not carry it: a 401 there means bad input, not a revoked session.
func anonymous(r *http.Request) context.Context {
	return backend.WithToken(r.Context(), "")
}

// AuthPayload is returned after sign-in and by Me.
type AuthPayload struct {
	User     *models.User              `json:"user"`
	Redirect string                    `json:"redirect,omitempty"`
	Menu     []composition.MenuSection `json:"menu"`
}

// Login handles user authentication
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if !decode(w, r, &req) {
		return
	}

	ac := middleware.GetAuth(r)
	data, err := h.Service.Login(anonymous(r), &req)
	if err != nil {
		metrics.Logins.WithLabelValues("failure").Inc()
		h.log.WithError(err).WithField("email", req.Email).Info("login rejected")
		writeError(w, r, h.log, err)
		return
	}

	sid, err := h.Sessions.StartLogin(r.Context(), ac.SessionID, data)
	if err != nil {
		h.log.WithError(err).Error("failed to persist login")
		utils.Error(w, http.StatusServiceUnavailable, "Unable to start your session. Please try again.")
		return
	}
	if err := h.Cookies.IssueCookie(w, sid); err != nil {
		h.log.WithError(err).Error("failed to issue session cookie")
		_ = h.Sessions.Clear(r.Context(), sid, "user")
		utils.Error(w, http.StatusInternalServerError, backend.MsgUnexpected)
		return
	}
	metrics.Logins.WithLabelValues("success").Inc()
	h.Audit.Login(data.User, sid, middleware.ClientIP(r), r.UserAgent())

	user := data.User
	utils.OK(w, AuthPayload{
		User:     &user,
		Redirect: h.Service.RedirectFor(&user),
		Menu:     composition.BuildMenu(user.Role),
	}, utils.SuccessToast("Welcome back, "+user.FullName()))
}

// Register creates the account and remembers who must verify
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if !decode(w, r, &req) {
		return
	}

	msg, err := h.Service.Register(anonymous(r), &req)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	ac := middleware.GetAuth(r)
	if err := h.Sessions.SetPendingVerification(r.Context(), ac.SessionID, req.Email, req.UserType); err != nil {
		h.log.WithError(err).Warn("failed to remember pending verification")
	}
	if msg == "" {
		msg = "Account created. Check your email for the verification code."
	}
	utils.OK(w, utils.RedirectData{Redirect: VerifyEmailPath}, utils.SuccessToast(msg))
}

// VerifyEmail confirms the OTP. The email defaults to the one that just
// registered in this session.
func (h *AuthHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	var req models.VerifyEmailRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	ac := middleware.GetAuth(r)
	if req.Email == "" {
		req.Email = ac.PendingEmail
	}
	if err := validation.Struct(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	msg, err := h.Service.VerifyEmail(anonymous(r), &req)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if err := h.Sessions.ClearPendingVerification(r.Context(), ac.SessionID); err != nil {
		h.log.WithError(err).Warn("failed to clear pending verification")
	}
	if msg == "" {
		msg = "Email verified. You can now sign in."
	}
	utils.OK(w, utils.RedirectData{Redirect: auth.SignInPath}, utils.SuccessToast(msg))
}

// ResendOTP asks the backend for a new verification code
func (h *AuthHandler) ResendOTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	// an empty body means "the email this session registered"
	_ = json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody)).Decode(&req)

	email := req.Email
	if email == "" {
		email = middleware.GetAuth(r).PendingEmail
	}
	if email == "" {
		utils.Error(w, http.StatusBadRequest, "Email is required")
		return
	}

	msg, err := h.Service.ResendOTP(anonymous(r), email)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if msg == "" {
		msg = "A new code has been sent to " + email
	}
	utils.OK(w, nil, utils.SuccessToast(msg))
}

// Refresh swaps the stored refresh token for a new access token
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	ac := middleware.GetAuth(r)
	if ac.RefreshToken == "" {
		utils.Redirect(w, http.StatusUnauthorized, "Authentication required", auth.SignInPath)
		return
	}

	token, err := h.Service.Refresh(r.Context(), ac.RefreshToken)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if err := h.Sessions.UpdateAccessToken(r.Context(), ac.SessionID, token); err != nil {
		h.log.WithError(err).Error("failed to store refreshed token")
		utils.Error(w, http.StatusServiceUnavailable, "Unable to refresh your session")
		return
	}
	utils.OK(w, nil, nil)
}

// Logout tears the session down for every open tab
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	ac := middleware.GetAuth(r)
	if ac.Authenticated() {
		h.Audit.Logout(ac.SessionID, "user")
	}
	if err := h.Sessions.Clear(r.Context(), ac.SessionID, "user"); err != nil {
		h.log.WithError(err).Warn("failed to clear session")
	}
	utils.OK(w, utils.RedirectData{Redirect: auth.SignInPath}, utils.SuccessToast("You have been signed out"))
}

// Me returns the cached user and its menu
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	ac := middleware.GetAuth(r)
	utils.OK(w, AuthPayload{User: ac.User, Menu: composition.BuildMenu(ac.Role())}, nil)
}

// ForceLogout is the backend client's 401 hook: the token the request carried
// was rejected, so the whole browser session is signed out and every open tab
// told.
func ForceLogout(sessions *session.Manager, recorder *audit.Recorder, log *logrus.Logger) backend.UnauthorizedHook {
	return func(ctx context.Context) {
		ac, ok := session.FromContext(ctx)
		if !ok || ac.SessionID == "" {
			return
		}
		metrics.ForcedLogouts.Inc()
		recorder.Logout(ac.SessionID, "unauthorized")
		if err := sessions.Clear(context.WithoutCancel(ctx), ac.SessionID, "unauthorized"); err != nil {
			log.WithError(err).WithField("session", ac.SessionID).Warn("failed to clear session after 401")
		}
	}
}
