package middleware

import (
	"net/http"
	"strings"
	"time"

	"icc-dashboard/internal/auth"
	"icc-dashboard/internal/backend"
	"icc-dashboard/internal/metrics"
	"icc-dashboard/internal/session"
	"icc-dashboard/pkg/utils"

	"github.com/sirupsen/logrus"
)

// Decision is the outcome of a guard check.
type Decision struct {
	Allow    bool
	Redirect string
}

// Decide is the page guard rule. No token sends the user to sign-in. A route
// that needs a role sends a user without a cached role to sign-in, and a user
// with a different role to their own dashboard.
func Decide(hasToken bool, cachedRole, requiredRole string) Decision {
	if !hasToken {
		return Decision{Redirect: auth.SignInPath}
	}
	if requiredRole == "" {
		return Decision{Allow: true}
	}
	if cachedRole == "" {
		return Decision{Redirect: auth.SignInPath}
	}
	if cachedRole != requiredRole {
		return Decision{Redirect: auth.DashboardPath(cachedRole)}
	}
	return Decision{Allow: true}
}

type AuthMiddleware struct {
	jwtManager *auth.JWTManager
	sessions   *session.Manager
	cookieName string
	secure     bool
	log        *logrus.Logger
}

func NewAuthMiddleware(jwtManager *auth.JWTManager, sessions *session.Manager, cookieName string, secure bool, log *logrus.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		jwtManager: jwtManager,
		sessions:   sessions,
		cookieName: cookieName,
		secure:     secure,
		log:        log,
	}
}

// LoadSession resolves the session cookie into an AuthContext on the request
// context, issuing a fresh session when the cookie is missing or invalid.
// The backend token rides along so service calls carry it automatically.
func (m *AuthMiddleware) LoadSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sid := ""
		if c, err := r.Cookie(m.cookieName); err == nil {
			if claims, err := m.jwtManager.ValidateSessionToken(c.Value); err == nil {
				sid = claims.SessionID
			}
		}

		if sid == "" {
			sid = session.NewSessionID()
			if err := m.IssueCookie(w, sid); err != nil {
				m.log.WithError(err).Error("failed to issue session cookie")
				http.Error(w, "Internal server error", http.StatusInternalServerError)
				return
			}
		}

		ac, err := m.sessions.Load(r.Context(), sid)
		if err != nil {
			m.log.WithError(err).WithField("session", sid).Warn("session store unavailable")
			ac = &session.AuthContext{SessionID: sid}
		}

		ctx := session.WithAuth(r.Context(), ac)
		if ac.AccessToken != "" {
			ctx = backend.WithToken(ctx, ac.AccessToken)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// IssueCookie sets the signed session cookie for sid.
func (m *AuthMiddleware) IssueCookie(w http.ResponseWriter, sid string) error {
	token, err := m.jwtManager.GenerateSessionToken(sid)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(m.jwtManager.TTL()),
	})
	return nil
}

// RequireAuth lets any signed-in user through.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return m.guard("", next)
}

// RequireRole lets only users whose cached role matches role through.
func (m *AuthMiddleware) RequireRole(role auth.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return m.guard(string(role), next)
	}
}

// RedirectIfAuthenticated keeps signed-in users off the sign-in and
// registration pages.
func (m *AuthMiddleware) RedirectIfAuthenticated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ac, _ := session.FromContext(r.Context())
		if ac.Authenticated() && ac.Role() != "" {
			http.Redirect(w, r, auth.DashboardPath(ac.Role()), http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (m *AuthMiddleware) guard(requiredRole string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ac, _ := session.FromContext(r.Context())
		d := Decide(ac.Authenticated(), ac.Role(), requiredRole)
		if d.Allow {
			next.ServeHTTP(w, r)
			return
		}
		metrics.GuardRedirects.WithLabelValues(d.Redirect).Inc()

		if wantsHTML(r) {
			http.Redirect(w, r, d.Redirect, http.StatusFound)
			return
		}
		if !ac.Authenticated() || d.Redirect == auth.SignInPath {
			utils.Redirect(w, http.StatusUnauthorized, "Authentication required", d.Redirect)
			return
		}
		utils.Redirect(w, http.StatusForbidden, "Forbidden: Insufficient permissions", d.Redirect)
	})
}

// wantsHTML reports whether the caller is a browser navigation rather than a
// script call.
func wantsHTML(r *http.Request) bool {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		return false
	}
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}

// GetAuth returns the request's AuthContext. Routes behind LoadSession always
// have one.
func GetAuth(r *http.Request) *session.AuthContext {
	ac, ok := session.FromContext(r.Context())
	if !ok {
		return &session.AuthContext{}
	}
	return ac
}
