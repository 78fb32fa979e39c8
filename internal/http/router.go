package http

import (
	"io/fs"
	"net/http"

	"icc-dashboard/internal/auth"
	"icc-dashboard/internal/composition"
	"icc-dashboard/internal/handlers"
	"icc-dashboard/internal/middleware"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Auth      *handlers.AuthHandler
	Dashboard *handlers.DashboardHandler
	Booking   *handlers.BookingHandler
	Cleaner   *handlers.CleanerHandler
	Client    *handlers.ClientHandler
	Catalog   *handlers.CatalogHandler
	Payout    *handlers.PayoutHandler
	Dispute   *handlers.DisputeHandler
	Report    *handlers.ReportHandler
	Audit     *handlers.AuditHandler
	Settings  *handlers.SettingsHandler
	Billing   *handlers.BillingHandler
	Live      *handlers.LiveHandler
	Page      *handlers.PageHandler
	Health    *handlers.HealthHandler
}

func NewRouter(h Handlers, authMiddleware *middleware.AuthMiddleware, staticFS fs.FS, log *logrus.Logger) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.PanicRecovery(log), middleware.AccessLog(log), middleware.MetricsMiddleware)

	// Serve static files from embedded filesystem
	r.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	// Health and metrics carry no session
	r.HandleFunc("/health", h.Health.BasicHealth).Methods("GET")
	r.HandleFunc("/health/ready", h.Health.ReadinessHealth).Methods("GET")
	r.HandleFunc("/health/detailed", h.Health.DetailedHealth).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	app := r.NewRoute().Subrouter()
	app.Use(authMiddleware.LoadSession)

	authed := func(f http.HandlerFunc) http.Handler { return authMiddleware.RequireAuth(f) }

	// Live session events for every open tab
	app.Handle("/ws/session", authed(h.Live.Session)).Methods("GET")

	api := app.PathPrefix("/api").Subrouter()
	api.Use(otelhttp.NewMiddleware("icc-dashboard"))

	// Public API routes - Authentication
	api.HandleFunc("/auth/login", h.Auth.Login).Methods("POST")
	api.HandleFunc("/auth/register", h.Auth.Register).Methods("POST")
	api.HandleFunc("/auth/verify-email", h.Auth.VerifyEmail).Methods("POST")
	api.HandleFunc("/auth/resend-otp", h.Auth.ResendOTP).Methods("POST")
	api.HandleFunc("/auth/logout", h.Auth.Logout).Methods("POST")
	api.Handle("/auth/me", authed(h.Auth.Me)).Methods("GET")
	api.Handle("/auth/refresh", authed(h.Auth.Refresh)).Methods("POST")

	// Any signed-in role; the handler picks the role's backend prefix
	api.Handle("/payouts", authed(h.Payout.List)).Methods("GET")
	api.Handle("/disputes", authed(h.Dispute.List)).Methods("GET")
	api.Handle("/disputes", authed(h.Dispute.Create)).Methods("POST")
	api.Handle("/disputes/{id:[0-9]+}", authed(h.Dispute.Get)).Methods("GET")
	api.Handle("/disputes/{id:[0-9]+}/comments", authed(h.Dispute.Comment)).Methods("POST")
	api.Handle("/billing/payment-methods", authed(h.Billing.List)).Methods("GET")
	api.Handle("/billing/payment-methods", authed(h.Billing.Create)).Methods("POST")
	api.Handle("/billing/payment-methods/{id:[0-9]+}", authed(h.Billing.Delete)).Methods("DELETE")
	api.Handle("/billing/payment-methods/{id:[0-9]+}/default", authed(h.Billing.SetDefault)).Methods("POST")
	api.Handle("/settings/profile", authed(h.Settings.Profile)).Methods("GET")
	api.Handle("/settings/profile", authed(h.Settings.UpdateProfile)).Methods("PUT")
	api.Handle("/settings/password", authed(h.Settings.ChangePassword)).Methods("POST")
	api.Handle("/settings/profile-picture", authed(h.Settings.UploadPicture)).Methods("POST")
	api.Handle("/settings/dba-document", authMiddleware.RequireRole(auth.RoleCleaner)(http.HandlerFunc(h.Settings.UploadDBADocument))).Methods("POST")
	api.Handle("/services/active", authed(h.Catalog.ListActive)).Methods("GET")

	// Admin-only API
	adminAPI := api.PathPrefix("/admin").Subrouter()
	adminAPI.Use(authMiddleware.RequireRole(auth.RoleAdmin))
	adminAPI.HandleFunc("/dashboard", h.Dashboard.Admin).Methods("GET")
	adminAPI.HandleFunc("/bookings", h.Booking.List).Methods("GET")
	adminAPI.HandleFunc("/bookings/{id:[0-9]+}", h.Booking.Get).Methods("GET")
	adminAPI.HandleFunc("/bookings/{id:[0-9]+}/assign", h.Booking.AssignCleaner).Methods("POST")
	adminAPI.HandleFunc("/bookings/{id:[0-9]+}/status", h.Booking.UpdateStatus).Methods("PATCH")
	adminAPI.HandleFunc("/cleaners", h.Cleaner.List).Methods("GET")
	adminAPI.HandleFunc("/cleaners/{id:[0-9]+}", h.Cleaner.Get).Methods("GET")
	adminAPI.HandleFunc("/cleaners/{id:[0-9]+}/status", h.Cleaner.UpdateStatus).Methods("PATCH")
	adminAPI.HandleFunc("/clients", h.Client.List).Methods("GET")
	adminAPI.HandleFunc("/clients/{id:[0-9]+}", h.Client.Get).Methods("GET")
	adminAPI.HandleFunc("/clients/{id:[0-9]+}/active", h.Client.SetActive).Methods("PATCH")
	adminAPI.HandleFunc("/services", h.Catalog.List).Methods("GET")
	adminAPI.HandleFunc("/services", h.Catalog.Create).Methods("POST")
	adminAPI.HandleFunc("/services/{id:[0-9]+}", h.Catalog.Update).Methods("PUT")
	adminAPI.HandleFunc("/services/{id:[0-9]+}", h.Catalog.Delete).Methods("DELETE")
	adminAPI.HandleFunc("/services/{id:[0-9]+}/active", h.Catalog.SetActive).Methods("PATCH")
	adminAPI.HandleFunc("/payouts/{id:[0-9]+}/approve", h.Payout.Approve).Methods("POST")
	adminAPI.HandleFunc("/payouts/{id:[0-9]+}/mark-paid", h.Payout.MarkPaid).Methods("POST")
	adminAPI.HandleFunc("/payouts/{id:[0-9]+}/reject", h.Payout.Reject).Methods("POST")
	adminAPI.HandleFunc("/disputes/{id:[0-9]+}/resolve", h.Dispute.Resolve).Methods("POST")
	adminAPI.HandleFunc("/reports/bookings", h.Report.Bookings).Methods("GET")
	adminAPI.HandleFunc("/reports/payouts", h.Report.Payouts).Methods("GET")
	adminAPI.HandleFunc("/reports/revenue", h.Report.Revenue).Methods("GET")
	adminAPI.HandleFunc("/reports/{kind}/export", h.Report.Export).Methods("GET")
	adminAPI.HandleFunc("/audit/logins", h.Audit.Logins).Methods("GET")
	adminAPI.HandleFunc("/audit/actions", h.Audit.Actions).Methods("GET")

	// Cleaner-only API
	cleanerAPI := api.PathPrefix("/cleaner").Subrouter()
	cleanerAPI.Use(authMiddleware.RequireRole(auth.RoleCleaner))
	cleanerAPI.HandleFunc("/dashboard", h.Dashboard.Cleaner).Methods("GET")
	cleanerAPI.HandleFunc("/bookings", h.Booking.List).Methods("GET")
	cleanerAPI.HandleFunc("/bookings/{id:[0-9]+}", h.Booking.Get).Methods("GET")
	cleanerAPI.HandleFunc("/bookings/{id:[0-9]+}/status", h.Booking.UpdateStatus).Methods("PATCH")
	cleanerAPI.HandleFunc("/payouts", h.Payout.Request).Methods("POST")
	cleanerAPI.HandleFunc("/payouts/balance", h.Payout.Balance).Methods("GET")

	// Customer-only API
	customerAPI := api.PathPrefix("/customer").Subrouter()
	customerAPI.Use(authMiddleware.RequireRole(auth.RoleCustomer))
	customerAPI.HandleFunc("/dashboard", h.Dashboard.Customer).Methods("GET")
	customerAPI.HandleFunc("/bookings", h.Booking.List).Methods("GET")
	customerAPI.HandleFunc("/bookings", h.Booking.Create).Methods("POST")
	customerAPI.HandleFunc("/bookings/{id:[0-9]+}", h.Booking.Get).Methods("GET")
	customerAPI.HandleFunc("/bookings/{id:[0-9]+}/cancel", h.Booking.Cancel).Methods("POST")

	// HTML pages, guarded per route
	for _, route := range composition.Routes {
		app.Handle(route.Path, pageGuard(route, authMiddleware, h.Page.Page(route))).Methods("GET")
	}
	app.HandleFunc("/", h.Page.Index).Methods("GET")

	r.NotFoundHandler = http.HandlerFunc(h.Page.NotFound)
	return r
}

func pageGuard(route composition.RouteData, am *middleware.AuthMiddleware, page http.Handler) http.Handler {
	switch {
	case route.Public && route.Path == auth.SignInPath, route.Public && route.Path == "/sign-up":
		return am.RedirectIfAuthenticated(page)
	case route.Public:
		return page
	case route.RequiredRole != "":
		return am.RequireRole(route.RequiredRole)(page)
	default:
		return am.RequireAuth(page)
	}
}
