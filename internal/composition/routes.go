package composition

import "icc-dashboard/internal/auth"

// RouteData describes one page of the routing surface. A route either names
// a resolver entry (Resolve) or mounts a fixed view (Template).
type RouteData struct {
	Path         string
	Title        string
	Resolve      string
	Template     string
	DataURL      string
	RequiredRole auth.Role
	Public       bool
}

// Routes is the page surface of the dashboard. Anything else falls through
// to "/", which lands on /dashboard.
var Routes = []RouteData{
	{Path: auth.SignInPath, Title: "Sign In", Template: "sign_in.html", Public: true},
	{Path: "/sign-up", Title: "Create Account", Template: "sign_up.html", Public: true},
	{Path: "/verify-email", Title: "Verify Email", Template: "verify_email.html", Public: true},

	{Path: "/dashboard", Title: "Dashboard", Resolve: "dashboard"},
	{Path: "/booking", Title: "Bookings", Resolve: "booking"},

	{Path: "/admin/dashboard", Title: "Dashboard", Template: "admin_dashboard.html", DataURL: "/api/admin/dashboard", RequiredRole: auth.RoleAdmin},
	{Path: "/cleaner/dashboard", Title: "Dashboard", Template: "cleaner_dashboard.html", DataURL: "/api/cleaner/dashboard", RequiredRole: auth.RoleCleaner},
	{Path: "/customer/dashboard", Title: "Dashboard", Template: "customer_dashboard.html", DataURL: "/api/customer/dashboard", RequiredRole: auth.RoleCustomer},

	{Path: "/cleaners", Title: "Cleaners", Template: "cleaners.html", DataURL: "/api/admin/cleaners", RequiredRole: auth.RoleAdmin},
	{Path: "/clients", Title: "Clients", Template: "clients.html", DataURL: "/api/admin/clients", RequiredRole: auth.RoleAdmin},
	{Path: "/services", Title: "Services", Template: "services.html", DataURL: "/api/admin/services", RequiredRole: auth.RoleAdmin},
	{Path: "/reports", Title: "Reports", Template: "reports.html", DataURL: "/api/admin/reports/bookings", RequiredRole: auth.RoleAdmin},

	{Path: "/payouts", Title: "Payouts", Template: "payouts.html", DataURL: "/api/payouts"},
	{Path: "/disputes", Title: "Disputes", Template: "disputes.html", DataURL: "/api/disputes"},
	{Path: "/billing", Title: "Billing", Template: "billing.html", DataURL: "/api/billing/payment-methods"},
	{Path: "/settings", Title: "Settings", Template: "settings.html", DataURL: "/api/settings/profile"},
}

// Lookup returns the route registered for path.
func Lookup(path string) (RouteData, bool) {
	for _, r := range Routes {
		if r.Path == path {
			return r, true
		}
	}
	return RouteData{}, false
}
