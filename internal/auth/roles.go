package auth

import "strings"

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleCleaner  Role = "cleaner"
	RoleCustomer Role = "customer"
)

const SignInPath = "/sign-in"

// Roles lists every role the dashboard knows about.
var Roles = []Role{RoleAdmin, RoleCleaner, RoleCustomer}

// ParseRole accepts the role strings the backend sends.
func ParseRole(s string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleAdmin:
		return RoleAdmin, true
	case RoleCleaner:
		return RoleCleaner, true
	case RoleCustomer:
		return RoleCustomer, true
	}
	return "", false
}

// DashboardPath maps a role to its landing page. Anything that is not a known
// role lands on the sign-in page. The guard and the post-login redirect both
// go through here.
func DashboardPath(role string) string {
	switch Role(role) {
	case RoleAdmin:
		return "/admin/dashboard"
	case RoleCleaner:
		return "/cleaner/dashboard"
	case RoleCustomer:
		return "/customer/dashboard"
	default:
		return SignInPath
	}
}
