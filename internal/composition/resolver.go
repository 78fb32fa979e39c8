package composition

import (
	"errors"

	"icc-dashboard/internal/auth"
)

// ErrNoMapping is returned for a route name the resolver has no entry for.
var ErrNoMapping = errors.New("composition: no component mapping for route")

// Component is one role-specific implementation of a page: the view template
// mounted into the shell and the JSON endpoint it reads its rows from.
type Component struct {
	Name     string
	Title    string
	Template string
	DataURL  string
}

// ComponentFactory builds a Component on demand.
type ComponentFactory func() Component

func component(name, title, tpl, dataURL string) ComponentFactory {
	return func() Component {
		return Component{Name: name, Title: title, Template: tpl, DataURL: dataURL}
	}
}

// Resolver picks the component implementation for (route, role).
type Resolver struct {
	table map[string]map[auth.Role]ComponentFactory
}

// NewResolver returns the resolver with the dashboard's role-keyed routes.
func NewResolver() *Resolver {
	return &Resolver{table: map[string]map[auth.Role]ComponentFactory{
		"dashboard": {
			auth.RoleAdmin:    component("admin-dashboard", "Dashboard", "admin_dashboard.html", "/api/admin/dashboard"),
			auth.RoleCleaner:  component("cleaner-dashboard", "Dashboard", "cleaner_dashboard.html", "/api/cleaner/dashboard"),
			auth.RoleCustomer: component("customer-dashboard", "Dashboard", "customer_dashboard.html", "/api/customer/dashboard"),
		},
		"booking": {
			auth.RoleAdmin:    component("admin-booking", "Bookings", "admin_booking.html", "/api/admin/bookings"),
			auth.RoleCleaner:  component("cleaner-booking", "My Bookings", "cleaner_booking.html", "/api/cleaner/bookings"),
			auth.RoleCustomer: component("customer-booking", "My Bookings", "customer_booking.html", "/api/customer/bookings"),
		},
	}}
}

// Register adds or replaces the factory for (route, role).
func (r *Resolver) Register(route string, role auth.Role, f ComponentFactory) {
	if r.table[route] == nil {
		r.table[route] = make(map[auth.Role]ComponentFactory)
	}
	r.table[route][role] = f
}

// Resolve returns the factory for route and role. A mapped route without an
// entry for role falls back to the admin variant; an unmapped route yields
// ErrNoMapping.
func (r *Resolver) Resolve(route, role string) (ComponentFactory, error) {
	byRole, ok := r.table[route]
	if !ok || len(byRole) == 0 {
		return nil, ErrNoMapping
	}
	if f, ok := byRole[auth.Role(role)]; ok {
		return f, nil
	}
	if f, ok := byRole[auth.RoleAdmin]; ok {
		return f, nil
	}
	return nil, ErrNoMapping
}
