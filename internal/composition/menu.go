package composition

import "icc-dashboard/internal/auth"

// CommandLogout is the menu command that signs the user out.
const CommandLogout = "logout"

type MenuItem struct {
	Label      string `json:"label"`
	Icon       string `json:"icon"`
	RouterLink string `json:"routerLink,omitempty"`
	Command    string `json:"command,omitempty"`
}

type MenuSection struct {
	Label string     `json:"label"`
	Items []MenuItem `json:"items"`
}

var roleMenus = map[auth.Role][]MenuItem{
	auth.RoleAdmin: {
		{Label: "Dashboard", Icon: "pi pi-fw pi-home", RouterLink: "/admin/dashboard"},
		{Label: "Bookings", Icon: "pi pi-fw pi-calendar", RouterLink: "/booking"},
		{Label: "Cleaners", Icon: "pi pi-fw pi-users", RouterLink: "/cleaners"},
		{Label: "Clients", Icon: "pi pi-fw pi-user", RouterLink: "/clients"},
		{Label: "Services", Icon: "pi pi-fw pi-briefcase", RouterLink: "/services"},
		{Label: "Payouts", Icon: "pi pi-fw pi-wallet", RouterLink: "/payouts"},
		{Label: "Disputes", Icon: "pi pi-fw pi-exclamation-triangle", RouterLink: "/disputes"},
		{Label: "Reports", Icon: "pi pi-fw pi-chart-bar", RouterLink: "/reports"},
		{Label: "Settings", Icon: "pi pi-fw pi-cog", RouterLink: "/settings"},
	},
	auth.RoleCleaner: {
		{Label: "Dashboard", Icon: "pi pi-fw pi-home", RouterLink: "/cleaner/dashboard"},
		{Label: "My Bookings", Icon: "pi pi-fw pi-calendar", RouterLink: "/booking"},
		{Label: "Payouts", Icon: "pi pi-fw pi-wallet", RouterLink: "/payouts"},
		{Label: "Disputes", Icon: "pi pi-fw pi-exclamation-triangle", RouterLink: "/disputes"},
		{Label: "Billing", Icon: "pi pi-fw pi-credit-card", RouterLink: "/billing"},
		{Label: "Settings", Icon: "pi pi-fw pi-cog", RouterLink: "/settings"},
	},
	auth.RoleCustomer: {
		{Label: "Dashboard", Icon: "pi pi-fw pi-home", RouterLink: "/customer/dashboard"},
		{Label: "My Bookings", Icon: "pi pi-fw pi-calendar", RouterLink: "/booking"},
		{Label: "Disputes", Icon: "pi pi-fw pi-exclamation-triangle", RouterLink: "/disputes"},
		{Label: "Billing", Icon: "pi pi-fw pi-credit-card", RouterLink: "/billing"},
		{Label: "Settings", Icon: "pi pi-fw pi-cog", RouterLink: "/settings"},
	},
}

// BuildMenu returns the sidebar for role: a MAIN section with the role's
// pages, then an ACCOUNT section whose Logout item is always present. An
// unknown role gets an empty MAIN section.
func BuildMenu(role string) []MenuSection {
	src := roleMenus[auth.Role(role)]
	items := make([]MenuItem, len(src))
	copy(items, src)

	return []MenuSection{
		{Label: "MAIN", Items: items},
		{Label: "ACCOUNT", Items: []MenuItem{
			{Label: "Logout", Icon: "pi pi-fw pi-sign-out", Command: CommandLogout},
		}},
	}
}
