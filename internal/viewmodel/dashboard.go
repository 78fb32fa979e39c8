package viewmodel

import (
	"strconv"

	"icc-dashboard/internal/models"
)

func itoa(n int) string {
	return strconv.Itoa(n)
}

// StatCard is one tile on a dashboard.
type StatCard struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Icon  string `json:"icon"`
}

type ChartSeries struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

type DashboardView struct {
	Cards  []StatCard   `json:"cards"`
	Chart  *ChartSeries `json:"chart,omitempty"`
	Recent []BookingRow `json:"recent"`
}

func chart(points []models.MonthlyPoint) *ChartSeries {
	if len(points) == 0 {
		return nil
	}
	c := &ChartSeries{
		Labels: make([]string, 0, len(points)),
		Values: make([]float64, 0, len(points)),
	}
	for _, p := range points {
		c.Labels = append(c.Labels, p.Month)
		c.Values = append(c.Values, ParseAmount(p.Amount))
	}
	return c
}

func MapAdminDashboard(d models.AdminDashboard) DashboardView {
	return DashboardView{
		Cards: []StatCard{
			{Label: "Total Bookings", Value: itoa(d.TotalBookings), Icon: "pi pi-calendar"},
			{Label: "Pending Bookings", Value: itoa(d.PendingBookings), Icon: "pi pi-clock"},
			{Label: "Active Cleaners", Value: itoa(d.ActiveCleaners) + " / " + itoa(d.TotalCleaners), Icon: "pi pi-users"},
			{Label: "Clients", Value: itoa(d.TotalClients), Icon: "pi pi-user"},
			{Label: "Revenue", Value: FormatAmountString(d.TotalRevenue), Icon: "pi pi-pound"},
			{Label: "Pending Payouts", Value: itoa(d.PendingPayouts), Icon: "pi pi-wallet"},
			{Label: "Open Disputes", Value: itoa(d.OpenDisputes), Icon: "pi pi-exclamation-triangle"},
		},
		Chart:  chart(d.MonthlyRevenue),
		Recent: MapBookings(d.RecentBookings),
	}
}

func MapCleanerDashboard(d models.CleanerDashboard) DashboardView {
	return DashboardView{
		Cards: []StatCard{
			{Label: "Upcoming Jobs", Value: itoa(d.UpcomingJobs), Icon: "pi pi-calendar"},
			{Label: "Completed Jobs", Value: itoa(d.CompletedJobs), Icon: "pi pi-check"},
			{Label: "Total Earnings", Value: FormatAmountString(d.TotalEarnings), Icon: "pi pi-pound"},
			{Label: "Available Balance", Value: FormatAmountString(d.Balance.Available), Icon: "pi pi-wallet"},
			{Label: "Rating", Value: strconv.FormatFloat(d.Rating, 'f', 1, 64), Icon: "pi pi-star"},
		},
		Recent: MapBookings(d.NextBookings),
	}
}

func MapCustomerDashboard(d models.CustomerDashboard) DashboardView {
	return DashboardView{
		Cards: []StatCard{
			{Label: "Upcoming Bookings", Value: itoa(d.UpcomingBookings), Icon: "pi pi-calendar"},
			{Label: "Completed Bookings", Value: itoa(d.CompletedBookings), Icon: "pi pi-check"},
			{Label: "Total Spent", Value: FormatAmountString(d.TotalSpent), Icon: "pi pi-pound"},
			{Label: "Open Disputes", Value: itoa(d.OpenDisputes), Icon: "pi pi-exclamation-triangle"},
		},
		Recent: MapBookings(d.RecentBookings),
	}
}
