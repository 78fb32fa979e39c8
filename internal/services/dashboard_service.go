package services

import (
	"context"

	"icc-dashboard/internal/backend"
	"icc-dashboard/internal/models"
)

type DashboardService struct {
	admin    *backend.Resource[models.AdminDashboard]
	cleaner  *backend.Resource[models.CleanerDashboard]
	customer *backend.Resource[models.CustomerDashboard]
}

func NewDashboardService(client *backend.Client) *DashboardService {
	return &DashboardService{
		admin:    backend.NewResource[models.AdminDashboard](client, backend.AdminPrefix, "dashboard"),
		cleaner:  backend.NewResource[models.CleanerDashboard](client, backend.CleanerPrefix, "dashboard"),
		customer: backend.NewResource[models.CustomerDashboard](client, backend.CustomerPrefix, "dashboard"),
	}
}

func (s *DashboardService) Admin(ctx context.Context) (*models.AdminDashboard, error) {
	return s.admin.Fetch(ctx, nil)
}

func (s *DashboardService) Cleaner(ctx context.Context) (*models.CleanerDashboard, error) {
	return s.cleaner.Fetch(ctx, nil)
}

func (s *DashboardService) Customer(ctx context.Context) (*models.CustomerDashboard, error) {
	return s.customer.Fetch(ctx, nil)
}
