package services

import (
	"context"

	"icc-dashboard/internal/backend"
	"icc-dashboard/internal/models"
)

// CatalogService manages the bookable services. Admins edit the catalogue,
// customers read the active part of it.
type CatalogService struct {
	admin    *backend.Resource[models.Service]
	customer *backend.Resource[models.Service]
}

func NewCatalogService(client *backend.Client) *CatalogService {
	return &CatalogService{
		admin:    backend.NewResource[models.Service](client, backend.AdminPrefix, "services"),
		customer: backend.NewResource[models.Service](client, backend.CustomerPrefix, "services"),
	}
}

func (s *CatalogService) List(ctx context.Context) ([]models.Service, error) {
	return s.admin.List(ctx, nil)
}

func (s *CatalogService) ListActive(ctx context.Context) ([]models.Service, error) {
	return s.customer.List(ctx, nil)
}

func (s *CatalogService) Create(ctx context.Context, req *models.ServiceRequest) (*models.Service, error) {
	return s.admin.Create(ctx, req)
}

func (s *CatalogService) Update(ctx context.Context, id int, req *models.ServiceRequest) (*models.Service, error) {
	return s.admin.Update(ctx, id, req)
}

func (s *CatalogService) Delete(ctx context.Context, id int) error {
	return s.admin.Delete(ctx, id)
}

func (s *CatalogService) SetActive(ctx context.Context, id int, active bool) (*models.Service, error) {
	return s.admin.Patch(ctx, id, map[string]bool{"is_active": active})
}
