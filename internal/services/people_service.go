package services

import (
	"context"
	"net/url"

	"icc-dashboard/internal/backend"
	"icc-dashboard/internal/models"
)

// CleanerService is the admin view of cleaners.
type CleanerService struct {
	cleaners *backend.Resource[models.User]
}

func NewCleanerService(client *backend.Client) *CleanerService {
	return &CleanerService{cleaners: backend.NewResource[models.User](client, backend.AdminPrefix, "cleaners")}
}

func (s *CleanerService) GetCleaners(ctx context.Context, search string) ([]models.User, error) {
	var q url.Values
	if search != "" {
		q = url.Values{"search": {search}}
	}
	return s.cleaners.List(ctx, q)
}

func (s *CleanerService) Get(ctx context.Context, id int) (*models.User, error) {
	return s.cleaners.Get(ctx, id)
}

// UpdateStatus activates, suspends or verifies a cleaner.
func (s *CleanerService) UpdateStatus(ctx context.Context, id int, req *models.StatusUpdateRequest) (*models.User, error) {
	return s.cleaners.PatchAction(ctx, id, "status", req)
}

// ClientService is the admin view of customers.
type ClientService struct {
	clients *backend.Resource[models.User]
}

func NewClientService(client *backend.Client) *ClientService {
	return &ClientService{clients: backend.NewResource[models.User](client, backend.AdminPrefix, "clients")}
}

func (s *ClientService) GetClients(ctx context.Context, search string) ([]models.User, error) {
	var q url.Values
	if search != "" {
		q = url.Values{"search": {search}}
	}
	return s.clients.List(ctx, q)
}

func (s *ClientService) Get(ctx context.Context, id int) (*models.User, error) {
	return s.clients.Get(ctx, id)
}

func (s *ClientService) SetActive(ctx context.Context, id int, active bool) (*models.User, error) {
	return s.clients.PatchAction(ctx, id, "status", &models.StatusUpdateRequest{IsActive: active})
}
