package services

import (
	"context"
	"net/url"

	"icc-dashboard/internal/backend"
	"icc-dashboard/internal/models"
)

// BookingService covers the three booking views: admin (all bookings,
// assignment), cleaner (own jobs) and customer (own bookings).
type BookingService struct {
	bookings *RoleResource[models.Booking]
	admin    *backend.Resource[models.Booking]
	customer *backend.Resource[models.Booking]
}

func NewBookingService(client *backend.Client) *BookingService {
	return &BookingService{
		bookings: NewRoleResource[models.Booking](client, "bookings"),
		admin:    backend.NewResource[models.Booking](client, backend.AdminPrefix, "bookings"),
		customer: backend.NewResource[models.Booking](client, backend.CustomerPrefix, "bookings"),
	}
}

// List returns the bookings visible to role, optionally filtered by status.
func (s *BookingService) List(ctx context.Context, role, status string) ([]models.Booking, error) {
	res, err := s.bookings.For(role)
	if err != nil {
		return nil, err
	}
	var q url.Values
	if status != "" {
		q = url.Values{"status": {status}}
	}
	return res.List(ctx, q)
}

func (s *BookingService) Get(ctx context.Context, role string, id int) (*models.Booking, error) {
	res, err := s.bookings.For(role)
	if err != nil {
		return nil, err
	}
	return res.Get(ctx, id)
}

// AssignCleaner is admin only.
func (s *BookingService) AssignCleaner(ctx context.Context, id int, req *models.AssignCleanerRequest) (*models.Booking, error) {
	return s.admin.Action(ctx, id, "assign", req)
}

// UpdateStatus is used by admins and by cleaners on their own jobs.
func (s *BookingService) UpdateStatus(ctx context.Context, role string, id int, req *models.BookingStatusRequest) (*models.Booking, error) {
	res, err := s.bookings.For(role)
	if err != nil {
		return nil, err
	}
	return res.PatchAction(ctx, id, "status", req)
}

// Create books a service as the signed-in customer.
func (s *BookingService) Create(ctx context.Context, req *models.CreateBookingRequest) (*models.Booking, error) {
	return s.customer.Create(ctx, req)
}

// Cancel cancels one of the customer's bookings.
func (s *BookingService) Cancel(ctx context.Context, id int) (*models.Booking, error) {
	return s.customer.Action(ctx, id, "cancel", nil)
}
