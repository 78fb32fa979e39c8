package services

import (
	"context"

	"icc-dashboard/internal/backend"
	"icc-dashboard/internal/models"
)

// BillingService manages saved payment methods for cleaners (payout
// destinations) and customers (cards). Failures are normalised.
type BillingService struct {
	methods *RoleResource[models.PaymentMethod]
}

func NewBillingService(client *backend.Client) *BillingService {
	return &BillingService{methods: NewRoleResource[models.PaymentMethod](client, "payment-methods")}
}

func (s *BillingService) List(ctx context.Context, role string) ([]models.PaymentMethod, error) {
	res, err := s.methods.For(role)
	if err != nil {
		return nil, backend.Normalize(err)
	}
	methods, err := res.List(ctx, nil)
	return methods, backend.Normalize(err)
}

func (s *BillingService) Create(ctx context.Context, role string, req *models.PaymentMethodRequest) (*models.PaymentMethod, error) {
	res, err := s.methods.For(role)
	if err != nil {
		return nil, backend.Normalize(err)
	}
	pm, err := res.Create(ctx, req)
	if err != nil {
		return nil, backend.Normalize(err)
	}
	return pm, nil
}

func (s *BillingService) Delete(ctx context.Context, role string, id int) error {
	res, err := s.methods.For(role)
	if err != nil {
		return backend.Normalize(err)
	}
	return backend.Normalize(res.Delete(ctx, id))
}

func (s *BillingService) SetDefault(ctx context.Context, role string, id int) (*models.PaymentMethod, error) {
	res, err := s.methods.For(role)
	if err != nil {
		return nil, backend.Normalize(err)
	}
	pm, err := res.Action(ctx, id, "set-default", nil)
	if err != nil {
		return nil, backend.Normalize(err)
	}
	return pm, nil
}
