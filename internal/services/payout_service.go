package services

import (
	"context"
	"net/url"

	"icc-dashboard/internal/backend"
	"icc-dashboard/internal/models"
)

type PayoutService struct {
	client  *backend.Client
	admin   *backend.Resource[models.Payout]
	cleaner *backend.Resource[models.Payout]
}

func NewPayoutService(client *backend.Client) *PayoutService {
	return &PayoutService{
		client:  client,
		admin:   backend.NewResource[models.Payout](client, backend.AdminPrefix, "payouts"),
		cleaner: backend.NewResource[models.Payout](client, backend.CleanerPrefix, "payouts"),
	}
}

// ListAll returns every payout request (admin).
func (s *PayoutService) ListAll(ctx context.Context, status string) ([]models.Payout, error) {
	var q url.Values
	if status != "" {
		q = url.Values{"status": {status}}
	}
	return s.admin.List(ctx, q)
}

func (s *PayoutService) Approve(ctx context.Context, id int) (*models.Payout, error) {
	return s.admin.Action(ctx, id, "approve", nil)
}

func (s *PayoutService) MarkPaid(ctx context.Context, id int) (*models.Payout, error) {
	return s.admin.Action(ctx, id, "mark-paid", nil)
}

func (s *PayoutService) Reject(ctx context.Context, id int, req *models.RejectPayoutRequest) (*models.Payout, error) {
	return s.admin.Action(ctx, id, "reject", req)
}

// ListOwn returns the signed-in cleaner's payouts.
func (s *PayoutService) ListOwn(ctx context.Context) ([]models.Payout, error) {
	return s.cleaner.List(ctx, nil)
}

// Request asks for a payout of part of the cleaner's balance.
func (s *PayoutService) Request(ctx context.Context, req *models.PayoutRequest) (*models.Payout, error) {
	return s.cleaner.Create(ctx, req)
}

func (s *PayoutService) Balance(ctx context.Context) (*models.CleanerBalance, error) {
	env, err := backend.Get[models.CleanerBalance](ctx, s.client, backend.Path(backend.CleanerPrefix, "balance"), nil)
	if err != nil {
		return nil, err
	}
	return &env.Data, nil
}
