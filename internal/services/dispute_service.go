package services

import (
	"context"
	"net/url"

	"icc-dashboard/internal/backend"
	"icc-dashboard/internal/models"
)

// DisputeService serves all three roles through one role-keyed resource;
// resolving is admin only.
type DisputeService struct {
	disputes *RoleResource[models.Dispute]
	comments *RoleResource[models.DisputeComment]
	admin    *backend.Resource[models.Dispute]
}

func NewDisputeService(client *backend.Client) *DisputeService {
	return &DisputeService{
		disputes: NewRoleResource[models.Dispute](client, "disputes"),
		comments: NewRoleResource[models.DisputeComment](client, "disputes"),
		admin:    backend.NewResource[models.Dispute](client, backend.AdminPrefix, "disputes"),
	}
}

func (s *DisputeService) List(ctx context.Context, role, status string) ([]models.Dispute, error) {
	res, err := s.disputes.For(role)
	if err != nil {
		return nil, err
	}
	var q url.Values
	if status != "" {
		q = url.Values{"status": {status}}
	}
	return res.List(ctx, q)
}

func (s *DisputeService) Get(ctx context.Context, role string, id int) (*models.Dispute, error) {
	res, err := s.disputes.For(role)
	if err != nil {
		return nil, err
	}
	return res.Get(ctx, id)
}

func (s *DisputeService) Create(ctx context.Context, role string, req *models.CreateDisputeRequest) (*models.Dispute, error) {
	res, err := s.disputes.For(role)
	if err != nil {
		return nil, err
	}
	return res.Create(ctx, req)
}

func (s *DisputeService) Comment(ctx context.Context, role string, id int, req *models.DisputeCommentRequest) (*models.DisputeComment, error) {
	res, err := s.comments.For(role)
	if err != nil {
		return nil, err
	}
	return res.Action(ctx, id, "comments", req)
}

func (s *DisputeService) Resolve(ctx context.Context, id int, req *models.ResolveDisputeRequest) (*models.Dispute, error) {
	return s.admin.Action(ctx, id, "resolve", req)
}
