package services

import (
	"icc-dashboard/internal/backend"
)

// RoleResource is one backend collection that exists under every role's API
// family (dashboard, disputes, bookings, payment methods). It replaces a copy
// of the same service per role.
type RoleResource[T any] struct {
	client *backend.Client
	name   string
}

func NewRoleResource[T any](client *backend.Client, name string) *RoleResource[T] {
	return &RoleResource[T]{client: client, name: name}
}

// For returns the collection under role's prefix.
func (r *RoleResource[T]) For(role string) (*backend.Resource[T], error) {
	prefix, err := backend.PrefixFor(role)
	if err != nil {
		return nil, err
	}
	return backend.NewResource[T](r.client, prefix, r.name), nil
}
