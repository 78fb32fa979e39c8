package backend

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Backend API families. Every role talks to its own prefix.
const (
	AuthPrefix     = "/auths/api"
	AdminPrefix    = "/super-admin/api"
	CleanerPrefix  = "/cleaner/api"
	CustomerPrefix = "/customer/api"
	ReportPrefix   = "/report/api"
)

// ErrUnknownRole means a user's role has no backend API family.
var ErrUnknownRole = errors.New("unknown user role")

// PrefixFor returns the API family for a user role.
func PrefixFor(role string) (string, error) {
	switch role {
	case "admin":
		return AdminPrefix, nil
	case "cleaner":
		return CleanerPrefix, nil
	case "customer":
		return CustomerPrefix, nil
	default:
		return "", fmt.Errorf("no backend prefix for role %q: %w", role, ErrUnknownRole)
	}
}

// Path joins a prefix and path segments into the backend's trailing-slash form.
func Path(prefix string, segments ...string) string {
	var b strings.Builder
	b.WriteString(strings.TrimRight(prefix, "/"))
	for _, s := range segments {
		s = strings.Trim(s, "/")
		if s == "" {
			continue
		}
		b.WriteByte('/')
		b.WriteString(s)
	}
	b.WriteByte('/')
	return b.String()
}

// Resource is a REST collection of T under one API family, e.g.
// /super-admin/api/bookings/.
type Resource[T any] struct {
	client *Client
	prefix string
	name   string
}

func NewResource[T any](c *Client, prefix, name string) *Resource[T] {
	return &Resource[T]{client: c, prefix: prefix, name: name}
}

func (r *Resource[T]) path(parts ...string) string {
	return Path(r.prefix, append([]string{r.name}, parts...)...)
}

func id(v int) string {
	return fmt.Sprintf("%d", v)
}

func (r *Resource[T]) List(ctx context.Context, query url.Values) ([]T, error) {
	env, err := Get[[]T](ctx, r.client, r.path(), query)
	if err != nil {
		return nil, err
	}
	if env.Data == nil {
		return []T{}, nil
	}
	return env.Data, nil
}

func (r *Resource[T]) Get(ctx context.Context, itemID int) (*T, error) {
	env, err := Get[T](ctx, r.client, r.path(id(itemID)), nil)
	if err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// Fetch reads a singleton resource such as dashboard/ or profile/.
func (r *Resource[T]) Fetch(ctx context.Context, query url.Values) (*T, error) {
	env, err := Get[T](ctx, r.client, r.path(), query)
	if err != nil {
		return nil, err
	}
	return &env.Data, nil
}

func (r *Resource[T]) Create(ctx context.Context, body any) (*T, error) {
	env, err := Post[T](ctx, r.client, r.path(), body)
	if err != nil {
		return nil, err
	}
	return &env.Data, nil
}

func (r *Resource[T]) Update(ctx context.Context, itemID int, body any) (*T, error) {
	env, err := Put[T](ctx, r.client, r.path(id(itemID)), body)
	if err != nil {
		return nil, err
	}
	return &env.Data, nil
}

func (r *Resource[T]) Patch(ctx context.Context, itemID int, body any) (*T, error) {
	env, err := Patch[T](ctx, r.client, r.path(id(itemID)), body)
	if err != nil {
		return nil, err
	}
	return &env.Data, nil
}

func (r *Resource[T]) Delete(ctx context.Context, itemID int) error {
	_, err := Delete[struct{}](ctx, r.client, r.path(id(itemID)))
	return err
}

// Action posts to a sub-resource of one item, e.g. payouts/4/approve/.
func (r *Resource[T]) Action(ctx context.Context, itemID int, action string, body any) (*T, error) {
	env, err := Post[T](ctx, r.client, r.path(id(itemID), action), body)
	if err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// PatchAction patches a sub-resource of one item, e.g. bookings/4/status/.
func (r *Resource[T]) PatchAction(ctx context.Context, itemID int, action string, body any) (*T, error) {
	env, err := Patch[T](ctx, r.client, r.path(id(itemID), action), body)
	if err != nil {
		return nil, err
	}
	return &env.Data, nil
}
