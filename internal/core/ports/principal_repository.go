package ports

import (
	"context"

	"github.com/voyariestuff/tours-api/internal/core/domain"
)

// PrincipalRepository defines persistence for principals. Email lookups are
// always scoped to a role partition; the store enforces uniqueness of the
// normalized email per role.
type PrincipalRepository interface {
	FindByEmail(ctx context.Context, role, email string) (*domain.Principal, error)
	Create(ctx context.Context, p *domain.Principal) (*domain.Principal, error)
}
