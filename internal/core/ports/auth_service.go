package ports

import (
	"context"

	"github.com/voyariestuff/tours-api/internal/core/domain"
)

// AuthService implements registration and login. Registration is split by
// role: client emails must not use the reserved admin domain, admin emails
// must. Login picks the partition from the email's domain.
type AuthService interface {
	RegisterClient(ctx context.Context, name, email, password string) (*domain.Principal, error)
	RegisterAdmin(ctx context.Context, name, email, password string) (*domain.Principal, error)
	Login(ctx context.Context, email, password string) (string, *domain.Principal, error)
}
