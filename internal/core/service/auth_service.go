package service

import (
	"context"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/voyariestuff/tours-api/internal/core/domain"
	"github.com/voyariestuff/tours-api/internal/core/ports"
)

// AuthService implements registration and login for both role partitions.
//
// The stored digest is bcrypt (salted, slow, constant-time compare) rather
// than the fast unsalted hash a low-stakes demo might use; treat that as a
// required property of the credential store, not an implementation detail.
type AuthService struct {
	repo        ports.PrincipalRepository
	sessions    ports.SessionIssuer
	adminDomain string // e.g. "voyariestuff.com"
}

func NewAuthService(repo ports.PrincipalRepository, sessions ports.SessionIssuer, adminDomain string) *AuthService {
	return &AuthService{
		repo:        repo,
		sessions:    sessions,
		adminDomain: strings.ToLower(strings.TrimPrefix(adminDomain, "@")),
	}
}

// RegisterClient creates a client principal. Reserved-domain emails are
// rejected so the client partition can never shadow an admin address.
func (s *AuthService) RegisterClient(ctx context.Context, name, email, password string) (*domain.Principal, error) {
	name, email = strings.TrimSpace(name), normalizeEmail(email)
	if name == "" || email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if s.isAdminEmail(email) {
		return nil, domain.ErrClientDomainReserved
	}
	return s.register(ctx, name, email, password, domain.RoleClient)
}

// RegisterAdmin creates an admin principal. The email must carry the
// reserved admin domain suffix.
func (s *AuthService) RegisterAdmin(ctx context.Context, name, email, password string) (*domain.Principal, error) {
	name, email = strings.TrimSpace(name), normalizeEmail(email)
	if name == "" || email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if !s.isAdminEmail(email) {
		return nil, domain.ErrAdminDomainRequired
	}
	return s.register(ctx, name, email, password, domain.RoleAdmin)
}

func (s *AuthService) register(ctx context.Context, name, email, password, role string) (*domain.Principal, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	p := &domain.Principal{
		Name:         name,
		Email:        email,
		Role:         role,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	return s.repo.Create(ctx, p)
}

// Login verifies the secret and issues a session token. The role partition
// is derived from the email domain, mirroring registration. Unknown email
// and wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.Principal, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	role := domain.RoleClient
	if s.isAdminEmail(email) {
		role = domain.RoleAdmin
	}

	p, err := s.repo.FindByEmail(ctx, role, email)
	if err != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	if !verifySecret(p.PasswordHash, password) {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.sessions.Issue(p.ID, p.Name, p.Role)
	if err != nil {
		return "", nil, err
	}
	return token, p, nil
}

func (s *AuthService) isAdminEmail(email string) bool {
	return strings.HasSuffix(email, "@"+s.adminDomain)
}

// verifySecret fails closed: an absent or malformed stored digest is "no
// match", never "skip check".
func verifySecret(storedDigest, secret string) bool {
	if storedDigest == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(storedDigest), []byte(secret)) == nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
