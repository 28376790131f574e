package domain

import (
	"errors"
	"time"
)

const (
	RoleAdmin  = "admin"
	RoleClient = "client"
)

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrPrincipalNotFound = errors.New("principal not found")
var ErrPrincipalExists = errors.New("email already registered")
var ErrAdminDomainRequired = errors.New("admin email must use the reserved domain")
var ErrClientDomainReserved = errors.New("cannot register a reserved-domain email as client")
var ErrForbidden = errors.New("access forbidden")

// Session validation failure kinds. The transport layer collapses all of
// them into a generic 401 so callers cannot tell which check failed.
var ErrSessionExpired = errors.New("session expired")
var ErrSessionMalformed = errors.New("session token malformed")
var ErrSessionSignature = errors.New("session signature mismatch")

// Principal models an authenticated actor: a client or an admin.
// Role is carried explicitly; uniqueness of the normalized email is
// enforced per role partition by the persistence layer.
type Principal struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
