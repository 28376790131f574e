package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/voyariestuff/tours-api/internal/core/domain"
	"github.com/voyariestuff/tours-api/internal/core/ports"
)

const defaultTokenTTL = time.Hour

// SessionService mints and validates HS256-signed session tokens. Tokens are
// self-contained (principal id, name, role, issued-at, expiry); there is no
// server-side session store and no revocation before expiry.
type SessionService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

type sessionClaims struct {
	Name string `json:"name,omitempty"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

func NewSessionService(secret string, ttl time.Duration) *SessionService {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &SessionService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue returns a signed token expiring TTL from now.
func (s *SessionService) Issue(principalID, name, role string) (string, error) {
	now := s.now().UTC()
	claims := sessionClaims{
		Name: name,
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   principalID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Validate parses and verifies a token. Failures are reported as one of the
// domain session errors so callers can log the kind while returning a
// uniform unauthorized response.
func (s *SessionService) Validate(token string) (*ports.SessionClaims, error) {
	claims := &sessionClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return s.now() }))
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, domain.ErrSessionExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, domain.ErrSessionSignature
		default:
			return nil, domain.ErrSessionMalformed
		}
	}
	if !tkn.Valid || claims.Subject == "" || claims.Role == "" {
		return nil, domain.ErrSessionMalformed
	}

	return &ports.SessionClaims{
		PrincipalID: claims.Subject,
		Name:        claims.Name,
		Role:        claims.Role,
	}, nil
}
