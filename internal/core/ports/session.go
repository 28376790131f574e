package ports

// SessionClaims is the identity carried by a validated session token.
type SessionClaims struct {
	PrincipalID string
	Name        string
	Role        string
}

// SessionIssuer mints and validates signed, time-bounded session tokens.
// Tokens are self-contained: validation requires no storage round trip.
// Validate fails with domain.ErrSessionExpired, ErrSessionMalformed or
// ErrSessionSignature; callers must not surface the distinction.
type SessionIssuer interface {
	Issue(principalID, name, role string) (string, error)
	Validate(token string) (*SessionClaims, error)
}
