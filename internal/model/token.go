package model

import "github.com/google/uuid"

// TokenIssuer generates opaque capability tokens for forestry records.
type TokenIssuer interface {
	Issue() string
}

// SessionManager generates and validates admin session tokens.
type SessionManager interface {
	GenerateAccessToken(userID uuid.UUID, role Role) (string, error)
	ParseAccessToken(token string) (uuid.UUID, Role, error)
}

// TokenStatus is the verdict of a capability token validation.
type TokenStatus string

const (
	// TokenStatusValid means the token resolves to a record and has not expired.
	TokenStatusValid TokenStatus = "valid"
	// TokenStatusExpired means the token resolves to a record whose expiration
	// date is in the past.
	TokenStatusExpired TokenStatus = "expired"
	// TokenStatusNotFound means no record owns the token.
	TokenStatusNotFound TokenStatus = "not_found"
)

// TokenValidationResult carries the tri-state verdict of token validation.
// Callers must branch on all three states.
type TokenValidationResult struct {
	Status  TokenStatus
	Message string
}

// TokenValid builds a valid verdict.
func TokenValid() TokenValidationResult {
	return TokenValidationResult{Status: TokenStatusValid, Message: "Token is valid."}
}

// TokenExpired builds an expired verdict.
func TokenExpired() TokenValidationResult {
	return TokenValidationResult{Status: TokenStatusExpired, Message: "Token has expired."}
}

// TokenNotFound builds a not-found verdict.
func TokenNotFound() TokenValidationResult {
	return TokenValidationResult{Status: TokenStatusNotFound, Message: "Token not found."}
}

// IsValid reports whether the verdict permits access.
func (r TokenValidationResult) IsValid() bool {
	return r.Status == TokenStatusValid
}
