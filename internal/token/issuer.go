package token

import (
	"github.com/google/uuid"

	"github.com/eospatial/geoforestry/internal/model"
)

// Issuer generates opaque capability tokens for forestry records. Tokens are
// 128-bit random values formatted as canonical UUID strings; collision
// probability is treated as negligible and is not checked.
type Issuer struct{}

var _ model.TokenIssuer = (*Issuer)(nil)

// NewIssuer creates a new capability token issuer.
func NewIssuer() *Issuer {
	return &Issuer{}
}

// Issue returns a fresh token.
func (i *Issuer) Issue() string {
	return uuid.NewString()
}
