package auth

import (
	"slices"

	"github.com/golang-jwt/jwt/v5"
)

// Claims represents the JWT claims presented by partner channels (bank
// portals, broker tools) calling the eligibility service.
type Claims struct {
	jwt.RegisteredClaims
	PartnerID string   `json:"partner_id"`
	Scopes    []string `json:"scopes"`
}

// HasScope checks if the claims grant the specified scope.
func (c Claims) HasScope(scope string) bool {
	return slices.Contains(c.Scopes, scope)
}

// Scope constants
const (
	ScopeAssess      = "eligibility:assess"
	ScopeReadRegimes = "eligibility:regimes:read"
)
