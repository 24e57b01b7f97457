package auth

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ValidatorConfig holds token validation configuration. Exactly one of
// Secret (HS256) or PublicKeyPEM (RS256) must be set.
type ValidatorConfig struct {
	Secret       string
	PublicKeyPEM string
	Issuer       string
	Leeway       time.Duration
}

// Validator verifies partner tokens. The service never issues tokens.
type Validator struct {
	secret    []byte
	publicKey *rsa.PublicKey
	parser    *jwt.Parser
}

// NewValidator creates a Validator for the given configuration.
func NewValidator(cfg ValidatorConfig) (*Validator, error) {
	v := &Validator{}

	var methods []string
	switch {
	case cfg.PublicKeyPEM != "" && cfg.Secret != "":
		return nil, errors.New("jwt: configure either a secret or a public key, not both")
	case cfg.PublicKeyPEM != "":
		pubKey, err := jwt.ParseRSAPublicKeyFromPEM([]byte(cfg.PublicKeyPEM))
		if err != nil {
			return nil, fmt.Errorf("failed to parse RSA public key: %w", err)
		}
		v.publicKey = pubKey
		methods = []string{jwt.SigningMethodRS256.Alg()}
	case cfg.Secret != "":
		v.secret = []byte(cfg.Secret)
		methods = []string{jwt.SigningMethodHS256.Alg()}
	default:
		return nil, errors.New("jwt: validator requires PublicKeyPEM or Secret")
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods(methods),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(cfg.Leeway),
	}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}
	v.parser = jwt.NewParser(opts...)

	return v, nil
}

// Validate parses and validates a token string.
func (v *Validator) Validate(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := v.parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		if v.publicKey != nil {
			return v.publicKey, nil
		}
		return v.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.PartnerID == "" {
		return nil, errors.New("token has no partner_id")
	}
	return claims, nil
}

// LoadKeyFromFile reads a PEM-encoded key from a file path.
func LoadKeyFromFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read key file %q: %w", path, err)
	}
	return string(data), nil
}
