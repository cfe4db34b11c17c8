package authn

import (
	"errors"
	"slices"

	"github.com/golang-jwt/jwt"
)

var ErrInvalidJWT = errors.New("invalid jwt token")
var ErrInvalidClaims = errors.New("invalid claims")

// Claims are the fields of the gateway-issued token the console reads.
type Claims struct {
	jwt.StandardClaims
	Username    string `json:"preferred_username"`
	RealmAccess struct {
		Roles []string `json:"roles"`
	} `json:"realm_access"`
}

// ParseClaims decodes a token without verifying its signature; the gateway in
// front of the console has already done that.
func ParseClaims(token string) (Claims, error) {
	claims := Claims{}
	// Check if token is JWT by attempting to parse it
	if t, err := jwt.ParseWithClaims(token, &claims, nil); err != nil {
		// Ignore validation errors (no need to check signing of key)
		if _, ok := err.(*jwt.ValidationError); !ok {
			return claims, ErrInvalidJWT
		}

		// Check if token was decoded successfully
		if t == nil {
			return claims, ErrInvalidClaims
		}
	}
	return claims, nil
}

// HasRole reports whether the realm roles include role.
func (c Claims) HasRole(role string) bool {
	return slices.Contains(c.RealmAccess.Roles, role)
}

// Actor is the name recorded against actions taken with these claims.
func (c Claims) Actor() string {
	if c.Username != "" {
		return c.Username
	}
	return c.Subject
}
