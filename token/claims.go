package token

import (
	"strings"
	"time"

	apperrors "github.com/fixoncall/fixoncall-client/internal/errors"
	jwtlib "github.com/golang-jwt/jwt/v5"
)

// ErrNotJWT is returned for bearer tokens that are not JWTs. Such tokens are still
// usable, they just carry no readable metadata.
var ErrNotJWT = apperrors.ErrNotJWT

// Claims is the metadata readable from a bearer token without its signing key.
// Nothing here is verified; use it for display and logging only.
type Claims struct {
	Subject   string    // User identity the token was issued for
	IssuedAt  time.Time // Zero when the token has no iat claim
	ExpiresAt time.Time // Zero when the token has no exp claim
}

// Expired reports whether the token carries an expiry that is not after now.
func (c Claims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && !now.Before(c.ExpiresAt)
}

// Inspect decodes the claims of a JWT bearer token without verifying its signature.
// The remote service signs tokens with a key the client never sees.
func Inspect(rawToken string) (Claims, error) {
	if strings.Count(strings.TrimSpace(rawToken), ".") != 2 {
		return Claims{}, ErrNotJWT
	}

	parsed, _, err := jwtlib.NewParser().ParseUnverified(rawToken, jwtlib.MapClaims{})
	if err != nil {
		return Claims{}, apperrors.Wrapf(ErrNotJWT, "[token.Inspect] %v", err)
	}

	mapClaims, ok := parsed.Claims.(jwtlib.MapClaims)
	if !ok {
		return Claims{}, apperrors.Wrapf(ErrNotJWT, "[token.Inspect] unexpected claims type")
	}

	var claims Claims
	if sub, err := mapClaims.GetSubject(); err == nil {
		claims.Subject = sub
	}
	if iat, err := mapClaims.GetIssuedAt(); err == nil && iat != nil {
		claims.IssuedAt = iat.Time
	}
	if exp, err := mapClaims.GetExpirationTime(); err == nil && exp != nil {
		claims.ExpiresAt = exp.Time
	}
	return claims, nil
}
