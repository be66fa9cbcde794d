package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/clinicore/clinic-api/pkg/apperror"
)

// AccessTokenTTL is the fixed lifetime used by every issuing call site
// (signup, login and refresh alike).
const AccessTokenTTL = 24 * time.Hour

// Authority mints and validates bearer tokens. Tokens are stateless:
// nothing is persisted and nothing can be revoked before expiry.
type Authority struct {
	secret []byte
	now    func() time.Time
}

func NewAuthority(secret string) *Authority {
	return &Authority{secret: []byte(secret), now: time.Now}
}

type claims struct {
	jwt.RegisteredClaims
}

// Issue signs a claim set binding the token to userID until now+ttl.
func (a *Authority) Issue(userID uuid.UUID, ttl time.Duration) (string, error) {
	c := claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(a.now().Add(ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(a.secret)
	if err != nil {
		return "", apperror.Internal(err)
	}
	return signed, nil
}

// Verify checks the signature and expiry and returns the subject identity.
// Any failure mode (bad signature, malformed token, expired, wrong
// algorithm) is reported uniformly as Unauthorized.
func (a *Authority) Verify(raw string) (uuid.UUID, error) {
	var c claims
	parsed, err := jwt.ParseWithClaims(raw, &c, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return a.secret, nil
	}, jwt.WithTimeFunc(a.now), jwt.WithExpirationRequired())
	if err != nil || !parsed.Valid {
		return uuid.Nil, apperror.Unauthorized()
	}
	userID, err := uuid.Parse(c.Subject)
	if err != nil {
		return uuid.Nil, apperror.Unauthorized()
	}
	return userID, nil
}
