// Package tokens mints and parses the signed access tokens that authorize
// requests without a database lookup.
package tokens

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/post-hub/iam-service/internal/models"
)

// AccessTTL is fixed and matches the Authorization cookie max-age.
const AccessTTL = 5 * time.Minute

var (
	ErrTokenMalformed = errors.New("token malformed")
	ErrTokenSignature = errors.New("token signature invalid")
	ErrTokenExpired   = errors.New("token expired")
)

type AccessClaims struct {
	Roles []models.SystemRole `json:"roles"`
	jwt.RegisteredClaims
}

// Claims is the verified identity extracted from an access token.
type Claims struct {
	UserID uint
	Roles  []models.SystemRole
}

// Codec signs and verifies access tokens with a symmetric HS256 key.
type Codec struct {
	Secret []byte
	TTL    time.Duration
}

func NewCodec(secret []byte) *Codec {
	return &Codec{Secret: secret, TTL: AccessTTL}
}

func (c *Codec) Mint(userID uint, roles []models.SystemRole, now time.Time) (string, error) {
	claims := AccessClaims{
		Roles: roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(userID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.TTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.Secret)
}

// Parse verifies signature and expiry against now. There is no grace
// window: an elapsed expires-at fails with ErrTokenExpired.
func (c *Codec) Parse(raw string, now time.Time) (*Claims, error) {
	var claims AccessClaims
	tkn, err := jwt.ParseWithClaims(raw, &claims,
		func(t *jwt.Token) (any, error) {
			if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
				return nil, jwt.ErrTokenSignatureInvalid
			}
			return c.Secret, nil
		},
		jwt.WithTimeFunc(func() time.Time { return now }),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrTokenSignature
		default:
			return nil, ErrTokenMalformed
		}
	}
	if !tkn.Valid {
		return nil, ErrTokenMalformed
	}

	sub, err := claims.GetSubject()
	if err != nil {
		return nil, ErrTokenMalformed
	}
	id, err := strconv.ParseUint(sub, 10, 64)
	if err != nil {
		return nil, ErrTokenMalformed
	}
	return &Claims{UserID: uint(id), Roles: claims.Roles}, nil
}
