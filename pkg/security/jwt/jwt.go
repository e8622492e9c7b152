package jwt

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/ogaworks/taskboard/pkg/session"
)

// Codec encodes sessions as HS256 JWTs. The token's jti carries the
// server-side session ID and sub the user ID, so a token is only as valid
// as its live registry entry.
type Codec struct {
	secret []byte
	issuer string
}

func NewCodec(secret, issuer string) *Codec {
	return &Codec{secret: []byte(secret), issuer: issuer}
}

func (c *Codec) Encode(s session.Session) (string, error) {
	claims := jwt.RegisteredClaims{
		Issuer:    c.issuer,
		Subject:   s.UserID.String(),
		ID:        s.ID.String(),
		IssuedAt:  jwt.NewNumericDate(s.CreatedAt),
		ExpiresAt: jwt.NewNumericDate(s.ExpiresAt),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret)
}

func (c *Codec) Decode(tokenStr string) (uuid.UUID, uuid.UUID, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return c.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}))
	if err != nil || !token.Valid {
		return uuid.Nil, uuid.Nil, errors.New("invalid or expired token")
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return uuid.Nil, uuid.Nil, errors.New("invalid token claims")
	}
	if c.issuer != "" && claims.Issuer != c.issuer {
		return uuid.Nil, uuid.Nil, errors.New("invalid token issuer")
	}
	sessionID, err := uuid.Parse(claims.ID)
	if err != nil {
		return uuid.Nil, uuid.Nil, errors.New("invalid session id claim")
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, uuid.Nil, errors.New("invalid subject claim")
	}
	return sessionID, userID, nil
}

var _ session.TokenCodec = (*Codec)(nil)
