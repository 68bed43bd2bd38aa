// Package auth verifies the external session cookie handed to
// ConnectionHandler on WebSocket upgrade and mints guest identities when no
// valid session is present.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// ErrExpired and ErrInvalid are the two failure modes a Verifier reports;
// both are treated as "no session" by the caller, never as a hard close.
var (
	ErrExpired = errors.New("auth: session expired")
	ErrInvalid = errors.New("auth: session invalid")
)

// Claims is the subset of the session JWT this server relies on.
type Claims struct {
	UserID string
	Expiry time.Time
}

// Verifier decodes a session token into Claims.
type Verifier interface {
	Decode(token string) (Claims, error)
}

type jwtClaims struct {
	UserUUID string `json:"user_uuid"`
	jwt.RegisteredClaims
}

// JWTVerifier verifies HMAC-signed session tokens using a shared secret.
type JWTVerifier struct {
	secret []byte
}

// NewJWTVerifier returns a Verifier keyed by secret.
func NewJWTVerifier(secret string) *JWTVerifier {
	return &JWTVerifier{secret: []byte(secret)}
}

// Decode implements Verifier.
func (v *JWTVerifier) Decode(token string) (Claims, error) {
	var claims jwtClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalid
		}
		return v.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrExpired
		}
		return Claims{}, ErrInvalid
	}
	if claims.UserUUID == "" {
		return Claims{}, ErrInvalid
	}
	exp, _ := claims.GetExpirationTime()
	var expiry time.Time
	if exp != nil {
		expiry = exp.Time
	}
	return Claims{UserID: claims.UserUUID, Expiry: expiry}, nil
}

// NewGuestID mints an ephemeral identity for a connection with no valid
// session cookie, so gameplay is never gated on having an account.
func NewGuestID() string {
	return "guest-" + uuid.NewString()
}
