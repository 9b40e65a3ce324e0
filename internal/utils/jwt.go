package utils // package utils provides helpers for token creation and password hashing

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/trailwatch/trailwatch/internal/model"
)

// AccessToken represents a signed JWT bearer token along with its
// expiry. The token is the only session credential; there is no refresh
// flow and no authorization scopes beyond identity.
type AccessToken struct {
	Token string
	Exp   time.Time
}

// UserClaims is the identity carried inside a token: id, email and
// name. Every authenticated user has equal privilege over their own
// resources.
type UserClaims struct {
	ID    uint64
	Email string
	Name  string
}

// ErrInvalidToken is returned for malformed, badly signed or expired
// tokens.
var ErrInvalidToken = errors.New("invalid token")

// NewAccessToken builds and signs an HS256 JWT for a user. Claims are
// id, email, name plus exp and iat; ttlHours controls the lifetime
// (24 hours in the default configuration).
func NewAccessToken(secret string, u model.User, ttlHours int) (AccessToken, error) {
	exp := time.Now().UTC().Add(time.Duration(ttlHours) * time.Hour)
	claims := jwt.MapClaims{
		"id":    u.ID,
		"email": u.Email,
		"name":  u.Name,
		"exp":   exp.Unix(),
		"iat":   time.Now().UTC().Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}

// ParseAccessToken verifies the signature and expiry of a bearer token
// and returns the identity claims. Only HMAC-signed tokens are
// accepted.
func ParseAccessToken(secret, raw string) (UserClaims, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return UserClaims{}, ErrInvalidToken
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return UserClaims{}, ErrInvalidToken
	}

	out := UserClaims{}
	// Numeric JSON claims decode as float64.
	if id, ok := claims["id"].(float64); ok {
		out.ID = uint64(id)
	}
	if out.ID == 0 {
		return UserClaims{}, ErrInvalidToken
	}
	if email, ok := claims["email"].(string); ok {
		out.Email = email
	}
	if name, ok := claims["name"].(string); ok {
		out.Name = name
	}
	return out, nil
}
