package auth

import (
	"errors"
	"fmt"
	"time"

	"photoshare/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	tokenIssuer   = "photoshare-api"
	tokenAudience = "photoshare-client"
)

// Tokens issues and verifies bearer tokens for non-browser clients that cannot
// keep a session cookie.
type Tokens struct {
	secret []byte
	ttl    time.Duration
}

func NewTokens(secret string, ttl time.Duration) *Tokens {
	return &Tokens{secret: []byte(secret), ttl: ttl}
}

// Issue signs a token whose subject is the user's id.
func (t *Tokens) Issue(user *models.User) (string, error) {
	if len(t.secret) == 0 {
		return "", errors.New("token secret not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":        user.ID,
		"login_name": user.LoginName,
		"iss":        tokenIssuer,
		"aud":        tokenAudience,
		"exp":        now.Add(t.ttl).Unix(),
		"iat":        now.Unix(),
		"nbf":        now.Unix(),
		"jti":        uuid.NewString(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Verify returns the user id carried by a valid token.
func (t *Tokens) Verify(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return t.secret, nil
	},
		jwt.WithIssuer(tokenIssuer),
		jwt.WithAudience(tokenAudience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return "", err
	}

	sub, err := token.Claims.GetSubject()
	if err != nil {
		return "", err
	}
	if !models.IsValidID(sub) {
		return "", errors.New("invalid subject claim")
	}
	return sub, nil
}
