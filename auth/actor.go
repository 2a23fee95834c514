package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	RoleGuest = "guest"
	RoleUser  = "user"

	// actorKey is the gin context key ValidateToken stores the actor under.
	actorKey = "actor"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// Actor is the identity behind a request.
type Actor struct {
	ID   string `json:"user_id"`
	Role string `json:"role"`
}

// Authenticated reports whether a is a signed-in (non-guest) user.
func (a *Actor) Authenticated() bool {
	return a != nil && a.ID != "" && a.Role != RoleGuest
}

// ActorFrom returns the actor ValidateToken attached to c, or nil.
func ActorFrom(c *gin.Context) *Actor {
	v, ok := c.Get(actorKey)
	if !ok {
		return nil
	}
	a, _ := v.(*Actor)
	return a
}

// SetActor attaches a to c along with the plain "user_id" and "role" keys.
func SetActor(c *gin.Context, a *Actor) {
	c.Set(actorKey, a)
	c.Set("user_id", a.ID)
	c.Set("role", a.Role)
}

// IssueUserToken mints a token for a signed-in user. The identity provider
// shares the secret and mints these itself; this exists for operators and tests.
func IssueUserToken(secret []byte, userID string, ttl time.Duration) (string, error) {
	return issueToken(secret, userID, RoleUser, ttl)
}

func issueToken(secret []byte, id, role string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id": id,
		"role":    role,
		"exp":     time.Now().Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ParseToken validates raw (with or without a "Bearer " prefix) and returns
// its actor. Tokens without a role are treated as users.
func ParseToken(secret []byte, raw string) (*Actor, error) {
	raw = strings.TrimSpace(strings.TrimPrefix(raw, "Bearer "))
	if raw == "" {
		return nil, ErrInvalidToken
	}
	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	id, _ := claims["user_id"].(string)
	if id == "" {
		return nil, fmt.Errorf("%w: missing user_id", ErrInvalidToken)
	}
	role, _ := claims["role"].(string)
	if role == "" {
		role = RoleUser
	}
	return &Actor{ID: id, Role: role}, nil
}
