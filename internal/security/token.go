package security

import (
	"errors"
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

// Operator roles recognised by the API middleware.
const (
	RoleFrontdesk = "frontdesk"
	RoleManager   = "manager"
)

// OperatorClaims identifies the staff member acting at the counter. The
// identity provider is external; we only verify and read.
type OperatorClaims struct {
	OperatorID string   `json:"operator_id"`
	Name       string   `json:"name,omitempty"`
	Roles      []string `json:"roles,omitempty"`
	jwt.RegisteredClaims
}

// HasRole reports whether the operator carries the given role. Managers
// implicitly satisfy the frontdesk role.
func (c *OperatorClaims) HasRole(role string) bool {
	if slices.Contains(c.Roles, role) {
		return true
	}
	return role == RoleFrontdesk && slices.Contains(c.Roles, RoleManager)
}

type TokenManager interface {
	GenerateToken(operatorID, name string, roles []string) (string, error)
	ValidateToken(tokenString string) (*OperatorClaims, error)
}

type tokenManager struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenManager(secret string, ttl time.Duration) TokenManager {
	if ttl <= 0 {
		ttl = 1 * time.Hour
	}
	return &tokenManager{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

func (m *tokenManager) GenerateToken(operatorID, name string, roles []string) (string, error) {
	claims := OperatorClaims{
		OperatorID: operatorID,
		Name:       name,
		Roles:      roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   operatorID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "frontdesk-backend",
			Audience:  jwt.ClaimStrings{"frontdesk-api"},
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

func (m *tokenManager) ValidateToken(tokenString string) (*OperatorClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &OperatorClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	if claims, ok := token.Claims.(*OperatorClaims); ok && token.Valid {
		if claims.OperatorID == "" {
			claims.OperatorID = claims.Subject
		}
		return claims, nil
	}

	return nil, ErrInvalidToken
}
