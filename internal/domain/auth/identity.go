package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

// Identity is who is calling. Handlers pass it into every operation that
// needs an actor instead of reading a session.
type Identity struct {
	UserID     string
	EmployeeID string
	Role       string
}

func (i Identity) Can(permission string) bool {
	return HasPermission(i.Role, permission)
}

// Owns reports whether the identity may act on employeeID's own records.
func (i Identity) Owns(employeeID string) bool {
	return i.EmployeeID != "" && i.EmployeeID == employeeID
}

type Claims struct {
	UserID     string `json:"uid"`
	EmployeeID string `json:"eid"`
	Role       string `json:"role"`
	jwt.RegisteredClaims
}

func (c Claims) Identity() Identity {
	return Identity{UserID: c.UserID, EmployeeID: c.EmployeeID, Role: c.Role}
}

func GenerateToken(secret string, identity Identity, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:     identity.UserID,
		EmployeeID: identity.EmployeeID,
		Role:       identity.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func ParseToken(secret, tokenString string) (Identity, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return Identity{}, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return Identity{}, ErrInvalidToken
	}
	if _, known := RolePermissions[claims.Role]; !known {
		return Identity{}, ErrInvalidToken
	}
	return claims.Identity(), nil
}
