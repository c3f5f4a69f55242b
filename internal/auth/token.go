package auth

import (
	"errors"
	"fmt"
	"time"

	"coursechat/pkg/types"

	"github.com/golang-jwt/jwt/v5"
)

// Identity is the authenticated caller as asserted by a signed token.
type Identity struct {
	UserID string
	Name   string
	Role   string
}

// User converts the identity into the mirrored user record.
func (i Identity) User() *types.User {
	return &types.User{ID: i.UserID, Name: i.Name, Role: i.Role}
}

type CustomClaims struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// TokenService signs and verifies HS256 identity tokens.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret string, ttl time.Duration) (*TokenService, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	return &TokenService{secret: []byte(secret), ttl: ttl}, nil
}

func (s *TokenService) GenerateToken(identity Identity) (string, error) {
	claims := CustomClaims{
		UserID: identity.UserID,
		Name:   identity.Name,
		Role:   identity.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.UserID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *TokenService) ValidateToken(tokenString string) (Identity, error) {
	claims := &CustomClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return Identity{}, errors.Join(ErrInvalidToken, err)
	}
	if !token.Valid {
		return Identity{}, ErrInvalidToken
	}

	if !types.IsValidUserID(claims.UserID) || !types.IsValidRole(claims.Role) {
		return Identity{}, ErrInvalidClaims
	}

	name := claims.Name
	if name == "" {
		name = claims.UserID
	}
	return Identity{UserID: claims.UserID, Name: name, Role: claims.Role}, nil
}
