package jwtservice

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/limbo/gratudiary/internal/api"
	errorvalues "github.com/limbo/gratudiary/internal/error_values"
	"github.com/limbo/gratudiary/pkg/entity"
)

const DefaultTokenTTL = 24 * time.Hour

type JWTService struct {
	secret   []byte
	tokenTTL time.Duration
}

func New(secret string, tokenTTL time.Duration) *JWTService {
	if tokenTTL <= 0 {
		tokenTTL = DefaultTokenTTL
	}
	return &JWTService{
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
	}
}

func (s *JWTService) GenerateToken(user *entity.User, sessionID string) (string, error) {
	if user == nil {
		return "", errors.New("user is nil")
	}
	now := time.Now()
	claims := &api.JWTClaims{
		UserID:    user.ID,
		Username:  user.Name,
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *JWTService) ParseToken(tokenString string) (*api.JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &api.JWTClaims{}, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s", errorvalues.ErrInvalidToken, err.Error())
	}
	claims, ok := token.Claims.(*api.JWTClaims)
	if !ok || !token.Valid {
		return nil, errorvalues.ErrInvalidToken
	}
	return claims, nil
}
