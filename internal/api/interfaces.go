package api

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/limbo/gratudiary/pkg/entity"
)

type JWTServiceI interface {
	// Signs token bound to user and to the session slot opened at login
	GenerateToken(user *entity.User, sessionID string) (string, error)
	ParseToken(tokenString string) (*JWTClaims, error)
}

type JWTClaims struct {
	jwt.RegisteredClaims
	UserID    string `json:"user_id"`
	Username  string `json:"username"`
	SessionID string `json:"sid"`
}
