package jwt

import (
	"context"
	"errors"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

var ErrInvalidToken = errors.New("Invalid or expired token")

// Service verifies console access tokens and mints the short-lived tokens
// the SSE stream uses (EventSource cannot send an Authorization header).
type Service interface {
	JWTAuth() *jwtauth.JWTAuth
	GenerateSSEToken(userID string) (token string, expiresIn int, err error)
	ValidateSSEToken(tokenString string) (userID string, err error)
}

type JWTService struct {
	secretKey string
	tokenAuth *jwtauth.JWTAuth
}

func NewJWTService(secretKey string) Service {
	return &JWTService{
		secretKey: secretKey,
		tokenAuth: jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

const sseTokenTTL = 60 * time.Second

func (j *JWTService) GenerateSSEToken(userID string) (string, int, error) {
	claims := map[string]interface{}{
		"user_id": userID,
		"type":    "sse",
		"exp":     time.Now().Add(sseTokenTTL).Unix(),
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	if err != nil {
		return "", 0, err
	}

	return tokenString, int(sseTokenTTL.Seconds()), nil
}

func (j *JWTService) ValidateSSEToken(tokenString string) (string, error) {
	token, err := j.tokenAuth.Decode(tokenString)
	if err != nil {
		return "", ErrInvalidToken
	}

	if err := jwt.Validate(token, jwt.WithAcceptableSkew(30*time.Second)); err != nil {
		return "", ErrInvalidToken
	}

	claims, err := token.AsMap(context.Background())
	if err != nil {
		return "", ErrInvalidToken
	}

	tokenType, ok := claims["type"].(string)
	if !ok || tokenType != "sse" {
		return "", ErrInvalidToken
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", ErrInvalidToken
	}

	return userID, nil
}
