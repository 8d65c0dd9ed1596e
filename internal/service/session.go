package service

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"chat_relay/internal/config"
	"chat_relay/pkg/logger"
)

var ErrInvalidSession = errors.New("invalid session token")

// IdentityProvider hands out the opaque per-browser identity. Tokens are
// what travels in the cookie; ids are what the chat log stores.
type IdentityProvider interface {
	// Issue creates a fresh identity and the token that carries it.
	Issue() (id string, token string, err error)

	// Resolve returns the identity inside token, or ErrInvalidSession.
	Resolve(token string) (string, error)
}

type sessionClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

type sessionService struct {
	secret []byte
	log    logger.Logger
}

// NewSessionService signs identities as HS256 tokens. Tokens carry no
// expiry: an identity lives as long as the browser keeps the cookie.
func NewSessionService(cfg config.SessionConfig, log logger.Logger) IdentityProvider {
	return &sessionService{
		secret: []byte(cfg.Secret),
		log:    log,
	}
}

func (s *sessionService) Issue() (string, string, error) {
	id := uuid.NewString()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{SessionID: id})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		s.log.Error("Failed to sign session token", "error", err)
		return "", "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return id, signed, nil
}

func (s *sessionService) Resolve(tokenString string) (string, error) {
	if tokenString == "" {
		return "", ErrInvalidSession
	}

	token, err := jwt.ParseWithClaims(tokenString, &sessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		s.log.Debug("Rejected session token", "error", err)
		return "", ErrInvalidSession
	}

	claims, ok := token.Claims.(*sessionClaims)
	if !ok || !token.Valid {
		return "", ErrInvalidSession
	}
	if _, err := uuid.Parse(claims.SessionID); err != nil {
		return "", ErrInvalidSession
	}
	return claims.SessionID, nil
}
