package utils

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"
	"github.com/ougirez/hcdash/internal/pkg/constants"
)

// SessionTokenWrapper is the claim set stored in the session cookie.
type SessionTokenWrapper struct {
	jwt.StandardClaims
	SessionID uuid.UUID `json:"sid"`
}

func GenerateSessionToken(sessionID uuid.UUID, secret string, ttl time.Duration) (string, error) {
	now := jwt.TimeFunc()
	claims := &SessionTokenWrapper{
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(ttl).Unix(),
		},
		SessionID: sessionID,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("jwt.SignedString: %w", err)
	}

	return signed, nil
}

func ParseSessionToken(token, secret string) (*SessionTokenWrapper, error) {
	claims := new(SessionTokenWrapper)
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s", constants.ErrUnauthorized, err.Error())
	}
	if !parsed.Valid || claims.SessionID == uuid.Nil {
		return nil, constants.ErrUnauthorized
	}

	return claims, nil
}
