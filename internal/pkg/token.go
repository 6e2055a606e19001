package pkg

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims carries the authenticated principal inside a signed session token.
type SessionClaims struct {
	UserID uint
	Role   string
}

// IssueToken signs an HS256 session token for the given user.
func IssueToken(secret []byte, userID uint, role string, expiry time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  strconv.FormatUint(uint64(userID), 10),
		"role": role,
		"iat":  now.Unix(),
		"exp":  now.Add(expiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ParseToken verifies an HS256 session token and extracts the principal.
// Expired or tampered tokens return an error.
func ParseToken(secret []byte, tokenString string) (SessionClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return SessionClaims{}, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return SessionClaims{}, fmt.Errorf("invalid token claims")
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return SessionClaims{}, fmt.Errorf("token missing subject")
	}
	userID, err := strconv.ParseUint(sub, 10, 64)
	if err != nil {
		return SessionClaims{}, fmt.Errorf("invalid token subject %q", sub)
	}

	role, _ := claims["role"].(string)
	if role == "" {
		return SessionClaims{}, fmt.Errorf("token missing role")
	}

	return SessionClaims{UserID: uint(userID), Role: role}, nil
}
