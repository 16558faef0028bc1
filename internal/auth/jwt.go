package auth

import (
	"crypto/subtle"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "conquest-server"

type Claims struct {
	Player string `json:"player"`
	jwt.RegisteredClaims
}

// Sessions issues and validates the HS256 tokens that guard the command API.
type Sessions struct {
	secret    []byte
	accessKey string
	ttl       time.Duration
	now       func() time.Time
}

func NewSessions(secret, accessKey string, ttl time.Duration) (*Sessions, error) {
	if len(secret) < 32 {
		return nil, fmt.Errorf("JWT secret must be at least 32 characters long")
	}
	if accessKey == "" {
		return nil, fmt.Errorf("access key is required")
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Sessions{
		secret:    []byte(secret),
		accessKey: accessKey,
		ttl:       ttl,
		now:       time.Now,
	}, nil
}

func (s *Sessions) CheckAccessKey(key string) bool {
	return subtle.ConstantTimeCompare([]byte(key), []byte(s.accessKey)) == 1
}

func (s *Sessions) TTL() time.Duration {
	return s.ttl
}

func (s *Sessions) GenerateToken(player string) (string, time.Time, error) {
	player = strings.TrimSpace(player)
	if player == "" {
		return "", time.Time{}, fmt.Errorf("player name is required")
	}

	now := s.now()
	expires := now.Add(s.ttl)
	claims := Claims{
		Player: player,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   player,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return token, expires, nil
}

func (s *Sessions) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	},
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(s.now),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Player == "" {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}
