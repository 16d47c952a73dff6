package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/knadh/koanf/v2"
)

var errMissingSecret = errors.New("auth.jwt.secret is not configured")

type Claims struct {
	UserID   uint64 `json:"userId"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

type TokenService interface {
	Issue(identity Identity) (string, time.Time, error)
	Verify(token string) (*Identity, error)
	TTL() time.Duration
}

type tokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(cfg *koanf.Koanf) (TokenService, error) {
	secret := cfg.String("auth.jwt.secret")
	if secret == "" {
		return nil, errMissingSecret
	}
	return NewTokenServiceWithClock([]byte(secret), cfg.Duration("auth.jwt.expiration"), time.Now), nil
}

// NewTokenServiceWithClock lets callers pin the clock used for iat, exp and validation
func NewTokenServiceWithClock(secret []byte, ttl time.Duration, now func() time.Time) TokenService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &tokenService{secret: secret, ttl: ttl, now: now}
}

func (s *tokenService) TTL() time.Duration {
	return s.ttl
}

func (s *tokenService) Issue(identity Identity) (string, time.Time, error) {
	issuedAt := s.now()
	expiresAt := issuedAt.Add(s.ttl)

	claims := Claims{
		UserID:   identity.UserID,
		Username: identity.Username,
		Role:     identity.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

func (s *tokenService) Verify(token string) (*Identity, error) {
	if token == "" {
		return nil, ErrMissingToken
	}

	var claims Claims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	return &Identity{
		UserID:   claims.UserID,
		Username: claims.Username,
		Role:     claims.Role,
	}, nil
}
