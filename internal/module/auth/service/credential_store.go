package service

import (
	"context"
	"crypto/subtle"
	"errors"

	"github.com/knadh/koanf/v2"
	"golang.org/x/crypto/bcrypt"
)

var errMissingCredentials = errors.New("auth.user.username and auth.user.password (or password-hash) must be configured")

// CredentialVerifier checks a username/password pair and resolves the identity behind it
type CredentialVerifier interface {
	Verify(ctx context.Context, username, password string) (*Identity, error)
}

// single configured operator account
type staticCredentialStore struct {
	identity Identity
	password []byte
	hash     []byte
}

func NewCredentialStore(cfg *koanf.Koanf) (CredentialVerifier, error) {
	identity := Identity{
		UserID:      uint64(cfg.Int64("auth.user.id")),
		Username:    cfg.String("auth.user.username"),
		Role:        cfg.String("auth.user.role"),
		DisplayName: cfg.String("auth.user.display-name"),
	}
	password := cfg.String("auth.user.password")
	hash := cfg.String("auth.user.password-hash")

	if identity.Username == "" || (password == "" && hash == "") {
		return nil, errMissingCredentials
	}
	return NewStaticCredentialStore(identity, password, hash), nil
}

// NewStaticCredentialStore compares against hash when set, otherwise against password
func NewStaticCredentialStore(identity Identity, password, hash string) CredentialVerifier {
	return &staticCredentialStore{
		identity: identity,
		password: []byte(password),
		hash:     []byte(hash),
	}
}

func (s *staticCredentialStore) Verify(_ context.Context, username, password string) (*Identity, error) {
	usernameOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.identity.Username)) == 1

	var passwordOK bool
	if len(s.hash) > 0 {
		passwordOK = bcrypt.CompareHashAndPassword(s.hash, []byte(password)) == nil
	} else {
		passwordOK = subtle.ConstantTimeCompare([]byte(password), s.password) == 1
	}

	if !usernameOK || !passwordOK {
		return nil, ErrInvalidCredentials
	}

	identity := s.identity
	return &identity, nil
}
