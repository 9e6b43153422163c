package auth

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

var (
	ErrNotFound           = errors.New("admin not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

const tokenTTL = 12 * time.Hour

type Service struct {
	Store  *Store
	Secret string
}

func NewService(store *Store, secret string) *Service {
	return &Service{Store: store, Secret: secret}
}

// Login verifies credentials and issues a signed session token. A missing
// account and a bad password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (string, *Admin, error) {
	admin, err := s.Store.FindByEmail(ctx, email)
	if errors.Is(err, ErrNotFound) {
		return "", nil, ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, err
	}
	if err := CheckPassword(admin.PasswordHash, password); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := GenerateToken(s.Secret, Claims{
		AdminID: admin.ID.Hex(),
		Email:   admin.Email,
		Role:    admin.Role,
	}, tokenTTL)
	if err != nil {
		return "", nil, err
	}

	if err := s.Store.RecordLogin(ctx, admin.ID, time.Now().UTC()); err != nil {
		slog.Warn("record login failed", "err", err)
	}
	return token, admin, nil
}
