package service

import (
	"context"
	"fmt"
	"strings"

	"planr/internal/modules/auth/domain"
	authout "planr/internal/modules/auth/port/out"
	"planr/internal/platform/clock"
	apperrors "planr/internal/platform/errors"
)

type TokenService struct {
	clock clock.Clock
	store authout.KeyValueStore
}

func NewTokenService(clock clock.Clock, store authout.KeyValueStore) *TokenService {
	return &TokenService{clock: clock, store: store}
}

func (s *TokenService) Save(ctx context.Context, token string) (domain.Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return domain.Claims{}, fmt.Errorf("%w: token is required", apperrors.ErrInvalidInput)
	}
	if err := s.store.SetString(ctx, domain.KeyToken, token); err != nil {
		return domain.Claims{}, fmt.Errorf("write token: %w", err)
	}
	return domain.Inspect(token), nil
}

// Load returns the stored token and its claims; ErrNoToken when none is stored.
func (s *TokenService) Load(ctx context.Context) (string, domain.Claims, error) {
	raw, ok, err := s.store.GetString(ctx, domain.KeyToken)
	if err != nil {
		return "", domain.Claims{}, fmt.Errorf("read token: %w", err)
	}
	if !ok || strings.TrimSpace(raw) == "" {
		return "", domain.Claims{}, apperrors.ErrNoToken
	}
	return raw, domain.Inspect(raw), nil
}

func (s *TokenService) Expired(claims domain.Claims) bool {
	return claims.Expired(s.clock.Now())
}

func (s *TokenService) Clear(ctx context.Context) error {
	if err := s.store.Delete(ctx, domain.KeyToken); err != nil {
		return fmt.Errorf("delete token: %w", err)
	}
	return nil
}
