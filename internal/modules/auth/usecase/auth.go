package usecase

import (
	"context"
	"errors"

	"planr/internal/modules/auth/domain"
	"planr/internal/modules/auth/dto"
	authin "planr/internal/modules/auth/port/in"
	"planr/internal/modules/auth/service"
	apperrors "planr/internal/platform/errors"
)

type Interactor struct {
	svc *service.TokenService
}

func NewInteractor(svc *service.TokenService) authin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Login(ctx context.Context, token string) (dto.StatusOutput, error) {
	claims, err := i.svc.Save(ctx, token)
	if err != nil {
		return dto.StatusOutput{}, err
	}
	return i.status(claims), nil
}

func (i *Interactor) Status(ctx context.Context) (dto.StatusOutput, error) {
	_, claims, err := i.svc.Load(ctx)
	if errors.Is(err, apperrors.ErrNoToken) {
		return dto.StatusOutput{}, nil
	}
	if err != nil {
		return dto.StatusOutput{}, err
	}
	return i.status(claims), nil
}

// Token returns a credential usable for the remote API.
func (i *Interactor) Token(ctx context.Context) (string, error) {
	raw, claims, err := i.svc.Load(ctx)
	if err != nil {
		return "", err
	}
	if i.svc.Expired(claims) {
		return "", apperrors.ErrTokenExpired
	}
	return raw, nil
}

func (i *Interactor) Logout(ctx context.Context) error {
	return i.svc.Clear(ctx)
}

func (i *Interactor) status(claims domain.Claims) dto.StatusOutput {
	return dto.StatusOutput{
		Present:   true,
		Opaque:    claims.Opaque,
		Subject:   claims.Subject,
		ExpiresAt: claims.ExpiresAt,
		Expired:   i.svc.Expired(claims),
	}
}
