package in

import (
	"context"

	"planr/internal/modules/auth/dto"
)

type Usecase interface {
	Login(ctx context.Context, token string) (dto.StatusOutput, error)
	Status(ctx context.Context) (dto.StatusOutput, error)
	Token(ctx context.Context) (string, error)
	Logout(ctx context.Context) error
}
