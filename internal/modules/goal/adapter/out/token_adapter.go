package out

import (
	"context"

	authin "planr/internal/modules/auth/port/in"
	goalout "planr/internal/modules/goal/port/out"
)

type TokenAdapter struct {
	auth authin.Usecase
}

func NewTokenAdapter(auth authin.Usecase) goalout.TokenSource {
	return &TokenAdapter{auth: auth}
}

func (a *TokenAdapter) Token(ctx context.Context) (string, error) {
	return a.auth.Token(ctx)
}
