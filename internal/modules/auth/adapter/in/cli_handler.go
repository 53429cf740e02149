package in

import (
	"context"

	authdto "planr/internal/modules/auth/dto"
	authin "planr/internal/modules/auth/port/in"
)

type CLIHandler struct {
	usecase authin.Usecase
}

func NewCLIHandler(usecase authin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Login(ctx context.Context, token string) (authdto.StatusOutput, error) {
	return h.usecase.Login(ctx, token)
}

func (h CLIHandler) Status(ctx context.Context) (authdto.StatusOutput, error) {
	return h.usecase.Status(ctx)
}

func (h CLIHandler) Logout(ctx context.Context) error {
	return h.usecase.Logout(ctx)
}
