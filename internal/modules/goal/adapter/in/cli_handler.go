package in

import (
	"context"
	"time"

	goaldto "planr/internal/modules/goal/dto"
	goalin "planr/internal/modules/goal/port/in"
)

type CLIHandler struct {
	usecase goalin.Usecase
}

func NewCLIHandler(usecase goalin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context) ([]goaldto.GoalOutput, error) {
	return h.usecase.List(ctx)
}

func (h CLIHandler) Show(ctx context.Context, goalID int) (goaldto.GoalOutput, error) {
	return h.usecase.Get(ctx, goalID)
}

func (h CLIHandler) Sync(ctx context.Context) (goaldto.SyncOutput, error) {
	return h.usecase.Sync(ctx)
}

func (h CLIHandler) Create(ctx context.Context, name, description string, dueDate *time.Time) (goaldto.GoalOutput, error) {
	return h.usecase.Create(ctx, goaldto.CreateInput{Name: name, Description: description, DueDate: dueDate})
}

func (h CLIHandler) Edit(ctx context.Context, goalID int, name, description string) (goaldto.EditOutput, error) {
	return h.usecase.Edit(ctx, goaldto.EditInput{GoalID: goalID, Name: name, Description: description})
}

func (h CLIHandler) Delete(ctx context.Context, goalID int) (goaldto.DeleteOutput, error) {
	return h.usecase.Delete(ctx, goalID)
}
