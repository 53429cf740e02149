package in

import (
	"context"
	"time"

	taskdto "planr/internal/modules/task/dto"
	taskin "planr/internal/modules/task/port/in"
)

type CLIHandler struct {
	usecase taskin.Usecase
}

func NewCLIHandler(usecase taskin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Add(ctx context.Context, goalID int, name string, dueDate *time.Time) (taskdto.TaskOutput, error) {
	return h.usecase.Add(ctx, taskdto.AddInput{GoalID: goalID, Name: name, DueDate: dueDate})
}

func (h CLIHandler) List(ctx context.Context, goalID int) ([]taskdto.TaskOutput, error) {
	return h.usecase.List(ctx, goalID)
}

func (h CLIHandler) Complete(ctx context.Context, goalID, taskID int) (taskdto.TaskOutput, error) {
	return h.usecase.Complete(ctx, taskdto.TaskRef{GoalID: goalID, TaskID: taskID})
}

func (h CLIHandler) Delete(ctx context.Context, goalID, taskID int) (bool, error) {
	return h.usecase.Delete(ctx, taskdto.TaskRef{GoalID: goalID, TaskID: taskID})
}
