package out

import (
	"context"

	"planr/internal/modules/agenda/domain"
)

type GoalSource interface {
	ListGoals(ctx context.Context) ([]domain.Goal, error)
}

type TaskSource interface {
	ListTasks(ctx context.Context, goalID int) ([]domain.Task, error)
	CompleteTask(ctx context.Context, goalID, taskID int) error
	DeleteTask(ctx context.Context, goalID, taskID int) error
}
