package out

import (
	"context"

	goalout "planr/internal/modules/goal/port/out"
	taskin "planr/internal/modules/task/port/in"
)

type TaskCleanupAdapter struct {
	tasks taskin.Usecase
}

func NewTaskCleanupAdapter(tasks taskin.Usecase) goalout.TaskCleaner {
	return &TaskCleanupAdapter{tasks: tasks}
}

func (a *TaskCleanupAdapter) CleanupTasks(ctx context.Context, goalID int) error {
	return a.tasks.Cleanup(ctx, goalID)
}
