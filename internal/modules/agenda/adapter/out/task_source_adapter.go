package out

import (
	"context"

	"planr/internal/modules/agenda/domain"
	agendaout "planr/internal/modules/agenda/port/out"
	taskdto "planr/internal/modules/task/dto"
	taskin "planr/internal/modules/task/port/in"
)

type TaskSourceAdapter struct {
	tasks taskin.Usecase
}

func NewTaskSourceAdapter(tasks taskin.Usecase) agendaout.TaskSource {
	return &TaskSourceAdapter{tasks: tasks}
}

func (a *TaskSourceAdapter) ListTasks(ctx context.Context, goalID int) ([]domain.Task, error) {
	tasks, err := a.tasks.List(ctx, goalID)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Task, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, domain.Task{
			TaskID:    t.TaskID,
			GoalID:    t.GoalID,
			Name:      t.Name,
			DueDate:   t.DueDate,
			Completed: t.Completed,
		})
	}
	return out, nil
}

func (a *TaskSourceAdapter) CompleteTask(ctx context.Context, goalID, taskID int) error {
	_, err := a.tasks.Complete(ctx, taskdto.TaskRef{GoalID: goalID, TaskID: taskID})
	return err
}

// DeleteTask ignores whether the task still existed.
func (a *TaskSourceAdapter) DeleteTask(ctx context.Context, goalID, taskID int) error {
	_, err := a.tasks.Delete(ctx, taskdto.TaskRef{GoalID: goalID, TaskID: taskID})
	return err
}
