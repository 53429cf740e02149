package usecase

import (
	"context"

	"go.uber.org/zap"

	"planr/internal/modules/task/domain"
	"planr/internal/modules/task/dto"
	taskin "planr/internal/modules/task/port/in"
	"planr/internal/modules/task/service"
	"planr/internal/platform/logging"
)

type Interactor struct {
	svc    *service.TaskService
	logger *zap.Logger
}

func NewInteractor(svc *service.TaskService, logger *zap.Logger) taskin.Usecase {
	return &Interactor{svc: svc, logger: logging.OrNop(logger)}
}

func (i *Interactor) Add(ctx context.Context, input dto.AddInput) (dto.TaskOutput, error) {
	task, err := i.svc.Add(ctx, input.GoalID, input.Name, input.DueDate)
	if err != nil {
		return dto.TaskOutput{}, err
	}
	return toOutput(task), nil
}

func (i *Interactor) List(ctx context.Context, goalID int) ([]dto.TaskOutput, error) {
	tasks, err := i.svc.List(ctx, goalID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TaskOutput, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, toOutput(t))
	}
	return out, nil
}

func (i *Interactor) Complete(ctx context.Context, ref dto.TaskRef) (dto.TaskOutput, error) {
	task, err := i.svc.Complete(ctx, ref.GoalID, ref.TaskID)
	if err != nil {
		return dto.TaskOutput{}, err
	}
	return toOutput(task), nil
}

func (i *Interactor) Delete(ctx context.Context, ref dto.TaskRef) (bool, error) {
	removed, err := i.svc.Delete(ctx, ref.GoalID, ref.TaskID)
	if err != nil {
		return false, err
	}
	if !removed {
		i.logger.Debug("delete of unknown task ignored", zap.Int("goal_id", ref.GoalID), zap.Int("task_id", ref.TaskID))
	}
	return removed, nil
}

func (i *Interactor) Cleanup(ctx context.Context, goalID int) error {
	if err := i.svc.Cleanup(ctx, goalID); err != nil {
		return err
	}
	i.logger.Debug("tasks cleaned up", zap.Int("goal_id", goalID))
	return nil
}

func toOutput(t domain.Task) dto.TaskOutput {
	return dto.TaskOutput{
		TaskID:      t.TaskID,
		GoalID:      t.GoalID,
		Name:        t.Name,
		DueDate:     t.DueDate,
		Completed:   t.Completed,
		CompletedAt: t.CompletedAt,
	}
}
