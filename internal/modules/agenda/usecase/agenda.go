package usecase

import (
	"context"

	"go.uber.org/zap"

	"planr/internal/modules/agenda/domain"
	"planr/internal/modules/agenda/dto"
	agendain "planr/internal/modules/agenda/port/in"
	"planr/internal/modules/agenda/service"
	"planr/internal/platform/logging"
)

type Interactor struct {
	svc    *service.AgendaService
	logger *zap.Logger
}

func NewInteractor(svc *service.AgendaService, logger *zap.Logger) agendain.Usecase {
	return &Interactor{svc: svc, logger: logging.OrNop(logger)}
}

func (i *Interactor) Items(ctx context.Context) ([]dto.ItemOutput, error) {
	items, err := i.svc.Items(ctx)
	if err != nil {
		return nil, err
	}
	return toOutputs(items), nil
}

func (i *Interactor) Delete(ctx context.Context, item dto.ItemOutput) ([]dto.ItemOutput, error) {
	items, err := i.svc.Delete(ctx, fromOutput(item))
	if err != nil {
		return nil, err
	}
	i.logger.Info("agenda item deleted", zap.Int("goal_id", item.GoalID), zap.Int("task_id", item.TaskID))
	return toOutputs(items), nil
}

func (i *Interactor) Complete(ctx context.Context, item dto.ItemOutput) ([]dto.ItemOutput, error) {
	items, err := i.svc.Complete(ctx, fromOutput(item))
	if err != nil {
		return nil, err
	}
	i.logger.Info("agenda item completed", zap.Int("goal_id", item.GoalID), zap.Int("task_id", item.TaskID))
	return toOutputs(items), nil
}

func (i *Interactor) MarkDates(items []dto.ItemOutput) dto.MarkedDatesOutput {
	domainItems := make([]domain.Item, 0, len(items))
	for _, it := range items {
		domainItems = append(domainItems, fromOutput(it))
	}
	marks := i.svc.MarkDates(domainItems)
	out := make(dto.MarkedDatesOutput, len(marks))
	for date, m := range marks {
		out[date] = dto.MarkOutput{Marked: m.Marked, AllDone: m.AllDone}
	}
	return out
}

func fromOutput(it dto.ItemOutput) domain.Item {
	return domain.Item{
		GoalID:    it.GoalID,
		GoalName:  it.GoalName,
		TaskID:    it.TaskID,
		Name:      it.Name,
		Date:      it.Date,
		Completed: it.Completed,
	}
}

func toOutputs(items []domain.Item) []dto.ItemOutput {
	out := make([]dto.ItemOutput, 0, len(items))
	for _, it := range items {
		out = append(out, dto.ItemOutput{
			GoalID:    it.GoalID,
			GoalName:  it.GoalName,
			TaskID:    it.TaskID,
			Name:      it.Name,
			Date:      it.Date,
			Completed: it.Completed,
		})
	}
	return out
}
