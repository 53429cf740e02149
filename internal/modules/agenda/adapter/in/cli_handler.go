package in

import (
	"context"
	"fmt"

	agendadto "planr/internal/modules/agenda/dto"
	agendain "planr/internal/modules/agenda/port/in"
	apperrors "planr/internal/platform/errors"
)

type CLIHandler struct {
	usecase agendain.Usecase
}

func NewCLIHandler(usecase agendain.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Items(ctx context.Context) ([]agendadto.ItemOutput, error) {
	return h.usecase.Items(ctx)
}

func (h CLIHandler) MarkedDates(ctx context.Context) (agendadto.MarkedDatesOutput, error) {
	items, err := h.usecase.Items(ctx)
	if err != nil {
		return nil, err
	}
	return h.usecase.MarkDates(items), nil
}

// Handlers binds the agenda actions to view.
func (h CLIHandler) Handlers(view agendain.View) Handlers {
	return NewHandlers(h.usecase, view)
}

// Lookup finds the agenda item of a task.
func (h CLIHandler) Lookup(ctx context.Context, goalID, taskID int) (agendadto.ItemOutput, error) {
	items, err := h.usecase.Items(ctx)
	if err != nil {
		return agendadto.ItemOutput{}, err
	}
	for _, it := range items {
		if it.GoalID == goalID && it.TaskID == taskID {
			return it, nil
		}
	}
	return agendadto.ItemOutput{}, fmt.Errorf("agenda item %d/%d: %w", goalID, taskID, apperrors.ErrNotFound)
}
