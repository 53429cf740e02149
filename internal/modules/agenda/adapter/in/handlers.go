package in

import (
	"context"

	agendadto "planr/internal/modules/agenda/dto"
	agendain "planr/internal/modules/agenda/port/in"
)

// Handlers applies agenda actions and pushes the resulting state into view.
type Handlers struct {
	usecase agendain.Usecase
	view    agendain.View
}

func NewHandlers(usecase agendain.Usecase, view agendain.View) Handlers {
	return Handlers{usecase: usecase, view: view}
}

// Load pushes the current agenda and its marked dates.
func (h Handlers) Load(ctx context.Context) error {
	items, err := h.usecase.Items(ctx)
	if err != nil {
		return err
	}
	h.view.SetAgendaItems(items)
	h.view.SetMarkedDates(h.usecase.MarkDates(items))
	return nil
}

// HandleDelete refreshes both the items and the marked dates.
func (h Handlers) HandleDelete(ctx context.Context, item agendadto.ItemOutput) error {
	items, err := h.usecase.Delete(ctx, item)
	if err != nil {
		return err
	}
	h.view.SetAgendaItems(items)
	h.view.SetMarkedDates(h.usecase.MarkDates(items))
	return nil
}

// HandleComplete refreshes the items only; marked dates keep their last value.
func (h Handlers) HandleComplete(ctx context.Context, item agendadto.ItemOutput) error {
	items, err := h.usecase.Complete(ctx, item)
	if err != nil {
		return err
	}
	h.view.SetAgendaItems(items)
	return nil
}
