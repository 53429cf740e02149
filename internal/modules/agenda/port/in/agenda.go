package in

import (
	"context"

	"planr/internal/modules/agenda/dto"
)

type Usecase interface {
	Items(ctx context.Context) ([]dto.ItemOutput, error)
	Delete(ctx context.Context, item dto.ItemOutput) ([]dto.ItemOutput, error)
	Complete(ctx context.Context, item dto.ItemOutput) ([]dto.ItemOutput, error)
	MarkDates(items []dto.ItemOutput) dto.MarkedDatesOutput
}

// View is whatever renders the agenda. Handlers push new state into it.
type View interface {
	SetAgendaItems(items []dto.ItemOutput)
	SetMarkedDates(marks dto.MarkedDatesOutput)
}
