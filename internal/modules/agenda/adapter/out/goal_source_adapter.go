package out

import (
	"context"

	"planr/internal/modules/agenda/domain"
	agendaout "planr/internal/modules/agenda/port/out"
	goalin "planr/internal/modules/goal/port/in"
)

type GoalSourceAdapter struct {
	goals goalin.Usecase
}

func NewGoalSourceAdapter(goals goalin.Usecase) agendaout.GoalSource {
	return &GoalSourceAdapter{goals: goals}
}

func (a *GoalSourceAdapter) ListGoals(ctx context.Context) ([]domain.Goal, error) {
	goals, err := a.goals.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Goal, 0, len(goals))
	for _, g := range goals {
		out = append(out, domain.Goal{GoalID: g.GoalID, Name: g.Name})
	}
	return out, nil
}
