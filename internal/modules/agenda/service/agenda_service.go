package service

import (
	"context"
	"fmt"

	"planr/internal/modules/agenda/domain"
	agendaout "planr/internal/modules/agenda/port/out"
)

// AgendaService derives the agenda from goals and their tasks. It keeps no
// state of its own; every call rebuilds the items from the sources.
type AgendaService struct {
	goals agendaout.GoalSource
	tasks agendaout.TaskSource
}

func NewAgendaService(goals agendaout.GoalSource, tasks agendaout.TaskSource) *AgendaService {
	return &AgendaService{goals: goals, tasks: tasks}
}

func (s *AgendaService) Items(ctx context.Context) ([]domain.Item, error) {
	goals, err := s.goals.ListGoals(ctx)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	var tasks []domain.Task
	for _, g := range goals {
		goalTasks, err := s.tasks.ListTasks(ctx, g.GoalID)
		if err != nil {
			return nil, fmt.Errorf("list tasks of goal %d: %w", g.GoalID, err)
		}
		tasks = append(tasks, goalTasks...)
	}
	return domain.BuildItems(goals, tasks), nil
}

// Delete removes the item's task and returns the refreshed agenda.
func (s *AgendaService) Delete(ctx context.Context, item domain.Item) ([]domain.Item, error) {
	if err := s.tasks.DeleteTask(ctx, item.GoalID, item.TaskID); err != nil {
		return nil, fmt.Errorf("delete agenda item: %w", err)
	}
	return s.Items(ctx)
}

// Complete marks the item's task done and returns the refreshed agenda.
func (s *AgendaService) Complete(ctx context.Context, item domain.Item) ([]domain.Item, error) {
	if err := s.tasks.CompleteTask(ctx, item.GoalID, item.TaskID); err != nil {
		return nil, fmt.Errorf("complete agenda item: %w", err)
	}
	return s.Items(ctx)
}

func (s *AgendaService) MarkDates(items []domain.Item) domain.MarkedDates {
	return domain.Marks(items)
}
