package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"planr/internal/modules/task/domain"
	taskout "planr/internal/modules/task/port/out"
	"planr/internal/platform/clock"
	apperrors "planr/internal/platform/errors"
	"planr/internal/platform/state"
	"planr/internal/platform/tx"
)

type TaskService struct {
	clock clock.Clock
	store taskout.KeyValueStore
	locks tx.Locker
}

func NewTaskService(clock clock.Clock, store taskout.KeyValueStore, locks tx.Locker) *TaskService {
	if locks == nil {
		locks = tx.NewKeyedLocker()
	}
	return &TaskService{clock: clock, store: store, locks: locks}
}

func (s *TaskService) List(ctx context.Context, goalID int) ([]domain.Task, error) {
	return s.load(ctx, goalID)
}

func (s *TaskService) Add(ctx context.Context, goalID int, name string, dueDate *time.Time) (domain.Task, error) {
	if err := domain.ValidateDraft(goalID, name); err != nil {
		return domain.Task{}, err
	}
	var task domain.Task
	err := s.locks.For(domain.TasksKey(goalID)).Within(ctx, func(ctx context.Context) error {
		raw, _, err := s.store.GetString(ctx, domain.CounterKey(goalID))
		if err != nil {
			return fmt.Errorf("read task counter: %w", err)
		}
		lastID, err := state.ParseCounter(domain.CounterKey(goalID), raw)
		if err != nil {
			return err
		}
		tasks, err := s.load(ctx, goalID)
		if err != nil {
			return err
		}
		now := s.clock.Now()
		task = domain.Task{
			TaskID:    lastID + 1,
			GoalID:    goalID,
			Name:      strings.TrimSpace(name),
			DueDate:   dueDate,
			UpdatedAt: &now,
		}
		if err := s.store.SetString(ctx, domain.CounterKey(goalID), state.FormatCounter(task.TaskID)); err != nil {
			return fmt.Errorf("write task counter: %w", err)
		}
		return s.persist(ctx, goalID, append(tasks, task))
	})
	if err != nil {
		return domain.Task{}, err
	}
	return task, nil
}

// Complete marks the task done. Completing twice keeps the first completion time.
func (s *TaskService) Complete(ctx context.Context, goalID, taskID int) (domain.Task, error) {
	var done domain.Task
	err := s.locks.For(domain.TasksKey(goalID)).Within(ctx, func(ctx context.Context) error {
		tasks, err := s.load(ctx, goalID)
		if err != nil {
			return err
		}
		for i := range tasks {
			if tasks[i].TaskID != taskID {
				continue
			}
			if !tasks[i].Completed {
				now := s.clock.Now()
				tasks[i].Completed = true
				tasks[i].CompletedAt = &now
				tasks[i].UpdatedAt = &now
			}
			done = tasks[i]
			return s.persist(ctx, goalID, tasks)
		}
		return fmt.Errorf("task %d of goal %d: %w", taskID, goalID, apperrors.ErrNotFound)
	})
	if err != nil {
		return domain.Task{}, err
	}
	return done, nil
}

func (s *TaskService) Delete(ctx context.Context, goalID, taskID int) (bool, error) {
	removed := false
	err := s.locks.For(domain.TasksKey(goalID)).Within(ctx, func(ctx context.Context) error {
		tasks, err := s.load(ctx, goalID)
		if err != nil {
			return err
		}
		out := make([]domain.Task, 0, len(tasks))
		for _, t := range tasks {
			if t.TaskID == taskID {
				removed = true
				continue
			}
			out = append(out, t)
		}
		if !removed {
			return nil
		}
		return s.persist(ctx, goalID, out)
	})
	return removed, err
}

// Cleanup purges every task of goalID.
func (s *TaskService) Cleanup(ctx context.Context, goalID int) error {
	return s.locks.For(domain.TasksKey(goalID)).Within(ctx, func(ctx context.Context) error {
		if err := s.store.Delete(ctx, domain.TasksKey(goalID)); err != nil {
			return fmt.Errorf("cleanup tasks: %w", err)
		}
		return nil
	})
}

func (s *TaskService) load(ctx context.Context, goalID int) ([]domain.Task, error) {
	raw, ok, err := s.store.GetString(ctx, domain.TasksKey(goalID))
	if err != nil {
		return nil, fmt.Errorf("read tasks: %w", err)
	}
	if !ok {
		return []domain.Task{}, nil
	}
	return domain.DecodeTasks(goalID, raw)
}

func (s *TaskService) persist(ctx context.Context, goalID int, tasks []domain.Task) error {
	raw, err := domain.EncodeTasks(goalID, tasks)
	if err != nil {
		return err
	}
	if err := s.store.SetString(ctx, domain.TasksKey(goalID), raw); err != nil {
		return fmt.Errorf("write tasks: %w", err)
	}
	return nil
}
