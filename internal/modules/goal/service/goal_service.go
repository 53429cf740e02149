package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"planr/internal/modules/goal/domain"
	goalout "planr/internal/modules/goal/port/out"
	"planr/internal/platform/clock"
	apperrors "planr/internal/platform/errors"
	"planr/internal/platform/state"
	"planr/internal/platform/tx"
)

// GoalService owns the goal collection. Every mutation is a full
// read-modify-write of the collection under the collection's key lock.
type GoalService struct {
	clock clock.Clock
	store goalout.KeyValueStore
	locks tx.Locker
}

func NewGoalService(clock clock.Clock, store goalout.KeyValueStore, locks tx.Locker) *GoalService {
	if locks == nil {
		locks = tx.NewKeyedLocker()
	}
	return &GoalService{clock: clock, store: store, locks: locks}
}

func (s *GoalService) List(ctx context.Context) ([]domain.Goal, error) {
	return s.load(ctx)
}

func (s *GoalService) Get(ctx context.Context, goalID int) (domain.Goal, error) {
	goals, err := s.load(ctx)
	if err != nil {
		return domain.Goal{}, err
	}
	goal, ok := domain.Find(goals, goalID)
	if !ok {
		return domain.Goal{}, fmt.Errorf("goal %d: %w", goalID, apperrors.ErrNotFound)
	}
	return goal, nil
}

// Save overwrites the whole collection.
func (s *GoalService) Save(ctx context.Context, goals []domain.Goal) error {
	return s.locks.For(domain.KeyGoals).Within(ctx, func(ctx context.Context) error {
		return s.persist(ctx, goals)
	})
}

// Insert appends goal to the collection. An existing record with the same
// id is never replaced; the call fails with ErrConflict instead.
func (s *GoalService) Insert(ctx context.Context, goal domain.Goal) ([]domain.Goal, error) {
	if err := goal.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	var out []domain.Goal
	err := s.locks.For(domain.KeyGoals).Within(ctx, func(ctx context.Context) error {
		goals, err := s.load(ctx)
		if err != nil {
			return err
		}
		if _, ok := domain.Find(goals, goal.GoalID); ok {
			return fmt.Errorf("goal %d: %w", goal.GoalID, apperrors.ErrConflict)
		}
		out = append(goals, goal)
		return s.persist(ctx, out)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ApplyRemote reconciles remote records into the stored collection and
// returns the collection as persisted.
func (s *GoalService) ApplyRemote(ctx context.Context, remote []domain.Goal) ([]domain.Goal, error) {
	for _, g := range remote {
		if err := g.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
		}
	}
	var out []domain.Goal
	err := s.locks.For(domain.KeyGoals).Within(ctx, func(ctx context.Context) error {
		goals, err := s.load(ctx)
		if err != nil {
			return err
		}
		if len(remote) == 0 {
			out = goals
			return nil
		}
		merged := domain.Reconcile(goals, remote)
		if err := s.persist(ctx, merged); err != nil {
			return err
		}
		if err := s.advanceCounter(ctx, domain.MaxID(merged)); err != nil {
			return err
		}
		out, err = s.load(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Edit replaces name and description of goalID. It reports false without
// touching storage when the goal does not exist, whatever the draft holds.
func (s *GoalService) Edit(ctx context.Context, goalID int, name, description string) (domain.Goal, bool, error) {
	var edited domain.Goal
	found := false
	err := s.locks.For(domain.KeyGoals).Within(ctx, func(ctx context.Context) error {
		goals, err := s.load(ctx)
		if err != nil {
			return err
		}
		for i := range goals {
			if goals[i].GoalID != goalID {
				continue
			}
			if err := domain.ValidateDraft(name); err != nil {
				return err
			}
			now := s.clock.Now()
			goals[i].Name = strings.TrimSpace(name)
			goals[i].Description = description
			goals[i].UpdatedAt = &now
			edited = goals[i]
			found = true
		}
		if !found {
			return nil
		}
		return s.persist(ctx, goals)
	})
	if err != nil {
		return domain.Goal{}, false, err
	}
	return edited, found, nil
}

// Delete drops goalID from the collection and releases its auxiliary counter.
func (s *GoalService) Delete(ctx context.Context, goalID int) (bool, error) {
	removed := false
	err := s.locks.For(domain.KeyGoals).Within(ctx, func(ctx context.Context) error {
		goals, err := s.load(ctx)
		if err != nil {
			return err
		}
		var remaining []domain.Goal
		remaining, removed = domain.Remove(goals, goalID)
		return s.persist(ctx, remaining)
	})
	if err != nil {
		return false, err
	}
	if err := s.store.Delete(ctx, domain.TaskCounterKey(goalID)); err != nil {
		return removed, fmt.Errorf("release goal counter: %w", err)
	}
	return removed, nil
}

// NewGoal issues the next identifier and returns the goal descriptor. The
// identifier is above both the counter and every stored id, so goals that
// arrived through sync are never shadowed. The goal is not added to the
// collection; callers append it with Insert.
func (s *GoalService) NewGoal(ctx context.Context, name, description string, dueDate *time.Time) (domain.Goal, error) {
	if err := domain.ValidateDraft(name); err != nil {
		return domain.Goal{}, err
	}
	var goal domain.Goal
	err := s.locks.For(domain.KeyLastID).Within(ctx, func(ctx context.Context) error {
		lastID, err := s.readCounter(ctx)
		if err != nil {
			return err
		}
		goals, err := s.load(ctx)
		if err != nil {
			return err
		}
		lastID = max(lastID, domain.MaxID(goals))
		now := s.clock.Now()
		goal = domain.Goal{
			GoalID:      lastID + 1,
			Name:        strings.TrimSpace(name),
			Description: description,
			DueDate:     dueDate,
			UpdatedAt:   &now,
		}
		return s.writeCounter(ctx, goal.GoalID)
	})
	if err != nil {
		return domain.Goal{}, err
	}
	return goal, nil
}

// advanceCounter raises goals.lastId to highest. It never lowers it, so
// identifiers released by Delete stay retired. Callers may hold the
// collection lock; the counter lock is always taken second.
func (s *GoalService) advanceCounter(ctx context.Context, highest int) error {
	return s.locks.For(domain.KeyLastID).Within(ctx, func(ctx context.Context) error {
		lastID, err := s.readCounter(ctx)
		if err != nil {
			return err
		}
		if lastID >= highest {
			return nil
		}
		return s.writeCounter(ctx, highest)
	})
}

func (s *GoalService) readCounter(ctx context.Context) (int, error) {
	raw, _, err := s.store.GetString(ctx, domain.KeyLastID)
	if err != nil {
		return 0, fmt.Errorf("read goal counter: %w", err)
	}
	return state.ParseCounter(domain.KeyLastID, raw)
}

func (s *GoalService) writeCounter(ctx context.Context, lastID int) error {
	if err := s.store.SetString(ctx, domain.KeyLastID, state.FormatCounter(lastID)); err != nil {
		return fmt.Errorf("write goal counter: %w", err)
	}
	return nil
}

func (s *GoalService) load(ctx context.Context) ([]domain.Goal, error) {
	raw, ok, err := s.store.GetString(ctx, domain.KeyGoals)
	if err != nil {
		return nil, fmt.Errorf("read goals: %w", err)
	}
	if !ok {
		return []domain.Goal{}, nil
	}
	return domain.DecodeGoals(raw)
}

func (s *GoalService) persist(ctx context.Context, goals []domain.Goal) error {
	raw, err := domain.EncodeGoals(goals)
	if err != nil {
		return err
	}
	if err := s.store.SetString(ctx, domain.KeyGoals, raw); err != nil {
		return fmt.Errorf("write goals: %w", err)
	}
	return nil
}
