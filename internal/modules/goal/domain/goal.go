package domain

import (
	"fmt"
	"strings"
	"time"

	apperrors "planr/internal/platform/errors"
	"planr/internal/platform/state"
)

const (
	KeyGoals  = "goals"
	KeyLastID = "goals.lastId"
)

// Goal is persisted as one element of the JSON array stored under KeyGoals.
type Goal struct {
	GoalID      int        `json:"goalId"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

// TaskCounterKey is the per-goal auxiliary counter released when the goal is deleted.
func TaskCounterKey(goalID int) string {
	return fmt.Sprintf("goals.%d.lastId", goalID)
}

func (g Goal) Validate() error {
	if g.GoalID <= 0 {
		return fmt.Errorf("goal id must be positive, got %d", g.GoalID)
	}
	return nil
}

// ValidateDraft checks user supplied fields before a goal is created or edited.
func ValidateDraft(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: goal name is required", apperrors.ErrInvalidInput)
	}
	return nil
}

func DecodeGoals(raw string) ([]Goal, error) {
	goals, err := state.DecodeList[Goal](KeyGoals, raw)
	if err != nil {
		return nil, err
	}
	seen := make(map[int]struct{}, len(goals))
	for _, g := range goals {
		if err := g.Validate(); err != nil {
			return nil, fmt.Errorf("%w: decode %s: %v", apperrors.ErrCorruptState, KeyGoals, err)
		}
		if _, dup := seen[g.GoalID]; dup {
			return nil, fmt.Errorf("%w: decode %s: duplicate goal id %d", apperrors.ErrCorruptState, KeyGoals, g.GoalID)
		}
		seen[g.GoalID] = struct{}{}
	}
	return goals, nil
}

func EncodeGoals(goals []Goal) (string, error) {
	return state.EncodeList(KeyGoals, goals)
}

func Find(goals []Goal, goalID int) (Goal, bool) {
	for _, g := range goals {
		if g.GoalID == goalID {
			return g, true
		}
	}
	return Goal{}, false
}

// MaxID is the highest identifier in goals, or zero for an empty collection.
func MaxID(goals []Goal) int {
	highest := 0
	for _, g := range goals {
		if g.GoalID > highest {
			highest = g.GoalID
		}
	}
	return highest
}

// Remove returns goals without goalID and whether anything was dropped.
func Remove(goals []Goal, goalID int) ([]Goal, bool) {
	out := make([]Goal, 0, len(goals))
	removed := false
	for _, g := range goals {
		if g.GoalID == goalID {
			removed = true
			continue
		}
		out = append(out, g)
	}
	return out, removed
}
