package domain

import (
	"fmt"
	"strings"
	"time"

	apperrors "planr/internal/platform/errors"
	"planr/internal/platform/state"
)

type Task struct {
	TaskID      int        `json:"taskId"`
	GoalID      int        `json:"goalId"`
	Name        string     `json:"name"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

func TasksKey(goalID int) string {
	return fmt.Sprintf("goals.%d.tasks", goalID)
}

// CounterKey holds the last task id issued for goalID.
func CounterKey(goalID int) string {
	return fmt.Sprintf("goals.%d.lastId", goalID)
}

func ValidateDraft(goalID int, name string) error {
	if goalID <= 0 {
		return fmt.Errorf("%w: goal id must be positive", apperrors.ErrInvalidInput)
	}
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: task name is required", apperrors.ErrInvalidInput)
	}
	return nil
}

func DecodeTasks(goalID int, raw string) ([]Task, error) {
	key := TasksKey(goalID)
	tasks, err := state.DecodeList[Task](key, raw)
	if err != nil {
		return nil, err
	}
	seen := make(map[int]struct{}, len(tasks))
	for _, t := range tasks {
		if t.TaskID <= 0 || t.GoalID != goalID {
			return nil, fmt.Errorf("%w: decode %s: invalid task %d for goal %d", apperrors.ErrCorruptState, key, t.TaskID, t.GoalID)
		}
		if _, dup := seen[t.TaskID]; dup {
			return nil, fmt.Errorf("%w: decode %s: duplicate task id %d", apperrors.ErrCorruptState, key, t.TaskID)
		}
		seen[t.TaskID] = struct{}{}
	}
	return tasks, nil
}

func EncodeTasks(goalID int, tasks []Task) (string, error) {
	return state.EncodeList(TasksKey(goalID), tasks)
}
