package in

import (
	"context"

	"planr/internal/modules/goal/dto"
)

type Usecase interface {
	List(ctx context.Context) ([]dto.GoalOutput, error)
	Get(ctx context.Context, goalID int) (dto.GoalOutput, error)
	Sync(ctx context.Context) (dto.SyncOutput, error)
	Create(ctx context.Context, input dto.CreateInput) (dto.GoalOutput, error)
	Edit(ctx context.Context, input dto.EditInput) (dto.EditOutput, error)
	Delete(ctx context.Context, goalID int) (dto.DeleteOutput, error)
}
