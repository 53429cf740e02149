package in

import (
	"context"

	"planr/internal/modules/task/dto"
)

type Usecase interface {
	Add(ctx context.Context, input dto.AddInput) (dto.TaskOutput, error)
	List(ctx context.Context, goalID int) ([]dto.TaskOutput, error)
	Complete(ctx context.Context, ref dto.TaskRef) (dto.TaskOutput, error)
	Delete(ctx context.Context, ref dto.TaskRef) (bool, error)
	Cleanup(ctx context.Context, goalID int) error
}
