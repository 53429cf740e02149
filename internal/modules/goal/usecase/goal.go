package usecase

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"planr/internal/modules/goal/domain"
	"planr/internal/modules/goal/dto"
	goalin "planr/internal/modules/goal/port/in"
	goalout "planr/internal/modules/goal/port/out"
	"planr/internal/modules/goal/service"
	apperrors "planr/internal/platform/errors"
	"planr/internal/platform/logging"
)

type Interactor struct {
	svc    *service.GoalService
	remote goalout.RemoteGoals
	tokens goalout.TokenSource
	tasks  goalout.TaskCleaner
	logger *zap.Logger
	syncs  singleflight.Group
}

// NewInteractor wires the goal usecases. remote, tokens and tasks may be nil:
// without remote or tokens Sync only reads local state, without tasks Delete
// does not cascade.
func NewInteractor(svc *service.GoalService, remote goalout.RemoteGoals, tokens goalout.TokenSource, tasks goalout.TaskCleaner, logger *zap.Logger) goalin.Usecase {
	return &Interactor{svc: svc, remote: remote, tokens: tokens, tasks: tasks, logger: logging.OrNop(logger)}
}

func (i *Interactor) List(ctx context.Context) ([]dto.GoalOutput, error) {
	goals, err := i.svc.List(ctx)
	if err != nil {
		return nil, err
	}
	return toOutputs(goals), nil
}

func (i *Interactor) Get(ctx context.Context, goalID int) (dto.GoalOutput, error) {
	goal, err := i.svc.Get(ctx, goalID)
	if err != nil {
		return dto.GoalOutput{}, err
	}
	return toOutput(goal), nil
}

// Sync reconciles remote changes into the local collection. Concurrent calls
// share one fetch.
func (i *Interactor) Sync(ctx context.Context) (dto.SyncOutput, error) {
	v, err, _ := i.syncs.Do("sync", func() (any, error) {
		return i.sync(ctx)
	})
	if err != nil {
		return dto.SyncOutput{}, err
	}
	return v.(dto.SyncOutput), nil
}

func (i *Interactor) sync(ctx context.Context) (dto.SyncOutput, error) {
	goals, err := i.svc.List(ctx)
	if err != nil {
		return dto.SyncOutput{}, err
	}
	since := domain.LastSync(goals)
	out := dto.SyncOutput{Since: domain.FormatISO(since)}

	remote := i.fetch(ctx, since)
	out.Fetched = len(remote)

	merged, err := i.svc.ApplyRemote(ctx, remote)
	if err != nil {
		return dto.SyncOutput{}, err
	}
	out.Goals = toOutputs(merged)
	return out, nil
}

// fetch never fails: a missing token, an unconfigured remote and remote
// errors all mean no updates.
func (i *Interactor) fetch(ctx context.Context, since time.Time) []domain.Goal {
	if i.remote == nil || i.tokens == nil {
		i.logger.Debug("skipping remote fetch", zap.Error(apperrors.ErrNotConfigured))
		return nil
	}
	token, err := i.tokens.Token(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrNoToken) || errors.Is(err, apperrors.ErrTokenExpired) {
			i.logger.Debug("skipping remote fetch", zap.Error(err))
		} else {
			i.logger.Warn("read auth token", zap.Error(err))
		}
		return nil
	}
	remote, err := i.remote.FetchSince(ctx, token, since)
	if err != nil {
		i.logger.Warn("fetch remote goals", zap.String("since", domain.FormatISO(since)), zap.Error(err))
		return nil
	}
	i.logger.Debug("fetched remote goals", zap.Int("count", len(remote)), zap.String("since", domain.FormatISO(since)))
	return remote
}

func (i *Interactor) Create(ctx context.Context, input dto.CreateInput) (dto.GoalOutput, error) {
	goal, err := i.svc.NewGoal(ctx, input.Name, input.Description, input.DueDate)
	if err != nil {
		return dto.GoalOutput{}, err
	}
	if _, err := i.svc.Insert(ctx, goal); err != nil {
		return dto.GoalOutput{}, err
	}
	i.logger.Info("goal created", zap.Int("goal_id", goal.GoalID))
	return toOutput(goal), nil
}

func (i *Interactor) Edit(ctx context.Context, input dto.EditInput) (dto.EditOutput, error) {
	goal, updated, err := i.svc.Edit(ctx, input.GoalID, input.Name, input.Description)
	if err != nil {
		return dto.EditOutput{}, err
	}
	if !updated {
		i.logger.Debug("edit of unknown goal ignored", zap.Int("goal_id", input.GoalID))
		return dto.EditOutput{}, nil
	}
	return dto.EditOutput{Goal: toOutput(goal), Updated: true}, nil
}

func (i *Interactor) Delete(ctx context.Context, goalID int) (dto.DeleteOutput, error) {
	removed, err := i.svc.Delete(ctx, goalID)
	if err != nil {
		return dto.DeleteOutput{}, err
	}
	if i.tasks != nil {
		if err := i.tasks.CleanupTasks(ctx, goalID); err != nil {
			return dto.DeleteOutput{}, err
		}
	}
	if !removed {
		i.logger.Debug("delete of unknown goal ignored", zap.Int("goal_id", goalID))
	}
	return dto.DeleteOutput{GoalID: goalID, Removed: removed}, nil
}

func toOutput(g domain.Goal) dto.GoalOutput {
	return dto.GoalOutput{
		GoalID:      g.GoalID,
		Name:        g.Name,
		Description: g.Description,
		DueDate:     g.DueDate,
		UpdatedAt:   g.UpdatedAt,
	}
}

func toOutputs(goals []domain.Goal) []dto.GoalOutput {
	out := make([]dto.GoalOutput, 0, len(goals))
	for _, g := range goals {
		out = append(out, toOutput(g))
	}
	return out
}
