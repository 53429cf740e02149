package bootstrap

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	agendainadapter "planr/internal/modules/agenda/adapter/in"
	agendaoutadapter "planr/internal/modules/agenda/adapter/out"
	agendain "planr/internal/modules/agenda/port/in"
	agendaservice "planr/internal/modules/agenda/service"
	agendausecase "planr/internal/modules/agenda/usecase"
	authinadapter "planr/internal/modules/auth/adapter/in"
	authservice "planr/internal/modules/auth/service"
	authusecase "planr/internal/modules/auth/usecase"
	goalinadapter "planr/internal/modules/goal/adapter/in"
	goaloutadapter "planr/internal/modules/goal/adapter/out"
	goalout "planr/internal/modules/goal/port/out"
	goalservice "planr/internal/modules/goal/service"
	goalusecase "planr/internal/modules/goal/usecase"
	taskinadapter "planr/internal/modules/task/adapter/in"
	taskservice "planr/internal/modules/task/service"
	taskusecase "planr/internal/modules/task/usecase"
	"planr/internal/platform/clock"
	"planr/internal/platform/config"
	"planr/internal/platform/id"
	"planr/internal/platform/kv"
	"planr/internal/platform/logging"
	"planr/internal/platform/tx"
	uiapp "planr/internal/ui/app"
	agendaview "planr/internal/ui/views/agenda"
)

type App struct {
	GoalCLI   goalinadapter.CLIHandler
	TaskCLI   taskinadapter.CLIHandler
	AgendaCLI agendainadapter.CLIHandler
	AuthCLI   authinadapter.CLIHandler
	Logger    *zap.Logger

	close func() error
}

// New wires every module onto one store and one lock table so goals, tasks
// and the token share a consistent view of storage.
func New(cfg config.Config) (*App, error) {
	logger, err := logging.New(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	store, closeStore, err := openStore(cfg)
	if err != nil {
		return nil, err
	}

	clk := clock.SystemClock{}
	locks := tx.NewKeyedLocker()

	taskUC := taskusecase.NewInteractor(taskservice.NewTaskService(clk, store, locks), logger.Named("task"))
	authUC := authusecase.NewInteractor(authservice.NewTokenService(clk, store))

	var remote goalout.RemoteGoals
	if cfg.Remote.BaseURL != "" {
		remote = goaloutadapter.NewHTTPRemote(cfg.Remote.BaseURL, cfg.Remote.Timeout, id.UUID{})
	}
	goalUC := goalusecase.NewInteractor(
		goalservice.NewGoalService(clk, store, locks),
		remote,
		goaloutadapter.NewTokenAdapter(authUC),
		goaloutadapter.NewTaskCleanupAdapter(taskUC),
		logger.Named("goal"),
	)

	agendaUC := agendausecase.NewInteractor(agendaservice.NewAgendaService(
		agendaoutadapter.NewGoalSourceAdapter(goalUC),
		agendaoutadapter.NewTaskSourceAdapter(taskUC),
	), logger.Named("agenda"))

	logger.Debug("bootstrap complete",
		zap.String("storage", cfg.Storage.Driver),
		zap.Bool("remote", remote != nil),
	)
	return &App{
		GoalCLI:   goalinadapter.NewCLIHandler(goalUC),
		TaskCLI:   taskinadapter.NewCLIHandler(taskUC),
		AgendaCLI: agendainadapter.NewCLIHandler(agendaUC),
		AuthCLI:   authinadapter.NewCLIHandler(authUC),
		Logger:    logger,
		close:     closeStore,
	}, nil
}

// Close releases the store and flushes the logger.
func (a *App) Close() error {
	_ = a.Logger.Sync()
	if a.close == nil {
		return nil
	}
	return a.close()
}

func openStore(cfg config.Config) (kv.Store, func() error, error) {
	switch cfg.Storage.Driver {
	case config.DriverMemory:
		return kv.NewMemoryStore(), nil, nil
	case config.DriverSQLite, config.DriverPostgres:
		store, err := kv.NewSQLStore(cfg.Storage.Driver, cfg.StorageDSN())
		if err != nil {
			return nil, nil, fmt.Errorf("open %s store: %w", cfg.Storage.Driver, err)
		}
		return store, store.Close, nil
	default:
		return nil, nil, fmt.Errorf("unsupported storage driver %q", cfg.Storage.Driver)
	}
}

func RunTUI(app *App) error {
	bind := func(view agendain.View) agendaview.Actions {
		return app.AgendaCLI.Handlers(view)
	}
	model := uiapp.NewModel(app.GoalCLI, app.TaskCLI, bind)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
