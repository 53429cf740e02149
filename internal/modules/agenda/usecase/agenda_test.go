package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap/zaptest"

	agendaout "planr/internal/modules/agenda/adapter/out"
	"planr/internal/modules/agenda/dto"
	agendain "planr/internal/modules/agenda/port/in"
	"planr/internal/modules/agenda/service"
	"planr/internal/modules/agenda/usecase"
	goaldto "planr/internal/modules/goal/dto"
	goalin "planr/internal/modules/goal/port/in"
	goalservice "planr/internal/modules/goal/service"
	goalusecase "planr/internal/modules/goal/usecase"
	taskdto "planr/internal/modules/task/dto"
	taskin "planr/internal/modules/task/port/in"
	taskservice "planr/internal/modules/task/service"
	taskusecase "planr/internal/modules/task/usecase"
	"planr/internal/platform/clock"
	"planr/internal/platform/kv"
	"planr/internal/platform/tx"
)

type fixture struct {
	goals  goalin.Usecase
	tasks  taskin.Usecase
	agenda agendain.Usecase
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	store := kv.NewMemoryStore()
	clk := clock.Fixed(time.Date(2026, 2, 25, 10, 0, 0, 0, time.UTC))
	locks := tx.NewKeyedLocker()
	logger := zaptest.NewLogger(t)
	tasks := taskusecase.NewInteractor(taskservice.NewTaskService(clk, store, locks), logger)
	goals := goalusecase.NewInteractor(goalservice.NewGoalService(clk, store, locks), nil, nil, nil, logger)
	agenda := usecase.NewInteractor(service.NewAgendaService(
		agendaout.NewGoalSourceAdapter(goals),
		agendaout.NewTaskSourceAdapter(tasks),
	), logger)
	return fixture{goals: goals, tasks: tasks, agenda: agenda}
}

func date(d int) *time.Time {
	t := time.Date(2026, 3, d, 9, 0, 0, 0, time.UTC)
	return &t
}

func (f fixture) seed(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	run, err := f.goals.Create(ctx, goaldto.CreateInput{Name: "Run"})
	if err != nil {
		t.Fatalf("create goal: %v", err)
	}
	read, err := f.goals.Create(ctx, goaldto.CreateInput{Name: "Read"})
	if err != nil {
		t.Fatalf("create goal: %v", err)
	}
	for _, in := range []taskdto.AddInput{
		{GoalID: run.GoalID, Name: "5k", DueDate: date(3)},
		{GoalID: run.GoalID, Name: "stretch"},
		{GoalID: read.GoalID, Name: "chapter 1", DueDate: date(3)},
		{GoalID: read.GoalID, Name: "chapter 2", DueDate: date(5)},
	} {
		if _, err := f.tasks.Add(ctx, in); err != nil {
			t.Fatalf("add task: %v", err)
		}
	}
}

func TestItemsSpanGoals(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.seed(t)

	items, err := f.agenda.Items(context.Background())
	if err != nil {
		t.Fatalf("items: %v", err)
	}
	want := []dto.ItemOutput{
		{GoalID: 1, GoalName: "Run", TaskID: 1, Name: "5k", Date: "2026-03-03"},
		{GoalID: 2, GoalName: "Read", TaskID: 1, Name: "chapter 1", Date: "2026-03-03"},
		{GoalID: 2, GoalName: "Read", TaskID: 2, Name: "chapter 2", Date: "2026-03-05"},
	}
	if diff := cmp.Diff(want, items); diff != "" {
		t.Fatalf("items mismatch (-want +got):\n%s", diff)
	}
}

func TestCompleteAndDeleteRefreshItems(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)
	f.seed(t)
	items, _ := f.agenda.Items(ctx)

	items, err := f.agenda.Complete(ctx, items[0])
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if !items[0].Completed || items[1].Completed {
		t.Fatalf("expected only the first item completed, got %+v", items)
	}
	marks := f.agenda.MarkDates(items)
	if !marks["2026-03-03"].Marked || marks["2026-03-03"].AllDone {
		t.Fatalf("unexpected mark for partially done day %+v", marks["2026-03-03"])
	}

	items, err = f.agenda.Delete(ctx, items[1])
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected two items after delete, got %+v", items)
	}
	marks = f.agenda.MarkDates(items)
	want := dto.MarkedDatesOutput{
		"2026-03-03": {Marked: true, AllDone: true},
		"2026-03-05": {Marked: true},
	}
	if diff := cmp.Diff(want, marks); diff != "" {
		t.Fatalf("marks mismatch (-want +got):\n%s", diff)
	}
}

func TestDeletedGoalLeavesAgenda(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)
	f.seed(t)
	if _, err := f.goals.Delete(ctx, 2); err != nil {
		t.Fatalf("delete goal: %v", err)
	}
	items, err := f.agenda.Items(ctx)
	if err != nil {
		t.Fatalf("items: %v", err)
	}
	if len(items) != 1 || items[0].GoalID != 1 {
		t.Fatalf("expected only goal 1 items, got %+v", items)
	}
}
