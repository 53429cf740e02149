package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"planr/internal/modules/goal/domain"
	"planr/internal/modules/goal/service"
	"planr/internal/platform/clock"
	apperrors "planr/internal/platform/errors"
	"planr/internal/platform/kv"
	"planr/internal/platform/tx"
)

var fixedNow = time.Date(2026, 2, 25, 10, 0, 0, 0, time.UTC)

func newService(store *kv.MemoryStore) *service.GoalService {
	return service.NewGoalService(clock.Fixed(fixedNow), store, tx.NewKeyedLocker())
}

func TestListMissingCollectionIsEmpty(t *testing.T) {
	t.Parallel()
	goals, err := newService(kv.NewMemoryStore()).List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(goals) != 0 {
		t.Fatalf("expected empty collection, got %+v", goals)
	}
}

func TestListCorruptCollectionFails(t *testing.T) {
	t.Parallel()
	store := kv.NewMemoryStore()
	_ = store.SetString(context.Background(), "goals", "{not json")
	if _, err := newService(store).List(context.Background()); !errors.Is(err, apperrors.ErrCorruptState) {
		t.Fatalf("expected corrupt state, got %v", err)
	}
}

func TestSaveListRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := newService(kv.NewMemoryStore())
	due := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	goals := []domain.Goal{
		{GoalID: 1, Name: "A", Description: "a", DueDate: &due, UpdatedAt: &fixedNow},
		{GoalID: 2, Name: "B"},
	}
	if err := svc.Save(ctx, goals); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if diff := cmp.Diff(goals, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestNewGoalIsMonotonicAndNotAppended(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := kv.NewMemoryStore()
	svc := newService(store)

	first, err := svc.NewGoal(ctx, "Run", "10k", nil)
	if err != nil {
		t.Fatalf("new goal: %v", err)
	}
	if first.GoalID != 1 || first.UpdatedAt == nil || !first.UpdatedAt.Equal(fixedNow) {
		t.Fatalf("unexpected descriptor %+v", first)
	}
	goals, _ := svc.List(ctx)
	if len(goals) != 0 {
		t.Fatalf("NewGoal must not append to the collection")
	}
	if _, err := svc.Insert(ctx, first); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if _, err := svc.Delete(ctx, first.GoalID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	second, err := svc.NewGoal(ctx, "Read", "", nil)
	if err != nil {
		t.Fatalf("new goal: %v", err)
	}
	if second.GoalID <= first.GoalID {
		t.Fatalf("identifier reused after delete: %d <= %d", second.GoalID, first.GoalID)
	}
	raw, _, _ := store.GetString(ctx, "goals.lastId")
	if raw != "2" {
		t.Fatalf("expected counter 2, got %q", raw)
	}
}

func TestNewGoalCorruptCounter(t *testing.T) {
	t.Parallel()
	store := kv.NewMemoryStore()
	_ = store.SetString(context.Background(), "goals.lastId", "seven")
	if _, err := newService(store).NewGoal(context.Background(), "x", "", nil); !errors.Is(err, apperrors.ErrCorruptState) {
		t.Fatalf("expected corrupt counter, got %v", err)
	}
}

func TestEditStampsAndIgnoresUnknown(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := newService(kv.NewMemoryStore())
	old := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	_ = svc.Save(ctx, []domain.Goal{{GoalID: 1, Name: "A", Description: "a", UpdatedAt: &old}, {GoalID: 2, Name: "B"}})

	edited, ok, err := svc.Edit(ctx, 1, "A2", "a2")
	if err != nil || !ok {
		t.Fatalf("edit: ok=%t err=%v", ok, err)
	}
	if edited.Name != "A2" || edited.Description != "a2" || !edited.UpdatedAt.Equal(fixedNow) {
		t.Fatalf("unexpected edited goal %+v", edited)
	}

	before, _ := svc.List(ctx)
	if _, ok, err := svc.Edit(ctx, 99, "x", "y"); err != nil || ok {
		t.Fatalf("edit of unknown id should be a silent no-op: ok=%t err=%v", ok, err)
	}
	after, _ := svc.List(ctx)
	if diff := cmp.Diff(before, after); diff != "" {
		t.Fatalf("collection changed by no-op edit (-before +after):\n%s", diff)
	}
	if _, _, err := svc.Edit(ctx, 1, "", "y"); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("blank name should be rejected, got %v", err)
	}
	if _, ok, err := svc.Edit(ctx, 99, "   ", "y"); err != nil || ok {
		t.Fatalf("blank edit of unknown id should be a silent no-op: ok=%t err=%v", ok, err)
	}
}

func TestInsertRejectsExistingID(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := newService(kv.NewMemoryStore())
	_ = svc.Save(ctx, []domain.Goal{{GoalID: 1, Name: "FromServer"}})

	if _, err := svc.Insert(ctx, domain.Goal{GoalID: 1, Name: "Local"}); !errors.Is(err, apperrors.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
	goals, _ := svc.List(ctx)
	if len(goals) != 1 || goals[0].Name != "FromServer" {
		t.Fatalf("existing goal was replaced: %+v", goals)
	}
}

func TestApplyRemoteAdvancesCounter(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := kv.NewMemoryStore()
	svc := newService(store)

	if _, err := svc.ApplyRemote(ctx, []domain.Goal{{GoalID: 4, Name: "D"}, {GoalID: 2, Name: "B"}}); err != nil {
		t.Fatalf("apply remote: %v", err)
	}
	raw, _, _ := store.GetString(ctx, "goals.lastId")
	if raw != "4" {
		t.Fatalf("expected counter 4 after sync, got %q", raw)
	}

	_ = store.SetString(ctx, "goals.lastId", "9")
	if _, err := svc.ApplyRemote(ctx, []domain.Goal{{GoalID: 5, Name: "E"}}); err != nil {
		t.Fatalf("apply remote: %v", err)
	}
	raw, _, _ = store.GetString(ctx, "goals.lastId")
	if raw != "9" {
		t.Fatalf("counter must never move backwards, got %q", raw)
	}
}

func TestNewGoalSkipsStoredIDs(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := kv.NewMemoryStore()
	svc := newService(store)
	_ = svc.Save(ctx, []domain.Goal{{GoalID: 3, Name: "FromServer"}})

	goal, err := svc.NewGoal(ctx, "Local", "", nil)
	if err != nil {
		t.Fatalf("new goal: %v", err)
	}
	if goal.GoalID != 4 {
		t.Fatalf("expected id 4 above the stored collection, got %d", goal.GoalID)
	}
}

func TestDeleteRemovesExactlyOneAndReleasesCounter(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := kv.NewMemoryStore()
	svc := newService(store)
	_ = svc.Save(ctx, []domain.Goal{{GoalID: 1, Name: "A"}, {GoalID: 2, Name: "B"}, {GoalID: 3, Name: "C"}})
	_ = store.SetString(ctx, "goals.2.lastId", "5")

	removed, err := svc.Delete(ctx, 2)
	if err != nil || !removed {
		t.Fatalf("delete: removed=%t err=%v", removed, err)
	}
	goals, _ := svc.List(ctx)
	if len(goals) != 2 || goals[0].GoalID != 1 || goals[1].GoalID != 3 {
		t.Fatalf("unexpected collection after delete %+v", goals)
	}
	if _, ok, _ := store.GetString(ctx, "goals.2.lastId"); ok {
		t.Fatalf("per-goal counter should be removed")
	}

	removed, err = svc.Delete(ctx, 42)
	if err != nil || removed {
		t.Fatalf("deleting unknown id: removed=%t err=%v", removed, err)
	}
	again, _ := svc.List(ctx)
	if len(again) != 2 {
		t.Fatalf("unknown delete changed the collection: %+v", again)
	}
}

func TestApplyRemoteEndToEnd(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := kv.NewMemoryStore()
	_ = store.SetString(ctx, "goals", `[{"goalId":1,"name":"A","description":"","updatedAt":"2023-01-01T00:00:00Z"}]`)
	svc := newService(store)

	feb := time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC)
	got, err := svc.ApplyRemote(ctx, []domain.Goal{{GoalID: 1, Name: "A2", UpdatedAt: &feb}, {GoalID: 2, Name: "B"}})
	if err != nil {
		t.Fatalf("apply remote: %v", err)
	}
	want := []domain.Goal{{GoalID: 1, Name: "A2", UpdatedAt: &feb}, {GoalID: 2, Name: "B"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected reconciled collection (-want +got):\n%s", diff)
	}
	raw, _, _ := store.GetString(ctx, "goals")
	if raw != `[{"goalId":1,"name":"A2","description":"","updatedAt":"2023-02-01T00:00:00Z"},{"goalId":2,"name":"B","description":""}]` {
		t.Fatalf("unexpected persisted value %s", raw)
	}
}

func TestApplyRemoteEmptyLeavesStorageUntouched(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := kv.NewMemoryStore()
	const stored = `[{"goalId":1,"name":"A","description":""}]`
	_ = store.SetString(ctx, "goals", stored)
	got, err := newService(store).ApplyRemote(ctx, nil)
	if err != nil || len(got) != 1 {
		t.Fatalf("apply empty: %+v %v", got, err)
	}
	raw, _, _ := store.GetString(ctx, "goals")
	if raw != stored {
		t.Fatalf("storage rewritten on empty remote result: %s", raw)
	}
}

func TestApplyRemoteRejectsInvalidRecord(t *testing.T) {
	t.Parallel()
	if _, err := newService(kv.NewMemoryStore()).ApplyRemote(context.Background(), []domain.Goal{{GoalID: 0}}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestConcurrentInsertsDoNotLoseUpdates(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := newService(kv.NewMemoryStore())
	var wg sync.WaitGroup
	for i := 1; i <= 40; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			if _, err := svc.Insert(ctx, domain.Goal{GoalID: id, Name: "g"}); err != nil {
				t.Errorf("insert %d: %v", id, err)
			}
		}(i)
	}
	wg.Wait()
	goals, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(goals) != 40 {
		t.Fatalf("expected 40 goals with per-key locking, got %d", len(goals))
	}
}

func TestGetNotFound(t *testing.T) {
	t.Parallel()
	if _, err := newService(kv.NewMemoryStore()).Get(context.Background(), 3); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
