package domain_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"planr/internal/modules/goal/domain"
)

func TestLastSync(t *testing.T) {
	t.Parallel()
	goals := []domain.Goal{
		{GoalID: 1, UpdatedAt: ts(t, "2023-01-01T00:00:00Z")},
		{GoalID: 2},
		{GoalID: 3, UpdatedAt: ts(t, "2023-06-01T00:00:00Z")},
	}
	got := domain.LastSync(goals)
	if !got.Equal(*ts(t, "2023-06-01T00:00:00Z")) {
		t.Fatalf("expected newest timestamp, got %s", got)
	}
	if iso := domain.FormatISO(got); iso != "2023-06-01T00:00:00.000Z" {
		t.Fatalf("unexpected iso rendering %s", iso)
	}
}

func TestLastSyncEmpty(t *testing.T) {
	t.Parallel()
	if iso := domain.FormatISO(domain.LastSync(nil)); iso != "1970-01-01T00:00:00.000Z" {
		t.Fatalf("expected epoch, got %s", iso)
	}
	if iso := domain.FormatISO(domain.LastSync([]domain.Goal{{GoalID: 1}})); iso != "1970-01-01T00:00:00.000Z" {
		t.Fatalf("expected epoch without update timestamps, got %s", iso)
	}
}

func TestReconcileEmptyRemoteLeavesLocal(t *testing.T) {
	t.Parallel()
	local := []domain.Goal{{GoalID: 1, Name: "A"}, {GoalID: 2, Name: "B"}}
	if diff := cmp.Diff(local, domain.Reconcile(local, nil)); diff != "" {
		t.Fatalf("empty remote changed local (-want +got):\n%s", diff)
	}
}

func TestReconcileReplacesWholeRecord(t *testing.T) {
	t.Parallel()
	local := []domain.Goal{{GoalID: 1, Name: "A", Description: "keep?", DueDate: ts(t, "2024-01-01T00:00:00Z")}}
	remote := []domain.Goal{{GoalID: 1, Name: "A2"}}
	got := domain.Reconcile(local, remote)
	if diff := cmp.Diff(remote, got); diff != "" {
		t.Fatalf("remote should replace the record entirely (-want +got):\n%s", diff)
	}
	if local[0].Name != "A" {
		t.Fatalf("reconcile must not mutate its input")
	}
}

func TestReconcileAppendsUnknown(t *testing.T) {
	t.Parallel()
	local := []domain.Goal{{GoalID: 1, Name: "A"}}
	got := domain.Reconcile(local, []domain.Goal{{GoalID: 5, Name: "E"}})
	if len(got) != len(local)+1 || got[1].GoalID != 5 {
		t.Fatalf("expected append of new record, got %+v", got)
	}
}

func TestReconcileEndToEndOrder(t *testing.T) {
	t.Parallel()
	local := []domain.Goal{{GoalID: 1, Name: "A", UpdatedAt: ts(t, "2023-01-01T00:00:00Z")}}
	remote := []domain.Goal{
		{GoalID: 1, Name: "A2", UpdatedAt: ts(t, "2023-02-01T00:00:00Z")},
		{GoalID: 2, Name: "B"},
	}
	want := []domain.Goal{
		{GoalID: 1, Name: "A2", UpdatedAt: ts(t, "2023-02-01T00:00:00Z")},
		{GoalID: 2, Name: "B"},
	}
	if diff := cmp.Diff(want, domain.Reconcile(local, remote)); diff != "" {
		t.Fatalf("unexpected reconciliation (-want +got):\n%s", diff)
	}
}

func TestReconcileDuplicateRemoteIDsCollapse(t *testing.T) {
	t.Parallel()
	remote := []domain.Goal{{GoalID: 7, Name: "first"}, {GoalID: 7, Name: "second"}}
	got := domain.Reconcile(nil, remote)
	if len(got) != 1 || got[0].Name != "second" {
		t.Fatalf("expected one record with last remote value, got %+v", got)
	}
}
