package domain

import "time"

// Epoch is the sync cursor for a collection that was never synchronized.
var Epoch = time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)

const isoLayout = "2006-01-02T15:04:05.000Z"

// LastSync is the newest updatedAt across goals, or Epoch.
func LastSync(goals []Goal) time.Time {
	last := Epoch
	for _, g := range goals {
		if g.UpdatedAt != nil && g.UpdatedAt.After(last) {
			last = *g.UpdatedAt
		}
	}
	return last.UTC()
}

// FormatISO renders t in UTC with millisecond precision.
func FormatISO(t time.Time) string {
	return t.UTC().Format(isoLayout)
}

// Reconcile applies remote goals onto local: a remote record replaces the
// local record with the same id in place, otherwise it is appended. The
// remote record always wins; no fields of the replaced record survive.
func Reconcile(local, remote []Goal) []Goal {
	out := make([]Goal, len(local), len(local)+len(remote))
	copy(out, local)
	index := make(map[int]int, len(out))
	for i, g := range out {
		index[g.GoalID] = i
	}
	for _, g := range remote {
		if i, ok := index[g.GoalID]; ok {
			out[i] = g
			continue
		}
		index[g.GoalID] = len(out)
		out = append(out, g)
	}
	return out
}
