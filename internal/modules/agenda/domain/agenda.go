package domain

import (
	"sort"
	"time"
)

const DateLayout = "2006-01-02"

// Goal and Task are the agenda's read model of the goal and task modules.
type Goal struct {
	GoalID int
	Name   string
}

type Task struct {
	TaskID    int
	GoalID    int
	Name      string
	DueDate   *time.Time
	Completed bool
}

// Item is one dated task on the agenda.
type Item struct {
	GoalID    int
	GoalName  string
	TaskID    int
	Name      string
	Date      string
	Completed bool
}

type Mark struct {
	Marked  bool
	AllDone bool
}

// MarkedDates is keyed by Item.Date.
type MarkedDates map[string]Mark

// BuildItems turns dated tasks into agenda items ordered by date, goal and task.
// Tasks without a due date and tasks of unknown goals are left out.
func BuildItems(goals []Goal, tasks []Task) []Item {
	names := make(map[int]string, len(goals))
	for _, g := range goals {
		names[g.GoalID] = g.Name
	}
	items := make([]Item, 0, len(tasks))
	for _, t := range tasks {
		name, ok := names[t.GoalID]
		if !ok || t.DueDate == nil {
			continue
		}
		items = append(items, Item{
			GoalID:    t.GoalID,
			GoalName:  name,
			TaskID:    t.TaskID,
			Name:      t.Name,
			Date:      t.DueDate.UTC().Format(DateLayout),
			Completed: t.Completed,
		})
	}
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.Date != b.Date {
			return a.Date < b.Date
		}
		if a.GoalID != b.GoalID {
			return a.GoalID < b.GoalID
		}
		return a.TaskID < b.TaskID
	})
	return items
}

// Marks flags every date that has items. AllDone holds when every item on
// that date is completed.
func Marks(items []Item) MarkedDates {
	marks := make(MarkedDates)
	for _, it := range items {
		m, seen := marks[it.Date]
		if !seen {
			m = Mark{Marked: true, AllDone: true}
		}
		m.AllDone = m.AllDone && it.Completed
		marks[it.Date] = m
	}
	return marks
}
