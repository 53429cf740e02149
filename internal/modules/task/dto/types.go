package dto

import "time"

type TaskOutput struct {
	TaskID      int
	GoalID      int
	Name        string
	DueDate     *time.Time
	Completed   bool
	CompletedAt *time.Time
}

type AddInput struct {
	GoalID  int
	Name    string
	DueDate *time.Time
}

type TaskRef struct {
	GoalID int
	TaskID int
}
