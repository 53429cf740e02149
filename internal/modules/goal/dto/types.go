package dto

import "time"

type GoalOutput struct {
	GoalID      int
	Name        string
	Description string
	DueDate     *time.Time
	UpdatedAt   *time.Time
}

type CreateInput struct {
	Name        string
	Description string
	DueDate     *time.Time
}

type EditInput struct {
	GoalID      int
	Name        string
	Description string
}

type EditOutput struct {
	Goal    GoalOutput
	Updated bool
}

type DeleteOutput struct {
	GoalID  int
	Removed bool
}

type SyncOutput struct {
	Goals   []GoalOutput
	Since   string
	Fetched int
}
