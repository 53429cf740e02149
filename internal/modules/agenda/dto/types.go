package dto

type ItemOutput struct {
	GoalID    int
	GoalName  string
	TaskID    int
	Name      string
	Date      string
	Completed bool
}

type MarkOutput struct {
	Marked  bool
	AllDone bool
}

type MarkedDatesOutput map[string]MarkOutput
