package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"planr/internal/bootstrap"
	agendadto "planr/internal/modules/agenda/dto"
	goaldto "planr/internal/modules/goal/dto"
	"planr/internal/platform/config"
)

const dateLayout = "2006-01-02"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dataDir string

	root := &cobra.Command{
		Use:           "planr",
		Short:         "Goals, tasks and agenda with remote goal sync",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&dataDir, "data-dir", ".planr", "directory holding config.yaml and the local database")

	root.AddCommand(newTUICmd(&dataDir))
	root.AddCommand(newGoalCmd(&dataDir))
	root.AddCommand(newTaskCmd(&dataDir))
	root.AddCommand(newAgendaCmd(&dataDir))
	root.AddCommand(newAuthCmd(&dataDir))
	return root
}

func withApp(dataDir string, fn func(app *bootstrap.App) error) error {
	cfg, err := config.Load(dataDir)
	if err != nil {
		return err
	}
	app, err := bootstrap.New(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = app.Close() }()
	return fn(app)
}

func parseID(raw, what string) (int, error) {
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("invalid %s %q", what, raw)
	}
	return v, nil
}

func parseDate(raw string) (*time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q, want YYYY-MM-DD", raw)
	}
	return &t, nil
}

func formatDate(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.UTC().Format(dateLayout)
}

func newTUICmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the planr terminal UI",
		RunE: func(_ *cobra.Command, _ []string) error {
			return withApp(*dataDir, bootstrap.RunTUI)
		},
	}
}

func printGoal(w io.Writer, g goaldto.GoalOutput) {
	_, _ = fmt.Fprintf(w, "%d\t%s\tdue=%s\t%s\n", g.GoalID, g.Name, formatDate(g.DueDate), g.Description)
}

func newGoalCmd(dataDir *string) *cobra.Command {
	goal := &cobra.Command{Use: "goal", Short: "Goal commands"}

	goal.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List stored goals",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataDir, func(app *bootstrap.App) error {
				goals, err := app.GoalCLI.List(context.Background())
				if err != nil {
					return err
				}
				if len(goals) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no goals")
					return nil
				}
				for _, g := range goals {
					printGoal(cmd.OutOrStdout(), g)
				}
				return nil
			})
		},
	})

	goal.AddCommand(&cobra.Command{
		Use:   "sync",
		Short: "Fetch remote goal changes and merge them into local storage",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataDir, func(app *bootstrap.App) error {
				out, err := app.GoalCLI.Sync(context.Background())
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "since=%s fetched=%d stored=%d\n", out.Since, out.Fetched, len(out.Goals))
				for _, g := range out.Goals {
					printGoal(cmd.OutOrStdout(), g)
				}
				return nil
			})
		},
	})

	goal.AddCommand(&cobra.Command{
		Use:   "show <goal-id>",
		Short: "Show one goal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			goalID, err := parseID(args[0], "goal id")
			if err != nil {
				return err
			}
			return withApp(*dataDir, func(app *bootstrap.App) error {
				g, err := app.GoalCLI.Show(context.Background(), goalID)
				if err != nil {
					return err
				}
				updated := "-"
				if g.UpdatedAt != nil {
					updated = g.UpdatedAt.UTC().Format(time.RFC3339)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "id: %d\nname: %s\ndescription: %s\ndue: %s\nupdated: %s\n", g.GoalID, g.Name, g.Description, formatDate(g.DueDate), updated)
				return nil
			})
		},
	})

	var description, due string
	create := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a goal",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dueDate, err := parseDate(due)
			if err != nil {
				return err
			}
			return withApp(*dataDir, func(app *bootstrap.App) error {
				g, err := app.GoalCLI.Create(context.Background(), strings.Join(args, " "), description, dueDate)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "goal created: %d %s\n", g.GoalID, g.Name)
				return nil
			})
		},
	}
	create.Flags().StringVar(&description, "description", "", "goal description")
	create.Flags().StringVar(&due, "due", "", "due date YYYY-MM-DD")

	var editDescription string
	edit := &cobra.Command{
		Use:   "edit <goal-id> <name>",
		Short: "Replace a goal's name and description",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			goalID, err := parseID(args[0], "goal id")
			if err != nil {
				return err
			}
			return withApp(*dataDir, func(app *bootstrap.App) error {
				out, err := app.GoalCLI.Edit(context.Background(), goalID, strings.Join(args[1:], " "), editDescription)
				if err != nil {
					return err
				}
				if !out.Updated {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "goal %d not found, nothing changed\n", goalID)
					return nil
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "goal updated: %d %s\n", out.Goal.GoalID, out.Goal.Name)
				return nil
			})
		},
	}
	edit.Flags().StringVar(&editDescription, "description", "", "new description")

	goal.AddCommand(create, edit, &cobra.Command{
		Use:   "delete <goal-id>",
		Short: "Delete a goal and its tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			goalID, err := parseID(args[0], "goal id")
			if err != nil {
				return err
			}
			return withApp(*dataDir, func(app *bootstrap.App) error {
				out, err := app.GoalCLI.Delete(context.Background(), goalID)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "goal %d deleted=%t\n", out.GoalID, out.Removed)
				return nil
			})
		},
	})
	return goal
}

func newTaskCmd(dataDir *string) *cobra.Command {
	task := &cobra.Command{Use: "task", Short: "Task commands"}

	var due string
	add := &cobra.Command{
		Use:   "add <goal-id> <name>",
		Short: "Add a task to a goal",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			goalID, err := parseID(args[0], "goal id")
			if err != nil {
				return err
			}
			dueDate, err := parseDate(due)
			if err != nil {
				return err
			}
			return withApp(*dataDir, func(app *bootstrap.App) error {
				t, err := app.TaskCLI.Add(context.Background(), goalID, strings.Join(args[1:], " "), dueDate)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "task added: %d/%d %s\n", t.GoalID, t.TaskID, t.Name)
				return nil
			})
		},
	}
	add.Flags().StringVar(&due, "due", "", "due date YYYY-MM-DD")

	list := &cobra.Command{
		Use:   "list <goal-id>",
		Short: "List a goal's tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			goalID, err := parseID(args[0], "goal id")
			if err != nil {
				return err
			}
			return withApp(*dataDir, func(app *bootstrap.App) error {
				tasks, err := app.TaskCLI.List(context.Background(), goalID)
				if err != nil {
					return err
				}
				if len(tasks) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no tasks")
					return nil
				}
				for _, t := range tasks {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\tdue=%s\tdone=%t\n", t.TaskID, t.Name, formatDate(t.DueDate), t.Completed)
				}
				return nil
			})
		},
	}

	complete := &cobra.Command{
		Use:   "complete <goal-id> <task-id>",
		Short: "Mark a task done",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			goalID, taskID, err := parseTaskRef(args)
			if err != nil {
				return err
			}
			return withApp(*dataDir, func(app *bootstrap.App) error {
				t, err := app.TaskCLI.Complete(context.Background(), goalID, taskID)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "task completed: %d/%d %s\n", t.GoalID, t.TaskID, t.Name)
				return nil
			})
		},
	}

	del := &cobra.Command{
		Use:   "delete <goal-id> <task-id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			goalID, taskID, err := parseTaskRef(args)
			if err != nil {
				return err
			}
			return withApp(*dataDir, func(app *bootstrap.App) error {
				removed, err := app.TaskCLI.Delete(context.Background(), goalID, taskID)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "task %d/%d deleted=%t\n", goalID, taskID, removed)
				return nil
			})
		},
	}

	task.AddCommand(add, list, complete, del)
	return task
}

func parseTaskRef(args []string) (int, int, error) {
	goalID, err := parseID(args[0], "goal id")
	if err != nil {
		return 0, 0, err
	}
	taskID, err := parseID(args[1], "task id")
	if err != nil {
		return 0, 0, err
	}
	return goalID, taskID, nil
}

// printView renders agenda state pushed by the agenda handlers.
type printView struct {
	w io.Writer
}

func (v printView) SetAgendaItems(items []agendadto.ItemOutput) {
	if len(items) == 0 {
		_, _ = fmt.Fprintln(v.w, "agenda is empty")
		return
	}
	for _, it := range items {
		mark := " "
		if it.Completed {
			mark = "x"
		}
		_, _ = fmt.Fprintf(v.w, "%s [%s] %d/%d %s (%s)\n", it.Date, mark, it.GoalID, it.TaskID, it.Name, it.GoalName)
	}
}

func (v printView) SetMarkedDates(marks agendadto.MarkedDatesOutput) {
	dates := make([]string, 0, len(marks))
	for date := range marks {
		dates = append(dates, date)
	}
	sort.Strings(dates)
	for _, date := range dates {
		state := "open"
		if marks[date].AllDone {
			state = "done"
		}
		_, _ = fmt.Fprintf(v.w, "%s\t%s\n", date, state)
	}
}

func newAgendaCmd(dataDir *string) *cobra.Command {
	agenda := &cobra.Command{Use: "agenda", Short: "Agenda of dated tasks across goals"}

	agenda.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List dated tasks ordered by date",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataDir, func(app *bootstrap.App) error {
				items, err := app.AgendaCLI.Items(context.Background())
				if err != nil {
					return err
				}
				printView{w: cmd.OutOrStdout()}.SetAgendaItems(items)
				return nil
			})
		},
	})

	agenda.AddCommand(&cobra.Command{
		Use:   "dates",
		Short: "List marked dates",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataDir, func(app *bootstrap.App) error {
				marks, err := app.AgendaCLI.MarkedDates(context.Background())
				if err != nil {
					return err
				}
				printView{w: cmd.OutOrStdout()}.SetMarkedDates(marks)
				return nil
			})
		},
	})

	agenda.AddCommand(&cobra.Command{
		Use:   "complete <goal-id> <task-id>",
		Short: "Complete an agenda item and print the refreshed agenda",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			goalID, taskID, err := parseTaskRef(args)
			if err != nil {
				return err
			}
			return withApp(*dataDir, func(app *bootstrap.App) error {
				ctx := context.Background()
				item, err := app.AgendaCLI.Lookup(ctx, goalID, taskID)
				if err != nil {
					return err
				}
				return app.AgendaCLI.Handlers(printView{w: cmd.OutOrStdout()}).HandleComplete(ctx, item)
			})
		},
	})

	agenda.AddCommand(&cobra.Command{
		Use:   "delete <goal-id> <task-id>",
		Short: "Delete an agenda item and print the refreshed agenda and dates",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			goalID, taskID, err := parseTaskRef(args)
			if err != nil {
				return err
			}
			return withApp(*dataDir, func(app *bootstrap.App) error {
				ctx := context.Background()
				item, err := app.AgendaCLI.Lookup(ctx, goalID, taskID)
				if err != nil {
					return err
				}
				return app.AgendaCLI.Handlers(printView{w: cmd.OutOrStdout()}).HandleDelete(ctx, item)
			})
		},
	})
	return agenda
}

func newAuthCmd(dataDir *string) *cobra.Command {
	auth := &cobra.Command{Use: "auth", Short: "Remote API credentials"}

	auth.AddCommand(&cobra.Command{
		Use:   "login <token>",
		Short: "Store the bearer token used for goal sync",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(*dataDir, func(app *bootstrap.App) error {
				st, err := app.AuthCLI.Login(context.Background(), args[0])
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "token stored")
				printStatus(cmd.OutOrStdout(), st.Opaque, st.Subject, st.ExpiresAt, st.Expired)
				return nil
			})
		},
	})

	auth.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show the stored token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataDir, func(app *bootstrap.App) error {
				st, err := app.AuthCLI.Status(context.Background())
				if err != nil {
					return err
				}
				if !st.Present {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "not logged in")
					return nil
				}
				printStatus(cmd.OutOrStdout(), st.Opaque, st.Subject, st.ExpiresAt, st.Expired)
				return nil
			})
		},
	})

	auth.AddCommand(&cobra.Command{
		Use:   "logout",
		Short: "Remove the stored token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataDir, func(app *bootstrap.App) error {
				if err := app.AuthCLI.Logout(context.Background()); err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "logged out")
				return nil
			})
		},
	})
	return auth
}

func printStatus(w io.Writer, opaque bool, subject string, expiresAt time.Time, expired bool) {
	if opaque {
		_, _ = fmt.Fprintln(w, "token: opaque")
		return
	}
	expiry := "never"
	if !expiresAt.IsZero() {
		expiry = expiresAt.UTC().Format(time.RFC3339)
	}
	_, _ = fmt.Fprintf(w, "subject: %s\nexpires: %s\nexpired: %t\n", subject, expiry, expired)
}
