package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/syncflow/dashboard/internal/model"
	"github.com/syncflow/dashboard/internal/taskstore"
)

func newTasksCmd(st *cliState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "Manage locally stored tasks",
	}
	cmd.AddCommand(
		newTasksListCmd(st),
		newTasksAddCmd(st),
		newTasksUpdateCmd(st),
		newTasksRemoveCmd(st),
	)
	return cmd
}

// withTasks opens the task store for the duration of fn.
func withTasks(ctx context.Context, cfg appConfig, fn func(*taskstore.Tasks) error) error {
	store, err := taskstore.NewStore(ctx, cfg.StorePath)
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(taskstore.NewTasks(store))
}

type taskFlags struct {
	name        string
	description string
	assignee    string
	deadline    string
}

func (f *taskFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "task name")
	cmd.Flags().StringVar(&f.description, "description", "", "task description")
	cmd.Flags().StringVar(&f.assignee, "assignee", "", "assignee employee id")
	cmd.Flags().StringVar(&f.deadline, "deadline", "", "deadline (YYYY-MM-DD)")
}

// apply copies the flags that were set on the command line onto t.
func (f *taskFlags) apply(cmd *cobra.Command, t *model.Task) {
	if cmd.Flags().Changed("name") {
		t.Name = f.name
	}
	if cmd.Flags().Changed("description") {
		t.Description = f.description
	}
	if cmd.Flags().Changed("assignee") {
		t.AssigneeID = f.assignee
	}
	if cmd.Flags().Changed("deadline") {
		t.Deadline = f.deadline
	}
}

func newTasksListCmd(st *cliState) *cobra.Command {
	var search string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withTasks(cmd.Context(), st.cfg, func(tasks *taskstore.Tasks) error {
				list, err := tasks.Search(cmd.Context(), search)
				if err != nil {
					return err
				}
				if asJSON {
					enc := json.NewEncoder(cmd.OutOrStdout())
					enc.SetIndent("", "  ")
					return enc.Encode(list)
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), renderTaskTable(list))
				return err
			})
		},
	}
	cmd.Flags().StringVar(&search, "search", "", "only tasks whose name contains this text")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func newTasksAddCmd(st *cliState) *cobra.Command {
	var f taskFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a task",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var t model.Task
			f.apply(cmd, &t)
			return withTasks(cmd.Context(), st.cfg, func(tasks *taskstore.Tasks) error {
				created, err := tasks.Create(cmd.Context(), t)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "created task %d\n", created.ID)
				return err
			})
		},
	}
	f.register(cmd)
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newTasksUpdateCmd(st *cliState) *cobra.Command {
	var f taskFlags
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change fields of a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTaskID(args[0])
			if err != nil {
				return err
			}
			return withTasks(cmd.Context(), st.cfg, func(tasks *taskstore.Tasks) error {
				list, err := tasks.List(cmd.Context())
				if err != nil {
					return err
				}
				i := slices.IndexFunc(list, func(t model.Task) bool { return t.ID == id })
				if i < 0 {
					return fmt.Errorf("%w: %d", taskstore.ErrNotFound, id)
				}
				t := list[i]
				f.apply(cmd, &t)
				if err := tasks.Update(cmd.Context(), t); err != nil {
					return err
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "updated task %d\n", id)
				return err
			})
		},
	}
	f.register(cmd)
	return cmd
}

func newTasksRemoveCmd(st *cliState) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTaskID(args[0])
			if err != nil {
				return err
			}
			return withTasks(cmd.Context(), st.cfg, func(tasks *taskstore.Tasks) error {
				if err := tasks.Delete(cmd.Context(), id); err != nil {
					return err
				}
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "deleted task %d\n", id)
				return err
			})
		},
	}
}

func parseTaskID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, errors.New("task id must be a number")
	}
	return id, nil
}

func renderTaskTable(tasks []model.Task) string {
	if len(tasks) == 0 {
		return "no tasks"
	}
	bold := lipgloss.NewStyle().Bold(true)
	lines := []string{bold.Render(fmt.Sprintf("%-14s %-24s %-10s %-10s %s", "ID", "NAME", "ASSIGNEE", "DEADLINE", "DESCRIPTION"))}
	for _, t := range tasks {
		lines = append(lines, fmt.Sprintf("%-14d %-24s %-10s %-10s %s", t.ID, t.Name, t.AssigneeID, t.Deadline, t.Description))
	}
	return strings.Join(lines, "\n")
}
