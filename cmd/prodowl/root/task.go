package root

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/spf13/cobra"

	"github.com/nhle/prodowl/internal/model"
	"github.com/nhle/prodowl/internal/state"
	"github.com/nhle/prodowl/internal/theme"
	"github.com/nhle/prodowl/internal/ui/forms"
)

func newTaskCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "task",
		Aliases: []string{"tasks", "t"},
		Short:   "Add, list and complete tasks",
	}
	cmd.AddCommand(newTaskAddCmd(g), newTaskListCmd(g), newTaskDoneCmd(g), newTaskRemoveCmd(g))
	return cmd
}

func newTaskAddCmd(g *globals) *cobra.Command {
	var (
		desc     string
		priority string
		category string
		due      string
		tags     string
	)

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := model.TaskPriority(priority)
			if !slices.Contains(model.TaskPriorities, p) {
				return fmt.Errorf("priority must be one of %v", model.TaskPriorities)
			}
			c := model.TaskCategory(category)
			if !slices.Contains(model.TaskCategories, c) {
				return fmt.Errorf("category must be one of %v", model.TaskCategories)
			}
			dueDate, err := forms.ParseDate(due, time.Local)
			if err != nil {
				return fmt.Errorf("parsing --due: %w", err)
			}

			e, cleanup, err := g.open(context.Background())
			if err != nil {
				return err
			}
			defer cleanup()

			t, ok := e.stores.Tasks.Add(state.TaskInput{
				Title:       args[0],
				Description: desc,
				Priority:    p,
				Category:    c,
				DueDate:     dueDate,
				Tags:        forms.ParseTags(tags),
			})
			if !ok {
				return errors.New("task title cannot be blank")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✅ Added task %s %s\n", muted(shortID(t.ID)), t.Title)
			return nil
		},
	}

	cmd.Flags().StringVarP(&desc, "desc", "d", "", "Description")
	cmd.Flags().StringVarP(&priority, "priority", "p", string(model.PriorityMedium), "Priority (low|medium|high|urgent)")
	cmd.Flags().StringVar(&category, "category", string(model.CategoryPersonal), "Category (work|personal|social|web3|health)")
	cmd.Flags().StringVar(&due, "due", "", "Due date (YYYY-MM-DD or YYYY-MM-DD HH:MM)")
	cmd.Flags().StringVar(&tags, "tags", "", "Comma-separated tags")
	return cmd
}

func newTaskListCmd(g *globals) *cobra.Command {
	var (
		status   string
		category string
		overdue  bool
		today    bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, cleanup, err := g.open(context.Background())
			if err != nil {
				return err
			}
			defer cleanup()

			ts := e.stores.Tasks
			var list []model.Task
			switch {
			case overdue:
				list = ts.Overdue()
			case today:
				list = ts.Today()
			case status != "":
				list = ts.ByStatus(model.TaskStatus(status))
			case category != "":
				list = ts.ByCategory(model.TaskCategory(category))
			default:
				list = ts.All()
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, heading("📋", fmt.Sprintf("Tasks (%d)", len(list))))
			if len(list) == 0 {
				fmt.Fprintln(out, muted("Nothing here. Suspicious."))
				return nil
			}
			now := time.Now()
			for _, t := range list {
				line := fmt.Sprintf("%s %s %s %s",
					muted(shortID(t.ID)),
					theme.StatusStyle(t.Status).Render(fmt.Sprintf("[%s]", t.Status)),
					theme.PriorityStyle(t.Priority).Render(string(t.Priority)),
					t.Title)
				if t.DueDate != nil {
					due := "due " + t.DueDate.Format("2006-01-02")
					if t.IsOverdue(now) {
						due = theme.OverdueStyle.Render("overdue since " + t.DueDate.Format("2006-01-02"))
					} else {
						due = muted(due)
					}
					line += " " + due
				}
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "Only tasks with this status")
	cmd.Flags().StringVar(&category, "category", "", "Only tasks in this category")
	cmd.Flags().BoolVar(&overdue, "overdue", false, "Only overdue tasks")
	cmd.Flags().BoolVar(&today, "today", false, "Only tasks due today")
	return cmd
}

func newTaskDoneCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Complete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, cleanup, err := g.open(context.Background())
			if err != nil {
				return err
			}
			defer cleanup()

			id, err := resolveID("task", taskIDs(e.stores.Tasks), args[0])
			if err != nil {
				return err
			}
			e.stores.Tasks.Complete(id)
			t, _ := e.stores.Tasks.Get(id)
			fmt.Fprintf(cmd.OutOrStdout(), "🎉 Completed %s\n", t.Title)
			return nil
		},
	}
}

func newTaskRemoveCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, cleanup, err := g.open(context.Background())
			if err != nil {
				return err
			}
			defer cleanup()

			id, err := resolveID("task", taskIDs(e.stores.Tasks), args[0])
			if err != nil {
				return err
			}
			t, _ := e.stores.Tasks.Get(id)
			e.stores.Tasks.Delete(id)
			fmt.Fprintf(cmd.OutOrStdout(), "🗑  Deleted %s\n", t.Title)
			return nil
		},
	}
}

func taskIDs(s *state.TaskStore) []string {
	var ids []string
	for _, t := range s.All() {
		ids = append(ids, t.ID)
	}
	return ids
}
