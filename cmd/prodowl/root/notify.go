package root

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/nhle/prodowl/internal/mascot"
	"github.com/nhle/prodowl/internal/notify"
	"github.com/nhle/prodowl/internal/theme"
)

func newNotifyCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "notify",
		Aliases: []string{"inbox"},
		Short:   "Run the owl's notification checks and read the inbox",
	}
	cmd.AddCommand(newNotifyCheckCmd(g), newNotifyTestCmd(g), newNotifyListCmd(g), newNotifyReadCmd(g))
	return cmd
}

// coach builds a CLI coach. There is no desktop to alert on.
func (e *env) coach(chance float64) *mascot.Coach {
	return mascot.NewCoach(notify.NewSeededGenerator(uint64(time.Now().UnixNano())), nil, chance, e.logger)
}

func newNotifyCheckCmd(g *globals) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Run one contextual notification check",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, cleanup, err := g.open(context.Background())
			if err != nil {
				return err
			}
			defer cleanup()

			chance := e.cfg.Notifications.TriggerChance
			if force {
				chance = 1
			}
			sel, shown := e.coach(chance).Nudge(e.stores.NotifyContext(time.Now()), e.stores.App)

			out := cmd.OutOrStdout()
			switch {
			case sel == nil:
				fmt.Fprintln(out, muted("🦉 Nothing to nag about. For now."))
			case !shown:
				fmt.Fprintln(out, muted(fmt.Sprintf("🦉 The owl considered a %s nudge and let it slide.", sel.Type)))
			default:
				fmt.Fprintf(out, "%s %s %s\n", mascot.Face(sel.MascotExpression),
					theme.NotificationStyle(sel.Type).Render(string(sel.Type)), sel.Message)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip the random gate")
	return cmd
}

func newNotifyTestCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "test",
		Short: "Raise a test notification",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, cleanup, err := g.open(context.Background())
			if err != nil {
				return err
			}
			defer cleanup()

			n := e.coach(1).Test(e.stores.App)
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", mascot.Face(n.MascotExpression),
				theme.NotificationStyle(n.Type).Render(string(n.Type)), n.Message)
			return nil
		},
	}
}

func newNotifyListCmd(g *globals) *cobra.Command {
	var unread bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List notifications, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, cleanup, err := g.open(context.Background())
			if err != nil {
				return err
			}
			defer cleanup()

			app := e.stores.App
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, heading("🔔", fmt.Sprintf("Inbox (%d unread)", app.UnreadCount())))
			for _, n := range app.Notifications() {
				if unread && n.Read {
					continue
				}
				marker := "  "
				if !n.Read {
					marker = "• "
				}
				fmt.Fprintf(out, "%s%s %s %s %s\n", marker,
					muted(n.CreatedAt.Local().Format("Jan 2 15:04")),
					theme.NotificationStyle(n.Type).Render(string(n.Type)),
					n.Title, muted(n.Message))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&unread, "unread", "u", false, "Only unread notifications")
	return cmd
}

func newNotifyReadCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "read",
		Short: "Mark every notification read",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, cleanup, err := g.open(context.Background())
			if err != nil {
				return err
			}
			defer cleanup()

			e.stores.App.MarkAllRead()
			fmt.Fprintln(cmd.OutOrStdout(), "📭 All caught up")
			return nil
		},
	}
}
