package root

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/nhle/prodowl/internal/model"
	"github.com/nhle/prodowl/internal/ui/listing"
)

func newTimerCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "timer",
		Short: "Inspect the focus timer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return timerStatus(cmd, g)
		},
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "status",
			Short: "Show the current session and today's totals",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return timerStatus(cmd, g)
			},
		},
		newTimerTargetCmd(g),
		newTimerStopCmd(g),
	)
	return cmd
}

func timerStatus(cmd *cobra.Command, g *globals) error {
	e, cleanup, err := g.open(context.Background())
	if err != nil {
		return err
	}
	defer cleanup()

	ts := e.stores.Timer
	st := ts.State()
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, heading("⏱", "Focus timer"))
	fmt.Fprintf(out, "Status:  %s\n", st.Status)
	fmt.Fprintf(out, "Target:  %d min\n", st.TargetMinutes)
	if st.CurrentEntry != nil {
		fmt.Fprintf(out, "Session: %s (%s), %s elapsed, %s left\n",
			st.CurrentEntry.Title, st.CurrentEntry.Category,
			listing.Clock(st.ElapsedSeconds), listing.Clock(st.RemainingSeconds()))
	}
	fmt.Fprintf(out, "Today:   %s over %d sessions\n", listing.Clock(ts.TotalTimeToday()), len(ts.TodaysEntries()))
	for _, c := range model.TaskCategories {
		if secs := ts.TimeByCategory(c); secs > 0 {
			fmt.Fprintf(out, "  %-9s %s\n", c, listing.Clock(secs))
		}
	}
	return nil
}

func newTimerTargetCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "target <minutes>",
		Short: "Set the session target",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil || n <= 0 {
				return errors.New("minutes must be a positive number")
			}

			e, cleanup, err := g.open(context.Background())
			if err != nil {
				return err
			}
			defer cleanup()

			e.stores.Timer.SetTargetMinutes(n)
			fmt.Fprintf(cmd.OutOrStdout(), "🎯 Focus target set to %d min\n", n)
			return nil
		},
	}
}

func newTimerStopCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Close the current session and log it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, cleanup, err := g.open(context.Background())
			if err != nil {
				return err
			}
			defer cleanup()

			entry, ok := e.stores.Timer.Stop()
			if !ok {
				return errors.New("no session in progress")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "🛑 Logged %s on %s\n", listing.Clock(entry.Duration), entry.Title)
			return nil
		},
	}
}
