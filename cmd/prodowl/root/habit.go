package root

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/nhle/prodowl/internal/model"
	"github.com/nhle/prodowl/internal/state"
	"github.com/nhle/prodowl/internal/streak"
)

func newHabitCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "habit",
		Aliases: []string{"habits", "h"},
		Short:   "Track habits and streaks",
	}
	cmd.AddCommand(newHabitAddCmd(g), newHabitCheckCmd(g), newHabitListCmd(g))
	return cmd
}

var weekdays = map[string]time.Weekday{
	"sun": time.Sunday, "mon": time.Monday, "tue": time.Tuesday, "wed": time.Wednesday,
	"thu": time.Thursday, "fri": time.Friday, "sat": time.Saturday,
}

func parseWeekdays(s string) ([]time.Weekday, error) {
	var out []time.Weekday
	for _, part := range strings.Split(s, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part == "" {
			continue
		}
		wd, ok := weekdays[part[:min(3, len(part))]]
		if !ok {
			return nil, fmt.Errorf("unknown weekday %q", part)
		}
		if !slices.Contains(out, wd) {
			out = append(out, wd)
		}
	}
	return out, nil
}

func newHabitAddCmd(g *globals) *cobra.Command {
	var (
		desc      string
		frequency string
		days      string
	)

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a habit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			freq := model.HabitFrequency(frequency)
			switch freq {
			case model.FrequencyDaily, model.FrequencyWeekly, model.FrequencyCustom:
			default:
				return errors.New("frequency must be daily, weekly or custom")
			}
			target, err := parseWeekdays(days)
			if err != nil {
				return err
			}

			e, cleanup, err := g.open(context.Background())
			if err != nil {
				return err
			}
			defer cleanup()

			h, ok := e.stores.Habits.Add(state.HabitInput{
				Title:       args[0],
				Description: desc,
				Frequency:   freq,
				TargetDays:  target,
			})
			if !ok {
				return errors.New("habit title cannot be blank")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "🌱 Added habit %s %s. Don't break the chain.\n", muted(shortID(h.ID)), h.Title)
			return nil
		},
	}

	cmd.Flags().StringVarP(&desc, "desc", "d", "", "Description")
	cmd.Flags().StringVarP(&frequency, "frequency", "f", string(model.FrequencyDaily), "Frequency (daily|weekly|custom)")
	cmd.Flags().StringVar(&days, "days", "", "Target weekdays for weekly/custom habits, e.g. mon,wed,fri")
	return cmd
}

func newHabitCheckCmd(g *globals) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "check <id>",
		Short: "Toggle a habit's completion for a day (default today)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if date != "" {
				if _, err := time.Parse(model.DateLayout, date); err != nil {
					return errors.New("--date must be YYYY-MM-DD")
				}
			}

			e, cleanup, err := g.open(context.Background())
			if err != nil {
				return err
			}
			defer cleanup()

			hs := e.stores.Habits
			var ids []string
			for _, h := range hs.All() {
				ids = append(ids, h.ID)
			}
			id, err := resolveID("habit", ids, args[0])
			if err != nil {
				return err
			}
			if date == "" {
				date = streak.Today(time.Now())
			}
			hs.ToggleCompletion(id, date)

			h, _ := hs.Get(id)
			out := cmd.OutOrStdout()
			if h.CompletedOn(date) {
				fmt.Fprintf(out, "✅ %s done for %s. Streak: %d\n", h.Title, date, h.Streak)
			} else {
				fmt.Fprintf(out, "↩️  %s unchecked for %s. Streak: %d\n", h.Title, date, h.Streak)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Day to toggle (YYYY-MM-DD)")
	return cmd
}

func newHabitListCmd(g *globals) *cobra.Command {
	var todayOnly bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List habits with their streaks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, cleanup, err := g.open(context.Background())
			if err != nil {
				return err
			}
			defer cleanup()

			hs := e.stores.Habits
			list := hs.All()
			if todayOnly {
				list = hs.TodaysHabits()
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, heading("🔥", fmt.Sprintf("Habits (%d done today)", hs.CompletedTodayCount())))
			if len(list) == 0 {
				fmt.Fprintln(out, muted("No habits yet. The owl is judging."))
				return nil
			}
			today := streak.Today(time.Now())
			for _, h := range list {
				mark := "[ ]"
				if h.CompletedOn(today) {
					mark = "[x]"
				}
				fmt.Fprintf(out, "%s %s %s %s\n",
					muted(shortID(h.ID)), mark, h.Title,
					muted(fmt.Sprintf("streak %d, best %d, %s", h.Streak, h.LongestStreak, h.Frequency)))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&todayOnly, "today", false, "Only habits due today")
	return cmd
}
