package root

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/spf13/cobra"

	"github.com/nhle/prodowl/internal/deeplink"
	"github.com/nhle/prodowl/internal/streak"
)

func newLinkCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "link",
		Short: "Follow and build prodowl:// deep links",
	}
	cmd.AddCommand(newLinkOpenCmd(g), newLinkGenCmd(g))
	return cmd
}

func newLinkOpenCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "open <url>",
		Short: "Follow a deep link into the stores",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			e, cleanup, err := g.open(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			s := e.stores
			out := cmd.OutOrStdout()
			var failure error
			handled := deeplink.Handle(args[0], deeplink.Handlers{
				CompleteTask: func(id string) {
					t, ok := s.Tasks.Get(id)
					if !ok {
						failure = fmt.Errorf("no task %s", id)
						return
					}
					s.Tasks.Complete(id)
					fmt.Fprintf(out, "🎉 Completed %s\n", t.Title)
				},
				OpenTask: func(id string) {
					t, ok := s.Tasks.Get(id)
					if !ok {
						failure = fmt.Errorf("no task %s", id)
						return
					}
					fmt.Fprintf(out, "📋 %s [%s] %s\n", shortID(t.ID), t.Status, t.Title)
				},
				CheckHabit: func(id string) {
					h, ok := s.Habits.Get(id)
					if !ok {
						failure = fmt.Errorf("no habit %s", id)
						return
					}
					today := streak.Today(time.Now())
					if !h.CompletedOn(today) {
						s.Habits.ToggleCompletion(id, today)
					}
					h, _ = s.Habits.Get(id)
					fmt.Fprintf(out, "✅ %s done today. Streak: %d\n", h.Title, h.Streak)
				},
				StartTimer: func(minutes int) {
					s.Timer.SetTargetMinutes(minutes)
					s.Timer.Start("Focus session", "", "")
					fmt.Fprintf(out, "⏱ Started a %d min focus session\n", minutes)
				},
				OpenNote: func(id string) {
					n, ok := s.Notes.Get(id)
					if !ok {
						failure = fmt.Errorf("no note %s", id)
						return
					}
					fmt.Fprintf(out, "📝 %s\n\n%s\n", n.Title, n.Content)
				},
				External: func(url string) {
					failure = e.openURL(ctx, url)
					if failure == nil {
						fmt.Fprintf(out, "🌐 Opened %s\n", url)
					}
				},
			})
			if !handled {
				return fmt.Errorf("not a prodowl link: %s", args[0])
			}
			return failure
		},
	}
}

func (e *env) openURL(ctx context.Context, url string) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return e.opener.OpenURL(ctx, url)
}

func newLinkGenCmd(g *globals) *cobra.Command {
	var web bool

	cmd := &cobra.Command{
		Use:   "gen <action> [id|minutes|url]",
		Short: "Build a deep link",
		Long: "Build a deep link. Actions: complete-task, open-task, check-habit, " +
			"start-timer, open-note, external.",
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			action := deeplink.Action(args[0])
			if !slices.Contains(deeplink.Actions, action) {
				return fmt.Errorf("unknown action %q", args[0])
			}
			var arg string
			if len(args) == 2 {
				arg = args[1]
			}

			l := deeplink.Link{Action: action}
			switch action {
			case deeplink.ActionStartTimer:
				if arg != "" {
					l.Params = map[string]string{"duration": arg}
				}
			case deeplink.ActionExternal:
				if arg == "" {
					return errors.New("external links need a url")
				}
				l.ExternalURL = arg
			default:
				if arg == "" {
					return fmt.Errorf("%s links need an id", action)
				}
				l.ID = arg
			}

			if !web {
				fmt.Fprintln(cmd.OutOrStdout(), deeplink.Generate(l))
				return nil
			}

			e, cleanup, err := g.open(context.Background())
			if err != nil {
				return err
			}
			defer cleanup()
			fmt.Fprintln(cmd.OutOrStdout(), deeplink.GenerateWeb(l, e.cfg.DeepLink.WebBaseURL))
			return nil
		},
	}

	cmd.Flags().BoolVar(&web, "web", false, "Build a shareable web URL instead")
	return cmd
}
