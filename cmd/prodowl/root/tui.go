package root

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/nhle/prodowl/internal/app"
	"github.com/nhle/prodowl/internal/mascot"
	"github.com/nhle/prodowl/internal/notify"
	"github.com/nhle/prodowl/internal/pulse"
)

func newTUICmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the terminal UI (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, g)
		},
	}
}

func runTUI(cmd *cobra.Command, g *globals) error {
	ctx := context.Background()
	e, cleanup, err := g.open(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	cfg := e.cfg
	p, err := pulse.New(pulse.Config{
		MoodEvery:   minutes(cfg.Mascot.CheckIntervalMinutes),
		NotifyEvery: minutes(cfg.Notifications.IntervalMinutes),
	}, e.logger)
	if err != nil {
		return fmt.Errorf("starting scheduler: %w", err)
	}
	p.Start()
	defer p.Stop()

	seed := uint64(time.Now().UnixNano())
	desktop := notify.NewDesktop(time.Duration(cfg.Notifications.DismissSeconds)*time.Second, time.Now,
		notify.WithPermission(notify.ParsePermission(e.stores.App.AlertPermission())),
		notify.WithDeliverer(notify.SystemDeliverer{}),
	)
	if cfg.Notifications.Enabled {
		perm := desktop.RequestPermission(func() bool { return true })
		e.stores.App.SetAlertPermission(string(perm))
	}
	coach := mascot.NewCoach(notify.NewSeededGenerator(seed), desktop, cfg.Notifications.TriggerChance, e.logger)

	m := app.New(app.Deps{
		Stores:     e.stores,
		Coach:      coach,
		Pulse:      p,
		Opener:     e.opener,
		Config:     cfg,
		ConfigPath: e.cfgPath,
		Logger:     e.logger,
	})

	e.logger.Info().Msg("starting tui")
	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
		return fmt.Errorf("running tui: %w", err)
	}
	return nil
}
