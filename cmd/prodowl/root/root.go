package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nhle/prodowl/internal/theme"
)

const Version = "0.1.0"

// globals are the persistent flags shared by every command.
type globals struct {
	configPath string
	dbPath     string
	verbose    bool
}

// NewRootCmd builds the command tree. With no subcommand it opens the TUI.
func NewRootCmd() *cobra.Command {
	g := &globals{}

	cmd := &cobra.Command{
		Use:           "prodowl",
		Short:         "Prodowl, a productivity app with an opinionated owl",
		Long:          "Prodowl tracks tasks, habits, notes and focus sessions while a mascot owl nags you about them.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, g)
		},
	}
	cmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	cmd.PersistentFlags().StringVarP(&g.configPath, "config", "c", "", "Config file (default ~/.config/prodowl/config.yaml)")
	cmd.PersistentFlags().StringVar(&g.dbPath, "db", "", "Snapshot database, overrides storage.path")
	cmd.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "Log to stderr as well")

	cmd.AddCommand(
		newTUICmd(g),
		newTaskCmd(g),
		newHabitCmd(g),
		newNoteCmd(g),
		newTimerCmd(g),
		newNotifyCmd(g),
		newLinkCmd(g),
		newWalletCmd(g),
		newExportCmd(g),
	)
	return cmd
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, theme.ErrorStyle.Render("🦉 "+err.Error()))
		os.Exit(1)
	}
}
