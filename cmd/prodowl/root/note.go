package root

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nhle/prodowl/internal/model"
	"github.com/nhle/prodowl/internal/ui/forms"
)

func newNoteCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "note",
		Aliases: []string{"notes", "n"},
		Short:   "Capture and search notes",
	}
	cmd.AddCommand(newNoteAddCmd(g), newNoteListCmd(g))
	return cmd
}

func newNoteAddCmd(g *globals) *cobra.Command {
	var (
		content string
		tags    string
		pin     bool
	)

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, cleanup, err := g.open(context.Background())
			if err != nil {
				return err
			}
			defer cleanup()

			n, ok := e.stores.Notes.Add(args[0], content, forms.ParseTags(tags))
			if !ok {
				return errors.New("note title cannot be blank")
			}
			if pin {
				e.stores.Notes.TogglePin(n.ID)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "📝 Saved note %s %s\n", muted(shortID(n.ID)), n.Title)
			return nil
		},
	}

	cmd.Flags().StringVarP(&content, "content", "m", "", "Note body")
	cmd.Flags().StringVar(&tags, "tags", "", "Comma-separated tags")
	cmd.Flags().BoolVar(&pin, "pin", false, "Pin the note")
	return cmd
}

func newNoteListCmd(g *globals) *cobra.Command {
	var (
		search string
		tag    string
		pinned bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List notes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, cleanup, err := g.open(context.Background())
			if err != nil {
				return err
			}
			defer cleanup()

			ns := e.stores.Notes
			var list []model.Note
			switch {
			case search != "":
				list = ns.Search(search)
			case tag != "":
				list = ns.ByTag(tag)
			case pinned:
				list = ns.Pinned()
			default:
				list = ns.All()
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, heading("📝", fmt.Sprintf("Notes (%d)", len(list))))
			for _, n := range list {
				pin := " "
				if n.Pinned {
					pin = "📌"
				}
				line := fmt.Sprintf("%s %s %s", muted(shortID(n.ID)), pin, n.Title)
				if len(n.Tags) > 0 {
					line += " " + muted("#"+strings.Join(n.Tags, " #"))
				}
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "Search titles, bodies and tags")
	cmd.Flags().StringVar(&tag, "tag", "", "Only notes with this tag")
	cmd.Flags().BoolVar(&pinned, "pinned", false, "Only pinned notes")
	return cmd
}
