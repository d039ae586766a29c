package root

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/nhle/prodowl/internal/store"
)

func newExportCmd(g *globals) *cobra.Command {
	var (
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Print every stored snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "yaml" && format != "json" {
				return fmt.Errorf("format must be yaml or json, got %q", format)
			}

			ctx := context.Background()
			e, cleanup, err := g.open(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			doc, err := exportSnapshots(ctx, e.db)
			if err != nil {
				return err
			}

			var data []byte
			if format == "json" {
				data, err = json.MarshalIndent(doc, "", "  ")
				data = append(data, '\n')
			} else {
				data, err = yaml.Marshal(doc)
			}
			if err != nil {
				return fmt.Errorf("encoding export: %w", err)
			}

			if output == "" || output == "-" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", output, err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "📦 Exported %d snapshots to %s\n", len(doc), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "Output format (yaml|json)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to a file instead of stdout")
	return cmd
}

// exportSnapshots decodes every stored snapshot into a generic document
// keyed by store name.
func exportSnapshots(ctx context.Context, db store.Store) (map[string]any, error) {
	doc := make(map[string]any, len(store.Keys))
	for _, key := range store.Keys {
		raw, err := db.LoadSnapshot(ctx, key)
		if errors.Is(err, store.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		var v any
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("decoding snapshot %s: %w", key, err)
		}
		doc[key] = v
	}
	return doc, nil
}
