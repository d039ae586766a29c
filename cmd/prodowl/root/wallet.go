package root

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/nhle/prodowl/internal/credential"
	"github.com/nhle/prodowl/internal/web3"
)

const walletTimeout = 30 * time.Second

func newWalletCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wallet",
		Short: "Configure and check the wallet bridge",
	}

	token := &cobra.Command{
		Use:   "token",
		Short: "Manage the wallet bridge token in the system keyring",
	}
	token.AddCommand(
		&cobra.Command{
			Use:   "set <token>",
			Short: "Store the bearer token",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				v := strings.TrimSpace(args[0])
				if v == "" {
					return errors.New("token cannot be blank")
				}
				if err := credential.New().Set(credential.WalletTokenKey, v); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "🔐 Wallet token saved")
				return nil
			},
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Remove the bearer token",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := credential.New().Delete(credential.WalletTokenKey); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "🔓 Wallet token removed")
				return nil
			},
		},
	)

	status := &cobra.Command{
		Use:   "status",
		Short: "Connect to the wallet bridge and show the account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, cleanup, err := g.open(context.Background())
			if err != nil {
				return err
			}
			defer cleanup()

			ctx, cancel := context.WithTimeout(context.Background(), walletTimeout)
			defer cancel()
			w, err := web3.Connect(ctx, e.stores.Web3.Provider())
			if err != nil {
				return fmt.Errorf("connecting wallet: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, heading("🦊", "Wallet"))
			fmt.Fprintf(out, "Address: %s\n", w.Address)
			fmt.Fprintf(out, "Chain:   %s\n", web3.Chains[w.Chain].Name)
			fmt.Fprintf(out, "Balance: %s\n", w.Balance)
			if n := len(e.stores.Web3.Pending()); n > 0 {
				fmt.Fprintln(out, muted(fmt.Sprintf("%d web3 tasks pending", n)))
			}
			return nil
		},
	}

	cmd.AddCommand(token, status)
	return cmd
}
