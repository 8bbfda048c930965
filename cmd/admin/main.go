// Command admin is the offline maintenance CLI. It talks to the sqlite
// database directly, so accounts can be inspected or repaired even when
// nobody can log in to the server.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/gamenight/backend/internal/auth"
	"github.com/gamenight/backend/internal/config"
	"github.com/gamenight/backend/internal/models"
	"github.com/gamenight/backend/internal/storage/sqlite"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func openStore() (*sqlite.SQLiteStore, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return sqlite.New(cfg.DBPath)
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "admin",
		Short:         "gamenight maintenance CLI",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	users := &cobra.Command{
		Use:   "users",
		Short: "Inspect and repair accounts",
	}
	users.AddCommand(newUsersListCmd(), newUsersCreateCmd(), newUsersPromoteCmd())
	root.AddCommand(users)

	return root
}

func newUsersListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			accounts, err := store.ListAccounts(context.Background())
			if err != nil {
				return err
			}
			for _, a := range accounts {
				fmt.Printf("%4d  %-24s  %-13s  %s\n",
					a.ID, a.Username, a.Role, time.Unix(a.CreatedAt, 0).Format(time.DateOnly))
			}
			return nil
		},
	}
}

func newUsersCreateCmd() *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "create <username>",
		Short: "Create an account (the first one becomes administrator)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(password) < 8 {
				return fmt.Errorf("password must be at least 8 characters")
			}

			store, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			hash, salt, err := auth.HashPassword(password)
			if err != nil {
				return err
			}
			account, err := store.CreateAccount(context.Background(), args[0], hash, salt)
			if err != nil {
				return err
			}
			fmt.Printf("created account %d (%s) with role %s\n", account.ID, account.Username, account.Role)
			return nil
		},
	}
	cmd.Flags().StringVar(&password, "password", "", "initial password")
	cmd.MarkFlagRequired("password")
	return cmd
}

func newUsersPromoteCmd() *cobra.Command {
	var id int64

	cmd := &cobra.Command{
		Use:   "promote",
		Short: "Toggle an account between standard and administrator",
		RunE: func(cmd *cobra.Command, args []string) error {
			if id == models.RootAccountID {
				return fmt.Errorf("account %d is the protected root account", id)
			}

			store, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			role, err := store.ToggleAccountRole(context.Background(), id)
			if err != nil {
				return err
			}
			fmt.Printf("account %d is now %s\n", id, role)
			return nil
		},
	}
	cmd.Flags().Int64Var(&id, "id", 0, "account id")
	cmd.MarkFlagRequired("id")
	return cmd
}
