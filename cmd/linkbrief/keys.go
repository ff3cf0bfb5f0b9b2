package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/linkbrief/linkbrief/config"
	"github.com/linkbrief/linkbrief/internal/store"
)

func keysCMD() *cobra.Command {
	var keys = &cobra.Command{
		Use:   "keys",
		Short: "Manage ingest keys for the webhook endpoint",
	}
	keys.AddCommand(keysCreateCMD())
	return keys
}

func keysCreateCMD() *cobra.Command {
	var email string
	var cfgPath string

	var create = &cobra.Command{
		Use:   "create",
		Short: "Mint an ingest key for a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" {
				return fmt.Errorf("--email is required")
			}
			cfg := config.LoadConfig(cfgPath)
			dsn, err := cfg.Storage.Postgres.DSN()
			if err != nil {
				return err
			}
			ctx := context.Background()
			st, err := store.NewPostgres(ctx, dsn)
			if err != nil {
				return err
			}

			userID, _, err := st.GetUserByEmail(ctx, email)
			if err != nil {
				return fmt.Errorf("lookup %s: %w", email, err)
			}
			key := newIngestKey(userID)
			if err := st.SaveIngestKey(ctx, key, userID); err != nil {
				return err
			}
			fmt.Println(key)
			return nil
		},
	}
	create.Flags().StringVar(&email, "email", "", "email of the owning user")
	create.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "config file (default is ./config/config.json)")

	return create
}

// newIngestKey produces "<random hex>_<user prefix>", the shape the iOS
// Shortcut setup flow historically used. Only the full key is ever matched.
func newIngestKey(userID string) string {
	random := strings.ReplaceAll(uuid.NewString(), "-", "")
	prefix := userID
	if len(prefix) > 6 {
		prefix = prefix[:6]
	}
	return random + "_" + prefix
}
