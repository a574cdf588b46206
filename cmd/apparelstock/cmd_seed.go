package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"apparelstock/internal/config"
	applog "apparelstock/internal/log"
	"apparelstock/internal/repos"
)

// apparelstock seed: load demo rows into empty tables.
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load demo materials, products and orders into empty tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		db, err := repos.OpenDB(cmd.Context(), cfg.StoreURL, cfg.StoreKey)
		if err != nil {
			return err
		}
		defer db.Close()

		inserted, err := repos.SeedIfEmpty(cmd.Context(), db, time.Now().UTC().Format(time.RFC3339Nano))
		if err != nil {
			return fmt.Errorf("seed: %w", err)
		}
		applog.Info(nil, "store.seed", map[string]any{"inserted": inserted})
		for _, table := range []string{"materials", "products", "orders"} {
			fmt.Fprintf(cmd.OutOrStdout(), "%-10s %d\n", table, inserted[table])
		}
		return nil
	},
}
