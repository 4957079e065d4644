package cmd

import (
	"fmt"
	"os"

	"hookmap/core/engine"
	"hookmap/feature/offers"

	"github.com/spf13/cobra"
)

// offersCmd groups the marketplace listing subcommands.
var offersCmd = &cobra.Command{
	Use:   "offers",
	Short: "Manage marketplace listings",
}

// offersImportCmd ingests a CSV export for one account.
var offersImportCmd = &cobra.Command{
	Use:   "import <account> <file>",
	Short: "Import a marketplace CSV export",
	Long: `Imports a marketplace CSV export for one account. Rows upsert on
(account, external id); listings absent from the file are retained.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		env, err := newCliEnv(ctx)
		if err != nil {
			return err
		}
		defer env.close(ctx)

		f, err := os.Open(args[1])
		if err != nil {
			return fmt.Errorf("failed to open file: %w", err)
		}
		defer f.Close()

		svc := offers.NewService(env.db, env.store, env.logger)
		if err := svc.Migrate(); err != nil {
			return fmt.Errorf("failed to migrate listings table: %w", err)
		}

		stats, err := svc.Import(ctx, engine.Account(args[0]), f)
		if err != nil {
			return err
		}
		fmt.Printf("Imported %d of %d row(s), skipped %d\n", stats.Parsed, stats.Rows, stats.Skipped)
		return nil
	},
}

// offersClearCmd removes every stored listing of one account.
var offersClearCmd = &cobra.Command{
	Use:   "clear <account>",
	Short: "Clear an account's stored listings",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		env, err := newCliEnv(ctx)
		if err != nil {
			return err
		}
		defer env.close(ctx)

		svc := offers.NewService(env.db, env.store, env.logger)
		if err := svc.Migrate(); err != nil {
			return fmt.Errorf("failed to migrate listings table: %w", err)
		}
		if err := svc.ClearAccount(ctx, engine.Account(args[0])); err != nil {
			return err
		}
		fmt.Printf("Cleared listings of %s\n", args[0])
		return nil
	},
}

func init() {
	offersCmd.AddCommand(offersImportCmd)
	offersCmd.AddCommand(offersClearCmd)
	RootCmd.AddCommand(offersCmd)
}
