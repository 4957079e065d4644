package cmd

import (
	"fmt"
	"os"

	"hookmap/core/storage"
	"hookmap/feature/export"

	"github.com/spf13/cobra"
)

var exportOut string

// exportCmd groups the export and backup subcommands.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the catalog and manage backups",
}

// exportCsvCmd writes the catalog sheet to a file or stdout.
var exportCsvCmd = &cobra.Command{
	Use:   "csv",
	Short: "Export the catalog as a semicolon-separated sheet",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		env, err := newCliEnv(ctx)
		if err != nil {
			return err
		}
		defer env.close(ctx)

		out := os.Stdout
		if exportOut != "" {
			f, err := os.Create(exportOut)
			if err != nil {
				return fmt.Errorf("failed to create file: %w", err)
			}
			defer f.Close()
			out = f
		}
		return export.WriteCSV(out, env.store.Snapshot())
	},
}

// exportBackupCmd uploads a dated JSON snapshot to object storage.
var exportBackupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Upload a dated JSON backup to object storage",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		env, err := newCliEnv(ctx)
		if err != nil {
			return err
		}
		defer env.close(ctx)

		client, err := storage.NewClient(env.cfg.Storage)
		if err != nil {
			return fmt.Errorf("failed to create storage client: %w", err)
		}
		svc := export.NewService(env.store, client, env.cfg.Storage.Bucket, env.logger)
		objName, err := svc.Backup(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("Uploaded %s\n", objName)
		return nil
	},
}

// exportRestoreCmd replaces the catalog with a stored backup.
var exportRestoreCmd = &cobra.Command{
	Use:   "restore <object>",
	Short: "Replace the catalog with a stored backup",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		env, err := newCliEnv(ctx)
		if err != nil {
			return err
		}
		defer env.close(ctx)

		client, err := storage.NewClient(env.cfg.Storage)
		if err != nil {
			return fmt.Errorf("failed to create storage client: %w", err)
		}
		svc := export.NewService(env.store, client, env.cfg.Storage.Bucket, env.logger)
		if err := svc.Restore(ctx, args[0]); err != nil {
			return err
		}
		fmt.Printf("Restored %s\n", args[0])
		return nil
	},
}

// exportListCmd lists the stored backup objects.
var exportListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored backups",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		env, err := newCliEnv(ctx)
		if err != nil {
			return err
		}
		defer env.close(ctx)

		client, err := storage.NewClient(env.cfg.Storage)
		if err != nil {
			return fmt.Errorf("failed to create storage client: %w", err)
		}
		svc := export.NewService(env.store, client, env.cfg.Storage.Bucket, env.logger)
		names, err := svc.ListBackups(ctx)
		if err != nil {
			return err
		}
		if len(names) == 0 {
			fmt.Println("No backups stored.")
			return nil
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return nil
	},
}

func init() {
	exportCsvCmd.Flags().StringVarP(&exportOut, "out", "f", "", "write to file instead of stdout")
	exportCmd.AddCommand(exportCsvCmd)
	exportCmd.AddCommand(exportBackupCmd)
	exportCmd.AddCommand(exportRestoreCmd)
	exportCmd.AddCommand(exportListCmd)
	RootCmd.AddCommand(exportCmd)
}
