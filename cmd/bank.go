package cmd

import (
	"fmt"
	"io"
	"os"

	"hookmap/feature/codebank"

	"github.com/spf13/cobra"
)

// bankCmd groups the code-bank subcommands.
var bankCmd = &cobra.Command{
	Use:   "bank",
	Short: "Manage the manufacturer product-code bank",
}

// bankAddCmd reads codes from arguments or stdin and banks them for a model.
var bankAddCmd = &cobra.Command{
	Use:   "add <model> [codes...]",
	Short: "Bank product codes for a model",
	Long: `Banks product codes for a model. Codes come from the arguments, or from
stdin when none are given so a spreadsheet column can be piped in directly.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		env, err := newCliEnv(ctx)
		if err != nil {
			return err
		}
		defer env.close(ctx)

		raw := ""
		if len(args) > 1 {
			for _, arg := range args[1:] {
				raw += arg + "\n"
			}
		} else {
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("failed to read stdin: %w", err)
			}
			raw = string(data)
		}

		svc := codebank.NewService(env.store, env.logger)
		result, err := svc.AddCodes(ctx, args[0], raw)
		if err != nil {
			return err
		}

		if result.ModelCreated {
			fmt.Printf("Created model %s\n", result.Model)
		}
		fmt.Printf("Added %d code(s) to %s\n", len(result.Added), result.Model)
		for _, f := range result.Skipped {
			fmt.Printf("  skipped %s (%s)\n", f.Code, f.Reason)
		}
		for _, f := range result.Warnings {
			fmt.Printf("  warning %s (%s: %v)\n", f.Code, f.Reason, f.Models)
		}
		return nil
	},
}

// bankRemoveCmd removes one banked code from a model.
var bankRemoveCmd = &cobra.Command{
	Use:   "remove <model> <code>",
	Short: "Remove one banked code",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		env, err := newCliEnv(ctx)
		if err != nil {
			return err
		}
		defer env.close(ctx)

		svc := codebank.NewService(env.store, env.logger)
		if err := svc.RemoveCode(ctx, args[0], args[1]); err != nil {
			return err
		}
		fmt.Printf("Removed %s from %s\n", args[1], args[0])
		return nil
	},
}

// bankClearCmd removes every banked code of a model.
var bankClearCmd = &cobra.Command{
	Use:   "clear <model>",
	Short: "Clear a model's bank",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		env, err := newCliEnv(ctx)
		if err != nil {
			return err
		}
		defer env.close(ctx)

		svc := codebank.NewService(env.store, env.logger)
		if err := svc.ClearModel(ctx, args[0]); err != nil {
			return err
		}
		fmt.Printf("Cleared bank of %s\n", args[0])
		return nil
	},
}

func init() {
	bankCmd.AddCommand(bankAddCmd)
	bankCmd.AddCommand(bankRemoveCmd)
	bankCmd.AddCommand(bankClearCmd)
	RootCmd.AddCommand(bankCmd)
}
