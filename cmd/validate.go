package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"hookmap/core/engine"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
)

var validateOutput string

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Run catalog integrity checks",
	Long: `Builds the catalog snapshot and reports duplicate product codes, bank
conflicts, codes assigned under the wrong model and models without usable
bank codes.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		env, err := newCliEnv(ctx)
		if err != nil {
			return err
		}
		defer env.close(ctx)

		report := env.store.Engine().Validate()

		switch validateOutput {
		case "json":
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		case "yaml":
			data, err := yaml.Marshal(report)
			if err != nil {
				return fmt.Errorf("failed to marshal report: %w", err)
			}
			_, err = os.Stdout.Write(data)
			return err
		case "text":
			printReport(report)
			return nil
		}
		return fmt.Errorf("unknown output format %q", validateOutput)
	},
}

func printReport(r *engine.Report) {
	fmt.Printf("Models:          %d (%d with vehicles, %d with notes)\n", r.Stats.Models, r.Stats.ModelsWithVehicle, r.Stats.ModelsWithNotes)
	fmt.Printf("Vehicles:        %d\n", r.Stats.Vehicles)
	fmt.Printf("Active variants: %d (%d with codes)\n", r.Stats.ActiveVariants, r.Stats.FilledCodes)
	fmt.Printf("Bank codes:      %d\n", r.Stats.BankCodes)
	fmt.Println()

	if len(r.DuplicateCodes) == 0 && len(r.BankConflicts) == 0 && len(r.WrongModel) == 0 && len(r.MissingCodes) == 0 {
		fmt.Println("No findings.")
		return
	}

	for _, d := range r.DuplicateCodes {
		fmt.Printf("DUPLICATE   %s used at:\n", d.Code)
		for _, loc := range d.Locations {
			fmt.Printf("            %s / %s / %s\n", loc.Model, loc.Vehicle, loc.Wiring)
		}
	}
	for _, b := range r.BankConflicts {
		fmt.Printf("CONFLICT    %s banked under %v\n", b.Code, b.Models)
	}
	for _, w := range r.WrongModel {
		fmt.Printf("WRONG MODEL %s used in %s (%s, %s) but banked under %v\n",
			w.Code, w.UsedInModel, w.Vehicle, w.Wiring, w.BelongsToModels)
	}
	for _, m := range r.MissingCodes {
		fmt.Printf("NO CODES    %s has %d variants without a code (%d available, %t blocked)\n",
			m.Model, m.Missing, m.Available, m.Blocked)
	}
}

func init() {
	validateCmd.Flags().StringVarP(&validateOutput, "output", "o", "text", "output format: text, json or yaml")
	RootCmd.AddCommand(validateCmd)
}
