package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// BackfillCmd returns the backfill command
func BackfillCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "backfill",
		Short: "Embed stored documents that are missing their vector",
		Long: `Run one reconciler pass: find every stored document whose
embedding is NULL, embed its content and update the row. Safe to run
repeatedly; a complete store attempts nothing.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			app, err := NewApp(ctx)
			if err != nil {
				return err
			}
			defer app.Close()

			report, err := app.Backfill.Backfill(ctx)
			if err != nil {
				return err
			}

			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}

			fmt.Printf("attempted %d, healed %d, failed %d\n", report.Attempted, report.Healed, report.Failed)
			for _, f := range report.Failures {
				fmt.Printf("  %s (%s): %s\n", f.Title, f.ID, f.Err)
			}
			return nil
		},
	}
}
