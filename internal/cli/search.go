package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// SearchCmd returns the search command
func SearchCmd() *cobra.Command {
	var limit int
	var threshold float64

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Rank stored chunks by similarity to a query",
		Long: `Embed the query and print the closest stored chunks with their
cosine similarity. The default threshold of 0 shows everything; raise
it to hide weak matches.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			app, err := NewApp(ctx)
			if err != nil {
				return err
			}
			defer app.Close()

			matches, err := app.Retrieval.Search(ctx, strings.Join(args, " "), limit, threshold)
			if err != nil {
				return err
			}

			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(matches)
			}

			if len(matches) == 0 {
				fmt.Println("no matches")
				return nil
			}
			for _, m := range matches {
				fmt.Printf("%.3f  %s\n", m.Similarity, m.Title)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 5, "Maximum number of matches")
	cmd.Flags().Float64Var(&threshold, "threshold", 0, "Minimum cosine similarity")

	return cmd
}
