package cli

import (
	"errors"
	"fmt"

	"github.com/arclabs/arcai/internal/domain"
	"github.com/spf13/cobra"
)

// InsertCmd returns the insert command
func InsertCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "insert <title> <content>",
		Short: "Embed and store one document without chunking",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			app, err := NewApp(ctx)
			if err != nil {
				return err
			}
			defer app.Close()

			id, err := app.Ingest.InsertDocument(ctx, args[0], args[1])
			if err != nil {
				if errors.Is(err, domain.ErrDuplicateDocument) {
					fmt.Println("skipped: identical content already stored")
					return nil
				}
				return err
			}

			fmt.Printf("inserted %s (id: %s)\n", args[0], id)
			return nil
		},
	}
}
