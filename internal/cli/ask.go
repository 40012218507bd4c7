package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// AskCmd returns the ask command
func AskCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ask <question>",
		Short: "Answer one question against the knowledge store",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			app, err := NewApp(ctx)
			if err != nil {
				return err
			}
			defer app.Close()

			answer, err := app.Answer.Answer(ctx, strings.Join(args, " "))
			if err != nil {
				return err
			}

			fmt.Println(answer)
			return nil
		},
	}
}
