package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// ChatCmd returns the interactive chat command
func ChatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Interactive question loop against the knowledge store",
		Long:  `Read questions from stdin one line at a time. Type "exit" to quit.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			app, err := NewApp(ctx)
			if err != nil {
				return err
			}
			defer app.Close()

			fmt.Println(`Ask a question (type "exit" to quit)`)

			scanner := bufio.NewScanner(os.Stdin)
			for {
				fmt.Print("> ")
				if !scanner.Scan() {
					break
				}

				query := strings.TrimSpace(scanner.Text())
				if query == "" {
					continue
				}
				if strings.EqualFold(query, "exit") {
					break
				}

				answer, err := app.Answer.Answer(ctx, query)
				if err != nil {
					// One bad turn should not end the session
					fmt.Fprintf(os.Stderr, "error: %v\n", err)
					continue
				}

				fmt.Println()
				fmt.Println(answer)
				fmt.Println()
			}

			return scanner.Err()
		},
	}
}
