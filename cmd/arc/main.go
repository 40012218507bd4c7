package main

import (
	"fmt"
	"os"

	"github.com/arclabs/arcai/internal/cli"
	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "arc",
		Short: "ARC - retrieval-augmented health knowledge assistant",
		Long: `ARC ingests text documents into a pgvector-backed knowledge store
and answers questions against it with cited context.

Environment variables:
  ARC_DATABASE_URL     Postgres connection URL (required)
  ARC_OPENAI_API_KEY   OpenAI API key (required for all commands but serve)`,
		Version: version,
	}

	rootCmd.PersistentFlags().Bool("json", false, "Output reports as JSON")

	rootCmd.AddCommand(cli.ServeCmd())
	rootCmd.AddCommand(cli.IngestCmd())
	rootCmd.AddCommand(cli.BackfillCmd())
	rootCmd.AddCommand(cli.AskCmd())
	rootCmd.AddCommand(cli.ChatCmd())
	rootCmd.AddCommand(cli.InsertCmd())
	rootCmd.AddCommand(cli.SearchCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
