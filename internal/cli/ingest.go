package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/arclabs/arcai/internal/domain"
	"github.com/arclabs/arcai/internal/service"
	"github.com/arclabs/arcai/internal/storage"
	"github.com/spf13/cobra"
)

// IngestCmd returns the ingest command
func IngestCmd() *cobra.Command {
	var s3Bucket, s3Prefix string

	cmd := &cobra.Command{
		Use:   "ingest [dir]",
		Short: "Chunk, embed and store a corpus of text documents",
		Long: `Read every .txt and .md file from a local directory (or an
S3-compatible bucket with --s3-bucket), split each into overlapping
chunks, embed them and store them. Re-running over the same corpus
skips chunks that are already stored.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			app, err := NewApp(ctx)
			if err != nil {
				return err
			}
			defer app.Close()

			var docs []domain.SourceDocument
			switch {
			case s3Bucket != "":
				client, err := storage.NewS3Client(ctx, storage.S3ClientConfig{
					Endpoint:        app.Cfg.S3Endpoint,
					Region:          app.Cfg.S3Region,
					AccessKeyID:     app.Cfg.S3AccessKey,
					SecretAccessKey: app.Cfg.S3SecretKey,
					Bucket:          s3Bucket,
					UsePathStyle:    true,
				})
				if err != nil {
					return err
				}
				docs, err = client.ReadTextObjects(ctx, s3Prefix)
				if err != nil {
					return err
				}
			case len(args) == 1:
				docs, err = storage.ReadTextDir(args[0])
				if err != nil {
					return err
				}
			default:
				return fmt.Errorf("either a directory argument or --s3-bucket is required")
			}

			if len(docs) == 0 {
				fmt.Println("no .txt or .md documents found")
				return nil
			}

			reports, ingestErr := app.Ingest.IngestAll(ctx, docs)
			if err := printIngestReports(cmd, reports); err != nil {
				return err
			}
			return ingestErr
		},
	}

	cmd.Flags().StringVar(&s3Bucket, "s3-bucket", "", "Read the corpus from this S3 bucket instead of a local directory")
	cmd.Flags().StringVar(&s3Prefix, "s3-prefix", "", "Only read objects under this key prefix")

	return cmd
}

func printIngestReports(cmd *cobra.Command, reports []*service.SourceReport) error {
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(reports)
	}

	for _, r := range reports {
		fmt.Printf("%s: %d chunks, %d inserted, %d skipped, %d failed\n",
			r.Source, r.ChunkCount, r.Inserted, r.Skipped, len(r.Failures))
		for _, f := range r.Failures {
			fmt.Printf("  part %d: %s\n", f.Part, f.Err)
		}
	}
	return nil
}
