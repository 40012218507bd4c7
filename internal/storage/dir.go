package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/arclabs/arcai/internal/domain"
)

// ReadTextDir loads every .txt and .md file in dir as a source
// document, in lexical order so ingestion reports are deterministic.
func ReadTextDir(dir string) ([]domain.SourceDocument, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var docs []domain.SourceDocument
	for _, entry := range entries {
		if entry.IsDir() || !isTextFile(entry.Name()) {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", entry.Name(), err)
		}

		docs = append(docs, domain.SourceDocument{
			Name: entry.Name(),
			Text: string(data),
		})
	}

	sort.Slice(docs, func(i, j int) bool { return docs[i].Name < docs[j].Name })

	return docs, nil
}

func isTextFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".txt" || ext == ".md"
}
