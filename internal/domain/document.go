package domain

import "time"

// Document is a stored chunk of source text with its embedding.
// Embedding is nil for rows awaiting backfill; such rows are
// invisible to similarity search.
type Document struct {
	ID        string
	Title     string
	Content   string
	Embedding []float32
	CreatedAt time.Time
}

// Match is a similarity search hit.
type Match struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Content    string  `json:"content"`
	Similarity float64 `json:"similarity"`
}

// ContextItem pairs a retrieved chunk with its 1-based rank for one
// answer-generation request. The rank is the citation key the model
// refers to as "Chunk N".
type ContextItem struct {
	Rank       int
	Title      string
	Content    string
	Similarity float64
}

// SourceDocument is raw input to the ingestion pipeline.
type SourceDocument struct {
	Name string
	Text string
}
