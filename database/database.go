package database

import (
	"context"

	"github.com/hackforge/policy-chatbot-be/types"
)

// SearchHit is one ranked result of a nearest-neighbor query.
type SearchHit struct {
	Content  string
	Distance float32
}

// VectorDatabase defines the operations the retrieval core needs from a
// vector index. Each corpus is a distinct collection; the same query
// vector may be run against either.
type VectorDatabase interface {
	// EnsureSchema creates the corpus collections if they do not exist.
	EnsureSchema(ctx context.Context) error
	// ReInit drops and recreates one corpus collection.
	ReInit(ctx context.Context, corpus string) error

	UpsertDocument(ctx context.Context, corpus string, doc *types.Document, embedding []float32) error
	BatchInsertDocuments(ctx context.Context, corpus string, docs []types.Document, embeddings [][]float32) error

	// Query returns up to limit nearest neighbors of vector in the given
	// corpus, closest first.
	Query(ctx context.Context, corpus string, vector []float32, limit int) ([]SearchHit, error)
}
