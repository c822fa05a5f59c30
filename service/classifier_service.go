package service

import (
	"context"
	"fmt"

	"github.com/hackforge/policy-chatbot-be/database"
	"github.com/hackforge/policy-chatbot-be/logger"
	"github.com/hackforge/policy-chatbot-be/types"
	"github.com/hackforge/policy-chatbot-be/utils"
)

// ClassifierService decides whether an uploaded document belongs to the
// restricted corpus, the allowed corpus, or neither.
type ClassifierService struct {
	embedder  Embedder
	vectorDB  database.VectorDatabase
	threshold float32
}

func NewClassifierService(embedder Embedder, vectorDB database.VectorDatabase, threshold float32) *ClassifierService {
	return &ClassifierService{
		embedder:  embedder,
		vectorDB:  vectorDB,
		threshold: threshold,
	}
}

// Classify embeds the document and compares it against the top match of
// each corpus, restricted first. A document over threshold for both
// corpora is classified restricted. Read-only against the index; the
// caller persists the session.
func (s *ClassifierService) Classify(ctx context.Context, content string) (types.Classification, error) {
	vector, err := s.embedder.Embed(ctx, content)
	if err != nil {
		return types.ClassificationUnrelated, fmt.Errorf("failed to embed document: %w", err)
	}

	for _, corpus := range []string{types.CorpusRestricted, types.CorpusAllowed} {
		sim, err := nearestSimilarity(ctx, s.embedder, s.vectorDB, corpus, vector)
		if err != nil {
			return types.ClassificationUnrelated, err
		}
		logger.Infow("corpus similarity", "corpus", corpus, "similarity", sim)
		if sim > s.threshold {
			return types.Classification(corpus), nil
		}
	}
	return types.ClassificationUnrelated, nil
}

// nearestSimilarity returns the cosine similarity between vector and the
// re-embedded content of the corpus's single nearest neighbor. The stored
// text is embedded again rather than trusting the index's own distance
// metric, so the threshold always compares cosine values. An empty corpus
// yields 0.
func nearestSimilarity(ctx context.Context, embedder Embedder, vectorDB database.VectorDatabase, corpus string, vector []float32) (float32, error) {
	hits, err := vectorDB.Query(ctx, corpus, vector, 1)
	if err != nil {
		return 0, fmt.Errorf("failed to query %s corpus: %w", corpus, err)
	}
	if len(hits) == 0 {
		return 0, nil
	}

	neighborVector, err := embedder.Embed(ctx, hits[0].Content)
	if err != nil {
		return 0, fmt.Errorf("failed to embed %s corpus match: %w", corpus, err)
	}
	return utils.CosineSimilarity(vector, neighborVector), nil
}
