package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/hackforge/policy-chatbot-be/config"
	"github.com/hackforge/policy-chatbot-be/logger"
	"github.com/hackforge/policy-chatbot-be/types"
	"github.com/weaviate/weaviate-go-client/v4/weaviate"
	"github.com/weaviate/weaviate-go-client/v4/weaviate/auth"
	"github.com/weaviate/weaviate-go-client/v4/weaviate/graphql"
	"github.com/weaviate/weaviate/entities/models"
)

const BATCH_SIZE = 200

// corpusClasses maps corpus names to Weaviate class names. The two corpora
// are distinct classes so their storage identities never overlap.
var corpusClasses = map[string]string{
	types.CorpusAllowed:    "AllowedDocument",
	types.CorpusRestricted: "RestrictedDocument",
}

// corpusClassObject builds the schema for one corpus class. Vectorizer is
// "none": embeddings are computed by our own embedding client and supplied
// on insert and query.
func corpusClassObject(className string) *models.Class {
	return &models.Class{
		Class: className,
		Properties: []*models.Property{
			{Name: "content", DataType: []string{"text"}},
			{Name: "title", DataType: []string{"text"}},
			{Name: "source", DataType: []string{"text"}},
			{Name: "chunk", DataType: []string{"int"}},
			{Name: "createdAt", DataType: []string{"int"}},
		},
		Vectorizer:      "none",
		VectorIndexType: "hnsw",
	}
}

type WeaviateStore struct {
	client *weaviate.Client
}

func NewWeaviateStore(cfg config.WeaviateStoreConfig) (*WeaviateStore, error) {
	var scheme string
	if strings.Contains(cfg.Host, "https") {
		scheme = "https"
	} else {
		scheme = "http"
	}
	host := strings.TrimPrefix(cfg.Host, scheme+"://")
	clientCfg := weaviate.Config{
		Host:   host,
		Scheme: scheme,
	}
	if cfg.APIKey != "" {
		clientCfg.AuthConfig = auth.ApiKey{
			Value: cfg.APIKey,
		}
	}
	client, err := weaviate.NewClient(clientCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create weaviate client: %w", err)
	}

	store := &WeaviateStore{client: client}
	if err := store.EnsureSchema(context.Background()); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *WeaviateStore) EnsureSchema(ctx context.Context) error {
	schema, err := s.client.Schema().Getter().Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to get schema: %w", err)
	}

	existing := make(map[string]bool)
	for _, class := range schema.Classes {
		existing[class.Class] = true
	}

	for _, className := range corpusClasses {
		if existing[className] {
			continue
		}
		err := s.client.Schema().ClassCreator().WithClass(corpusClassObject(className)).Do(ctx)
		if err != nil {
			return fmt.Errorf("failed to create class %s: %w", className, err)
		}
	}
	return nil
}

func (s *WeaviateStore) ReInit(ctx context.Context, corpus string) error {
	className, err := classFor(corpus)
	if err != nil {
		return err
	}
	// Ignore the delete error: the class may not exist yet.
	_ = s.client.Schema().ClassDeleter().WithClassName(className).Do(ctx)

	if err := s.client.Schema().ClassCreator().WithClass(corpusClassObject(className)).Do(ctx); err != nil {
		return fmt.Errorf("failed to create class %s: %w", className, err)
	}
	return nil
}

func (s *WeaviateStore) UpsertDocument(ctx context.Context, corpus string, doc *types.Document, embedding []float32) error {
	className, err := classFor(corpus)
	if err != nil {
		return err
	}

	creator := s.client.Data().Creator().
		WithClassName(className).
		WithProperties(documentProperties(doc))
	if embedding != nil {
		creator = creator.WithVector(embedding)
	}

	result, err := creator.Do(ctx)
	if err != nil {
		return err
	}
	logger.Infow("upserted document", "corpus", corpus, "id", result.Object.ID)
	return nil
}

func (s *WeaviateStore) BatchInsertDocuments(ctx context.Context, corpus string, docs []types.Document, embeddings [][]float32) error {
	className, err := classFor(corpus)
	if err != nil {
		return err
	}
	if len(embeddings) != len(docs) {
		return fmt.Errorf("documents and embeddings length mismatch: %d != %d", len(docs), len(embeddings))
	}

	total := len(docs)
	for i := 0; i < total; i += BATCH_SIZE {
		end := i + BATCH_SIZE
		if end > total {
			end = total
		}

		batcher := s.client.Batch().ObjectsBatcher()
		for j := i; j < end; j++ {
			batcher = batcher.WithObjects(&models.Object{
				Class:      className,
				Properties: documentProperties(&docs[j]),
				Vector:     embeddings[j],
			})
		}

		if _, err := batcher.Do(ctx); err != nil {
			return fmt.Errorf("failed to insert batch %d-%d: %w", i, end, err)
		}
		logger.Infof("inserted batch %d-%d of %d documents into %s", i, end, total, corpus)
	}

	return nil
}

func (s *WeaviateStore) Query(ctx context.Context, corpus string, vector []float32, limit int) ([]SearchHit, error) {
	className, err := classFor(corpus)
	if err != nil {
		return nil, err
	}

	fields := []graphql.Field{
		{Name: "content"},
		{Name: "_additional", Fields: []graphql.Field{{Name: "distance"}}},
	}
	nearVector := s.client.GraphQL().NearVectorArgBuilder().
		WithVector(vector)

	result, err := s.client.GraphQL().Get().
		WithClassName(className).
		WithFields(fields...).
		WithNearVector(nearVector).
		WithLimit(limit).
		Do(ctx)
	if err != nil {
		return nil, err
	}
	if result.Errors != nil {
		return nil, fmt.Errorf("query failed: %v", result.Errors[0].Message)
	}

	var hits []SearchHit
	if data, ok := result.Data["Get"].(map[string]interface{})[className].([]interface{}); ok {
		for _, item := range data {
			doc, ok := item.(map[string]interface{})
			if !ok {
				continue
			}
			hit := SearchHit{
				Content: doc["content"].(string),
			}
			if additional, ok := doc["_additional"].(map[string]interface{}); ok {
				if d, ok := additional["distance"].(float64); ok {
					hit.Distance = float32(d)
				}
			}
			hits = append(hits, hit)
		}
	}
	return hits, nil
}

func classFor(corpus string) (string, error) {
	className, ok := corpusClasses[corpus]
	if !ok {
		return "", fmt.Errorf("unknown corpus: %s", corpus)
	}
	return className, nil
}

func documentProperties(doc *types.Document) map[string]interface{} {
	return map[string]interface{}{
		"content":   doc.Content,
		"title":     doc.Metadata.Title,
		"source":    doc.Metadata.Source,
		"chunk":     doc.Metadata.Chunk,
		"createdAt": doc.CreatedAt,
	}
}
