package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hackforge/policy-chatbot-be/config"
	"github.com/hackforge/policy-chatbot-be/database"
	"github.com/hackforge/policy-chatbot-be/logger"
	"github.com/hackforge/policy-chatbot-be/service"
	"github.com/hackforge/policy-chatbot-be/types"
	"github.com/spf13/cobra"
)

// ingestCmd represents the ingest command
var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Rebuild the reference corpora from the policy folders",
	Long: `Reads every PDF and DOCX file in the configured allowed and restricted
policy folders, splits the text into overlapping chunks, embeds each chunk
and stores the result in the vector database. Each corpus collection is
cleared before it is repopulated.`,
	Run: func(cmd *cobra.Command, args []string) {
		logger.Init("info", "console")
		configPath, _ := cmd.Flags().GetString("config")
		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			logger.Fatalf("Failed to load config: %v", err)
		}
		logger.Init(cfg.Log.Level, cfg.Log.Format)
		defer logger.Sync()

		weaviateDb, err := database.NewWeaviateStore(cfg.Weaviate)
		if err != nil {
			logger.Fatalf("Failed to connect to Weaviate database: %v", err)
		}
		embedder := service.NewOpenAIEmbeddingService(
			cfg.Embedding.BaseURL,
			cfg.Embedding.APIKey,
			cfg.Embedding.Model,
		)
		documentService := service.NewDocumentService(types.DocumentServiceConfig{
			ChunkSize:    cfg.Retrieval.ChunkSize,
			ChunkOverlap: cfg.Retrieval.ChunkOverlap,
		})

		corpora := map[string]string{
			types.CorpusAllowed:    cfg.AllowedDocsDir,
			types.CorpusRestricted: cfg.RestrictedDocsDir,
		}
		for corpus, dir := range corpora {
			if err := ingestFolder(cmd.Context(), weaviateDb, embedder, documentService, corpus, dir); err != nil {
				logger.Fatalf("Failed to ingest %s corpus: %v", corpus, err)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

// ingestFolder clears one corpus collection and repopulates it from the
// extracted, chunked and embedded contents of dir.
func ingestFolder(
	ctx context.Context,
	vectorDB database.VectorDatabase,
	embedder service.Embedder,
	documentService *service.DocumentService,
	corpus, dir string,
) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var docs []types.Document
	var embeddings [][]float32
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".pdf" && ext != ".docx" {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		logger.Infof("Processing %s", path)
		content, err := documentService.ExtractFile(path)
		if err != nil {
			logger.Warnf("Skipping %s: %v", path, err)
			continue
		}

		for i, chunk := range documentService.ChunkText(content) {
			embedding, err := embedder.Embed(ctx, chunk)
			if err != nil {
				return fmt.Errorf("failed to embed chunk %d of %s: %w", i, path, err)
			}
			docs = append(docs, types.Document{
				Content: chunk,
				Metadata: types.Metadata{
					Title:  entry.Name(),
					Source: path,
					Chunk:  i,
				},
				CreatedAt: time.Now().Unix(),
			})
			embeddings = append(embeddings, embedding)
		}
	}

	if len(docs) == 0 {
		logger.Warnf("No valid documents found in %s, leaving %s corpus untouched", dir, corpus)
		return nil
	}

	if err := vectorDB.ReInit(ctx, corpus); err != nil {
		return err
	}
	if err := vectorDB.BatchInsertDocuments(ctx, corpus, docs, embeddings); err != nil {
		return err
	}
	logger.Infof("Stored %d chunks in %s corpus", len(docs), corpus)
	return nil
}
