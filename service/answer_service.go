package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/hackforge/policy-chatbot-be/database"
	"github.com/hackforge/policy-chatbot-be/logger"
	"github.com/hackforge/policy-chatbot-be/repository"
	"github.com/hackforge/policy-chatbot-be/types"
	"github.com/hackforge/policy-chatbot-be/utils"
)

const (
	greetingAnswer = "Hi! I am your AI assistant. How can I help you today?"
	deniedAnswer   = "Access to restricted content denied."

	promptTemplate = `You are a helpful assistant answering questions strictly from the '%s' document content below.

Document Content:
"""%s"""

Question:
%s

Answer:`
)

var greetings = map[string]bool{
	"hi":    true,
	"hello": true,
	"hey":   true,
}

// AnswerConfig holds the routing knobs of the answer service.
type AnswerConfig struct {
	SimilarityThreshold float32
	ContextLimit        int
	TopK                int
}

// AnswerService routes a question to the right context source and invokes
// the generative model. Business outcomes (greeting, access denied, no
// relevant info) are answers, never errors.
type AnswerService struct {
	embedder Embedder
	vectorDB database.VectorDatabase
	answerer Answerer
	sessions SessionStore
	history  repository.HistoryRepo
	cfg      AnswerConfig
}

// NewAnswerService wires the answer router. history may be nil to disable
// exchange recording.
func NewAnswerService(
	embedder Embedder,
	vectorDB database.VectorDatabase,
	answerer Answerer,
	sessions SessionStore,
	history repository.HistoryRepo,
	cfg AnswerConfig,
) *AnswerService {
	return &AnswerService{
		embedder: embedder,
		vectorDB: vectorDB,
		answerer: answerer,
		sessions: sessions,
		history:  history,
		cfg:      cfg,
	}
}

// Answer resolves context and generates an answer for the question.
func (s *AnswerService) Answer(ctx context.Context, sessionID, question string) (string, error) {
	question = strings.TrimSpace(question)
	if greetings[strings.ToLower(question)] {
		return greetingAnswer, nil
	}

	queryVector, err := s.embedder.Embed(ctx, question)
	if err != nil {
		return "", fmt.Errorf("failed to embed question: %w", err)
	}

	var contextText, source string
	if session, ok := s.sessions.Get(sessionID); ok {
		contextText, source, err = s.sessionContext(ctx, session, queryVector)
		if err != nil {
			return "", err
		}
	} else {
		// No session: gate on the restricted corpus before any retrieval
		// from the allowed one.
		restrictedSim, err := nearestSimilarity(ctx, s.embedder, s.vectorDB, types.CorpusRestricted, queryVector)
		if err != nil {
			return "", err
		}
		if restrictedSim > s.cfg.SimilarityThreshold {
			return deniedAnswer, nil
		}

		hits, err := s.vectorDB.Query(ctx, types.CorpusAllowed, queryVector, s.cfg.TopK)
		if err != nil {
			return "", fmt.Errorf("failed to query %s corpus: %w", types.CorpusAllowed, err)
		}
		contextText = joinHits(hits)
		source = types.CorpusAllowed
	}

	if contextText == "" {
		return fmt.Sprintf("No relevant info found in %s documents.", source), nil
	}

	contextText = utils.Truncate(contextText, s.cfg.ContextLimit)
	prompt := fmt.Sprintf(promptTemplate, source, contextText, question)

	answer, err := s.answerer.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("failed to generate answer: %w", err)
	}
	answer = strings.TrimSpace(answer)

	s.recordExchange(ctx, sessionID, question, answer)
	return answer, nil
}

// sessionContext decides between the session's own document and a
// corpus-wide search in the session's corpus. When the question is close
// enough to the uploaded document, the whole document is the context.
func (s *AnswerService) sessionContext(ctx context.Context, session *types.Session, queryVector []float32) (string, string, error) {
	corpus := session.Classification.Corpus()

	docVector, err := s.embedder.Embed(ctx, session.Content)
	if err != nil {
		return "", "", fmt.Errorf("failed to embed session document: %w", err)
	}
	if utils.CosineSimilarity(queryVector, docVector) > s.cfg.SimilarityThreshold {
		return session.Content, corpus, nil
	}

	hits, err := s.vectorDB.Query(ctx, corpus, queryVector, s.cfg.TopK)
	if err != nil {
		return "", "", fmt.Errorf("failed to query %s corpus: %w", corpus, err)
	}
	return joinHits(hits), corpus, nil
}

// recordExchange persists the question/answer pair. Failures are logged
// only; history is best-effort.
func (s *AnswerService) recordExchange(ctx context.Context, sessionID, question, answer string) {
	if s.history == nil {
		return
	}
	err := s.history.CreateRecord(ctx, &types.ChatRecord{
		SessionID: sessionID,
		Question:  question,
		Answer:    answer,
	})
	if err != nil {
		logger.Error("failed to record chat exchange", err)
	}
}

func joinHits(hits []database.SearchHit) string {
	parts := make([]string, 0, len(hits))
	for _, hit := range hits {
		if hit.Content != "" {
			parts = append(parts, hit.Content)
		}
	}
	return strings.Join(parts, "\n\n")
}
