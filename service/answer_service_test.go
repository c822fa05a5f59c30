package service

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/hackforge/policy-chatbot-be/database"
	"github.com/hackforge/policy-chatbot-be/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultAnswerConfig() AnswerConfig {
	return AnswerConfig{
		SimilarityThreshold: 0.6,
		ContextLimit:        2000,
		TopK:                3,
	}
}

func TestAnswerGreetingShortCircuits(t *testing.T) {
	embedder := &fakeEmbedder{}
	vectorDB := &fakeVectorDB{}
	answerer := &fakeAnswerer{}
	svc := NewAnswerService(embedder, vectorDB, answerer, NewSessionStore(0), nil, defaultAnswerConfig())

	for _, q := range []string{"hi", "Hello", " HEY "} {
		answer, err := svc.Answer(context.Background(), "", q)
		require.NoError(t, err)
		assert.Equal(t, greetingAnswer, answer)
	}
	// No embedding, index or generation calls for greetings.
	assert.Zero(t, embedder.calls)
	assert.Zero(t, vectorDB.queryCalls)
	assert.Zero(t, answerer.calls)
}

func TestAnswerNoSessionRestrictedGateDenies(t *testing.T) {
	embedder := &fakeEmbedder{vectors: map[string][]float32{
		"what is the secret policy": {1, 0},
		"restricted passage":        {1, 0},
	}}
	vectorDB := &fakeVectorDB{hits: map[string][]database.SearchHit{
		types.CorpusRestricted: {{Content: "restricted passage"}},
	}}
	answerer := &fakeAnswerer{}
	svc := NewAnswerService(embedder, vectorDB, answerer, NewSessionStore(0), nil, defaultAnswerConfig())

	answer, err := svc.Answer(context.Background(), "", "what is the secret policy")
	require.NoError(t, err)
	assert.Equal(t, deniedAnswer, answer)
	// Denied before any allowed-corpus retrieval or generation.
	assert.Equal(t, []string{types.CorpusRestricted}, vectorDB.queried)
	assert.Zero(t, answerer.calls)
}

func TestAnswerNoSessionAllowedFallback(t *testing.T) {
	embedder := &fakeEmbedder{vectors: map[string][]float32{
		"vacation policy?": {1, 0},
	}}
	vectorDB := &fakeVectorDB{hits: map[string][]database.SearchHit{
		types.CorpusAllowed: {
			{Content: "passage one"},
			{Content: "passage two"},
		},
	}}
	answerer := &fakeAnswerer{answer: "  you get 20 days  "}
	svc := NewAnswerService(embedder, vectorDB, answerer, NewSessionStore(0), nil, defaultAnswerConfig())

	answer, err := svc.Answer(context.Background(), "", "vacation policy?")
	require.NoError(t, err)
	assert.Equal(t, "you get 20 days", answer)

	require.Equal(t, []string{types.CorpusRestricted, types.CorpusAllowed}, vectorDB.queried)
	assert.Equal(t, []int{1, 3}, vectorDB.limits)

	require.Len(t, answerer.prompts, 1)
	prompt := answerer.prompts[0]
	assert.Contains(t, prompt, "'allowed'")
	assert.Contains(t, prompt, "passage one\n\npassage two")
	assert.Contains(t, prompt, "vacation policy?")
}

func TestAnswerNoSessionEmptyCorpus(t *testing.T) {
	embedder := &fakeEmbedder{vectors: map[string][]float32{
		"anything relevant?": {1, 0},
	}}
	vectorDB := &fakeVectorDB{hits: map[string][]database.SearchHit{}}
	answerer := &fakeAnswerer{}
	svc := NewAnswerService(embedder, vectorDB, answerer, NewSessionStore(0), nil, defaultAnswerConfig())

	answer, err := svc.Answer(context.Background(), "", "anything relevant?")
	require.NoError(t, err)
	assert.Equal(t, "No relevant info found in allowed documents.", answer)
	assert.Zero(t, answerer.calls)
}

func TestAnswerSessionDocumentAsContext(t *testing.T) {
	embedder := &fakeEmbedder{vectors: map[string][]float32{
		"what does my upload say": {1, 0},
		"the uploaded contract":   {1, 0},
	}}
	vectorDB := &fakeVectorDB{}
	answerer := &fakeAnswerer{answer: "it says hello"}
	sessions := NewSessionStore(0)
	sessionID := sessions.Create("the uploaded contract", types.ClassificationRestricted)
	svc := NewAnswerService(embedder, vectorDB, answerer, sessions, nil, defaultAnswerConfig())

	answer, err := svc.Answer(context.Background(), sessionID, "what does my upload say")
	require.NoError(t, err)
	assert.Equal(t, "it says hello", answer)

	// The session document itself is the context; no corpus-wide query.
	assert.Zero(t, vectorDB.queryCalls)
	require.Len(t, answerer.prompts, 1)
	assert.Contains(t, answerer.prompts[0], "the uploaded contract")
	assert.Contains(t, answerer.prompts[0], "'restricted'")
}

func TestAnswerSessionFallsBackToCorpusSearch(t *testing.T) {
	embedder := &fakeEmbedder{vectors: map[string][]float32{
		"unrelated question":    {0, 1},
		"the uploaded contract": {1, 0},
	}}
	vectorDB := &fakeVectorDB{hits: map[string][]database.SearchHit{
		types.CorpusAllowed: {{Content: "corpus passage"}},
	}}
	answerer := &fakeAnswerer{answer: "from the corpus"}
	sessions := NewSessionStore(0)
	sessionID := sessions.Create("the uploaded contract", types.ClassificationAllowed)
	svc := NewAnswerService(embedder, vectorDB, answerer, sessions, nil, defaultAnswerConfig())

	answer, err := svc.Answer(context.Background(), sessionID, "unrelated question")
	require.NoError(t, err)
	assert.Equal(t, "from the corpus", answer)
	assert.Equal(t, []string{types.CorpusAllowed}, vectorDB.queried)
	assert.Equal(t, []int{3}, vectorDB.limits)
}

func TestAnswerSessionFallbackEmptyCorpusNamesSource(t *testing.T) {
	embedder := &fakeEmbedder{vectors: map[string][]float32{
		"unrelated question":    {0, 1},
		"the uploaded contract": {1, 0},
	}}
	vectorDB := &fakeVectorDB{hits: map[string][]database.SearchHit{}}
	answerer := &fakeAnswerer{}
	sessions := NewSessionStore(0)
	sessionID := sessions.Create("the uploaded contract", types.ClassificationRestricted)
	svc := NewAnswerService(embedder, vectorDB, answerer, sessions, nil, defaultAnswerConfig())

	answer, err := svc.Answer(context.Background(), sessionID, "unrelated question")
	require.NoError(t, err)
	assert.Equal(t, "No relevant info found in restricted documents.", answer)
	assert.Zero(t, answerer.calls)
}

func TestAnswerContextTruncation(t *testing.T) {
	longDoc := strings.Repeat("x", 5000)
	embedder := &fakeEmbedder{vectors: map[string][]float32{
		"summarize my upload": {1, 0},
		longDoc:               {1, 0},
	}}
	vectorDB := &fakeVectorDB{}
	answerer := &fakeAnswerer{answer: "ok"}
	sessions := NewSessionStore(0)
	sessionID := sessions.Create(longDoc, types.ClassificationAllowed)
	svc := NewAnswerService(embedder, vectorDB, answerer, sessions, nil, defaultAnswerConfig())

	_, err := svc.Answer(context.Background(), sessionID, "summarize my upload")
	require.NoError(t, err)

	require.Len(t, answerer.prompts, 1)
	expected := fmt.Sprintf(`"""%s"""`, strings.Repeat("x", 2000))
	assert.Contains(t, answerer.prompts[0], expected)
	assert.NotContains(t, answerer.prompts[0], strings.Repeat("x", 2001))
}

func TestAnswerShortContextPassesThrough(t *testing.T) {
	shortDoc := strings.Repeat("y", 150)
	embedder := &fakeEmbedder{vectors: map[string][]float32{
		"question": {1, 0},
		shortDoc:   {1, 0},
	}}
	vectorDB := &fakeVectorDB{}
	answerer := &fakeAnswerer{answer: "ok"}
	sessions := NewSessionStore(0)
	sessionID := sessions.Create(shortDoc, types.ClassificationAllowed)
	svc := NewAnswerService(embedder, vectorDB, answerer, sessions, nil, defaultAnswerConfig())

	_, err := svc.Answer(context.Background(), sessionID, "question")
	require.NoError(t, err)

	require.Len(t, answerer.prompts, 1)
	assert.Contains(t, answerer.prompts[0], fmt.Sprintf(`"""%s"""`, shortDoc))
}

func TestAnswerGeneratorFailureSurfaces(t *testing.T) {
	embedder := &fakeEmbedder{vectors: map[string][]float32{
		"question": {1, 0},
	}}
	vectorDB := &fakeVectorDB{hits: map[string][]database.SearchHit{
		types.CorpusAllowed: {{Content: "passage"}},
	}}
	answerer := &fakeAnswerer{err: assert.AnError}
	svc := NewAnswerService(embedder, vectorDB, answerer, NewSessionStore(0), nil, defaultAnswerConfig())

	_, err := svc.Answer(context.Background(), "", "question")
	assert.Error(t, err)
}

func TestAnswerRecordsHistory(t *testing.T) {
	embedder := &fakeEmbedder{vectors: map[string][]float32{
		"question": {1, 0},
	}}
	vectorDB := &fakeVectorDB{hits: map[string][]database.SearchHit{
		types.CorpusAllowed: {{Content: "passage"}},
	}}
	answerer := &fakeAnswerer{answer: "answer"}
	history := &fakeHistory{}
	svc := NewAnswerService(embedder, vectorDB, answerer, NewSessionStore(0), history, defaultAnswerConfig())

	_, err := svc.Answer(context.Background(), "session-1", "question")
	require.NoError(t, err)

	require.Len(t, history.records, 1)
	assert.Equal(t, "session-1", history.records[0].SessionID)
	assert.Equal(t, "question", history.records[0].Question)
	assert.Equal(t, "answer", history.records[0].Answer)
}

func TestAnswerHistoryFailureIsNotSurfaced(t *testing.T) {
	embedder := &fakeEmbedder{vectors: map[string][]float32{
		"question": {1, 0},
	}}
	vectorDB := &fakeVectorDB{hits: map[string][]database.SearchHit{
		types.CorpusAllowed: {{Content: "passage"}},
	}}
	answerer := &fakeAnswerer{answer: "answer"}
	history := &fakeHistory{err: assert.AnError}
	svc := NewAnswerService(embedder, vectorDB, answerer, NewSessionStore(0), history, defaultAnswerConfig())

	answer, err := svc.Answer(context.Background(), "session-1", "question")
	require.NoError(t, err)
	assert.Equal(t, "answer", answer)
}
