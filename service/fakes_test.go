package service

import (
	"context"
	"errors"

	"github.com/hackforge/policy-chatbot-be/database"
	"github.com/hackforge/policy-chatbot-be/types"
)

// fakeEmbedder returns canned vectors per input text and counts calls.
type fakeEmbedder struct {
	vectors map[string][]float32
	calls   int
	err     error
}

func (f *fakeEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if v, ok := f.vectors[text]; ok {
		return v, nil
	}
	return nil, errors.New("fakeEmbedder: no vector configured for input")
}

// fakeVectorDB serves canned hits per corpus and records every query.
type fakeVectorDB struct {
	hits       map[string][]database.SearchHit
	queryCalls int
	queried    []string
	limits     []int
	err        error
}

func (f *fakeVectorDB) EnsureSchema(ctx context.Context) error             { return nil }
func (f *fakeVectorDB) ReInit(ctx context.Context, corpus string) error    { return nil }
func (f *fakeVectorDB) UpsertDocument(ctx context.Context, corpus string, doc *types.Document, embedding []float32) error {
	return nil
}
func (f *fakeVectorDB) BatchInsertDocuments(ctx context.Context, corpus string, docs []types.Document, embeddings [][]float32) error {
	return nil
}

func (f *fakeVectorDB) Query(ctx context.Context, corpus string, vector []float32, limit int) ([]database.SearchHit, error) {
	f.queryCalls++
	f.queried = append(f.queried, corpus)
	f.limits = append(f.limits, limit)
	if f.err != nil {
		return nil, f.err
	}
	hits := f.hits[corpus]
	if len(hits) > limit {
		hits = hits[:limit]
	}
	return hits, nil
}

// fakeAnswerer records prompts and returns a canned answer.
type fakeAnswerer struct {
	answer  string
	prompts []string
	calls   int
	err     error
}

func (f *fakeAnswerer) Generate(ctx context.Context, prompt string) (string, error) {
	f.calls++
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.answer, nil
}

// fakeHistory counts recorded exchanges.
type fakeHistory struct {
	records []types.ChatRecord
	err     error
}

func (f *fakeHistory) CreateRecord(ctx context.Context, record *types.ChatRecord) error {
	if f.err != nil {
		return f.err
	}
	f.records = append(f.records, *record)
	return nil
}

func (f *fakeHistory) ListRecords(ctx context.Context, sessionID string) ([]types.ChatRecord, error) {
	return f.records, nil
}
