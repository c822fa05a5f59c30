package repository

import (
	"context"
	"time"

	"github.com/hackforge/policy-chatbot-be/types"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type HistoryRepo interface {
	CreateRecord(ctx context.Context, record *types.ChatRecord) error
	ListRecords(ctx context.Context, sessionID string) ([]types.ChatRecord, error)
}

type historyRepo struct {
	collection *mongo.Collection
}

func NewHistoryRepo(collection *mongo.Collection) HistoryRepo {
	return &historyRepo{
		collection: collection,
	}
}

func (r *historyRepo) CreateRecord(ctx context.Context, record *types.ChatRecord) error {
	if record.CreatedAt == 0 {
		record.CreatedAt = time.Now().Unix()
	}
	_, err := r.collection.InsertOne(ctx, record)
	return err
}

func (r *historyRepo) ListRecords(ctx context.Context, sessionID string) ([]types.ChatRecord, error) {
	cursor, err := r.collection.Find(ctx,
		bson.M{"session_id": sessionID},
		options.Find().SetSort(bson.M{"created_at": 1}),
	)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []types.ChatRecord
	for cursor.Next(ctx) {
		var record types.ChatRecord
		if err := cursor.Decode(&record); err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, cursor.Err()
}
