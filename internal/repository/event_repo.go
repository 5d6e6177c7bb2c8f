package repository

import (
	"adventcal/internal/model"
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EventRepo journals tracked analytics events in MongoDB
type EventRepo interface {
	Record(ctx context.Context, event *model.TrackedEvent) error
	ListRecent(ctx context.Context, limit int) ([]model.TrackedEvent, error)
	CountUndelivered(ctx context.Context) (int64, error)
	ListUndelivered(ctx context.Context, limit int) ([]model.TrackedEvent, error)
	MarkDelivered(ctx context.Context, id string) error
}

type eventRepo struct {
	collection *mongo.Collection
}

// NewEventRepo creates a new event repository
func NewEventRepo(db *mongo.Database) EventRepo {
	return &eventRepo{
		collection: db.Collection("tracked_events"),
	}
}

// EnsureIndexes creates the indexes the journal queries rely on
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("tracked_events").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "timestamp", Value: -1}}},
		{Keys: bson.D{{Key: "delivered", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("failed to create event indexes: %w", err)
	}
	return nil
}

func (r *eventRepo) Record(ctx context.Context, event *model.TrackedEvent) error {
	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": event.ID}, event, opts)
	return err
}

func (r *eventRepo) ListRecent(ctx context.Context, limit int) ([]model.TrackedEvent, error) {
	if limit <= 0 {
		limit = 50
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(int64(limit))

	return r.find(ctx, bson.M{}, opts)
}

// ListUndelivered returns the oldest events the service never acknowledged
func (r *eventRepo) ListUndelivered(ctx context.Context, limit int) ([]model.TrackedEvent, error) {
	if limit <= 0 {
		limit = 100
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: 1}}).
		SetLimit(int64(limit))
	return r.find(ctx, bson.M{"delivered": false}, opts)
}

func (r *eventRepo) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]model.TrackedEvent, error) {
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	events := []model.TrackedEvent{}
	if err := cursor.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (r *eventRepo) MarkDelivered(ctx context.Context, id string) error {
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"delivered": true}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("event %s not found", id)
	}
	return nil
}

func (r *eventRepo) CountUndelivered(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"delivered": false})
}
