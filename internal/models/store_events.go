package models

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	StoreEventsColName   = "store_events"
	StoreEventsRetention = 30 * 24 * time.Hour
)

// StoreEvent records one fallback activation: the primary store failed an
// operation and the fallback store served it instead.
type StoreEvent struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Operation  string             `bson:"operation" json:"operation"`
	Primary    string             `bson:"primary" json:"primary"`
	Fallback   string             `bson:"fallback" json:"fallback"`
	Error      string             `bson:"error" json:"error"`
	RequestID  string             `bson:"request_id,omitempty" json:"requestId,omitempty"`
	OccurredAt time.Time          `bson:"occurred_at" json:"occurredAt"`
	ExpiresAt  time.Time          `bson:"expires_at" json:"expiresAt"` // TTL index field
}

type StoreEventRepo interface {
	RecordStoreEvent(ctx context.Context, event *StoreEvent) error
	ListStoreEvents(ctx context.Context, limit int) ([]*StoreEvent, error)
	EnsureIndexes(ctx context.Context) error
}

func (e *StoreEvent) BeforeCreate() {
	if e.ID.IsZero() {
		e.ID = primitive.NewObjectID()
	}
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now().UTC()
	}
	if e.ExpiresAt.IsZero() {
		e.ExpiresAt = e.OccurredAt.Add(StoreEventsRetention)
	}
}

func (mdb *MongodbRepo) GetCollection(ctx context.Context, colName string) (*mongo.Collection, error) {
	if mdb.mongodbClient == nil {
		return nil, fmt.Errorf("mongodb client is not initialized")
	}
	return mdb.mongodbClient.Database(mdb.dbName).Collection(colName), nil
}

// EnsureIndexes creates the TTL and lookup indexes for store events.
func (mdb *MongodbRepo) EnsureIndexes(ctx context.Context) error {
	col, err := mdb.GetCollection(ctx, StoreEventsColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %v", err)
	}

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().
				SetExpireAfterSeconds(0).
				SetName("expires_at_ttl"),
		},
		{
			Keys: bson.D{
				{Key: "operation", Value: 1},
				{Key: "occurred_at", Value: -1},
			},
			Options: options.Index().SetName("operation_occurred_at_idx"),
		},
	}

	if _, err := col.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("error creating indexes: %v", err)
	}
	return nil
}

func (mdb *MongodbRepo) RecordStoreEvent(ctx context.Context, event *StoreEvent) error {
	col, err := mdb.GetCollection(ctx, StoreEventsColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %v", err)
	}
	event.BeforeCreate()
	if _, err := col.InsertOne(ctx, event); err != nil {
		return fmt.Errorf("failed to insert store event: %w", err)
	}
	return nil
}

func (mdb *MongodbRepo) ListStoreEvents(ctx context.Context, limit int) ([]*StoreEvent, error) {
	col, err := mdb.GetCollection(ctx, StoreEventsColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "occurred_at", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("error finding store events: %v", err)
	}
	defer cursor.Close(ctx)

	events := []*StoreEvent{}
	for cursor.Next(ctx) {
		var ev StoreEvent
		if err := cursor.Decode(&ev); err != nil {
			return nil, fmt.Errorf("error decoding store event: %v", err)
		}
		events = append(events, &ev)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %v", err)
	}
	return events, nil
}
