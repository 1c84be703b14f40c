package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hirepath/jobportal-api/internal/core/domain"
	"github.com/hirepath/jobportal-api/internal/core/ports"
)

const eventCollection = "account_events"

// EventRepository implements ports.EventRepository using MongoDB.
type EventRepository struct {
	coll *mongo.Collection
}

// NewEventRepository creates a new EventRepository.
func NewEventRepository(db *mongo.Database) ports.EventRepository {
	return &EventRepository{coll: db.Collection(eventCollection)}
}

type mongoEvent struct {
	ID     primitive.ObjectID `bson:"_id,omitempty"`
	UserID string             `bson:"user_id"`
	Action string             `bson:"action"`
	Detail string             `bson:"detail,omitempty"`
	At     int64              `bson:"at"`
}

// Insert appends an event to the activity trail.
func (r *EventRepository) Insert(ctx context.Context, event *domain.AccountEvent) error {
	doc := mongoEvent{
		UserID: event.UserID,
		Action: event.Action,
		Detail: event.Detail,
		At:     event.At.Unix(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert account event: %w", err)
	}
	return nil
}

// ListByUser returns the most recent events for a user, newest first.
func (r *EventRepository) ListByUser(ctx context.Context, userID string, limit int) ([]domain.AccountEvent, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "at", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.coll.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list account events: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []mongoEvent
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode account events: %w", err)
	}

	events := make([]domain.AccountEvent, 0, len(docs))
	for _, d := range docs {
		events = append(events, domain.AccountEvent{
			ID:     d.ID.Hex(),
			UserID: d.UserID,
			Action: d.Action,
			Detail: d.Detail,
			At:     unixToTime(d.At),
		})
	}
	return events, nil
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
