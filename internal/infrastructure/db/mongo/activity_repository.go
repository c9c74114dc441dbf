package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/cinemind/studio-api/internal/core/domain"
	"github.com/cinemind/studio-api/internal/core/ports"
)

const activityCollection = "activity"

// ActivityRepository implements ports.ActivityRepository using MongoDB.
type ActivityRepository struct {
	coll *mongo.Collection
	now  func() time.Time
}

// NewActivityRepository creates a new ActivityRepository.
func NewActivityRepository(db *mongo.Database) *ActivityRepository {
	return &ActivityRepository{coll: db.Collection(activityCollection), now: time.Now}
}

var _ ports.ActivityRepository = (*ActivityRepository)(nil)

type activityDocument struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Kind       string             `bson:"kind"`
	AccountID  int64              `bson:"account_id,omitempty"`
	Details    map[string]string  `bson:"details,omitempty"`
	OccurredAt time.Time          `bson:"occurred_at"`
	RecordedAt time.Time          `bson:"recorded_at"`
}

func newActivityDocument(a domain.Activity, now time.Time) activityDocument {
	occurred := a.OccurredAt
	if occurred.IsZero() {
		occurred = now
	}
	return activityDocument{
		Kind:       string(a.Kind),
		AccountID:  a.AccountID,
		Details:    a.Details,
		OccurredAt: occurred.UTC(),
		RecordedAt: now.UTC(),
	}
}

// Insert appends one entry to the activity collection.
func (r *ActivityRepository) Insert(ctx context.Context, activity domain.Activity) error {
	doc := newActivityDocument(activity, r.now())
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	return nil
}

// EnsureIndexes creates the indexes used to browse the log.
func (r *ActivityRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "occurred_at", Value: -1}}},
		{Keys: bson.D{{Key: "account_id", Value: 1}, {Key: "occurred_at", Value: -1}}},
		{Keys: bson.D{{Key: "kind", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
