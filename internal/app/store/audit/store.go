// internal/app/store/audit/store.go
package audit

import (
	"context"
	"time"

	"github.com/dalemusser/rolehub/internal/app/system/metrics"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Event categories
const (
	CategoryAdmin    = "admin"
	CategorySecurity = "security"
)

// Admin event types
const (
	EventRoleTypeAddedToList     = "role_type_added_to_list"
	EventRoleTypeRemovedFromList = "role_type_removed_from_list"
	EventRoleTypeCreated         = "role_type_created"
	EventRoleTypeListCreated     = "role_type_list_created"
	EventGroupCategoryCreated    = "group_category_created"
	EventGroupCategoryUpdated    = "group_category_updated"
	EventGroupCategoryDeleted    = "group_category_deleted"
)

// Event represents an audit event.
type Event struct {
	ID        string    `bson:"_id,omitempty"`
	Timestamp time.Time `bson:"timestamp"`

	// Event classification
	Category  string `bson:"category"`
	EventType string `bson:"event_type"`

	// Who performed the action
	ActorID string `bson:"actor_id,omitempty"`

	// What the action targeted (list id, category id, ...)
	TargetID string `bson:"target_id,omitempty"`

	// Context
	IP        string `bson:"ip"`
	UserAgent string `bson:"user_agent,omitempty"`

	// Outcome
	Success       bool   `bson:"success"`
	FailureReason string `bson:"failure_reason,omitempty"`

	// Additional details (varies by event type)
	Details map[string]string `bson:"details,omitempty"`
}

// QueryFilter defines filters for querying audit events.
type QueryFilter struct {
	ActorID   string
	TargetID  string
	Category  string
	EventType string
	StartTime *time.Time
	EndTime   *time.Time
	Limit     int64
	Offset    int64
}

// Collection is the MongoDB collection holding audit events.
const Collection = "audit_events"

// Store manages audit event records.
type Store struct {
	c *mongo.Collection
}

// New creates a new audit Store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(Collection)}
}

// Log records an audit event.
func (s *Store) Log(ctx context.Context, event Event) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	_, err := s.c.InsertOne(ctx, event)
	return err
}

// Query retrieves audit events matching the given filter, newest first.
func (s *Store) Query(ctx context.Context, filter QueryFilter) ([]Event, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(limit).
		SetSkip(filter.Offset)

	return metrics.Instrument(ctx, Collection, "query", func() ([]Event, error) {
		cursor, err := s.c.Find(ctx, buildQuery(filter), opts)
		if err != nil {
			return nil, err
		}
		defer cursor.Close(ctx)

		events := []Event{}
		if err := cursor.All(ctx, &events); err != nil {
			return nil, err
		}
		return events, nil
	})
}

// CountByFilter returns the count of events matching the filter.
func (s *Store) CountByFilter(ctx context.Context, filter QueryFilter) (int64, error) {
	return metrics.Instrument(ctx, Collection, "count", func() (int64, error) {
		return s.c.CountDocuments(ctx, buildQuery(filter))
	})
}

// GetByTarget retrieves recent audit events for one target (e.g. a list).
func (s *Store) GetByTarget(ctx context.Context, targetID string, limit int64) ([]Event, error) {
	return s.Query(ctx, QueryFilter{TargetID: targetID, Limit: limit})
}

func buildQuery(filter QueryFilter) bson.M {
	query := bson.M{}
	if filter.ActorID != "" {
		query["actor_id"] = filter.ActorID
	}
	if filter.TargetID != "" {
		query["target_id"] = filter.TargetID
	}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.EventType != "" {
		query["event_type"] = filter.EventType
	}
	if filter.StartTime != nil || filter.EndTime != nil {
		timeQuery := bson.M{}
		if filter.StartTime != nil {
			timeQuery["$gte"] = *filter.StartTime
		}
		if filter.EndTime != nil {
			timeQuery["$lte"] = *filter.EndTime
		}
		query["timestamp"] = timeQuery
	}
	return query
}
