// internal/app/store/rolememberships/rolemembershipstore.go
package rolemembershipstore

import (
	"context"
	"time"

	"github.com/dalemusser/rolehub/internal/app/system/metrics"
	"github.com/dalemusser/rolehub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection is the name of the membership collection.
const Collection = "role_type_memberships"

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(Collection)}
}

// FilterByList returns all memberships of a list, oldest first.
// The order is stable: ties on created_at are broken by _id.
func (s *Store) FilterByList(ctx context.Context, listID string) ([]models.RoleTypeMembership, error) {
	return metrics.Instrument(ctx, Collection, "filter_by_list", func() ([]models.RoleTypeMembership, error) {
		opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
		cur, err := s.c.Find(ctx, bson.M{"list_id": listID}, opts)
		if err != nil {
			return nil, err
		}
		defer cur.Close(ctx)

		memberships := []models.RoleTypeMembership{}
		if err := cur.All(ctx, &memberships); err != nil {
			return nil, err
		}
		return memberships, nil
	})
}

// Insert stores a new membership and returns it with ID and CreatedAt set.
//
// A duplicate (list_id, type_id) pair is rejected by the unique index and
// reported as a nil record with a nil error. Any other failure is returned.
func (s *Store) Insert(ctx context.Context, m models.RoleTypeMembership) (*models.RoleTypeMembership, error) {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	return metrics.Instrument(ctx, Collection, "insert", func() (*models.RoleTypeMembership, error) {
		if _, err := s.c.InsertOne(ctx, m); err != nil {
			if wafflemongo.IsDup(err) {
				return nil, nil
			}
			return nil, err
		}
		return &m, nil
	})
}

// Delete removes the membership document by ID.
// It reports whether a document was actually removed.
func (s *Store) Delete(ctx context.Context, m models.RoleTypeMembership) (bool, error) {
	return metrics.Instrument(ctx, Collection, "delete", func() (bool, error) {
		res, err := s.c.DeleteOne(ctx, bson.M{"_id": m.ID})
		if err != nil {
			return false, err
		}
		return res.DeletedCount > 0, nil
	})
}

// DeleteByList removes all memberships of a list.
// Returns the number of documents deleted.
func (s *Store) DeleteByList(ctx context.Context, listID string) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"list_id": listID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// DeleteByType removes a role type from every list it belongs to.
// Returns the number of documents deleted.
func (s *Store) DeleteByType(ctx context.Context, typeID string) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"type_id": typeID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// CountByList returns the number of role types in a list.
func (s *Store) CountByList(ctx context.Context, listID string) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"list_id": listID})
}
