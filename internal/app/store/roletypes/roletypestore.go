// internal/app/store/roletypes/roletypestore.go
package roletypestore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/rolehub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

var (
	ErrNotFound      = errors.New("role type not found")
	ErrDuplicateName = errors.New("a role type with this name already exists")
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("role_types")}
}

// Create inserts rt with a fresh ID and timestamps. actorID may be empty.
func (s *Store) Create(ctx context.Context, rt models.RoleType, actorID string) (models.RoleType, error) {
	now := time.Now().UTC()
	rt.ID = uuid.NewString()
	rt.NameCI = text.Fold(rt.Name)
	rt.Created = now
	rt.LastChange = now
	if actorID != "" {
		rt.CreatedBy = &actorID
		rt.ChangedBy = &actorID
	}
	if _, err := s.c.InsertOne(ctx, rt); err != nil {
		if wafflemongo.IsDup(err) {
			return models.RoleType{}, ErrDuplicateName
		}
		return models.RoleType{}, err
	}
	return rt, nil
}

func (s *Store) GetByID(ctx context.Context, id string) (models.RoleType, error) {
	var rt models.RoleType
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&rt); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.RoleType{}, ErrNotFound
		}
		return models.RoleType{}, err
	}
	return rt, nil
}

// ResolveReference turns a stored role type id into the entity.
// A missing role type is reported as (nil, nil).
func (s *Store) ResolveReference(ctx context.Context, id string) (*models.RoleType, error) {
	rt, err := s.GetByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rt, nil
}

// List returns all role types ordered by name.
func (s *Store) List(ctx context.Context) ([]models.RoleType, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name_ci", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.RoleType{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes a role type by ID. Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id string) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
