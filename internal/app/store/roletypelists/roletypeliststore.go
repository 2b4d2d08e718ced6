// internal/app/store/roletypelists/roletypeliststore.go
package roletypeliststore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/rolehub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

var ErrNotFound = errors.New("role type list not found")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("role_type_lists")}
}

// Create inserts l with a fresh ID. actorID may be empty.
func (s *Store) Create(ctx context.Context, l models.RoleTypeList, actorID string) (models.RoleTypeList, error) {
	l.ID = uuid.NewString()
	l.NameCI = text.Fold(l.Name)
	l.Created = time.Now().UTC()
	if actorID != "" {
		l.CreatedBy = &actorID
	}
	if _, err := s.c.InsertOne(ctx, l); err != nil {
		return models.RoleTypeList{}, err
	}
	return l, nil
}

func (s *Store) GetByID(ctx context.Context, id string) (models.RoleTypeList, error) {
	var l models.RoleTypeList
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&l); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.RoleTypeList{}, ErrNotFound
		}
		return models.RoleTypeList{}, err
	}
	return l, nil
}

// List returns all lists ordered by name.
func (s *Store) List(ctx context.Context) ([]models.RoleTypeList, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name_ci", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.RoleTypeList{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
