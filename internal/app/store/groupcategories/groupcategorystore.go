// internal/app/store/groupcategories/groupcategorystore.go
package groupcategorystore

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
	ErrNotFound      = errors.New("group category not found")
	ErrDuplicateName = errors.New("a group category with this name already exists")
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("groupcategories")}
}

// Update carries the fields a caller may change. Nil means unchanged.
type Update struct {
	Name       *string
	NameEN     *string
	RBACObject *string
}

// Create inserts gc with a fresh ID; created and lastchange are set to now.
func (s *Store) Create(ctx context.Context, gc models.GroupCategory, actorID string) (models.GroupCategory, error) {
	now := time.Now().UTC()
	gc.ID = uuid.NewString()
	gc.NameCI = text.Fold(gc.Name)
	gc.Created = now
	gc.LastChange = now
	gc.ChangedBy = nil
	if actorID != "" {
		gc.CreatedBy = &actorID
	}
	if _, err := s.c.InsertOne(ctx, gc); err != nil {
		if wafflemongo.IsDup(err) {
			return models.GroupCategory{}, ErrDuplicateName
		}
		return models.GroupCategory{}, err
	}
	return gc, nil
}

func (s *Store) GetByID(ctx context.Context, id string) (models.GroupCategory, error) {
	var gc models.GroupCategory
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&gc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.GroupCategory{}, ErrNotFound
		}
		return models.GroupCategory{}, err
	}
	return gc, nil
}

// List returns all categories ordered by name.
func (s *Store) List(ctx context.Context) ([]models.GroupCategory, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name_ci", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.GroupCategory{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Update applies u, stamps lastchange and changedby, and returns the
// updated document. The id is never modified.
func (s *Store) Update(ctx context.Context, id string, u Update, actorID string) (models.GroupCategory, error) {
	set := bson.M{"lastchange": time.Now().UTC()}
	if actorID != "" {
		set["changedby"] = actorID
	}
	if u.Name != nil {
		set["name"] = *u.Name
		set["name_ci"] = text.Fold(*u.Name)
	}
	if u.NameEN != nil {
		set["name_en"] = *u.NameEN
	}
	if u.RBACObject != nil {
		set["rbacobject"] = *u.RBACObject
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var gc models.GroupCategory
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&gc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.GroupCategory{}, ErrNotFound
		}
		if wafflemongo.IsDup(err) {
			return models.GroupCategory{}, ErrDuplicateName
		}
		return models.GroupCategory{}, err
	}
	return gc, nil
}

// Delete removes a category by ID. Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id string) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
