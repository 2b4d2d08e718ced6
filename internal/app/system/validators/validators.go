// internal/app/system/validators/validators.go
package validators

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// collection pairs a collection with its $jsonSchema validator.
// A nil schema only ensures the collection exists.
type collection struct {
	name   string
	schema func() bson.M
}

var collections = []collection{
	{"role_types", roleTypesSchema},
	{"role_type_lists", roleTypeListsSchema},
	{"role_type_memberships", roleTypeMembershipsSchema},
	{"groupcategories", groupCategoriesSchema},
	{"audit_events", nil}, // written by the audit logger only
}

// EnsureAll creates the rolehub collections when missing and attaches their
// validators. Servers without collMod support (some DocumentDB versions)
// keep the collections unvalidated; that is logged, not returned.
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	existing, err := db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		// fall back to create-and-tolerate-exists for every collection
		zap.L().Warn("listCollections failed", zap.Error(err))
		existing = nil
	}

	var problems []string
	for _, c := range collections {
		if err := ensureCollection(ctx, db, c.name, slices.Contains(existing, c.name)); err != nil {
			problems = append(problems, fmt.Sprintf("%s: %v", c.name, err))
			continue
		}
		if c.schema == nil {
			continue
		}
		if err := setValidator(ctx, db, c.name, c.schema()); err != nil {
			if unsupported(err) {
				zap.L().Info("validator skipped (unsupported)", zap.String("collection", c.name))
				continue
			}
			problems = append(problems, fmt.Sprintf("%s: %v", c.name, err))
		}
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func ensureCollection(ctx context.Context, db *mongo.Database, name string, exists bool) error {
	if exists {
		return nil
	}
	if err := db.CreateCollection(ctx, name); err != nil {
		if hasCode(err, 48) || containsAny(err, "already exists", "namespace exists") {
			return nil
		}
		return err
	}
	zap.L().Info("created collection", zap.String("collection", name))
	return nil
}

// setValidator uses moderate validation so documents written before the
// validator existed can still be updated.
func setValidator(ctx context.Context, db *mongo.Database, name string, schema bson.M) error {
	cmd := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: schema},
		{Key: "validationLevel", Value: "moderate"},
		{Key: "validationAction", Value: "error"},
	}
	if err := db.RunCommand(ctx, cmd).Err(); err != nil {
		return err
	}
	zap.L().Debug("validator ensured", zap.String("collection", name))
	return nil
}

// unsupported matches CommandNotFound (59) and NotImplemented (115).
func unsupported(err error) bool {
	return hasCode(err, 59, 115) || containsAny(err, "no such command", "not implemented", "not supported")
}

func hasCode(err error, codes ...int32) bool {
	var ce mongo.CommandError
	return errors.As(err, &ce) && slices.Contains(codes, ce.Code)
}

func containsAny(err error, subs ...string) bool {
	msg := strings.ToLower(err.Error())
	for _, s := range subs {
		if strings.Contains(msg, s) {
			return true
		}
	}
	return false
}

/* ------------------------- JSON-Schema docs ---------------------- */

var nonBlank = bson.M{"bsonType": "string", "minLength": 1, "pattern": ".*\\S.*"}

func roleTypesSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"_id", "name", "name_ci", "created", "lastchange"},
			"properties": bson.M{
				"_id":         bson.M{"bsonType": "string", "minLength": 1},
				"name":        nonBlank,
				"name_ci":     nonBlank,
				"name_en":     bson.M{"bsonType": "string"},
				"category_id": bson.M{"bsonType": "string"},
				"created":     bson.M{"bsonType": "date"},
				"lastchange":  bson.M{"bsonType": "date"},
				"createdby":   bson.M{"bsonType": "string"},
				"changedby":   bson.M{"bsonType": "string"},
			},
		},
	}
}

func roleTypeListsSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"_id", "name", "name_ci", "created"},
			"properties": bson.M{
				"_id":       bson.M{"bsonType": "string", "minLength": 1},
				"name":      nonBlank,
				"name_ci":   nonBlank,
				"name_en":   bson.M{"bsonType": "string"},
				"created":   bson.M{"bsonType": "date"},
				"createdby": bson.M{"bsonType": "string"},
			},
		},
	}
}

func roleTypeMembershipsSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"_id", "list_id", "type_id", "created_at"},
			"properties": bson.M{
				"_id":        bson.M{"bsonType": "string", "minLength": 1},
				"list_id":    bson.M{"bsonType": "string", "minLength": 1},
				"type_id":    bson.M{"bsonType": "string", "minLength": 1},
				"createdby":  bson.M{"bsonType": "string"},
				"created_at": bson.M{"bsonType": "date"},
			},
		},
	}
}

// Category names are optional; name_ci is "" when unnamed.
func groupCategoriesSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"_id", "created", "lastchange"},
			"properties": bson.M{
				"_id":        bson.M{"bsonType": "string", "minLength": 1},
				"name":       bson.M{"bsonType": "string"},
				"name_ci":    bson.M{"bsonType": "string"},
				"name_en":    bson.M{"bsonType": "string"},
				"created":    bson.M{"bsonType": "date"},
				"lastchange": bson.M{"bsonType": "date"},
				"createdby":  bson.M{"bsonType": "string"},
				"changedby":  bson.M{"bsonType": "string"},
				"rbacobject": bson.M{"bsonType": "string"},
			},
		},
	}
}
