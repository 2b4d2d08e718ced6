// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

/*
EnsureAll is called at startup (EnsureSchema hook). Each ensure* function is
idempotent. Errors are aggregated so every problem shows up in one run and
startup can fail fast.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	sets := []struct {
		name string
		fn   func(context.Context, *mongo.Database) error
	}{
		{"role_type_memberships", ensureRoleTypeMemberships},
		{"role_types", ensureRoleTypes},
		{"role_type_lists", ensureRoleTypeLists},
		{"groupcategories", ensureGroupCategories},
		{"audit_events", ensureAuditEvents},
	}

	var problems []string
	for _, s := range sets {
		if err := s.fn(ctx, db); err != nil {
			problems = append(problems, s.name+": "+err.Error())
		}
	}
	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

/* -------------------------------------------------------------------------- */
/* Reconcile a set of desired indexes for one collection                      */
/* -------------------------------------------------------------------------- */

type existingIndex struct {
	Name   string `bson:"name"`
	Key    bson.D `bson:"key"`
	Unique *bool  `bson:"unique,omitempty"`
}

func keySig(keys bson.D) string {
	parts := make([]string, 0, len(keys))
	for _, kv := range keys {
		parts = append(parts, fmt.Sprintf("%s:%v", kv.Key, kv.Value))
	}
	return strings.Join(parts, ", ")
}

func boolVal(b *bool) bool { return b != nil && *b }

// isDuplicateKeyErr matches E11000 across Mongo and DocumentDB error shapes.
func isDuplicateKeyErr(err error) bool {
	if err == nil {
		return false
	}
	if mongo.IsDuplicateKeyError(err) {
		return true
	}
	s := err.Error()
	return strings.Contains(s, "E11000") || strings.Contains(strings.ToLower(s), "duplicate key")
}

// Mongo/DocDB return IndexOptionsConflict when an index with the same keys
// already exists under a different name or with different options.
func isOptionsConflictErr(err error) bool {
	return err != nil && strings.Contains(err.Error(), "IndexOptionsConflict")
}

func listExisting(ctx context.Context, coll *mongo.Collection) map[string]existingIndex {
	out := map[string]existingIndex{} // key signature -> index
	cur, err := coll.Indexes().List(ctx)
	if err != nil {
		return out
	}
	defer cur.Close(ctx)
	for cur.Next(ctx) {
		var idx existingIndex
		if err := cur.Decode(&idx); err != nil {
			zap.L().Warn("failed to decode existing index",
				zap.String("collection", coll.Name()),
				zap.Error(err))
			continue
		}
		out[keySig(idx.Key)] = idx
	}
	return out
}

// recreate drops the index called oldName and creates m in its place.
func recreate(ctx context.Context, coll *mongo.Collection, oldName string, m mongo.IndexModel) error {
	if _, err := coll.Indexes().DropOne(ctx, oldName); err != nil {
		return fmt.Errorf("drop %s: %w", oldName, err)
	}
	if _, err := coll.Indexes().CreateOne(ctx, m); err != nil {
		return err
	}
	return nil
}

func describeCreateErr(coll *mongo.Collection, name string, unique bool, err error) string {
	if unique && isDuplicateKeyErr(err) {
		helper := ""
		if coll.Name() == "role_type_memberships" {
			helper = " (duplicate list/type pairs present). Example finder:\n" +
				`db.role_type_memberships.aggregate([{ $group: { _id: { l: "$list_id", t: "$type_id" }, n: { $sum: 1 } } }, { $match: { n: { $gt: 1 } } }])`
		}
		return fmt.Sprintf("%s(%s): cannot create unique index, duplicates present%s", coll.Name(), name, helper)
	}
	return fmt.Sprintf("%s(%s): %v", coll.Name(), name, err)
}

func ensureIndexSet(ctx context.Context, coll *mongo.Collection, models []mongo.IndexModel) error {
	var errs []string

	for _, m := range models {
		var name string
		var uniquePtr *bool
		if m.Options != nil {
			if m.Options.Name != nil {
				name = *m.Options.Name
			}
			uniquePtr = m.Options.Unique
		}
		unique := boolVal(uniquePtr)
		sig := keySig(m.Keys.(bson.D))
		start := time.Now()
		log := zap.L().With(
			zap.String("collection", coll.Name()),
			zap.String("name", name),
			zap.String("keys", sig),
			zap.Bool("unique", unique))

		log.Info("ensuring index")

		if ex, ok := listExisting(ctx, coll)[sig]; ok {
			switch {
			case unique == boolVal(ex.Unique) && (name == "" || ex.Name == name):
				log.Info("reusing existing index", zap.String("took", time.Since(start).String()))
			case unique == boolVal(ex.Unique):
				// same keys and options, different name: align the name
				if err := recreate(ctx, coll, ex.Name, m); err != nil {
					log.Warn("index rename failed", zap.String("from", ex.Name), zap.Error(err))
					errs = append(errs, fmt.Sprintf("%s(%s): rename failed: %v", coll.Name(), name, err))
					continue
				}
				log.Info("index renamed", zap.String("from", ex.Name), zap.String("took", time.Since(start).String()))
			default:
				// options changed (e.g. upgrading to unique)
				if err := recreate(ctx, coll, ex.Name, m); err != nil {
					log.Warn("index recreate failed", zap.Error(err))
					errs = append(errs, describeCreateErr(coll, name, unique, err))
					continue
				}
				log.Info("index dropped and recreated", zap.String("took", time.Since(start).String()))
			}
			continue
		}

		created, err := coll.Indexes().CreateOne(ctx, m)
		if err == nil {
			log.Info("index ensured",
				zap.String("created_name", created),
				zap.String("took", time.Since(start).String()))
			continue
		}

		if isOptionsConflictErr(err) {
			if ex, ok := listExisting(ctx, coll)[sig]; ok {
				if unique == boolVal(ex.Unique) {
					log.Info("reusing existing index (post-conflict)", zap.String("existing", ex.Name))
					continue
				}
				if err2 := recreate(ctx, coll, ex.Name, m); err2 != nil {
					errs = append(errs, describeCreateErr(coll, name, unique, err2))
					continue
				}
				log.Info("index dropped and recreated (post-conflict)", zap.String("took", time.Since(start).String()))
				continue
			}
		}

		log.Warn("index ensure failed", zap.String("took", time.Since(start).String()), zap.Error(err))
		errs = append(errs, describeCreateErr(coll, name, unique, err))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

/* -------------------------------------------------------------------------- */
/* Collection-specific index sets                                              */
/* -------------------------------------------------------------------------- */

func ensureRoleTypeMemberships(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("role_type_memberships")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// At most one membership per (list, type). Racing adds hit E11000 and
		// the store reports a rejected insert.
		{
			Keys:    bson.D{{Key: "list_id", Value: 1}, {Key: "type_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_rtm_list_type"),
		},
		// FilterByList: list scan in insertion order with stable tiebreak
		{
			Keys:    bson.D{{Key: "list_id", Value: 1}, {Key: "created_at", Value: 1}, {Key: "_id", Value: 1}},
			Options: options.Index().SetName("idx_rtm_list_created__id"),
		},
		// Cleanup when a role type is deleted
		{
			Keys:    bson.D{{Key: "type_id", Value: 1}},
			Options: options.Index().SetName("idx_rtm_type"),
		},
	})
}

func ensureRoleTypes(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("role_types")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name_ci", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_role_types_nameci"),
		},
		{
			Keys:    bson.D{{Key: "category_id", Value: 1}, {Key: "name_ci", Value: 1}},
			Options: options.Index().SetName("idx_role_types_category_nameci"),
		},
	})
}

func ensureRoleTypeLists(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("role_type_lists")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name_ci", Value: 1}, {Key: "_id", Value: 1}},
			Options: options.Index().SetName("idx_rtl_nameci__id"),
		},
	})
}

func ensureGroupCategories(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("groupcategories")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Unique folded names; categories without a name are not constrained.
		{
			Keys: bson.D{{Key: "name_ci", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetName("uniq_groupcategories_nameci").
				SetPartialFilterExpression(bson.M{"name_ci": bson.M{"$gt": ""}}),
		},
		{
			Keys:    bson.D{{Key: "rbacobject", Value: 1}},
			Options: options.Index().SetName("idx_groupcategories_rbacobject"),
		},
	})
}

func ensureAuditEvents(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("audit_events")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "timestamp", Value: -1}},
			Options: options.Index().SetName("idx_audit_timestamp"),
		},
		{
			Keys:    bson.D{{Key: "target_id", Value: 1}, {Key: "timestamp", Value: -1}},
			Options: options.Index().SetName("idx_audit_target_timestamp"),
		},
		{
			Keys:    bson.D{{Key: "actor_id", Value: 1}, {Key: "timestamp", Value: -1}},
			Options: options.Index().SetName("idx_audit_actor_timestamp"),
		},
		{
			Keys:    bson.D{{Key: "category", Value: 1}, {Key: "event_type", Value: 1}, {Key: "timestamp", Value: -1}},
			Options: options.Index().SetName("idx_audit_category_type_timestamp"),
		},
	})
}
