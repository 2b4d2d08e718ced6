package metricsstore

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Counts is the set of document totals reported by /health?verbose.
type Counts struct {
	RoleTypes       int64 `json:"role_types"`
	RoleTypeLists   int64 `json:"role_type_lists"`
	Memberships     int64 `json:"memberships"`
	GroupCategories int64 `json:"group_categories"`
}

// FetchCounts returns the per-collection totals.
// Intentionally tolerant: on error it returns 0 for that counter.
func FetchCounts(ctx context.Context, db *mongo.Database) Counts {
	var out Counts
	for coll, dst := range map[string]*int64{
		"role_types":            &out.RoleTypes,
		"role_type_lists":       &out.RoleTypeLists,
		"role_type_memberships": &out.Memberships,
		"groupcategories":       &out.GroupCategories,
	} {
		if n, err := db.Collection(coll).CountDocuments(ctx, bson.M{}); err == nil {
			*dst = n
		}
	}
	return out
}
