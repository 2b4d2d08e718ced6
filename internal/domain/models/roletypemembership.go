// internal/domain/models/roletypemembership.go
package models

import "time"

// RoleTypeMembership records that a role type belongs to a role type list.
// Exactly one document per (list_id, type_id). Records are created and
// deleted, never updated in place.
type RoleTypeMembership struct {
	ID        string    `bson:"_id" json:"id"`
	ListID    string    `bson:"list_id" json:"list_id"`
	TypeID    string    `bson:"type_id" json:"type_id"`
	CreatedBy string    `bson:"createdby,omitempty" json:"-"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
