// internal/domain/models/roletypelist.go
package models

import "time"

// RoleTypeList is a named collection of role types.
//
// NOTE: the members of a list are not embedded here. Each member is a
// RoleTypeMembership document in the role_type_memberships collection.
type RoleTypeList struct {
	ID        string    `bson:"_id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	NameEN    string    `bson:"name_en,omitempty" json:"name_en,omitempty"`
	NameCI    string    `bson:"name_ci" json:"-"`
	Created   time.Time `bson:"created" json:"created"`
	CreatedBy *string   `bson:"createdby,omitempty" json:"createdby,omitempty"`
}
