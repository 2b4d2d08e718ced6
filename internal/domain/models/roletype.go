// internal/domain/models/roletype.go
package models

import "time"

// RoleType is a kind of role a user can hold in a group ("garant", "administrátor", ...).
type RoleType struct {
	ID         string  `bson:"_id" json:"id"`
	Name       string  `bson:"name" json:"name"`
	NameEN     string  `bson:"name_en,omitempty" json:"name_en,omitempty"`
	NameCI     string  `bson:"name_ci" json:"-"`
	CategoryID *string `bson:"category_id,omitempty" json:"category_id,omitempty"`

	Created    time.Time `bson:"created" json:"created"`
	LastChange time.Time `bson:"lastchange" json:"lastchange"`
	CreatedBy  *string   `bson:"createdby,omitempty" json:"createdby,omitempty"`
	ChangedBy  *string   `bson:"changedby,omitempty" json:"changedby,omitempty"`
}
