// internal/domain/models/groupcategory.go
package models

import "time"

// GroupCategory classifies groups (academic units, military structures, ...).
//
// ID is a UUID string generated on insert and never reassigned.
// LastChange is refreshed on every update; Created is set once.
type GroupCategory struct {
	ID     string `bson:"_id" json:"id"`
	Name   string `bson:"name,omitempty" json:"name,omitempty"`
	NameEN string `bson:"name_en,omitempty" json:"name_en,omitempty"`
	NameCI string `bson:"name_ci" json:"-"`

	Created    time.Time `bson:"created" json:"created"`
	LastChange time.Time `bson:"lastchange" json:"lastchange"`
	CreatedBy  *string   `bson:"createdby,omitempty" json:"createdby,omitempty"`
	ChangedBy  *string   `bson:"changedby,omitempty" json:"changedby,omitempty"`

	// RBACObject holds the object used for role resolution on this record.
	RBACObject *string `bson:"rbacobject,omitempty" json:"rbacobject,omitempty"`
}
