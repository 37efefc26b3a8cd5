package labmodel

import (
	"time"
)

// Mixin holds the identity and versioning columns shared by every kind.
// Version starts at 1 and is bumped on every update. It is advisory only,
// nothing checks it against concurrent writers.
type Mixin struct {
	ID      int       `json:"id" gorm:"primaryKey"`
	Name    string    `json:"name"`
	Time    time.Time `json:"time"`
	Version int       `json:"version"`
}

func (m *Mixin) Base() *Mixin {
	return m
}

// Record is implemented by a pointer to each of the six kinds.
type Record interface {
	Kind() Kind
	Base() *Mixin

	// ParentID returns the id of the parent row, or 0 for a root kind or
	// when no parent was supplied.
	ParentID() int

	// Attributes returns every non key column (name included) keyed by
	// column name.
	Attributes() map[string]interface{}
}
