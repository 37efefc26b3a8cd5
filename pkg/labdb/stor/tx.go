package stor

import (
	"gorm.io/gorm"
)

// WithTx runs fn inside a single transaction on db. The transaction is
// committed when fn returns nil and rolled back when fn returns an error or
// panics, in which case the panic is re-raised after the rollback. Either way
// the connection goes back to the pool. Nothing is retried.
func WithTx(db *gorm.DB, fn func(tx *gorm.DB) error) error {
	return db.Transaction(fn)
}

// WithObjectStor is WithTx handing fn an ObjectStor bound to the transaction.
// Writes made through the store are durable only if fn returns nil.
func WithObjectStor(db *gorm.DB, fn func(s ObjectStor) error) error {
	return WithTx(db, func(tx *gorm.DB) error {
		return fn(NewGormObjectStor(tx))
	})
}
