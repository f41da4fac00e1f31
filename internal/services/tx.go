package services

import "gorm.io/gorm"

// createInSavepoint inserts value inside a nested transaction, which GORM
// runs as a SAVEPOINT when a transaction is already open. On Postgres a
// unique violation aborts the enclosing transaction and every later
// statement in it; the savepoint confines the failed INSERT so callers can
// treat gorm.ErrDuplicatedKey as "someone else won the race" and continue.
func createInSavepoint(tx *gorm.DB, value any) error {
	return tx.Transaction(func(tx *gorm.DB) error {
		return tx.Create(value).Error
	})
}
