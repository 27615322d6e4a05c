// Package uow implements the unit of work coordinating one request's
// persistence operations against a single transaction.
package uow

import (
	"context"

	"ripple/internal/middleware"
	"ripple/internal/repository"

	"gorm.io/gorm"
)

// UnitOfWork bundles the repository set behind one database handle. An
// instance is created per request scope and must not be shared between
// concurrent logical operations: UseTransaction mutates the repository
// bindings in place.
type UnitOfWork struct {
	db *gorm.DB

	// Posts is the repository set. It points at the ambient connection until
	// UseTransaction swaps it for a transaction-scoped binding.
	Posts repository.PostRepository
}

// New creates a UnitOfWork bound to the ambient database connection.
func New(db *gorm.DB) *UnitOfWork {
	return &UnitOfWork{
		db:    db,
		Posts: repository.NewPostRepository(db),
	}
}

// UseTransaction rebinds the repositories to the given transaction handle.
// The swap persists for the remainder of the unit of work's lifetime, so
// callers must invoke it inside the Transact callback before writing.
func (u *UnitOfWork) UseTransaction(tx *gorm.DB) {
	middleware.Logger.Info("Using transaction repositories")
	u.Posts = repository.NewPostRepository(tx)
}

// Transact opens a transaction and invokes fn with the transaction handle.
// It commits on nil return and rolls back on error; there is no retry.
func (u *UnitOfWork) Transact(ctx context.Context, fn func(tx *gorm.DB) error) error {
	middleware.Logger.Info("Starting transaction")
	return u.db.WithContext(ctx).Transaction(fn)
}
