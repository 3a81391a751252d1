// Package repository defines the storage contract the service layer depends on.
//
// One generic Gateway covers all three record types; a Store bundles the
// three gateways of a single backend so that cascading deletes can reach
// across tables. Implementations live in the sub-packages memory, sqlite and
// postgres.
package repository

import (
	"context"

	"github.com/sakif/blog-api/internal/model"
)

// Gateway is the capability set every backend provides per record type.
//
//   - Create stores a record whose ID is zero and returns it with the newly
//     assigned ID. Uniqueness violations are reported as apperror.ErrConflict.
//   - GetByID returns (record, true, nil) when present and (zero, false, nil)
//     when absent. A missing id is never an error.
//   - GetAll returns every record in insertion order, never nil.
//   - Delete removes the record and its dependents. Deleting an id that does
//     not exist is a no-op.
//
// Every single call is atomic with respect to concurrent readers.
type Gateway[T model.Entity] interface {
	Create(ctx context.Context, record T) (T, error)
	GetByID(ctx context.Context, id int64) (T, bool, error)
	GetAll(ctx context.Context) ([]T, error)
	Delete(ctx context.Context, id int64) error
}

// Store is one backend instance: the three gateways that share its storage.
type Store interface {
	Users() Gateway[model.User]
	Posts() Gateway[model.Post]
	Comments() Gateway[model.Comment]
	Close() error
}
