// Package postgres provides the PostgreSQL backend for the node store.
//
// PostgreSQL is the production backend: its transactional isolation is what
// the service relies on for the all-or-nothing guarantees of cascade deletes
// and moves. Two concurrent moves racing over overlapping subtrees both pass
// validation against their own reads; the later commit either serializes
// cleanly or fails and is retried by the caller.
package postgres

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/jcd386/WSM-File-System/pkg/store"
	"github.com/jcd386/WSM-File-System/pkg/store/gormstore"
)

// New opens a PostgreSQL-backed store.
func New(dsn string) (store.Store, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return gormstore.New(db), nil
}
