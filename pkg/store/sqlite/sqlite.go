// Package sqlite provides an embedded backend for the node store, using the
// pure-Go SQLite driver so no cgo toolchain is required. It serves local
// development and the test suite; production deployments use the postgres
// backend.
package sqlite

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/jcd386/WSM-File-System/pkg/store"
	"github.com/jcd386/WSM-File-System/pkg/store/gormstore"
)

// New opens a SQLite-backed store at the given path. ":memory:" gives a
// throwaway in-process database.
func New(path string) (store.Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	return gormstore.New(db), nil
}
