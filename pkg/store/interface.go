// Package store provides the persistence layer abstraction for the folder
// tree service.
//
// The [Store] interface implements the repository pattern over the four
// entity types of the node store: folders, files, template sets and template
// folders. Two backends implement it:
//
//   - [github.com/jcd386/WSM-File-System/pkg/store/postgres.Store]: GORM over
//     PostgreSQL, the production backend
//   - [github.com/jcd386/WSM-File-System/pkg/store/sqlite.Store]: GORM over a
//     pure-Go SQLite driver for embedded use and tests
//
// Conventions shared by all implementations:
//
//   - Get methods return (nil, nil) for missing rows; an error means the
//     query itself failed. Callers detect absence through the nil value.
//   - List methods return name-ordered results so sibling ordering is stable,
//     and an empty slice (never an error) when nothing matches.
//   - Multi-row mutations ([Store.DeleteFolderTree],
//     [Store.DeleteTemplateSet], [Store.DeleteTemplateFolders]) execute inside
//     a single database transaction: either the whole cascade commits or none
//     of it does. The store's transaction discipline is the only concurrency
//     control in the system; the service layer holds no locks.
//   - Every method takes a context.Context and respects its cancellation.
//
// [ReadOnlyStore] wraps any backend and rejects writes while the application
// is in a maintenance window.
package store

import (
	"context"

	"github.com/jcd386/WSM-File-System/pkg/models"
)

// Store defines the complete persistence interface for the node store.
type Store interface {
	// Folder operations

	// CreateFolder persists a new folder. A zero ID is replaced with a
	// generated one before insert.
	CreateFolder(ctx context.Context, folder *models.Folder) error

	// GetFolder retrieves a folder by ID, or nil if it does not exist.
	GetFolder(ctx context.Context, id models.FolderID) (*models.Folder, error)

	// UpdateFolder replaces an existing folder row with the provided entity.
	// Re-parenting is a plain field update here; cycle validation happens in
	// the service layer before this is called.
	UpdateFolder(ctx context.Context, folder *models.Folder) error

	// ListRootFolders returns the folders of one anchor that have no parent,
	// ordered by name.
	ListRootFolders(ctx context.Context, anchor models.AnchorID) ([]*models.Folder, error)

	// ListChildFolders returns the direct child folders of a folder, ordered
	// by name. Children anchored to other records are included; the parent
	// walk is anchor-agnostic.
	ListChildFolders(ctx context.Context, parentID models.FolderID) ([]*models.Folder, error)

	// ListFoldersByAnchor returns every folder declaring the given anchor,
	// at any depth.
	ListFoldersByAnchor(ctx context.Context, anchor models.AnchorID) ([]*models.Folder, error)

	// SearchFolders returns folders whose name contains the term,
	// case-insensitively, across all anchors, ordered by name.
	SearchFolders(ctx context.Context, term string) ([]*models.Folder, error)

	// DeleteFolderTree removes the given folders and files in one
	// transaction. The caller supplies the full cascade (the root, every
	// descendant folder, and every contained file); no partial cascade is
	// ever observable.
	DeleteFolderTree(ctx context.Context, folderIDs []models.FolderID, fileIDs []models.FileID) error

	// File operations

	// CreateFile persists a new file record.
	CreateFile(ctx context.Context, file *models.File) error

	// GetFile retrieves a file record by ID, or nil if it does not exist.
	GetFile(ctx context.Context, id models.FileID) (*models.File, error)

	// UpdateFile replaces an existing file row with the provided entity.
	UpdateFile(ctx context.Context, file *models.File) error

	// DeleteFile removes a single file record.
	DeleteFile(ctx context.Context, id models.FileID) error

	// ListFilesInFolder returns the files directly inside a folder, ordered
	// by name.
	ListFilesInFolder(ctx context.Context, folderID models.FolderID) ([]*models.File, error)

	// Template set operations

	CreateTemplateSet(ctx context.Context, set *models.TemplateSet) error
	GetTemplateSet(ctx context.Context, id models.TemplateSetID) (*models.TemplateSet, error)
	UpdateTemplateSet(ctx context.Context, set *models.TemplateSet) error
	ListTemplateSets(ctx context.Context) ([]*models.TemplateSet, error)

	// DeleteTemplateSet removes a template set together with the given
	// folders (its full tree) in one transaction.
	DeleteTemplateSet(ctx context.Context, id models.TemplateSetID, folderIDs []models.TemplateFolderID) error

	// Template folder operations

	CreateTemplateFolder(ctx context.Context, folder *models.TemplateFolder) error
	GetTemplateFolder(ctx context.Context, id models.TemplateFolderID) (*models.TemplateFolder, error)
	UpdateTemplateFolder(ctx context.Context, folder *models.TemplateFolder) error

	// ListTemplateFolders returns every folder of a set, ordered by name.
	ListTemplateFolders(ctx context.Context, setID models.TemplateSetID) ([]*models.TemplateFolder, error)

	// ListRootTemplateFolders returns a set's folders without a parent,
	// ordered by name.
	ListRootTemplateFolders(ctx context.Context, setID models.TemplateSetID) ([]*models.TemplateFolder, error)

	// ListChildTemplateFolders returns the direct children of a template
	// folder, ordered by name.
	ListChildTemplateFolders(ctx context.Context, parentID models.TemplateFolderID) ([]*models.TemplateFolder, error)

	// DeleteTemplateFolders removes the given template folders (a subtree
	// collected by the caller) in one transaction.
	DeleteTemplateFolders(ctx context.Context, ids []models.TemplateFolderID) error

	// Migrate initializes or updates the database schema. Safe to run
	// repeatedly; only missing schema elements are created.
	Migrate(ctx context.Context) error

	// Close releases database connections. Multiple calls are safe.
	Close() error
}
