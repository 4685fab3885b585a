package store

import (
	"context"
	"fmt"

	"github.com/jcd386/WSM-File-System/pkg/models"
)

// ReadOnlyStore wraps a Store and prevents write operations when in
// read-only mode.
//
// The read-only state is determined dynamically by the isReadOnly function,
// so the application can toggle between read-write and read-only without
// recreating the store instance. Maintenance windows and pre-migration
// freezes use this: reads keep working, every mutation is rejected with an
// error the HTTP layer converts into a failed outcome.
type ReadOnlyStore struct {
	Store
	isReadOnly func() bool
}

// NewReadOnlyStore creates a new read-only wrapper for a store
func NewReadOnlyStore(store Store, isReadOnly func() bool) Store {
	return &ReadOnlyStore{
		Store:      store,
		isReadOnly: isReadOnly,
	}
}

// Unwrap returns the underlying store
func (r *ReadOnlyStore) Unwrap() Store {
	return r.Store
}

// checkReadOnly returns an error if the store is in read-only mode
func (r *ReadOnlyStore) checkReadOnly() error {
	if r.isReadOnly() {
		return fmt.Errorf("operation denied: application is in read-only mode for data consistency")
	}
	return nil
}

// Write operations - check read-only mode first

func (r *ReadOnlyStore) CreateFolder(ctx context.Context, folder *models.Folder) error {
	if err := r.checkReadOnly(); err != nil {
		return err
	}
	return r.Store.CreateFolder(ctx, folder)
}

func (r *ReadOnlyStore) UpdateFolder(ctx context.Context, folder *models.Folder) error {
	if err := r.checkReadOnly(); err != nil {
		return err
	}
	return r.Store.UpdateFolder(ctx, folder)
}

func (r *ReadOnlyStore) DeleteFolderTree(ctx context.Context, folderIDs []models.FolderID, fileIDs []models.FileID) error {
	if err := r.checkReadOnly(); err != nil {
		return err
	}
	return r.Store.DeleteFolderTree(ctx, folderIDs, fileIDs)
}

func (r *ReadOnlyStore) CreateFile(ctx context.Context, file *models.File) error {
	if err := r.checkReadOnly(); err != nil {
		return err
	}
	return r.Store.CreateFile(ctx, file)
}

func (r *ReadOnlyStore) UpdateFile(ctx context.Context, file *models.File) error {
	if err := r.checkReadOnly(); err != nil {
		return err
	}
	return r.Store.UpdateFile(ctx, file)
}

func (r *ReadOnlyStore) DeleteFile(ctx context.Context, id models.FileID) error {
	if err := r.checkReadOnly(); err != nil {
		return err
	}
	return r.Store.DeleteFile(ctx, id)
}

func (r *ReadOnlyStore) CreateTemplateSet(ctx context.Context, set *models.TemplateSet) error {
	if err := r.checkReadOnly(); err != nil {
		return err
	}
	return r.Store.CreateTemplateSet(ctx, set)
}

func (r *ReadOnlyStore) UpdateTemplateSet(ctx context.Context, set *models.TemplateSet) error {
	if err := r.checkReadOnly(); err != nil {
		return err
	}
	return r.Store.UpdateTemplateSet(ctx, set)
}

func (r *ReadOnlyStore) DeleteTemplateSet(ctx context.Context, id models.TemplateSetID, folderIDs []models.TemplateFolderID) error {
	if err := r.checkReadOnly(); err != nil {
		return err
	}
	return r.Store.DeleteTemplateSet(ctx, id, folderIDs)
}

func (r *ReadOnlyStore) CreateTemplateFolder(ctx context.Context, folder *models.TemplateFolder) error {
	if err := r.checkReadOnly(); err != nil {
		return err
	}
	return r.Store.CreateTemplateFolder(ctx, folder)
}

func (r *ReadOnlyStore) UpdateTemplateFolder(ctx context.Context, folder *models.TemplateFolder) error {
	if err := r.checkReadOnly(); err != nil {
		return err
	}
	return r.Store.UpdateTemplateFolder(ctx, folder)
}

func (r *ReadOnlyStore) DeleteTemplateFolders(ctx context.Context, ids []models.TemplateFolderID) error {
	if err := r.checkReadOnly(); err != nil {
		return err
	}
	return r.Store.DeleteTemplateFolders(ctx, ids)
}
