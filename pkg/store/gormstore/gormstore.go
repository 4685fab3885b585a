// Package gormstore implements the store interface on top of GORM. It is
// shared by the postgres and sqlite backends, which differ only in the
// dialector they open.
package gormstore

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/jcd386/WSM-File-System/pkg/models"
	"github.com/jcd386/WSM-File-System/pkg/store"
)

// Store implements store.Store over a *gorm.DB.
type Store struct {
	db *gorm.DB
}

// New wraps an open GORM connection.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

var _ store.Store = (*Store)(nil)

// Migrate creates or updates the node store schema using GORM's AutoMigrate.
// Safe to run repeatedly; it only adds missing schema elements.
func (s *Store) Migrate(ctx context.Context) error {
	return s.db.WithContext(ctx).AutoMigrate(
		&models.Folder{},
		&models.File{},
		&models.TemplateSet{},
		&models.TemplateFolder{},
	)
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Folder operations

func (s *Store) CreateFolder(ctx context.Context, folder *models.Folder) error {
	return s.db.WithContext(ctx).Create(folder).Error
}

func (s *Store) GetFolder(ctx context.Context, id models.FolderID) (*models.Folder, error) {
	var folder models.Folder
	err := s.db.WithContext(ctx).First(&folder, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &folder, nil
}

func (s *Store) UpdateFolder(ctx context.Context, folder *models.Folder) error {
	return s.db.WithContext(ctx).Save(folder).Error
}

func (s *Store) ListRootFolders(ctx context.Context, anchor models.AnchorID) ([]*models.Folder, error) {
	var folders []*models.Folder
	err := s.db.WithContext(ctx).
		Where("anchor_id = ? AND parent_folder_id IS NULL", anchor).
		Order("name").
		Find(&folders).Error
	return folders, err
}

func (s *Store) ListChildFolders(ctx context.Context, parentID models.FolderID) ([]*models.Folder, error) {
	var folders []*models.Folder
	err := s.db.WithContext(ctx).
		Where("parent_folder_id = ?", parentID).
		Order("name").
		Find(&folders).Error
	return folders, err
}

func (s *Store) ListFoldersByAnchor(ctx context.Context, anchor models.AnchorID) ([]*models.Folder, error) {
	var folders []*models.Folder
	err := s.db.WithContext(ctx).
		Where("anchor_id = ?", anchor).
		Order("name").
		Find(&folders).Error
	return folders, err
}

func (s *Store) SearchFolders(ctx context.Context, term string) ([]*models.Folder, error) {
	var folders []*models.Folder
	pattern := "%" + escapeLike(term) + "%"
	err := s.db.WithContext(ctx).
		Where(`lower(name) LIKE lower(?) ESCAPE '\'`, pattern).
		Order("name").
		Find(&folders).Error
	return folders, err
}

// DeleteFolderTree removes the cascade inside one transaction. Folders are
// deleted children-first (the caller supplies them in parent-before-child
// order) so the self-referential foreign key is never violated mid-cascade.
func (s *Store) DeleteFolderTree(ctx context.Context, folderIDs []models.FolderID, fileIDs []models.FileID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(fileIDs) > 0 {
			if err := tx.Delete(&models.File{}, "id IN ?", fileIDs).Error; err != nil {
				return err
			}
		}
		for i := len(folderIDs) - 1; i >= 0; i-- {
			if err := tx.Delete(&models.Folder{}, "id = ?", folderIDs[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// File operations

func (s *Store) CreateFile(ctx context.Context, file *models.File) error {
	return s.db.WithContext(ctx).Create(file).Error
}

func (s *Store) GetFile(ctx context.Context, id models.FileID) (*models.File, error) {
	var file models.File
	err := s.db.WithContext(ctx).First(&file, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &file, nil
}

func (s *Store) UpdateFile(ctx context.Context, file *models.File) error {
	return s.db.WithContext(ctx).Save(file).Error
}

func (s *Store) DeleteFile(ctx context.Context, id models.FileID) error {
	return s.db.WithContext(ctx).Delete(&models.File{}, "id = ?", id).Error
}

func (s *Store) ListFilesInFolder(ctx context.Context, folderID models.FolderID) ([]*models.File, error) {
	var files []*models.File
	err := s.db.WithContext(ctx).
		Where("folder_id = ?", folderID).
		Order("name").
		Find(&files).Error
	return files, err
}

// Template set operations

func (s *Store) CreateTemplateSet(ctx context.Context, set *models.TemplateSet) error {
	return s.db.WithContext(ctx).Create(set).Error
}

func (s *Store) GetTemplateSet(ctx context.Context, id models.TemplateSetID) (*models.TemplateSet, error) {
	var set models.TemplateSet
	err := s.db.WithContext(ctx).First(&set, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &set, nil
}

func (s *Store) UpdateTemplateSet(ctx context.Context, set *models.TemplateSet) error {
	return s.db.WithContext(ctx).Save(set).Error
}

func (s *Store) ListTemplateSets(ctx context.Context) ([]*models.TemplateSet, error) {
	var sets []*models.TemplateSet
	err := s.db.WithContext(ctx).Order("name").Find(&sets).Error
	return sets, err
}

func (s *Store) DeleteTemplateSet(ctx context.Context, id models.TemplateSetID, folderIDs []models.TemplateFolderID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := len(folderIDs) - 1; i >= 0; i-- {
			if err := tx.Delete(&models.TemplateFolder{}, "id = ?", folderIDs[i]).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&models.TemplateSet{}, "id = ?", id).Error
	})
}

// Template folder operations

func (s *Store) CreateTemplateFolder(ctx context.Context, folder *models.TemplateFolder) error {
	return s.db.WithContext(ctx).Create(folder).Error
}

func (s *Store) GetTemplateFolder(ctx context.Context, id models.TemplateFolderID) (*models.TemplateFolder, error) {
	var folder models.TemplateFolder
	err := s.db.WithContext(ctx).First(&folder, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &folder, nil
}

func (s *Store) UpdateTemplateFolder(ctx context.Context, folder *models.TemplateFolder) error {
	return s.db.WithContext(ctx).Save(folder).Error
}

func (s *Store) ListTemplateFolders(ctx context.Context, setID models.TemplateSetID) ([]*models.TemplateFolder, error) {
	var folders []*models.TemplateFolder
	err := s.db.WithContext(ctx).
		Where("template_set_id = ?", setID).
		Order("name").
		Find(&folders).Error
	return folders, err
}

func (s *Store) ListRootTemplateFolders(ctx context.Context, setID models.TemplateSetID) ([]*models.TemplateFolder, error) {
	var folders []*models.TemplateFolder
	err := s.db.WithContext(ctx).
		Where("template_set_id = ? AND parent_id IS NULL", setID).
		Order("name").
		Find(&folders).Error
	return folders, err
}

func (s *Store) ListChildTemplateFolders(ctx context.Context, parentID models.TemplateFolderID) ([]*models.TemplateFolder, error) {
	var folders []*models.TemplateFolder
	err := s.db.WithContext(ctx).
		Where("parent_id = ?", parentID).
		Order("name").
		Find(&folders).Error
	return folders, err
}

func (s *Store) DeleteTemplateFolders(ctx context.Context, ids []models.TemplateFolderID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := len(ids) - 1; i >= 0; i-- {
			if err := tx.Delete(&models.TemplateFolder{}, "id = ?", ids[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// escapeLike neutralizes LIKE wildcards in a user-supplied search term.
func escapeLike(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(term)
}
