package models

import (
	"time"

	"gorm.io/gorm"
)

// NodeKind tags a listed node as a folder or a file
type NodeKind string

const (
	NodeKindFolder NodeKind = "folder"
	NodeKindFile   NodeKind = "file"
)

// Folder represents one node of an anchored folder hierarchy.
//
// The tree is stored flat: each row carries a nullable self-reference to its
// parent. A nil ParentFolderID marks a root. AnchorID names the business
// record the hierarchy is attached to; a folder's parent is allowed to be
// anchored to a different record (cross-record anchoring), so traversal code
// must follow parent references without consulting the anchor.
type Folder struct {
	ID             FolderID  `gorm:"type:uuid;primary_key" json:"id"`
	Name           string    `gorm:"not null;index" json:"name"`
	ParentFolderID *FolderID `gorm:"type:uuid;index" json:"parent_folder_id,omitempty"`
	ParentFolder   *Folder   `gorm:"foreignKey:ParentFolderID" json:"parent_folder,omitempty"`
	AnchorID       AnchorID  `gorm:"not null;index" json:"anchor_id"`
	CreatedBy      string    `json:"created_by"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// BeforeCreate hook to generate ID if not set
func (f *Folder) BeforeCreate(tx *gorm.DB) error {
	if f.ID.IsZero() {
		f.ID = NewFolderID()
	}
	return nil
}

// IsRoot reports whether the folder has no parent folder.
func (f *Folder) IsRoot() bool {
	return f.ParentFolderID == nil
}

// File represents a file record. The bytes themselves live in an external
// blob store; ContentRef is the opaque reference into it. A file always
// belongs to exactly one folder and is never a parent.
type File struct {
	ID         FileID    `gorm:"type:uuid;primary_key" json:"id"`
	Name       string    `gorm:"not null;index" json:"name"`
	FolderID   FolderID  `gorm:"type:uuid;not null;index" json:"folder_id"`
	Folder     *Folder   `gorm:"foreignKey:FolderID" json:"folder,omitempty"`
	ContentRef string    `json:"content_ref"`
	CreatedBy  string    `json:"created_by"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// BeforeCreate hook to generate ID if not set
func (f *File) BeforeCreate(tx *gorm.DB) error {
	if f.ID.IsZero() {
		f.ID = NewFileID()
	}
	return nil
}

// TemplateSet groups a collection of template folders that together describe
// a reusable folder structure.
type TemplateSet struct {
	ID        TemplateSetID `gorm:"type:uuid;primary_key" json:"id"`
	Name      string        `gorm:"not null" json:"name"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// BeforeCreate hook to generate ID if not set
func (t *TemplateSet) BeforeCreate(tx *gorm.DB) error {
	if t.ID.IsZero() {
		t.ID = NewTemplateSetID()
	}
	return nil
}

// TemplateFolder is one node of a template tree. It obeys the same
// acyclicity rule as Folder, scoped within a single template set, and has no
// anchor: a template is a blueprint, not an anchored hierarchy.
type TemplateFolder struct {
	ID            TemplateFolderID  `gorm:"type:uuid;primary_key" json:"id"`
	Name          string            `gorm:"not null" json:"name"`
	ParentID      *TemplateFolderID `gorm:"type:uuid;index" json:"parent_id,omitempty"`
	Parent        *TemplateFolder   `gorm:"foreignKey:ParentID" json:"parent,omitempty"`
	TemplateSetID TemplateSetID     `gorm:"type:uuid;not null;index" json:"template_set_id"`
	TemplateSet   *TemplateSet      `gorm:"foreignKey:TemplateSetID" json:"template_set,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// BeforeCreate hook to generate ID if not set
func (t *TemplateFolder) BeforeCreate(tx *gorm.DB) error {
	if t.ID.IsZero() {
		t.ID = NewTemplateFolderID()
	}
	return nil
}
