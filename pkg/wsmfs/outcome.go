package wsmfs

import (
	"time"

	"github.com/jcd386/WSM-File-System/pkg/models"
)

// Node is the wire shape of one listed tree entry. Folders and files share
// it; ContentReference is set for files only.
type Node struct {
	ID               string          `json:"id"`
	Label            string          `json:"label"`
	NodeKind         models.NodeKind `json:"nodeKind"`
	ParentID         *string         `json:"parentId,omitempty"`
	AnchorID         string          `json:"anchorId,omitempty"`
	ContentReference string          `json:"contentReference,omitempty"`
	CreatedAt        time.Time       `json:"createdAt"`
	CreatedBy        string          `json:"createdBy"`
}

func folderNode(f *models.Folder) Node {
	n := Node{
		ID:        f.ID.String(),
		Label:     f.Name,
		NodeKind:  models.NodeKindFolder,
		AnchorID:  f.AnchorID.String(),
		CreatedAt: f.CreatedAt,
		CreatedBy: f.CreatedBy,
	}
	if f.ParentFolderID != nil {
		s := f.ParentFolderID.String()
		n.ParentID = &s
	}
	return n
}

func fileNode(f *models.File) Node {
	parent := f.FolderID.String()
	return Node{
		ID:               f.ID.String(),
		Label:            f.Name,
		NodeKind:         models.NodeKindFile,
		ParentID:         &parent,
		ContentReference: f.ContentRef,
		CreatedAt:        f.CreatedAt,
		CreatedBy:        f.CreatedBy,
	}
}

// SearchMatch is one search hit, carrying enough path context to tell two
// folders with the same name apart.
type SearchMatch struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	AnchorID string `json:"anchorId"`
	// Path is the breadcrumb from root to the matched folder, the match
	// included, joined with " / ".
	Path string `json:"path"`
}

/// ParentLink describes a cross-record anchoring link: the folder in another
// record's hierarchy that a given anchor (or folder) hangs beneath.
type ParentLink struct {
	FolderID   models.FolderID `json:"folderId"`
	FolderName string          `json:"folderName"`
	AnchorID   models.AnchorID `json:"anchorId"`
}

// ApplyResult reports a template application. On a mid-walk failure the
// service still returns the synthetic root's id so the caller can cascade-
// delete the partial subtree.
type ApplyResult struct {
	RootFolderID   models.FolderID `json:"rootFolderId"`
	FoldersCreated int             `json:"foldersCreated"`
}
