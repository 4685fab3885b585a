package wsmfs

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jcd386/WSM-File-System/pkg/models"
	"github.com/jcd386/WSM-File-System/pkg/store"
	"github.com/jcd386/WSM-File-System/pkg/tree"
)

// Service implements the folder/file and template operation set on top of
// the node store. It is stateless between calls: every structural query
// re-reads the store, and the store's transactions are the only concurrency
// control. Validation and cycle checks run before any mutation is issued.
type Service struct {
	store    store.Store
	maxDepth int
	log      zerolog.Logger
	events   *Hub
}

// NewService creates a service over the given store. maxDepth bounds every
// tree traversal (<= 0 selects the default); events may be nil when no
// change feed is attached.
func NewService(st store.Store, maxDepth int, log zerolog.Logger, events *Hub) *Service {
	if maxDepth <= 0 {
		maxDepth = tree.DefaultMaxDepth
	}
	return &Service{store: st, maxDepth: maxDepth, log: log, events: events}
}

// folderWalker builds the integrity engine view of the real folder tree.
// Parent lookups deliberately ignore anchors: a chain may cross record
// boundaries.
func (s *Service) folderWalker() *tree.Walker[models.FolderID] {
	parent := func(ctx context.Context, id models.FolderID) (models.FolderID, bool, error) {
		f, err := s.store.GetFolder(ctx, id)
		if err != nil {
			return models.FolderID{}, false, err
		}
		if f == nil || f.ParentFolderID == nil {
			return models.FolderID{}, false, nil
		}
		return *f.ParentFolderID, true, nil
	}
	children := func(ctx context.Context, id models.FolderID) ([]models.FolderID, error) {
		folders, err := s.store.ListChildFolders(ctx, id)
		if err != nil {
			return nil, err
		}
		ids := make([]models.FolderID, len(folders))
		for i, f := range folders {
			ids[i] = f.ID
		}
		return ids, nil
	}
	return tree.NewWalker(parent, children, s.maxDepth)
}

// ListContents returns the child folders and files of folderID, or the root
// folders of the anchor when folderID is nil. Folders come first, each group
// name-ordered. An empty listing is a valid result.
func (s *Service) ListContents(ctx context.Context, anchor models.AnchorID, folderID *models.FolderID) ([]Node, error) {
	var folders []*models.Folder
	var files []*models.File
	var err error

	if folderID == nil {
		folders, err = s.store.ListRootFolders(ctx, anchor)
		if err != nil {
			return nil, err
		}
	} else {
		folder, err := s.store.GetFolder(ctx, *folderID)
		if err != nil {
			return nil, err
		}
		if folder == nil {
			return nil, notFoundError("folder %s not found", folderID)
		}
		folders, err = s.store.ListChildFolders(ctx, *folderID)
		if err != nil {
			return nil, err
		}
		files, err = s.store.ListFilesInFolder(ctx, *folderID)
		if err != nil {
			return nil, err
		}
	}

	nodes := make([]Node, 0, len(folders)+len(files))
	for _, f := range folders {
		nodes = append(nodes, folderNode(f))
	}
	for _, f := range files {
		nodes = append(nodes, fileNode(f))
	}
	return nodes, nil
}

// CreateFolder validates the name, checks the parent, and persists a new
// folder under the anchor.
func (s *Service) CreateFolder(ctx context.Context, name string, anchor models.AnchorID, parentID *models.FolderID, createdBy string) (*models.Folder, error) {
	if err := models.ValidateName(name); err != nil {
		return nil, validationError("invalid folder name: %v", err)
	}
	if anchor.IsZero() {
		return nil, validationError("anchor record id is required")
	}
	if parentID != nil {
		parent, err := s.store.GetFolder(ctx, *parentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, notFoundError("parent folder %s not found", parentID)
		}
	}

	folder := &models.Folder{
		Name:           name,
		ParentFolderID: parentID,
		AnchorID:       anchor,
		CreatedBy:      createdBy,
	}
	if err := s.store.CreateFolder(ctx, folder); err != nil {
		return nil, err
	}
	s.log.Info().Str("folder", folder.ID.String()).Str("anchor", anchor.String()).Msg("folder created")
	s.publishFolder(EventCreated, folder)
	return folder, nil
}

// RenameFolder updates a folder's display name. Renaming to the current
// exact name is a no-op: it succeeds without touching the store, so no
// timestamp changes.
func (s *Service) RenameFolder(ctx context.Context, id models.FolderID, newName string) (*models.Folder, error) {
	if err := models.ValidateName(newName); err != nil {
		return nil, validationError("invalid folder name: %v", err)
	}
	folder, err := s.store.GetFolder(ctx, id)
	if err != nil {
		return nil, err
	}
	if folder == nil {
		return nil, notFoundError("folder %s not found", id)
	}
	if folder.Name == newName {
		return folder, nil
	}

	folder.Name = newName
	if err := s.store.UpdateFolder(ctx, folder); err != nil {
		return nil, err
	}
	s.publishFolder(EventRenamed, folder)
	return folder, nil
}

// MoveFolder re-parents a folder. A nil destination moves it to the root of
// its anchor. The move is rejected with a CycleError when the destination is
// the folder itself or any of its descendants; a rejected move leaves the
// store unchanged.
func (s *Service) MoveFolder(ctx context.Context, id models.FolderID, destID *models.FolderID) error {
	folder, err := s.store.GetFolder(ctx, id)
	if err != nil {
		return err
	}
	if folder == nil {
		return notFoundError("folder %s not found", id)
	}

	if destID != nil {
		if *destID == id {
			return cycleError("cannot move a folder into itself")
		}
		dest, err := s.store.GetFolder(ctx, *destID)
		if err != nil {
			return err
		}
		if dest == nil {
			return notFoundError("destination folder %s not found", destID)
		}
		descendant, err := s.folderWalker().IsDescendant(ctx, id, *destID)
		if err != nil {
			return wrapWalkErr(err)
		}
		if descendant {
			return cycleError("cannot move a folder into its own descendant")
		}
	}

	folder.ParentFolderID = destID
	if err := s.store.UpdateFolder(ctx, folder); err != nil {
		return err
	}
	s.publishFolder(EventMoved, folder)
	return nil
}

// collectCascade gathers the full delete set rooted at id: the folder, every
// descendant folder in parent-before-child order, and every file inside any
// of them.
func (s *Service) collectCascade(ctx context.Context, id models.FolderID) ([]models.FolderID, []models.FileID, error) {
	descendants, err := s.folderWalker().Descendants(ctx, id)
	if err != nil {
		return nil, nil, wrapWalkErr(err)
	}
	folderIDs := append([]models.FolderID{id}, descendants...)

	var fileIDs []models.FileID
	for _, fid := range folderIDs {
		files, err := s.store.ListFilesInFolder(ctx, fid)
		if err != nil {
			return nil, nil, err
		}
		for _, f := range files {
			fileIDs = append(fileIDs, f.ID)
		}
	}
	return folderIDs, fileIDs, nil
}

// DeleteFolder removes a folder and, atomically, everything transitively
// nested beneath it. It returns the number of nodes removed, the folder
// itself included. No partial cascade is ever observable.
func (s *Service) DeleteFolder(ctx context.Context, id models.FolderID) (int, error) {
	folder, err := s.store.GetFolder(ctx, id)
	if err != nil {
		return 0, err
	}
	if folder == nil {
		return 0, notFoundError("folder %s not found", id)
	}

	folderIDs, fileIDs, err := s.collectCascade(ctx, id)
	if err != nil {
		return 0, err
	}
	if err := s.store.DeleteFolderTree(ctx, folderIDs, fileIDs); err != nil {
		return 0, err
	}
	removed := len(folderIDs) + len(fileIDs)
	s.log.Info().Str("folder", id.String()).Int("removed", removed).Msg("folder cascade deleted")
	s.publishFolder(EventDeleted, folder)
	return removed, nil
}

// GetFolderContentsCount returns how many nodes (descendant folders plus
// files) a cascade delete of the folder would remove, excluding the folder
// itself. Clients use it to warn before confirming a delete.
func (s *Service) GetFolderContentsCount(ctx context.Context, id models.FolderID) (int, error) {
	folder, err := s.store.GetFolder(ctx, id)
	if err != nil {
		return 0, err
	}
	if folder == nil {
		return 0, notFoundError("folder %s not found", id)
	}
	folderIDs, fileIDs, err := s.collectCascade(ctx, id)
	if err != nil {
		return 0, err
	}
	return len(folderIDs) - 1 + len(fileIDs), nil
}

// CreateFileRecord registers a file inside a folder. The bytes themselves
// are already in the external blob store; contentRef points at them.
func (s *Service) CreateFileRecord(ctx context.Context, name string, folderID models.FolderID, contentRef, createdBy string) (*models.File, error) {
	if err := models.ValidateName(name); err != nil {
		return nil, validationError("invalid file name: %v", err)
	}
	folder, err := s.store.GetFolder(ctx, folderID)
	if err != nil {
		return nil, err
	}
	if folder == nil {
		return nil, notFoundError("folder %s not found", folderID)
	}

	file := &models.File{
		Name:       name,
		FolderID:   folderID,
		ContentRef: contentRef,
		CreatedBy:  createdBy,
	}
	if err := s.store.CreateFile(ctx, file); err != nil {
		return nil, err
	}
	s.publishFile(EventCreated, file)
	return file, nil
}

// MoveFile re-parents a file. Files are always leaves, so no cycle check is
// needed; only existence of both ends.
func (s *Service) MoveFile(ctx context.Context, id models.FileID, destFolderID models.FolderID) error {
	file, err := s.store.GetFile(ctx, id)
	if err != nil {
		return err
	}
	if file == nil {
		return notFoundError("file %s not found", id)
	}
	dest, err := s.store.GetFolder(ctx, destFolderID)
	if err != nil {
		return err
	}
	if dest == nil {
		return notFoundError("destination folder %s not found", destFolderID)
	}

	file.FolderID = destFolderID
	if err := s.store.UpdateFile(ctx, file); err != nil {
		return err
	}
	s.publishFile(EventMoved, file)
	return nil
}

// DeleteFile removes a single file record. The blob itself is owned by the
// external store and is not touched here.
func (s *Service) DeleteFile(ctx context.Context, id models.FileID) error {
	file, err := s.store.GetFile(ctx, id)
	if err != nil {
		return err
	}
	if file == nil {
		return notFoundError("file %s not found", id)
	}
	if err := s.store.DeleteFile(ctx, id); err != nil {
		return err
	}
	s.publishFile(EventDeleted, file)
	return nil
}

// SearchFolders matches folder names case-insensitively across all anchors.
// An empty or whitespace term returns an empty result, not an error. Each
// match carries its breadcrumb path for disambiguation.
func (s *Service) SearchFolders(ctx context.Context, term string) ([]SearchMatch, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return []SearchMatch{}, nil
	}

	folders, err := s.store.SearchFolders(ctx, term)
	if err != nil {
		return nil, err
	}

	matches := make([]SearchMatch, 0, len(folders))
	for _, f := range folders {
		path, err := s.breadcrumbPath(ctx, f)
		if err != nil {
			return nil, err
		}
		matches = append(matches, SearchMatch{
			ID:       f.ID.String(),
			Name:     f.Name,
			AnchorID: f.AnchorID.String(),
			Path:     path,
		})
	}
	return matches, nil
}

// breadcrumbPath renders the root-to-folder name chain.
func (s *Service) breadcrumbPath(ctx context.Context, folder *models.Folder) (string, error) {
	chain, err := s.folderWalker().AncestorChain(ctx, folder.ID)
	if err != nil {
		return "", wrapWalkErr(err)
	}
	// chain runs node->root; render root->node.
	names := make([]string, 0, len(chain))
	for i := len(chain) - 1; i >= 0; i-- {
		f, err := s.store.GetFolder(ctx, chain[i])
		if err != nil {
			return "", err
		}
		if f == nil {
			continue
		}
		names = append(names, f.Name)
	}
	return strings.Join(names, " / "), nil
}

// GetParentFolderInfo reports the cross-record anchoring link of an anchor's
// hierarchy: the folder, anchored to a different record, that this anchor's
// tree hangs beneath. A nil result means the hierarchy stands alone; that is
// not an error.
func (s *Service) GetParentFolderInfo(ctx context.Context, anchor models.AnchorID) (*ParentLink, error) {
	folders, err := s.store.ListFoldersByAnchor(ctx, anchor)
	if err != nil {
		return nil, err
	}
	for _, f := range folders {
		if f.ParentFolderID == nil {
			continue
		}
		parent, err := s.store.GetFolder(ctx, *f.ParentFolderID)
		if err != nil {
			return nil, err
		}
		if parent != nil && parent.AnchorID != anchor {
			return &ParentLink{FolderID: parent.ID, FolderName: parent.Name, AnchorID: parent.AnchorID}, nil
		}
	}
	return nil, nil
}

// GetFolderParentInfo walks a folder's ancestor chain until the anchor
// changes and reports the folder on the far side of that boundary. Folders
// whose chain ends at a root without crossing a record boundary get a nil
// result.
func (s *Service) GetFolderParentInfo(ctx context.Context, id models.FolderID) (*ParentLink, error) {
	current, err := s.store.GetFolder(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, notFoundError("folder %s not found", id)
	}

	for depth := 0; depth < s.maxDepth; depth++ {
		if current.ParentFolderID == nil {
			return nil, nil
		}
		parent, err := s.store.GetFolder(ctx, *current.ParentFolderID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, nil
		}
		if parent.AnchorID != current.AnchorID {
			return &ParentLink{FolderID: parent.ID, FolderName: parent.Name, AnchorID: parent.AnchorID}, nil
		}
		current = parent
	}
	return nil, structuralError(tree.ErrDepthExceeded)
}
