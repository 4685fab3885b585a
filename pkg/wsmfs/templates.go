package wsmfs

import (
	"context"

	"github.com/jcd386/WSM-File-System/pkg/models"
	"github.com/jcd386/WSM-File-System/pkg/tree"
)

// templateWalker is the integrity engine view of one template set's tree.
// All lookups stay scoped to the set, so a template folder can never be
// moved under a folder of another set.
func (s *Service) templateWalker() *tree.Walker[models.TemplateFolderID] {
	parent := func(ctx context.Context, id models.TemplateFolderID) (models.TemplateFolderID, bool, error) {
		tf, err := s.store.GetTemplateFolder(ctx, id)
		if err != nil {
			return models.TemplateFolderID{}, false, err
		}
		if tf == nil || tf.ParentID == nil {
			return models.TemplateFolderID{}, false, nil
		}
		return *tf.ParentID, true, nil
	}
	children := func(ctx context.Context, id models.TemplateFolderID) ([]models.TemplateFolderID, error) {
		folders, err := s.store.ListChildTemplateFolders(ctx, id)
		if err != nil {
			return nil, err
		}
		ids := make([]models.TemplateFolderID, len(folders))
		for i, tf := range folders {
			ids[i] = tf.ID
		}
		return ids, nil
	}
	return tree.NewWalker(parent, children, s.maxDepth)
}

// CreateTemplateSet registers a new, initially empty template set.
func (s *Service) CreateTemplateSet(ctx context.Context, name string) (*models.TemplateSet, error) {
	if err := models.ValidateName(name); err != nil {
		return nil, validationError("invalid template set name: %v", err)
	}
	set := &models.TemplateSet{Name: name}
	if err := s.store.CreateTemplateSet(ctx, set); err != nil {
		return nil, err
	}
	s.log.Info().Str("templateSet", set.ID.String()).Msg("template set created")
	return set, nil
}

// RenameTemplateSet updates a set's display name; renaming to the current
// name is a no-op.
func (s *Service) RenameTemplateSet(ctx context.Context, id models.TemplateSetID, newName string) (*models.TemplateSet, error) {
	if err := models.ValidateName(newName); err != nil {
		return nil, validationError("invalid template set name: %v", err)
	}
	set, err := s.store.GetTemplateSet(ctx, id)
	if err != nil {
		return nil, err
	}
	if set == nil {
		return nil, notFoundError("template set %s not found", id)
	}
	if set.Name == newName {
		return set, nil
	}
	set.Name = newName
	if err := s.store.UpdateTemplateSet(ctx, set); err != nil {
		return nil, err
	}
	return set, nil
}

// ListTemplateSets returns all sets, name-ordered.
func (s *Service) ListTemplateSets(ctx context.Context) ([]*models.TemplateSet, error) {
	return s.store.ListTemplateSets(ctx)
}

// DeleteTemplateSet removes a set and every template folder in it, in one
// transaction.
func (s *Service) DeleteTemplateSet(ctx context.Context, id models.TemplateSetID) (int, error) {
	set, err := s.store.GetTemplateSet(ctx, id)
	if err != nil {
		return 0, err
	}
	if set == nil {
		return 0, notFoundError("template set %s not found", id)
	}
	folders, err := s.store.ListTemplateFolders(ctx, id)
	if err != nil {
		return 0, err
	}
	ids := make([]models.TemplateFolderID, len(folders))
	for i, tf := range folders {
		ids[i] = tf.ID
	}
	if err := s.store.DeleteTemplateSet(ctx, id, ids); err != nil {
		return 0, err
	}
	s.log.Info().Str("templateSet", id.String()).Int("folders", len(ids)).Msg("template set deleted")
	return len(ids), nil
}

// CreateTemplateFolder adds a folder to a set, optionally under an existing
// parent of the same set.
func (s *Service) CreateTemplateFolder(ctx context.Context, setID models.TemplateSetID, name string, parentID *models.TemplateFolderID) (*models.TemplateFolder, error) {
	if err := models.ValidateName(name); err != nil {
		return nil, validationError("invalid template folder name: %v", err)
	}
	set, err := s.store.GetTemplateSet(ctx, setID)
	if err != nil {
		return nil, err
	}
	if set == nil {
		return nil, notFoundError("template set %s not found", setID)
	}
	if parentID != nil {
		parent, err := s.store.GetTemplateFolder(ctx, *parentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, notFoundError("parent template folder %s not found", parentID)
		}
		if parent.TemplateSetID != setID {
			return nil, validationError("parent template folder belongs to a different template set")
		}
	}

	tf := &models.TemplateFolder{
		Name:          name,
		ParentID:      parentID,
		TemplateSetID: setID,
	}
	if err := s.store.CreateTemplateFolder(ctx, tf); err != nil {
		return nil, err
	}
	return tf, nil
}

// RenameTemplateFolder updates a template folder's name; same no-op rule as
// real folders.
func (s *Service) RenameTemplateFolder(ctx context.Context, id models.TemplateFolderID, newName string) (*models.TemplateFolder, error) {
	if err := models.ValidateName(newName); err != nil {
		return nil, validationError("invalid template folder name: %v", err)
	}
	tf, err := s.store.GetTemplateFolder(ctx, id)
	if err != nil {
		return nil, err
	}
	if tf == nil {
		return nil, notFoundError("template folder %s not found", id)
	}
	if tf.Name == newName {
		return tf, nil
	}
	tf.Name = newName
	if err := s.store.UpdateTemplateFolder(ctx, tf); err != nil {
		return nil, err
	}
	return tf, nil
}

// MoveTemplateFolder re-parents a template folder within its set. Cycle
// rules match MoveFolder; crossing into another set is a validation error.
func (s *Service) MoveTemplateFolder(ctx context.Context, id models.TemplateFolderID, destID *models.TemplateFolderID) error {
	tf, err := s.store.GetTemplateFolder(ctx, id)
	if err != nil {
		return err
	}
	if tf == nil {
		return notFoundError("template folder %s not found", id)
	}

	if destID != nil {
		if *destID == id {
			return cycleError("cannot move a template folder into itself")
		}
		dest, err := s.store.GetTemplateFolder(ctx, *destID)
		if err != nil {
			return err
		}
		if dest == nil {
			return notFoundError("destination template folder %s not found", destID)
		}
		if dest.TemplateSetID != tf.TemplateSetID {
			return validationError("destination belongs to a different template set")
		}
		descendant, err := s.templateWalker().IsDescendant(ctx, id, *destID)
		if err != nil {
			return wrapWalkErr(err)
		}
		if descendant {
			return cycleError("cannot move a template folder into its own descendant")
		}
	}

	tf.ParentID = destID
	return s.store.UpdateTemplateFolder(ctx, tf)
}

// DeleteTemplateFolder removes a template folder and its descendants in one
// transaction. Returns the number of folders removed, the target included.
func (s *Service) DeleteTemplateFolder(ctx context.Context, id models.TemplateFolderID) (int, error) {
	tf, err := s.store.GetTemplateFolder(ctx, id)
	if err != nil {
		return 0, err
	}
	if tf == nil {
		return 0, notFoundError("template folder %s not found", id)
	}
	descendants, err := s.templateWalker().Descendants(ctx, id)
	if err != nil {
		return 0, wrapWalkErr(err)
	}
	ids := append([]models.TemplateFolderID{id}, descendants...)
	if err := s.store.DeleteTemplateFolders(ctx, ids); err != nil {
		return 0, err
	}
	return len(ids), nil
}

// GetTemplateChildCount reports how many descendants a cascade delete of the
// template folder would remove, the folder itself excluded.
func (s *Service) GetTemplateChildCount(ctx context.Context, id models.TemplateFolderID) (int, error) {
	tf, err := s.store.GetTemplateFolder(ctx, id)
	if err != nil {
		return 0, err
	}
	if tf == nil {
		return 0, notFoundError("template folder %s not found", id)
	}
	descendants, err := s.templateWalker().Descendants(ctx, id)
	if err != nil {
		return 0, wrapWalkErr(err)
	}
	return len(descendants), nil
}

// GetMoveTargets lists the template folders of the same set that the given
// folder may legally move under: every folder except itself and its own
// descendants.
func (s *Service) GetMoveTargets(ctx context.Context, id models.TemplateFolderID) ([]*models.TemplateFolder, error) {
	tf, err := s.store.GetTemplateFolder(ctx, id)
	if err != nil {
		return nil, err
	}
	if tf == nil {
		return nil, notFoundError("template folder %s not found", id)
	}
	descendants, err := s.templateWalker().Descendants(ctx, id)
	if err != nil {
		return nil, wrapWalkErr(err)
	}
	excluded := make(map[models.TemplateFolderID]struct{}, len(descendants)+1)
	excluded[id] = struct{}{}
	for _, d := range descendants {
		excluded[d] = struct{}{}
	}

	all, err := s.store.ListTemplateFolders(ctx, tf.TemplateSetID)
	if err != nil {
		return nil, err
	}
	targets := make([]*models.TemplateFolder, 0, len(all))
	for _, candidate := range all {
		if _, skip := excluded[candidate.ID]; skip {
			continue
		}
		targets = append(targets, candidate)
	}
	return targets, nil
}

// ListTemplateTree returns the root template folders of a set, name-ordered.
// Children are fetched per level via ListChildTemplateFolders.
func (s *Service) ListTemplateTree(ctx context.Context, setID models.TemplateSetID) ([]*models.TemplateFolder, error) {
	set, err := s.store.GetTemplateSet(ctx, setID)
	if err != nil {
		return nil, err
	}
	if set == nil {
		return nil, notFoundError("template set %s not found", setID)
	}
	return s.store.ListRootTemplateFolders(ctx, setID)
}

// ApplyTemplate materializes a template set as real folders under the target
// anchor. A synthetic root named rootName is created first; every root
// template folder hangs beneath it. When parentAnchor is given, the synthetic
// root is attached under the first root folder (by name) of that anchor,
// establishing the cross-record link.
//
// The walk is depth-first and creates siblings in name order, so the clone
// preserves the template's shape exactly. The walk is intentionally not
// wrapped in one transaction: a mid-walk failure leaves the partial subtree
// in place and returns the synthetic root's id alongside the error so the
// caller can cascade-delete it.
func (s *Service) ApplyTemplate(ctx context.Context, setID models.TemplateSetID, anchor models.AnchorID, parentAnchor *models.AnchorID, rootName, createdBy string) (*ApplyResult, error) {
	if err := models.ValidateName(rootName); err != nil {
		return nil, validationError("invalid root folder name: %v", err)
	}
	if anchor.IsZero() {
		return nil, validationError("target anchor record id is required")
	}
	set, err := s.store.GetTemplateSet(ctx, setID)
	if err != nil {
		return nil, err
	}
	if set == nil {
		return nil, notFoundError("template set %s not found", setID)
	}

	var rootParentID *models.FolderID
	if parentAnchor != nil && !parentAnchor.IsZero() {
		parents, err := s.store.ListRootFolders(ctx, *parentAnchor)
		if err != nil {
			return nil, err
		}
		if len(parents) == 0 {
			return nil, notFoundError("parent anchor %s has no root folder to attach under", *parentAnchor)
		}
		rootParentID = &parents[0].ID
	}

	root, err := s.CreateFolder(ctx, rootName, anchor, rootParentID, createdBy)
	if err != nil {
		return nil, err
	}
	result := &ApplyResult{RootFolderID: root.ID, FoldersCreated: 1}

	templateRoots, err := s.store.ListRootTemplateFolders(ctx, setID)
	if err != nil {
		return result, err
	}
	for _, tr := range templateRoots {
		if err := s.cloneTemplateFolder(ctx, tr, root.ID, anchor, createdBy, result, 0); err != nil {
			return result, err
		}
	}

	s.log.Info().
		Str("templateSet", setID.String()).
		Str("anchor", anchor.String()).
		Str("root", root.ID.String()).
		Int("created", result.FoldersCreated).
		Msg("template applied")
	return result, nil
}

// cloneTemplateFolder creates the real folder for one template node, then
// recurses into its children. The parent's real folder always exists before
// any child is created.
func (s *Service) cloneTemplateFolder(ctx context.Context, tf *models.TemplateFolder, realParent models.FolderID, anchor models.AnchorID, createdBy string, result *ApplyResult, depth int) error {
	if depth >= s.maxDepth {
		return structuralError(tree.ErrDepthExceeded)
	}
	folder, err := s.CreateFolder(ctx, tf.Name, anchor, &realParent, createdBy)
	if err != nil {
		return err
	}
	result.FoldersCreated++

	children, err := s.store.ListChildTemplateFolders(ctx, tf.ID)
	if err != nil {
		return err
	}
	for _, child := range children {
		if err := s.cloneTemplateFolder(ctx, child, folder.ID, anchor, createdBy, result, depth+1); err != nil {
			return err
		}
	}
	return nil
}
