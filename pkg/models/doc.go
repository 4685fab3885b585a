// Package models defines the domain entities for the anchored folder/file
// tree and its template counterpart.
//
// The data model follows the flat self-referential table pattern: every
// [Folder] and [TemplateFolder] row carries a nullable parent reference, and
// the tree exists only implicitly through those references plus the traversal
// operations in the tree package. No nested structure is persisted.
//
//   - [Folder]: one node of a real hierarchy, anchored to a business record
//     through its [AnchorID]. Cross-record anchoring is legal: a folder's
//     parent may belong to a different anchor, which is how two business
//     records share one conceptual tree.
//   - [File]: a leaf attached to exactly one folder. File bytes live in an
//     external blob store; [File.ContentRef] is the opaque reference.
//   - [TemplateSet] / [TemplateFolder]: an unanchored blueprint tree that the
//     template service clones into real folders.
//
// # Typed IDs
//
// Each entity has a strongly typed identifier ([FolderID], [FileID],
// [TemplateSetID], [TemplateFolderID]) wrapping a UUID. The typed IDs
// implement JSON marshalling, driver.Valuer and sql.Scanner, so they pass
// through the HTTP layer and GORM without manual conversion. [AnchorID] is a
// plain string key because anchor records belong to an external system.
package models
