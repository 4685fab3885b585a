package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// FolderID is a typed ID for folders
type FolderID struct {
	uuid uuid.UUID
}

func NewFolderID() FolderID {
	return FolderID{uuid: uuid.New()}
}

func NewFolderIDFromUUID(id uuid.UUID) FolderID {
	return FolderID{uuid: id}
}

func ParseFolderID(s string) (FolderID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return FolderID{}, fmt.Errorf("invalid folder ID: %w", err)
	}
	return FolderID{uuid: id}, nil
}

func (f FolderID) UUID() uuid.UUID { return f.uuid }
func (f FolderID) String() string  { return f.uuid.String() }
func (f FolderID) IsZero() bool    { return f.uuid == uuid.Nil }

func (f FolderID) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.uuid.String())
}

func (f *FolderID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return err
	}
	f.uuid = id
	return nil
}

func (f FolderID) Value() (driver.Value, error) {
	if f.IsZero() {
		return nil, nil
	}
	return f.uuid.String(), nil
}

func (f *FolderID) Scan(value any) error {
	return scanUUID(value, &f.uuid)
}

func (FolderID) GormDataType() string { return "uuid" }

// FileID is a typed ID for file records
type FileID struct {
	uuid uuid.UUID
}

func NewFileID() FileID {
	return FileID{uuid: uuid.New()}
}

func NewFileIDFromUUID(id uuid.UUID) FileID {
	return FileID{uuid: id}
}

func ParseFileID(s string) (FileID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return FileID{}, fmt.Errorf("invalid file ID: %w", err)
	}
	return FileID{uuid: id}, nil
}

func (f FileID) UUID() uuid.UUID { return f.uuid }
func (f FileID) String() string  { return f.uuid.String() }
func (f FileID) IsZero() bool    { return f.uuid == uuid.Nil }

func (f FileID) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.uuid.String())
}

func (f *FileID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return err
	}
	f.uuid = id
	return nil
}

func (f FileID) Value() (driver.Value, error) {
	if f.IsZero() {
		return nil, nil
	}
	return f.uuid.String(), nil
}

func (f *FileID) Scan(value any) error {
	return scanUUID(value, &f.uuid)
}

func (FileID) GormDataType() string { return "uuid" }

// TemplateSetID is a typed ID for template sets
type TemplateSetID struct {
	uuid uuid.UUID
}

func NewTemplateSetID() TemplateSetID {
	return TemplateSetID{uuid: uuid.New()}
}

func NewTemplateSetIDFromUUID(id uuid.UUID) TemplateSetID {
	return TemplateSetID{uuid: id}
}

func ParseTemplateSetID(s string) (TemplateSetID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return TemplateSetID{}, fmt.Errorf("invalid template set ID: %w", err)
	}
	return TemplateSetID{uuid: id}, nil
}

func (t TemplateSetID) UUID() uuid.UUID { return t.uuid }
func (t TemplateSetID) String() string  { return t.uuid.String() }
func (t TemplateSetID) IsZero() bool    { return t.uuid == uuid.Nil }

func (t TemplateSetID) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.uuid.String())
}

func (t *TemplateSetID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return err
	}
	t.uuid = id
	return nil
}

func (t TemplateSetID) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	return t.uuid.String(), nil
}

func (t *TemplateSetID) Scan(value any) error {
	return scanUUID(value, &t.uuid)
}

func (TemplateSetID) GormDataType() string { return "uuid" }

// TemplateFolderID is a typed ID for template folders
type TemplateFolderID struct {
	uuid uuid.UUID
}

func NewTemplateFolderID() TemplateFolderID {
	return TemplateFolderID{uuid: uuid.New()}
}

func NewTemplateFolderIDFromUUID(id uuid.UUID) TemplateFolderID {
	return TemplateFolderID{uuid: id}
}

func ParseTemplateFolderID(s string) (TemplateFolderID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return TemplateFolderID{}, fmt.Errorf("invalid template folder ID: %w", err)
	}
	return TemplateFolderID{uuid: id}, nil
}

func (t TemplateFolderID) UUID() uuid.UUID { return t.uuid }
func (t TemplateFolderID) String() string  { return t.uuid.String() }
func (t TemplateFolderID) IsZero() bool    { return t.uuid == uuid.Nil }

func (t TemplateFolderID) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.uuid.String())
}

func (t *TemplateFolderID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return err
	}
	t.uuid = id
	return nil
}

func (t TemplateFolderID) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	return t.uuid.String(), nil
}

func (t *TemplateFolderID) Scan(value any) error {
	return scanUUID(value, &t.uuid)
}

func (TemplateFolderID) GormDataType() string { return "uuid" }

// AnchorID identifies the business record a folder hierarchy is attached to.
// Anchor records live in an external system of record, so the key is treated
// as an opaque string rather than a UUID.
type AnchorID string

func (a AnchorID) String() string { return string(a) }
func (a AnchorID) IsZero() bool   { return a == "" }

// Helper functions

// scanUUID is a helper for implementing sql.Scanner for the typed IDs
func scanUUID(value any, target *uuid.UUID) error {
	if value == nil {
		*target = uuid.Nil
		return nil
	}

	switch v := value.(type) {
	case string:
		id, err := uuid.Parse(v)
		if err != nil {
			return err
		}
		*target = id
	case []byte:
		id, err := uuid.ParseBytes(v)
		if err != nil {
			return err
		}
		*target = id
	default:
		return fmt.Errorf("cannot scan type %T into UUID", value)
	}
	return nil
}
