package models

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// MaxNameLength is the longest display name accepted for folders, files,
// template folders and template sets.
const MaxNameLength = 80

// forbiddenNameRunes are the characters rejected in display names. The set
// matches the usual filesystem-reserved characters so names stay portable
// when exported to a real filesystem.
const forbiddenNameRunes = `<>:"/\|?*`

// ValidateName checks a display name against the length and character rules.
// The returned error describes the first violation found; callers wrap it
// into their own error kind.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("name must not be empty")
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return fmt.Errorf("name exceeds %d characters", MaxNameLength)
	}
	if i := strings.IndexAny(name, forbiddenNameRunes); i >= 0 {
		return fmt.Errorf("name contains forbidden character %q", name[i])
	}
	return nil
}
