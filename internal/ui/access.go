package ui

import (
	"fmt"
	"strings"
)

// Access is the dashboard mode. Viewer is read-only; Editor adds the
// editable grid and the save action.
type Access string

const (
	AccessViewer Access = "Viewer"
	AccessEditor Access = "Editor"
)

// ParseAccess matches an access level case-insensitively.
func ParseAccess(s string) (Access, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "viewer", "view", "":
		return AccessViewer, nil
	case "editor", "edit":
		return AccessEditor, nil
	}
	return "", fmt.Errorf("invalid access level %q, must be viewer or editor", s)
}

// Toggle returns the other access level.
func (a Access) Toggle() Access {
	if a == AccessEditor {
		return AccessViewer
	}
	return AccessEditor
}
