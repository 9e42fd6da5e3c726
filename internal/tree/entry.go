// Package tree renders directory listings as indented text trees.
package tree

// directoryMarker is appended to the displayed name of every directory.
const directoryMarker = "/"

// EntryKind discriminates directories from every other filesystem entry.
type EntryKind int

const (
	// EntryKindDirectory marks an entry that can be descended into.
	EntryKindDirectory EntryKind = iota + 1
	// EntryKindFile marks any non-directory entry.
	EntryKindFile
)

// Entry is one child of a listed directory.
type Entry struct {
	Name string
	Kind EntryKind
}

// Line is one rendered entry of a tree.
type Line struct {
	Depth int
	Name  string
	Kind  EntryKind
	// Last is set on the final sibling at its level.
	Last bool
}

// DisplayName returns the entry name with the directory marker applied.
func (line Line) DisplayName() string {
	if line.Kind == EntryKindDirectory {
		return line.Name + directoryMarker
	}
	return line.Name
}

// Filesystem is the read-only surface the renderer needs from a filesystem.
type Filesystem interface {
	// Exists reports whether path names an existing location.
	Exists(path string) (bool, error)
	// ListNames returns the immediate child names of a directory in enumeration order.
	ListNames(path string) ([]string, error)
	// IsDirectory reports whether path resolves to a directory.
	IsDirectory(path string) (bool, error)
}
