package filesystem

import (
	"path/filepath"

	"github.com/temirov/treetext/internal/tree"
	"github.com/temirov/treetext/internal/utils"
)

// IgnoringFilesystem hides entries whose path relative to a root matches ignore patterns.
type IgnoringFilesystem struct {
	tree.Filesystem
	rootPath string
	matcher  *utils.IgnoreMatcher
}

// NewIgnoringFilesystem decorates base so that listings under rootPath omit ignored names.
func NewIgnoringFilesystem(base tree.Filesystem, rootPath string, ignorePatterns []string) *IgnoringFilesystem {
	return &IgnoringFilesystem{
		Filesystem: base,
		rootPath:   rootPath,
		matcher:    utils.NewIgnoreMatcher(ignorePatterns),
	}
}

// ListNames lists path through the wrapped filesystem and drops ignored names.
func (filesystem *IgnoringFilesystem) ListNames(path string) ([]string, error) {
	names, listError := filesystem.Filesystem.ListNames(path)
	if listError != nil {
		return nil, listError
	}
	visibleNames := names[:0]
	for _, name := range names {
		relativePath := utils.RelativePathOrSelf(filepath.Join(path, name), filesystem.rootPath)
		if filesystem.matcher.Matches(relativePath) {
			continue
		}
		visibleNames = append(visibleNames, name)
	}
	return visibleNames, nil
}

var _ tree.Filesystem = (*IgnoringFilesystem)(nil)
