// Package filesystem provides the read-only filesystem access used to render trees.
package filesystem

import (
	"fmt"
	"os"

	"github.com/spf13/afero"

	"github.com/temirov/treetext/internal/tree"
)

const (
	// readAllNames requests every entry from Readdirnames.
	readAllNames = -1

	errorOpenDirectoryFormat  = "open %s: %w"
	errorReadDirectoryFormat  = "read names of %s: %w"
	errorCloseDirectoryFormat = "close %s: %w"
)

// Service implements tree.Filesystem on top of an afero filesystem.
type Service struct {
	fileSystem afero.Fs
}

// NewService wraps fileSystem.
func NewService(fileSystem afero.Fs) *Service {
	return &Service{fileSystem: fileSystem}
}

// NewOSService returns a Service backed by the operating system filesystem.
func NewOSService() *Service {
	return NewService(afero.NewOsFs())
}

// Exists reports whether path names an existing location.
func (service *Service) Exists(path string) (bool, error) {
	return afero.Exists(service.fileSystem, path)
}

// ListNames returns the child names of a directory in the order the filesystem yields them.
func (service *Service) ListNames(path string) (names []string, err error) {
	directoryHandle, openError := service.fileSystem.Open(path)
	if openError != nil {
		return nil, fmt.Errorf(errorOpenDirectoryFormat, path, openError)
	}
	defer func() {
		if closeError := directoryHandle.Close(); closeError != nil && err == nil {
			err = fmt.Errorf(errorCloseDirectoryFormat, path, closeError)
		}
	}()

	names, readError := directoryHandle.Readdirnames(readAllNames)
	if readError != nil {
		return nil, fmt.Errorf(errorReadDirectoryFormat, path, readError)
	}
	return names, nil
}

// IsDirectory reports whether path resolves to a directory, following symbolic links.
func (service *Service) IsDirectory(path string) (bool, error) {
	fileInformation, statError := service.fileSystem.Stat(path)
	if statError != nil {
		return false, statError
	}
	return fileInformation.Mode()&os.ModeDir != 0, nil
}

var _ tree.Filesystem = (*Service)(nil)
