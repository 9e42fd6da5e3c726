// Package clipboard copies rendered trees to the system clipboard.
package clipboard

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
)

// errorClipboardUnavailableFormat reports a platform without clipboard support.
const errorClipboardUnavailableFormat = "system clipboard unavailable: %w"

// errUnsupported is wrapped when the platform has no clipboard utility.
var errUnsupported = errors.New("no clipboard utility found")

// Copier copies textual data to a clipboard.
type Copier interface {
	Copy(text string) error
}

// Service implements Copier using github.com/atotto/clipboard.
type Service struct {
	writeAll    func(text string) error
	unsupported bool
}

// NewService constructs a system clipboard Service.
func NewService() *Service {
	return &Service{writeAll: clipboard.WriteAll, unsupported: clipboard.Unsupported}
}

// Copy writes text to the system clipboard.
func (service *Service) Copy(text string) error {
	if service.unsupported {
		return fmt.Errorf(errorClipboardUnavailableFormat, errUnsupported)
	}
	return service.writeAll(text)
}

var _ Copier = (*Service)(nil)
