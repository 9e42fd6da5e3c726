package tree

import (
	"errors"
	"fmt"
	"strings"
)

// Notation selects the output dialect of a rendered tree.
type Notation int

const (
	// NotationPlainText renders box-drawing connectors.
	NotationPlainText Notation = iota + 1
	// NotationLaTeXDirTree renders entries of a LaTeX dirtree block.
	NotationLaTeXDirTree
)

const (
	// NotationNamePlainText is the canonical name of NotationPlainText.
	NotationNamePlainText = "ascii"
	// NotationNameLaTeXDirTree is the canonical name of NotationLaTeXDirTree.
	NotationNameLaTeXDirTree = "latex"

	notationLabelPlainText    = "ASCII"
	notationLabelLaTeXDirTree = "LaTeX (DirTree)"
	notationLabelUnknown      = "unknown"

	errorParseNotationFormat = "%w %q (expected %s or %s)"
)

// ErrUnknownNotation is returned for notation values outside the supported set.
var ErrUnknownNotation = errors.New("unknown notation")

var notationAliases = map[string]Notation{
	NotationNamePlainText:    NotationPlainText,
	"plain":                  NotationPlainText,
	"text":                   NotationPlainText,
	NotationNameLaTeXDirTree: NotationLaTeXDirTree,
	"dirtree":                NotationLaTeXDirTree,
}

// ParseNotation resolves a user-supplied notation name.
func ParseNotation(value string) (Notation, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	if notation, known := notationAliases[normalized]; known {
		return notation, nil
	}
	return 0, fmt.Errorf(errorParseNotationFormat, ErrUnknownNotation, value, NotationNamePlainText, NotationNameLaTeXDirTree)
}

// IsValid reports whether the notation is one of the supported values.
func (notation Notation) IsValid() bool {
	return notation == NotationPlainText || notation == NotationLaTeXDirTree
}

// String returns the canonical notation name.
func (notation Notation) String() string {
	switch notation {
	case NotationPlainText:
		return NotationNamePlainText
	case NotationLaTeXDirTree:
		return NotationNameLaTeXDirTree
	default:
		return notationLabelUnknown
	}
}

// Label returns the human-readable notation name.
func (notation Notation) Label() string {
	switch notation {
	case NotationPlainText:
		return notationLabelPlainText
	case NotationLaTeXDirTree:
		return notationLabelLaTeXDirTree
	default:
		return notationLabelUnknown
	}
}
