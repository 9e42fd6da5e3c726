package tree

import (
	"fmt"
	"strings"
)

const (
	latexPreamble  = `\dirtree{%`
	latexPostamble = "}"
	latexRootLevel = 1

	// errorAssembleDocumentFormat is used when a document is assembled with an unsupported notation.
	errorAssembleDocumentFormat = "assembling %s document: %w"
)

// DocumentRoot describes the line that heads a rendered document.
type DocumentRoot struct {
	Name        string
	IsDirectory bool
	// EscapeLaTeX escapes the root name in LaTeX notation.
	EscapeLaTeX bool
}

func (root DocumentRoot) displayName() string {
	if root.IsDirectory {
		return root.Name + directoryMarker
	}
	return root.Name
}

// AssembleDocument prefixes body with the root line and wraps it for the notation.
func AssembleDocument(root DocumentRoot, body string, notation Notation) (string, error) {
	var builder strings.Builder
	switch notation {
	case NotationPlainText:
		builder.WriteString(root.displayName())
		builder.WriteString(LineBreak)
		builder.WriteString(body)
	case NotationLaTeXDirTree:
		rootName := root.displayName()
		if root.EscapeLaTeX {
			rootName = EscapeLaTeX(rootName)
		}
		builder.WriteString(latexPreamble)
		builder.WriteString(LineBreak)
		builder.WriteString(latexEntry(latexRootLevel, rootName))
		builder.WriteString(LineBreak)
		builder.WriteString(body)
		builder.WriteString(latexPostamble)
	default:
		return "", fmt.Errorf(errorAssembleDocumentFormat, notation, ErrUnknownNotation)
	}
	return builder.String(), nil
}
