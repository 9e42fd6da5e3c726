package tree

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"
)

const (
	// LineBreak terminates every rendered line.
	LineBreak = "\n"

	// errorCheckPathFormat is used when the existence of a path cannot be determined.
	errorCheckPathFormat = "checking path %s: %w"
	// errorListDirectoryFormat is used when a directory cannot be listed.
	errorListDirectoryFormat = "listing directory %s: %w"
	// errorInspectEntryFormat is used when an entry cannot be classified.
	errorInspectEntryFormat = "inspecting %s: %w"
	// errorFormatNotationFormat is used when a line is formatted with an unsupported notation.
	errorFormatNotationFormat = "formatting %s tree: %w"
)

// errNilFilesystem is returned when a renderer has no filesystem to read from.
var errNilFilesystem = errors.New("tree renderer has no filesystem")

// Renderer walks a directory through a Filesystem and formats the result.
type Renderer struct {
	Filesystem Filesystem
	// MaxDepth limits the emitted depth when positive. Zero renders every level.
	MaxDepth int
	// EscapeLaTeX escapes LaTeX special characters in LaTeX notation.
	EscapeLaTeX bool
	// NormalizeNames converts displayed names to Unicode NFC.
	NormalizeNames bool
}

// Render produces the tree body for rootPath in the requested notation.
// A missing rootPath yields an empty body.
func (renderer *Renderer) Render(rootPath string, notation Notation) (string, error) {
	if !notation.IsValid() {
		return "", fmt.Errorf(errorFormatNotationFormat, notation, ErrUnknownNotation)
	}
	lines, linesError := renderer.Lines(rootPath)
	if linesError != nil {
		return "", linesError
	}
	return renderer.FormatLines(lines, notation)
}

// Lines walks rootPath depth-first and returns one Line per descendant in pre-order.
// Directories precede files at every level; each group keeps the enumeration order.
func (renderer *Renderer) Lines(rootPath string) ([]Line, error) {
	if renderer.Filesystem == nil {
		return nil, errNilFilesystem
	}
	return renderer.collectLines(rootPath, 0, nil)
}

// FormatLines renders lines in the requested notation, one LineBreak-terminated row per line.
func (renderer *Renderer) FormatLines(lines []Line, notation Notation) (string, error) {
	formatLine, formatterError := renderer.lineFormatter(notation)
	if formatterError != nil {
		return "", formatterError
	}
	var builder strings.Builder
	for _, line := range lines {
		builder.WriteString(formatLine(line))
		builder.WriteString(LineBreak)
	}
	return builder.String(), nil
}

// collectLines appends the lines of directoryPath at the given depth.
func (renderer *Renderer) collectLines(directoryPath string, depth int, lines []Line) ([]Line, error) {
	exists, existsError := renderer.Filesystem.Exists(directoryPath)
	if existsError != nil {
		return nil, fmt.Errorf(errorCheckPathFormat, directoryPath, existsError)
	}
	if !exists {
		return lines, nil
	}

	entries, listError := renderer.listEntries(directoryPath)
	if listError != nil {
		return nil, listError
	}

	lastIndex := len(entries) - 1
	for index, entry := range entries {
		lines = append(lines, Line{
			Depth: depth,
			Name:  renderer.displayName(entry.Name),
			Kind:  entry.Kind,
			Last:  index == lastIndex,
		})
		if entry.Kind != EntryKindDirectory || !renderer.descends(depth) {
			continue
		}
		var childError error
		lines, childError = renderer.collectLines(filepath.Join(directoryPath, entry.Name), depth+1, lines)
		if childError != nil {
			return nil, childError
		}
	}
	return lines, nil
}

// listEntries returns the children of directoryPath with directories first.
func (renderer *Renderer) listEntries(directoryPath string) ([]Entry, error) {
	names, listError := renderer.Filesystem.ListNames(directoryPath)
	if listError != nil {
		return nil, fmt.Errorf(errorListDirectoryFormat, directoryPath, listError)
	}

	directories := make([]Entry, 0, len(names))
	var files []Entry
	for _, name := range names {
		childPath := filepath.Join(directoryPath, name)
		isDirectory, inspectError := renderer.Filesystem.IsDirectory(childPath)
		if inspectError != nil {
			return nil, fmt.Errorf(errorInspectEntryFormat, childPath, inspectError)
		}
		if isDirectory {
			directories = append(directories, Entry{Name: name, Kind: EntryKindDirectory})
		} else {
			files = append(files, Entry{Name: name, Kind: EntryKindFile})
		}
	}
	return append(directories, files...), nil
}

// descends reports whether children of a directory at depth should be listed.
func (renderer *Renderer) descends(depth int) bool {
	return renderer.MaxDepth <= 0 || depth+1 < renderer.MaxDepth
}

// RootName returns the displayed name of rootPath's final element.
func (renderer *Renderer) RootName(rootPath string) string {
	return renderer.displayName(filepath.Base(rootPath))
}

func (renderer *Renderer) displayName(name string) string {
	if renderer.NormalizeNames {
		return norm.NFC.String(name)
	}
	return name
}
