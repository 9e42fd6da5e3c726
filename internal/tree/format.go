package tree

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	plainTextContinuingConnector = "┣ "
	plainTextTerminalConnector   = "┗ "
	plainTextIndent              = "┃ "

	// latexConnector prefixes every dirtree entry.
	latexConnector = "  "
	// latexLevelOffset maps depth zero onto dirtree level two; level one is the root.
	latexLevelOffset = 2
	latexLevelPrefix = "."
	latexTerminator  = " ."
)

var latexEscaper = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	`_`, `\_`,
	`#`, `\#`,
	`%`, `\%`,
	`&`, `\&`,
	`$`, `\$`,
	`{`, `\{`,
	`}`, `\}`,
	`~`, `\textasciitilde{}`,
	`^`, `\textasciicircum{}`,
)

// lineFormatter returns the formatting function for notation.
func (renderer *Renderer) lineFormatter(notation Notation) (func(Line) string, error) {
	switch notation {
	case NotationPlainText:
		return formatPlainTextLine, nil
	case NotationLaTeXDirTree:
		escape := renderer.EscapeLaTeX
		return func(line Line) string {
			return formatLaTeXLine(line, escape)
		}, nil
	default:
		return nil, fmt.Errorf(errorFormatNotationFormat, notation, ErrUnknownNotation)
	}
}

// formatPlainTextLine renders `┃ ` per depth, the sibling connector, then the name.
func formatPlainTextLine(line Line) string {
	connector := plainTextContinuingConnector
	if line.Last {
		connector = plainTextTerminalConnector
	}
	return strings.Repeat(plainTextIndent, line.Depth) + connector + line.DisplayName()
}

// formatLaTeXLine renders a `.N name .` dirtree entry with N = depth + 2.
func formatLaTeXLine(line Line, escape bool) string {
	name := line.DisplayName()
	if escape {
		name = EscapeLaTeX(name)
	}
	return latexEntry(line.Depth+latexLevelOffset, name)
}

func latexEntry(level int, name string) string {
	return latexConnector + latexLevelPrefix + strconv.Itoa(level) + " " + name + latexTerminator
}

// EscapeLaTeX escapes characters that LaTeX treats specially.
func EscapeLaTeX(text string) string {
	return latexEscaper.Replace(text)
}
