// Package output writes rendered tree documents and their summaries.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/temirov/treetext/internal/tree"
	"github.com/temirov/treetext/internal/types"
)

const (
	// documentSeparator separates consecutive documents with one blank line.
	documentSeparator = "\n"

	summaryLinePrefix  = "Summary: "
	tokenSummaryFormat = ", %d tokens (model: %s)"
	errorWriteFormat   = "write output for %s: %w"
)

// Result is the rendering of a single root path.
type Result struct {
	Root     types.ValidatedPath
	Document string
	Summary  tree.Summary
	// Tokens is the token count of Document. It is meaningful only when Model is set.
	Tokens int
	Model  string
}

// FormatSummaryLine returns the summary line of a result including its trailing newline.
func FormatSummaryLine(result Result) string {
	var builder strings.Builder
	builder.WriteString(summaryLinePrefix)
	builder.WriteString(result.Summary.String())
	if result.Model != "" {
		builder.WriteString(fmt.Sprintf(tokenSummaryFormat, result.Tokens, result.Model))
	}
	builder.WriteString(tree.LineBreak)
	return builder.String()
}

// WriteResults writes documents in order, each optionally followed by its summary line.
func WriteResults(writer io.Writer, results []Result, includeSummary bool) error {
	for index, result := range results {
		var builder strings.Builder
		if index > 0 {
			builder.WriteString(documentSeparator)
		}
		builder.WriteString(terminated(result.Document))
		if includeSummary {
			builder.WriteString(FormatSummaryLine(result))
		}
		if _, writeError := io.WriteString(writer, builder.String()); writeError != nil {
			return fmt.Errorf(errorWriteFormat, result.Root.AbsolutePath, writeError)
		}
	}
	return nil
}

// JoinDocuments concatenates the documents of results the same way WriteResults does, without summaries.
func JoinDocuments(results []Result) string {
	return strings.Join(Documents(results), documentSeparator)
}

// Documents returns the documents of results in order, each ending with a line break.
func Documents(results []Result) []string {
	documents := make([]string, 0, len(results))
	for _, result := range results {
		documents = append(documents, terminated(result.Document))
	}
	return documents
}

func terminated(document string) string {
	if strings.HasSuffix(document, tree.LineBreak) {
		return document
	}
	return document + tree.LineBreak
}
