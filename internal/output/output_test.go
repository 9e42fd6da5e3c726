package output_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/temirov/treetext/internal/output"
	"github.com/temirov/treetext/internal/tree"
	"github.com/temirov/treetext/internal/types"
)

const (
	plainDocument = "project/\n┣ src/\n┃ ┗ main.go\n┗ README.md\n"
	latexDocument = "\\dirtree{%\n  .1 docs/ .\n  .2 guide.md .\n}"
)

func sampleResults() []output.Result {
	return []output.Result{
		{
			Root:     types.ValidatedPath{AbsolutePath: "/project", IsDir: true},
			Document: plainDocument,
			Summary:  tree.Summary{Directories: 1, Files: 2},
		},
		{
			Root:     types.ValidatedPath{AbsolutePath: "/project/docs", IsDir: true},
			Document: latexDocument,
			Summary:  tree.Summary{Files: 1},
			Tokens:   17,
			Model:    "gpt-4o",
		},
	}
}

func TestWriteResultsSeparatesDocuments(t *testing.T) {
	testCases := []struct {
		name           string
		includeSummary bool
		expected       string
	}{
		{
			name:     "documents_only",
			expected: plainDocument + "\n" + latexDocument + "\n",
		},
		{
			name:           "with_summaries",
			includeSummary: true,
			expected: plainDocument +
				"Summary: 1 directory, 2 files\n" +
				"\n" +
				latexDocument + "\n" +
				"Summary: 0 directories, 1 file, 17 tokens (model: gpt-4o)\n",
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			var buffer bytes.Buffer
			require.NoError(t, output.WriteResults(&buffer, sampleResults(), testCase.includeSummary))
			assert.Equal(t, testCase.expected, buffer.String())
		})
	}
}

func TestWriteResultsWithoutResultsWritesNothing(t *testing.T) {
	var buffer bytes.Buffer
	require.NoError(t, output.WriteResults(&buffer, nil, true))
	assert.Empty(t, buffer.String())
}

type failingWriter struct{}

var errWriteRefused = errors.New("write refused")

func (failingWriter) Write([]byte) (int, error) {
	return 0, errWriteRefused
}

func TestWriteResultsPropagatesWriterFailure(t *testing.T) {
	writeError := output.WriteResults(failingWriter{}, sampleResults(), false)
	require.Error(t, writeError)
	assert.ErrorIs(t, writeError, errWriteRefused)
	assert.Contains(t, writeError.Error(), "/project")
}

func TestJoinDocumentsOmitsSummaries(t *testing.T) {
	joined := output.JoinDocuments(sampleResults())
	assert.Equal(t, plainDocument+"\n"+latexDocument+"\n", joined)
	assert.NotContains(t, joined, "Summary:")
}

func TestFormatSummaryLine(t *testing.T) {
	line := output.FormatSummaryLine(output.Result{Summary: tree.Summary{Directories: 2, Files: 1}})
	assert.Equal(t, "Summary: 2 directories, 1 file\n", line)
}
