package tree_test

import (
	"errors"
	"io/fs"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/temirov/treetext/internal/tree"
)

const testRoot = "/root"

// scriptedFilesystem serves listings in a fixed enumeration order.
// Any listed child without its own listing is a file.
type scriptedFilesystem struct {
	listings   map[string][]string
	vanished   map[string]struct{}
	listErrors map[string]error
}

func newScriptedFilesystem(listings map[string][]string) *scriptedFilesystem {
	return &scriptedFilesystem{
		listings:   listings,
		vanished:   map[string]struct{}{},
		listErrors: map[string]error{},
	}
}

func (filesystem *scriptedFilesystem) Exists(path string) (bool, error) {
	if _, gone := filesystem.vanished[path]; gone {
		return false, nil
	}
	if _, isDirectory := filesystem.listings[path]; isDirectory {
		return true, nil
	}
	parentNames, hasParent := filesystem.listings[filepath.Dir(path)]
	if !hasParent {
		return false, nil
	}
	for _, name := range parentNames {
		if name == filepath.Base(path) {
			return true, nil
		}
	}
	return false, nil
}

func (filesystem *scriptedFilesystem) ListNames(path string) ([]string, error) {
	if listError, failing := filesystem.listErrors[path]; failing {
		return nil, listError
	}
	names, isDirectory := filesystem.listings[path]
	if !isDirectory {
		return nil, fs.ErrInvalid
	}
	return append([]string(nil), names...), nil
}

func (filesystem *scriptedFilesystem) IsDirectory(path string) (bool, error) {
	_, isDirectory := filesystem.listings[path]
	return isDirectory, nil
}

func renderLines(t *testing.T, renderer *tree.Renderer, notation tree.Notation) []string {
	t.Helper()
	body, renderError := renderer.Render(testRoot, notation)
	require.NoError(t, renderError)
	require.True(t, strings.HasSuffix(body, tree.LineBreak), "every line ends with a line break")
	return strings.Split(strings.TrimSuffix(body, tree.LineBreak), tree.LineBreak)
}

func TestRenderPlainTextNestsDirectoryBeforeFile(t *testing.T) {
	filesystem := newScriptedFilesystem(map[string][]string{
		testRoot:        {"a", "b"},
		testRoot + "/b": {"x"},
	})
	renderer := &tree.Renderer{Filesystem: filesystem}

	lines := renderLines(t, renderer, tree.NotationPlainText)
	assert.Equal(t, []string{"┣ b/", "┃ ┗ x", "┗ a"}, lines)
}

func TestRenderFilesOnlyKeepsEnumerationOrder(t *testing.T) {
	filesystem := newScriptedFilesystem(map[string][]string{
		testRoot: {"zeta.txt", "alpha.txt", "mid.txt"},
	})
	renderer := &tree.Renderer{Filesystem: filesystem}

	lines := renderLines(t, renderer, tree.NotationPlainText)
	assert.Equal(t, []string{"┣ zeta.txt", "┣ alpha.txt", "┗ mid.txt"}, lines)
}

func TestLinesPartitionDirectoriesBeforeFiles(t *testing.T) {
	filesystem := newScriptedFilesystem(map[string][]string{
		testRoot:                {"f1", "d2", "f0", "d1"},
		testRoot + "/d2":        {"inner2"},
		testRoot + "/d1":        {"y", "inner1", "x"},
		testRoot + "/d1/inner1": {},
	})
	renderer := &tree.Renderer{Filesystem: filesystem}

	lines, linesError := renderer.Lines(testRoot)
	require.NoError(t, linesError)

	var names []string
	for _, line := range lines {
		names = append(names, strings.Repeat(">", line.Depth)+line.DisplayName())
	}
	assert.Equal(t, []string{"d2/", ">inner2", "d1/", ">inner1/", ">y", ">x", "f1", "f0"}, names)

	// fileSeen[d] tracks whether the current sibling group at depth d already emitted a file.
	var fileSeen []bool
	for _, line := range lines {
		for len(fileSeen) <= line.Depth {
			fileSeen = append(fileSeen, false)
		}
		fileSeen = fileSeen[:line.Depth+1]
		if line.Kind == tree.EntryKindFile {
			fileSeen[line.Depth] = true
			continue
		}
		assert.False(t, fileSeen[line.Depth], "directory %s listed after a file", line.Name)
	}
}

func TestLinesMarkOnlyFinalSiblingAsLast(t *testing.T) {
	filesystem := newScriptedFilesystem(map[string][]string{
		testRoot:              {"top.txt", "src", "docs"},
		testRoot + "/src":     {"main.go", "pkg", "util.go"},
		testRoot + "/src/pkg": {"a.go", "b.go"},
		testRoot + "/docs":    {"index.md"},
	})
	renderer := &tree.Renderer{Filesystem: filesystem}

	lines, linesError := renderer.Lines(testRoot)
	require.NoError(t, linesError)

	body, formatError := renderer.FormatLines(lines, tree.NotationPlainText)
	require.NoError(t, formatError)
	rendered := strings.Split(strings.TrimSuffix(body, tree.LineBreak), tree.LineBreak)
	require.Len(t, rendered, len(lines))

	expected := []string{
		"┣ src/",
		"┃ ┣ pkg/",
		"┃ ┃ ┣ a.go",
		"┃ ┃ ┗ b.go",
		"┃ ┣ main.go",
		"┃ ┗ util.go",
		"┣ docs/",
		"┃ ┗ index.md",
		"┗ top.txt",
	}
	assert.Equal(t, expected, rendered)

	for index, line := range lines {
		indent := strings.Repeat("┃ ", line.Depth)
		require.True(t, strings.HasPrefix(rendered[index], indent), "line %q is indented to depth %d", rendered[index], line.Depth)
		connector := strings.TrimPrefix(rendered[index], indent)
		if line.Last {
			assert.True(t, strings.HasPrefix(connector, "┗ "), "last sibling %q", rendered[index])
		} else {
			assert.True(t, strings.HasPrefix(connector, "┣ "), "continuing sibling %q", rendered[index])
		}
	}
}

func TestRenderLaTeXLinesCarryDepthOffset(t *testing.T) {
	filesystem := newScriptedFilesystem(map[string][]string{
		testRoot:               {"readme.md", "lib"},
		testRoot + "/lib":      {"core"},
		testRoot + "/lib/core": {"tree.tex"},
	})
	renderer := &tree.Renderer{Filesystem: filesystem}

	lines, linesError := renderer.Lines(testRoot)
	require.NoError(t, linesError)
	rendered := renderLines(t, renderer, tree.NotationLaTeXDirTree)
	require.Len(t, rendered, len(lines))

	entryPattern := regexp.MustCompile(`^  \.(\d+) (.+) \.$`)
	for index, line := range lines {
		match := entryPattern.FindStringSubmatch(rendered[index])
		require.NotNil(t, match, "line %q", rendered[index])
		level, parseError := strconv.Atoi(match[1])
		require.NoError(t, parseError)
		assert.Equal(t, line.Depth+2, level)
		assert.Equal(t, line.DisplayName(), match[2])
	}
	assert.Equal(t, "  .2 lib/ .", rendered[0])
	assert.Equal(t, "  .4 tree.tex .", rendered[2])
}

func TestRenderMissingRootIsEmpty(t *testing.T) {
	renderer := &tree.Renderer{Filesystem: newScriptedFilesystem(map[string][]string{})}

	body, renderError := renderer.Render("/does/not/exist", tree.NotationPlainText)
	require.NoError(t, renderError)
	assert.Empty(t, body)
}

func TestRenderVanishedSubdirectoryIsEmptySubtree(t *testing.T) {
	filesystem := newScriptedFilesystem(map[string][]string{
		testRoot:           {"gone", "kept.txt"},
		testRoot + "/gone": {"never-listed"},
	})
	filesystem.vanished[testRoot+"/gone"] = struct{}{}
	renderer := &tree.Renderer{Filesystem: filesystem}

	lines := renderLines(t, renderer, tree.NotationPlainText)
	assert.Equal(t, []string{"┣ gone/", "┗ kept.txt"}, lines)
}

func TestRenderPropagatesListingFailure(t *testing.T) {
	permissionError := errors.New("permission denied")
	filesystem := newScriptedFilesystem(map[string][]string{
		testRoot:             {"locked", "open"},
		testRoot + "/locked": {"secret"},
		testRoot + "/open":   {},
	})
	filesystem.listErrors[testRoot+"/locked"] = permissionError
	renderer := &tree.Renderer{Filesystem: filesystem}

	body, renderError := renderer.Render(testRoot, tree.NotationPlainText)
	require.Error(t, renderError)
	assert.ErrorIs(t, renderError, permissionError)
	assert.Contains(t, renderError.Error(), testRoot+"/locked")
	assert.Empty(t, body)
}

func TestRenderRejectsUnknownNotation(t *testing.T) {
	renderer := &tree.Renderer{Filesystem: newScriptedFilesystem(map[string][]string{testRoot: {"a"}})}

	_, renderError := renderer.Render(testRoot, tree.Notation(0))
	assert.ErrorIs(t, renderError, tree.ErrUnknownNotation)
}

func TestRenderWithoutFilesystemFails(t *testing.T) {
	renderer := &tree.Renderer{}

	_, renderError := renderer.Render(testRoot, tree.NotationPlainText)
	assert.Error(t, renderError)
}

func TestRenderMaxDepthStopsDescending(t *testing.T) {
	filesystem := newScriptedFilesystem(map[string][]string{
		testRoot:          {"a", "top.txt"},
		testRoot + "/a":   {"b", "a.txt"},
		testRoot + "/a/b": {"deep.txt"},
	})

	testCases := []struct {
		name     string
		maxDepth int
		expected []string
	}{
		{
			name:     "unbounded",
			maxDepth: 0,
			expected: []string{"┣ a/", "┃ ┣ b/", "┃ ┃ ┗ deep.txt", "┃ ┗ a.txt", "┗ top.txt"},
		},
		{
			name:     "first_level_only",
			maxDepth: 1,
			expected: []string{"┣ a/", "┗ top.txt"},
		},
		{
			name:     "two_levels",
			maxDepth: 2,
			expected: []string{"┣ a/", "┃ ┣ b/", "┃ ┗ a.txt", "┗ top.txt"},
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			renderer := &tree.Renderer{Filesystem: filesystem, MaxDepth: testCase.maxDepth}
			assert.Equal(t, testCase.expected, renderLines(t, renderer, tree.NotationPlainText))
		})
	}
}

func TestRenderNormalizesDisplayedNames(t *testing.T) {
	decomposed := "cafe\u0301"
	filesystem := newScriptedFilesystem(map[string][]string{
		testRoot:                    {decomposed},
		testRoot + "/" + decomposed: {"menu.txt"},
	})

	plain := &tree.Renderer{Filesystem: filesystem}
	assert.Equal(t, []string{"┗ " + decomposed + "/", "┃ ┗ menu.txt"}, renderLines(t, plain, tree.NotationPlainText))

	normalized := &tree.Renderer{Filesystem: filesystem, NormalizeNames: true}
	assert.Equal(t, []string{"┗ caf\u00e9/", "┃ ┗ menu.txt"}, renderLines(t, normalized, tree.NotationPlainText))

	assert.Equal(t, decomposed, plain.RootName("/srv/"+decomposed))
	assert.Equal(t, "caf\u00e9", normalized.RootName("/srv/"+decomposed))
}

func TestRenderEscapesLaTeXNamesOnRequest(t *testing.T) {
	filesystem := newScriptedFilesystem(map[string][]string{
		testRoot: {"my_notes#1.tex"},
	})

	raw := &tree.Renderer{Filesystem: filesystem}
	assert.Equal(t, []string{"  .2 my_notes#1.tex ."}, renderLines(t, raw, tree.NotationLaTeXDirTree))

	escaped := &tree.Renderer{Filesystem: filesystem, EscapeLaTeX: true}
	assert.Equal(t, []string{`  .2 my\_notes\#1.tex .`}, renderLines(t, escaped, tree.NotationLaTeXDirTree))
	assert.Equal(t, []string{"┗ my_notes#1.tex"}, renderLines(t, escaped, tree.NotationPlainText))
}

func TestSummarizeCountsKinds(t *testing.T) {
	filesystem := newScriptedFilesystem(map[string][]string{
		testRoot:        {"a", "b.txt", "c.txt"},
		testRoot + "/a": {"d.txt"},
	})
	renderer := &tree.Renderer{Filesystem: filesystem}

	lines, linesError := renderer.Lines(testRoot)
	require.NoError(t, linesError)

	summary := tree.Summarize(lines)
	assert.Equal(t, tree.Summary{Directories: 1, Files: 3}, summary)
	assert.Equal(t, "1 directory, 3 files", summary.String())
	assert.Equal(t, "0 directories, 1 file", tree.Summary{Files: 1}.String())
}
