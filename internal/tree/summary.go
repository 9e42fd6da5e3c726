package tree

import "fmt"

// Summary counts the entries of a rendered tree.
type Summary struct {
	Directories int
	Files       int
}

// Summarize counts directory and file lines.
func Summarize(lines []Line) Summary {
	var summary Summary
	for _, line := range lines {
		if line.Kind == EntryKindDirectory {
			summary.Directories++
		} else {
			summary.Files++
		}
	}
	return summary
}

// String renders the summary as "N directories, M files".
func (summary Summary) String() string {
	return fmt.Sprintf("%d %s, %d %s",
		summary.Directories, pluralize(summary.Directories, "directory", "directories"),
		summary.Files, pluralize(summary.Files, "file", "files"))
}

func pluralize(count int, singular string, plural string) string {
	if count == 1 {
		return singular
	}
	return plural
}
