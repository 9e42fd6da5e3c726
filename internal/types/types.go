// Package types defines the data structures shared between treetext packages.
package types

const (
	// CommandRender names the command that renders directory trees.
	CommandRender = "render"
	// CommandInit names the command that writes a default configuration file.
	CommandInit = "init"
)

// ValidatedPath is an absolute input path that already passed existence checks.
type ValidatedPath struct {
	AbsolutePath string
	IsDir        bool
}
