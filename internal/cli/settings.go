package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/temirov/treetext/internal/config"
	"github.com/temirov/treetext/internal/tokenizer"
	"github.com/temirov/treetext/internal/tree"
	"github.com/temirov/treetext/internal/utils"
)

// renderSettings is the effective render configuration after flags and files are combined.
type renderSettings struct {
	notation          tree.Notation
	maxDepth          int
	summary           bool
	copyToClipboard   bool
	tokens            bool
	model             string
	escapeLaTeX       bool
	normalizeNames    bool
	exclusionPatterns []string
	useGitignore      bool
	useIgnoreFile     bool
	includeGit        bool
}

// resolveRenderSettings applies explicitly set flags over configuration values over defaults.
func resolveRenderSettings(command *cobra.Command, options renderOptions, configuration config.RenderConfiguration) (renderSettings, error) {
	flagChanged := func(name string) bool {
		return command.Flags().Changed(name)
	}

	format := options.format
	if !flagChanged(formatFlagName) && configuration.Format != "" {
		format = configuration.Format
	}
	notation, notationError := tree.ParseNotation(format)
	if notationError != nil {
		return renderSettings{}, notationError
	}

	settings := renderSettings{
		notation:        notation,
		maxDepth:        config.IntValue(configuration.MaxDepth, options.maxDepth),
		summary:         config.BoolValue(configuration.Summary, options.summary),
		copyToClipboard: config.BoolValue(configuration.Clipboard, options.copyToClipboard),
		tokens:          config.BoolValue(configuration.Tokens.Enabled, options.tokens),
		model:           options.model,
		escapeLaTeX:     config.BoolValue(configuration.LaTeX.Escape, options.escapeLaTeX),
		normalizeNames:  config.BoolValue(configuration.NormalizeNames, options.normalizeNames),
		useGitignore:    config.BoolValue(configuration.Paths.UseGitignore, options.useGitignore),
		useIgnoreFile:   config.BoolValue(configuration.Paths.UseIgnoreFile, options.useIgnoreFile),
		includeGit:      config.BoolValue(configuration.Paths.IncludeGit, !options.hideGit),
	}

	if flagChanged(maxDepthFlagName) {
		settings.maxDepth = options.maxDepth
	}
	if flagChanged(summaryFlagName) {
		settings.summary = options.summary
	}
	if flagChanged(copyFlagName) {
		settings.copyToClipboard = options.copyToClipboard
	}
	if flagChanged(tokensFlagName) {
		settings.tokens = options.tokens
	}
	if !flagChanged(modelFlagName) && strings.TrimSpace(configuration.Tokens.Model) != "" {
		settings.model = strings.TrimSpace(configuration.Tokens.Model)
	}
	if settings.model == "" {
		settings.model = tokenizer.DefaultModel
	}
	if flagChanged(escapeLaTeXFlagName) {
		settings.escapeLaTeX = options.escapeLaTeX
	}
	if flagChanged(normalizeNamesFlagName) {
		settings.normalizeNames = options.normalizeNames
	}
	if flagChanged(gitignoreFlagName) {
		settings.useGitignore = options.useGitignore
	}
	if flagChanged(ignoreFlagName) {
		settings.useIgnoreFile = options.useIgnoreFile
	}
	if flagChanged(noGitFlagName) {
		settings.includeGit = !options.hideGit
	}

	if settings.maxDepth < 0 {
		return renderSettings{}, fmt.Errorf(errorNegativeDepthFormat, maxDepthFlagName, settings.maxDepth)
	}

	exclusions := append([]string{}, configuration.Paths.Exclude...)
	exclusions = append(exclusions, options.exclusionPatterns...)
	settings.exclusionPatterns = utils.DeduplicatePatterns(exclusions)

	return settings, nil
}
