// Package cli provides the command line interface.
package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/temirov/treetext/internal/config"
	"github.com/temirov/treetext/internal/output"
	"github.com/temirov/treetext/internal/services/clipboard"
	"github.com/temirov/treetext/internal/services/filesystem"
	"github.com/temirov/treetext/internal/tokenizer"
	"github.com/temirov/treetext/internal/tree"
	"github.com/temirov/treetext/internal/types"
	"github.com/temirov/treetext/internal/utils"
)

const (
	exclusionFlagName      = "e"
	gitignoreFlagName      = "gitignore"
	ignoreFlagName         = "ignore"
	noGitFlagName          = "no-git"
	formatFlagName         = "format"
	maxDepthFlagName       = "max-depth"
	summaryFlagName        = "summary"
	copyFlagName           = "copy"
	tokensFlagName         = "tokens"
	modelFlagName          = "model"
	escapeLaTeXFlagName    = "escape-latex"
	normalizeNamesFlagName = "normalize-names"
	configFlagName         = "config"
	globalFlagName         = "global"
	forceFlagName          = "force"
	versionTemplate        = "treetext version: {{.Version}}\n"
	defaultPath            = "."
	rootUse                = "treetext"
	rootShortDescription   = "treetext renders directory trees as text"
	rootLongDescription    = `treetext renders the directory tree under one or more paths as text.
Use --format to select an ASCII tree or a LaTeX dirtree block, and --version to print the application version.`
	renderUse              = types.CommandRender + " [paths...]"
	renderAlias            = "r"
	renderShortDescription = "render directory trees (" + renderAlias + ")"

	// renderLongDescription provides detailed help for the render command.
	renderLongDescription = `Render the directory tree of each path.
Subdirectories are listed before files at every level. Use --format to select ascii or latex output.
Flags override values from ~/.treetext/config.yaml and ./config.yaml.`
	// renderUsageExample demonstrates render command usage.
	renderUsageExample = `  # Render the current directory
  treetext render

  # Render two levels as a LaTeX dirtree and copy it
  treetext render --format latex --max-depth 2 --copy ./docs

  # Honor .gitignore and hide the .git directory
  treetext render --gitignore --no-git .`

	initUse              = types.CommandInit
	initShortDescription = "write a default configuration file"
	// initLongDescription provides detailed help for the init command.
	initLongDescription = `Write the default configuration to ./config.yaml, or to ~/.treetext/config.yaml with --global.
Existing files are kept unless --force is given.`

	exclusionFlagDescription      = "exclude path pattern"
	gitignoreFlagDescription      = "hide entries matched by .gitignore files"
	ignoreFlagDescription         = "hide entries matched by .ignore files"
	noGitFlagDescription          = "hide the .git directory"
	formatFlagDescription         = "output format (ascii or latex)"
	maxDepthFlagDescription       = "maximum depth to render, 0 for unlimited"
	summaryFlagDescription        = "print a summary line after each tree"
	copyFlagDescription           = "copy the rendered trees to the clipboard"
	tokensFlagDescription         = "include a token estimate in the summary"
	modelFlagDescription          = "tokenizer model to use for token counting"
	escapeLaTeXFlagDescription    = "escape LaTeX special characters in names"
	normalizeNamesFlagDescription = "normalize names to Unicode NFC"
	configFlagDescription         = "path to a configuration file"
	globalFlagDescription         = "write the configuration into the global directory"
	forceFlagDescription          = "overwrite an existing configuration file"

	initWrittenFormat           = "configuration written to %s\n"
	warningRootFailedMessage    = "skipping path"
	warningClipboardMessage     = "clipboard copy failed"
	workingDirectoryErrorFormat = "unable to determine working directory: %w"
	errorNegativeDepthFormat    = "invalid --%s value %d: must not be negative"
	errorRenderRootFormat       = "render %s: %w"
	// errorAbsolutePathFormat reports failure to resolve an absolute path.
	errorAbsolutePathFormat = "abs failed for '%s': %w"
	// errorPathMissingFormat reports a missing path.
	errorPathMissingFormat = "path '%s' does not exist"
	// errorStatFormat reports failure to retrieve file statistics.
	errorStatFormat = "stat failed for '%s': %w"
	// errorNoValidPaths indicates that all paths are invalid.
	errorNoValidPaths = "no valid paths"

	logFieldPath = "path"
)

// counterFactory builds token counters; tests replace it to stay offline.
type counterFactory func(tokenizer.Config) (tokenizer.Counter, string, error)

// application carries the collaborators shared by every command.
type application struct {
	logger        *zap.Logger
	clipboard     clipboard.Copier
	newCounter    counterFactory
	homeDirectory string
	version       string
}

// Execute runs the treetext application.
func Execute(logger *zap.Logger) error {
	app := &application{
		logger:     logger,
		clipboard:  clipboard.NewService(),
		newCounter: tokenizer.NewCounter,
		version:    utils.GetApplicationVersion(),
	}
	rootCommand := app.createRootCommand()
	rootCommand.SetArgs(normalizeBooleanFlagArguments(rootCommand, os.Args[1:]))
	return rootCommand.Execute()
}

// createRootCommand builds the root Cobra command.
func (app *application) createRootCommand() *cobra.Command {
	rootCommand := &cobra.Command{
		Use:          rootUse,
		Short:        rootShortDescription,
		Long:         rootLongDescription,
		Version:      app.version,
		SilenceUsage: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			return command.Help()
		},
	}
	rootCommand.SetVersionTemplate(versionTemplate)
	rootCommand.AddCommand(
		app.createRenderCommand(),
		app.createInitCommand(),
	)
	rootCommand.InitDefaultHelpCmd()
	rootCommand.InitDefaultCompletionCmd()
	return rootCommand
}

// renderOptions stores the raw values of the render command flags.
type renderOptions struct {
	format            string
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
	hideGit           bool
	configPath        string
}

// createRenderCommand returns the render subcommand.
func (app *application) createRenderCommand() *cobra.Command {
	var options renderOptions

	renderCommand := &cobra.Command{
		Use:     renderUse,
		Aliases: []string{renderAlias},
		Short:   renderShortDescription,
		Long:    renderLongDescription,
		Example: renderUsageExample,
		Args:    cobra.ArbitraryArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			if len(arguments) == 0 {
				arguments = []string{defaultPath}
			}
			workingDirectory, workingDirectoryError := os.Getwd()
			if workingDirectoryError != nil {
				return fmt.Errorf(workingDirectoryErrorFormat, workingDirectoryError)
			}
			applicationConfiguration, configurationError := config.LoadApplicationConfiguration(config.LoadOptions{
				WorkingDirectory: workingDirectory,
				ExplicitFilePath: options.configPath,
				HomeDirectory:    app.homeDirectory,
			})
			if configurationError != nil {
				return configurationError
			}
			settings, settingsError := resolveRenderSettings(command, options, applicationConfiguration.Render)
			if settingsError != nil {
				return settingsError
			}
			return app.runRender(command, arguments, settings)
		},
	}

	flagSet := renderCommand.Flags()
	flagSet.StringVar(&options.format, formatFlagName, tree.NotationNamePlainText, formatFlagDescription)
	flagSet.IntVar(&options.maxDepth, maxDepthFlagName, 0, maxDepthFlagDescription)
	registerBooleanFlag(flagSet, &options.summary, summaryFlagName, false, summaryFlagDescription)
	registerBooleanFlag(flagSet, &options.copyToClipboard, copyFlagName, false, copyFlagDescription)
	registerBooleanFlag(flagSet, &options.tokens, tokensFlagName, false, tokensFlagDescription)
	flagSet.StringVar(&options.model, modelFlagName, tokenizer.DefaultModel, modelFlagDescription)
	registerBooleanFlag(flagSet, &options.escapeLaTeX, escapeLaTeXFlagName, false, escapeLaTeXFlagDescription)
	registerBooleanFlag(flagSet, &options.normalizeNames, normalizeNamesFlagName, false, normalizeNamesFlagDescription)
	flagSet.StringArrayVarP(&options.exclusionPatterns, exclusionFlagName, exclusionFlagName, nil, exclusionFlagDescription)
	registerBooleanFlag(flagSet, &options.useGitignore, gitignoreFlagName, false, gitignoreFlagDescription)
	registerBooleanFlag(flagSet, &options.useIgnoreFile, ignoreFlagName, false, ignoreFlagDescription)
	registerBooleanFlag(flagSet, &options.hideGit, noGitFlagName, false, noGitFlagDescription)
	flagSet.StringVar(&options.configPath, configFlagName, "", configFlagDescription)
	return renderCommand
}

// createInitCommand returns the init subcommand.
func (app *application) createInitCommand() *cobra.Command {
	var global bool
	var force bool

	initCommand := &cobra.Command{
		Use:   initUse,
		Short: initShortDescription,
		Long:  initLongDescription,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			target := config.InitTargetLocal
			if global {
				target = config.InitTargetGlobal
			}
			writtenPath, initError := config.InitializeConfiguration(config.InitOptions{
				Target:        target,
				Force:         force,
				HomeDirectory: app.homeDirectory,
			})
			if initError != nil {
				return initError
			}
			_, writeError := fmt.Fprintf(command.OutOrStdout(), initWrittenFormat, writtenPath)
			return writeError
		},
	}
	registerBooleanFlag(initCommand.Flags(), &global, globalFlagName, false, globalFlagDescription)
	registerBooleanFlag(initCommand.Flags(), &force, forceFlagName, false, forceFlagDescription)
	return initCommand
}

// runRender renders every validated root concurrently and writes the results in argument order.
func (app *application) runRender(command *cobra.Command, paths []string, settings renderSettings) error {
	validatedPaths, pathValidationError := resolveAndValidatePaths(paths)
	if pathValidationError != nil {
		return pathValidationError
	}

	var tokenCounter tokenizer.Counter
	var tokenModel string
	if settings.tokens {
		createdCounter, resolvedModel, counterError := app.newCounter(tokenizer.Config{Model: settings.model})
		if counterError != nil {
			return counterError
		}
		tokenCounter = createdCounter
		tokenModel = resolvedModel
	}

	results := make([]output.Result, len(validatedPaths))
	failures := make([]error, len(validatedPaths))

	var group errgroup.Group
	group.SetLimit(runtime.GOMAXPROCS(0))
	for index, validatedPath := range validatedPaths {
		index, validatedPath := index, validatedPath
		group.Go(func() error {
			result, renderError := renderRoot(validatedPath, settings)
			if renderError != nil {
				failures[index] = fmt.Errorf(errorRenderRootFormat, validatedPath.AbsolutePath, renderError)
				return nil
			}
			results[index] = result
			return nil
		})
	}
	_ = group.Wait()

	var aggregated *multierror.Error
	succeeded := make([]output.Result, 0, len(results))
	for index, result := range results {
		if failures[index] != nil {
			app.logger.Warn(warningRootFailedMessage, zap.String(logFieldPath, validatedPaths[index].AbsolutePath), zap.Error(failures[index]))
			aggregated = multierror.Append(aggregated, failures[index])
			continue
		}
		if tokenCounter != nil {
			tokenCount, countError := tokenizer.CountDocuments(tokenCounter, result.Document)
			if countError != nil {
				aggregated = multierror.Append(aggregated, fmt.Errorf(errorRenderRootFormat, result.Root.AbsolutePath, countError))
				continue
			}
			result.Tokens = tokenCount
			result.Model = tokenModel
		}
		succeeded = append(succeeded, result)
	}

	if writeError := output.WriteResults(command.OutOrStdout(), succeeded, settings.summary); writeError != nil {
		aggregated = multierror.Append(aggregated, writeError)
	}

	if settings.copyToClipboard && len(succeeded) > 0 {
		if copyError := app.clipboard.Copy(output.JoinDocuments(succeeded)); copyError != nil {
			app.logger.Warn(warningClipboardMessage, zap.Error(copyError))
		}
	}

	return aggregated.ErrorOrNil()
}

// renderRoot renders one root path into a complete document.
func renderRoot(root types.ValidatedPath, settings renderSettings) (output.Result, error) {
	var treeFilesystem tree.Filesystem = filesystem.NewOSService()
	renderer := &tree.Renderer{
		MaxDepth:       settings.maxDepth,
		EscapeLaTeX:    settings.escapeLaTeX,
		NormalizeNames: settings.normalizeNames,
	}

	var lines []tree.Line
	if root.IsDir {
		ignorePatterns, loadError := config.LoadRecursiveIgnorePatterns(root.AbsolutePath, settings.exclusionPatterns, settings.useGitignore, settings.useIgnoreFile, settings.includeGit)
		if loadError != nil {
			return output.Result{}, loadError
		}
		if len(ignorePatterns) > 0 {
			treeFilesystem = filesystem.NewIgnoringFilesystem(treeFilesystem, root.AbsolutePath, ignorePatterns)
		}
		renderer.Filesystem = treeFilesystem
		collectedLines, linesError := renderer.Lines(root.AbsolutePath)
		if linesError != nil {
			return output.Result{}, linesError
		}
		lines = collectedLines
	}

	body, formatError := renderer.FormatLines(lines, settings.notation)
	if formatError != nil {
		return output.Result{}, formatError
	}
	documentRoot := tree.DocumentRoot{
		Name:        renderer.RootName(root.AbsolutePath),
		IsDirectory: root.IsDir,
		EscapeLaTeX: settings.escapeLaTeX,
	}
	document, assembleError := tree.AssembleDocument(documentRoot, body, settings.notation)
	if assembleError != nil {
		return output.Result{}, assembleError
	}
	return output.Result{Root: root, Document: document, Summary: tree.Summarize(lines)}, nil
}

// resolveAndValidatePaths converts input paths to absolute form and validates their existence.
func resolveAndValidatePaths(inputs []string) ([]types.ValidatedPath, error) {
	seen := make(map[string]struct{})
	var result []types.ValidatedPath
	for _, inputPath := range inputs {
		absolutePath, absolutePathError := filepath.Abs(inputPath)
		if absolutePathError != nil {
			return nil, fmt.Errorf(errorAbsolutePathFormat, inputPath, absolutePathError)
		}
		cleanPath := filepath.Clean(absolutePath)
		if _, ok := seen[cleanPath]; ok {
			continue
		}
		info, fileStatusError := os.Stat(cleanPath)
		if fileStatusError != nil {
			if os.IsNotExist(fileStatusError) {
				return nil, fmt.Errorf(errorPathMissingFormat, inputPath)
			}
			return nil, fmt.Errorf(errorStatFormat, inputPath, fileStatusError)
		}
		seen[cleanPath] = struct{}{}
		result = append(result, types.ValidatedPath{AbsolutePath: cleanPath, IsDir: info.IsDir()})
	}
	if len(result) == 0 {
		return nil, fmt.Errorf(errorNoValidPaths)
	}
	return result, nil
}
