// Package config loads command defaults and the ignore patterns that filter rendered trees.
package config

import (
	"bufio"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/temirov/treetext/internal/utils"
)

const (
	// gitDirectoryPattern represents the pattern that matches the Git directory.
	gitDirectoryPattern = utils.GitDirectoryName + "/"
	// binarySectionHeader opens a section whose patterns do not affect tree listings.
	binarySectionHeader = "[binary]"
	// ignoreSectionHeader identifies the section listing ignore patterns.
	ignoreSectionHeader = "[ignore]"

	// commentPrefix marks a comment line in an ignore file.
	commentPrefix = "#"

	errorLoadIgnoreFileFormat  = "loading %s from %s: %w"
	errorCloseIgnoreFileFormat = "close %s: %w"
)

// LoadIgnoreFilePatterns reads an ignore file and returns the patterns of its ignore section.
// A missing file yields no patterns.
//
// #nosec G304
func LoadIgnoreFilePatterns(ignoreFilePath string) (patterns []string, err error) {
	fileHandle, openFileError := os.Open(ignoreFilePath)
	if openFileError != nil {
		if os.IsNotExist(openFileError) {
			return nil, nil
		}
		return nil, openFileError
	}
	defer func() {
		if closeError := fileHandle.Close(); closeError != nil && err == nil {
			err = fmt.Errorf(errorCloseIgnoreFileFormat, ignoreFilePath, closeError)
		}
	}()

	var ignorePatterns []string
	currentSectionHeader := ignoreSectionHeader
	scanner := bufio.NewScanner(fileHandle)
	for scanner.Scan() {
		trimmedLine := strings.TrimSpace(scanner.Text())
		if trimmedLine == "" || strings.HasPrefix(trimmedLine, commentPrefix) {
			continue
		}
		if strings.EqualFold(trimmedLine, binarySectionHeader) {
			currentSectionHeader = binarySectionHeader
			continue
		}
		if strings.EqualFold(trimmedLine, ignoreSectionHeader) {
			currentSectionHeader = ignoreSectionHeader
			continue
		}
		if currentSectionHeader == binarySectionHeader {
			continue
		}
		ignorePatterns = append(ignorePatterns, trimmedLine)
	}
	if scanError := scanner.Err(); scanError != nil {
		return nil, scanError
	}
	return ignorePatterns, nil
}

// LoadRecursiveIgnorePatterns walks rootDirectoryPath and aggregates ignore patterns.
// Patterns from utils.IgnoreFileName and utils.GitIgnoreFileName in nested directories are prefixed with
// the directory's path relative to rootDirectoryPath. The utils.GitDirectoryName directory is ignored
// unless includeGit is true. exclusionPatterns are appended after the file patterns.
func LoadRecursiveIgnorePatterns(rootDirectoryPath string, exclusionPatterns []string, useGitignore bool, useIgnoreFile bool, includeGit bool) ([]string, error) {
	var aggregatedPatterns []string

	appendFilePatterns := func(directoryPath, prefix, fileName string) error {
		filePatterns, loadError := LoadIgnoreFilePatterns(filepath.Join(directoryPath, fileName))
		if loadError != nil {
			return fmt.Errorf(errorLoadIgnoreFileFormat, fileName, directoryPath, loadError)
		}
		for _, pattern := range filePatterns {
			aggregatedPatterns = append(aggregatedPatterns, prefix+pattern)
		}
		return nil
	}

	walkFunction := func(currentDirectoryPath string, directoryEntry fs.DirEntry, walkError error) error {
		if walkError != nil {
			return walkError
		}
		if !directoryEntry.IsDir() {
			return nil
		}
		if !includeGit && directoryEntry.Name() == utils.GitDirectoryName {
			return filepath.SkipDir
		}

		relativeDirectory := utils.RelativePathOrSelf(currentDirectoryPath, rootDirectoryPath)
		prefix := ""
		if relativeDirectory != "." {
			prefix = filepath.ToSlash(relativeDirectory) + "/"
		}

		if useIgnoreFile {
			if err := appendFilePatterns(currentDirectoryPath, prefix, utils.IgnoreFileName); err != nil {
				return err
			}
		}
		if useGitignore {
			if err := appendFilePatterns(currentDirectoryPath, prefix, utils.GitIgnoreFileName); err != nil {
				return err
			}
		}
		return nil
	}

	if useIgnoreFile || useGitignore {
		if walkError := filepath.WalkDir(rootDirectoryPath, walkFunction); walkError != nil {
			return nil, walkError
		}
	}

	if !includeGit {
		aggregatedPatterns = append(aggregatedPatterns, gitDirectoryPattern)
	}

	deduplicatedPatterns := utils.DeduplicatePatterns(aggregatedPatterns)

	for _, pattern := range exclusionPatterns {
		trimmedPattern := strings.TrimSpace(pattern)
		if trimmedPattern == "" {
			continue
		}
		if !utils.ContainsString(deduplicatedPatterns, trimmedPattern) {
			deduplicatedPatterns = append(deduplicatedPatterns, trimmedPattern)
		}
	}

	return deduplicatedPatterns, nil
}
