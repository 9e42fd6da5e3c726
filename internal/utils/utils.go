// Package utils contains general helper functions used across treetext.
package utils

import (
	"path/filepath"
	"strings"
)

// Ignore file constants used across the project.
const (
	// IgnoreFileName is the name of the project's ignore file.
	IgnoreFileName = ".ignore"
	// GitIgnoreFileName is the name of the Git ignore file.
	GitIgnoreFileName = ".gitignore"
	// ExclusionPrefix marks patterns that exclude a path prefix anchored at the root.
	ExclusionPrefix = "EXCL:"
	// GitDirectoryName is the name of the Git repository directory.
	GitDirectoryName = ".git"
)

const pathSegmentSeparator = "/"

var serviceFiles = map[string]struct{}{
	IgnoreFileName:    {},
	GitIgnoreFileName: {},
}

// DeduplicatePatterns removes duplicate patterns from a slice while preserving order.
// The first occurrence of each unique pattern is kept.
func DeduplicatePatterns(patterns []string) []string {
	encounteredPatterns := make(map[string]struct{})
	result := make([]string, 0, len(patterns))
	for _, pattern := range patterns {
		if _, exists := encounteredPatterns[pattern]; !exists {
			encounteredPatterns[pattern] = struct{}{}
			result = append(result, pattern)
		}
	}
	return result
}

// ContainsString checks if a slice of strings contains a specific target string.
func ContainsString(stringSlice []string, targetString string) bool {
	for _, currentString := range stringSlice {
		if currentString == targetString {
			return true
		}
	}
	return false
}

// RelativePathOrSelf calculates the forward-slash relative path from root to fullPath.
// Returns the cleaned fullPath if relative calculation fails and "." when both resolve to the same directory.
func RelativePathOrSelf(fullPath, root string) string {
	cleanPath := filepath.Clean(fullPath)
	absoluteRoot, absoluteRootError := filepath.Abs(root)
	if absoluteRootError != nil {
		return cleanPath
	}
	cleanAbsoluteRoot := filepath.Clean(absoluteRoot)
	if cleanPath == cleanAbsoluteRoot {
		return "."
	}
	relativePath, relativePathError := filepath.Rel(cleanAbsoluteRoot, cleanPath)
	if relativePathError != nil {
		return cleanPath
	}
	return filepath.ToSlash(relativePath)
}

type ignoreRuleKind int

const (
	// ignoreRuleExclusion matches a root-anchored path prefix.
	ignoreRuleExclusion ignoreRuleKind = iota
	// ignoreRuleDirectory matches a directory and everything below it.
	ignoreRuleDirectory
	// ignoreRuleName matches the final path segment at any depth.
	ignoreRuleName
	// ignoreRulePath matches a full relative path segment by segment.
	ignoreRulePath
)

type ignoreRule struct {
	kind     ignoreRuleKind
	segments []string
}

// IgnoreMatcher evaluates relative paths against a compiled set of ignore patterns.
// Patterns use forward slashes; a trailing slash marks a directory pattern,
// ExclusionPrefix marks a root-anchored prefix, and each segment uses filepath.Match syntax.
// The ignore files themselves are always matched.
type IgnoreMatcher struct {
	rules []ignoreRule
}

// NewIgnoreMatcher compiles patterns into an IgnoreMatcher.
func NewIgnoreMatcher(patterns []string) *IgnoreMatcher {
	matcher := &IgnoreMatcher{rules: make([]ignoreRule, 0, len(patterns))}
	for _, pattern := range patterns {
		normalizedPattern := normalizeSeparators(strings.TrimSpace(pattern))
		if normalizedPattern == "" {
			continue
		}
		if strings.HasPrefix(normalizedPattern, ExclusionPrefix) {
			exclusionPattern := strings.TrimSuffix(strings.TrimPrefix(normalizedPattern, ExclusionPrefix), pathSegmentSeparator)
			matcher.rules = append(matcher.rules, ignoreRule{kind: ignoreRuleExclusion, segments: splitSegments(exclusionPattern)})
			continue
		}
		if strings.HasSuffix(normalizedPattern, pathSegmentSeparator) {
			directoryPattern := strings.TrimSuffix(normalizedPattern, pathSegmentSeparator)
			matcher.rules = append(matcher.rules, ignoreRule{kind: ignoreRuleDirectory, segments: splitSegments(directoryPattern)})
			continue
		}
		segments := splitSegments(normalizedPattern)
		kind := ignoreRulePath
		if len(segments) == 1 {
			kind = ignoreRuleName
		}
		matcher.rules = append(matcher.rules, ignoreRule{kind: kind, segments: segments})
	}
	return matcher
}

// Matches reports whether relativePath should be hidden.
func (matcher *IgnoreMatcher) Matches(relativePath string) bool {
	pathSegments := splitSegments(normalizeSeparators(relativePath))
	lastSegment := pathSegments[len(pathSegments)-1]
	if _, isServiceFile := serviceFiles[lastSegment]; isServiceFile {
		return true
	}
	for _, rule := range matcher.rules {
		switch rule.kind {
		case ignoreRuleExclusion, ignoreRuleDirectory:
			if len(pathSegments) >= len(rule.segments) && segmentsMatch(pathSegments[:len(rule.segments)], rule.segments) {
				return true
			}
		case ignoreRuleName:
			if isMatched, matchError := filepath.Match(rule.segments[0], lastSegment); matchError == nil && isMatched {
				return true
			}
		case ignoreRulePath:
			if len(pathSegments) == len(rule.segments) && segmentsMatch(pathSegments, rule.segments) {
				return true
			}
		}
	}
	return false
}

func normalizeSeparators(value string) string {
	return strings.ReplaceAll(value, "\\", pathSegmentSeparator)
}

func splitSegments(value string) []string {
	return strings.Split(value, pathSegmentSeparator)
}

// segmentsMatch reports whether each pattern segment matches the corresponding
// path segment using filepath.Match semantics.
func segmentsMatch(pathSegments, patternSegments []string) bool {
	for segmentIndex, patternSegment := range patternSegments {
		isMatched, matchError := filepath.Match(patternSegment, pathSegments[segmentIndex])
		if matchError != nil || !isMatched {
			return false
		}
	}
	return true
}
