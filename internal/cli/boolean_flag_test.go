package cli

import (
	"reflect"
	"testing"

	"github.com/spf13/cobra"
)

func TestRegisterBooleanFlagParsesValues(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name         string
		defaultValue bool
		arguments    []string
		expected     bool
		expectError  bool
	}{
		{
			name:         "defaults_to_false",
			defaultValue: false,
			arguments:    []string{},
			expected:     false,
		},
		{
			name:         "sets_true_without_value",
			defaultValue: false,
			arguments:    []string{"--summary"},
			expected:     true,
		},
		{
			name:         "sets_false_with_equals",
			defaultValue: true,
			arguments:    []string{"--summary=false"},
			expected:     false,
		},
		{
			name:         "sets_false_with_no_literal",
			defaultValue: true,
			arguments:    []string{"--summary", "no"},
			expected:     false,
		},
		{
			name:         "sets_true_with_on_literal",
			defaultValue: false,
			arguments:    []string{"--summary", "on"},
			expected:     true,
		},
		{
			name:         "keeps_non_boolean_trailing_value_positional",
			defaultValue: false,
			arguments:    []string{"--summary", "docs"},
			expected:     true,
		},
		{
			name:         "rejects_unknown_literal",
			defaultValue: false,
			arguments:    []string{"--summary=maybe"},
			expectError:  true,
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			command := &cobra.Command{Use: "boolean-test"}
			flagValue := !testCase.defaultValue
			registerBooleanFlag(command.Flags(), &flagValue, summaryFlagName, testCase.defaultValue, summaryFlagDescription)
			parseErr := command.ParseFlags(normalizeBooleanFlagArguments(command, testCase.arguments))
			if testCase.expectError {
				if parseErr == nil {
					t.Fatalf("expected parse error for arguments %v", testCase.arguments)
				}
				return
			}
			if parseErr != nil {
				t.Fatalf("unexpected parse error: %v", parseErr)
			}
			if flagValue != testCase.expected {
				t.Fatalf("expected %t, got %t", testCase.expected, flagValue)
			}
		})
	}
}

func TestNormalizeBooleanFlagArgumentsAcrossSubcommands(t *testing.T) {
	rootCommand := (&application{}).createRootCommand()

	testCases := []struct {
		name      string
		arguments []string
		expected  []string
	}{
		{
			name:      "joins_subcommand_boolean",
			arguments: []string{"render", "--summary", "yes", "docs"},
			expected:  []string{"render", "--summary=yes", "docs"},
		},
		{
			name:      "leaves_string_flags",
			arguments: []string{"render", "--format", "latex"},
			expected:  []string{"render", "--format", "latex"},
		},
		{
			name:      "stops_at_terminator",
			arguments: []string{"render", "--", "--copy", "off"},
			expected:  []string{"render", "--", "--copy", "off"},
		},
		{
			name:      "joins_init_flags",
			arguments: []string{"init", "--force", "1"},
			expected:  []string{"init", "--force=1"},
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			normalized := normalizeBooleanFlagArguments(rootCommand, testCase.arguments)
			if !reflect.DeepEqual(normalized, testCase.expected) {
				t.Fatalf("expected %v, got %v", testCase.expected, normalized)
			}
		})
	}
}
