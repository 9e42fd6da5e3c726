package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	booleanFlagTypeName        = "bool"
	booleanFlagTrueLiteral     = "true"
	booleanFlagAcceptedValues  = "true, false, yes, no, on, off, 1, 0"
	booleanFlagArgumentMarker  = "--"
	errorBooleanFlagFormat     = "invalid boolean value %q for --%s; accepted values: %s"
	errorBooleanFlagTargetText = "boolean flag --%s has no target"
)

var booleanFlagLiterals = map[string]bool{
	"true":  true,
	"t":     true,
	"1":     true,
	"yes":   true,
	"y":     true,
	"on":    true,
	"false": false,
	"f":     false,
	"0":     false,
	"no":    false,
	"n":     false,
	"off":   false,
}

// parseBooleanLiteral interprets a user-supplied literal. An empty literal means true.
func parseBooleanLiteral(input string) (bool, bool) {
	normalized := strings.ToLower(strings.TrimSpace(input))
	if normalized == "" {
		normalized = booleanFlagTrueLiteral
	}
	parsed, ok := booleanFlagLiterals[normalized]
	return parsed, ok
}

// booleanFlagValue is a pflag.Value accepting yes/no and on/off literals besides true/false.
type booleanFlagValue struct {
	target *bool
	name   string
}

func (value *booleanFlagValue) Set(input string) error {
	if value.target == nil {
		return fmt.Errorf(errorBooleanFlagTargetText, value.name)
	}
	parsed, ok := parseBooleanLiteral(input)
	if !ok {
		return fmt.Errorf(errorBooleanFlagFormat, input, value.name, booleanFlagAcceptedValues)
	}
	*value.target = parsed
	return nil
}

func (value *booleanFlagValue) String() string {
	if value == nil || value.target == nil {
		return strconv.FormatBool(false)
	}
	return strconv.FormatBool(*value.target)
}

func (value *booleanFlagValue) Type() string {
	return booleanFlagTypeName
}

// registerBooleanFlag defines a boolean flag that may be given bare or with a literal.
func registerBooleanFlag(flagSet *pflag.FlagSet, target *bool, name string, defaultValue bool, usage string) {
	if flagSet == nil || target == nil {
		return
	}
	*target = defaultValue
	flagSet.Var(&booleanFlagValue{target: target, name: name}, name, usage)
	if flag := flagSet.Lookup(name); flag != nil {
		flag.DefValue = strconv.FormatBool(defaultValue)
		flag.NoOptDefVal = booleanFlagTrueLiteral
	}
}

// normalizeBooleanFlagArguments joins "--flag value" pairs into "--flag=value" for boolean flags,
// so that "--summary no" is not read as a positional path "no".
func normalizeBooleanFlagArguments(command *cobra.Command, arguments []string) []string {
	if command == nil || len(arguments) == 0 {
		return arguments
	}
	booleanFlags := map[string]struct{}{}
	collectBooleanFlagNames(command, booleanFlags)
	if len(booleanFlags) == 0 {
		return arguments
	}

	normalized := make([]string, 0, len(arguments))
	for index := 0; index < len(arguments); index++ {
		currentArgument := arguments[index]
		if currentArgument == booleanFlagArgumentMarker {
			normalized = append(normalized, arguments[index:]...)
			break
		}
		if joined, ok := joinBooleanFlag(booleanFlags, currentArgument, arguments[index+1:]); ok {
			normalized = append(normalized, joined)
			index++
			continue
		}
		normalized = append(normalized, currentArgument)
	}
	return normalized
}

// joinBooleanFlag returns the joined form of argument and the first of remaining when they form a boolean flag pair.
func joinBooleanFlag(booleanFlags map[string]struct{}, argument string, remaining []string) (string, bool) {
	if !strings.HasPrefix(argument, booleanFlagArgumentMarker) || strings.Contains(argument, "=") || len(remaining) == 0 {
		return "", false
	}
	flagName := strings.TrimPrefix(argument, booleanFlagArgumentMarker)
	if _, exists := booleanFlags[flagName]; !exists {
		return "", false
	}
	nextArgument := remaining[0]
	if strings.HasPrefix(nextArgument, "-") || strings.TrimSpace(nextArgument) == "" {
		return "", false
	}
	if _, valid := parseBooleanLiteral(nextArgument); !valid {
		return "", false
	}
	return fmt.Sprintf("%s%s=%s", booleanFlagArgumentMarker, flagName, nextArgument), true
}

func collectBooleanFlagNames(command *cobra.Command, target map[string]struct{}) {
	visit := func(flag *pflag.Flag) {
		if flag.Value != nil && flag.Value.Type() == booleanFlagTypeName {
			target[flag.Name] = struct{}{}
		}
	}
	command.PersistentFlags().VisitAll(visit)
	command.Flags().VisitAll(visit)
	for _, child := range command.Commands() {
		collectBooleanFlagNames(child, target)
	}
}
