package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	toggleFlagTypeName       = "bool"
	toggleFlagTrueLiteral    = "true"
	toggleFlagAcceptedValues = "true, false, yes, no, on, off, 1, 0"
	invalidToggleValueFormat = "invalid value %q for --%s; accepted values: %s"
	flagTerminator           = "--"
	longFlagPrefix           = "--"
	flagAssignmentFormat     = "--%s=%s"
)

var toggleLiterals = map[string]bool{
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

// toggleFlagValue is a boolean flag that defaults to true and can be switched
// off with "--name false", "--name=no" or "--name off".
type toggleFlagValue struct {
	target *bool
	name   string
}

func (value *toggleFlagValue) Set(input string) error {
	normalized := strings.ToLower(strings.TrimSpace(input))
	if normalized == "" {
		normalized = toggleFlagTrueLiteral
	}
	parsed, known := toggleLiterals[normalized]
	if !known {
		return fmt.Errorf(invalidToggleValueFormat, input, value.name, toggleFlagAcceptedValues)
	}
	*value.target = parsed
	return nil
}

func (value *toggleFlagValue) String() string {
	if value == nil || value.target == nil {
		return toggleFlagTrueLiteral
	}
	return strconv.FormatBool(*value.target)
}

func (value *toggleFlagValue) Type() string {
	return toggleFlagTypeName
}

func registerBooleanFlag(flagSet *pflag.FlagSet, target *bool, name string, defaultValue bool, usage string) {
	if flagSet == nil || target == nil {
		return
	}
	*target = defaultValue
	flagSet.Var(&toggleFlagValue{target: target, name: name}, name, usage)
	if lookup := flagSet.Lookup(name); lookup != nil {
		lookup.DefValue = strconv.FormatBool(defaultValue)
		lookup.NoOptDefVal = toggleFlagTrueLiteral
	}
}

// normalizeBooleanFlagArguments joins "--flag value" into "--flag=value" for
// boolean flags of any command in the tree when value is a boolean literal.
// pflag would otherwise treat the literal as a positional argument.
func normalizeBooleanFlagArguments(command *cobra.Command, arguments []string) []string {
	if command == nil || len(arguments) == 0 {
		return arguments
	}
	booleanFlags := map[string]struct{}{}
	collectBooleanFlagNames(command, booleanFlags)

	normalized := make([]string, 0, len(arguments))
	for index := 0; index < len(arguments); index++ {
		current := arguments[index]
		if current == flagTerminator {
			normalized = append(normalized, arguments[index:]...)
			break
		}
		if strings.HasPrefix(current, longFlagPrefix) && !strings.Contains(current, "=") && index+1 < len(arguments) {
			flagName := strings.TrimPrefix(current, longFlagPrefix)
			literal := strings.ToLower(strings.TrimSpace(arguments[index+1]))
			_, isBoolean := booleanFlags[flagName]
			_, isLiteral := toggleLiterals[literal]
			if isBoolean && isLiteral {
				normalized = append(normalized, fmt.Sprintf(flagAssignmentFormat, flagName, arguments[index+1]))
				index++
				continue
			}
		}
		normalized = append(normalized, current)
	}
	return normalized
}

func collectBooleanFlagNames(command *cobra.Command, target map[string]struct{}) {
	visit := func(flag *pflag.Flag) {
		if flag.Value != nil && flag.Value.Type() == toggleFlagTypeName {
			target[flag.Name] = struct{}{}
		}
	}
	command.PersistentFlags().VisitAll(visit)
	command.Flags().VisitAll(visit)
	for _, child := range command.Commands() {
		collectBooleanFlagNames(child, target)
	}
}
