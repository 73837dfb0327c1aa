package cli

import (
	"strings"

	"github.com/spf13/pflag"

	"github.com/temirov/devassist/internal/overlay"
)

const (
	patternListFlagTypeName  = "patterns"
	patternListFlagSeparator = ","
)

// patternListValue accumulates comma-separated patterns across repeated flags.
type patternListValue struct {
	target *[]string
}

func (value *patternListValue) Set(input string) error {
	*value.target = append(*value.target, overlay.ParseList(input)...)
	return nil
}

func (value *patternListValue) String() string {
	if value == nil || value.target == nil {
		return ""
	}
	return strings.Join(*value.target, patternListFlagSeparator)
}

func (value *patternListValue) Type() string {
	return patternListFlagTypeName
}

func registerPatternListFlag(flagSet *pflag.FlagSet, target *[]string, name string, usage string) {
	if flagSet == nil || target == nil {
		return
	}
	*target = nil
	flagSet.Var(&patternListValue{target: target}, name, usage)
}
