package cli

import (
	"github.com/spf13/cobra"

	"github.com/temirov/devassist/internal/config"
)

const (
	configUse                  = "config"
	configShortDescription     = "Inspect or create the .aiconfig.json configuration"
	configShowUse              = "show"
	configShowShortDescription = "Print the resolved configuration as YAML"
	configInitUse              = "init"
	configInitShortDescription = "Write the default configuration to ./.aiconfig.json"
	forceFlagName              = "force"
	forceFlagDescription       = "overwrite an existing configuration file"
	configCreatedFormat        = "Configuration written to %s"
)

// createConfigCommand returns the config command with its show and init subcommands.
func createConfigCommand(deps *dependencies, globals *globalOptions) *cobra.Command {
	configCommand := &cobra.Command{
		Use:   configUse,
		Short: configShortDescription,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			return command.Help()
		},
	}

	showCommand := &cobra.Command{
		Use:   configShowUse,
		Short: configShowShortDescription,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			workingDirectory, err := deps.resolveWorkingDirectory()
			if err != nil {
				return err
			}
			rendered, err := config.Resolve(workingDirectory, globals.configPath, deps.logger).YAML()
			if err != nil {
				return err
			}
			_, err = deps.printer.Writer().Write([]byte(rendered))
			return err
		},
	}

	var force bool
	initCommand := &cobra.Command{
		Use:   configInitUse,
		Short: configInitShortDescription,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			workingDirectory, err := deps.resolveWorkingDirectory()
			if err != nil {
				return err
			}
			destination, err := config.InitializeConfiguration(config.InitOptions{WorkingDirectory: workingDirectory, Force: force})
			if err != nil {
				return err
			}
			deps.printer.Success(configCreatedFormat, destination)
			return nil
		},
	}
	initCommand.Flags().BoolVar(&force, forceFlagName, false, forceFlagDescription)

	configCommand.AddCommand(showCommand, initCommand)
	return configCommand
}
