package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// exactArg requires a single positional argument and prints usage otherwise
func exactArg(name, example string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != 1 {
			return fmt.Errorf("invalid number of arguments\n\n"+
				"Usage:\n"+
				"  %s\n\n"+
				"Example:\n"+
				"  %s", cmd.UseLine(), example)
		}
		if args[0] == "" {
			return fmt.Errorf("%s must not be empty", name)
		}
		return nil
	}
}
