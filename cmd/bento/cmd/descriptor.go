package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mirukoto/bento/descriptor"
)

var descriptorCmd = &cobra.Command{
	Use:     "descriptor [descriptor]",
	Aliases: []string{"desc"},
	Short:   "Gets information about an output descriptor",
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := argOrStdin(args)
		if err != nil {
			return err
		}
		info, err := descriptor.Describe(text, network)
		if err != nil {
			return err
		}
		return printJSON(info)
	},
}

func init() {
	rootCmd.AddCommand(descriptorCmd)
}
