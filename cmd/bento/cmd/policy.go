package cmd

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/mirukoto/bento"
	"github.com/mirukoto/bento/script"
)

var compileType string

var policyCmd = &cobra.Command{
	Use:   "policy [policy]",
	Short: "Analyzes a spending policy",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := argOrStdin(args)
		if err != nil {
			return err
		}
		report, err := bento.DescribePolicy(text)
		if err != nil {
			return err
		}
		return printJSON(report)
	},
}

var compileCmd = &cobra.Command{
	Use:   "compile [policy]",
	Short: "Compiles a concrete policy into a script",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := argOrStdin(args)
		if err != nil {
			return err
		}
		ctx, ok := script.FromName(compileType)
		if !ok {
			return errors.Errorf("unknown script type %s", compileType)
		}
		compiled, err := bento.Compile(text, ctx)
		if err != nil {
			return err
		}
		return printJSON(compiled)
	},
}

func init() {
	compileCmd.Flags().StringVar(&compileType, "type", "tapscript", "Script type to compile to (bare, p2sh, segwitv0, tapscript)")
	rootCmd.AddCommand(policyCmd)
	rootCmd.AddCommand(compileCmd)
}
