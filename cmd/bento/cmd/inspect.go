package cmd

import (
	"encoding/hex"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/mirukoto/bento"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [miniscript]",
	Short: "Analyzes a miniscript under every script context",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := argOrStdin(args)
		if err != nil {
			return err
		}
		report, err := bento.Inspect(text)
		if err != nil {
			return err
		}
		return printJSON(report)
	},
}

var parseCmd = &cobra.Command{
	Use:   "parse [hex]",
	Short: "Decodes a hex script into a miniscript and analyzes it",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := argOrStdin(args)
		if err != nil {
			return err
		}
		raw, err := hex.DecodeString(text)
		if err != nil {
			return errors.Wrap(err, "invalid hex script")
		}
		report, err := bento.ParseScript(raw)
		if err != nil {
			return err
		}
		return printJSON(report)
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(parseCmd)
}
