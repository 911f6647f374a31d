package cmd

import (
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/mirukoto/bento/descriptor"
	"github.com/mirukoto/bento/log"
)

var (
	networkName string
	logLevel    string

	network *descriptor.Network
)

var cmdLogger = log.ModuleLogger("cmd")

var rootCmd = &cobra.Command{
	Use:          "bento",
	Short:        "A miniscript and policy toolbox",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := log.SetLevel(logLevel); err != nil {
			return errors.Wrap(err, "invalid log level")
		}
		n, err := descriptor.NetworkFromName(networkName)
		if err != nil {
			return errors.Wrap(err, "invalid network")
		}
		network = n
		cmdLogger.Debug("configured", "network", n.Name)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&networkName, "network", "n", "mainnet", "Sets the network used for addresses")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warning", "Sets the log level")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
