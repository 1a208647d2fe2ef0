// main project file, entry point of the cli
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/CiaranMcAleer/medref/internal/config"
	"github.com/CiaranMcAleer/medref/internal/logging"
)

var version = "dev" // Version set during build with go build -ldflags "-X main.version=1.2.3"

var (
	cfgFile string
	verbose bool
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "medref",
		Short: "Scaffold and maintain a static medical reference library",
		Long: `medref lays out a static medical reference library (one folder per
category, each with an index.html) and keeps every category index's topic
list in step with the HTML files saved next to it.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./medref.yaml)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug output")
	root.AddCommand(newSetupCmd(), newUpdateCmd())
	return root
}

// loadConfig reads settings for cmd and returns them with a logger.
func loadConfig(cmd *cobra.Command) (*config.Config, *zap.Logger, error) {
	logger := logging.New(os.Stderr, verbose)
	cfg, used, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return nil, logger, err
	}
	if used != "" {
		logger.Debug("using config file", zap.String("path", used))
	}
	return cfg, logger, nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
