// RollCut: one-dimensional cutting stock optimizer.
//
// Master rolls of a single width are cut into ordered piece widths with
// minimal waste. Patterns are found by column generation and the final
// plan is the integer re-solve of the restricted master problem.
//
// Build:
//   go build -o rollcut ./cmd/rollcut
//
// With the GLPK backend (needs libglpk and cgo):
//   go build -tags glpk -o rollcut ./cmd/rollcut

package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/piwi3910/RollCut/internal/model"
	"github.com/piwi3910/RollCut/internal/project"
)

var (
	logLevel   string
	configPath string

	log = logrus.New()
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "rollcut",
		Short:        "Cut master rolls into ordered widths with minimal waste",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			lvl := logrus.InfoLevel
			if logLevel != "" {
				var err error
				if lvl, err = logrus.ParseLevel(logLevel); err != nil {
					return err
				}
			}
			log.SetLevel(lvl)
			log.SetOutput(os.Stderr)
			log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
			return nil
		},
	}

	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error); defaults to the config value")
	root.PersistentFlags().StringVar(&configPath, "config", project.DefaultConfigPath(), "path to the configuration file")

	root.AddCommand(
		newSolveCmd(),
		newCompareCmd(),
		newEstimateCmd(),
		newConfigCmd(),
		newPresetsCmd(),
	)
	return root
}

// loadConfig reads the configuration file and applies its log level unless
// one was given on the command line.
func loadConfig(cmd *cobra.Command) (model.AppConfig, error) {
	cfg, err := project.LoadAppConfig(configPath)
	if err != nil {
		return cfg, err
	}
	if !cmd.Flags().Changed("log-level") && cfg.LogLevel != "" {
		if lvl, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
			log.SetLevel(lvl)
		} else {
			log.WithField("level", cfg.LogLevel).Warn("ignoring unknown log level in config")
		}
	}
	return cfg, nil
}
