// Command plaindump generates and inspects files of plain records.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rawbytedev/plain"
)

type app struct {
	configFile string
	cfg        *Config
	log        *zap.Logger
}

func newRootCommand() *cobra.Command {
	a := &app{log: zap.NewNop()}

	cmd := &cobra.Command{
		Use:           "plaindump [command]",
		Short:         "Generate and inspect plain record files",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(a.configFile)
			if err != nil {
				return err
			}
			log, err := newLogger(cfg)
			if err != nil {
				return err
			}
			a.cfg, a.log = cfg, log
			plain.SetLogger(log)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.log.Sync()
		},
	}

	cmd.PersistentFlags().StringVar(&a.configFile, "config", "", "YAML configuration file")
	cmd.AddCommand(
		newGenCommand(a),
		newHeaderCommand(a),
		newViewCommand(a),
		newBrowseCommand(a),
	)
	return cmd
}

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "plaindump: %s\n", err)
		os.Exit(1)
	}
}
