// Package cli defines the segysak command tree.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"segysak/internal/log"
	"segysak/pkg/config"
)

// Version is set at build time.
var Version = "0.2"

// Runtime is the state shared by every subcommand.
type Runtime struct {
	Config *config.Config
}

type runtimeKey struct{}

func fromContext(ctx context.Context) *Runtime {
	if rt, ok := ctx.Value(runtimeKey{}).(*Runtime); ok {
		return rt
	}
	return &Runtime{Config: config.DefaultConfig()}
}

// NewRootCmd builds the segysak command and its subcommands.
func NewRootCmd() *cobra.Command {
	var (
		configFile string
		debug      bool
	)

	root := &cobra.Command{
		Use:           "segysak",
		Short:         "SEG-Y Swiss Army Knife: inspect and manipulate SEG-Y seismic data",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.DefaultConfig()
			if configFile != "" {
				var err error
				if cfg, err = config.LoadConfig(configFile); err != nil {
					return fmt.Errorf("config: %w", err)
				}
			}
			if cfg.Output.Verbose {
				log.SetInfo()
			}
			if debug {
				log.SetDebug()
			}
			cmd.SetContext(context.WithValue(cmd.Context(), runtimeKey{}, &Runtime{Config: cfg}))
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Path to a segysak YAML config file")
	root.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug-level logging")

	root.AddCommand(
		newEbcidcCmd(),
		newScanCmd(),
		newScrapeCmd(),
		newInfoCmd(),
		newSynthCmd(),
		newSliceCmd(),
		newConfigCmd(),
	)
	return root
}

// Execute runs the CLI. Called by main().
func Execute() {
	log.InitLogger()
	if err := NewRootCmd().ExecuteContext(context.Background()); err != nil {
		log.WithError(err).Error("segysak failed")
		os.Exit(1)
	}
}
