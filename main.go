package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/openrelayxyz/partmanager/internal/config"
	"github.com/openrelayxyz/partmanager/internal/logging"
)

var version = "dev"

type app struct {
	configPath string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "part",
		Short: "split and combine files",
		Long: `part splits a file into numbered part files and combines them again.

Every part and the whole file are checksummed (CRC-32) into a <file>.partinfo
sidecar; combine refuses to write any output unless all checksums match.`,
		Version:       version,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", config.DefaultPath(), "config file")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(a.newSplitCmd())
	root.AddCommand(a.newCombineCmd())
	root.AddCommand(a.newVerifyCmd())
	root.AddCommand(a.newInfoCmd())
	return root
}

func (a *app) setup() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.Logging, a.verbose)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logger
	return nil
}

// workDir resolves where parts are read from and combined output is written:
// the --dir flag, then combine.output_dir, then the current directory.
func (a *app) workDir(flagDir string) (string, error) {
	if flagDir != "" {
		return flagDir, nil
	}
	if a.cfg.Combine.OutputDir != "" {
		return a.cfg.Combine.OutputDir, nil
	}
	return os.Getwd()
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
