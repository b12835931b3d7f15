// Package cli wires the scanner, serializers and rename engine into the
// fsinventory command tree.
package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"fsinventory/internal/config"
	"fsinventory/internal/logging"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// ErrChangesDetected is returned by `compare` when the tree differs from the snapshot.
var ErrChangesDetected = errors.New("changes detected")

// Exit codes follow diff(1): 0 no changes, 1 changes, 2 trouble.
const (
	ExitOK      = 0
	ExitChanges = 1
	ExitError   = 2
)

type app struct {
	configPath string
	logLevel   string
	logJSON    bool

	cfg    *config.Config
	logger zerolog.Logger
}

// setup loads the config file and builds the logger; flags win over the file.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.LoadConfig(a.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	a.cfg = cfg

	level := cfg.LogLevel
	if a.logLevel != "" {
		level = a.logLevel
	}
	logger, err := logging.New(cmd.ErrOrStderr(), level, !a.logJSON)
	if err != nil {
		return err
	}
	a.logger = logger
	return nil
}

// NewRootCommand creates and returns the root cobra command for fsinventory
func NewRootCommand() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "fsinventory",
		Short: "Directory inventory snapshots and batch file renaming",
		Long: `fsinventory scans a directory tree into an ordered snapshot of every file
and subdirectory with aggregated sizes, and renames batches of files by
extension using a label, a slice of the original name and a counter.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", config.DefaultPath, "Config file path")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
	cmd.PersistentFlags().BoolVar(&a.logJSON, "log-json", false, "Emit logs as JSON lines")

	cmd.AddCommand(newScanCommand(a))
	cmd.AddCommand(newRenameCommand(a))
	cmd.AddCommand(newCompareCommand(a))
	cmd.AddCommand(newParseCommand())

	return cmd
}

// Execute runs the command tree with args and returns the process exit code.
func Execute(args []string, stdout, stderr io.Writer) int {
	cmd := NewRootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.Execute()
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrChangesDetected):
		return ExitChanges
	default:
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return ExitError
	}
}
