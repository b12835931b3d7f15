package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"fsinventory/internal/compare"
	"fsinventory/internal/diag"
	"fsinventory/internal/snapshot"
	"fsinventory/internal/walker"
)

func newCompareCommand(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "compare <snapshot-file> <directory>",
		Short: "Compare a saved snapshot against the current directory",
		Long: `Compare rescans the directory and reports entries that were added,
removed, or changed size since the snapshot was taken.

Exit code: 0 if unchanged, 1 if changes were found, 2 on error.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format == "" {
				format = a.cfg.Format
			}
			return runCompare(a, args[0], args[1], format, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "Snapshot format (default: from file extension)")

	return cmd
}

func runCompare(a *app, snapshotPath, dir, formatName string, out io.Writer) error {
	format, err := resolveFormat(formatName, snapshotPath)
	if err != nil {
		return err
	}

	oldEntries, err := snapshot.Load(snapshotPath, format)
	if err != nil {
		return fmt.Errorf("failed to load snapshot: %w", err)
	}

	newEntries, err := walker.Scan(dir, walker.Options{
		Exclude:  a.cfg.Exclude,
		Reporter: diag.NewLogReporter(a.logger),
	})
	if err != nil {
		return fmt.Errorf("failed to scan directory: %w", err)
	}

	oldFP, err := snapshot.Fingerprint(oldEntries)
	if err != nil {
		return err
	}
	newFP, err := snapshot.Fingerprint(newEntries)
	if err != nil {
		return err
	}
	a.logger.Debug().Str("old", oldFP).Str("new", newFP).Msg("fingerprints")

	// equal roots mean identical ordered entries; skip the entry diff
	if oldFP == newFP {
		fmt.Fprintln(out, "No changes detected.")
		fmt.Fprintf(out, "Fingerprint: unchanged (%s)\n", newFP)
		return nil
	}

	result := compare.Compare(oldEntries, newEntries)
	fmt.Fprintln(out, compare.FormatReport(result))
	fmt.Fprintf(out, "Fingerprint: changed (%s -> %s)\n", oldFP, newFP)

	if result.HasChanges() {
		return ErrChangesDetected
	}
	return nil
}
