package cli

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"fsinventory/internal/diag"
	"fsinventory/internal/snapshot"
	"fsinventory/internal/walker"
)

func newScanCommand(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "scan <directory> [output-file]",
		Short: "Scan a directory tree into an ordered snapshot",
		Long: `Scan walks the directory tree and records every file and subdirectory with
its size; directory sizes are the sum of all files below them.

The snapshot is written to output-file (or output_file from the config).
Use "-" to write it to stdout. The format comes from --format, the config,
or the output file extension: json, csv, yaml or gob.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := a.cfg.OutputFile
			if len(args) == 2 {
				output = args[1]
			}
			if format == "" {
				format = a.cfg.Format
			}
			return runScan(a, args[0], output, format, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "Snapshot format (json, csv, yaml, gob)")

	return cmd
}

func runScan(a *app, dir, output, formatName string, out io.Writer) error {
	collector := diag.NewCollector()
	reporter := diag.Tee(collector, diag.NewLogReporter(a.logger))

	a.logger.Debug().Str("root", dir).Strs("exclude", a.cfg.Exclude).Msg("scanning")

	entries, err := walker.Scan(dir, walker.Options{Exclude: a.cfg.Exclude, Reporter: reporter})
	if err != nil {
		return fmt.Errorf("failed to scan directory: %w", err)
	}

	fingerprint, err := snapshot.Fingerprint(entries)
	if err != nil {
		return err
	}

	if output == "-" {
		format := snapshot.FormatJSON
		if formatName != "" {
			if format, err = snapshot.ParseFormat(formatName); err != nil {
				return err
			}
		}
		return snapshot.Encode(out, entries, format)
	}

	if output != "" {
		format, err := resolveFormat(formatName, output)
		if err != nil {
			return err
		}
		if err := snapshot.Save(entries, output, format); err != nil {
			return fmt.Errorf("failed to save snapshot: %w", err)
		}
		a.logger.Info().Str("output", output).Str("format", string(format)).Msg("snapshot saved")
	}

	abs, _ := filepath.Abs(dir)
	color.New(color.FgGreen).Fprintf(out, "✓ Scanned %s\n", abs)
	fmt.Fprintf(out, "  Entries: %d\n", len(entries))
	fmt.Fprintf(out, "  Total size: %s (%d bytes)\n", snapshot.FormatSize(entries[0].SizeBytes), entries[0].SizeBytes)
	fmt.Fprintf(out, "  Fingerprint: %s\n", fingerprint)
	if output != "" {
		fmt.Fprintf(out, "  Output: %s\n", output)
	}
	if n := collector.Len(); n > 0 {
		color.New(color.FgYellow).Fprintf(out, "\n⚠ %d items reported diagnostics\n", n)
	}

	return nil
}

// resolveFormat prefers an explicit name and falls back to the file extension.
func resolveFormat(name, path string) (snapshot.Format, error) {
	if name != "" {
		return snapshot.ParseFormat(name)
	}
	return snapshot.FormatFromPath(path)
}
