package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"fsinventory/internal/diag"
	"fsinventory/internal/fserr"
	"fsinventory/internal/progress"
	"fsinventory/internal/rename"
)

type renameFlags struct {
	from         string
	to           string
	digits       int
	name         string
	slice        string
	dryRun       bool
	showProgress bool
}

func newRenameCommand(a *app) *cobra.Command {
	f := &renameFlags{}

	cmd := &cobra.Command{
		Use:   "rename <directory>",
		Short: "Batch rename files by extension",
		Long: `Rename every file in the directory whose extension matches --from
(case-insensitively), in name order. New names join, with underscores:
  - characters start..end of the original name (--slice start:end, 1-based)
  - a fixed label (--name)
  - a counter zero-padded to --digits
and end with the --to extension. Existing files are never overwritten;
a name that is already taken is skipped and reported.`,
		Example: `  fsinventory rename ./photos --from .JPG --to .jpg --name trip --digits 4
  fsinventory rename ./logs --from .txt --to .log --slice 1:8 --dry-run`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("digits") {
				f.digits = a.cfg.DigitWidth
			}
			return runRename(a, args[0], f, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.Flags().StringVar(&f.from, "from", "", "Source extension including the dot (e.g. .txt)")
	cmd.Flags().StringVar(&f.to, "to", "", "Target extension including the dot (e.g. .log)")
	cmd.Flags().IntVarP(&f.digits, "digits", "d", rename.DefaultDigitWidth, "Counter width")
	cmd.Flags().StringVarP(&f.name, "name", "n", "", "Label added to every new name")
	cmd.Flags().StringVar(&f.slice, "slice", "", "Keep characters start:end of the original name")
	cmd.Flags().BoolVar(&f.dryRun, "dry-run", false, "Show planned renames without touching files")
	cmd.Flags().BoolVar(&f.showProgress, "progress", false, "Show a progress bar on stderr")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func runRename(a *app, dir string, f *renameFlags, out, errOut io.Writer) error {
	opts := []rename.Option{rename.WithDigitWidth(f.digits)}
	if f.name != "" {
		opts = append(opts, rename.WithDesiredName(f.name))
	}
	if f.slice != "" {
		start, end, err := parseSlice(f.slice)
		if err != nil {
			return err
		}
		opts = append(opts, rename.WithSlice(start, end))
	}

	cfg, err := rename.NewConfig(dir, f.from, f.to, opts...)
	if err != nil {
		return err
	}

	batch := uuid.NewString()
	logger := a.logger.With().Str("batch", batch).Logger()
	collector := diag.NewCollector()

	runOpts := rename.Options{
		Reporter: diag.Tee(collector, diag.NewLogReporter(logger)),
		DryRun:   f.dryRun,
	}
	var bar *progress.Bar
	if f.showProgress {
		bar = progress.New(errOut, "renaming")
		runOpts.Progress = bar
	}

	logger.Info().
		Str("dir", cfg.Dir()).
		Str("from", cfg.SourceExt()).
		Str("to", cfg.TargetExt()).
		Bool("dry_run", f.dryRun).
		Msg("rename batch started")

	records, err := rename.Run(cfg, runOpts)
	if bar != nil {
		bar.Finish()
	}
	if err != nil {
		return fmt.Errorf("rename failed: %w", err)
	}

	for _, r := range records {
		fmt.Fprintf(out, "%s -> %s\n", r.OriginalPath, r.NewPath)
	}

	verb := "Renamed"
	if f.dryRun {
		verb = "Would rename"
	}
	color.New(color.FgGreen).Fprintf(out, "✓ %s %d files\n", verb, len(records))
	if n := collector.Len(); n > 0 {
		color.New(color.FgYellow).Fprintf(out, "⚠ Skipped %d files\n", n)
	}

	logger.Info().Int("renamed", len(records)).Int("skipped", collector.Len()).Msg("rename batch finished")
	return nil
}

// parseSlice reads "start:end" into two integers.
func parseSlice(s string) (int, int, error) {
	startStr, endStr, ok := strings.Cut(s, ":")
	if !ok {
		return 0, 0, fserr.InvalidArgument("slice must look like start:end, got %q", s)
	}
	start, err := strconv.Atoi(strings.TrimSpace(startStr))
	if err != nil {
		return 0, 0, fserr.InvalidArgument("slice start %q is not an integer", startStr)
	}
	end, err := strconv.Atoi(strings.TrimSpace(endStr))
	if err != nil {
		return 0, 0, fserr.InvalidArgument("slice end %q is not an integer", endStr)
	}
	return start, end, nil
}
