package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"fsinventory/internal/pathparse"
)

func newParseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <path>...",
		Short: "Split paths into directory, stem and extension",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(args, cmd.OutOrStdout())
		},
	}
}

func runParse(paths []string, out io.Writer) error {
	for _, p := range paths {
		dir, stem, ext, err := pathparse.Parse(p)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s\n  directory: %s\n  stem: %s\n  extension: %s\n", p, dir, stem, ext)
	}
	return nil
}
