package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"segysak/pkg/geometry"
	"segysak/pkg/segy"
)

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <file>",
		Short: "Describe the layout and geometry of a SEG-Y file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt := fromContext(cmd.Context())
			locs, err := rt.Config.ByteLocs()
			if err != nil {
				return err
			}

			stat, err := os.Stat(args[0])
			if err != nil {
				return err
			}
			f, err := segy.Open(args[0], locs.Options()...)
			if err != nil {
				return err
			}
			defer f.Close()

			out := cmd.OutOrStdout()
			samples := f.Samples()
			fmt.Fprintf(out, "File:     %s (%s)\n", args[0], humanize.Bytes(uint64(stat.Size())))
			fmt.Fprintf(out, "Format:   %s\n", f.Format())
			fmt.Fprintf(out, "Traces:   %s\n", humanize.Comma(int64(f.Tracecount())))
			fmt.Fprintf(out, "Samples:  %d (%g to %g)\n", len(samples), samples[0], samples[len(samples)-1])

			g, err := geometry.Infer(f, locs)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Inlines:  %d (%d to %d)\n", len(g.Ilines), g.Ilines[0], g.Ilines[len(g.Ilines)-1])
			fmt.Fprintf(out, "Xlines:   %d (%d to %d)\n", len(g.Xlines), g.Xlines[0], g.Xlines[len(g.Xlines)-1])
			fmt.Fprintf(out, "Missing:  %d\n", g.Missing)

			corners, err := g.Corners()
			if errors.Is(err, geometry.ErrDegenerate) {
				fmt.Fprintln(out, "Corners:  grid is degenerate")
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(out, "Corners:")
			for _, c := range corners {
				fmt.Fprintf(out, "  il %d xl %d: %.2f, %.2f\n", c.Iline, c.Xline, c.X, c.Y)
			}
			return nil
		},
	}
}
