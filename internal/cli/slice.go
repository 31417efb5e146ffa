package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"segysak/internal/log"
	"segysak/pkg/loader"
	"segysak/pkg/visualization"
)

func newSliceCmd() *cobra.Command {
	var (
		axis  string
		index int
		out   string
		all   bool
	)

	cmd := &cobra.Command{
		Use:   "slice <file>",
		Short: "Render inline, crossline or time slices of a SEG-Y cube to JPEG",
		Args:  cobra.ExactArgs(1),
		Example: `  segysak slice volume.segy --axis iline --index 5 --out il5.jpg
  segysak slice volume.segy --axis sample --all --out slices/`,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt := fromContext(cmd.Context())
			locs, err := rt.Config.ByteLocs()
			if err != nil {
				return err
			}
			if out == "" {
				return fmt.Errorf("--out is required")
			}

			vol, err := loader.Load(args[0], loader.Options{
				ByteLocs: locs,
				Workers:  rt.Config.Processing.Workers,
			})
			if err != nil {
				return err
			}
			viewer := visualization.NewViewer(vol, rt.Config.Output.JPEGQuality)

			if all {
				log.Infof("saving %s slices to %s", axis, out)
				return viewer.SaveSliceSequence(axis, out)
			}

			img, err := viewer.ExtractSlice(axis, index)
			if err != nil {
				return err
			}
			return viewer.SaveSlice(img, out)
		},
	}

	cmd.Flags().StringVar(&axis, "axis", visualization.AxisIline, "Slice axis: iline, xline or sample")
	cmd.Flags().IntVar(&index, "index", 0, "Zero based index along the axis")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output JPEG file, or directory with --all")
	cmd.Flags().BoolVar(&all, "all", false, "Save every slice along the axis")
	return cmd
}
