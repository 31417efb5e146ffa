package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"segysak/pkg/synth"
)

func newSynthCmd() *cobra.Command {
	var (
		size int
		skew bool
	)

	cmd := &cobra.Command{
		Use:   "synth <file>",
		Short: "Write a synthetic all-zero SEG-Y cube with regular or skewed geometry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := synth.CreateTempSEGY(size, args[0], skew); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d traces to %s\n", size*size, args[0])
			return nil
		},
	}

	cmd.Flags().IntVar(&size, "size", 10, "Side length of the cube")
	cmd.Flags().BoolVar(&skew, "skew", false, "Shear the inline numbering to give an irregular footprint")
	return cmd
}
