package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"segysak/pkg/segy"
)

func newEbcidcCmd() *cobra.Command {
	var put string

	cmd := &cobra.Command{
		Use:   "ebcidc <file>",
		Short: "Print or replace the textual (EBCDIC) header of a SEG-Y file",
		Args:  cobra.ExactArgs(1),
		Example: `  segysak ebcidc volume.segy
  segysak ebcidc volume.segy --put header.txt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if put != "" {
				text, err := readText(put)
				if err != nil {
					return err
				}
				return segy.PutTexthead(args[0], text)
			}

			text, err := segy.GetTexthead(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}

	cmd.Flags().StringVar(&put, "put", "", "Replace the header with the contents of this text file (\"default\" for the segysak template)")
	return cmd
}
