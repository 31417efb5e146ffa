package cli

import (
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"segysak/internal/log"
	"segysak/pkg/scan"
)

func newScanCmd() *cobra.Command {
	var (
		maxTraces int
		nonZero   bool
	)

	cmd := &cobra.Command{
		Use:   "scan <file>",
		Short: "Summarise every trace header field of a SEG-Y file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt := fromContext(cmd.Context())
			if !cmd.Flags().Changed("max-traces") {
				maxTraces = rt.Config.Processing.MaxScanTraces
			}

			stats, err := scan.HeaderScan(args[0], maxTraces)
			if err != nil {
				return err
			}
			log.Infof("scanned %s", args[0])

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', tabwriter.AlignRight)
			fmt.Fprintln(w, "byte\tfield\tcount\tmean\tstd\tmin\t25%\t50%\t75%\tmax\t")
			for _, s := range stats {
				if nonZero && s.Constant() && s.Min == 0 {
					continue
				}
				fmt.Fprintf(w, "%d\t%s\t%d\t%.6g\t%.6g\t%.6g\t%.6g\t%.6g\t%.6g\t%.6g\t\n",
					int(s.Field), s.Name(), s.Count, s.Mean, s.Std, s.Min, s.Q25, s.Q50, s.Q75, s.Max)
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVarP(&maxTraces, "max-traces", "n", 0, "Number of traces to scan, 0 for all (default from config)")
	cmd.Flags().BoolVar(&nonZero, "non-zero", false, "Hide fields that are zero in every trace")
	return cmd
}

func newScrapeCmd() *cobra.Command {
	var (
		out       string
		fields    string
		maxTraces int
		bin       bool
	)

	cmd := &cobra.Command{
		Use:   "scrape <file>",
		Short: "Export trace headers to CSV, or print the binary header",
		Args:  cobra.ExactArgs(1),
		Example: `  segysak scrape volume.segy --out headers.csv --fields INLINE_3D,CROSSLINE_3D,CDP_X,CDP_Y
  segysak scrape volume.segy --bin`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if bin {
				values, err := scan.BinScrape(args[0])
				if err != nil {
					return err
				}
				names := make([]string, 0, len(values))
				for name := range values {
					names = append(names, name)
				}
				sort.Strings(names)
				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
				for _, name := range names {
					fmt.Fprintf(w, "%s\t%d\n", name, values[name])
				}
				return w.Flush()
			}

			if out == "" {
				return fmt.Errorf("--out is required unless --bin is set")
			}
			selected, err := parseFields(fields)
			if err != nil {
				return err
			}
			headers, err := scan.HeaderScrape(args[0], selected, maxTraces)
			if err != nil {
				return err
			}
			if err := scan.WriteCSV(out, headers, selected); err != nil {
				return err
			}
			log.Infof("wrote %d headers to %s", len(headers), out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "CSV file to write")
	cmd.Flags().StringVar(&fields, "fields", "", "Comma separated field names or byte locations (default all)")
	cmd.Flags().IntVarP(&maxTraces, "max-traces", "n", 0, "Number of traces to export, 0 for all")
	cmd.Flags().BoolVar(&bin, "bin", false, "Print the binary header instead")
	return cmd
}
