package main

import (
	"fmt"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/spf13/cobra"
)

func newPlotCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "plot",
		Short: "render the ramification polygon as an HTML chart",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			w, F, err := buildExtension(cfg)
			if err != nil {
				return err
			}
			np, err := w.RamificationPolygon()
			if err != nil {
				return err
			}
			vertices := np.Vertices()
			if len(vertices) == 0 {
				return fmt.Errorf("the extension is unramified, nothing to plot")
			}

			xs := make([]string, len(vertices))
			data := make([]opts.LineData, len(vertices))
			for i, v := range vertices {
				xs[i] = fmt.Sprintf("%d", v.X)
				y, _ := v.Y.Float64()
				data[i] = opts.LineData{Value: y}
			}

			line := charts.NewLine()
			line.SetGlobalOptions(
				charts.WithTitleOpts(opts.Title{
					Title:    fmt.Sprintf("Ramification polygon, p = %d", cfg.Prime),
					Subtitle: F.String(),
				}),
				charts.WithXAxisOpts(opts.XAxis{Name: "i"}),
				charts.WithYAxisOpts(opts.YAxis{Name: "v(G_i)"}),
			)
			line.SetXAxis(xs).AddSeries("lower hull", data)

			fh, err := os.Create(out)
			if err != nil {
				return err
			}
			defer fh.Close()
			if err := line.Render(fh); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "polygon.html", "output HTML file")
	return cmd
}
