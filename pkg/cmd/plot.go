package cmd

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/techalysis/techalysis/pkg/binding"
	"github.com/techalysis/techalysis/pkg/chart"
	"github.com/techalysis/techalysis/pkg/cmd/cmdutil"
)

func init() {
	cmdutil.InputFlags(plotCmd.Flags())
	cmdutil.ParamFlags(plotCmd.Flags())
	plotCmd.Flags().String("out", "", "the png file to write")
	plotCmd.Flags().Bool("with-input", false, "plot the close series too, for indicators on the price scale")
	plotCmd.Flags().Bool("mark-lookback", false, "mark the first valid value of every column")
	RootCmd.AddCommand(plotCmd)
}

var plotCmd = &cobra.Command{
	Use:          "plot <indicator> --input prices.csv --out chart.png",
	Short:        "plot an indicator to a png chart",
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := viper.GetString("out")
		if path == "" {
			return errors.New("--out is required")
		}

		in, err := cmdutil.InputFromConfig()
		if err != nil {
			return err
		}

		params, err := cmdutil.ParamsFromFlags(cmd.Flags())
		if err != nil {
			return err
		}

		out, err := binding.Compute(args[0], in, params)
		if err != nil {
			return err
		}

		canvas := chart.NewCanvas(out.Name)
		if viper.GetBool("with-input") {
			canvas.PlotSeries("close", in.Close)
		}
		for _, col := range out.Order {
			canvas.PlotSeries(col, out.Column(col))
			canvas.Annotate(col, out.Column(col), chart.LastValue{Precision: 4})
			if viper.GetBool("mark-lookback") {
				canvas.Annotate(col+" lookback", out.Column(col), chart.FirstValid{})
			}
		}

		if err := canvas.SaveFile(path); err != nil {
			return err
		}

		log.Infof("chart saved to %s", path)
		return nil
	},
}
