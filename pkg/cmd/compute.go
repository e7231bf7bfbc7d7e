package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	log "github.com/sirupsen/logrus"

	"github.com/techalysis/techalysis/pkg/binding"
	"github.com/techalysis/techalysis/pkg/cmd/cmdutil"
)

func init() {
	cmdutil.InputFlags(computeCmd.Flags())
	cmdutil.ParamFlags(computeCmd.Flags())
	outputFlags(computeCmd.Flags())
	computeCmd.Flags().Int("tail", 0, "print only the last N rows")
	computeCmd.Flags().Bool("with-input", false, "include the close series in the output")
	computeCmd.Flags().String("save-state", "", "write the final state snapshot to this file")
	RootCmd.AddCommand(computeCmd)
}

var computeCmd = &cobra.Command{
	Use:          "compute <indicator> --input prices.csv",
	Short:        "compute an indicator over a csv price series",
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
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

		log.Infof("computed %s over %d samples", out.Name, in.Len())

		if path := viper.GetString("save-state"); path != "" {
			if err := writeState(path, out.State); err != nil {
				return err
			}
			log.Infof("state saved to %s", path)
		}

		v := newView(out, nil, nil, viper.GetInt("tail"))
		if viper.GetBool("with-input") {
			v = newView(out, nil, in.Close, viper.GetInt("tail"))
		}

		w, closeOutput, err := openOutput(viper.GetString("output"), cmd.OutOrStdout())
		if err != nil {
			return err
		}

		if err := v.write(w, viper.GetString("format"), viper.GetInt("precision")); err != nil {
			_ = closeOutput()
			return err
		}
		return closeOutput()
	},
}
