package cmd

import (
	"encoding/json"
	"math"
	"os"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/techalysis/techalysis/pkg/binding"
)

func init() {
	nextCmd.Flags().String("state", "", "state snapshot file written by compute --save-state")
	nextCmd.Flags().Float64("value", math.NaN(), "the new close sample")
	nextCmd.Flags().Float64("high", math.NaN(), "the new high sample")
	nextCmd.Flags().Float64("low", math.NaN(), "the new low sample")
	nextCmd.Flags().Bool("write", false, "overwrite the state file with the advanced state")
	nextCmd.Flags().String("save-state", "", "write the advanced state to this file")
	outputFlags(nextCmd.Flags())
	RootCmd.AddCommand(nextCmd)
}

var nextCmd = &cobra.Command{
	Use:          "next <indicator> --state state.json --value x [--high h --low l]",
	Short:        "advance a state snapshot by one sample",
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		statePath := viper.GetString("state")
		if statePath == "" {
			return errors.New("--state is required")
		}

		raw, err := os.ReadFile(statePath)
		if err != nil {
			return err
		}

		sample := binding.Sample{
			Close: viper.GetFloat64("value"),
			High:  viper.GetFloat64("high"),
			Low:   viper.GetFloat64("low"),
		}

		out, err := binding.Next(args[0], json.RawMessage(raw), sample)
		if err != nil {
			d := binding.Describe(err)
			log.WithField("kind", d.Kind).Error(d.Message)
			return err
		}

		savePath := viper.GetString("save-state")
		if viper.GetBool("write") {
			savePath = statePath
		}
		if savePath != "" {
			if err := writeState(savePath, out.State); err != nil {
				return err
			}
			log.Infof("state saved to %s", savePath)
		}

		w, closeOutput, err := openOutput(viper.GetString("output"), cmd.OutOrStdout())
		if err != nil {
			return err
		}

		if err := newView(out, nil, nil, 0).write(w, viper.GetString("format"), viper.GetInt("precision")); err != nil {
			_ = closeOutput()
			return err
		}
		return closeOutput()
	},
}
