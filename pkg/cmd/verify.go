package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/multierr"

	"github.com/techalysis/techalysis/pkg/binding"
	"github.com/techalysis/techalysis/pkg/cmd/cmdutil"
	"github.com/techalysis/techalysis/pkg/config"
	"github.com/techalysis/techalysis/pkg/style"
)

func init() {
	cmdutil.InputFlags(verifyCmd.Flags())
	cmdutil.ParamFlags(verifyCmd.Flags())
	verifyCmd.Flags().String("jobs", "", "verify the jobs of this jobs file instead")
	verifyCmd.Flags().Int("stride", 1, "check every N-th prefix")
	verifyCmd.Flags().Float64("tolerance", binding.DefaultTolerance, "relative tolerance")
	RootCmd.AddCommand(verifyCmd)
}

var verifyCmd = &cobra.Command{
	Use:   "verify [indicator...] --input prices.csv",
	Short: "check that outputs never look ahead and that next reproduces compute",
	Long: "verify recomputes every prefix of the input and compares it with the full run, " +
		"then advances a snapshot sample by sample and compares it again. " +
		"Without arguments every registered indicator is verified with its defaults.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		var jobs []config.Job
		var in binding.Input
		var err error

		if jobsFile := viper.GetString("jobs"); jobsFile != "" {
			conf, err := config.Load(jobsFile)
			if err != nil {
				return err
			}
			jobs = conf.Jobs
			if in, err = cmdutil.ReadInputFile(resolvePath(jobsFile, conf.Input), conf.Columns); err != nil {
				return err
			}
		} else {
			if in, err = cmdutil.InputFromConfig(); err != nil {
				return err
			}

			params, err := cmdutil.ParamsFromFlags(cmd.Flags())
			if err != nil {
				return err
			}

			names := args
			if len(names) == 0 {
				names = binding.Names()
			}
			for _, name := range names {
				jobs = append(jobs, config.Job{Name: name, Indicator: name, Params: params})
			}
		}

		opts := binding.VerifyOptions{
			Tolerance: viper.GetFloat64("tolerance"),
			Stride:    viper.GetInt("stride"),
		}

		t := table.NewWriter()
		t.SetOutputMirror(cmd.OutOrStdout())
		t.SetStyle(*style.NewDefaultTableStyle())
		t.AppendHeader(table.Row{"job", "lookback", "samples", "max prefix diff", "max next diff", "result"})

		var errs error
		for _, job := range jobs {
			report, err := binding.Verify(job.Indicator, in, job.Params, opts)
			if err != nil {
				log.WithError(err).Errorf("%s: verification failed", job.Name)
				errs = multierr.Append(errs, fmt.Errorf("%s: %w", job.Name, err))
			}
			if report == nil {
				t.AppendRow(table.Row{job.Name, "", "", "", "", binding.Describe(err).Kind})
				continue
			}

			result := color.GreenString("ok")
			if err != nil {
				result = color.RedString("FAIL")
			}
			t.AppendRow(table.Row{
				job.Name,
				report.Lookback,
				report.Samples,
				fmt.Sprintf("%.3g", report.MaxPrefixDiff),
				fmt.Sprintf("%.3g", report.MaxStreamDiff),
				result,
			})
		}

		t.Render()
		return errs
	},
}
