package cmd

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/multierr"

	"github.com/techalysis/techalysis/pkg/binding"
	"github.com/techalysis/techalysis/pkg/cmd/cmdutil"
	"github.com/techalysis/techalysis/pkg/config"
	"github.com/techalysis/techalysis/pkg/data/tsv"
)

func init() {
	runCmd.Flags().String("jobs", "", "the jobs file")
	runCmd.Flags().String("output-dir", "", "override the output directory of the jobs file")
	runCmd.Flags().Bool("with-input", true, "include the close series in every file")
	RootCmd.AddCommand(runCmd)
}

var runCmd = &cobra.Command{
	Use:          "run --jobs jobs.yaml",
	Short:        "run the indicators of a jobs file, one tsv file per job",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		jobsFile := viper.GetString("jobs")
		if jobsFile == "" {
			return errors.New("--jobs is required")
		}

		conf, err := config.Load(jobsFile)
		if err != nil {
			return err
		}

		in, err := cmdutil.ReadInputFile(resolvePath(jobsFile, conf.Input), conf.Columns)
		if err != nil {
			return err
		}

		outputDir := viper.GetString("output-dir")
		if outputDir == "" {
			outputDir = resolvePath(jobsFile, conf.OutputDir)
		}
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return err
		}

		var errs error
		for _, job := range conf.Jobs {
			if err := runJob(job, in, outputDir, viper.GetBool("with-input")); err != nil {
				d := binding.Describe(err)
				log.WithField("kind", d.Kind).WithError(err).Errorf("job %s failed", job.Name)
				errs = multierr.Append(errs, errors.Wrapf(err, "job %s", job.Name))
			}
		}
		return errs
	},
}

func runJob(job config.Job, in binding.Input, outputDir string, withInput bool) error {
	out, err := binding.Compute(job.Indicator, in, job.Params)
	if err != nil {
		return err
	}

	var v *view
	if withInput {
		v = newView(out, job.Columns, in.Close, 0)
	} else {
		v = newView(out, job.Columns, nil, 0)
	}

	path := filepath.Join(outputDir, job.Name+".tsv")
	w, err := tsv.NewWriterFile(path)
	if err != nil {
		return err
	}

	if err := w.WriteSeries(v.Offset, v.Names, v.Columns); err != nil {
		_ = w.Close()
		return err
	}

	log.Infof("job %s: %s written to %s", job.Name, job.Indicator, path)
	return w.Close()
}

// resolvePath makes path relative to the directory of the jobs file.
func resolvePath(jobsFile, path string) string {
	if path == "" || path == "-" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(filepath.Dir(jobsFile), path)
}
