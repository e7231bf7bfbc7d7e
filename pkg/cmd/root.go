package cmd

import (
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/rifflock/lfshook"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
)

var RootCmd = &cobra.Command{
	Use:   "techalysis",
	Short: "technical analysis indicators",
	Long:  "batch and incremental technical analysis indicators over csv price series",

	// SilenceUsage is an option to silence usage when an error occurs.
	SilenceUsage: true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// local flags of the running command can be set from the config file and env too
		if err := viper.BindPFlags(cmd.Flags()); err != nil {
			return err
		}

		if err := loadDotenv(viper.GetString("dotenv")); err != nil {
			return err
		}

		if configFile := viper.GetString("config"); configFile != "" {
			viper.SetConfigFile(configFile)
			if err := viper.ReadInConfig(); err != nil {
				return err
			}
			log.Debugf("using config file %s", viper.ConfigFileUsed())
		}

		return setupLogging()
	},
}

func init() {
	RootCmd.PersistentFlags().Bool("debug", false, "debug flag")
	RootCmd.PersistentFlags().String("config", "", "config file, its keys are flag names")
	RootCmd.PersistentFlags().String("dotenv", ".env.local", "the dotenv file you want to load")
	RootCmd.PersistentFlags().String("log-file", "", "also write logs to this file as json")
	RootCmd.PersistentFlags().Bool("no-color", false, "disable colored output")
}

// loadDotenv loads the given file and .env when they exist. Variables that
// are already set are not overridden.
func loadDotenv(dotenvFile string) error {
	for _, file := range []string{dotenvFile, ".env"} {
		if file == "" {
			continue
		}
		if _, err := os.Stat(file); err != nil {
			continue
		}
		if err := godotenv.Load(file); err != nil {
			log.WithError(err).Errorf("error loading dotenv file %s", file)
			return err
		}
	}
	return nil
}

func setupLogging() error {
	noColor := viper.GetBool("no-color")
	if noColor {
		color.NoColor = true
	}

	log.SetFormatter(&prefixed.TextFormatter{
		DisableColors:   noColor,
		FullTimestamp:   true,
		TimestampFormat: "15:04:05.000",
	})

	logger := log.StandardLogger()
	if viper.GetBool("debug") {
		logger.SetLevel(log.DebugLevel)
	}

	if logFile := viper.GetString("log-file"); logFile != "" {
		logger.AddHook(
			lfshook.NewHook(
				lfshook.PathMap{
					log.DebugLevel: logFile,
					log.InfoLevel:  logFile,
					log.WarnLevel:  logFile,
					log.ErrorLevel: logFile,
					log.FatalLevel: logFile,
				},
				&log.JSONFormatter{},
			),
		)
	}
	return nil
}

func Execute() {
	viper.SetEnvPrefix("TECHALYSIS")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	// Enable environment variable binding, the env vars are not overloaded yet.
	viper.AutomaticEnv()

	// Once the flags are defined, we can bind config keys with flags.
	if err := viper.BindPFlags(RootCmd.PersistentFlags()); err != nil {
		log.WithError(err).Errorf("failed to bind persistent flags. please check the flag settings.")
	}

	log.SetFormatter(&prefixed.TextFormatter{})

	if err := RootCmd.Execute(); err != nil {
		log.WithError(err).Fatalf("cannot execute command")
	}
}
