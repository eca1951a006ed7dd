package main

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"starsieve/pkg/config"
	"starsieve/pkg/logging"
)

var (
	cfg *config.Config
	log zerolog.Logger

	flagVerbose   bool
	flagQuiet     bool
	flagLogLevel  string
	flagLogFormat string
)

// rootCmd is the base command for starsieve.
var rootCmd = &cobra.Command{
	Use:   "starsieve",
	Short: "Prepare reference-star lists for astrometric plate-solving",
	Long: `Starsieve converts source-extraction catalogs into reduced
reference-star lists for plate-solving. It filters implausible
detections, ranks the survivors by brightness, thins them over a uniform
grid so the reference set spans the image, and writes the selected
coordinates as a FITS binary table (.axy).`,
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("loading configuration: %w", err)
		}
		cfg.Verbose = flagVerbose
		cfg.Quiet = flagQuiet
		if flagLogLevel != "" {
			cfg.LogLevel = flagLogLevel
		}
		if flagLogFormat != "" {
			cfg.LogFormat = flagLogFormat
		}

		log = logging.New(&logging.Config{
			Level:  cfg.EffectiveLogLevel(),
			Format: cfg.LogFormat,
		})
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "only log warnings and errors")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&flagLogFormat, "log-format", "", "log format (auto, console, json)")
}
