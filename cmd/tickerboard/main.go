package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"TickerBoard/internal/config"
	"TickerBoard/internal/logger"
)

var (
	// Global flags
	cfgPath  string
	logLevel string

	cfg *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "tickerboard",
	Short: "TickerBoard - login gate and one-month stock price charts",
	Long: `TickerBoard serves a login page and a stock page that charts the last month
of daily closing prices for a ticker symbol.

Run "tickerboard serve" to start the web server, or "tickerboard fetch AAPL"
to render a chart straight to a PNG file.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env is optional
		_ = godotenv.Load()

		path := cfgPath
		if path == "" {
			path = os.Getenv("CONFIG_PATH")
		}
		if path == "" {
			path = "configs/config.yaml"
		}
		loaded, err := config.Load(path)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if logLevel != "" {
			loaded.Logging.Level = logLevel
		}
		if err := loaded.Validate(); err != nil {
			return fmt.Errorf("config validation: %w", err)
		}
		cfg = loaded

		return logger.Init(logger.Config{
			Level:         cfg.Logging.Level,
			Format:        cfg.Logging.Format,
			FilePath:      cfg.Logging.FilePath,
			RotationSize:  cfg.Logging.RotationSize,
			RetentionDays: cfg.Logging.RetentionDays,
			Service:       "tickerboard",
			Out:           cmd.ErrOrStderr(),
		})
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "config file (default $CONFIG_PATH or configs/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override logging.level (debug, info, warn, error)")

	rootCmd.AddCommand(serveCmd, fetchCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
