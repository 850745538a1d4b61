package commands

import (
	"fmt"
	"os"

	"github.com/pageza/flockfeed/backend/config"
	"github.com/pageza/flockfeed/backend/pkg/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Global flags
	envFile  string
	logLevel string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "flockfeed",
	Short: "Poultry feed management and nutrition advisor services",
	Long: `flockfeed runs the two backend services of the poultry feed platform.

Commands:
  flock    - Flock management REST API (users, stages, feeds, records, calculators)
  advisor  - Nutrition advisor backed by a hosted language model
  migrate  - Create or update the flock database schema
  seed     - Load reference growth stages, feeding templates and food types`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "Path to an env file loaded before reading the environment")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override LOG_LEVEL (debug, info, warn, error)")

	rootCmd.AddCommand(flockCmd, advisorCmd, migrateCmd, seedCmd)
}

// bootstrap loads configuration and builds the root logger.
func bootstrap() (*config.Config, *zap.Logger, error) {
	cfg, err := config.LoadConfig(envFile)
	if err != nil {
		return nil, nil, err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}
	log = log.With(zap.String("environment", string(cfg.Env)))
	return cfg, log, nil
}
