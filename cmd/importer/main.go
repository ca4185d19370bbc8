package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/kkpworldkk-arch/furugi-server/internal/config"
	"github.com/kkpworldkk-arch/furugi-server/internal/logger"
)

var (
	cfg        config.Config
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "importer",
	Short: "Load shop listings into the shop store",
	Long:  "Reconciles shop rows from CSV files or the bundled seed list into the shop store, geocoding rows without coordinates.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.LoadConfig(configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := logger.Setup(cfg.LogLevel, cfg.LogFile); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		return nil
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "configs", "directory containing app.env")
	rootCmd.AddCommand(importCmd, seedCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("importer failed")
		os.Exit(1)
	}
}
