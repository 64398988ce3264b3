package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"greenhalal/backend/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "greenhalal",
	Short: "Halal compliance and sustainability scoring",
	Long: "Scores a company/product record for halal integrity, sustainability and ethics, " +
		"issues certificates for Excellent ratings and manages the reference company table.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		return nil
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
