package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/deniz-lab/wrangle/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "wrangle",
	Short: "Reformat raw instrument exports into tidy tables",
	Long:  "Reads nanodrop, fluorimeter (.ifx), and plate-reader exports, parses the metadata encoded in sample names, reshapes everything into tidy tables, and optionally plots the result.",
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
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
