package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/kgraph-cli/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "kgraph",
	Short: "Knowledge graph extraction and post-processing pipeline",
	Long:  "Extracts subject-predicate-object triples from documents via Claude, filters the resulting graph, and exports it to analysis-ready formats.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if profile, _ := cmd.Flags().GetString("profile"); profile != "" {
			p, err := config.GetProfile(profile)
			if err != nil {
				return err
			}
			config.ApplyProfile(cfg, p)
		}

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().String("profile", "", "configuration profile to apply (see 'kgraph profiles list')")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
