/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/modelgen/modelgen/core/config"
	"github.com/modelgen/modelgen/core/generator"
	"github.com/modelgen/modelgen/core/logger"
	"github.com/modelgen/modelgen/core/watcher"
	"github.com/spf13/cobra"
)

// devCmd regenerates on every schema or template change.
var devCmd = &cobra.Command{
	Use:   "dev",
	Short: "Watch the schema and regenerate on change",
	Long:  `Watches the schema file and the custom template directory and regenerates the models whenever either changes.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.Debug("dev called")

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		regenerate := func() {
			gen := generator.NewModelGenerator(cfg)
			if err := gen.Generate(); err != nil {
				logger.Error("Regeneration failed: %v", err)
			}
		}

		regenerate()

		w, err := watcher.New(cfg, regenerate)
		if err != nil {
			return fmt.Errorf("failed to create watcher: %w", err)
		}
		defer w.Close()

		logger.Info("Watching for changes (ctrl-c to stop)")
		return w.Watch()
	},
}

func init() {
	rootCmd.AddCommand(devCmd)
}
