/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/modelgen/modelgen/core/config"
	"github.com/modelgen/modelgen/core/generator"
	"github.com/modelgen/modelgen/core/logger"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate Python models from the configured schema",
	Long:  `Reads the schema configured in modelgen.yaml and writes the generated Python models.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.Debug("generate called")

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		gen := generator.NewModelGenerator(cfg)
		if err := gen.Generate(); err != nil {
			return fmt.Errorf("failed to generate models: %w", err)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)
}
