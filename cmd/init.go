/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/modelgen/modelgen/core/logger"
	"github.com/modelgen/modelgen/core/template_engine"
	"github.com/spf13/cobra"
)

var (
	force bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new modelgen project",
	Long:  `Creates a modelgen.yaml and an example schema in the given directory.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		logger.Debug("init called")
		dir := args[0]
		if _, err := os.Stat(dir); err == nil {
			if !force {
				fmt.Printf("Directory %s already exists. Use --force to overwrite.\n", dir)
				return
			}
			logger.Debug("Directory %s already exists. Overwriting.", dir)
			os.RemoveAll(dir)
		}

		initData := map[string]string{
			"ProjectName": strings.ToLower(dir),
		}
		os.MkdirAll(dir, os.ModePerm)
		engine := template_engine.NewTemplateEngine()
		if err := engine.GenerateFolder(template_engine.TEMPLATES.INIT.Ref, dir, initData); err != nil {
			fmt.Printf("Failed to generate project: %v\n", err)
			return
		}
		fmt.Printf("Successfully generated project: %s\n", dir)
		fmt.Printf("Next Steps:\n")
		fmt.Printf("  - cd %s\n", dir)
		fmt.Printf("  - modelgen generate\n")
	},
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().BoolVar(&force, "force", false, "Force overwrite existing files")
}
