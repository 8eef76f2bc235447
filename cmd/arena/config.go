package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/dash-arena/internal/config"
)

var flagDefaults bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the arena configuration after the search path, --config and
--difficulty have been applied. Use --defaults to print the built-in file,
a good starting point for ~/.arena/configs/arena.yaml.`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagDefaults, "defaults", false, "Print the embedded default YAML")
}

func runConfig(cmd *cobra.Command, args []string) error {
	if flagDefaults {
		fmt.Print(string(config.DefaultYAML()))
		return nil
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	data, err := config.Marshal(cfg)
	if err != nil {
		return err
	}
	fmt.Print(string(data))
	return nil
}
