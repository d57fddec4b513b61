package main

import (
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/trainingdesk/brochure-cli/internal/config"
)

var configInitForce bool

var configInitCmd = &cobra.Command{
	Use:   "config-init",
	Short: "Write a config.yaml populated with every default",
	RunE: func(cmd *cobra.Command, args []string) error {
		const path = "config.yaml"

		if !configInitForce {
			if _, err := os.Stat(path); err == nil {
				return eris.Errorf("%s already exists (use --force to overwrite)", path)
			}
		}

		v := viper.New()
		config.SetDefaults(v)

		data, err := yaml.Marshal(v.AllSettings())
		if err != nil {
			return eris.Wrap(err, "config-init: marshal defaults")
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return eris.Wrap(err, "config-init: write file")
		}

		fmt.Printf("wrote %s\n", path)
		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "overwrite an existing config.yaml")
	rootCmd.AddCommand(configInitCmd)
}
