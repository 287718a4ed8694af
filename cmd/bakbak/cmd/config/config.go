package config

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	appconfig "github.com/samratjha96/bakbak-sub001/internal/app/config"
)

var configPath string
var force bool

func init() {
	Cmd.AddCommand(initCmd)

	initCmd.Flags().StringVarP(&configPath, "config", "c", appconfig.GetDefaultConfigPath(),
		"where to write the configuration file")
	initCmd.Flags().BoolVarP(&force, "force", "f", false,
		"overwrite an existing file")
}

// Cmd represents the config command
var Cmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the BakBak configuration file",
}

// initCmd writes a starter configuration. Secret fields are written as
// ${VAR} placeholders so the file can be committed without credentials.
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter configuration file with the default settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := os.Stat(configPath); err == nil && !force {
			return fmt.Errorf("%s already exists, use --force to overwrite", configPath)
		}

		if err := appconfig.SaveAppConfig(appconfig.CreateDefaultConfig(), configPath); err != nil {
			return err
		}

		fmt.Printf("wrote %s\n", configPath)
		return nil
	},
}
