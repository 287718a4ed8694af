package migrate

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/samratjha96/bakbak-sub001/internal/app"
	appconfig "github.com/samratjha96/bakbak-sub001/internal/app/config"
)

var configPath string

func init() {
	Cmd.Flags().StringVarP(&configPath, "config", "c", appconfig.GetDefaultConfigPath(),
		"path to the configuration file")
}

// Cmd represents the migrate command
var Cmd = &cobra.Command{
	Use:   "migrate",
	Short: "Copy the library from SQLite to PostgreSQL",
	Long: `Copy the library from SQLite to PostgreSQL

- Reads every recording, note, vocabulary entry, and job from the configured SQLite file
- Writes them into the configured PostgreSQL database, keeping ids and timestamps
- The destination tables should be empty before running`,
	RunE: func(cmd *cobra.Command, args []string) error {
		migrator, cleanup, err := app.InitializeMigrator(configPath)
		if err != nil {
			return err
		}
		defer cleanup()

		if err := migrator.Run(cmd.Context()); err != nil {
			return err
		}

		fmt.Println("migration finished")
		return nil
	},
}
