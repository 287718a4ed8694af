package export

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/samratjha96/bakbak-sub001/internal/app"
	appconfig "github.com/samratjha96/bakbak-sub001/internal/app/config"
)

var configPath string
var outputFilePath string

func init() {
	Cmd.Flags().StringVarP(&configPath, "config", "c", appconfig.GetDefaultConfigPath(),
		"path to the configuration file")
	Cmd.Flags().StringVarP(&outputFilePath, "outputFilePath", "o", "bakbak_export.xlsx",
		"set outputFilePath")
}

// Cmd represents the export command
var Cmd = &cobra.Command{
	Use:   "export",
	Short: "Export the recording library to excel",
	Long: `Export the recording library to excel

- One sheet of recordings with transcripts and translations
- One sheet of saved vocabulary`,
	RunE: func(cmd *cobra.Command, args []string) error {
		exporter, cleanup, err := app.InitializeExporter(configPath)
		if err != nil {
			return err
		}
		defer cleanup()

		stats, err := exporter.ExportAll(cmd.Context(), outputFilePath)
		if err != nil {
			return err
		}

		fmt.Printf("export finished, %d recordings and %d vocabulary entries written to %v\n",
			stats.Recordings, stats.Vocabulary, outputFilePath)
		return nil
	},
}
