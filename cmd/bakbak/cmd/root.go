package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/samratjha96/bakbak-sub001/cmd/bakbak/cmd/config"
	"github.com/samratjha96/bakbak-sub001/cmd/bakbak/cmd/export"
	"github.com/samratjha96/bakbak-sub001/cmd/bakbak/cmd/ingest"
	"github.com/samratjha96/bakbak-sub001/cmd/bakbak/cmd/migrate"
	"github.com/samratjha96/bakbak-sub001/cmd/bakbak/cmd/serve"
	"github.com/samratjha96/bakbak-sub001/cmd/bakbak/cmd/version"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "bakbak",
	Short: "Recording library with background transcription for language learners",
	Long: `BakBak keeps a library of speaking-practice recordings and turns them into
text the learner can study.
- serve runs the HTTP API and the background transcription processor
- ingest bulk-imports a directory of existing recordings
- export writes the library to an excel workbook
- migrate copies the library from SQLite to PostgreSQL`,
	TraverseChildren: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serve.Cmd)
	rootCmd.AddCommand(ingest.Cmd)
	rootCmd.AddCommand(export.Cmd)
	rootCmd.AddCommand(migrate.Cmd)
	rootCmd.AddCommand(config.Cmd)
	rootCmd.AddCommand(version.Cmd)
}
