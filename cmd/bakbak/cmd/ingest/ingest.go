package ingest

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/samratjha96/bakbak-sub001/internal/app"
	appconfig "github.com/samratjha96/bakbak-sub001/internal/app/config"
	"github.com/samratjha96/bakbak-sub001/internal/app/ingest"
)

var (
	configPath string
	inputDir   string
	language   string
	transcribe bool
	limit      int
	parallel   int
)

func init() {
	Cmd.Flags().StringVarP(&configPath, "config", "c", appconfig.GetDefaultConfigPath(),
		"path to the configuration file")
	Cmd.Flags().StringVarP(&inputDir, "dir", "d", "",
		"directory holding the audio files to import, example: ./practice/2026-08")
	Cmd.Flags().StringVarP(&language, "language", "l", "",
		"language code stamped on the imported recordings, example: ko")
	Cmd.Flags().BoolVarP(&transcribe, "transcribe", "t", false,
		"queue a transcription job for every imported recording")
	Cmd.Flags().IntVar(&limit, "limit", 0,
		"cap on new imports, 0 means no cap")
	Cmd.Flags().IntVarP(&parallel, "parallel", "p", 1,
		"number of files imported concurrently")

	Cmd.MarkFlagRequired("dir")
}

// Cmd represents the ingest command
var Cmd = &cobra.Command{
	Use:   "ingest",
	Short: "Import a directory of audio recordings into the library",
	Long: `Import a directory of audio recordings into the library

- Scans the directory for supported audio files, oldest first
- Skips files whose content is already in the library
- Optionally queues a transcription job per imported recording`,
	RunE: func(cmd *cobra.Command, args []string) error {
		importer, cleanup, err := app.InitializeImporter(configPath)
		if err != nil {
			return err
		}
		defer cleanup()

		summary, err := importer.ImportDir(cmd.Context(), inputDir, ingest.Options{
			LanguageCode: language,
			Transcribe:   transcribe,
			Limit:        limit,
			Parallel:     parallel,
			Progress:     ingest.ProgressConfig{Enabled: true},
		})
		if err != nil {
			return err
		}

		fmt.Printf("import finished: %d imported, %d skipped, %d failed\n",
			summary.Imported, summary.Skipped, summary.Failed)
		return nil
	},
}
