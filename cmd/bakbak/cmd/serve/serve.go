package serve

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/samratjha96/bakbak-sub001/internal/app"
	appconfig "github.com/samratjha96/bakbak-sub001/internal/app/config"
)

const shutdownTimeout = 15 * time.Second

var configPath string

func init() {
	Cmd.Flags().StringVarP(&configPath, "config", "c", appconfig.GetDefaultConfigPath(),
		"path to the configuration file")
}

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the API server and the background transcription processor",
	Long: `Run the API server and the background transcription processor

- Serves the recording library, job, and language APIs over HTTP
- Polls the job registry and transcribes pending recordings in the background
- Stops cleanly on SIGINT or SIGTERM`,
	RunE: func(cmd *cobra.Command, args []string) error {
		application, cleanup, err := app.InitializeApplication(configPath)
		if err != nil {
			return err
		}
		defer cleanup()

		application.Processor.Start()
		if err := application.Server.Start(); err != nil {
			return err
		}
		application.Logger.Info("bakbak is running",
			zap.String("host", application.Config.Server.Host),
			zap.String("port", application.Config.Server.Port),
			zap.String("environment", application.Config.Environment))

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		application.Logger.Info("shutdown signal received")

		// Stop accepting requests first, then drain the processor so no
		// job is abandoned mid-flight.
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := application.Server.Shutdown(ctx); err != nil {
			application.Logger.Error("server shutdown failed", zap.Error(err))
		}

		application.Processor.Stop()
		application.Processor.Wait()
		application.Logger.Info("bakbak stopped")
		return nil
	},
}
