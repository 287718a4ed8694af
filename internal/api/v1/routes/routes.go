package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/samratjha96/bakbak-sub001/internal/api/v1/handlers"
	"github.com/samratjha96/bakbak-sub001/internal/api/v1/services"
)

// ServiceContainer holds all services needed by handlers
type ServiceContainer struct {
	RecordingService services.RecordingService
	JobService       services.JobService
	ProcessorService services.ProcessorService
	LanguageService  services.LanguageService
	NoteService      services.NoteService
}

// RegisterRoutes registers all v1 API routes
func RegisterRoutes(router *gin.RouterGroup, container *ServiceContainer) {
	// Recording routes
	recordingHandler := handlers.NewRecordingHandler(container.RecordingService)
	jobHandler := handlers.NewJobHandler(container.JobService)
	noteHandler := handlers.NewNoteHandler(container.NoteService)
	recordings := router.Group("/recordings")
	{
		recordings.POST("", recordingHandler.Create)
		recordings.GET("", recordingHandler.List)
		recordings.GET("/:id", recordingHandler.Get)
		recordings.DELETE("/:id", recordingHandler.Delete)
		recordings.POST("/:id/upload-url", recordingHandler.UploadURL)
		recordings.POST("/:id/translate", recordingHandler.Translate)
		recordings.POST("/:id/transcribe", jobHandler.Transcribe)
		recordings.POST("/:id/notes", noteHandler.CreateNote)
		recordings.GET("/:id/notes", noteHandler.ListNotes)
		recordings.POST("/:id/vocabulary", noteHandler.CreateVocabulary)
		recordings.GET("/:id/vocabulary", noteHandler.ListVocabulary)
	}

	// Job routes
	jobs := router.Group("/jobs")
	{
		jobs.GET("", jobHandler.List)
		jobs.GET("/:id", jobHandler.Get)
		jobs.POST("/:id/cancel", jobHandler.Cancel)
	}

	// Processor control routes
	processorHandler := handlers.NewProcessorHandler(container.ProcessorService)
	processor := router.Group("/processor")
	{
		processor.GET("/status", processorHandler.Status)
		processor.PUT("/config", processorHandler.Configure)
		processor.POST("/start", processorHandler.Start)
		processor.POST("/stop", processorHandler.Stop)
	}

	// Standalone language routes
	languageHandler := handlers.NewLanguageHandler(container.LanguageService)
	router.POST("/translate", languageHandler.Translate)
	router.POST("/romanize", languageHandler.Romanize)

	// Note routes not tied to a recording path
	router.DELETE("/notes/:id", noteHandler.DeleteNote)
}
