package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/edenhq/meeting-api/api"
	"github.com/edenhq/meeting-api/api/types"
	"github.com/edenhq/meeting-api/internal/database"
	"github.com/edenhq/meeting-api/internal/services/ai"
	"github.com/edenhq/meeting-api/internal/services/deletion"
	"github.com/edenhq/meeting-api/internal/services/deliveries"
	"github.com/edenhq/meeting-api/internal/services/insights"
	"github.com/edenhq/meeting-api/internal/services/jobs"
	"github.com/edenhq/meeting-api/internal/services/listeners"
	"github.com/edenhq/meeting-api/internal/services/meetings"
	"github.com/edenhq/meeting-api/internal/services/notifications"
	"github.com/edenhq/meeting-api/internal/services/pipeline"
	"github.com/edenhq/meeting-api/internal/services/recordings"
	"github.com/edenhq/meeting-api/internal/services/storage"
	"github.com/edenhq/meeting-api/internal/services/transcripts"
	"github.com/edenhq/meeting-api/internal/services/users"
	"github.com/edenhq/meeting-api/internal/services/workers"
	"github.com/edenhq/meeting-api/pkg/config"
	"github.com/edenhq/meeting-api/pkg/crypto"
)

var (
	serverHost string
	serverPort int
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Long: `Start the Meeting Intelligence API server with the configured settings.

The server handles recording uploads, artifact queries and pipeline
triggers over HTTP while a background worker pool drains the job queue.

Example:
  meeting-api serve
  meeting-api serve --port 9090
  meeting-api serve --host 0.0.0.0 --port 8080`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serverHost, "host", "", "server host (overrides config)")
	serveCmd.Flags().IntVar(&serverPort, "port", 0, "server port (overrides config)")
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := config.GetConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if serverHost == "" {
		serverHost = cfg.Server.Host
	}
	if serverPort == 0 {
		serverPort = cfg.Server.Port
	}

	db, err := database.Initialize(cfg.Database.Path, cfg.Database.Verbose)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func() { _ = db.Close() }()

	if err := db.MigrateAll(); err != nil {
		return fmt.Errorf("migrating database: %w", err)
	}

	deps, err := buildDependencies(db, cfg)
	if err != nil {
		return err
	}

	// Worker pool drains the durable queue alongside the HTTP server.
	pool := workers.NewWorkerPool(deps.JobService, cfg.Processing.Workers, cfg.Processing.PollInterval, cfg.Processing.JobTimeout)
	workers.RegisterAll(pool, deps.Orchestrator)
	deps.WorkerPool = pool

	poolCtx, poolCancel := context.WithCancel(context.Background())
	defer poolCancel()
	if err := pool.Start(poolCtx); err != nil {
		return fmt.Errorf("starting worker pool: %w", err)
	}

	address := fmt.Sprintf("%s:%d", serverHost, serverPort)
	server := api.NewServer(address, cfg)
	server.SetDependencies(deps)
	if err := server.Initialize(); err != nil {
		return fmt.Errorf("initializing server: %w", err)
	}

	fmt.Printf("Starting Meeting Intelligence API server on %s\n", address)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			serverErr <- fmt.Errorf("server error: %w", err)
		}
	}()

	select {
	case <-stop:
		fmt.Println("\nShutting down server...")
	case err := <-serverErr:
		fmt.Fprintf(os.Stderr, "\n%v\n", err)
		fmt.Println("Shutting down server...")
	}

	pool.Stop()
	poolCancel()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Server forced to shutdown: %v\n", err)
		return err
	}

	fmt.Println("Server gracefully stopped")
	return nil
}

// buildDependencies wires the repository, service and pipeline graph that
// both the HTTP handlers and the worker pool share.
func buildDependencies(db *database.DB, cfg *config.Config) (*types.Dependencies, error) {
	store, err := storage.NewFromConfig(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("initializing object storage: %w", err)
	}

	boundary := crypto.New(cfg.Encryption.Key)

	jobService := jobs.NewService(jobs.NewRepository(db.DB))
	userRepo := users.NewRepository(db.DB)
	meetingRepo := meetings.NewRepository(db.DB)
	recordingRepo := recordings.NewRepository(db.DB)
	deliveryRepo := deliveries.NewRepository(db.DB)
	listenerRepo := listeners.NewRepository(db.DB)
	transcriptService := transcripts.NewService(transcripts.NewRepository(db.DB), boundary)
	insightService := insights.NewService(insights.NewRepository(db.DB), boundary)
	eraser := deletion.NewEraser(userRepo, meetingRepo, recordingRepo, deliveryRepo, store)

	orch := pipeline.NewOrchestrator(pipeline.Collaborators{
		Jobs:        jobService,
		Store:       store,
		Recordings:  recordingRepo,
		Transcripts: transcriptService,
		Insights:    insightService,
		Meetings:    meetingRepo,
		Users:       userRepo,
		Deliveries:  deliveryRepo,
		Listeners:   listenerRepo,
		Eraser:      eraser,
		Sender:      notifications.NewFromConfig(cfg.SMTP),
		Transcriber: ai.NewStubTranscriber(),
		Translator:  ai.NewTagTranslator(),
		Summarizer:  ai.NewHeuristicSummarizer(),
		Extractor:   ai.NewHeuristicExtractor(),
	}, pipeline.Options{
		MaxRetries:           cfg.Processing.RetryAttempts,
		RetryDelay:           cfg.Processing.RetryDelay,
		DeliveryRetryDelay:   cfg.Processing.DeliveryRetryDelay,
		DefaultSummaryLength: cfg.AI.DefaultSummaryLength,
		DefaultSummaryTone:   cfg.AI.DefaultSummaryTone,
	})

	return &types.Dependencies{
		DB:                db,
		Orchestrator:      orch,
		MeetingRepo:       meetingRepo,
		RecordingRepo:     recordingRepo,
		UserRepo:          userRepo,
		TranscriptService: transcriptService,
		InsightService:    insightService,
		ListenerScheduler: listeners.NewScheduler(listenerRepo, orch),
		JobService:        jobService,
	}, nil
}
