package cmd

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/redis/rueidis"
	"github.com/spf13/cobra"

	config "taskboard.com/taskboard/internal/configs"
	httpapi "taskboard.com/taskboard/internal/http"
	"taskboard.com/taskboard/internal/notify"
	repository "taskboard.com/taskboard/internal/repositories"
	"taskboard.com/taskboard/internal/services"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the task board HTTP API",
	Long:  "Starts the task API, the reminder scanner and the WebSocket notification hub",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil {
			log.Println(".env file not found, using environment variables")
		}

		cfg := config.Load()
		database := config.NewDatabaseClient(cfg.DatabaseDSN)

		var redisClient rueidis.Client
		if cfg.RedisEnabled {
			redisClient = config.NewRedisClient(cfg.RedisAddr)
			defer redisClient.Close()
		}

		taskRepo := repository.NewTaskRepository(database)
		referenceRepo := repository.NewReferenceRepository(database, redisClient)

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := referenceRepo.SeedIfEmpty(ctx); err != nil {
			log.Fatalf("failed to seed reference data: %v", err)
		}

		taskService := services.NewTaskService(taskRepo, referenceRepo)

		hub := notify.NewHub()
		reminders := services.NewReminderService(taskRepo, hub, cfg.ReminderHorizon, cfg.ReminderInterval)
		reminders.Start()

		e := echo.New()
		handler := httpapi.NewHandler(taskService)
		httpapi.Register(e, handler, hub, cfg.RateLimit)

		go func() {
			log.Printf("HTTP server listening on %s", cfg.AppURL)
			if err := e.Start(cfg.AppURL); err != nil {
				log.Printf("server stopped: %v", err)
			}
		}()

		<-ctx.Done()

		echoCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.ShutdownTimeoutSeconds)*time.Second)
		defer cancel()
		_ = e.Shutdown(echoCtx)

		reminders.Stop()

		log.Println("HTTP server and reminder scanner shut down gracefully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
