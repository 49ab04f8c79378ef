package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	config "github.com/maheshrc27/contentflow/configs"
	"github.com/maheshrc27/contentflow/internal/api/handlers"
	"github.com/maheshrc27/contentflow/internal/api/middleware"
	"github.com/maheshrc27/contentflow/internal/generator"
	job "github.com/maheshrc27/contentflow/internal/jobs"
	"github.com/maheshrc27/contentflow/internal/queue"
	"github.com/maheshrc27/contentflow/internal/repository"
	"github.com/maheshrc27/contentflow/internal/service"
	"github.com/robfig/cron"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Failed to load environment variables", err)
	}

	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	db, err := sql.Open("postgres", cfg.PostgresURI)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer closeDB(db)

	if err := db.Ping(); err != nil {
		log.Fatalf("Database is unreachable: %v", err)
	}

	migrateCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	err = repository.Migrate(migrateCtx, db)
	cancel()
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	redisConn := asynq.RedisClientOpt{Addr: cfg.RedisURI}
	client := asynq.NewClient(redisConn)
	defer client.Close()

	app := fiber.New(fiber.Config{
		ReadTimeout:  2 * time.Minute,
		WriteTimeout: 2 * time.Minute,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return c.Status(handlers.ErrorStatus(err)).JSON(fiber.Map{"error": err.Error()})
		},
	})

	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.FrontendURL,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           3600,
	}))

	projectRepo := repository.NewProjectRepository(db)
	calendarRepo := repository.NewCalendarRepository(db)
	versionRepo := repository.NewVersionRepository(db)
	templateAppRepo := repository.NewTemplateApplicationRepository(db)
	researchRepo := repository.NewResearchRepository(db)

	gen, err := generator.New(&generator.Settings{
		Provider: cfg.Generator.Provider,
		Model:    cfg.Generator.Model,
		APIKey:   cfg.Generator.APIKey,
		BaseURL:  cfg.Generator.BaseURL,
	})
	if err != nil {
		log.Fatalf("Failed to create generator: %v", err)
	}

	projectService := service.NewProjectService(projectRepo)
	calendarService := service.NewCalendarService(calendarRepo)
	versionService := service.NewVersionService(versionRepo, calendarRepo)
	generationService := service.NewGenerationService(gen, versionService, calendarRepo, projectRepo, researchRepo)
	researchService := service.NewResearchService(gen, projectRepo, calendarRepo, researchRepo)
	templateService := service.NewTemplateService(service.DefaultTemplates, projectRepo, calendarRepo, templateAppRepo)
	r2Service := service.NewR2Service(cfg.R2)
	exportService := service.NewExportService(calendarRepo, r2Service)

	enqueuer := queue.NewEnqueuer(client)
	authMiddleware := middleware.NewAuthMiddleware(*cfg)
	access := handlers.NewAccess(projectService, calendarService)

	api := app.Group("/api")
	api.Use(authMiddleware.AuthMiddleware())

	routes := &handlers.Handlers{
		Project:    handlers.NewProjectHandler(projectService, calendarService, access),
		Template:   handlers.NewTemplateHandler(templateService, access),
		Generation: handlers.NewGenerationHandler(generationService, enqueuer, access),
		Version:    handlers.NewVersionHandler(versionService, access),
		Export:     handlers.NewExportHandler(exportService, access),
		Research:   handlers.NewResearchHandler(researchService, access),
	}
	routes.Register(api)

	// cron jobs
	prefetchJob := job.NewDraftPrefetchJob(calendarRepo, enqueuer)

	//queue
	queueW := queue.NewQueue(generationService)

	c := cron.New()
	if err := c.AddFunc(cfg.PrefetchSchedule, prefetchJob.PrefetchDrafts); err != nil {
		log.Fatalf("Invalid PREFETCH_SCHEDULE %q: %v", cfg.PrefetchSchedule, err)
	}
	c.Start()
	defer c.Stop()

	server := asynq.NewServer(redisConn, asynq.Config{
		Concurrency: 10,
	})
	go func() {
		mux := asynq.NewServeMux()
		queueW.Register(mux)

		log.Println("Starting the Asynq server...")
		if err := server.Run(mux); err != nil {
			log.Fatalf("Could not start Asynq server: %v", err)
		}
	}()

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()
	log.Printf("Server is running on http://localhost:%s", cfg.Port)

	gracefulShutdown(app, server)
}

func closeDB(db *sql.DB) {
	fmt.Fprint(os.Stdout, "Closing database connection... ")
	if err := db.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to close database: %v", err)
		return
	}
	fmt.Fprintln(os.Stdout, "Done")
}

func gracefulShutdown(app *fiber.App, server *asynq.Server) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Fatalf("Failed to shut down server: %v", err)
	}
	server.Shutdown()

	log.Println("Server shutdown complete.")
}
