// cmd/server/main.go
package main

import (
    "log"
    "net/http"
    "os"
    "time"

    "github.com/go-chi/chi/v5"
    "github.com/joho/godotenv"
    "go.uber.org/zap"

    "github.com/promoforge/marketing-agent-backend/internal/controller"
    "github.com/promoforge/marketing-agent-backend/internal/db"
    "github.com/promoforge/marketing-agent-backend/internal/llm"
    "github.com/promoforge/marketing-agent-backend/internal/provider"
    "github.com/promoforge/marketing-agent-backend/internal/queue"
    "github.com/promoforge/marketing-agent-backend/internal/repository"
    "github.com/promoforge/marketing-agent-backend/internal/service"
    "github.com/promoforge/marketing-agent-backend/internal/store"
)

func main() {
    // Load .env
    if err := godotenv.Load(); err != nil {
        log.Println("⚠️ No .env file found, relying on OS environment variables")
    }

    zl, err := zap.NewProduction()
    if err != nil {
        log.Fatal("failed to build logger:", err)
    }
    defer zl.Sync()
    logger := zl.Sugar()

    // Init DB
    database, err := db.Connect()
    if err != nil {
        logger.Fatalw("failed to connect to database", "error", err)
    }
    defer database.Close()

    campaignRepo := &repository.CampaignRepository{DB: database}

    q := queue.NewInMemoryQueue()
    queue.StartTaskStatusSubscriber(q, campaignRepo, logger)

    client := llm.NewClientFromEnv()
    analysis := provider.NewLLMAnalysis(client, logger)
    generation := provider.NewLLMGeneration(client, logger)
    metrics := provider.NewSimulatedMetrics(time.Now().UnixNano())

    taskStore := store.NewTaskStore()
    scheduler := &service.SchedulingService{
        Store:    taskStore,
        Resolver: service.NewTimeResolver(),
        Logger:   logger,
    }
    evaluator := &service.EvaluatorService{
        Store:   taskStore,
        Metrics: metrics,
        Logger:  logger,
    }
    orchestrator := &service.OrchestratorService{
        Analysis:   analysis,
        Generation: generation,
        Scheduler:  scheduler,
        Campaigns:  campaignRepo,
        Logger:     logger,
        Now:        time.Now,
    }
    reports := &service.ReportService{
        Campaigns: campaignRepo,
        Logger:    logger,
    }

    campaignController := &controller.CampaignController{
        Orchestrator: orchestrator,
        Reports:      reports,
        Analysis:     analysis,
        Generation:   generation,
        Campaigns:    campaignRepo,
        Logger:       logger,
    }
    scheduleController := &controller.ScheduleController{
        Scheduler: scheduler,
        Evaluator: evaluator,
        Campaigns: campaignRepo,
        Queue:     q,
        AMQPURL:   os.Getenv("AMQP_URL"),
        Logger:    logger,
    }

    r := chi.NewRouter()

    // Campaign routes
    r.Post("/api/instruction", campaignController.HandleInstruction)
    r.Post("/api/analyze", campaignController.Analyze)
    r.Post("/api/generate", campaignController.Generate)
    r.Get("/api/campaigns", campaignController.ListCampaigns)
    r.Get("/api/report", campaignController.Report)
    r.Get("/api/health", campaignController.Health)

    // Schedule routes
    r.Post("/api/schedule", scheduleController.CreateSchedule)
    r.Post("/api/schedule/optimize", scheduleController.OptimizeSchedule)
    r.Get("/api/tasks", scheduleController.ListTasks)
    r.Post("/api/tasks/{taskID}/publish", scheduleController.PublishTask)
    r.Get("/api/ab-test/{abTestID}/results", scheduleController.ABTestResults)

    port := os.Getenv("PORT")
    if port == "" {
        port = "8080"
    }

    logger.Infow("🚀 Server running", "port", port)
    log.Fatal(http.ListenAndServe(":"+port, r))
}
