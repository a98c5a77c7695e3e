package main

import (
  "fmt"
  "os"
  "time"

  "github.com/ranker-ai/ranker-backend/internal/db"
  "github.com/ranker-ai/ranker-backend/internal/handlers"
  "github.com/ranker-ai/ranker-backend/internal/logger"
  "github.com/ranker-ai/ranker-backend/internal/middleware"
  "github.com/ranker-ai/ranker-backend/internal/repos"
  "github.com/ranker-ai/ranker-backend/internal/seed"
  "github.com/ranker-ai/ranker-backend/internal/server"
  "github.com/ranker-ai/ranker-backend/internal/services"
  "github.com/ranker-ai/ranker-backend/internal/utils"
)

func main() {
  // Logger Setup
  logMode := os.Getenv("LOG_MODE")
  if logMode == "" {
    logMode = "development"
  }
  log, err := logger.New(logMode)
  if err != nil {
    fmt.Printf("failed to init logger: %v\n", err)
    os.Exit(1)
  }
  defer log.Sync()

  // Environment Variables
  log.Info("Attempting to load environment variables for Main now...")
  jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
  sessionTTL := utils.GetEnvAsInt("SESSION_TTL", 7*24*3600, log)
  cookieSecure := utils.GetEnvAsBool("COOKIE_SECURE", false, log)
  corsOrigin := utils.GetEnv("CORS_ORIGIN", "http://localhost:5173", log)
  maxMessagesPerDay := utils.GetEnvAsInt("MAX_MESSAGES_PER_DAY", 50, log)
  redisAddress := utils.GetEnv("REDIS_ADDRESS", "localhost:6379", log)
  redisPassword := utils.GetEnv("REDIS_PASSWORD", "", log)

  // Postgres Setup
  log.Info("Setting Up Postgres from Main now...")
  postgresService, err := db.NewPostgresService(log)
  if err != nil {
    log.Error("DB init failed", "error", err)
    os.Exit(1)
  }
  if err = postgresService.AutoMigrateAll(); err != nil {
    log.Warn("Postgres auto migration failed", "error", err)
  }
  thePG := postgresService.DB()

  // Repositories Setup
  log.Info("Setting Up Repositories from Main now...")
  userRepo := repos.NewUserRepo(thePG, log)
  conversationRepo := repos.NewConversationRepo(thePG, log)
  messageRepo := repos.NewMessageRepo(thePG, log)
  dailyUsageRepo := repos.NewDailyUsageRepo(thePG, log)
  auditLogRepo := repos.NewAuditLogRepo(thePG, log)

  // Seed Setup
  log.Info("Attempting to Seed The Postgres From Main now...")
  if err := seed.SeedAll(userRepo, log); err != nil {
    log.Warn("Failed to seed data", "error", err)
  }

  // Services Setup
  log.Info("Setting up Services from Main now...")
  revocationService, err := services.NewRevocationService(log, redisAddress, redisPassword)
  if err != nil {
    log.Warn("Could not init RevocationService; logout will only clear the cookie", "error", err)
    revocationService = nil
  }
  emailService, err := services.NewEmailService(log)
  if err != nil {
    log.Warn("Could not init EmailService; welcome emails disabled", "error", err)
    emailService = nil
  }
  generationService, err := services.NewGeminiService(log)
  if err != nil {
    log.Error("Fatal error: Cannot init GeminiService", "error", err)
    os.Exit(1)
  }
  authService := services.NewAuthService(thePG, log, userRepo, auditLogRepo, revocationService, jwtSecretKey, time.Duration(sessionTTL)*time.Second)
  meService := services.NewMeService(thePG, log, userRepo)
  conversationService := services.NewConversationService(thePG, log, conversationRepo, messageRepo)
  chatService := services.NewChatService(thePG, log, conversationRepo, messageRepo, dailyUsageRepo, generationService, maxMessagesPerDay)
  adminService := services.NewAdminService(thePG, log, userRepo, auditLogRepo, emailService)

  // Handler Setup
  log.Info("Setting Up Handlers from Main now...")
  authHandler := handlers.NewAuthHandler(authService, cookieSecure)
  meHandler := handlers.NewMeHandler(meService)
  conversationHandler := handlers.NewConversationHandler(conversationService)
  chatHandler := handlers.NewChatHandler(chatService)
  adminHandler := handlers.NewAdminHandler(adminService)

  // MiddleWare Setup
  authMiddleware := middleware.NewAuthMiddleware(log, authService)

  // Router Setup
  log.Info("Setting Up Router from Main now...")
  router := server.NewRouter(server.RouterConfig{
    AuthHandler:         authHandler,
    AuthMiddleware:      authMiddleware,
    MeHandler:           meHandler,
    ConversationHandler: conversationHandler,
    ChatHandler:         chatHandler,
    AdminHandler:        adminHandler,
    AllowedOrigin:       corsOrigin,
  })

  port := utils.GetEnv("PORT", "8080", log)
  fmt.Printf("Server listening on :%s\n", port)
  if err := router.Run(":" + port); err != nil {
    log.Error("Server failed", "error", err)
  }
}
