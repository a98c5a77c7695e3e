package server

import (
  "github.com/gin-contrib/cors"
  "github.com/gin-gonic/gin"

  "github.com/ranker-ai/ranker-backend/internal/handlers"
  "github.com/ranker-ai/ranker-backend/internal/middleware"
)

type RouterConfig struct {
  AuthHandler         *handlers.AuthHandler
  AuthMiddleware      *middleware.AuthMiddleware
  MeHandler           *handlers.MeHandler
  ConversationHandler *handlers.ConversationHandler
  ChatHandler         *handlers.ChatHandler
  AdminHandler        *handlers.AdminHandler
  AllowedOrigin       string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
  router := gin.Default()

  //-----------------------------------------
  // Cors Setup
  //-----------------------------------------
  router.Use(cors.New(cors.Config{
    AllowOrigins:     []string{cfg.AllowedOrigin},
    AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
    AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
    AllowCredentials: true,
  }))

  //-----------------------------------------
  // Health Routes
  //-----------------------------------------
  router.GET("/healthz", handlers.Healthz)

  //-----------------------------------------
  // Public Routes
  //-----------------------------------------
  api := router.Group("/api")
  {
    api.POST("/auth/login", cfg.AuthHandler.Login)
  }

  //------------------------------------------
  // Protected Routes
  //------------------------------------------
  protected := api.Group("/")
  protected.Use(cfg.AuthMiddleware.RequireAuth())
  protected.POST("/auth/logout", cfg.AuthHandler.Logout)
  protected.GET("/auth/me", cfg.MeHandler.GetMe)

  //ME
  protected.PATCH("/me", cfg.MeHandler.UpdateMe)
  protected.PUT("/me/password", cfg.MeHandler.UpdatePassword)

  //Conversations
  protected.GET("/conversations", cfg.ConversationHandler.ListConversations)
  protected.POST("/conversations", cfg.ConversationHandler.CreateConversation)
  protected.GET("/conversations/:id/messages", cfg.ConversationHandler.ListMessages)

  //Chat
  protected.POST("/chat", cfg.ChatHandler.SendMessage)

  //Admin
  admin := protected.Group("/admin")
  admin.Use(cfg.AuthMiddleware.RequireAdmin())
  admin.GET("/users", cfg.AdminHandler.ListUsers)
  admin.POST("/users", cfg.AdminHandler.CreateUser)
  admin.PATCH("/users/:id", cfg.AdminHandler.UpdateUser)
  admin.GET("/logs", cfg.AdminHandler.ListAuditLogs)

  return router
}
