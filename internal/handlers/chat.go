package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"
  "github.com/google/uuid"

  "github.com/ranker-ai/ranker-backend/internal/services"
)

type ChatHandler struct {
  chatService services.ChatService
}

func NewChatHandler(chatService services.ChatService) *ChatHandler {
  return &ChatHandler{chatService: chatService}
}

func (ch *ChatHandler) SendMessage(c *gin.Context) {
  var req struct {
    ConversationID string `json:"conversationId"`
    Message        string `json:"message"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
    return
  }
  conversationID, err := uuid.Parse(req.ConversationID)
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid conversation id"})
    return
  }
  assistantMsg, err := ch.chatService.SendMessage(c.Request.Context(), conversationID, req.Message)
  if err != nil {
    respondError(c, err)
    return
  }
  c.JSON(http.StatusOK, assistantMsg)
}
