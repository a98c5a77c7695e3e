package handlers

import (
  "errors"
  "io"
  "net/http"

  "github.com/gin-gonic/gin"
  "github.com/google/uuid"

  "github.com/ranker-ai/ranker-backend/internal/services"
)

type ConversationHandler struct {
  conversationService services.ConversationService
}

func NewConversationHandler(conversationService services.ConversationService) *ConversationHandler {
  return &ConversationHandler{conversationService: conversationService}
}

func (ch *ConversationHandler) ListConversations(c *gin.Context) {
  convs, err := ch.conversationService.GetUserConversations(c.Request.Context())
  if err != nil {
    respondError(c, err)
    return
  }
  c.JSON(http.StatusOK, convs)
}

func (ch *ConversationHandler) CreateConversation(c *gin.Context) {
  var req struct {
    Title string `json:"title,omitempty"`
  }
  // A bodyless POST is fine here: the title is optional and defaults
  // server-side.
  if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
    return
  }
  conv, err := ch.conversationService.StartConversation(c.Request.Context(), req.Title)
  if err != nil {
    respondError(c, err)
    return
  }
  c.JSON(http.StatusOK, conv)
}

func (ch *ConversationHandler) ListMessages(c *gin.Context) {
  conversationID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid conversation id"})
    return
  }
  msgs, err := ch.conversationService.GetConversationMessages(c.Request.Context(), conversationID)
  if err != nil {
    respondError(c, err)
    return
  }
  c.JSON(http.StatusOK, msgs)
}
