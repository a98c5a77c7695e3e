package handlers

import (
  "github.com/gin-gonic/gin"

  "github.com/ranker-ai/ranker-backend/internal/errordata"
)

// respondError renders any service error with its taxonomy status and
// caller-safe message.
func respondError(c *gin.Context, err error) {
  c.JSON(errordata.HTTPStatus(err), gin.H{"error": errordata.MessageOf(err)})
}
