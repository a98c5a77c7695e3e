package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"

  "github.com/ranker-ai/ranker-backend/internal/services"
)

type MeHandler struct {
  meService services.MeService
}

func NewMeHandler(meService services.MeService) *MeHandler {
  return &MeHandler{meService: meService}
}

func (mh *MeHandler) GetMe(c *gin.Context) {
  me, err := mh.meService.GetMe(c.Request.Context())
  if err != nil {
    respondError(c, err)
    return
  }
  c.JSON(http.StatusOK, me)
}

func (mh *MeHandler) UpdateMe(c *gin.Context) {
  var req struct {
    Locale string `json:"locale"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
    return
  }
  me, err := mh.meService.UpdateLocale(c.Request.Context(), req.Locale)
  if err != nil {
    respondError(c, err)
    return
  }
  c.JSON(http.StatusOK, me)
}

func (mh *MeHandler) UpdatePassword(c *gin.Context) {
  var req struct {
    CurrentPassword string `json:"currentPassword"`
    NewPassword     string `json:"newPassword"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
    return
  }
  if err := mh.meService.UpdatePassword(c.Request.Context(), req.CurrentPassword, req.NewPassword); err != nil {
    respondError(c, err)
    return
  }
  c.JSON(http.StatusOK, gin.H{"message": "password updated"})
}
