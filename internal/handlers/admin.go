package handlers

import (
  "net/http"
  "strconv"

  "github.com/gin-gonic/gin"
  "github.com/google/uuid"

  "github.com/ranker-ai/ranker-backend/internal/services"
)

type AdminHandler struct {
  adminService services.AdminService
}

func NewAdminHandler(adminService services.AdminService) *AdminHandler {
  return &AdminHandler{adminService: adminService}
}

func (adh *AdminHandler) ListUsers(c *gin.Context) {
  users, err := adh.adminService.ListUsers(c.Request.Context())
  if err != nil {
    respondError(c, err)
    return
  }
  c.JSON(http.StatusOK, users)
}

func (adh *AdminHandler) CreateUser(c *gin.Context) {
  var req struct {
    Email    string `json:"email"`
    Password string `json:"password"`
    Role     string `json:"role,omitempty"`
    Locale   string `json:"locale,omitempty"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
    return
  }
  user, err := adh.adminService.CreateUser(c.Request.Context(), req.Email, req.Password, req.Role, req.Locale)
  if err != nil {
    respondError(c, err)
    return
  }
  c.JSON(http.StatusOK, user)
}

func (adh *AdminHandler) UpdateUser(c *gin.Context) {
  userID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
    return
  }
  var req struct {
    Status *string `json:"status,omitempty"`
    Role   *string `json:"role,omitempty"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
    return
  }
  user, err := adh.adminService.UpdateUser(c.Request.Context(), userID, req.Status, req.Role)
  if err != nil {
    respondError(c, err)
    return
  }
  c.JSON(http.StatusOK, user)
}

func (adh *AdminHandler) ListAuditLogs(c *gin.Context) {
  limit := 100
  if raw := c.Query("limit"); raw != "" {
    if parsed, err := strconv.Atoi(raw); err == nil {
      limit = parsed
    }
  }
  entries, err := adh.adminService.ListAuditLogs(c.Request.Context(), limit)
  if err != nil {
    respondError(c, err)
    return
  }
  c.JSON(http.StatusOK, entries)
}
