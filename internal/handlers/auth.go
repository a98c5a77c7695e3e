package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"

  "github.com/ranker-ai/ranker-backend/internal/middleware"
  "github.com/ranker-ai/ranker-backend/internal/services"
)

type AuthHandler struct {
  authService  services.AuthService
  cookieSecure bool
}

func NewAuthHandler(authService services.AuthService, cookieSecure bool) *AuthHandler {
  return &AuthHandler{authService: authService, cookieSecure: cookieSecure}
}

func (ah *AuthHandler) Login(c *gin.Context) {
  var req struct {
    Email    string `json:"email"`
    Password string `json:"password"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
    return
  }
  token, user, err := ah.authService.Login(c.Request.Context(), req.Email, req.Password)
  if err != nil {
    respondError(c, err)
    return
  }
  maxAge := int(ah.authService.GetSessionTTL().Seconds())
  c.SetSameSite(http.SameSiteLaxMode)
  c.SetCookie(middleware.SessionCookieName, token, maxAge, "/", "", ah.cookieSecure, true)
  c.JSON(http.StatusOK, gin.H{"user": user})
}

func (ah *AuthHandler) Logout(c *gin.Context) {
  if err := ah.authService.Logout(c.Request.Context()); err != nil {
    respondError(c, err)
    return
  }
  c.SetSameSite(http.SameSiteLaxMode)
  c.SetCookie(middleware.SessionCookieName, "", -1, "/", "", ah.cookieSecure, true)
  c.JSON(http.StatusOK, gin.H{"message": "logged out successfully"})
}
