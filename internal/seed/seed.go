package seed

import (
  "context"
  "fmt"

  "github.com/google/uuid"

  "github.com/ranker-ai/ranker-backend/internal/logger"
  "github.com/ranker-ai/ranker-backend/internal/repos"
  "github.com/ranker-ai/ranker-backend/internal/types"
  "github.com/ranker-ai/ranker-backend/internal/utils"
)

const (
  adminEmail    = "admin@local"
  adminPassword = "Admin123!"
)

// SeedAll bootstraps the initial admin account. Idempotent: an existing
// admin@local is left untouched.
func SeedAll(userRepo repos.UserRepo, log *logger.Logger) error {
  ctx := context.Background()

  existing, err := userRepo.GetByEmail(ctx, nil, adminEmail)
  if err != nil {
    return fmt.Errorf("failed to check for existing admin: %w", err)
  }
  if existing != nil {
    log.Info("Initial admin already exists", "email", adminEmail)
    return nil
  }

  hashed, err := utils.HashPassword(log, adminPassword)
  if err != nil {
    return fmt.Errorf("failed to hash admin password: %w", err)
  }
  admin := &types.User{
    ID:       uuid.New(),
    Email:    adminEmail,
    Password: hashed,
    Role:     types.RoleAdmin,
    Status:   types.StatusActive,
    Locale:   "pt-BR",
  }
  if _, err := userRepo.Create(ctx, nil, []*types.User{admin}); err != nil {
    return fmt.Errorf("failed to create initial admin: %w", err)
  }
  log.Info("Initial admin created", "email", adminEmail)
  return nil
}
