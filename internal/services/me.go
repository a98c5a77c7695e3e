package services

import (
  "context"
  "fmt"

  "gorm.io/gorm"

  "github.com/ranker-ai/ranker-backend/internal/errordata"
  "github.com/ranker-ai/ranker-backend/internal/logger"
  "github.com/ranker-ai/ranker-backend/internal/normalization"
  "github.com/ranker-ai/ranker-backend/internal/repos"
  "github.com/ranker-ai/ranker-backend/internal/requestdata"
  "github.com/ranker-ai/ranker-backend/internal/types"
  "github.com/ranker-ai/ranker-backend/internal/utils"
)

type MeService interface {
  GetMe(ctx context.Context) (*types.User, error)
  UpdateLocale(ctx context.Context, locale string) (*types.User, error)
  UpdatePassword(ctx context.Context, currentPassword, newPassword string) error
}

type meService struct {
  db       *gorm.DB
  log      *logger.Logger
  userRepo repos.UserRepo
}

func NewMeService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo) MeService {
  serviceLog := log.With("service", "MeService")
  return &meService{db: db, log: serviceLog, userRepo: userRepo}
}

func (ms *meService) currentUser(ctx context.Context) (*types.User, error) {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil {
    ms.log.Warn("Request Data is not set in context.")
    return nil, errordata.New(errordata.Unauthorized, "not authenticated")
  }
  user, err := ms.userRepo.GetByID(ctx, nil, rd.UserID)
  if err != nil {
    ms.log.Warn("Failed to load current user, Cannot proceed. Returning error.", "error", err)
    return nil, fmt.Errorf("failed to load current user: %w", err)
  }
  if user == nil {
    return nil, errordata.New(errordata.Unauthorized, "session references an unknown user")
  }
  return user, nil
}

func (ms *meService) GetMe(ctx context.Context) (*types.User, error) {
  return ms.currentUser(ctx)
}

func (ms *meService) UpdateLocale(ctx context.Context, locale string) (*types.User, error) {
  locale = normalization.ParseInputString(locale)
  if locale == "" {
    return nil, errordata.New(errordata.ValidationError, "locale is required")
  }
  user, err := ms.currentUser(ctx)
  if err != nil {
    return nil, err
  }
  user.Locale = locale
  updated, err := ms.userRepo.Update(ctx, nil, user)
  if err != nil {
    ms.log.Warn("Failed to update user locale, Cannot proceed. Returning error.", "error", err)
    return nil, fmt.Errorf("failed to update user locale: %w", err)
  }
  return updated, nil
}

func (ms *meService) UpdatePassword(ctx context.Context, currentPassword, newPassword string) error {
  currentPassword = normalization.ParseInputString(currentPassword)
  newPassword = normalization.ParseInputString(newPassword)
  if newPassword == "" {
    return errordata.New(errordata.ValidationError, "new password is required")
  }
  user, err := ms.currentUser(ctx)
  if err != nil {
    return err
  }
  if !utils.CheckPassword(user.Password, currentPassword) {
    ms.log.Warn("Password change attempt with wrong current password", "email", user.Email)
    return errordata.New(errordata.Forbidden, "current password is incorrect")
  }
  hashed, err := utils.HashPassword(ms.log, newPassword)
  if err != nil {
    return err
  }
  user.Password = hashed
  if _, err := ms.userRepo.Update(ctx, nil, user); err != nil {
    ms.log.Warn("Failed to update user password, Cannot proceed. Returning error.", "error", err)
    return fmt.Errorf("failed to update user password: %w", err)
  }
  return nil
}
