package services

import (
  "context"
  "encoding/json"
  "fmt"

  "github.com/google/uuid"
  "gorm.io/datatypes"
  "gorm.io/gorm"

  "github.com/ranker-ai/ranker-backend/internal/errordata"
  "github.com/ranker-ai/ranker-backend/internal/logger"
  "github.com/ranker-ai/ranker-backend/internal/normalization"
  "github.com/ranker-ai/ranker-backend/internal/repos"
  "github.com/ranker-ai/ranker-backend/internal/requestdata"
  "github.com/ranker-ai/ranker-backend/internal/types"
  "github.com/ranker-ai/ranker-backend/internal/utils"
)

type AdminService interface {
  ListUsers(ctx context.Context) ([]*types.User, error)
  CreateUser(ctx context.Context, email, password, role, locale string) (*types.User, error)
  // UpdateUser changes a user's status and/or role. Nil means "leave as
  // is". Users are never hard-deleted.
  UpdateUser(ctx context.Context, userID uuid.UUID, status, role *string) (*types.User, error)
  ListAuditLogs(ctx context.Context, limit int) ([]*types.AuditLog, error)
}

type adminService struct {
  db           *gorm.DB
  log          *logger.Logger
  userRepo     repos.UserRepo
  auditLogRepo repos.AuditLogRepo
  emailService EmailService
}

func NewAdminService(
  db *gorm.DB,
  log *logger.Logger,
  userRepo repos.UserRepo,
  auditLogRepo repos.AuditLogRepo,
  emailService EmailService,
) AdminService {
  serviceLog := log.With("service", "AdminService")
  return &adminService{
    db:           db,
    log:          serviceLog,
    userRepo:     userRepo,
    auditLogRepo: auditLogRepo,
    emailService: emailService,
  }
}

func (ads *adminService) ListUsers(ctx context.Context) ([]*types.User, error) {
  users, err := ads.userRepo.GetAll(ctx, nil)
  if err != nil {
    ads.log.Warn("Failed to list users, Cannot proceed. Returning error.", "error", err)
    return nil, fmt.Errorf("failed to list users: %w", err)
  }
  return users, nil
}

func (ads *adminService) CreateUser(ctx context.Context, email, password, role, locale string) (*types.User, error) {
  email = normalization.ParseEmail(email)
  password = normalization.ParseInputString(password)
  if email == "" {
    return nil, errordata.New(errordata.ValidationError, "email is required")
  }
  if password == "" {
    return nil, errordata.New(errordata.ValidationError, "password is required")
  }
  if role == "" {
    role = types.RoleUser
  }
  if role != types.RoleAdmin && role != types.RoleUser {
    return nil, errordata.New(errordata.ValidationError, "role must be 'admin' or 'user'")
  }
  if locale == "" {
    locale = "pt-BR"
  }

  exists, err := ads.userRepo.EmailExists(ctx, nil, email)
  if err != nil {
    ads.log.Warn("Failed to check email existence, Cannot proceed. Returning error.", "error", err)
    return nil, fmt.Errorf("failed to check email existence: %w", err)
  }
  if exists {
    return nil, errordata.New(errordata.ValidationError, "email is already in use")
  }

  hashed, err := utils.HashPassword(ads.log, password)
  if err != nil {
    return nil, err
  }
  user := &types.User{
    ID:       uuid.New(),
    Email:    email,
    Password: hashed,
    Role:     role,
    Status:   types.StatusActive,
    Locale:   locale,
  }
  created, err := ads.userRepo.Create(ctx, nil, []*types.User{user})
  if err != nil {
    ads.log.Warn("Failed to create user, Cannot proceed. Returning error.", "error", err)
    return nil, fmt.Errorf("failed to create user: %w", err)
  }

  ads.audit(ctx, types.AuditActionUserCreated, map[string]interface{}{
    "email": email,
    "role":  role,
  })

  if ads.emailService != nil {
    if mErr := ads.emailService.SendWelcomeEmail(ctx, email, password); mErr != nil {
      // Welcome email is best effort; the account already exists.
      ads.log.Warn("Failed to send welcome email", "error", mErr, "email", email)
    }
  }

  return created[0], nil
}

func (ads *adminService) UpdateUser(ctx context.Context, userID uuid.UUID, status, role *string) (*types.User, error) {
  user, err := ads.userRepo.GetByID(ctx, nil, userID)
  if err != nil {
    ads.log.Warn("Failed to load user, Cannot proceed. Returning error.", "error", err)
    return nil, fmt.Errorf("failed to load user: %w", err)
  }
  if user == nil {
    return nil, errordata.New(errordata.NotFound, "user not found")
  }
  if status != nil {
    if *status != types.StatusActive && *status != types.StatusSuspended {
      return nil, errordata.New(errordata.ValidationError, "status must be 'active' or 'suspended'")
    }
    user.Status = *status
  }
  if role != nil {
    if *role != types.RoleAdmin && *role != types.RoleUser {
      return nil, errordata.New(errordata.ValidationError, "role must be 'admin' or 'user'")
    }
    user.Role = *role
  }
  updated, err := ads.userRepo.Update(ctx, nil, user)
  if err != nil {
    ads.log.Warn("Failed to update user, Cannot proceed. Returning error.", "error", err)
    return nil, fmt.Errorf("failed to update user: %w", err)
  }

  ads.audit(ctx, types.AuditActionUserUpdated, map[string]interface{}{
    "email":  updated.Email,
    "status": updated.Status,
    "role":   updated.Role,
  })

  return updated, nil
}

func (ads *adminService) ListAuditLogs(ctx context.Context, limit int) ([]*types.AuditLog, error) {
  entries, err := ads.auditLogRepo.GetLatest(ctx, nil, limit)
  if err != nil {
    ads.log.Warn("Failed to list audit logs, Cannot proceed. Returning error.", "error", err)
    return nil, fmt.Errorf("failed to list audit logs: %w", err)
  }
  return entries, nil
}

func (ads *adminService) audit(ctx context.Context, action string, details map[string]interface{}) {
  var actorID *uuid.UUID
  if rd := requestdata.GetRequestData(ctx); rd != nil {
    id := rd.UserID
    actorID = &id
  }
  raw, err := json.Marshal(details)
  if err != nil {
    ads.log.Warn("Failed to encode audit details", "error", err)
    raw = []byte(`{}`)
  }
  entry := &types.AuditLog{
    UserID:  actorID,
    Action:  action,
    Details: datatypes.JSON(raw),
  }
  if _, err := ads.auditLogRepo.Create(ctx, nil, entry); err != nil {
    ads.log.Warn("Failed to write audit entry", "error", err, "action", action)
  }
}
