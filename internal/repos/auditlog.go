package repos

import (
  "context"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/ranker-ai/ranker-backend/internal/logger"
  "github.com/ranker-ai/ranker-backend/internal/types"
)

type AuditLogRepo interface {
  Create(ctx context.Context, tx *gorm.DB, entry *types.AuditLog) (*types.AuditLog, error)
  GetLatest(ctx context.Context, tx *gorm.DB, limit int) ([]*types.AuditLog, error)
}

type auditLogRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewAuditLogRepo(db *gorm.DB, baseLog *logger.Logger) AuditLogRepo {
  return &auditLogRepo{db: db, log: baseLog.With("repo", "AuditLogRepo")}
}

func (alr *auditLogRepo) Create(ctx context.Context, tx *gorm.DB, entry *types.AuditLog) (*types.AuditLog, error) {
  if tx == nil {
    tx = alr.db
  }
  if entry.ID == uuid.Nil {
    entry.ID = uuid.New()
  }
  if err := tx.WithContext(ctx).Create(entry).Error; err != nil {
    alr.log.Error("failed to create audit log entry", "error", err)
    return nil, err
  }
  return entry, nil
}

func (alr *auditLogRepo) GetLatest(ctx context.Context, tx *gorm.DB, limit int) ([]*types.AuditLog, error) {
  if tx == nil {
    tx = alr.db
  }
  if limit <= 0 {
    limit = 100
  }
  var entries []*types.AuditLog
  if err := tx.WithContext(ctx).
    Order("created_at DESC").
    Limit(limit).
    Find(&entries).Error; err != nil {
    alr.log.Error("failed to list audit log entries", "error", err)
    return nil, err
  }
  return entries, nil
}
