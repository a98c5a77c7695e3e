package repos

import (
  "context"
  "fmt"
  "time"

  "github.com/google/uuid"
  "gorm.io/gorm"
  "gorm.io/gorm/clause"

  "github.com/ranker-ai/ranker-backend/internal/logger"
  "github.com/ranker-ai/ranker-backend/internal/types"
)

type DailyUsageRepo interface {
  // GetOrCreateForDay returns the usage row for (userID, day), creating
  // it with a zero count when absent. Safe under concurrent calls for
  // the same pair: the insert is an ON CONFLICT DO NOTHING against the
  // composite unique index, followed by a re-read.
  GetOrCreateForDay(ctx context.Context, tx *gorm.DB, userID uuid.UUID, day time.Time) (*types.DailyUsage, error)
  // IncrementCount bumps messages_count by exactly one, atomically in
  // the database.
  IncrementCount(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type dailyUsageRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewDailyUsageRepo(db *gorm.DB, baseLog *logger.Logger) DailyUsageRepo {
  return &dailyUsageRepo{db: db, log: baseLog.With("repo", "DailyUsageRepo")}
}

func (dur *dailyUsageRepo) GetOrCreateForDay(ctx context.Context, tx *gorm.DB, userID uuid.UUID, day time.Time) (*types.DailyUsage, error) {
  if tx == nil {
    tx = dur.db
  }
  day = types.StartOfDay(day)
  row := types.DailyUsage{
    ID:     uuid.New(),
    UserID: userID,
    Day:    day,
  }
  if err := tx.WithContext(ctx).
    Clauses(clause.OnConflict{
      Columns:   []clause.Column{{Name: "user_id"}, {Name: "day"}},
      DoNothing: true,
    }).
    Create(&row).Error; err != nil {
    dur.log.Error("failed to upsert daily usage row", "error", err)
    return nil, err
  }
  // Re-read: the insert may have been a no-op when another request for
  // the same user already created today's row.
  var usage types.DailyUsage
  if err := tx.WithContext(ctx).
    Where("user_id = ? AND day = ?", userID, day).
    First(&usage).Error; err != nil {
    dur.log.Error("failed to read daily usage row after upsert", "error", err)
    return nil, err
  }
  return &usage, nil
}

func (dur *dailyUsageRepo) IncrementCount(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
  if tx == nil {
    tx = dur.db
  }
  res := tx.WithContext(ctx).
    Model(&types.DailyUsage{}).
    Where("id = ?", id).
    UpdateColumn("messages_count", gorm.Expr("messages_count + ?", 1))
  if res.Error != nil {
    dur.log.Error("failed to increment daily usage count", "error", res.Error)
    return res.Error
  }
  if res.RowsAffected == 0 {
    return fmt.Errorf("daily usage row %s not found", id)
  }
  return nil
}
