package repos

import (
  "context"
  "testing"
  "time"

  "github.com/google/uuid"
  "github.com/stretchr/testify/assert"
  "github.com/stretchr/testify/require"
  "gorm.io/driver/sqlite"
  "gorm.io/gorm"

  "github.com/ranker-ai/ranker-backend/internal/logger"
  "github.com/ranker-ai/ranker-backend/internal/types"
)

// openUsageDB opens an in-memory database with the daily_usage schema.
// The DDL is written out by hand because the production column default
// (uuid_generate_v4) only exists on postgres.
func openUsageDB(t *testing.T) *gorm.DB {
  t.Helper()
  db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
  require.NoError(t, err)
  require.NoError(t, db.Exec(`
    CREATE TABLE daily_usage (
      id TEXT PRIMARY KEY,
      user_id TEXT NOT NULL,
      day DATE NOT NULL,
      messages_count INTEGER NOT NULL DEFAULT 0,
      CONSTRAINT idx_daily_usage_user_day UNIQUE (user_id, day)
    )`).Error)
  return db
}

func newUsageRepo(t *testing.T) (DailyUsageRepo, *gorm.DB) {
  t.Helper()
  db := openUsageDB(t)
  return NewDailyUsageRepo(db, logger.NewNop()), db
}

func TestGetOrCreateForDayIdempotent(t *testing.T) {
  repo, db := newUsageRepo(t)
  ctx := context.Background()
  userID := uuid.New()

  morning := time.Date(2025, 3, 14, 8, 15, 0, 0, time.UTC)
  evening := time.Date(2025, 3, 14, 22, 40, 0, 0, time.UTC)

  first, err := repo.GetOrCreateForDay(ctx, nil, userID, morning)
  require.NoError(t, err)
  assert.Equal(t, 0, first.MessagesCount)
  assert.True(t, first.Day.Equal(types.StartOfDay(morning)))

  second, err := repo.GetOrCreateForDay(ctx, nil, userID, evening)
  require.NoError(t, err)
  assert.Equal(t, first.ID, second.ID)

  var count int64
  require.NoError(t, db.Model(&types.DailyUsage{}).Count(&count).Error)
  assert.EqualValues(t, 1, count)
}

func TestGetOrCreateForDaySeparatesDaysAndUsers(t *testing.T) {
  repo, _ := newUsageRepo(t)
  ctx := context.Background()
  userA := uuid.New()
  userB := uuid.New()

  day1 := time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)
  day2 := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

  a1, err := repo.GetOrCreateForDay(ctx, nil, userA, day1)
  require.NoError(t, err)
  a2, err := repo.GetOrCreateForDay(ctx, nil, userA, day2)
  require.NoError(t, err)
  b1, err := repo.GetOrCreateForDay(ctx, nil, userB, day1)
  require.NoError(t, err)

  assert.NotEqual(t, a1.ID, a2.ID)
  assert.NotEqual(t, a1.ID, b1.ID)
}

func TestIncrementCount(t *testing.T) {
  repo, _ := newUsageRepo(t)
  ctx := context.Background()
  userID := uuid.New()
  now := time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)

  usage, err := repo.GetOrCreateForDay(ctx, nil, userID, now)
  require.NoError(t, err)

  require.NoError(t, repo.IncrementCount(ctx, nil, usage.ID))
  require.NoError(t, repo.IncrementCount(ctx, nil, usage.ID))
  require.NoError(t, repo.IncrementCount(ctx, nil, usage.ID))

  reread, err := repo.GetOrCreateForDay(ctx, nil, userID, now)
  require.NoError(t, err)
  assert.Equal(t, 3, reread.MessagesCount)
  assert.Equal(t, usage.ID, reread.ID)
}

func TestIncrementCountUnknownRow(t *testing.T) {
  repo, _ := newUsageRepo(t)

  err := repo.IncrementCount(context.Background(), nil, uuid.New())
  require.Error(t, err)
}

func TestIncrementCountInsideTransaction(t *testing.T) {
  repo, db := newUsageRepo(t)
  ctx := context.Background()
  userID := uuid.New()
  now := time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)

  usage, err := repo.GetOrCreateForDay(ctx, nil, userID, now)
  require.NoError(t, err)

  err = db.Transaction(func(tx *gorm.DB) error {
    return repo.IncrementCount(ctx, tx, usage.ID)
  })
  require.NoError(t, err)

  reread, err := repo.GetOrCreateForDay(ctx, nil, userID, now)
  require.NoError(t, err)
  assert.Equal(t, 1, reread.MessagesCount)
}
