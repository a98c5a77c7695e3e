package types

import (
  "time"

  "github.com/google/uuid"
)

// DailyUsage counts the assistant replies generated for a user on one
// calendar day. One row per (user, day), enforced by the composite
// unique index; the count only ever goes up within a day.
type DailyUsage struct {
  ID            uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
  UserID        uuid.UUID `gorm:"not null;uniqueIndex:idx_daily_usage_user_day" json:"userId"`
  Day           time.Time `gorm:"type:date;not null;uniqueIndex:idx_daily_usage_user_day" json:"day"`
  MessagesCount int       `gorm:"not null;default:0;column:messages_count" json:"messagesCount"`
}

func (DailyUsage) TableName() string {
  return "daily_usage"
}

// StartOfDay truncates t to midnight UTC, the key every usage row is
// stored under.
func StartOfDay(t time.Time) time.Time {
  t = t.UTC()
  return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
