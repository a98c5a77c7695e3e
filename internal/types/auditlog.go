package types

import (
  "time"

  "github.com/google/uuid"
  "gorm.io/datatypes"
)

const (
  AuditActionLogin       = "auth.login"
  AuditActionUserCreated = "admin.user_created"
  AuditActionUserUpdated = "admin.user_updated"
)

type AuditLog struct {
  ID        uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
  UserID    *uuid.UUID     `gorm:"index" json:"userId,omitempty"`
  Action    string         `gorm:"not null;column:action" json:"action"`
  Details   datatypes.JSON `gorm:"column:details" json:"details,omitempty"`
  CreatedAt time.Time      `gorm:"not null;default:now()" json:"createdAt"`
}

func (AuditLog) TableName() string {
  return "audit_log"
}
