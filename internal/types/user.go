package types

import (
  "time"

  "github.com/google/uuid"
)

const (
  RoleAdmin = "admin"
  RoleUser  = "user"

  StatusActive    = "active"
  StatusSuspended = "suspended"
)

type User struct {
  ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
  Email     string    `gorm:"uniqueIndex;not null;column:email" json:"email"`
  Password  string    `gorm:"not null;column:password" json:"-"`
  Role      string    `gorm:"not null;default:user;column:role" json:"role"`
  Status    string    `gorm:"not null;default:active;column:status" json:"status"`
  Locale    string    `gorm:"not null;default:pt-BR;column:locale" json:"locale"`
  CreatedAt time.Time `gorm:"not null;default:now()" json:"createdAt"`
  UpdatedAt time.Time `gorm:"not null;default:now()" json:"updatedAt"`
}

func (User) TableName() string {
  return "user"
}
