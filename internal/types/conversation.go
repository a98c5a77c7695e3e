package types

import (
  "time"

  "github.com/google/uuid"
)

// DefaultConversationTitle is what a conversation is called when the
// client starts one without naming it.
const DefaultConversationTitle = "Nova Análise"

type Conversation struct {
  ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
  UserID    uuid.UUID `gorm:"index;not null" json:"userId"`
  User      *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
  Title     string    `gorm:"not null;column:title" json:"title"`
  CreatedAt time.Time `gorm:"not null;default:now()" json:"createdAt"`
  UpdatedAt time.Time `gorm:"not null;default:now()" json:"updatedAt"`
}

func (Conversation) TableName() string {
  return "conversation"
}
