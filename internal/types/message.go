package types

import (
  "time"

  "github.com/google/uuid"
)

const (
  MessageRoleUser      = "user"
  MessageRoleAssistant = "assistant"
)

// Message is one entry of a conversation's append-only log. Rows are
// never updated once created.
type Message struct {
  ID             uuid.UUID     `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
  ConversationID uuid.UUID     `gorm:"index;not null" json:"conversationId"`
  Conversation   *Conversation `gorm:"constraint:OnDelete:CASCADE;foreignKey:ConversationID;references:ID" json:"-"`
  Role           string        `gorm:"not null;column:role" json:"role"`
  Content        string        `gorm:"type:text;not null;column:content" json:"content"`
  CreatedAt      time.Time     `gorm:"not null;default:now()" json:"createdAt"`
}

func (Message) TableName() string {
  return "message"
}
