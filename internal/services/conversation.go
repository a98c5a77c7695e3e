package services

import (
  "context"
  "fmt"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/ranker-ai/ranker-backend/internal/errordata"
  "github.com/ranker-ai/ranker-backend/internal/logger"
  "github.com/ranker-ai/ranker-backend/internal/normalization"
  "github.com/ranker-ai/ranker-backend/internal/repos"
  "github.com/ranker-ai/ranker-backend/internal/requestdata"
  "github.com/ranker-ai/ranker-backend/internal/types"
)

type ConversationService interface {
  StartConversation(ctx context.Context, title string) (*types.Conversation, error)
  GetUserConversations(ctx context.Context) ([]*types.Conversation, error)
  GetConversationMessages(ctx context.Context, conversationID uuid.UUID) ([]*types.Message, error)
}

type conversationService struct {
  db               *gorm.DB
  log              *logger.Logger
  conversationRepo repos.ConversationRepo
  messageRepo      repos.MessageRepo
}

func NewConversationService(
  db *gorm.DB,
  log *logger.Logger,
  conversationRepo repos.ConversationRepo,
  messageRepo repos.MessageRepo,
) ConversationService {
  serviceLog := log.With("service", "ConversationService")
  return &conversationService{
    db:               db,
    log:              serviceLog,
    conversationRepo: conversationRepo,
    messageRepo:      messageRepo,
  }
}

func (cs *conversationService) StartConversation(ctx context.Context, title string) (*types.Conversation, error) {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil {
    cs.log.Warn("No Request Data found in context, Cannot proceed.")
    return nil, errordata.New(errordata.Unauthorized, "not authenticated")
  }
  title = normalization.ParseInputString(title)
  if title == "" {
    title = types.DefaultConversationTitle
  }
  conv := &types.Conversation{
    ID:     uuid.New(),
    UserID: rd.UserID,
    Title:  title,
  }
  created, err := cs.conversationRepo.Create(ctx, nil, conv)
  if err != nil {
    cs.log.Warn("Failed to create conversation, Cannot proceed. Returning error.", "error", err)
    return nil, fmt.Errorf("failed to create conversation: %w", err)
  }
  return created, nil
}

func (cs *conversationService) GetUserConversations(ctx context.Context) ([]*types.Conversation, error) {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil {
    cs.log.Warn("No Request Data found in context, Cannot proceed.")
    return nil, errordata.New(errordata.Unauthorized, "not authenticated")
  }
  convs, err := cs.conversationRepo.GetByUserID(ctx, nil, rd.UserID)
  if err != nil {
    cs.log.Warn("Failed to list conversations, Cannot proceed. Returning error.", "error", err)
    return nil, fmt.Errorf("failed to list conversations: %w", err)
  }
  return convs, nil
}

func (cs *conversationService) GetConversationMessages(ctx context.Context, conversationID uuid.UUID) ([]*types.Message, error) {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil {
    cs.log.Warn("No Request Data found in context, Cannot proceed.")
    return nil, errordata.New(errordata.Unauthorized, "not authenticated")
  }
  conv, err := cs.conversationRepo.GetByID(ctx, nil, conversationID)
  if err != nil {
    cs.log.Warn("Failed to load conversation, Cannot proceed. Returning error.", "error", err)
    return nil, fmt.Errorf("failed to load conversation: %w", err)
  }
  if conv == nil {
    return nil, errordata.New(errordata.NotFound, "conversation not found")
  }
  if conv.UserID != rd.UserID {
    cs.log.Warn("Cross-user conversation access denied", "conversationID", conversationID, "ownerID", conv.UserID, "requesterID", rd.UserID)
    return nil, errordata.New(errordata.Forbidden, "conversation belongs to another user")
  }
  msgs, err := cs.messageRepo.GetByConversationID(ctx, nil, conversationID)
  if err != nil {
    cs.log.Warn("Failed to list conversation messages, Cannot proceed. Returning error.", "error", err)
    return nil, fmt.Errorf("failed to list conversation messages: %w", err)
  }
  return msgs, nil
}
