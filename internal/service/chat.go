package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jobdeck/jobdeck-api/internal/core"
	"github.com/jobdeck/jobdeck-api/internal/domain/identity"
	"github.com/jobdeck/jobdeck-api/internal/domain/model"
	apperrors "github.com/jobdeck/jobdeck-api/internal/errors"
)

// ChatServiceOptions groups dependencies for ChatService.
type ChatServiceOptions struct {
	Repo   core.ChatRepository // Required: chat repository
	Clock  core.TimeProvider   // Optional: clock override for tests
	Logger *slog.Logger        // Optional: structured logger
}

// ChatService manages two-party conversations between an employer and a job
// seeker. Starting a chat is idempotent per participant pair.
type ChatService struct {
	repo   core.ChatRepository
	clock  core.TimeProvider
	logger *slog.Logger
}

// NewChatService constructs a new ChatService.
func NewChatService(opts ChatServiceOptions) (*ChatService, error) {
	if opts.Repo == nil {
		return nil, errors.New("ChatRepository is required")
	}

	clock := opts.Clock
	if clock == nil {
		clock = realClock{}
	}
	var logger *slog.Logger
	if opts.Logger != nil {
		logger = opts.Logger.With("component", "chat_service")
	}
	return &ChatService{repo: opts.Repo, clock: clock, logger: logger}, nil
}

// MustNewChatService constructs a new ChatService and panics on error.
func MustNewChatService(opts ChatServiceOptions) *ChatService {
	svc, err := NewChatService(opts)
	if err != nil {
		panic(fmt.Sprintf("failed to create ChatService: %v", err))
	}
	return svc
}

// Start opens a chat between the caller and peerID, returning the existing
// chat when one already connects the pair.
func (s *ChatService) Start(ctx context.Context, caller identity.Identity, peerID string) (*model.Chat, error) {
	if caller.ID == "" {
		return nil, apperrors.Unauthorized("authentication required")
	}
	if strings.TrimSpace(peerID) == "" {
		return nil, apperrors.ValidationField("peer_id", "peer id is required")
	}
	if peerID == caller.ID {
		return nil, apperrors.ValidationField("peer_id", "cannot start a chat with yourself")
	}

	chat, err := s.repo.FindByParticipants(ctx, caller.ID, peerID)
	if err == nil {
		return chat, nil
	}
	if !apperrors.IsNotFound(err) {
		return nil, err
	}

	chat, err = s.repo.Create(ctx, []string{caller.ID, peerID})
	if err != nil {
		return nil, err
	}
	if s.logger != nil {
		s.logger.InfoContext(ctx, "chat started", "id", chat.ID)
	}
	return chat, nil
}

// Send appends a message from the caller to an existing chat.
func (s *ChatService) Send(ctx context.Context, caller identity.Identity, chatID, text string) (*model.Chat, error) {
	if strings.TrimSpace(text) == "" {
		return nil, apperrors.ValidationField("message", "message cannot be empty")
	}

	chat, err := s.repo.GetByID(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if !chat.HasParticipant(caller.ID) {
		return nil, apperrors.Unauthorized("caller is not a participant of this chat")
	}

	return s.repo.AppendMessage(ctx, chat.ID, model.ChatMessage{
		SenderID:  caller.ID,
		Text:      text,
		Timestamp: s.clock.Now(),
	})
}

// Get returns one chat the caller participates in.
func (s *ChatService) Get(ctx context.Context, caller identity.Identity, chatID string) (*model.Chat, error) {
	chat, err := s.repo.GetByID(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if !chat.HasParticipant(caller.ID) {
		return nil, apperrors.Unauthorized("caller is not a participant of this chat")
	}
	return chat, nil
}

// List returns the caller's chats, most recently active first.
func (s *ChatService) List(ctx context.Context, caller identity.Identity) ([]*model.Chat, error) {
	if caller.ID == "" {
		return nil, apperrors.Unauthorized("authentication required")
	}
	return s.repo.ListByParticipant(ctx, caller.ID)
}
