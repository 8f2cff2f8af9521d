package data

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sort"

	"github.com/google/uuid"

	"github.com/jobdeck/jobdeck-api/internal/domain/model"
	apperrors "github.com/jobdeck/jobdeck-api/internal/errors"
)

// ChatRepo provides database operations for two-party chats.
type ChatRepo struct {
	DB     *sql.DB
	logger *slog.Logger
}

// NewChatRepo creates a new ChatRepo instance.
func NewChatRepo(db *sql.DB, logger *slog.Logger) *ChatRepo {
	return &ChatRepo{DB: db, logger: logger}
}

const chatColumns = `
  id,
  participant_ids,
  messages,
  created_at,
  updated_at
`

func scanChat(row rowScanner) (*model.Chat, error) {
	var (
		chat                   model.Chat
		participants, messages []byte
	)
	if err := row.Scan(
		&chat.ID,
		&participants,
		&messages,
		&chat.CreatedAt,
		&chat.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if err := unmarshalJSONB(participants, &chat.ParticipantIDs); err != nil {
		return nil, err
	}
	if err := unmarshalJSONB(messages, &chat.Messages); err != nil {
		return nil, err
	}
	return &chat, nil
}

// Create opens a chat with a normalized (sorted) participant list.
func (r *ChatRepo) Create(ctx context.Context, participantIDs []string) (*model.Chat, error) {
	if len(participantIDs) != 2 || participantIDs[0] == "" || participantIDs[1] == "" {
		return nil, apperrors.Validation("a chat requires exactly two participants")
	}
	if participantIDs[0] == participantIDs[1] {
		return nil, apperrors.Validation("a chat requires two distinct participants")
	}

	ids := append([]string(nil), participantIDs...)
	sort.Strings(ids)
	payload, err := marshalJSONB(ids)
	if err != nil {
		return nil, err
	}

	row := r.DB.QueryRowContext(ctx, `
		INSERT INTO chats (participant_ids) VALUES ($1::jsonb)
		RETURNING `+chatColumns,
		payload,
	)
	chat, err := scanChat(row)
	if err != nil {
		return nil, apperrors.MapDBError(fmt.Errorf("insert chat: %w", err))
	}
	return chat, nil
}

// GetByID retrieves a chat by id.
func (r *ChatRepo) GetByID(ctx context.Context, id string) (*model.Chat, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperrors.NotFoundf("chat %s not found", id)
	}

	row := r.DB.QueryRowContext(ctx, `SELECT `+chatColumns+` FROM chats WHERE id = $1`, id)
	chat, err := scanChat(row)
	if err != nil {
		return nil, apperrors.MapDBError(fmt.Errorf("get chat %s: %w", id, err))
	}
	return chat, nil
}

// FindByParticipants returns the existing chat between two users, or NotFound.
func (r *ChatRepo) FindByParticipants(ctx context.Context, userA, userB string) (*model.Chat, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT `+chatColumns+` FROM chats
		WHERE participant_ids @> jsonb_build_array($1::text)
		  AND participant_ids @> jsonb_build_array($2::text)
		LIMIT 1
	`, userA, userB)
	chat, err := scanChat(row)
	if err != nil {
		return nil, apperrors.MapDBError(fmt.Errorf("find chat: %w", err))
	}
	return chat, nil
}

// ListByParticipant returns the chats a user takes part in, most recent first.
func (r *ChatRepo) ListByParticipant(ctx context.Context, userID string) ([]*model.Chat, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+chatColumns+` FROM chats
		WHERE participant_ids @> jsonb_build_array($1::text)
		ORDER BY updated_at DESC
	`, userID)
	if err != nil {
		return nil, apperrors.MapDBError(fmt.Errorf("query chats: %w", err))
	}
	defer rows.Close()

	var chats []*model.Chat
	for rows.Next() {
		chat, scanErr := scanChat(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("scan chat: %w", scanErr)
		}
		chats = append(chats, chat)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.MapDBError(fmt.Errorf("iterate chats: %w", err))
	}
	return chats, nil
}

// AppendMessage appends one message to the chat's ordered log.
func (r *ChatRepo) AppendMessage(ctx context.Context, id string, msg model.ChatMessage) (*model.Chat, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperrors.NotFoundf("chat %s not found", id)
	}

	payload, err := marshalJSONB(msg)
	if err != nil {
		return nil, err
	}

	row := r.DB.QueryRowContext(ctx, `
		UPDATE chats
		SET messages = messages || $2::jsonb, updated_at = now()
		WHERE id = $1
		RETURNING `+chatColumns,
		id, payload,
	)
	chat, err := scanChat(row)
	if err != nil {
		return nil, apperrors.MapDBError(fmt.Errorf("append chat message: %w", err))
	}
	return chat, nil
}
