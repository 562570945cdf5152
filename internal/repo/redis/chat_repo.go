package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	goredis "github.com/redis/go-redis/v9"

	"github.com/amandanordqvist/datingapp/internal/domain/model"
)

// Conversation rows live under "chats"; each conversation's message list
// lives under "messages_<chatId>". Both are JSON arrays replaced wholesale
// on write, mirroring the client's storage layout.
const (
	chatsKey       = "chats"
	messagesPrefix = "messages_"
)

type ChatRepo struct {
	client *goredis.Client
}

func NewChatRepo(client *goredis.Client) *ChatRepo {
	return &ChatRepo{client: client}
}

func (r *ChatRepo) LoadChats(ctx context.Context) ([]model.Chat, bool, error) {
	if r.client == nil {
		return nil, false, fmt.Errorf("redis client is nil")
	}

	raw, err := r.client.Get(ctx, chatsKey).Result()
	if err == goredis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get chats: %w", err)
	}

	var chats []model.Chat
	if err := json.Unmarshal([]byte(raw), &chats); err != nil {
		return nil, false, fmt.Errorf("decode chats: %w", err)
	}
	return chats, true, nil
}

func (r *ChatRepo) SaveChats(ctx context.Context, chats []model.Chat) error {
	if r.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	if chats == nil {
		chats = []model.Chat{}
	}

	raw, err := json.Marshal(chats)
	if err != nil {
		return fmt.Errorf("encode chats: %w", err)
	}
	if err := r.client.Set(ctx, chatsKey, raw, 0).Err(); err != nil {
		return fmt.Errorf("set chats: %w", err)
	}
	return nil
}

func (r *ChatRepo) LoadMessages(ctx context.Context, chatID string) ([]model.Message, bool, error) {
	if r.client == nil {
		return nil, false, fmt.Errorf("redis client is nil")
	}
	if strings.TrimSpace(chatID) == "" {
		return nil, false, fmt.Errorf("chat id is empty")
	}

	raw, err := r.client.Get(ctx, messagesKey(chatID)).Result()
	if err == goredis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get messages: %w", err)
	}

	var messages []model.Message
	if err := json.Unmarshal([]byte(raw), &messages); err != nil {
		return nil, false, fmt.Errorf("decode messages: %w", err)
	}
	return messages, true, nil
}

func (r *ChatRepo) SaveMessages(ctx context.Context, chatID string, messages []model.Message) error {
	if r.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	if strings.TrimSpace(chatID) == "" {
		return fmt.Errorf("chat id is empty")
	}
	if messages == nil {
		messages = []model.Message{}
	}

	raw, err := json.Marshal(messages)
	if err != nil {
		return fmt.Errorf("encode messages: %w", err)
	}
	if err := r.client.Set(ctx, messagesKey(chatID), raw, 0).Err(); err != nil {
		return fmt.Errorf("set messages: %w", err)
	}
	return nil
}

func messagesKey(chatID string) string {
	return messagesPrefix + chatID
}
