package chats

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/amandanordqvist/datingapp/internal/domain/enums"
	"github.com/amandanordqvist/datingapp/internal/domain/model"
)

var (
	ErrValidation   = errors.New("validation error")
	ErrChatNotFound = errors.New("chat not found")
)

// timeLayout matches the clock strings the client renders in bubbles.
const timeLayout = "3:04 PM"

type Store interface {
	LoadChats(ctx context.Context) ([]model.Chat, bool, error)
	SaveChats(ctx context.Context, chats []model.Chat) error
	LoadMessages(ctx context.Context, chatID string) ([]model.Message, bool, error)
	SaveMessages(ctx context.Context, chatID string, messages []model.Message) error
}

type Dependencies struct {
	Store  Store
	Logger *zap.Logger
}

// Service owns the conversation list and per-chat message logs. Message
// order within a chat is append-only.
type Service struct {
	mu     sync.Mutex
	loaded bool
	chats  []model.Chat

	store  Store
	logger *zap.Logger
	now    func() time.Time
	newID  func() string
}

func NewService(deps Dependencies) *Service {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:  deps.Store,
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

func (s *Service) ListChats(ctx context.Context) ([]model.Chat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	return append([]model.Chat(nil), s.chats...), nil
}

// Messages loads a chat's log, seeding the demo history on first access.
func (s *Service) Messages(ctx context.Context, chatID string) ([]model.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	if s.findChat(chatID) < 0 {
		return nil, ErrChatNotFound
	}

	messages, found, err := s.store.LoadMessages(ctx, chatID)
	if err != nil {
		return nil, fmt.Errorf("load messages: %w", err)
	}
	if found {
		return messages, nil
	}

	seeded := SeedMessages(chatID)
	if err := s.store.SaveMessages(ctx, chatID, seeded); err != nil {
		s.logger.Warn("persist seeded messages failed", zap.String("chat_id", chatID), zap.Error(err))
	}
	return seeded, nil
}

// Send appends an outgoing message and bumps the conversation row. The
// write is user-initiated; store failures are surfaced.
func (s *Service) Send(ctx context.Context, chatID, text string) (model.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return model.Message{}, ErrValidation
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(ctx); err != nil {
		return model.Message{}, err
	}
	idx := s.findChat(chatID)
	if idx < 0 {
		return model.Message{}, ErrChatNotFound
	}

	messages, found, err := s.store.LoadMessages(ctx, chatID)
	if err != nil {
		return model.Message{}, fmt.Errorf("load messages: %w", err)
	}
	if !found {
		messages = SeedMessages(chatID)
	}

	message := model.Message{
		ID:     strconv.Itoa(len(messages) + 1),
		Sender: enums.SenderMe,
		Text:   text,
		Read:   true,
		Time:   s.now().Format(timeLayout),
	}
	messages = append(messages, message)

	if err := s.store.SaveMessages(ctx, chatID, messages); err != nil {
		return model.Message{}, fmt.Errorf("save messages: %w", err)
	}

	s.chats[idx].LastMessage = text
	s.chats[idx].Time = message.Time
	if err := s.store.SaveChats(ctx, s.chats); err != nil {
		s.logger.Warn("persist chat row failed", zap.String("chat_id", chatID), zap.Error(err))
	}

	return message, nil
}

// MarkRead clears the unread badge on a conversation.
func (s *Service) MarkRead(ctx context.Context, chatID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(ctx); err != nil {
		return err
	}
	idx := s.findChat(chatID)
	if idx < 0 {
		return ErrChatNotFound
	}
	if s.chats[idx].Unread == 0 {
		return nil
	}

	s.chats[idx].Unread = 0
	if err := s.store.SaveChats(ctx, s.chats); err != nil {
		return fmt.Errorf("save chats: %w", err)
	}
	return nil
}

// DeliverReply turns a moment reply into a conversation message with the
// moment's author, creating the conversation on first contact.
func (s *Service) DeliverReply(ctx context.Context, moment model.Moment, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrValidation
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(ctx); err != nil {
		return err
	}

	idx := -1
	for i, c := range s.chats {
		if c.UserID == moment.UserID || (c.UserID == "" && c.Name == moment.UserName) {
			idx = i
			break
		}
	}
	if idx < 0 {
		chat := model.Chat{
			ID:     s.newID(),
			UserID: moment.UserID,
			Name:   moment.UserName,
			Image:  moment.UserImage,
		}
		s.chats = append(s.chats, chat)
		idx = len(s.chats) - 1
	}
	chatID := s.chats[idx].ID

	messages, found, err := s.store.LoadMessages(ctx, chatID)
	if err != nil {
		return fmt.Errorf("load messages: %w", err)
	}
	if !found {
		messages = SeedMessages(chatID)
	}

	message := model.Message{
		ID:     strconv.Itoa(len(messages) + 1),
		Sender: enums.SenderMe,
		Text:   text,
		Read:   true,
		Time:   s.now().Format(timeLayout),
	}
	messages = append(messages, message)

	if err := s.store.SaveMessages(ctx, chatID, messages); err != nil {
		return fmt.Errorf("save messages: %w", err)
	}

	s.chats[idx].LastMessage = text
	s.chats[idx].Time = message.Time
	if err := s.store.SaveChats(ctx, s.chats); err != nil {
		s.logger.Warn("persist chat row failed", zap.String("chat_id", chatID), zap.Error(err))
	}

	s.logger.Info("moment reply delivered",
		zap.String("moment_id", moment.ID),
		zap.String("chat_id", chatID),
	)
	return nil
}

func (s *Service) findChat(chatID string) int {
	for i, c := range s.chats {
		if c.ID == chatID {
			return i
		}
	}
	return -1
}

// ensureLoaded pulls the chat list on first use, seeding the demo
// conversations when the key is missing. Caller must hold s.mu.
func (s *Service) ensureLoaded(ctx context.Context) error {
	if s.loaded {
		return nil
	}

	stored, found, err := s.store.LoadChats(ctx)
	if err != nil {
		return fmt.Errorf("load chats: %w", err)
	}
	if found {
		s.chats = stored
		s.loaded = true
		return nil
	}

	s.chats = SeedChats()
	s.loaded = true
	if err := s.store.SaveChats(ctx, s.chats); err != nil {
		s.logger.Warn("persist seeded chats failed", zap.Error(err))
	}
	return nil
}
