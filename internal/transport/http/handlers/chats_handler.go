package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/amandanordqvist/datingapp/internal/domain/model"
	authsvc "github.com/amandanordqvist/datingapp/internal/services/auth"
	chatsvc "github.com/amandanordqvist/datingapp/internal/services/chats"
	"github.com/amandanordqvist/datingapp/internal/transport/http/dto"
	httperrors "github.com/amandanordqvist/datingapp/internal/transport/http/errors"
)

type ChatsHandler struct {
	service *chatsvc.Service
}

func NewChatsHandler(service *chatsvc.Service) *ChatsHandler {
	return &ChatsHandler{service: service}
}

func (h *ChatsHandler) List(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(w, r) {
		return
	}

	chats, err := h.service.ListChats(r.Context())
	if err != nil {
		handleChatsError(w, err)
		return
	}

	items := make([]dto.ChatResponse, 0, len(chats))
	for _, c := range chats {
		items = append(items, chatToDTO(c))
	}
	httperrors.Write(w, http.StatusOK, dto.ChatsListResponse{Items: items})
}

func (h *ChatsHandler) Messages(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(w, r) {
		return
	}

	messages, err := h.service.Messages(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleChatsError(w, err)
		return
	}

	items := make([]dto.MessageResponse, 0, len(messages))
	for _, m := range messages {
		items = append(items, messageToDTO(m))
	}
	httperrors.Write(w, http.StatusOK, dto.MessagesListResponse{Items: items})
}

func (h *ChatsHandler) Send(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(w, r) {
		return
	}

	var req dto.SendMessageRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	message, err := h.service.Send(r.Context(), chi.URLParam(r, "id"), req.Text)
	if err != nil {
		handleChatsError(w, err)
		return
	}
	httperrors.Write(w, http.StatusCreated, messageToDTO(message))
}

func (h *ChatsHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(w, r) {
		return
	}

	if err := h.service.MarkRead(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleChatsError(w, err)
		return
	}
	httperrors.Write(w, http.StatusOK, dto.OKResponse{OK: true})
}

func (h *ChatsHandler) authorized(w http.ResponseWriter, r *http.Request) bool {
	if _, ok := authsvc.IdentityFromContext(r.Context()); !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return false
	}
	if h.service == nil {
		writeInternal(w, "CHATS_SERVICE_UNAVAILABLE", "chats service is unavailable")
		return false
	}
	return true
}

func handleChatsError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, chatsvc.ErrValidation):
		writeBadRequest(w, "VALIDATION_ERROR", "invalid chat request")
	case errors.Is(err, chatsvc.ErrChatNotFound):
		writeNotFound(w, "CHAT_NOT_FOUND", "chat not found")
	default:
		writeInternal(w, "INTERNAL_ERROR", "chat operation failed")
	}
}

func chatToDTO(c model.Chat) dto.ChatResponse {
	return dto.ChatResponse{
		ID:          c.ID,
		UserID:      c.UserID,
		Name:        c.Name,
		Image:       c.Image,
		LastMessage: c.LastMessage,
		Time:        c.Time,
		Unread:      c.Unread,
	}
}

func messageToDTO(m model.Message) dto.MessageResponse {
	return dto.MessageResponse{
		ID:       m.ID,
		Sender:   string(m.Sender),
		Text:     m.Text,
		MediaURL: m.MediaURL,
		Read:     m.Read,
		Time:     m.Time,
	}
}
