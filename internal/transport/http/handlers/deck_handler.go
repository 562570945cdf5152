package handlers

import (
	"errors"
	"net/http"

	authsvc "github.com/amandanordqvist/datingapp/internal/services/auth"
	decksvc "github.com/amandanordqvist/datingapp/internal/services/deck"
	"github.com/amandanordqvist/datingapp/internal/transport/http/dto"
	httperrors "github.com/amandanordqvist/datingapp/internal/transport/http/errors"
)

type DeckHandler struct {
	service *decksvc.Service
}

func NewDeckHandler(service *decksvc.Service) *DeckHandler {
	return &DeckHandler{service: service}
}

func (h *DeckHandler) Open(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.identity(w, r)
	if !ok {
		return
	}

	snap, err := h.service.Open(r.Context(), identity.UserID)
	if err != nil {
		handleDeckError(w, err)
		return
	}
	writeDeckSnapshot(w, snap)
}

func (h *DeckHandler) Drag(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.identity(w, r)
	if !ok {
		return
	}

	var req dto.DeckDragRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	snap, err := h.service.Drag(r.Context(), identity.UserID, req.DX, req.DY)
	if err != nil {
		handleDeckError(w, err)
		return
	}
	writeDeckSnapshot(w, snap)
}

func (h *DeckHandler) Release(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.identity(w, r)
	if !ok {
		return
	}

	snap, err := h.service.Release(r.Context(), identity.UserID)
	if err != nil {
		handleDeckError(w, err)
		return
	}
	writeDeckSnapshot(w, snap)
}

func (h *DeckHandler) SuperLike(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.identity(w, r)
	if !ok {
		return
	}

	snap, err := h.service.SuperLike(r.Context(), identity.UserID)
	if err != nil {
		handleDeckError(w, err)
		return
	}
	writeDeckSnapshot(w, snap)
}

func (h *DeckHandler) TapImage(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.identity(w, r)
	if !ok {
		return
	}

	var req dto.DeckTapRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	snap, err := h.service.TapImage(r.Context(), identity.UserID, req.X)
	if err != nil {
		handleDeckError(w, err)
		return
	}
	writeDeckSnapshot(w, snap)
}

func (h *DeckHandler) Reset(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.identity(w, r)
	if !ok {
		return
	}

	snap, err := h.service.Reset(r.Context(), identity.UserID)
	if err != nil {
		handleDeckError(w, err)
		return
	}
	writeDeckSnapshot(w, snap)
}

func (h *DeckHandler) Close(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.identity(w, r)
	if !ok {
		return
	}

	if err := h.service.Close(r.Context(), identity.UserID); err != nil {
		handleDeckError(w, err)
		return
	}
	httperrors.Write(w, http.StatusOK, dto.OKResponse{OK: true})
}

func (h *DeckHandler) State(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.identity(w, r)
	if !ok {
		return
	}

	snap, err := h.service.Snapshot(r.Context(), identity.UserID)
	if err != nil {
		handleDeckError(w, err)
		return
	}
	writeDeckSnapshot(w, snap)
}

func (h *DeckHandler) identity(w http.ResponseWriter, r *http.Request) (authsvc.Identity, bool) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return authsvc.Identity{}, false
	}
	if h.service == nil {
		writeInternal(w, "DECK_SERVICE_UNAVAILABLE", "deck service is unavailable")
		return authsvc.Identity{}, false
	}
	return identity, true
}

func handleDeckError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, decksvc.ErrNoSession):
		writeNotFound(w, "DECK_NOT_OPEN", "deck session is not open")
	case errors.Is(err, decksvc.ErrDeckBusy):
		writeConflict(w, "DECK_BUSY", "a card is still animating out")
	case errors.Is(err, decksvc.ErrNoCurrentProfile):
		writeConflict(w, "DECK_EXHAUSTED", "no profiles left to swipe")
	default:
		writeInternal(w, "INTERNAL_ERROR", "deck operation failed")
	}
}

func writeDeckSnapshot(w http.ResponseWriter, snap decksvc.Snapshot) {
	resp := dto.DeckSnapshotResponse{
		Phase:      string(snap.Phase),
		Index:      snap.Index,
		Remaining:  snap.Remaining,
		ImageIndex: snap.ImageIndex,
		OffsetX:    snap.OffsetX,
		OffsetY:    snap.OffsetY,
		Rotation:   snap.Rotation,
		Liked:      snap.Liked,
		Disliked:   snap.Disliked,
		SuperLiked: snap.SuperLiked,
	}
	if snap.Current != nil {
		current := profileToDTO(*snap.Current)
		resp.Current = &current
	}
	for _, intent := range snap.Intents {
		resp.Intents = append(resp.Intents, string(intent))
	}
	httperrors.Write(w, http.StatusOK, resp)
}
