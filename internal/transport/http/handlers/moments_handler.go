package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/amandanordqvist/datingapp/internal/domain/model"
	authsvc "github.com/amandanordqvist/datingapp/internal/services/auth"
	momentsvc "github.com/amandanordqvist/datingapp/internal/services/moments"
	"github.com/amandanordqvist/datingapp/internal/transport/http/dto"
	httperrors "github.com/amandanordqvist/datingapp/internal/transport/http/errors"
)

type MomentsHandler struct {
	service *momentsvc.Service
	viewer  *momentsvc.ViewerSessions
}

func NewMomentsHandler(service *momentsvc.Service, viewer *momentsvc.ViewerSessions) *MomentsHandler {
	return &MomentsHandler{service: service, viewer: viewer}
}

// List returns the active feed, newest first. Expired entries are dropped
// on read, so a moment past its 24-hour window never reaches the client.
func (h *MomentsHandler) List(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(w, r) {
		return
	}

	moments, err := h.service.List(r.Context())
	if err != nil {
		handleMomentsError(w, err)
		return
	}
	writeMomentsList(w, moments)
}

func (h *MomentsHandler) Mine(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(w, r) {
		return
	}

	moments, err := h.service.Mine(r.Context())
	if err != nil {
		handleMomentsError(w, err)
		return
	}
	writeMomentsList(w, moments)
}

func (h *MomentsHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(w, r) {
		return
	}

	var req dto.CreateMomentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	moment, err := h.service.Create(r.Context(), req.Caption, req.Image)
	if err != nil {
		handleMomentsError(w, err)
		return
	}
	httperrors.Write(w, http.StatusCreated, momentToDTO(moment))
}

func (h *MomentsHandler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(w, r) {
		return
	}

	moment, err := h.service.ToggleLike(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleMomentsError(w, err)
		return
	}
	httperrors.Write(w, http.StatusOK, momentToDTO(moment))
}

func (h *MomentsHandler) Reply(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(w, r) {
		return
	}

	var req dto.MomentReplyRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	if err := h.service.Reply(r.Context(), chi.URLParam(r, "id"), req.Text); err != nil {
		handleMomentsError(w, err)
		return
	}
	httperrors.Write(w, http.StatusOK, dto.OKResponse{OK: true})
}

func (h *MomentsHandler) ViewerOpen(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.viewerIdentity(w, r)
	if !ok {
		return
	}

	var req dto.ViewerOpenRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	snap, err := h.viewer.Open(r.Context(), identity.UserID, req.MomentID)
	if err != nil {
		handleMomentsError(w, err)
		return
	}
	writeViewerState(w, snap)
}

func (h *MomentsHandler) ViewerNext(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.viewerIdentity(w, r)
	if !ok {
		return
	}

	snap, err := h.viewer.Next(r.Context(), identity.UserID)
	if err != nil {
		handleMomentsError(w, err)
		return
	}
	writeViewerState(w, snap)
}

func (h *MomentsHandler) ViewerPrev(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.viewerIdentity(w, r)
	if !ok {
		return
	}

	snap, err := h.viewer.Prev(r.Context(), identity.UserID)
	if err != nil {
		handleMomentsError(w, err)
		return
	}
	writeViewerState(w, snap)
}

func (h *MomentsHandler) ViewerClose(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.viewerIdentity(w, r)
	if !ok {
		return
	}

	if err := h.viewer.Close(r.Context(), identity.UserID); err != nil {
		handleMomentsError(w, err)
		return
	}
	httperrors.Write(w, http.StatusOK, dto.OKResponse{OK: true})
}

func (h *MomentsHandler) ViewerState(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.viewerIdentity(w, r)
	if !ok {
		return
	}

	snap, err := h.viewer.Snapshot(r.Context(), identity.UserID)
	if err != nil {
		handleMomentsError(w, err)
		return
	}
	writeViewerState(w, snap)
}

func (h *MomentsHandler) authorized(w http.ResponseWriter, r *http.Request) bool {
	if _, ok := authsvc.IdentityFromContext(r.Context()); !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return false
	}
	if h.service == nil {
		writeInternal(w, "MOMENTS_SERVICE_UNAVAILABLE", "moments service is unavailable")
		return false
	}
	return true
}

func (h *MomentsHandler) viewerIdentity(w http.ResponseWriter, r *http.Request) (authsvc.Identity, bool) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return authsvc.Identity{}, false
	}
	if h.viewer == nil {
		writeInternal(w, "MOMENTS_SERVICE_UNAVAILABLE", "story viewer is unavailable")
		return authsvc.Identity{}, false
	}
	return identity, true
}

func handleMomentsError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, momentsvc.ErrValidation):
		writeBadRequest(w, "VALIDATION_ERROR", "invalid moment request")
	case errors.Is(err, momentsvc.ErrMomentNotFound):
		writeNotFound(w, "MOMENT_NOT_FOUND", "moment not found or expired")
	case errors.Is(err, momentsvc.ErrViewerNotOpen):
		writeNotFound(w, "VIEWER_NOT_OPEN", "story viewer is not open")
	default:
		writeInternal(w, "INTERNAL_ERROR", "moments operation failed")
	}
}

func writeMomentsList(w http.ResponseWriter, moments []model.Moment) {
	items := make([]dto.MomentResponse, 0, len(moments))
	for _, m := range moments {
		items = append(items, momentToDTO(m))
	}
	httperrors.Write(w, http.StatusOK, dto.MomentsListResponse{Items: items})
}

func writeViewerState(w http.ResponseWriter, snap momentsvc.ViewerSnapshot) {
	resp := dto.ViewerStateResponse{
		Open:  snap.Open,
		Index: snap.Index,
		Total: snap.Total,
	}
	if snap.Open {
		moment := momentToDTO(snap.Moment)
		resp.Moment = &moment
	}
	httperrors.Write(w, http.StatusOK, resp)
}

func momentToDTO(m model.Moment) dto.MomentResponse {
	return dto.MomentResponse{
		ID:        m.ID,
		UserID:    m.UserID,
		UserName:  m.UserName,
		UserImage: m.UserImage,
		Image:     m.Image,
		Caption:   m.Caption,
		CreatedAt: m.CreatedAt,
		ExpiresAt: m.ExpiresAt,
		Likes:     m.Likes,
		HasLiked:  m.HasLiked,
	}
}
