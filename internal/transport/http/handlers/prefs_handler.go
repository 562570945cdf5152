package handlers

import (
	"errors"
	"net/http"

	"github.com/amandanordqvist/datingapp/internal/domain/enums"
	authsvc "github.com/amandanordqvist/datingapp/internal/services/auth"
	prefsvc "github.com/amandanordqvist/datingapp/internal/services/prefs"
	"github.com/amandanordqvist/datingapp/internal/transport/http/dto"
	httperrors "github.com/amandanordqvist/datingapp/internal/transport/http/errors"
)

type PrefsHandler struct {
	service *prefsvc.Service
}

func NewPrefsHandler(service *prefsvc.Service) *PrefsHandler {
	return &PrefsHandler{service: service}
}

func (h *PrefsHandler) Theme(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(w, r) {
		return
	}

	mode, err := h.service.Theme(r.Context())
	if err != nil {
		writeInternal(w, "INTERNAL_ERROR", "load theme failed")
		return
	}
	httperrors.Write(w, http.StatusOK, dto.ThemeResponse{Mode: string(mode)})
}

func (h *PrefsHandler) SetTheme(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(w, r) {
		return
	}

	var req dto.SetThemeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	if err := h.service.SetTheme(r.Context(), enums.ThemeMode(req.Mode)); err != nil {
		if errors.Is(err, prefsvc.ErrValidation) {
			writeBadRequest(w, "VALIDATION_ERROR", "unknown theme mode")
			return
		}
		writeInternal(w, "INTERNAL_ERROR", "save theme failed")
		return
	}
	httperrors.Write(w, http.StatusOK, dto.ThemeResponse{Mode: req.Mode})
}

func (h *PrefsHandler) authorized(w http.ResponseWriter, r *http.Request) bool {
	if _, ok := authsvc.IdentityFromContext(r.Context()); !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return false
	}
	if h.service == nil {
		writeInternal(w, "PREFS_SERVICE_UNAVAILABLE", "prefs service is unavailable")
		return false
	}
	return true
}
