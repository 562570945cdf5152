package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/amandanordqvist/datingapp/internal/domain/model"
	authsvc "github.com/amandanordqvist/datingapp/internal/services/auth"
	profilesvc "github.com/amandanordqvist/datingapp/internal/services/profiles"
	"github.com/amandanordqvist/datingapp/internal/transport/http/dto"
	httperrors "github.com/amandanordqvist/datingapp/internal/transport/http/errors"
)

const (
	defaultProfilesPageSize = 20
	maxProfilesPageSize     = 100
)

type ProfileHandler struct {
	service *profilesvc.Service
}

func NewProfileHandler(service *profilesvc.Service) *ProfileHandler {
	return &ProfileHandler{service: service}
}

func (h *ProfileHandler) List(w http.ResponseWriter, r *http.Request) {
	if _, ok := authsvc.IdentityFromContext(r.Context()); !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "PROFILE_SERVICE_UNAVAILABLE", "profile service is unavailable")
		return
	}

	offset := queryInt(r, "offset", 0)
	limit := queryInt(r, "limit", defaultProfilesPageSize)
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 || limit > maxProfilesPageSize {
		limit = defaultProfilesPageSize
	}

	profiles, err := h.service.Page(r.Context(), offset, limit)
	if err != nil {
		handleProfileError(w, err)
		return
	}

	items := make([]dto.ProfileResponse, 0, len(profiles))
	for _, p := range profiles {
		items = append(items, profileToDTO(p))
	}
	httperrors.Write(w, http.StatusOK, dto.ProfilesPageResponse{Items: items})
}

func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	if _, ok := authsvc.IdentityFromContext(r.Context()); !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "PROFILE_SERVICE_UNAVAILABLE", "profile service is unavailable")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		writeBadRequest(w, "VALIDATION_ERROR", "profile id is required")
		return
	}

	profile, err := h.service.Get(r.Context(), id)
	if err != nil {
		handleProfileError(w, err)
		return
	}
	httperrors.Write(w, http.StatusOK, profileToDTO(profile))
}

func (h *ProfileHandler) Me(w http.ResponseWriter, r *http.Request) {
	if _, ok := authsvc.IdentityFromContext(r.Context()); !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "PROFILE_SERVICE_UNAVAILABLE", "profile service is unavailable")
		return
	}

	profile, err := h.service.Me(r.Context())
	if err != nil {
		handleProfileError(w, err)
		return
	}
	httperrors.Write(w, http.StatusOK, profileToDTO(profile))
}

func (h *ProfileHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	if _, ok := authsvc.IdentityFromContext(r.Context()); !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "PROFILE_SERVICE_UNAVAILABLE", "profile service is unavailable")
		return
	}

	var req dto.UpdateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	profile, err := h.service.UpdateMe(r.Context(), model.Profile{
		Name:      req.Name,
		Age:       req.Age,
		Images:    req.Images,
		Bio:       req.Bio,
		About:     req.About,
		Distance:  req.Distance,
		Location:  req.Location,
		Job:       req.Job,
		Education: req.Education,
		Interests: req.Interests,
	})
	if err != nil {
		handleProfileError(w, err)
		return
	}
	httperrors.Write(w, http.StatusOK, profileToDTO(profile))
}

func handleProfileError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, profilesvc.ErrValidation):
		writeBadRequest(w, "VALIDATION_ERROR", "invalid profile data")
	case errors.Is(err, profilesvc.ErrProfileNotFound):
		writeNotFound(w, "PROFILE_NOT_FOUND", "profile not found")
	default:
		writeInternal(w, "INTERNAL_ERROR", "profile operation failed")
	}
}

func profileToDTO(p model.Profile) dto.ProfileResponse {
	return dto.ProfileResponse{
		ID:        p.ID,
		Name:      p.Name,
		Age:       p.Age,
		Images:    p.Images,
		Bio:       p.Bio,
		About:     p.About,
		Distance:  p.Distance,
		Location:  p.Location,
		Job:       p.Job,
		Education: p.Education,
		Interests: p.Interests,
	}
}

func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
