package handlers

import (
	"errors"
	"net/http"

	authsvc "github.com/amandanordqvist/datingapp/internal/services/auth"
	mediasvc "github.com/amandanordqvist/datingapp/internal/services/media"
	"github.com/amandanordqvist/datingapp/internal/transport/http/dto"
	httperrors "github.com/amandanordqvist/datingapp/internal/transport/http/errors"
)

const maxPhotoUploadSize = 10 << 20 // 10 MiB

type MediaHandler struct {
	service *mediasvc.Service
}

func NewMediaHandler(service *mediasvc.Service) *MediaHandler {
	return &MediaHandler{service: service}
}

func (h *MediaHandler) PhotoUpload(w http.ResponseWriter, r *http.Request) {
	if _, ok := authsvc.IdentityFromContext(r.Context()); !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "MEDIA_SERVICE_UNAVAILABLE", "media service is unavailable")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxPhotoUploadSize)
	if err := r.ParseMultipartForm(maxPhotoUploadSize); err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "file is required")
		return
	}
	defer file.Close()

	if header == nil || header.Size <= 0 {
		writeBadRequest(w, "VALIDATION_ERROR", "file is empty")
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	upload, err := h.service.UploadPhoto(r.Context(), header.Filename, contentType, file, header.Size)
	if err != nil {
		if errors.Is(err, mediasvc.ErrValidation) {
			writeBadRequest(w, "VALIDATION_ERROR", "invalid photo upload")
			return
		}
		writeInternal(w, "INTERNAL_ERROR", "photo upload failed")
		return
	}

	httperrors.Write(w, http.StatusOK, dto.PhotoUploadResponse{
		Key: upload.Key,
		URL: upload.URL,
	})
}
