package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Kaifateg/RelateHub/internal/domain/rules"
	authsvc "github.com/Kaifateg/RelateHub/internal/services/auth"
	gallerysvc "github.com/Kaifateg/RelateHub/internal/services/gallery"
	"github.com/Kaifateg/RelateHub/internal/transport/http/dto"
	httperrors "github.com/Kaifateg/RelateHub/internal/transport/http/errors"
)

// Parsing budget for the multipart form. Oversized files are rejected by
// the service against rules.MaxPhotoSizeBytes.
const uploadMemoryLimit = 8 << 20

type GalleryHandler struct {
	service *gallerysvc.Service
}

func NewGalleryHandler(service *gallerysvc.Service) *GalleryHandler {
	return &GalleryHandler{service: service}
}

func (h *GalleryHandler) Upload(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "GALLERY_SERVICE_UNAVAILABLE", "gallery service is unavailable")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, int64(rules.MaxPhotoSizeBytes)+uploadMemoryLimit)
	if err := r.ParseMultipartForm(uploadMemoryLimit); err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "photo file is required")
		return
	}
	defer file.Close()

	photo, err := h.service.Upload(r.Context(), identity.UserID, header.Filename, header.Header.Get("Content-Type"), file, header.Size)
	if err != nil {
		handleGalleryError(w, err)
		return
	}

	httperrors.Write(w, http.StatusCreated, toPhotoResponse(photo))
}

func (h *GalleryHandler) List(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "GALLERY_SERVICE_UNAVAILABLE", "gallery service is unavailable")
		return
	}

	photos, err := h.service.List(r.Context(), identity.UserID)
	if err != nil {
		handleGalleryError(w, err)
		return
	}

	payload := dto.PhotoListResponse{Photos: make([]dto.PhotoResponse, 0, len(photos))}
	for _, photo := range photos {
		payload.Photos = append(payload.Photos, toPhotoResponse(photo))
	}
	httperrors.Write(w, http.StatusOK, payload)
}

func (h *GalleryHandler) SetMain(w http.ResponseWriter, r *http.Request) {
	identity, photoID, ok := h.photoContext(w, r)
	if !ok {
		return
	}

	photo, err := h.service.SetMain(r.Context(), identity.UserID, photoID)
	if err != nil {
		handleGalleryError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, toPhotoResponse(photo))
}

func (h *GalleryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, photoID, ok := h.photoContext(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), identity.UserID, photoID); err != nil {
		handleGalleryError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *GalleryHandler) photoContext(w http.ResponseWriter, r *http.Request) (authsvc.Identity, int64, bool) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return authsvc.Identity{}, 0, false
	}
	if h.service == nil {
		writeInternal(w, "GALLERY_SERVICE_UNAVAILABLE", "gallery service is unavailable")
		return authsvc.Identity{}, 0, false
	}

	photoID, err := strconv.ParseInt(chi.URLParam(r, "photoID"), 10, 64)
	if err != nil || photoID <= 0 {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid photo id")
		return authsvc.Identity{}, 0, false
	}

	return identity, photoID, true
}

func handleGalleryError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, gallerysvc.ErrValidation):
		writeBadRequest(w, "VALIDATION_ERROR", "invalid photo request")
	case errors.Is(err, gallerysvc.ErrUnsupportedContent):
		writeBadRequest(w, "UNSUPPORTED_CONTENT", "photo content type is not supported")
	case errors.Is(err, gallerysvc.ErrPhotoTooLarge):
		writeBadRequest(w, "PHOTO_TOO_LARGE", "photo exceeds the size limit")
	case errors.Is(err, gallerysvc.ErrPhotoLimitReached):
		writeConflict(w, "PHOTO_LIMIT_REACHED", "photo limit reached")
	case errors.Is(err, gallerysvc.ErrNotFound):
		writeNotFound(w, "PHOTO_NOT_FOUND", "photo not found")
	default:
		writeInternal(w, "INTERNAL_ERROR", "internal server error")
	}
}

func toPhotoResponse(photo gallerysvc.Photo) dto.PhotoResponse {
	return dto.PhotoResponse{
		ID:          photo.ID,
		ContentType: photo.ContentType,
		SizeBytes:   photo.SizeBytes,
		IsMain:      photo.IsMain,
		URL:         photo.URL,
		UploadedAt:  photo.UploadedAt,
	}
}
