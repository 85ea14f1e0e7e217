package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/SodiqOgundairo/condolence-backend/internal/domain/model"
	pgrepo "github.com/SodiqOgundairo/condolence-backend/internal/repo/postgres"
	gallerysvc "github.com/SodiqOgundairo/condolence-backend/internal/services/gallery"
	"github.com/SodiqOgundairo/condolence-backend/internal/transport/http/dto"
	httperrors "github.com/SodiqOgundairo/condolence-backend/internal/transport/http/errors"
)

type PhotosHandler struct {
	service        *gallerysvc.Service
	maxUploadBytes int64
}

func NewPhotosHandler(service *gallerysvc.Service, maxUploadBytes int64) *PhotosHandler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = 20 << 20
	}

	return &PhotosHandler{
		service:        service,
		maxUploadBytes: maxUploadBytes,
	}
}

// Create accepts a multipart form with the image under "photo" plus "name",
// optional "caption" and "is_public" fields.
func (h *PhotosHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeNotConfigured(w, "photo storage is not configured")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid multipart body")
		return
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "photo is required")
		return
	}
	defer func() { _ = file.Close() }()

	isPublic := true
	if raw := r.FormValue("is_public"); raw != "" {
		parsed, parseErr := strconv.ParseBool(raw)
		if parseErr != nil {
			writeBadRequest(w, "INVALID_REQUEST", "is_public must be a boolean")
			return
		}
		isPublic = parsed
	}

	saved, err := h.service.Submit(
		r.Context(),
		r.FormValue("name"),
		r.FormValue("caption"),
		header.Filename,
		header.Header.Get("Content-Type"),
		file,
		header.Size,
		isPublic,
	)
	if err != nil {
		handleGalleryError(w, err)
		return
	}

	httperrors.Write(w, http.StatusCreated, photoToDTO(saved))
}

func (h *PhotosHandler) ListPublic(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeNotConfigured(w, "photo storage is not configured")
		return
	}

	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeBadRequest(w, "INVALID_REQUEST", "page must be an integer")
			return
		}
		page = parsed
	}

	result, err := h.service.ListPublic(r.Context(), page)
	if err != nil {
		handleGalleryError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.PhotosPageResponse{
		Items:      photosToDTO(result.Photos),
		Page:       result.Page,
		TotalPages: result.TotalPages,
		Total:      result.Total,
	})
}

func handleGalleryError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, gallerysvc.ErrNameRequired):
		writeBadRequest(w, "VALIDATION_ERROR", "name is required")
	case errors.Is(err, gallerysvc.ErrPhotoRequired):
		writeBadRequest(w, "VALIDATION_ERROR", "photo is required")
	case errors.Is(err, pgrepo.ErrNotConfigured):
		writeNotConfigured(w, "photo storage is not configured")
	default:
		writeInternal(w, "INTERNAL_ERROR", "internal server error")
	}
}

func photoToDTO(p model.Photo) dto.PhotoResponse {
	return dto.PhotoResponse{
		ID:        p.ID,
		CreatedAt: p.CreatedAt,
		Name:      p.Name,
		Caption:   p.Caption,
		PhotoURL:  p.PhotoURL,
		IsPublic:  p.IsPublic,
	}
}

func photosToDTO(photos []model.Photo) []dto.PhotoResponse {
	items := make([]dto.PhotoResponse, 0, len(photos))
	for _, p := range photos {
		items = append(items, photoToDTO(p))
	}
	return items
}
