package handlers

import (
	"errors"
	"net/http"

	pgrepo "github.com/SodiqOgundairo/condolence-backend/internal/repo/postgres"
	gallerysvc "github.com/SodiqOgundairo/condolence-backend/internal/services/gallery"
	giftsvc "github.com/SodiqOgundairo/condolence-backend/internal/services/gifts"
	tributesvc "github.com/SodiqOgundairo/condolence-backend/internal/services/tributes"
	"github.com/SodiqOgundairo/condolence-backend/internal/transport/http/dto"
	httperrors "github.com/SodiqOgundairo/condolence-backend/internal/transport/http/errors"
)

// AdminHandler serves the unfiltered listings, private rows included. Every
// route behind it requires an authenticated admin session.
type AdminHandler struct {
	tributes *tributesvc.Service
	gallery  *gallerysvc.Service
	gifts    *giftsvc.Service
}

func NewAdminHandler(tributes *tributesvc.Service, gallery *gallerysvc.Service, gifts *giftsvc.Service) *AdminHandler {
	return &AdminHandler{
		tributes: tributes,
		gallery:  gallery,
		gifts:    gifts,
	}
}

func (h *AdminHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	if h.tributes == nil {
		writeNotConfigured(w, "tribute storage is not configured")
		return
	}

	messages, err := h.tributes.ListAll(r.Context())
	if err != nil {
		handleAdminError(w, err)
		return
	}

	items := make([]dto.MessageResponse, 0, len(messages))
	for _, m := range messages {
		items = append(items, messageToDTO(m))
	}

	httperrors.Write(w, http.StatusOK, dto.MessagesListResponse{Items: items})
}

func (h *AdminHandler) ListPhotos(w http.ResponseWriter, r *http.Request) {
	if h.gallery == nil {
		writeNotConfigured(w, "photo storage is not configured")
		return
	}

	photos, err := h.gallery.ListAll(r.Context())
	if err != nil {
		handleAdminError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.PhotosListResponse{Items: photosToDTO(photos)})
}

func (h *AdminHandler) ListGifts(w http.ResponseWriter, r *http.Request) {
	if h.gifts == nil {
		writeNotConfigured(w, "gifts are not configured")
		return
	}

	gifts, err := h.gifts.ListAll(r.Context())
	if err != nil {
		handleAdminError(w, err)
		return
	}

	items := make([]dto.GiftResponse, 0, len(gifts))
	for _, g := range gifts {
		items = append(items, giftToDTO(g))
	}

	httperrors.Write(w, http.StatusOK, dto.GiftsListResponse{Items: items})
}

func handleAdminError(w http.ResponseWriter, err error) {
	if errors.Is(err, pgrepo.ErrNotConfigured) {
		writeNotConfigured(w, "storage is not configured")
		return
	}
	writeInternal(w, "INTERNAL_ERROR", "internal server error")
}
