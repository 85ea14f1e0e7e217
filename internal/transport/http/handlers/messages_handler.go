package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/SodiqOgundairo/condolence-backend/internal/domain/model"
	pgrepo "github.com/SodiqOgundairo/condolence-backend/internal/repo/postgres"
	tributesvc "github.com/SodiqOgundairo/condolence-backend/internal/services/tributes"
	"github.com/SodiqOgundairo/condolence-backend/internal/transport/http/dto"
	httperrors "github.com/SodiqOgundairo/condolence-backend/internal/transport/http/errors"
)

type MessagesHandler struct {
	service        *tributesvc.Service
	maxUploadBytes int64
}

func NewMessagesHandler(service *tributesvc.Service, maxUploadBytes int64) *MessagesHandler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = 20 << 20
	}

	return &MessagesHandler{
		service:        service,
		maxUploadBytes: maxUploadBytes,
	}
}

func (h *MessagesHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeNotConfigured(w, "tribute storage is not configured")
		return
	}

	var req dto.CreateMessageRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}

	saved, err := h.service.SubmitText(r.Context(), req.Name, req.Message, isPublic)
	if err != nil {
		handleTributeError(w, err)
		return
	}

	httperrors.Write(w, http.StatusCreated, messageToDTO(saved))
}

// CreateVoice accepts a multipart form with the recording under "voicenote"
// plus "name" and optional "is_public" fields.
func (h *MessagesHandler) CreateVoice(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeNotConfigured(w, "tribute storage is not configured")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid multipart body")
		return
	}

	file, header, err := r.FormFile("voicenote")
	if err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "recording is required")
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

	saved, err := h.service.SubmitVoice(
		r.Context(),
		r.FormValue("name"),
		header.Filename,
		header.Header.Get("Content-Type"),
		file,
		header.Size,
		isPublic,
	)
	if err != nil {
		handleTributeError(w, err)
		return
	}

	httperrors.Write(w, http.StatusCreated, messageToDTO(saved))
}

func (h *MessagesHandler) ListPublic(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeNotConfigured(w, "tribute storage is not configured")
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
		handleTributeError(w, err)
		return
	}

	items := make([]dto.MessageResponse, 0, len(result.Messages))
	for _, m := range result.Messages {
		items = append(items, messageToDTO(m))
	}

	httperrors.Write(w, http.StatusOK, dto.MessagesPageResponse{
		Items:      items,
		Page:       result.Page,
		TotalPages: result.TotalPages,
		Total:      result.Total,
	})
}

func handleTributeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, tributesvc.ErrNameRequired):
		writeBadRequest(w, "VALIDATION_ERROR", "name is required")
	case errors.Is(err, tributesvc.ErrMessageRequired):
		writeBadRequest(w, "VALIDATION_ERROR", "message is required")
	case errors.Is(err, tributesvc.ErrRecordingRequired):
		writeBadRequest(w, "VALIDATION_ERROR", "recording is required")
	case errors.Is(err, pgrepo.ErrNotConfigured):
		writeNotConfigured(w, "tribute storage is not configured")
	default:
		writeInternal(w, "INTERNAL_ERROR", "internal server error")
	}
}

func messageToDTO(m model.Message) dto.MessageResponse {
	return dto.MessageResponse{
		ID:           m.ID,
		CreatedAt:    m.CreatedAt,
		Name:         m.Name,
		Message:      m.Message,
		IsPublic:     m.IsPublic,
		Type:         m.Type.String(),
		VoicenoteURL: m.VoicenoteURL,
	}
}
