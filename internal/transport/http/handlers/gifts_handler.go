package handlers

import (
	"errors"
	"net/http"

	"github.com/SodiqOgundairo/condolence-backend/internal/domain/enums"
	"github.com/SodiqOgundairo/condolence-backend/internal/domain/model"
	pgrepo "github.com/SodiqOgundairo/condolence-backend/internal/repo/postgres"
	giftsvc "github.com/SodiqOgundairo/condolence-backend/internal/services/gifts"
	"github.com/SodiqOgundairo/condolence-backend/internal/transport/http/dto"
	httperrors "github.com/SodiqOgundairo/condolence-backend/internal/transport/http/errors"
)

type GiftsHandler struct {
	service *giftsvc.Service
}

func NewGiftsHandler(service *giftsvc.Service) *GiftsHandler {
	return &GiftsHandler{service: service}
}

func (h *GiftsHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeNotConfigured(w, "gifts are not configured")
		return
	}

	var req dto.CreateGiftRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	res, err := h.service.Create(r.Context(), giftsvc.CreateInput{
		Provider:    enums.GiftProvider(req.Provider),
		AmountMinor: req.AmountMinor,
		Email:       req.Email,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Anonymous:   req.Anonymous,
	})
	if err != nil {
		handleGiftError(w, err)
		return
	}

	redirect := dto.GiftRedirectResponse{
		Provider:       res.Redirect.Provider.String(),
		URL:            res.Redirect.URL,
		PaystackPubKey: res.Redirect.PaystackPubKey,
		Currency:       res.Redirect.Currency,
	}
	if res.Redirect.Bank != nil {
		redirect.Bank = &dto.BankDetailsResponse{
			BankName:      res.Redirect.Bank.BankName,
			AccountName:   res.Redirect.Bank.AccountName,
			AccountNumber: res.Redirect.Bank.AccountNumber,
			SwiftCode:     res.Redirect.Bank.SwiftCode,
		}
	}

	httperrors.Write(w, http.StatusCreated, dto.CreateGiftResponse{
		Reference:   res.Gift.Reference,
		Status:      res.Gift.Status.String(),
		AmountMinor: res.Gift.AmountMinor,
		Redirect:    redirect,
	})
}

func (h *GiftsHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeNotConfigured(w, "gifts are not configured")
		return
	}

	var req dto.GiftWebhookRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	if err := h.service.HandleWebhook(r.Context(), req.Reference, req.Event); err != nil {
		handleGiftError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, map[string]bool{"ok": true})
}

func handleGiftError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, giftsvc.ErrUnsupportedProvider):
		writeBadRequest(w, "VALIDATION_ERROR", "unsupported gift provider")
	case errors.Is(err, giftsvc.ErrAmountTooSmall):
		writeBadRequest(w, "VALIDATION_ERROR", "amount is below the provider minimum")
	case errors.Is(err, giftsvc.ErrEmailRequired):
		writeBadRequest(w, "VALIDATION_ERROR", "email is required")
	case errors.Is(err, giftsvc.ErrNameRequired):
		writeBadRequest(w, "VALIDATION_ERROR", "first name is required")
	case errors.Is(err, giftsvc.ErrUnknownReference), errors.Is(err, pgrepo.ErrGiftNotFound):
		writeBadRequest(w, "UNKNOWN_REFERENCE", "unknown gift reference")
	case errors.Is(err, pgrepo.ErrNotConfigured):
		writeNotConfigured(w, "gifts are not configured")
	default:
		writeInternal(w, "INTERNAL_ERROR", "internal server error")
	}
}

func giftToDTO(g model.Gift) dto.GiftResponse {
	return dto.GiftResponse{
		ID:          g.ID,
		CreatedAt:   g.CreatedAt,
		Provider:    g.Provider.String(),
		AmountMinor: g.AmountMinor,
		Currency:    g.Currency,
		Email:       g.Email,
		FirstName:   g.FirstName,
		LastName:    g.LastName,
		Anonymous:   g.Anonymous,
		Status:      g.Status.String(),
		Reference:   g.Reference,
	}
}
