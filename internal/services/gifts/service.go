package gifts

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/SodiqOgundairo/condolence-backend/internal/config"
	"github.com/SodiqOgundairo/condolence-backend/internal/domain/enums"
	"github.com/SodiqOgundairo/condolence-backend/internal/domain/model"
)

var (
	ErrUnsupportedProvider = errors.New("unsupported provider")
	ErrAmountTooSmall      = errors.New("amount below provider minimum")
	ErrEmailRequired       = errors.New("email is required")
	ErrNameRequired        = errors.New("name is required")
	ErrUnknownReference    = errors.New("unknown gift reference")
)

const defaultMinAmountMinor = 100

type Store interface {
	Insert(ctx context.Context, g model.Gift) (model.Gift, error)
	UpdateStatusByReference(ctx context.Context, reference string, status enums.GiftStatus) error
	ListAll(ctx context.Context) ([]model.Gift, error)
}

type Notifier interface {
	Send(ctx context.Context, text string) error
}

type CreateInput struct {
	Provider    enums.GiftProvider
	AmountMinor int64
	Email       string
	FirstName   string
	LastName    string
	Anonymous   bool
}

// Redirect tells the client where to finish the payment. Paystack checkouts
// are opened client side with the public key; PayPal and Wise are plain
// redirect URLs; bank transfers carry the account details instead.
type Redirect struct {
	Provider       enums.GiftProvider
	URL            string
	PaystackPubKey string
	Currency       string
	Bank           *BankDetails
}

type BankDetails struct {
	BankName      string
	AccountName   string
	AccountNumber string
	SwiftCode     string
}

type CreateResult struct {
	Gift     model.Gift
	Redirect Redirect
}

type Service struct {
	store    Store
	notifier Notifier
	cfg      config.GiftsConfig
	log      *zap.Logger
}

func NewService(store Store, notifier Notifier, cfg config.GiftsConfig, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}

	return &Service{
		store:    store,
		notifier: notifier,
		cfg:      cfg,
		log:      log,
	}
}

// Create validates the gift intent, records it as pending and returns the
// provider redirect. The reference is ours, not the provider's, so the
// webhook can find the row regardless of provider id formats.
func (s *Service) Create(ctx context.Context, in CreateInput) (CreateResult, error) {
	if !in.Provider.IsValid() {
		return CreateResult{}, ErrUnsupportedProvider
	}
	if in.AmountMinor < s.minAmountFor(in.Provider) {
		return CreateResult{}, ErrAmountTooSmall
	}

	in.Email = strings.TrimSpace(in.Email)
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)

	if in.Provider == enums.GiftProviderPaystack && in.Email == "" {
		return CreateResult{}, ErrEmailRequired
	}
	if !in.Anonymous && in.FirstName == "" {
		return CreateResult{}, ErrNameRequired
	}

	gift := model.Gift{
		Provider:    in.Provider,
		AmountMinor: in.AmountMinor,
		Currency:    s.currencyFor(in.Provider),
		Email:       in.Email,
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		Anonymous:   in.Anonymous,
		Status:      enums.GiftStatusPending,
		Reference:   uuid.NewString(),
	}

	saved, err := s.store.Insert(ctx, gift)
	if err != nil {
		return CreateResult{}, fmt.Errorf("insert gift: %w", err)
	}

	redirect, err := s.redirectFor(saved)
	if err != nil {
		return CreateResult{}, err
	}

	return CreateResult{Gift: saved, Redirect: redirect}, nil
}

// HandleWebhook resolves a provider callback into a final gift status.
// Unknown references are rejected so a replayed or forged callback cannot
// invent rows.
func (s *Service) HandleWebhook(ctx context.Context, reference, event string) error {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return ErrUnknownReference
	}

	status := statusForEvent(event)
	if err := s.store.UpdateStatusByReference(ctx, reference, status); err != nil {
		return fmt.Errorf("update gift status: %w", err)
	}

	if status == enums.GiftStatusCompleted {
		s.notify(ctx, fmt.Sprintf("Gift %s completed", reference))
	}
	return nil
}

func (s *Service) ListAll(ctx context.Context) ([]model.Gift, error) {
	gifts, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list gifts: %w", err)
	}
	return gifts, nil
}

func (s *Service) minAmountFor(provider enums.GiftProvider) int64 {
	switch provider {
	case enums.GiftProviderPaystack:
		if s.cfg.Paystack.MinAmountMinor > 0 {
			return s.cfg.Paystack.MinAmountMinor
		}
	case enums.GiftProviderPayPal:
		if s.cfg.PayPal.MinAmountMinor > 0 {
			return s.cfg.PayPal.MinAmountMinor
		}
	case enums.GiftProviderWise:
		if s.cfg.Wise.MinAmountMinor > 0 {
			return s.cfg.Wise.MinAmountMinor
		}
	case enums.GiftProviderBankTransfer:
		return 1
	}
	return defaultMinAmountMinor
}

func (s *Service) currencyFor(provider enums.GiftProvider) string {
	if provider == enums.GiftProviderPaystack && s.cfg.Paystack.Currency != "" {
		return s.cfg.Paystack.Currency
	}
	return "USD"
}

func (s *Service) redirectFor(gift model.Gift) (Redirect, error) {
	switch gift.Provider {
	case enums.GiftProviderPaystack:
		return Redirect{
			Provider:       gift.Provider,
			PaystackPubKey: s.cfg.Paystack.PublicKey,
			Currency:       gift.Currency,
		}, nil

	case enums.GiftProviderPayPal:
		if s.cfg.PayPal.Handle == "" {
			return Redirect{}, fmt.Errorf("paypal handle is not configured")
		}
		u := url.URL{
			Scheme: "https",
			Host:   "paypal.me",
			Path:   fmt.Sprintf("/%s/%d.%02d", s.cfg.PayPal.Handle, gift.AmountMinor/100, gift.AmountMinor%100),
		}
		return Redirect{Provider: gift.Provider, URL: u.String(), Currency: gift.Currency}, nil

	case enums.GiftProviderWise:
		if s.cfg.Wise.Tag == "" {
			return Redirect{}, fmt.Errorf("wise tag is not configured")
		}
		u := url.URL{
			Scheme:   "https",
			Host:     "wise.com",
			Path:     "/pay/me/" + s.cfg.Wise.Tag,
			RawQuery: url.Values{"amount": {fmt.Sprintf("%d.%02d", gift.AmountMinor/100, gift.AmountMinor%100)}}.Encode(),
		}
		return Redirect{Provider: gift.Provider, URL: u.String(), Currency: gift.Currency}, nil

	case enums.GiftProviderBankTransfer:
		return Redirect{
			Provider: gift.Provider,
			Currency: gift.Currency,
			Bank: &BankDetails{
				BankName:      s.cfg.Bank.BankName,
				AccountName:   s.cfg.Bank.AccountName,
				AccountNumber: s.cfg.Bank.AccountNumber,
				SwiftCode:     s.cfg.Bank.SwiftCode,
			},
		}, nil
	}

	return Redirect{}, ErrUnsupportedProvider
}

func statusForEvent(event string) enums.GiftStatus {
	switch strings.ToLower(strings.TrimSpace(event)) {
	case "charge.success", "success", "completed", "paid":
		return enums.GiftStatusCompleted
	default:
		return enums.GiftStatusFailed
	}
}

func (s *Service) notify(ctx context.Context, text string) {
	if s.notifier == nil {
		return
	}
	notifyCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := s.notifier.Send(notifyCtx, text); err != nil {
		s.log.Warn("send gift notification", zap.Error(err))
	}
}
