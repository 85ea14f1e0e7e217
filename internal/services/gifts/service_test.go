package gifts_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/SodiqOgundairo/condolence-backend/internal/config"
	"github.com/SodiqOgundairo/condolence-backend/internal/domain/enums"
	"github.com/SodiqOgundairo/condolence-backend/internal/domain/model"
	"github.com/SodiqOgundairo/condolence-backend/internal/services/gifts"
)

type fakeStore struct {
	gifts    map[string]model.Gift
	inserted []model.Gift
}

func newFakeStore() *fakeStore {
	return &fakeStore{gifts: map[string]model.Gift{}}
}

func (f *fakeStore) Insert(_ context.Context, g model.Gift) (model.Gift, error) {
	g.ID = "gift-" + g.Reference
	f.gifts[g.Reference] = g
	f.inserted = append(f.inserted, g)
	return g, nil
}

func (f *fakeStore) UpdateStatusByReference(_ context.Context, reference string, status enums.GiftStatus) error {
	g, ok := f.gifts[reference]
	if !ok {
		return errors.New("gift not found")
	}
	g.Status = status
	f.gifts[reference] = g
	return nil
}

func (f *fakeStore) ListAll(context.Context) ([]model.Gift, error) {
	return f.inserted, nil
}

func testConfig() config.GiftsConfig {
	return config.GiftsConfig{
		Paystack: config.PaystackConfig{PublicKey: "pk_test_x", Currency: "NGN", MinAmountMinor: 10000},
		PayPal:   config.PayPalConfig{Handle: "memorialfund", MinAmountMinor: 100},
		Wise:     config.WiseConfig{Tag: "memorialfund", MinAmountMinor: 100},
		Bank:     config.BankConfig{BankName: "First Bank", AccountName: "Memorial Fund", AccountNumber: "0123456789"},
	}
}

func TestCreateValidatesProviderAndAmount(t *testing.T) {
	svc := gifts.NewService(newFakeStore(), nil, testConfig(), nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, gifts.CreateInput{Provider: "cash_app", AmountMinor: 5000})
	if !errors.Is(err, gifts.ErrUnsupportedProvider) {
		t.Fatalf("unknown provider = %v, want ErrUnsupportedProvider", err)
	}

	_, err = svc.Create(ctx, gifts.CreateInput{
		Provider: enums.GiftProviderPaystack, AmountMinor: 9999, Email: "a@b.c", FirstName: "Ada",
	})
	if !errors.Is(err, gifts.ErrAmountTooSmall) {
		t.Fatalf("below paystack minimum = %v, want ErrAmountTooSmall", err)
	}

	_, err = svc.Create(ctx, gifts.CreateInput{
		Provider: enums.GiftProviderPaystack, AmountMinor: 10000, FirstName: "Ada",
	})
	if !errors.Is(err, gifts.ErrEmailRequired) {
		t.Fatalf("paystack without email = %v, want ErrEmailRequired", err)
	}

	_, err = svc.Create(ctx, gifts.CreateInput{
		Provider: enums.GiftProviderPayPal, AmountMinor: 500,
	})
	if !errors.Is(err, gifts.ErrNameRequired) {
		t.Fatalf("named gift without a name = %v, want ErrNameRequired", err)
	}
}

func TestCreatePaystackGift(t *testing.T) {
	store := newFakeStore()
	svc := gifts.NewService(store, nil, testConfig(), nil)

	res, err := svc.Create(context.Background(), gifts.CreateInput{
		Provider:    enums.GiftProviderPaystack,
		AmountMinor: 10000,
		Email:       "ada@example.com",
		FirstName:   "Ada",
		LastName:    "Lovelace",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if res.Gift.Status != enums.GiftStatusPending {
		t.Fatalf("status = %q, want pending", res.Gift.Status)
	}
	if res.Gift.Reference == "" {
		t.Fatal("gift reference is empty")
	}
	if res.Gift.Currency != "NGN" {
		t.Fatalf("currency = %q, want NGN", res.Gift.Currency)
	}
	if res.Redirect.PaystackPubKey != "pk_test_x" {
		t.Fatalf("redirect public key = %q, want the configured key", res.Redirect.PaystackPubKey)
	}
}

func TestCreateRedirectURLs(t *testing.T) {
	svc := gifts.NewService(newFakeStore(), nil, testConfig(), nil)
	ctx := context.Background()

	paypal, err := svc.Create(ctx, gifts.CreateInput{
		Provider: enums.GiftProviderPayPal, AmountMinor: 2550, FirstName: "Ada",
	})
	if err != nil {
		t.Fatalf("Create paypal: %v", err)
	}
	if paypal.Redirect.URL != "https://paypal.me/memorialfund/25.50" {
		t.Fatalf("paypal url = %q", paypal.Redirect.URL)
	}

	wise, err := svc.Create(ctx, gifts.CreateInput{
		Provider: enums.GiftProviderWise, AmountMinor: 2550, FirstName: "Ada",
	})
	if err != nil {
		t.Fatalf("Create wise: %v", err)
	}
	if !strings.HasPrefix(wise.Redirect.URL, "https://wise.com/pay/me/memorialfund") {
		t.Fatalf("wise url = %q", wise.Redirect.URL)
	}
	if !strings.Contains(wise.Redirect.URL, "amount=25.50") {
		t.Fatalf("wise url missing amount: %q", wise.Redirect.URL)
	}

	bank, err := svc.Create(ctx, gifts.CreateInput{
		Provider: enums.GiftProviderBankTransfer, AmountMinor: 1, Anonymous: true,
	})
	if err != nil {
		t.Fatalf("Create bank: %v", err)
	}
	if bank.Redirect.Bank == nil || bank.Redirect.Bank.AccountNumber != "0123456789" {
		t.Fatalf("bank redirect = %+v, want account details", bank.Redirect.Bank)
	}
}

func TestHandleWebhook(t *testing.T) {
	store := newFakeStore()
	svc := gifts.NewService(store, nil, testConfig(), nil)
	ctx := context.Background()

	res, err := svc.Create(ctx, gifts.CreateInput{
		Provider: enums.GiftProviderPaystack, AmountMinor: 10000, Email: "a@b.c", FirstName: "Ada",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := svc.HandleWebhook(ctx, res.Gift.Reference, "charge.success"); err != nil {
		t.Fatalf("HandleWebhook: %v", err)
	}
	if got := store.gifts[res.Gift.Reference].Status; got != enums.GiftStatusCompleted {
		t.Fatalf("status = %q, want completed", got)
	}

	if err := svc.HandleWebhook(ctx, res.Gift.Reference, "charge.failed"); err != nil {
		t.Fatalf("HandleWebhook: %v", err)
	}
	if got := store.gifts[res.Gift.Reference].Status; got != enums.GiftStatusFailed {
		t.Fatalf("status = %q, want failed", got)
	}

	if err := svc.HandleWebhook(ctx, "", "charge.success"); !errors.Is(err, gifts.ErrUnknownReference) {
		t.Fatalf("blank reference = %v, want ErrUnknownReference", err)
	}
	if err := svc.HandleWebhook(ctx, "no-such-ref", "charge.success"); err == nil {
		t.Fatal("unknown reference should fail")
	}
}
