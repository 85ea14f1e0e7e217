package dto

import "time"

type CreateGiftRequest struct {
	Provider    string `json:"provider"`
	AmountMinor int64  `json:"amount_minor"`
	Email       string `json:"email,omitempty"`
	FirstName   string `json:"first_name,omitempty"`
	LastName    string `json:"last_name,omitempty"`
	Anonymous   bool   `json:"anonymous,omitempty"`
}

type BankDetailsResponse struct {
	BankName      string `json:"bank_name"`
	AccountName   string `json:"account_name"`
	AccountNumber string `json:"account_number"`
	SwiftCode     string `json:"swift_code,omitempty"`
}

type GiftRedirectResponse struct {
	Provider       string               `json:"provider"`
	URL            string               `json:"url,omitempty"`
	PaystackPubKey string               `json:"paystack_public_key,omitempty"`
	Currency       string               `json:"currency"`
	Bank           *BankDetailsResponse `json:"bank,omitempty"`
}

type CreateGiftResponse struct {
	Reference   string               `json:"reference"`
	Status      string               `json:"status"`
	AmountMinor int64                `json:"amount_minor"`
	Redirect    GiftRedirectResponse `json:"redirect"`
}

type GiftWebhookRequest struct {
	Reference string `json:"reference"`
	Event     string `json:"event"`
}

type GiftResponse struct {
	ID          string    `json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	Provider    string    `json:"provider"`
	AmountMinor int64     `json:"amount_minor"`
	Currency    string    `json:"currency"`
	Email       string    `json:"email,omitempty"`
	FirstName   string    `json:"first_name,omitempty"`
	LastName    string    `json:"last_name,omitempty"`
	Anonymous   bool      `json:"anonymous"`
	Status      string    `json:"status"`
	Reference   string    `json:"reference"`
}

type GiftsListResponse struct {
	Items []GiftResponse `json:"items"`
}
