package enums

type GiftProvider string

const (
	GiftProviderPaystack     GiftProvider = "paystack"
	GiftProviderPayPal       GiftProvider = "paypal"
	GiftProviderWise         GiftProvider = "wise"
	GiftProviderBankTransfer GiftProvider = "bank_transfer"
)

func (p GiftProvider) IsValid() bool {
	switch p {
	case GiftProviderPaystack, GiftProviderPayPal, GiftProviderWise, GiftProviderBankTransfer:
		return true
	default:
		return false
	}
}

func (p GiftProvider) String() string {
	return string(p)
}

type GiftStatus string

const (
	GiftStatusPending   GiftStatus = "pending"
	GiftStatusCompleted GiftStatus = "completed"
	GiftStatusFailed    GiftStatus = "failed"
)

func (s GiftStatus) String() string {
	return string(s)
}

func (s GiftStatus) IsValid() bool {
	switch s {
	case GiftStatusPending, GiftStatusCompleted, GiftStatusFailed:
		return true
	default:
		return false
	}
}
