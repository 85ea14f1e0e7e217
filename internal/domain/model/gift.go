package model

import (
	"time"

	"github.com/SodiqOgundairo/condolence-backend/internal/domain/enums"
)

// Gift records the intent of a monetary condolence gift. Processing happens at
// the external provider; we only keep the reference and a coarse status
// updated by the provider webhook.
type Gift struct {
	ID          string
	CreatedAt   time.Time
	Provider    enums.GiftProvider
	AmountMinor int64
	Currency    string
	Email       string
	FirstName   string
	LastName    string
	Anonymous   bool
	Status      enums.GiftStatus
	Reference   string
}
