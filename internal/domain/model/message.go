package model

import (
	"time"

	"github.com/SodiqOgundairo/condolence-backend/internal/domain/enums"
)

// Message is a tribute left by a visitor. Exactly one of Message (meaningful
// text) and VoicenoteURL carries the content, gated by Type; voicenote rows
// hold a fixed placeholder in Message. Rows are immutable after insert.
type Message struct {
	ID           string
	CreatedAt    time.Time
	Name         string
	Message      string
	IsPublic     bool
	Type         enums.MessageType
	VoicenoteURL string
}
