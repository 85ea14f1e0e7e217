package enums

type MessageType string

const (
	MessageTypeText      MessageType = "text"
	MessageTypeVoicenote MessageType = "voicenote"
)

func (t MessageType) IsValid() bool {
	switch t {
	case MessageTypeText, MessageTypeVoicenote:
		return true
	default:
		return false
	}
}

func (t MessageType) String() string {
	return string(t)
}
