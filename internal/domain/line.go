package domain

// LineEventType represents the type of webhook event from LINE
type LineEventType string

const (
	// LineEventTypeMessage - Message event
	LineEventTypeMessage LineEventType = "message"
	// LineEventTypeFollow - Follow event
	LineEventTypeFollow LineEventType = "follow"
)

// LineMessageType represents the type of message
type LineMessageType string

const (
	// LineMessageTypeText - Text message
	LineMessageTypeText LineMessageType = "text"
)

// LineSource represents the source of the event
type LineSource struct {
	UserID  string
	GroupID string
	RoomID  string
}

// LineWebhookEvent represents a LINE webhook event
type LineWebhookEvent struct {
	Type       LineEventType
	Source     LineSource
	ReplyToken string
	Message    *LineMessage
}

// LineMessage represents an incoming text message from LINE
type LineMessage struct {
	ID   string
	Type LineMessageType
	Text string
}
