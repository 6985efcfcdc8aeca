package websocket

import "encoding/json"

// Message defines the structure for websocket messages sent to the browser.
type Message struct {
	Action  string      `json:"action"`
	Payload interface{} `json:"payload"`
}

// Encode marshals the message, falling back to an error message if the payload
// cannot be encoded.
func (m Message) Encode() []byte {
	b, err := json.Marshal(m)
	if err != nil {
		b, _ = json.Marshal(Message{Action: "error", Payload: map[string]string{"message": err.Error()}})
	}
	return b
}

// NewErrorMessage builds an "error" message.
func NewErrorMessage(msg string) []byte {
	return Message{Action: "error", Payload: map[string]string{"message": msg}}.Encode()
}

// NewBidMessage wraps a raw bid socket frame for the browser.
func NewBidMessage(auctionID string, frame json.RawMessage) []byte {
	return Message{Action: "bid_update", Payload: map[string]interface{}{
		"auctionId": auctionID,
		"frame":     frame,
	}}.Encode()
}

// NewNotificationsMessage reports the unread notification count.
func NewNotificationsMessage(unread int) []byte {
	return Message{Action: "notifications", Payload: map[string]int{"unread": unread}}.Encode()
}
