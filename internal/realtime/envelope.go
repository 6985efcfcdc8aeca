package realtime

import (
	"encoding/json"

	"github.com/isdelr/auction-lab/internal/models"
)

// Message types sent by the bid socket.
const (
	TypeNewBid       = "new_bid"
	TypeAuctionEnded = "auction_ended"
	TypeConnected    = "connected"
	TypeError        = "error"
)

// Envelope is one decoded frame of the bid socket. Fields the frame does not carry
// stay nil; Raw always holds the original bytes.
type Envelope struct {
	Type       string          `json:"type"`
	AuctionID  string          `json:"auctionId,omitempty"`
	Bid        *models.Bid     `json:"bid,omitempty"`
	CurrentBid *float64        `json:"currentBid,omitempty"`
	Message    string          `json:"message,omitempty"`
	Raw        json.RawMessage `json:"-"`
}

// Decode parses a frame. Frames that are not JSON objects are reported as errors.
func Decode(frame []byte) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(frame, &env); err != nil {
		return Envelope{}, err
	}
	env.Raw = append(json.RawMessage(nil), frame...)
	return env, nil
}
