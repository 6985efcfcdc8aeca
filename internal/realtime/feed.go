// Package realtime keeps a live bid socket open for one auction.
package realtime

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// DefaultReconnectDelay is the fixed wait before redialing a closed socket.
const DefaultReconnectDelay = 3 * time.Second

// ErrNotConnected is returned by Send while the socket is down.
var ErrNotConnected = errors.New("realtime: not connected")

// Feed is an unauthenticated socket for one auction. It redials after every close,
// with a fixed delay and no attempt limit, until Close is called.
type Feed struct {
	url       string
	auctionID string
	delay     time.Duration
	dialer    *websocket.Dialer

	mu         sync.Mutex
	conn       *websocket.Conn
	latest     *Envelope
	reconnects int

	messages chan Envelope
	ctx      context.Context
	cancel   context.CancelFunc
	done     chan struct{}
	start    sync.Once
}

// FeedOption customises a Feed.
type FeedOption func(*Feed)

// WithReconnectDelay overrides DefaultReconnectDelay.
func WithReconnectDelay(d time.Duration) FeedOption {
	return func(f *Feed) { f.delay = d }
}

// WithDialer replaces websocket.DefaultDialer.
func WithDialer(d *websocket.Dialer) FeedOption {
	return func(f *Feed) { f.dialer = d }
}

// NewFeed prepares a feed for auctionID on the socket at wsURL. Call Start to connect.
func NewFeed(wsURL, auctionID string, opts ...FeedOption) (*Feed, error) {
	u, err := url.Parse(wsURL)
	if err != nil {
		return nil, err
	}
	q := u.Query()
	q.Set("auctionId", auctionID)
	u.RawQuery = q.Encode()

	ctx, cancel := context.WithCancel(context.Background())
	f := &Feed{
		url:       u.String(),
		auctionID: auctionID,
		delay:     DefaultReconnectDelay,
		dialer:    websocket.DefaultDialer,
		messages:  make(chan Envelope, 64),
		ctx:       ctx,
		cancel:    cancel,
		done:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// Start connects in the background. Further calls do nothing.
func (f *Feed) Start() {
	f.start.Do(func() { go f.run() })
}

// Messages delivers decoded frames. When the consumer falls behind, frames are
// dropped; Latest still reflects the newest one.
func (f *Feed) Messages() <-chan Envelope {
	return f.messages
}

// Latest returns the most recent frame, or nil before the first one arrives.
func (f *Feed) Latest() *Envelope {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.latest == nil {
		return nil
	}
	env := *f.latest
	return &env
}

// Reconnects counts redials after the first connection attempt.
func (f *Feed) Reconnects() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.reconnects
}

// Send writes v as JSON to the open socket.
func (f *Feed) Send(v any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.conn == nil {
		return ErrNotConnected
	}
	return f.conn.WriteJSON(v)
}

// SendRaw writes a pre-encoded text frame.
func (f *Feed) SendRaw(frame []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.conn == nil {
		return ErrNotConnected
	}
	return f.conn.WriteMessage(websocket.TextMessage, frame)
}

// Close stops the feed, cancelling any pending redial, and waits for it to exit.
func (f *Feed) Close() {
	f.cancel()
	f.mu.Lock()
	if f.conn != nil {
		f.conn.Close()
	}
	f.mu.Unlock()
	f.start.Do(func() { close(f.done) })
	<-f.done
}

func (f *Feed) run() {
	defer close(f.done)
	defer close(f.messages)

	first := true
	for {
		if !first {
			select {
			case <-f.ctx.Done():
				return
			case <-time.After(f.delay):
			}
			f.mu.Lock()
			f.reconnects++
			f.mu.Unlock()
		}
		first = false

		conn, _, err := f.dialer.DialContext(f.ctx, f.url, nil)
		if err != nil {
			if f.ctx.Err() != nil {
				return
			}
			log.Warn().Err(err).Str("auction_id", f.auctionID).Dur("retry_in", f.delay).Msg("Bid socket dial failed")
			continue
		}

		f.mu.Lock()
		if f.ctx.Err() != nil {
			f.mu.Unlock()
			conn.Close()
			return
		}
		f.conn = conn
		f.mu.Unlock()
		log.Info().Str("auction_id", f.auctionID).Msg("Bid socket connected")

		f.readLoop(conn)

		f.mu.Lock()
		f.conn = nil
		f.mu.Unlock()
		conn.Close()

		if f.ctx.Err() != nil {
			return
		}
		log.Info().Str("auction_id", f.auctionID).Dur("retry_in", f.delay).Msg("Bid socket closed, reconnecting")
	}
}

func (f *Feed) readLoop(conn *websocket.Conn) {
	for {
		_, frame, err := conn.ReadMessage()
		if err != nil {
			return
		}
		env, err := Decode(frame)
		if err != nil {
			log.Debug().Err(err).Bytes("frame", frame).Msg("Ignoring undecodable bid socket frame")
			continue
		}

		f.mu.Lock()
		f.latest = &env
		f.mu.Unlock()

		select {
		case f.messages <- env:
		default:
		}
	}
}
