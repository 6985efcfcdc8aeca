package websocket

import (
	"sync"

	"github.com/isdelr/auction-lab/internal/realtime"
	"github.com/rs/zerolog/log"
)

// FeedFactory opens the upstream bid socket for one auction.
type FeedFactory func(auctionID string) (*realtime.Feed, error)

// Relay keeps one upstream feed per watched auction and fans its frames out
// through the hub. A feed opens with the first watcher and closes with the last.
type Relay struct {
	hub     *Hub
	newFeed FeedFactory

	mu    sync.Mutex
	feeds map[string]*relayFeed
}

type relayFeed struct {
	feed *realtime.Feed
	refs int
}

// NewRelay creates a new Relay.
func NewRelay(hub *Hub, newFeed FeedFactory) *Relay {
	return &Relay{hub: hub, newFeed: newFeed, feeds: make(map[string]*relayFeed)}
}

// Acquire adds a watcher for auctionID, opening its feed if needed.
func (r *Relay) Acquire(auctionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if rf, ok := r.feeds[auctionID]; ok {
		rf.refs++
		return nil
	}

	feed, err := r.newFeed(auctionID)
	if err != nil {
		return err
	}
	r.feeds[auctionID] = &relayFeed{feed: feed, refs: 1}
	feed.Start()
	go r.forward(auctionID, feed)
	log.Info().Str("auction_id", auctionID).Msg("Opened upstream bid feed")
	return nil
}

// Release drops a watcher, closing the feed when none remain.
func (r *Relay) Release(auctionID string) {
	r.mu.Lock()
	rf, ok := r.feeds[auctionID]
	if !ok {
		r.mu.Unlock()
		return
	}
	rf.refs--
	if rf.refs > 0 {
		r.mu.Unlock()
		return
	}
	delete(r.feeds, auctionID)
	r.mu.Unlock()

	rf.feed.Close()
	log.Info().Str("auction_id", auctionID).Msg("Closed upstream bid feed")
}

// Send forwards a browser frame upstream.
func (r *Relay) Send(auctionID string, frame []byte) error {
	r.mu.Lock()
	rf, ok := r.feeds[auctionID]
	r.mu.Unlock()
	if !ok {
		return realtime.ErrNotConnected
	}
	return rf.feed.SendRaw(frame)
}

// Latest returns the newest frame seen for auctionID, if its feed is open.
func (r *Relay) Latest(auctionID string) *realtime.Envelope {
	r.mu.Lock()
	rf, ok := r.feeds[auctionID]
	r.mu.Unlock()
	if !ok {
		return nil
	}
	return rf.feed.Latest()
}

// Watched returns the number of auctions with an open feed.
func (r *Relay) Watched() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.feeds)
}

// Close shuts every feed.
func (r *Relay) Close() {
	r.mu.Lock()
	feeds := r.feeds
	r.feeds = make(map[string]*relayFeed)
	r.mu.Unlock()

	for _, rf := range feeds {
		rf.feed.Close()
	}
}

func (r *Relay) forward(auctionID string, feed *realtime.Feed) {
	for env := range feed.Messages() {
		r.hub.BroadcastTo(auctionID, NewBidMessage(auctionID, env.Raw))
	}
}
