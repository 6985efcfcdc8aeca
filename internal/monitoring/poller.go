package monitoring

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/isdelr/auction-lab/internal/auth"
	"github.com/isdelr/auction-lab/internal/services"
	"github.com/isdelr/auction-lab/internal/websocket"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// SessionChecker reports on the stored login.
type SessionChecker interface {
	IsAuthenticated() bool
	Claims() (*auth.Claims, error)
}

// Publisher broadcasts a message to every connected browser.
type Publisher interface {
	Publish(message []byte)
}

// Poller periodically refreshes the unread notification count and pushes it to
// the browser. It is the fallback to the realtime bid feed.
type Poller struct {
	session       SessionChecker
	notifications services.NotificationServiceProvider
	publisher     Publisher
	eventSvc      services.EventServiceProvider
	interval      time.Duration
	now           func() time.Time

	cron *cron.Cron

	mu           sync.Mutex
	lastUnread   int
	expiryLogged bool
}

// NewPoller creates a new Poller.
func NewPoller(session SessionChecker, notifications services.NotificationServiceProvider, publisher Publisher, eventSvc services.EventServiceProvider, interval time.Duration) *Poller {
	return &Poller{
		session:       session,
		notifications: notifications,
		publisher:     publisher,
		eventSvc:      eventSvc,
		interval:      interval,
		now:           time.Now,
		lastUnread:    -1,
	}
}

// Start schedules the poll and runs it once immediately.
func (p *Poller) Start() error {
	log.Info().Dur("interval", p.interval).Msg("Starting notification poller...")
	p.cron = cron.New()
	if _, err := p.cron.AddFunc(fmt.Sprintf("@every %s", p.interval), p.Poll); err != nil {
		return fmt.Errorf("schedule poller: %w", err)
	}
	p.cron.Start()
	go p.Poll()
	return nil
}

// Stop halts the poller and waits for a running poll to finish.
func (p *Poller) Stop() {
	if p.cron == nil {
		return
	}
	<-p.cron.Stop().Done()
	log.Info().Msg("Stopping notification poller.")
}

// Poll runs one refresh cycle.
func (p *Poller) Poll() {
	if !p.session.IsAuthenticated() {
		return
	}
	p.checkExpiry()

	unread, err := p.notifications.UnreadCount(context.Background())
	if err != nil {
		log.Warn().Err(err).Msg("Poller: failed to refresh notifications")
		return
	}

	p.mu.Lock()
	changed := unread != p.lastUnread
	p.lastUnread = unread
	p.mu.Unlock()

	p.publisher.Publish(websocket.NewNotificationsMessage(unread))
	if changed {
		log.Debug().Int("unread", unread).Msg("Unread notification count changed")
	}
}

// checkExpiry notes an expired token once. The token is kept; the backend
// decides whether it is still accepted.
func (p *Poller) checkExpiry() {
	claims, err := p.session.Claims()
	if err != nil || !claims.Expired(p.now()) {
		return
	}

	p.mu.Lock()
	logged := p.expiryLogged
	p.expiryLogged = true
	p.mu.Unlock()
	if logged {
		return
	}

	log.Warn().Str("user_id", claims.UserIdentifier()).Msg("Stored session token has expired")
	if err := p.eventSvc.CreateEvent("session.expired", "warning", "Stored session token has expired.", nil); err != nil {
		log.Error().Err(err).Msg("Poller: failed to record session expiry")
	}
}
