package services

import (
	"database/sql"

	"github.com/google/uuid"
	"github.com/isdelr/auction-lab/internal/models"
)

// EventServiceProvider is the local activity log: bids placed, workflow steps
// taken and session warnings raised from this install.
type EventServiceProvider interface {
	CreateEvent(eventType, level, message string, auctionID *string) error
	GetRecentEvents(limit int) ([]models.Event, error)
	GetAuctionEvents(auctionID string, limit int) ([]models.Event, error)
}

// EventService keeps the activity log in the session database next to kv_store.
type EventService struct {
	db *sql.DB
}

func NewEventService(db *sql.DB) *EventService {
	return &EventService{db: db}
}

// CreateEvent appends one entry. auctionID is nil for account-level entries
// such as logins or an expired token.
func (s *EventService) CreateEvent(eventType, level, message string, auctionID *string) error {
	_, err := s.db.Exec(
		"INSERT INTO events (id, type, level, message, auction_id) VALUES (?, ?, ?, ?, ?)",
		uuid.NewString(), eventType, level, message, auctionID,
	)
	return err
}

// GetRecentEvents lists the newest entries across every auction.
func (s *EventService) GetRecentEvents(limit int) ([]models.Event, error) {
	return s.query("SELECT id, type, level, message, auction_id, created_at FROM events ORDER BY created_at DESC, rowid DESC LIMIT ?", limit)
}

// GetAuctionEvents lists the newest entries recorded against one auction.
func (s *EventService) GetAuctionEvents(auctionID string, limit int) ([]models.Event, error) {
	return s.query("SELECT id, type, level, message, auction_id, created_at FROM events WHERE auction_id = ? ORDER BY created_at DESC, rowid DESC LIMIT ?", auctionID, limit)
}

func (s *EventService) query(q string, args ...any) ([]models.Event, error) {
	rows, err := s.db.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		var e models.Event
		if err := rows.Scan(&e.ID, &e.Type, &e.Level, &e.Message, &e.AuctionID, &e.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// NopEvents discards everything. Used when no session database is open.
type NopEvents struct{}

func (NopEvents) CreateEvent(string, string, string, *string) error    { return nil }
func (NopEvents) GetRecentEvents(int) ([]models.Event, error)          { return nil, nil }
func (NopEvents) GetAuctionEvents(string, int) ([]models.Event, error) { return nil, nil }

// record writes an entry and only warns when the log cannot be written.
func record(events EventServiceProvider, eventType, level, message string, auctionID *string) {
	if events == nil {
		return
	}
	if err := events.CreateEvent(eventType, level, message, auctionID); err != nil {
		logWarn(err, eventType)
	}
}
