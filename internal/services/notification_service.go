package services

import (
	"context"

	"github.com/isdelr/auction-lab/internal/client"
	"github.com/isdelr/auction-lab/internal/models"
)

// NotificationServiceProvider defines the interface for notification services.
type NotificationServiceProvider interface {
	ListNotifications(ctx context.Context) ([]models.Notification, error)
	UnreadCount(ctx context.Context) (int, error)
	MarkRead(ctx context.Context, id string) error
}

// NotificationService lists notifications and flips their read flag.
type NotificationService struct {
	api *client.Client
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(api *client.Client) *NotificationService {
	return &NotificationService{api: api}
}

func (s *NotificationService) ListNotifications(ctx context.Context) ([]models.Notification, error) {
	return s.api.ListNotifications(ctx)
}

// UnreadCount fetches the full list and counts unread entries.
func (s *NotificationService) UnreadCount(ctx context.Context) (int, error) {
	notifications, err := s.api.ListNotifications(ctx)
	if err != nil {
		return 0, err
	}
	return models.CountUnread(notifications), nil
}

func (s *NotificationService) MarkRead(ctx context.Context, id string) error {
	return s.api.MarkNotificationRead(ctx, id)
}
