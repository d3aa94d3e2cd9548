package notifications

import (
	"context"
	"log/slog"

	"hrportal/internal/platform/listing"
)

type Service struct {
	store StoreAPI
}

func New(store StoreAPI) *Service {
	return &Service{store: store}
}

func (s *Service) Create(ctx context.Context, userID, ntype, title, body string) error {
	return s.store.CreateNotification(ctx, userID, ntype, title, body)
}

// Broadcast sends the same notification to every user, logging failures
// instead of stopping at the first one. It returns how many were stored.
func (s *Service) Broadcast(ctx context.Context, userIDs []string, ntype, title, body string) int {
	sent := 0
	for _, userID := range userIDs {
		if err := s.store.CreateNotification(ctx, userID, ntype, title, body); err != nil {
			slog.Warn("notification create failed", "err", err, "userId", userID, "type", ntype)
			continue
		}
		sent++
	}
	return sent
}

func (s *Service) List(ctx context.Context, userID string, params listing.Params) ([]Notification, listing.Meta, error) {
	params = params.Normalize()
	total, err := s.store.CountNotifications(ctx, userID)
	if err != nil {
		return nil, listing.Meta{}, err
	}
	items, err := s.store.ListNotifications(ctx, userID, params.Limit, params.Offset())
	if err != nil {
		return nil, listing.Meta{}, err
	}
	if items == nil {
		items = []Notification{}
	}
	return items, listing.NewMeta(params, total), nil
}

func (s *Service) MarkRead(ctx context.Context, userID, notificationID string) error {
	found, err := s.store.MarkRead(ctx, userID, notificationID)
	if err != nil {
		return err
	}
	if !found {
		return ErrNotificationNotFound
	}
	return nil
}
