// Package audit keeps an append-only trail of writes made through the API.
package audit

import (
	"context"
	"encoding/json"
	"time"

	"hrportal/internal/platform/listing"
)

const (
	ActionCreate     = "create"
	ActionUpdate     = "update"
	ActionDelete     = "delete"
	ActionPublish    = "publish"
	ActionRepublish  = "republish"
	ActionClose      = "close"
	ActionSubmit     = "submit"
	ActionReview     = "review"
	ActionDeactivate = "deactivate"
)

type Event struct {
	ID         string          `json:"id"`
	ActorID    string          `json:"actorId"`
	Action     string          `json:"action"`
	EntityType string          `json:"entityType"`
	EntityID   string          `json:"entityId"`
	RequestID  string          `json:"requestId"`
	IP         string          `json:"ip"`
	CreatedAt  time.Time       `json:"createdAt"`
	Before     json.RawMessage `json:"before,omitempty"`
	After      json.RawMessage `json:"after,omitempty"`
}

type Filter struct {
	Action         string
	EntityType     string
	ActorUser      string
	IncludeDetails bool
}

type StoreAPI interface {
	Insert(ctx context.Context, event Event) error
	Count(ctx context.Context, filter Filter) (int, error)
	List(ctx context.Context, filter Filter, limit, offset int) ([]Event, error)
}

type Service struct {
	store StoreAPI
}

func New(store StoreAPI) *Service {
	return &Service{store: store}
}

// Record stores one event. before and after are marshalled as JSON
// snapshots; nil leaves the column empty.
func (s *Service) Record(ctx context.Context, actorID, action, entityType, entityID, requestID, ip string, before, after any) error {
	beforeJSON, err := snapshot(before)
	if err != nil {
		return err
	}
	afterJSON, err := snapshot(after)
	if err != nil {
		return err
	}
	return s.store.Insert(ctx, Event{
		ActorID:    actorID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		RequestID:  requestID,
		IP:         ip,
		Before:     beforeJSON,
		After:      afterJSON,
	})
}

func (s *Service) List(ctx context.Context, params listing.Params, filter Filter) ([]Event, listing.Meta, error) {
	params = params.Normalize()
	total, err := s.store.Count(ctx, filter)
	if err != nil {
		return nil, listing.Meta{}, err
	}
	events, err := s.store.List(ctx, filter, params.Limit, params.Offset())
	if err != nil {
		return nil, listing.Meta{}, err
	}
	if events == nil {
		events = []Event{}
	}
	return events, listing.NewMeta(params, total), nil
}

func snapshot(value any) (json.RawMessage, error) {
	if value == nil {
		return nil, nil
	}
	return json.Marshal(value)
}
