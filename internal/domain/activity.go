package domain

import "time"

// Типы событий активности.
const (
	EventSessionStarted = "session.started"
	EventSessionEnded   = "session.ended"
	EventCartItemAdded  = "cart.item_added"
	EventCartItemRemove = "cart.item_removed"
	EventCartCleared    = "cart.cleared"
	EventOrderPlaced    = "order.placed"
)

// ActivityEvent - событие активности профиля.
type ActivityEvent struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	Profile    string         `json:"profile"`
	Role       string         `json:"role,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
	Attributes map[string]any `json:"attributes,omitempty"`
}
