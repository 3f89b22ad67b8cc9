// Package queue publishes reservation lifecycle events to RabbitMQ for
// downstream notification and analytics consumers. Publishing failures
// are logged by the caller and never interrupt the user-facing reply.
package queue

// ReservationConfirmedEvent is published when a booking is confirmed.
// It carries enough for consumers to notify or aggregate without
// querying the primary database.
type ReservationConfirmedEvent struct {
	ReservationID string   `json:"reservation_id"`
	UserID        string   `json:"user_id"`
	Name          string   `json:"name"`
	PartySize     int      `json:"party_size"`
	Date          string   `json:"date"`
	Time          string   `json:"time"`
	EventType     string   `json:"event_type"`
	MenuPack      string   `json:"menu_pack"`
	Addons        []string `json:"addons"`
	TotalCost     int      `json:"total_cost"`
	ConfirmedAt   string   `json:"confirmed_at"`
}

// ReservationCancelledEvent is published when a confirmed booking is
// cancelled, either by the guest mid-conversation or via the admin API.
type ReservationCancelledEvent struct {
	ReservationID string `json:"reservation_id"`
	UserID        string `json:"user_id"`
	Date          string `json:"date"`
	Time          string `json:"time"`
	CancelledAt   string `json:"cancelled_at"`
}
