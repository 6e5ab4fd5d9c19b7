// Package queue defines message payloads exchanged over the message broker.
package queue

// OrderCreatedEvent is published when an order is successfully placed.  It
// carries enough detail for downstream consumers to log, notify, or feed
// analytics without querying the primary database.
type OrderCreatedEvent struct {
	OrderID     uint64           `json:"order_id"`
	UserID      uint64           `json:"user_id"`
	UserEmail   string           `json:"user_email,omitempty"`
	Status      string           `json:"status"`
	TotalAmount float64          `json:"total_amount"`
	Items       []OrderEventItem `json:"items"`
	CreatedAt   string           `json:"created_at"`
}

// OrderEventItem is one purchased line inside an OrderCreatedEvent.
type OrderEventItem struct {
	AlbumID    uint64  `json:"album_id"`
	AlbumName  string  `json:"album_name,omitempty"`
	ArtistName string  `json:"artist_name,omitempty"`
	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`
}
