package model

import (
    "strings"
    "time"
)

// Order statuses.  An order is created as pending; transitions happen only
// through an explicit admin action.
const (
    StatusPending   = "pending"
    StatusCompleted = "completed"
    StatusCancelled = "cancelled"
)

// NormalizeStatus lowercases a requested status and reports whether it is
// one of the allowed values.
func NormalizeStatus(s string) (string, bool) {
    s = strings.ToLower(strings.TrimSpace(s))
    switch s {
    case StatusPending, StatusCompleted, StatusCancelled:
        return s, true
    }
    return "", false
}

// Order aggregates one or more purchased albums for a single user.
// TotalAmount is the server-computed sum of quantity*unit_price across the
// items at creation time; it is never taken from client input.  UserEmail is
// populated only on the admin listing, which joins the owner.
//
// Fields:
//  ID          – primary key identifier.
//  UserID      – owner of the order.
//  UserEmail   – owner email (admin listing only).
//  TotalAmount – authoritative total at creation time.
//  Status      – pending, completed or cancelled.
//  CreatedAt   – creation timestamp.
//  Items       – line items, one per purchased album.
type Order struct {
    ID          uint64      `json:"id"`
    UserID      uint64      `json:"user_id"`
    UserEmail   string      `json:"user_email,omitempty"`
    TotalAmount float64     `json:"total_amount"`
    Status      string      `json:"status"`
    CreatedAt   time.Time   `json:"created_at"`
    Items       []OrderItem `json:"items,omitempty"`
}

// OrderItem is a single line of an order.  UnitPrice snapshots the album
// cost at order time; later catalog price changes never alter it.  Rows
// cascade-delete with their parent order.
type OrderItem struct {
    ID         uint64  `json:"id"`
    OrderID    uint64  `json:"order_id"`
    AlbumID    uint64  `json:"album_id"`
    Quantity   int     `json:"quantity"`
    UnitPrice  float64 `json:"unit_price"`
    AlbumName  string  `json:"album_name,omitempty"`
    ArtistName string  `json:"artist_name,omitempty"`
}
