// Package repository implements the data access layer.  Sentinel errors
// defined here let handlers map repository failures onto the HTTP error
// taxonomy (400/401/403/404/409) without inspecting driver error strings.
package repository

import (
    "errors"
    "strings"
)

// ErrEmailExists is returned when registering an email that is already
// taken.  Handlers translate it into HTTP 400.
var ErrEmailExists = errors.New("email already exists")

// ErrArtistNotFound is returned when a referenced artist does not exist.
var ErrArtistNotFound = errors.New("artist not found")

// ErrAlbumNotFound is returned when a referenced album does not exist.
// During order creation it maps to HTTP 404.
var ErrAlbumNotFound = errors.New("album not found")

// ErrTrackNotFound is returned when a referenced track does not exist.
var ErrTrackNotFound = errors.New("track not found")

// ErrOrderNotFound is returned when a referenced order does not exist.
var ErrOrderNotFound = errors.New("order not found")

// ErrAlbumNotForSale is returned when an order line references an album that
// exists but is not purchasable (not selling, or non-positive price).
var ErrAlbumNotForSale = errors.New("album not for sale")

// ErrInvalidQuantity is returned when an order line carries a missing or
// non-positive quantity.
var ErrInvalidQuantity = errors.New("invalid quantity")

// ErrEmptyCart is returned when order creation is attempted with no items.
var ErrEmptyCart = errors.New("no order items provided")

// isDuplicate reports whether err is a unique-constraint violation.  MySQL
// surfaces error 1062; SQLite (used in tests) reports a UNIQUE constraint.
func isDuplicate(err error) bool {
    if err == nil {
        return false
    }
    msg := strings.ToLower(err.Error())
    return strings.Contains(msg, "1062") || strings.Contains(msg, "unique")
}
