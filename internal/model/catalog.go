package model

import "time"

// Artist mirrors the `artists` table.
type Artist struct {
    ID          uint64    `json:"id"`
    Name        string    `json:"name"`
    Description *string   `json:"description"`
    BioImage    *string   `json:"bio_image"`
    IconImage   *string   `json:"icon_image"`
    SpotifyID   *string   `json:"spotify_id"`
    CreatedAt   time.Time `json:"created_at"`
}

// Album mirrors the `albums` table.  ArtistName is denormalized at insert
// time so catalog listings avoid a join.  IsSelling and Cost together decide
// whether the album is purchasable: an order line is only accepted when
// IsSelling is true and Cost is positive.
type Album struct {
    ID          uint64    `json:"id"`
    ArtistID    uint64    `json:"artist_id"`
    ArtistName  string    `json:"artist_name"`
    Name        string    `json:"name"`
    Description *string   `json:"description"`
    Type        *string   `json:"type"`
    ReleaseDate *string   `json:"release_date"`
    SpotifyID   *string   `json:"spotify_id"`
    AwardID     *uint64   `json:"award_id"`
    AwardNumber *int      `json:"award_number"`
    IsSelling   bool      `json:"is_selling"`
    Cost        float64   `json:"cost"`
    CreatedAt   time.Time `json:"created_at"`
    Tracks      []Track   `json:"tracks,omitempty"`
}

// Purchasable reports whether the album may appear on an order.
func (a *Album) Purchasable() bool { return a != nil && a.IsSelling && a.Cost > 0 }

// Track mirrors the `tracks` table.  Feat is persisted as a JSON array
// string and decoded by the repository on read.
type Track struct {
    ID          uint64    `json:"id"`
    ArtistID    uint64    `json:"artist_id"`
    ArtistName  string    `json:"artist_name"`
    AlbumID     *uint64   `json:"album_id"`
    AlbumName   string    `json:"album_name"`
    Name        string    `json:"name"`
    Description *string   `json:"description"`
    ReleaseDate *string   `json:"release_date"`
    Feat        []string  `json:"feat"`
    SpotifyID   *string   `json:"spotify_id"`
    AwardID     *uint64   `json:"award_id"`
    AwardNumber *int      `json:"award_number"`
    CreatedAt   time.Time `json:"created_at"`
}

// Award mirrors the `awards` table.
type Award struct {
    ID        uint64    `json:"id"`
    Name      string    `json:"name"`
    CreatedAt time.Time `json:"created_at"`
}
