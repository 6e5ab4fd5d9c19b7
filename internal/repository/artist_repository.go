package repository

import (
	"context"
	"database/sql"

	"github.com/atelier/discography-api/internal/model"
)

// ArtistRepo provides read access to the artists table.  The catalog holds
// a small, curated set of artists maintained outside the API, so only
// lookups and listing are exposed.
type ArtistRepo struct{ db *sql.DB }

func NewArtistRepo(db *sql.DB) *ArtistRepo { return &ArtistRepo{db: db} }

const artistColumns = "id, name, description, bio_image, icon_image, spotify_id, created_at"

func scanArtist(row interface{ Scan(...any) error }) (model.Artist, error) {
	var a model.Artist
	err := row.Scan(&a.ID, &a.Name, &a.Description, &a.BioImage, &a.IconImage, &a.SpotifyID, &a.CreatedAt)
	return a, err
}

// List returns all artists ordered by name.
func (r *ArtistRepo) List(ctx context.Context) ([]model.Artist, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+artistColumns+" FROM artists ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	artists := make([]model.Artist, 0)
	for rows.Next() {
		a, err := scanArtist(rows)
		if err != nil {
			return nil, err
		}
		artists = append(artists, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return artists, nil
}

// GetByID fetches a single artist, returning ErrArtistNotFound when absent.
func (r *ArtistRepo) GetByID(ctx context.Context, id uint64) (model.Artist, error) {
	a, err := scanArtist(r.db.QueryRowContext(ctx,
		"SELECT "+artistColumns+" FROM artists WHERE id=? LIMIT 1", id))
	if err == sql.ErrNoRows {
		return a, ErrArtistNotFound
	}
	return a, err
}
