package repository

import (
	"context"
	"database/sql"

	"github.com/atelier/discography-api/internal/model"
)

// AlbumRepo provides CRUD operations for the albums table.  Albums are the
// purchasable catalog entries consulted during order creation; writes are
// reserved for admins.
type AlbumRepo struct{ db *sql.DB }

func NewAlbumRepo(db *sql.DB) *AlbumRepo { return &AlbumRepo{db: db} }

const albumColumns = "id, artist_id, artist_name, name, description, type, release_date, spotify_id, award_id, award_number, is_selling, cost, created_at"

func scanAlbum(row interface{ Scan(...any) error }) (model.Album, error) {
	var a model.Album
	err := row.Scan(&a.ID, &a.ArtistID, &a.ArtistName, &a.Name, &a.Description, &a.Type,
		&a.ReleaseDate, &a.SpotifyID, &a.AwardID, &a.AwardNumber, &a.IsSelling, &a.Cost, &a.CreatedAt)
	return a, err
}

// List returns all albums, optionally filtered by artist name, newest first.
func (r *AlbumRepo) List(ctx context.Context, artistName string) ([]model.Album, error) {
	q := "SELECT " + albumColumns + " FROM albums"
	args := []any{}
	if artistName != "" {
		q += " WHERE artist_name=?"
		args = append(args, artistName)
	}
	q += " ORDER BY release_date DESC, id DESC"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	albums := make([]model.Album, 0)
	for rows.Next() {
		a, err := scanAlbum(rows)
		if err != nil {
			return nil, err
		}
		albums = append(albums, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return albums, nil
}

// GetByID fetches a single album together with its tracks, returning
// ErrAlbumNotFound when absent.
func (r *AlbumRepo) GetByID(ctx context.Context, id uint64) (model.Album, error) {
	a, err := scanAlbum(r.db.QueryRowContext(ctx,
		"SELECT "+albumColumns+" FROM albums WHERE id=? LIMIT 1", id))
	if err == sql.ErrNoRows {
		return a, ErrAlbumNotFound
	}
	if err != nil {
		return a, err
	}

	tracks, err := listTracks(ctx, r.db, "WHERE album_id=? ORDER BY id", a.ID)
	if err != nil {
		return a, err
	}
	a.Tracks = tracks
	return a, nil
}

// Create inserts an album.  The caller supplies the resolved artist name so
// listings do not need a join; artist existence is validated by the handler
// before this point.
func (r *AlbumRepo) Create(ctx context.Context, a *model.Album) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO albums (artist_id, artist_name, name, description, type, release_date, spotify_id, award_id, award_number, is_selling, cost)
		 VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
		a.ArtistID, a.ArtistName, a.Name, a.Description, a.Type, a.ReleaseDate,
		a.SpotifyID, a.AwardID, a.AwardNumber, a.IsSelling, a.Cost)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	a.ID = uint64(id)
	return nil
}

// Update rewrites the mutable fields of an album.  Returns ErrAlbumNotFound
// when the id does not resolve.
func (r *AlbumRepo) Update(ctx context.Context, a *model.Album) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE albums SET name=?, description=?, type=?, release_date=?, spotify_id=?, award_id=?, award_number=?, is_selling=?, cost=?
		 WHERE id=?`,
		a.Name, a.Description, a.Type, a.ReleaseDate, a.SpotifyID,
		a.AwardID, a.AwardNumber, a.IsSelling, a.Cost, a.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// Zero rows may also mean a no-op update; confirm existence.
		var one int
		if err := r.db.QueryRowContext(ctx, "SELECT 1 FROM albums WHERE id=?", a.ID).Scan(&one); err == sql.ErrNoRows {
			return ErrAlbumNotFound
		}
	}
	return nil
}

// Delete removes an album.  Order items referencing it cascade-delete at the
// schema level.
func (r *AlbumRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM albums WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrAlbumNotFound
	}
	return nil
}
