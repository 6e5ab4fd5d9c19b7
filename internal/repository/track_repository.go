package repository

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/atelier/discography-api/internal/model"
)

// TrackRepo provides CRUD operations for the tracks table.
type TrackRepo struct{ db *sql.DB }

func NewTrackRepo(db *sql.DB) *TrackRepo { return &TrackRepo{db: db} }

const trackColumns = "id, artist_id, artist_name, album_id, album_name, name, description, release_date, feat, spotify_id, award_id, award_number, created_at"

// listTracks runs a track query with the given WHERE/ORDER clause.  The feat
// column holds a JSON array string; it decodes to an empty slice when null
// or malformed so clients always see an array.
func listTracks(ctx context.Context, db *sql.DB, clause string, args ...any) ([]model.Track, error) {
	rows, err := db.QueryContext(ctx, "SELECT "+trackColumns+" FROM tracks "+clause, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tracks := make([]model.Track, 0)
	for rows.Next() {
		var t model.Track
		var feat sql.NullString
		if err := rows.Scan(&t.ID, &t.ArtistID, &t.ArtistName, &t.AlbumID, &t.AlbumName,
			&t.Name, &t.Description, &t.ReleaseDate, &feat, &t.SpotifyID,
			&t.AwardID, &t.AwardNumber, &t.CreatedAt); err != nil {
			return nil, err
		}
		t.Feat = decodeFeat(feat)
		tracks = append(tracks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tracks, nil
}

func decodeFeat(feat sql.NullString) []string {
	out := []string{}
	if feat.Valid && feat.String != "" {
		_ = json.Unmarshal([]byte(feat.String), &out)
	}
	return out
}

func encodeFeat(feat []string) *string {
	if len(feat) == 0 {
		return nil
	}
	b, err := json.Marshal(feat)
	if err != nil {
		return nil
	}
	s := string(b)
	return &s
}

// List returns all tracks, newest first.
func (r *TrackRepo) List(ctx context.Context) ([]model.Track, error) {
	return listTracks(ctx, r.db, "ORDER BY release_date DESC, id DESC")
}

// Create inserts a track.  Artist and album names are resolved by the
// handler before this point.
func (r *TrackRepo) Create(ctx context.Context, t *model.Track) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO tracks (artist_id, artist_name, album_id, album_name, name, description, release_date, feat, spotify_id, award_id, award_number)
		 VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
		t.ArtistID, t.ArtistName, t.AlbumID, t.AlbumName, t.Name, t.Description,
		t.ReleaseDate, encodeFeat(t.Feat), t.SpotifyID, t.AwardID, t.AwardNumber)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = uint64(id)
	return nil
}

// Update rewrites the mutable fields of a track.
func (r *TrackRepo) Update(ctx context.Context, t *model.Track) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE tracks SET name=?, description=?, release_date=?, feat=?, spotify_id=?, award_id=?, award_number=?
		 WHERE id=?`,
		t.Name, t.Description, t.ReleaseDate, encodeFeat(t.Feat),
		t.SpotifyID, t.AwardID, t.AwardNumber, t.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var one int
		if err := r.db.QueryRowContext(ctx, "SELECT 1 FROM tracks WHERE id=?", t.ID).Scan(&one); err == sql.ErrNoRows {
			return ErrTrackNotFound
		}
	}
	return nil
}

// Delete removes a track.
func (r *TrackRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM tracks WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrTrackNotFound
	}
	return nil
}
