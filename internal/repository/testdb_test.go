package repository

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

// testSchema mirrors the MySQL schema closely enough for the repository
// queries; identifiers and placeholders are shared between both engines.
const testSchema = `
CREATE TABLE users (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	email TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	role TEXT NOT NULL DEFAULT 'user',
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE awards (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL UNIQUE,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE artists (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	description TEXT,
	bio_image TEXT,
	icon_image TEXT,
	spotify_id TEXT,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE albums (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	artist_id INTEGER NOT NULL REFERENCES artists(id),
	artist_name TEXT NOT NULL,
	name TEXT NOT NULL,
	description TEXT,
	type TEXT,
	release_date TEXT,
	spotify_id TEXT,
	award_id INTEGER,
	award_number INTEGER,
	is_selling INTEGER NOT NULL DEFAULT 0,
	cost REAL NOT NULL DEFAULT 0,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE tracks (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	artist_id INTEGER NOT NULL REFERENCES artists(id),
	artist_name TEXT NOT NULL,
	album_id INTEGER,
	album_name TEXT NOT NULL DEFAULT '',
	name TEXT NOT NULL,
	description TEXT,
	release_date TEXT,
	feat TEXT,
	spotify_id TEXT,
	award_id INTEGER,
	award_number INTEGER,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE orders (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL REFERENCES users(id),
	total_amount REAL NOT NULL,
	status TEXT NOT NULL DEFAULT 'pending',
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE order_items (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	order_id INTEGER NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
	album_id INTEGER NOT NULL REFERENCES albums(id) ON DELETE CASCADE,
	quantity INTEGER NOT NULL,
	unit_price REAL NOT NULL
);
`

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	// :memory: databases are per-connection.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(testSchema); err != nil {
		t.Fatalf("create schema: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *sql.DB, email, role string) uint64 {
	t.Helper()
	res, err := db.Exec("INSERT INTO users (email, password_hash, role) VALUES (?,?,?)", email, "x", role)
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	id, _ := res.LastInsertId()
	return uint64(id)
}

func seedArtist(t *testing.T, db *sql.DB, name string) uint64 {
	t.Helper()
	res, err := db.Exec("INSERT INTO artists (name) VALUES (?)", name)
	if err != nil {
		t.Fatalf("seed artist: %v", err)
	}
	id, _ := res.LastInsertId()
	return uint64(id)
}

func seedAlbum(t *testing.T, db *sql.DB, artistID uint64, artistName, name string, selling bool, cost float64) uint64 {
	t.Helper()
	res, err := db.Exec(
		"INSERT INTO albums (artist_id, artist_name, name, is_selling, cost) VALUES (?,?,?,?,?)",
		artistID, artistName, name, selling, cost)
	if err != nil {
		t.Fatalf("seed album: %v", err)
	}
	id, _ := res.LastInsertId()
	return uint64(id)
}

func countRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()
	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}

var testCtx = context.Background()
