package handler_test

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	_ "github.com/mattn/go-sqlite3"

	"github.com/atelier/discography-api/internal/audit"
	"github.com/atelier/discography-api/internal/config"
	"github.com/atelier/discography-api/internal/handler"
	"github.com/atelier/discography-api/internal/logger"
	"github.com/atelier/discography-api/internal/repository"
	"github.com/atelier/discography-api/internal/router"
	"github.com/atelier/discography-api/internal/token"
)

func TestMain(m *testing.M) {
	logger.InitLoggerDev()
	os.Exit(m.Run())
}

const handlerTestSchema = `
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

// testApp wires the real route table over an in-memory database, with the
// cache, rate limiter and event publisher disabled.
type testApp struct {
	e       *echo.Echo
	db      *sql.DB
	cfg     config.Config
	users   *repository.UserRepo
	logPath string
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(handlerTestSchema); err != nil {
		t.Fatalf("create schema: %v", err)
	}

	dir := t.TempDir()
	cfg := config.Config{
		Env:          "test",
		Port:         "0",
		JWTSecret:    "handler-test-secret",
		JWTIssuer:    "test-iss",
		JWTAudience:  "test-aud",
		TokenTTLSec:  3600,
		BcryptCost:   4,
		AuditLogPath: filepath.Join(dir, "order_log.txt"),
	}

	users := repository.NewUserRepo(db)
	artists := repository.NewArtistRepo(db)
	albums := repository.NewAlbumRepo(db)
	tracks := repository.NewTrackRepo(db)
	awards := repository.NewAwardRepo(db)
	orders := repository.NewOrderRepo(db)
	trail := audit.New(cfg.AuditLogPath)

	e := echo.New()
	router.Register(e, router.Deps{
		Cfg:       cfg,
		Rdb:       nil,
		Trail:     trail,
		Users:     users,
		Auth:      handler.NewAuthHandler(cfg, users),
		Catalog:   handler.NewCatalogHandler(artists, albums, tracks, awards),
		Orders:    handler.NewOrderHandler(orders, trail, nil),
		RateLimit: config.RateLimitConfig{},
		Cache:     config.CacheConfig{},
	})

	return &testApp{e: e, db: db, cfg: cfg, users: users, logPath: cfg.AuditLogPath}
}

// request performs an in-process HTTP request and returns the recorder.
func (a *testApp) request(t *testing.T, method, path, bearer string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		rd = bytes.NewReader(b)
	} else {
		rd = bytes.NewReader(nil)
	}
	r := httptest.NewRequest(method, path, rd)
	r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if bearer != "" {
		r.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	a.e.ServeHTTP(w, r)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &m); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return m
}

// seedAccount inserts a user directly and returns its id plus a valid token.
func (a *testApp) seedAccount(t *testing.T, email, password, role string) (uint64, string) {
	t.Helper()
	id, err := a.users.Create(t.Context(), email, password, a.cfg.BcryptCost)
	if err != nil {
		t.Fatalf("seed account: %v", err)
	}
	if role == "admin" {
		if err := a.users.PromoteToAdmin(t.Context(), email); err != nil {
			t.Fatalf("promote: %v", err)
		}
	}
	tok, err := token.Encode(token.Claims{"user_id": id, "email": email, "role": role},
		a.cfg.JWTSecret, "HS256", a.cfg.JWTIssuer, a.cfg.JWTAudience, time.Duration(a.cfg.TokenTTLSec)*time.Second)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return id, tok
}

func (a *testApp) seedCatalog(t *testing.T) (albumID uint64) {
	t.Helper()
	res, err := a.db.Exec("INSERT INTO artists (name) VALUES (?)", "Nadia Reyes")
	if err != nil {
		t.Fatalf("seed artist: %v", err)
	}
	artistID, _ := res.LastInsertId()
	res, err = a.db.Exec(
		"INSERT INTO albums (artist_id, artist_name, name, is_selling, cost) VALUES (?,?,?,?,?)",
		artistID, "Nadia Reyes", "First Light", true, 10.00)
	if err != nil {
		t.Fatalf("seed album: %v", err)
	}
	id, _ := res.LastInsertId()
	return uint64(id)
}
