package repository

import (
	"testing"

	"github.com/atelier/discography-api/internal/model"
)

func TestAlbumCRUD(t *testing.T) {
	db := newTestDB(t)
	artistID := seedArtist(t, db, "Nadia Reyes")
	albums := NewAlbumRepo(db)

	desc := "debut LP"
	album := &model.Album{
		ArtistID:    artistID,
		ArtistName:  "Nadia Reyes",
		Name:        "First Light",
		Description: &desc,
		IsSelling:   true,
		Cost:        14.99,
	}
	if err := albums.Create(testCtx, album); err != nil {
		t.Fatalf("create album: %v", err)
	}
	if album.ID == 0 {
		t.Fatal("expected album id to be assigned")
	}

	got, err := albums.GetByID(testCtx, album.ID)
	if err != nil {
		t.Fatalf("get album: %v", err)
	}
	if got.Name != "First Light" || got.ArtistName != "Nadia Reyes" {
		t.Fatalf("album = %+v", got)
	}
	if !got.Purchasable() {
		t.Fatal("expected album to be purchasable")
	}

	got.Name = "First Light (Deluxe)"
	got.IsSelling = false
	if err := albums.Update(testCtx, &got); err != nil {
		t.Fatalf("update album: %v", err)
	}
	reread, err := albums.GetByID(testCtx, album.ID)
	if err != nil {
		t.Fatalf("reread album: %v", err)
	}
	if reread.Name != "First Light (Deluxe)" || reread.Purchasable() {
		t.Fatalf("after update: %+v", reread)
	}

	if err := albums.Delete(testCtx, album.ID); err != nil {
		t.Fatalf("delete album: %v", err)
	}
	if _, err := albums.GetByID(testCtx, album.ID); err != ErrAlbumNotFound {
		t.Fatalf("deleted album err = %v, want ErrAlbumNotFound", err)
	}
	if err := albums.Delete(testCtx, album.ID); err != ErrAlbumNotFound {
		t.Fatalf("double delete err = %v, want ErrAlbumNotFound", err)
	}
}

func TestAlbumListFiltersByArtist(t *testing.T) {
	db := newTestDB(t)
	a1 := seedArtist(t, db, "Nadia Reyes")
	a2 := seedArtist(t, db, "The Hollow Suns")
	seedAlbum(t, db, a1, "Nadia Reyes", "First Light", true, 10)
	seedAlbum(t, db, a1, "Nadia Reyes", "Second Wind", true, 10)
	seedAlbum(t, db, a2, "The Hollow Suns", "Ember", true, 10)

	albums := NewAlbumRepo(db)
	all, err := albums.List(testCtx, "")
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("all = %d, want 3", len(all))
	}
	filtered, err := albums.List(testCtx, "Nadia Reyes")
	if err != nil {
		t.Fatalf("list filtered: %v", err)
	}
	if len(filtered) != 2 {
		t.Fatalf("filtered = %d, want 2", len(filtered))
	}
	for _, a := range filtered {
		if a.ArtistName != "Nadia Reyes" {
			t.Fatalf("unexpected artist %q", a.ArtistName)
		}
	}
}

func TestTrackFeatRoundTrip(t *testing.T) {
	db := newTestDB(t)
	artistID := seedArtist(t, db, "Nadia Reyes")
	albumID := seedAlbum(t, db, artistID, "Nadia Reyes", "First Light", true, 10)
	tracks := NewTrackRepo(db)

	track := &model.Track{
		ArtistID:   artistID,
		ArtistName: "Nadia Reyes",
		AlbumID:    &albumID,
		AlbumName:  "First Light",
		Name:       "Undertow",
		Feat:       []string{"Marcus Vale", "Iris Chen"},
	}
	if err := tracks.Create(testCtx, track); err != nil {
		t.Fatalf("create track: %v", err)
	}

	albums := NewAlbumRepo(db)
	album, err := albums.GetByID(testCtx, albumID)
	if err != nil {
		t.Fatalf("get album: %v", err)
	}
	if len(album.Tracks) != 1 {
		t.Fatalf("tracks = %d, want 1", len(album.Tracks))
	}
	got := album.Tracks[0]
	if len(got.Feat) != 2 || got.Feat[0] != "Marcus Vale" || got.Feat[1] != "Iris Chen" {
		t.Fatalf("feat = %v", got.Feat)
	}

	// No features stores NULL and reads back as an empty array, not nil JSON.
	solo := &model.Track{ArtistID: artistID, ArtistName: "Nadia Reyes", Name: "Alone"}
	if err := tracks.Create(testCtx, solo); err != nil {
		t.Fatalf("create solo track: %v", err)
	}
	all, err := tracks.List(testCtx)
	if err != nil {
		t.Fatalf("list tracks: %v", err)
	}
	for _, tr := range all {
		if tr.Feat == nil {
			t.Fatalf("track %q feat is nil", tr.Name)
		}
	}
}
