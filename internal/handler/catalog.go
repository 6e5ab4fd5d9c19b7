package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/atelier/discography-api/internal/logger"
	"github.com/atelier/discography-api/internal/repository"
)

// CatalogHandler serves the public discography surface: artists, albums,
// tracks and awards.  Reads are open to everyone; mutations live in the
// admin handlers in album.go and track.go.
type CatalogHandler struct {
	Artists *repository.ArtistRepo
	Albums  *repository.AlbumRepo
	Tracks  *repository.TrackRepo
	Awards  *repository.AwardRepo
}

func NewCatalogHandler(ar *repository.ArtistRepo, al *repository.AlbumRepo, tr *repository.TrackRepo, aw *repository.AwardRepo) *CatalogHandler {
	return &CatalogHandler{Artists: ar, Albums: al, Tracks: tr, Awards: aw}
}

// ListArtists handles GET /v1/artists.
func (h *CatalogHandler) ListArtists(c echo.Context) error {
	artists, err := h.Artists.List(c.Request().Context())
	if err != nil {
		logger.Log.Errorw("list artists failed", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to retrieve artists"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": artists})
}

// GetArtist handles GET /v1/artists/:id.
func (h *CatalogHandler) GetArtist(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Missing artist ID"})
	}
	artist, err := h.Artists.GetByID(c.Request().Context(), id)
	if err == repository.ErrArtistNotFound {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Artist not found"})
	}
	if err != nil {
		logger.Log.Errorw("get artist failed", "artist_id", id, "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to retrieve artist"})
	}
	return c.JSON(http.StatusOK, artist)
}

// ListAlbums handles GET /v1/albums with an optional ?artist= name filter.
func (h *CatalogHandler) ListAlbums(c echo.Context) error {
	albums, err := h.Albums.List(c.Request().Context(), c.QueryParam("artist"))
	if err != nil {
		logger.Log.Errorw("list albums failed", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to retrieve albums"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": albums})
}

// GetAlbum handles GET /v1/albums/:id and nests the album's tracks.
func (h *CatalogHandler) GetAlbum(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Missing album ID"})
	}
	album, err := h.Albums.GetByID(c.Request().Context(), id)
	if err == repository.ErrAlbumNotFound {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Album not found"})
	}
	if err != nil {
		logger.Log.Errorw("get album failed", "album_id", id, "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to retrieve album"})
	}
	return c.JSON(http.StatusOK, album)
}

// ListTracks handles GET /v1/tracks.
func (h *CatalogHandler) ListTracks(c echo.Context) error {
	tracks, err := h.Tracks.List(c.Request().Context())
	if err != nil {
		logger.Log.Errorw("list tracks failed", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to retrieve tracks"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": tracks})
}

// ListAwards handles GET /v1/awards.
func (h *CatalogHandler) ListAwards(c echo.Context) error {
	awards, err := h.Awards.List(c.Request().Context())
	if err != nil {
		logger.Log.Errorw("list awards failed", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to retrieve awards"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": awards})
}
