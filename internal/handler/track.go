package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/atelier/discography-api/internal/logger"
	"github.com/atelier/discography-api/internal/model"
	"github.com/atelier/discography-api/internal/repository"
)

type trackReq struct {
	ArtistID    uint64   `json:"artist_id"`
	AlbumID     *uint64  `json:"album_id"`
	Name        string   `json:"name"`
	Description *string  `json:"description"`
	ReleaseDate *string  `json:"release_date"`
	Feat        []string `json:"feat"`
	SpotifyID   *string  `json:"spotify_id"`
	AwardID     *uint64  `json:"award_id"`
	AwardNumber *int     `json:"award_number"`
}

// CreateTrack handles POST /v1/admin/tracks.  The artist must exist; the
// album is optional (singles carry no album) but must exist when given.
func (h *CatalogHandler) CreateTrack(c echo.Context) error {
	var req trackReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Unable to create track. Data is incomplete."})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" || req.ArtistID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Unable to create track. Data is incomplete."})
	}

	ctx := c.Request().Context()
	artist, err := h.Artists.GetByID(ctx, req.ArtistID)
	if err == repository.ErrArtistNotFound {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Artist not found"})
	}
	if err != nil {
		logger.Log.Errorw("track create artist lookup failed", "artist_id", req.ArtistID, "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Unable to create track"})
	}

	track := &model.Track{
		ArtistID:    artist.ID,
		ArtistName:  artist.Name,
		AlbumID:     req.AlbumID,
		Name:        req.Name,
		Description: req.Description,
		ReleaseDate: req.ReleaseDate,
		Feat:        req.Feat,
		SpotifyID:   req.SpotifyID,
		AwardID:     req.AwardID,
		AwardNumber: req.AwardNumber,
	}
	if req.AlbumID != nil {
		album, err := h.Albums.GetByID(ctx, *req.AlbumID)
		if err == repository.ErrAlbumNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Album not found"})
		}
		if err != nil {
			logger.Log.Errorw("track create album lookup failed", "album_id", *req.AlbumID, "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Unable to create track"})
		}
		track.AlbumName = album.Name
	}

	if err := h.Tracks.Create(ctx, track); err != nil {
		logger.Log.Errorw("track create failed", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Unable to create track"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "Track created successfully", "track": track})
}

// UpdateTrack handles PUT /v1/admin/tracks/:id.
func (h *CatalogHandler) UpdateTrack(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Missing track ID"})
	}
	var req trackReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Unable to update track. Data is incomplete."})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Unable to update track. Data is incomplete."})
	}

	track := &model.Track{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		ReleaseDate: req.ReleaseDate,
		Feat:        req.Feat,
		SpotifyID:   req.SpotifyID,
		AwardID:     req.AwardID,
		AwardNumber: req.AwardNumber,
	}
	if err := h.Tracks.Update(c.Request().Context(), track); err != nil {
		if err == repository.ErrTrackNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Track not found"})
		}
		logger.Log.Errorw("track update failed", "track_id", id, "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Unable to update track"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Track updated successfully"})
}

// DeleteTrack handles DELETE /v1/admin/tracks/:id.
func (h *CatalogHandler) DeleteTrack(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Missing track ID"})
	}
	if err := h.Tracks.Delete(c.Request().Context(), id); err != nil {
		if err == repository.ErrTrackNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Track not found"})
		}
		logger.Log.Errorw("track delete failed", "track_id", id, "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Unable to delete track"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Track deleted successfully"})
}
