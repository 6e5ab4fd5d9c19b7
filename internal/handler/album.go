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

type albumReq struct {
	ArtistID    uint64  `json:"artist_id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Type        *string `json:"type"`
	ReleaseDate *string `json:"release_date"`
	SpotifyID   *string `json:"spotify_id"`
	AwardID     *uint64 `json:"award_id"`
	AwardNumber *int    `json:"award_number"`
	IsSelling   bool    `json:"is_selling"`
	Cost        float64 `json:"cost"`
}

// CreateAlbum handles POST /v1/admin/albums.  The referenced artist must
// exist; its name is denormalized onto the album row.
func (h *CatalogHandler) CreateAlbum(c echo.Context) error {
	var req albumReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Unable to create album. Data is incomplete."})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" || req.ArtistID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Unable to create album. Data is incomplete."})
	}

	ctx := c.Request().Context()
	artist, err := h.Artists.GetByID(ctx, req.ArtistID)
	if err == repository.ErrArtistNotFound {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Artist not found"})
	}
	if err != nil {
		logger.Log.Errorw("album create artist lookup failed", "artist_id", req.ArtistID, "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Unable to create album"})
	}

	album := &model.Album{
		ArtistID:    artist.ID,
		ArtistName:  artist.Name,
		Name:        req.Name,
		Description: req.Description,
		Type:        req.Type,
		ReleaseDate: req.ReleaseDate,
		SpotifyID:   req.SpotifyID,
		AwardID:     req.AwardID,
		AwardNumber: req.AwardNumber,
		IsSelling:   req.IsSelling,
		Cost:        req.Cost,
	}
	if err := h.Albums.Create(ctx, album); err != nil {
		logger.Log.Errorw("album create failed", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Unable to create album"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "Album created successfully", "album": album})
}

// UpdateAlbum handles PUT /v1/admin/albums/:id.
func (h *CatalogHandler) UpdateAlbum(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Missing album ID"})
	}
	var req albumReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Unable to update album. Data is incomplete."})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Unable to update album. Data is incomplete."})
	}

	ctx := c.Request().Context()
	album := &model.Album{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Type:        req.Type,
		ReleaseDate: req.ReleaseDate,
		SpotifyID:   req.SpotifyID,
		AwardID:     req.AwardID,
		AwardNumber: req.AwardNumber,
		IsSelling:   req.IsSelling,
		Cost:        req.Cost,
	}
	if err := h.Albums.Update(ctx, album); err != nil {
		if err == repository.ErrAlbumNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Album not found"})
		}
		logger.Log.Errorw("album update failed", "album_id", id, "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Unable to update album"})
	}
	updated, err := h.Albums.GetByID(ctx, id)
	if err != nil {
		logger.Log.Errorw("album reload failed", "album_id", id, "err", err)
		return c.JSON(http.StatusOK, echo.Map{"message": "Album updated successfully"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Album updated successfully", "album": updated})
}

// DeleteAlbum handles DELETE /v1/admin/albums/:id.
func (h *CatalogHandler) DeleteAlbum(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Missing album ID"})
	}
	if err := h.Albums.Delete(c.Request().Context(), id); err != nil {
		if err == repository.ErrAlbumNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Album not found"})
		}
		logger.Log.Errorw("album delete failed", "album_id", id, "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Unable to delete album"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Album deleted successfully"})
}
