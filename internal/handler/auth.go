package handler

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/atelier/discography-api/internal/config"
	"github.com/atelier/discography-api/internal/logger"
	"github.com/atelier/discography-api/internal/middleware"
	"github.com/atelier/discography-api/internal/repository"
	"github.com/atelier/discography-api/internal/token"
	"github.com/atelier/discography-api/internal/utils"
)

// AuthHandler bundles dependencies for the auth endpoints.
type AuthHandler struct {
	Cfg   config.Config
	Users *repository.UserRepo
}

func NewAuthHandler(cfg config.Config, u *repository.UserRepo) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: u}
}

// ----- DTOs -----

type credentialsReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userPart struct {
	ID    uint64 `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Register creates a user account with the default role.  The response body
// carries only a message; the client logs in separately.
func (h *AuthHandler) Register(c echo.Context) error {
	var req credentialsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Unable to create user. Data is incomplete."})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Unable to create user. Data is incomplete."})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Users.Create(ctx, req.Email, req.Password, h.Cfg.BcryptCost); err != nil {
		if err == repository.ErrEmailExists {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "User already exists with this email."})
		}
		logger.Log.Errorw("register failed", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Unable to create user."})
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "User was created."})
}

// Login verifies credentials and issues a signed token embedding the user's
// id, email and role.  Absent accounts and wrong passwords produce distinct
// messages; that mirrors the behavior the web client depends on, at the
// cost of a minor account-enumeration leak.
func (h *AuthHandler) Login(c echo.Context) error {
	var req credentialsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Login failed. Data is incomplete."})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Login failed. Data is incomplete."})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err == sql.ErrNoRows {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Login failed. User not found."})
	}
	if err != nil {
		logger.Log.Errorw("login lookup failed", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Login failed."})
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Login failed. Incorrect password."})
	}

	tok, err := token.Encode(token.Claims{
		"user_id": u.ID,
		"email":   u.Email,
		"role":    u.Role,
	}, h.Cfg.JWTSecret, "HS256", h.Cfg.JWTIssuer, h.Cfg.JWTAudience, time.Duration(h.Cfg.TokenTTLSec)*time.Second)
	if err != nil {
		logger.Log.Errorw("token issue failed", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Login failed."})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Login successful.",
		"token":   tok,
		"user":    userPart{ID: u.ID, Email: u.Email, Role: u.Role},
	})
}

// Me returns the authenticated user's public profile, read fresh from the
// database so a stale token never serves stale fields.
func (h *AuthHandler) Me(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Unauthorized access"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByID(ctx, userID)
	if err == sql.ErrNoRows {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Unauthorized access"})
	}
	if err != nil {
		logger.Log.Errorw("me lookup failed", "user_id", userID, "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to retrieve user"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"id":         u.ID,
		"email":      u.Email,
		"created_at": u.CreatedAt,
	})
}

// PromoteAdmin grants the admin role to an existing account by email.
// Admin surface only; role changes are never self-service.
func (h *AuthHandler) PromoteAdmin(c echo.Context) error {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Email parameter is required"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Email parameter is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Users.PromoteToAdmin(ctx, req.Email); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"message": fmt.Sprintf("User with email %s not found", req.Email)})
		}
		logger.Log.Errorw("promote failed", "email", req.Email, "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to update user role"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": fmt.Sprintf("User %s has been set as admin", req.Email)})
}
