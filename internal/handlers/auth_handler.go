package handlers

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/collabroomhq/collabroom-backend/internal/httpx"
	"github.com/collabroomhq/collabroom-backend/internal/middleware"
	"github.com/collabroomhq/collabroom-backend/internal/service"
	"github.com/collabroomhq/collabroom-backend/internal/validation"
	"github.com/gofiber/fiber/v2"
)

const refreshTokenCookie = "cr_refresh"

type AuthHandler struct {
	authService *service.AuthService
	accessTTL   time.Duration
}

func NewAuthHandler(authService *service.AuthService, accessTTL time.Duration) *AuthHandler {
	return &AuthHandler{authService: authService, accessTTL: accessTTL}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input service.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return httpx.BadRequest(c, "invalid_request_body", "Invalid request body")
	}

	input.Email = validation.NormalizeEmail(input.Email)
	if !validation.ValidateEmail(input.Email) {
		return httpx.BadRequest(c, "invalid_email", "A valid email is required")
	}
	if !validation.ValidateUsername(input.Username) {
		return httpx.BadRequest(c, "invalid_username", "Username must be 3-32 characters (letters, digits, underscore)")
	}
	if !validation.ValidatePassword(input.Password) {
		return httpx.BadRequest(c, "weak_password", "Password is too short")
	}

	result, err := h.authService.Register(input)
	if err != nil {
		return httpx.BadRequest(c, "registration_failed", err.Error())
	}

	h.setAuthCookies(c, result)
	return c.Status(fiber.StatusCreated).JSON(result)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input service.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return httpx.BadRequest(c, "invalid_request_body", "Invalid request body")
	}

	input.Email = validation.NormalizeEmail(input.Email)
	if input.Email == "" || input.Password == "" {
		return httpx.BadRequest(c, "missing_credentials", "Email and password are required")
	}

	result, err := h.authService.Login(input)
	if err != nil {
		return httpx.Unauthorized(c, "invalid_credentials", "Invalid credentials")
	}

	h.setAuthCookies(c, result)
	return c.JSON(result)
}

// Refresh rotates the refresh token from its HttpOnly cookie and reissues
// the access cookie the REST and WebSocket layers share.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	raw := c.Cookies(refreshTokenCookie)
	if raw == "" {
		return httpx.Unauthorized(c, "missing_refresh_token", "Missing refresh token")
	}

	result, err := h.authService.Refresh(raw)
	if err != nil {
		h.clearAuthCookies(c)
		return httpx.Unauthorized(c, "invalid_refresh_token", "Invalid or expired refresh token")
	}

	h.setAuthCookies(c, result)
	return c.JSON(result)
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.authService.Logout(c.Cookies(refreshTokenCookie)); err != nil {
		return httpx.Internal(c, "logout_failed")
	}
	h.clearAuthCookies(c)
	return c.JSON(fiber.Map{"success": true})
}

// CSRF issues the double-submit token pair for browser clients.
func (h *AuthHandler) CSRF(c *fiber.Ctx) error {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return httpx.Internal(c, "csrf_generation_failed")
	}
	csrfToken := hex.EncodeToString(buf)

	c.Cookie(&fiber.Cookie{
		Name:     "cr_csrf",
		Value:    csrfToken,
		SameSite: "Lax",
		Secure:   true,
	})
	return c.JSON(fiber.Map{"csrf_token": csrfToken})
}

func (h *AuthHandler) setAuthCookies(c *fiber.Ctx, result *service.AuthResponse) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.AccessTokenCookie,
		Value:    result.AccessToken,
		HTTPOnly: true,
		SameSite: "Lax",
		Secure:   true,
		Expires:  time.Now().Add(h.accessTTL),
	})
	c.Cookie(&fiber.Cookie{
		Name:     refreshTokenCookie,
		Value:    result.RefreshToken,
		HTTPOnly: true,
		SameSite: "Lax",
		Secure:   true,
		Path:     "/api/auth",
		Expires:  time.Now().Add(30 * 24 * time.Hour),
	})
}

func (h *AuthHandler) clearAuthCookies(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.AccessTokenCookie,
		Value:    "",
		HTTPOnly: true,
		Expires:  time.Now().Add(-time.Hour),
	})
	c.Cookie(&fiber.Cookie{
		Name:     refreshTokenCookie,
		Value:    "",
		HTTPOnly: true,
		Path:     "/api/auth",
		Expires:  time.Now().Add(-time.Hour),
	})
}
