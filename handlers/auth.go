package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"expense-tracker-go-be/auth"
	"expense-tracker-go-be/services"
)

// AuthHandler serves signup, login and logout.
type AuthHandler struct {
	svc          *services.AuthService
	cookieSecure bool
}

func NewAuthHandler(svc *services.AuthService, cookieSecure bool) *AuthHandler {
	return &AuthHandler{svc: svc, cookieSecure: cookieSecure}
}

// Signup registers a user and sets the session cookie.
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req credentialsRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	session, err := h.svc.Register(c.UserContext(), req.credentials())
	if err != nil {
		return err
	}

	h.setSessionCookie(c, session)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "User created successfully",
	})
}

// Login authenticates a user and sets a fresh session cookie.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req credentialsRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	session, err := h.svc.Login(c.UserContext(), req.credentials())
	if err != nil {
		return err
	}

	h.setSessionCookie(c, session)
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Welcome back! You have successfully logged in.",
	})
}

// Logout expires the session cookie. The token itself stays valid until it
// expires; there is no server-side session to revoke.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	// browsers only drop the cookie when path and name match the one set
	c.Cookie(&fiber.Cookie{
		Name:     auth.CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HTTPOnly: true,
		Secure:   h.cookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.JSON(fiber.Map{
		"success": true,
		"message": "You have successfully logged out.",
	})
}

func (h *AuthHandler) setSessionCookie(c *fiber.Ctx, session *services.Session) {
	c.Cookie(&fiber.Cookie{
		Name:     auth.CookieName,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HTTPOnly: true,
		Secure:   h.cookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
