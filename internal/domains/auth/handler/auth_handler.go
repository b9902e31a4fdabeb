package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"nexload-backend/internal/domains/auth/service"
	usermodel "nexload-backend/internal/domains/user/model"
	"nexload-backend/internal/shared/middleware"
	"nexload-backend/internal/shared/response"
)

// sessionCookieMaxAge matches the session token lifetime.
const sessionCookieMaxAge = 7 * 24 * 3600

// =====================================================
// AUTH HANDLER
// =====================================================

type AuthHandler struct {
	authService    service.ServiceInterface
	frontendOrigin string
	secureCookies  bool
}

func NewAuthHandler(authService service.ServiceInterface, frontendOrigin string, secureCookies bool) *AuthHandler {
	return &AuthHandler{
		authService:    authService,
		frontendOrigin: frontendOrigin,
		secureCookies:  secureCookies,
	}
}

// Login starts the Google OAuth flow.
// GET /auth/google
func (h *AuthHandler) Login(c *gin.Context) {
	url, err := h.authService.LoginURL(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to start oauth flow")
		c.Redirect(http.StatusSeeOther, h.frontendOrigin+"/?error=auth_failed")
		return
	}

	c.Redirect(http.StatusTemporaryRedirect, url)
}

// Callback completes the flow: validates state, exchanges the code,
// sets the session cookie and sends the browser back to the frontend.
// GET /auth/google/callback
func (h *AuthHandler) Callback(c *gin.Context) {
	if errParam := c.Query("error"); errParam != "" {
		log.Warn().Str("error", errParam).Msg("Google OAuth denied")
		c.Redirect(http.StatusSeeOther, h.frontendOrigin+"/?error=auth_denied")
		return
	}

	token, user, err := h.authService.HandleCallback(c.Request.Context(), c.Query("state"), c.Query("code"))
	if err != nil {
		log.Error().Err(err).Msg("OAuth callback failed")
		c.Redirect(http.StatusSeeOther, h.frontendOrigin+"/?error=auth_failed")
		return
	}

	log.Info().Str("user_id", user.ID.String()).Str("email", user.Email).Msg("User logged in")

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookieName, token, sessionCookieMaxAge, "/", "", h.secureCookies, true)
	c.Redirect(http.StatusSeeOther, h.frontendOrigin)
}

// Logout clears the session cookie.
// GET /auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie(middleware.SessionCookieName, "", -1, "/", "", h.secureCookies, true)
	c.Redirect(http.StatusSeeOther, h.frontendOrigin)
}

// CurrentUser returns the session user, or null when no session is
// active (200 either way; the frontend treats null as logged out).
// GET /auth/current_user
func (h *AuthHandler) CurrentUser(c *gin.Context) {
	userIDStr := c.GetString(middleware.CtxUserID)
	if userIDStr == "" {
		response.Success(c, http.StatusOK, nil)
		return
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		response.Success(c, http.StatusOK, nil)
		return
	}

	user, err := h.authService.CurrentUser(c.Request.Context(), userID)
	if err != nil {
		if err == usermodel.ErrUserNotFound {
			response.Success(c, http.StatusOK, nil)
			return
		}
		response.InternalServerError(c, err.Error())
		return
	}

	response.Success(c, http.StatusOK, user)
}
