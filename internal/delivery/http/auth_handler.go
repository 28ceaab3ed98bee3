package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"moneytrail/internal/auth"
	"moneytrail/internal/delivery/http/dto"
	"moneytrail/internal/domain"
	"moneytrail/internal/logger"
	"moneytrail/internal/middleware"
)

const stateCookie = "oauth_state"

// AuthHandler handles social login and session requests
type AuthHandler struct {
	userRepo     domain.UserRepository
	providers    *auth.Providers
	sessions     *middleware.Sessions
	appRedirect  string
	secureCookie bool
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(
	userRepo domain.UserRepository,
	providers *auth.Providers,
	sessions *middleware.Sessions,
	appRedirect string,
	secureCookie bool,
) *AuthHandler {
	return &AuthHandler{
		userRepo:     userRepo,
		providers:    providers,
		sessions:     sessions,
		appRedirect:  appRedirect,
		secureCookie: secureCookie,
	}
}

// Providers lists the configured social logins
// GET /api/auth/providers
func (h *AuthHandler) Providers(c echo.Context) error {
	return SuccessResponse(c, dto.ProvidersOutput{Providers: h.providers.Names()})
}

// Login redirects to the provider consent page
// GET /api/auth/:provider/login
func (h *AuthHandler) Login(c echo.Context) error {
	provider, ok := h.providers.Get(c.Param("provider"))
	if !ok {
		return NotFoundResponse(c, "Unknown login provider")
	}

	state, err := auth.NewState()
	if err != nil {
		return InternalServerErrorResponse(c, "Failed to start login", err)
	}

	c.SetCookie(h.cookie(stateCookie, state, 10*time.Minute))
	return c.Redirect(http.StatusTemporaryRedirect, provider.AuthCodeURL(state))
}

// Callback finishes the login, stores the user and issues a session cookie
// GET /api/auth/:provider/callback
func (h *AuthHandler) Callback(c echo.Context) error {
	provider, ok := h.providers.Get(c.Param("provider"))
	if !ok {
		return NotFoundResponse(c, "Unknown login provider")
	}

	state, err := c.Cookie(stateCookie)
	if err != nil || state.Value == "" || state.Value != c.QueryParam("state") {
		return BadRequestResponse(c, "Invalid login state")
	}
	c.SetCookie(h.cookie(stateCookie, "", -1))

	code := c.QueryParam("code")
	if code == "" {
		return BadRequestResponse(c, "Missing authorization code")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	identity, err := provider.Exchange(ctx, code)
	if err != nil {
		if errors.Is(err, auth.ErrNoEmail) {
			return UnauthorizedResponse(c, "Your account has no verified email")
		}
		return InternalServerErrorResponse(c, "Failed to complete login", err)
	}

	user, err := h.userRepo.UpsertByEmail(ctx, identity)
	if err != nil {
		return InternalServerErrorResponse(c, "Failed to save user", err)
	}

	token, err := h.sessions.GenerateJWT(user.ID, user.Email)
	if err != nil {
		return InternalServerErrorResponse(c, "Failed to generate token", err)
	}

	log := logger.FromContext(c.Request().Context())
	log.Info().
		Str("user_id", user.ID.String()).
		Str("provider", identity.Provider).
		Msg("user logged in")

	c.SetCookie(h.cookie(middleware.TokenCookie, token, h.sessions.TTL()))
	return c.Redirect(http.StatusTemporaryRedirect, h.appRedirect)
}

// Logout clears the session cookie
// POST /api/auth/logout
func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(h.cookie(middleware.TokenCookie, "", -1))
	return SuccessResponse(c, map[string]string{
		"message": "Logged out successfully",
	})
}

// Session returns the logged in user
// GET /api/auth/session
func (h *AuthHandler) Session(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return UnauthorizedResponse(c, "Not logged in")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	user, err := h.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return UnauthorizedResponse(c, "Not logged in")
		}
		return InternalServerErrorResponse(c, "Failed to get user", err)
	}

	return SuccessResponse(c, dto.UserOutput{
		ID:       user.ID.String(),
		Email:    user.Email,
		Name:     user.Name,
		Image:    user.Image,
		Provider: user.Provider,
	})
}

// cookie builds an HTTP-only cookie; a negative maxAge deletes it
func (h *AuthHandler) cookie(name, value string, maxAge time.Duration) *http.Cookie {
	age := int(maxAge.Seconds())
	if maxAge < 0 {
		age = -1
	}
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   age,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	}
}
