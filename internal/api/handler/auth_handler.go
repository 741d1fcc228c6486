package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/newsgpt/newsgpt-api/internal/api/cookies"
	"github.com/newsgpt/newsgpt-api/internal/core/domain"
	"github.com/newsgpt/newsgpt-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
	cookies     cookies.Policy
}

func NewAuthHandler(authService ports.AuthService, policy cookies.Policy) *AuthHandler {
	return &AuthHandler{authService: authService, cookies: policy}
}

// Signup creates a new account and starts a session.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "User registration details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /auth/signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	user, pair, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	h.setSession(c, pair)
	return c.JSON(http.StatusCreated, authResponse{
		Message: "User registered successfully",
		User:    toUserResponse(user),
	})
}

// Login authenticates a user and sets the session cookies.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	user, pair, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	h.setSession(c, pair)
	return c.JSON(http.StatusOK, authResponse{
		Message: "Logged in successfully!",
		User:    toUserResponse(user),
	})
}

// Refresh mints a new access token from the refresh cookie.
//
// @Summary      Refresh the access token
// @Tags         auth
// @Produce      json
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /auth/refresh [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	refresh := cookies.Read(c, cookies.RefreshCookie)
	if refresh == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "No refresh token provided.")
	}

	token, expiresAt, err := h.authService.Refresh(c.Request().Context(), refresh)
	if err != nil {
		return err
	}

	h.cookies.SetAccess(c, token, expiresAt)
	return c.JSON(http.StatusOK, messageResponse{Message: "Access token refreshed successfully."})
}

// Logout clears the session cookies and revokes the presented tokens.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  messageResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	h.authService.Logout(
		c.Request().Context(),
		cookies.Read(c, cookies.AccessCookie),
		cookies.Read(c, cookies.RefreshCookie),
	)
	h.cookies.Clear(c)
	return c.JSON(http.StatusOK, messageResponse{Message: "Logged out successfully."})
}

// Me returns the identity behind the access cookie.
//
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Success      200  {object}  authResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	id, err := callerID(c)
	if err != nil {
		return err
	}

	user, err := h.authService.Me(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, authResponse{User: toUserResponse(user)})
}

// UpdateMe edits the caller's username and/or email.
//
// @Summary      Update profile
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      profileRequest  true  "Fields to change"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /auth/me [put]
func (h *AuthHandler) UpdateMe(c echo.Context) error {
	id, err := callerID(c)
	if err != nil {
		return err
	}

	var req profileRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	user, err := h.authService.UpdateProfile(c.Request().Context(), id, domain.ProfilePatch{
		Username: req.Username,
		Email:    req.Email,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, authResponse{
		Message: "Profile updated successfully",
		User:    toUserResponse(user),
	})
}

func (h *AuthHandler) setSession(c echo.Context, pair domain.TokenPair) {
	h.cookies.SetAccess(c, pair.AccessToken, pair.AccessExpiresAt)
	h.cookies.SetRefresh(c, pair.RefreshToken, pair.RefreshExpiresAt)
}
