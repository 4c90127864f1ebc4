package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "wishlist/internal/errors"
	"wishlist/internal/logger"
	"wishlist/internal/service"
	"wishlist/internal/session"
)

// AuthHandler serves the HTML registration and login flow.
type AuthHandler struct {
	users    service.UserService
	sessions session.Store
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(users service.UserService, sessions session.Store) *AuthHandler {
	return &AuthHandler{users: users, sessions: sessions}
}

// RegisterForm carries the registration form fields.
type RegisterForm struct {
	UserName string `form:"userName" validate:"required,min=3,max=64"`
	Password string `form:"userPassword" validate:"required,min=6"`
}

// LoginForm carries the login form fields.
type LoginForm struct {
	UserName string `form:"userName" validate:"required"`
	Password string `form:"userPassword" validate:"required"`
}

// ShowRegister renders the registration form.
func (h *AuthHandler) ShowRegister(c echo.Context) error {
	return c.Render(http.StatusOK, "register.html", echo.Map{"UserName": ""})
}

// Register processes a registration submission. A taken username re-renders
// the form with a message instead of failing the request.
func (h *AuthHandler) Register(c echo.Context) error {
	var form RegisterForm
	if err := c.Bind(&form); err != nil {
		return c.Render(http.StatusBadRequest, "register.html", echo.Map{"Error": "invalid form submission", "UserName": ""})
	}
	if err := c.Validate(&form); err != nil {
		return c.Render(http.StatusBadRequest, "register.html", echo.Map{
			"Error":    "username must be at least 3 characters and password at least 6",
			"UserName": form.UserName,
		})
	}

	if _, err := h.users.Register(c.Request().Context(), form.UserName, form.Password); err != nil {
		if errors.Is(err, apperrors.ErrUsernameTaken) {
			return c.Render(http.StatusConflict, "register.html", echo.Map{
				"Error":    "that username is already taken",
				"UserName": form.UserName,
			})
		}
		logger.Log.Errorw("register user", "user_name", form.UserName, "err", err)
		return c.Render(http.StatusInternalServerError, "errorPage.html", echo.Map{"Message": "registration failed"})
	}

	return c.Redirect(http.StatusFound, "/login")
}

// ShowLogin renders the login form.
func (h *AuthHandler) ShowLogin(c echo.Context) error {
	return c.Render(http.StatusOK, "login.html", echo.Map{})
}

// Login checks credentials and starts a session.
func (h *AuthHandler) Login(c echo.Context) error {
	var form LoginForm
	if err := c.Bind(&form); err != nil {
		return c.Render(http.StatusBadRequest, "login.html", echo.Map{"Error": "invalid form submission"})
	}
	if err := c.Validate(&form); err != nil {
		return c.Render(http.StatusBadRequest, "login.html", echo.Map{"Error": "username and password are required"})
	}

	user, err := h.users.CheckLogin(c.Request().Context(), form.UserName, form.Password)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidCredentials) {
			return c.Render(http.StatusUnauthorized, "login.html", echo.Map{"Error": "invalid username or password"})
		}
		logger.Log.Errorw("check login", "user_name", form.UserName, "err", err)
		return c.Render(http.StatusInternalServerError, "errorPage.html", echo.Map{"Message": "login failed"})
	}

	token, err := h.sessions.Create(c.Request().Context(), user.ID, user.UserName)
	if err != nil {
		logger.Log.Errorw("create session", "user_id", user.ID, "err", err)
		return c.Render(http.StatusInternalServerError, "errorPage.html", echo.Map{"Message": "login failed"})
	}
	session.WriteCookie(c, token)

	return c.Redirect(http.StatusFound, "/items")
}

// Logout ends the session and clears the cookie. Safe without a session.
func (h *AuthHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(session.CookieName); err == nil && cookie.Value != "" {
		if err := h.sessions.Delete(c.Request().Context(), cookie.Value); err != nil {
			logger.Log.Warnw("delete session", "err", err)
		}
	}
	session.ClearCookie(c)
	return c.Redirect(http.StatusFound, "/login")
}
