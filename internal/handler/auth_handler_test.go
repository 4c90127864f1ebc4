package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	apperrors "wishlist/internal/errors"
	"wishlist/internal/model"
	"wishlist/internal/session"
)

func setupAuthApp(users *MockUserService, store *memSessions) *echo.Echo {
	e := newEcho()
	h := NewAuthHandler(users, store)

	e.GET("/register", h.ShowRegister)
	e.POST("/register", h.Register)
	e.GET("/login", h.ShowLogin)
	e.POST("/loginUser", h.Login)
	e.GET("/logout", h.Logout)
	return e
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == session.CookieName {
			return c
		}
	}
	return nil
}

func TestRegisterRedirectsToLogin(t *testing.T) {
	users := new(MockUserService)
	e := setupAuthApp(users, newMemSessions())

	users.On("Register", mock.Anything, "alice", "pw123456").
		Return(&model.User{ID: 1, UserName: "alice"}, nil)

	form := url.Values{"userName": {"alice"}, "userPassword": {"pw123456"}}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, formRequest("/register", form, nil))

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get(echo.HeaderLocation))
}

func TestRegisterDuplicateUsernameReRendersForm(t *testing.T) {
	users := new(MockUserService)
	e := setupAuthApp(users, newMemSessions())

	users.On("Register", mock.Anything, "alice", "pw123456").
		Return(nil, apperrors.ErrUsernameTaken)

	form := url.Values{"userName": {"alice"}, "userPassword": {"pw123456"}}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, formRequest("/register", form, nil))

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "already taken")
}

func TestRegisterShortPasswordRejected(t *testing.T) {
	users := new(MockUserService)
	e := setupAuthApp(users, newMemSessions())

	form := url.Values{"userName": {"alice"}, "userPassword": {"pw"}}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, formRequest("/register", form, nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	users.AssertNotCalled(t, "Register", mock.Anything, mock.Anything, mock.Anything)
}

func TestLoginStartsSession(t *testing.T) {
	users := new(MockUserService)
	store := newMemSessions()
	e := setupAuthApp(users, store)

	users.On("CheckLogin", mock.Anything, "alice", "pw1").
		Return(&model.User{ID: 1, UserName: "alice"}, nil)

	form := url.Values{"userName": {"alice"}, "userPassword": {"pw1"}}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, formRequest("/loginUser", form, nil))

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/items", rec.Header().Get(echo.HeaderLocation))

	cookie := sessionCookie(rec)
	assert.NotNil(t, cookie)
	sess, err := store.Get(context.Background(), cookie.Value)
	assert.NoError(t, err)
	assert.Equal(t, uint(1), sess.UserID)
}

func TestLoginBadCredentials(t *testing.T) {
	users := new(MockUserService)
	store := newMemSessions()
	e := setupAuthApp(users, store)

	users.On("CheckLogin", mock.Anything, "alice", "wrong").
		Return(nil, apperrors.ErrInvalidCredentials)

	form := url.Values{"userName": {"alice"}, "userPassword": {"wrong"}}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, formRequest("/loginUser", form, nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid username or password")
	assert.Nil(t, sessionCookie(rec))
	assert.Empty(t, store.sessions)
}

func TestLogoutEndsSession(t *testing.T) {
	users := new(MockUserService)
	store := newMemSessions()
	e := setupAuthApp(users, store)
	cookie := loginAs(t, store, 1, "alice")

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, getRequest("/logout", cookie))

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get(echo.HeaderLocation))
	assert.Empty(t, store.sessions)

	cleared := sessionCookie(rec)
	assert.NotNil(t, cleared)
	assert.Less(t, cleared.MaxAge, 0)
}
