package handler

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/labstack/echo/v4"

	apperrors "wishlist/internal/errors"
	"wishlist/internal/logger"
	"wishlist/internal/model"
	"wishlist/internal/service"
	"wishlist/internal/session"
)

// ItemHandler serves the HTML wishlist CRUD flow. All routes here sit behind
// session.RequireSession; ownership is checked per item before any mutation.
type ItemHandler struct {
	items service.ItemService
}

// NewItemHandler creates a new item handler.
func NewItemHandler(items service.ItemService) *ItemHandler {
	return &ItemHandler{items: items}
}

// ItemForm carries the add/edit form fields. The empty-name check happens
// here at the boundary, not in the service.
type ItemForm struct {
	Name        string `form:"name" validate:"required"`
	Description string `form:"description"`
	Link        string `form:"link"`
}

// List shows the session user's wishlist.
func (h *ItemHandler) List(c echo.Context) error {
	items, err := h.items.FindByOwner(c.Request().Context(), session.UserID(c))
	if err != nil {
		logger.Log.Errorw("list items", "user_id", session.UserID(c), "err", err)
		return c.Render(http.StatusInternalServerError, "errorPage.html", echo.Map{"Message": "could not load wishlist"})
	}
	return c.Render(http.StatusOK, "items.html", echo.Map{
		"Items":    items,
		"UserName": session.UserName(c),
	})
}

// ShowAddForm renders the item creation form.
func (h *ItemHandler) ShowAddForm(c echo.Context) error {
	return c.Render(http.StatusOK, "addForm.html", echo.Map{})
}

// Create persists a new item owned by the session user.
func (h *ItemHandler) Create(c echo.Context) error {
	var form ItemForm
	if err := c.Bind(&form); err != nil {
		return redirectToError(c, "invalid form submission")
	}
	if err := c.Validate(&form); err != nil {
		return redirectToError(c, "item name must not be empty")
	}

	item := &model.Item{
		Name:        form.Name,
		Description: form.Description,
		Link:        form.Link,
		UserID:      session.UserID(c),
	}
	if err := h.items.Create(c.Request().Context(), item); err != nil {
		logger.Log.Errorw("create item", "user_id", item.UserID, "err", err)
		return redirectToError(c, "could not save item")
	}

	return c.Redirect(http.StatusFound, "/items")
}

// ShowEditForm renders the edit form pre-filled with the item.
func (h *ItemHandler) ShowEditForm(c echo.Context) error {
	item, err := h.loadOwnedItem(c)
	if err != nil {
		return h.renderItemError(c, err)
	}
	return c.Render(http.StatusOK, "editForm.html", echo.Map{"Item": item})
}

// Update applies edits to name, description and link. ID and owner never change.
func (h *ItemHandler) Update(c echo.Context) error {
	item, err := h.loadOwnedItem(c)
	if err != nil {
		return h.renderItemError(c, err)
	}

	var form ItemForm
	if err := c.Bind(&form); err != nil {
		return redirectToError(c, "invalid form submission")
	}
	if err := c.Validate(&form); err != nil {
		return c.Render(http.StatusBadRequest, "editForm.html", echo.Map{
			"Item":  item,
			"Error": "item name must not be empty",
		})
	}

	if _, err := h.items.Update(c.Request().Context(), item.ID, form.Name, form.Description, form.Link); err != nil {
		return h.renderItemError(c, err)
	}

	return c.Redirect(http.StatusFound, "/items")
}

// Delete removes the item when the session user owns it.
func (h *ItemHandler) Delete(c echo.Context) error {
	item, err := h.loadOwnedItem(c)
	if err != nil {
		return h.renderItemError(c, err)
	}

	if err := h.items.DeleteByID(c.Request().Context(), item.ID); err != nil {
		logger.Log.Errorw("delete item", "item_id", item.ID, "err", err)
		return redirectToError(c, "could not delete item")
	}

	return c.Redirect(http.StatusFound, "/items")
}

// ErrorPage renders the generic error page with an optional message.
func (h *ItemHandler) ErrorPage(c echo.Context) error {
	return c.Render(http.StatusOK, "errorPage.html", echo.Map{"Message": c.QueryParam("message")})
}

// loadOwnedItem resolves :id and enforces ownership. A missing item yields
// ErrItemNotFound and a foreign one ErrNotOwner, two distinct outcomes.
func (h *ItemHandler) loadOwnedItem(c echo.Context) (*model.Item, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return nil, apperrors.ErrItemNotFound
	}
	item, err := h.items.FindByID(c.Request().Context(), uint(id))
	if err != nil {
		return nil, err
	}
	if item.UserID != session.UserID(c) {
		return nil, apperrors.ErrNotOwner
	}
	return item, nil
}

func (h *ItemHandler) renderItemError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, apperrors.ErrItemNotFound):
		return c.Render(http.StatusNotFound, "errorPage.html", echo.Map{"Message": "item not found"})
	case errors.Is(err, apperrors.ErrNotOwner):
		return c.Render(http.StatusForbidden, "errorPage.html", echo.Map{"Message": "this item belongs to another user"})
	default:
		logger.Log.Errorw("item request failed", "err", err)
		return c.Render(http.StatusInternalServerError, "errorPage.html", echo.Map{"Message": "something went wrong"})
	}
}

func redirectToError(c echo.Context, message string) error {
	return c.Redirect(http.StatusFound, "/errorPage?message="+url.QueryEscape(message))
}
