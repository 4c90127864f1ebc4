package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"wishlist/internal/auth"
	apperrors "wishlist/internal/errors"
	"wishlist/internal/model"
	"wishlist/internal/service"
)

// APIItemHandler handles JSON item endpoints. Routes are secured by the
// echo-jwt middleware; ownership is enforced per item like the HTML flow,
// with 403/404 status codes instead of rendered pages.
type APIItemHandler struct {
	items service.ItemService
}

// NewAPIItemHandler creates a new API item handler.
func NewAPIItemHandler(items service.ItemService) *APIItemHandler {
	return &APIItemHandler{items: items}
}

// ItemRequest represents an item create/update payload.
type ItemRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Link        string `json:"link"`
}

// List godoc
// @Summary List the authenticated user's items
// @Tags items
// @Produce json
// @Success 200 {array} model.Item
// @Failure 401 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /items [get]
func (h *APIItemHandler) List(c echo.Context) error {
	userID, err := auth.UserIDFromContext(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	items, err := h.items.FindByOwner(c.Request().Context(), userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, items)
}

// Create godoc
// @Summary Create an item
// @Tags items
// @Accept json
// @Produce json
// @Param request body ItemRequest true "Item payload"
// @Success 201 {object} model.Item
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /items [post]
func (h *APIItemHandler) Create(c echo.Context) error {
	userID, err := auth.UserIDFromContext(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	var req ItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	item := &model.Item{
		Name:        req.Name,
		Description: req.Description,
		Link:        req.Link,
		UserID:      userID,
	}
	if err := h.items.Create(c.Request().Context(), item); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, item)
}

// Get godoc
// @Summary Get one item
// @Tags items
// @Produce json
// @Param id path int true "Item ID"
// @Success 200 {object} model.Item
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /items/{id} [get]
func (h *APIItemHandler) Get(c echo.Context) error {
	item, err := h.ownedItem(c)
	if err != nil {
		return itemError(err)
	}
	return c.JSON(http.StatusOK, item)
}

// Update godoc
// @Summary Update an item
// @Tags items
// @Accept json
// @Produce json
// @Param id path int true "Item ID"
// @Param request body ItemRequest true "Item payload"
// @Success 200 {object} model.Item
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /items/{id} [put]
func (h *APIItemHandler) Update(c echo.Context) error {
	item, err := h.ownedItem(c)
	if err != nil {
		return itemError(err)
	}

	var req ItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	updated, err := h.items.Update(c.Request().Context(), item.ID, req.Name, req.Description, req.Link)
	if err != nil {
		return itemError(err)
	}
	return c.JSON(http.StatusOK, updated)
}

// Delete godoc
// @Summary Delete an item
// @Tags items
// @Param id path int true "Item ID"
// @Success 204
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /items/{id} [delete]
func (h *APIItemHandler) Delete(c echo.Context) error {
	item, err := h.ownedItem(c)
	if err != nil {
		return itemError(err)
	}
	if err := h.items.DeleteByID(c.Request().Context(), item.ID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *APIItemHandler) ownedItem(c echo.Context) (*model.Item, error) {
	userID, err := auth.UserIDFromContext(c)
	if err != nil {
		return nil, apperrors.NewHTTPError(http.StatusUnauthorized, "invalid token", "INVALID_TOKEN")
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return nil, apperrors.ErrItemNotFound
	}
	item, err := h.items.FindByID(c.Request().Context(), uint(id))
	if err != nil {
		return nil, err
	}
	if item.UserID != userID {
		return nil, apperrors.ErrNotOwner
	}
	return item, nil
}

func itemError(err error) error {
	if httpErr, ok := err.(*apperrors.HTTPError); ok {
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	mapped := apperrors.MapErrorToHTTP(err)
	return echo.NewHTTPError(mapped.StatusCode, mapped.ToErrorResponse())
}
