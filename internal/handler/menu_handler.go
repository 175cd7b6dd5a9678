package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"menu-service/internal/scope"
)

// Public menu endpoints. Whether anonymous access is allowed is decided by
// the gate (AUTH_REQUIRE_READ policy); hidden items are never served here.

// MenuCategories lists the categories for the public menu
func (h *Handler) MenuCategories(c echo.Context) error {
	caller := callerFrom(c)

	filter, err := h.gate.Read(c.Request().Context(), caller, scope.EntityCategory)
	if err != nil {
		return writeError(c, caller, err)
	}

	categories, err := h.categories.List(c.Request().Context(), filter)
	if err != nil {
		return writeError(c, caller, err)
	}
	return c.JSON(http.StatusOK, categoryListResponse(categories, false))
}

// MenuSubcategories lists the subcategories of one category for the public menu
func (h *Handler) MenuSubcategories(c echo.Context) error {
	caller := callerFrom(c)

	categoryID, err := idParam(c, "categoryID")
	if err != nil {
		return writeError(c, caller, err)
	}

	filter, err := h.gate.Read(c.Request().Context(), caller, scope.EntitySubcategory)
	if err != nil {
		return writeError(c, caller, err)
	}

	subcategories, err := h.subcategories.List(c.Request().Context(), filter.WithCategory(categoryID))
	if err != nil {
		return writeError(c, caller, err)
	}
	return c.JSON(http.StatusOK, subcategoryListResponse(subcategories, false))
}

// MenuItemsByCategory lists the available items of one category
func (h *Handler) MenuItemsByCategory(c echo.Context) error {
	caller := callerFrom(c)

	categoryID, err := idParam(c, "categoryID")
	if err != nil {
		return writeError(c, caller, err)
	}

	filter, err := h.gate.Read(c.Request().Context(), caller, scope.EntityItem)
	if err != nil {
		return writeError(c, caller, err)
	}

	items, err := h.items.List(c.Request().Context(), filter.WithCategory(categoryID), true)
	if err != nil {
		return writeError(c, caller, err)
	}
	return c.JSON(http.StatusOK, itemListResponse(items, false))
}

// MenuItemsBySubcategory lists the available items of one subcategory
func (h *Handler) MenuItemsBySubcategory(c echo.Context) error {
	caller := callerFrom(c)

	subcategoryID, err := idParam(c, "subcategoryID")
	if err != nil {
		return writeError(c, caller, err)
	}

	filter, err := h.gate.Read(c.Request().Context(), caller, scope.EntityItem)
	if err != nil {
		return writeError(c, caller, err)
	}

	items, err := h.items.List(c.Request().Context(), filter.WithSubcategory(subcategoryID), true)
	if err != nil {
		return writeError(c, caller, err)
	}
	return c.JSON(http.StatusOK, itemListResponse(items, false))
}
