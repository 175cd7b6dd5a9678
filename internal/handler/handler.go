package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"menu-service/internal/middleware"
	"menu-service/internal/scope"
	"menu-service/internal/store"
	"menu-service/pkg/logger"
)

// Handler holds the authorization gate and the scoped repositories. It is
// the HTTP adapter around the catalog core; every route method resolves the
// caller, asks the gate for a scope and hands plain data to the store.
type Handler struct {
	gate          *scope.Gate
	tenants       *store.TenantStore
	categories    *store.CategoryStore
	subcategories *store.SubcategoryStore
	items         *store.ItemStore
}

// New wires a handler from the gate and database built at startup.
func New(gate *scope.Gate, db *gorm.DB) *Handler {
	return &Handler{
		gate:          gate,
		tenants:       store.NewTenantStore(db),
		categories:    store.NewCategoryStore(db),
		subcategories: store.NewSubcategoryStore(db),
		items:         store.NewItemStore(db),
	}
}

// writeError maps the core error taxonomy onto HTTP responses.
func writeError(c echo.Context, caller scope.Caller, err error) error {
	var verr *scope.ValidationError
	switch {
	case errors.As(err, &verr):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": verr.Message, "field": verr.Field})
	case errors.Is(err, scope.ErrUnauthorized):
		if caller.Anonymous() {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
		}
		return c.JSON(http.StatusForbidden, echo.Map{"error": "permission denied"})
	case errors.Is(err, store.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
	case errors.Is(err, store.ErrConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": "reorder batch rejected"})
	default:
		logger.FromContext(c).Error("Internal error", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}
}

// callerFrom is a tiny alias to keep handler bodies readable.
func callerFrom(c echo.Context) scope.Caller {
	return middleware.CallerFromContext(c)
}

// idParam parses a numeric path parameter.
func idParam(c echo.Context, name string) (uint, error) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, scope.Validationf(name, "invalid %s", name)
	}
	return uint(id), nil
}
