package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"menu-service/internal/model"
	"menu-service/internal/scope"
	"menu-service/internal/store"
	"menu-service/pkg/logger"
	"menu-service/prometheus"
)

// CategoryRequest defines the structure for category creation requests.
// TenantID is honored only for superusers; everyone else gets their own
// tenant stamped regardless of what they send.
type CategoryRequest struct {
	Name      string  `json:"name"`
	ImageURL  *string `json:"image_url"`
	SortOrder int     `json:"sort_order"`
	TenantID  uint    `json:"tenant_id"`
}

// CategoryUpdateRequest defines the structure for partial category updates
type CategoryUpdateRequest struct {
	Name      *string `json:"name"`
	ImageURL  *string `json:"image_url"`
	SortOrder *int    `json:"sort_order"`
}

// ReorderRequest carries a batch of (id, sort_order) pairs
type ReorderRequest struct {
	Orders []store.OrderPair `json:"orders"`
}

// ListCategories retrieves the categories visible to the caller
func (h *Handler) ListCategories(c echo.Context) error {
	log := logger.FromContext(c)
	caller := callerFrom(c)

	filter, err := h.gate.Read(c.Request().Context(), caller, scope.EntityCategory)
	if err != nil {
		return writeError(c, caller, err)
	}

	categories, err := h.categories.List(c.Request().Context(), filter)
	if err != nil {
		return writeError(c, caller, err)
	}

	log.Info("Categories listed", zap.Int("count", len(categories)))
	return c.JSON(http.StatusOK, categoryListResponse(categories, caller.IsSuperuser))
}

// GetCategory retrieves a specific category by ID
func (h *Handler) GetCategory(c echo.Context) error {
	caller := callerFrom(c)

	id, err := idParam(c, "id")
	if err != nil {
		return writeError(c, caller, err)
	}

	filter, err := h.gate.Read(c.Request().Context(), caller, scope.EntityCategory)
	if err != nil {
		return writeError(c, caller, err)
	}

	category, err := h.categories.Get(c.Request().Context(), id, filter)
	if err != nil {
		return writeError(c, caller, err)
	}

	return c.JSON(http.StatusOK, categoryResponse(*category, caller.IsSuperuser))
}

// CreateCategory adds a new category, force-stamping the owning tenant
func (h *Handler) CreateCategory(c echo.Context) error {
	log := logger.FromContext(c)
	caller := callerFrom(c)

	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		log.Warn("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	tenantScope, err := h.gate.Write(c.Request().Context(), caller, scope.EntityCategory)
	if err != nil {
		return writeError(c, caller, err)
	}

	tenantID, err := tenantScope.AssignTenant(req.TenantID)
	if err != nil {
		return writeError(c, caller, err)
	}

	category := model.Category{
		TenantID:  tenantID,
		Name:      req.Name,
		ImageURL:  req.ImageURL,
		SortOrder: req.SortOrder,
	}
	if err := h.categories.Create(c.Request().Context(), &category); err != nil {
		return writeError(c, caller, err)
	}

	prometheus.RecordEntityOperation("category", "create")
	log.Info("Category created",
		zap.Uint("category_id", category.ID),
		zap.String("name", category.Name),
		zap.Uint("tenant_id", category.TenantID))
	return c.JSON(http.StatusCreated, categoryResponse(category, caller.IsSuperuser))
}

// UpdateCategory applies a partial update to a category within scope
func (h *Handler) UpdateCategory(c echo.Context) error {
	log := logger.FromContext(c)
	caller := callerFrom(c)

	id, err := idParam(c, "id")
	if err != nil {
		return writeError(c, caller, err)
	}

	var req CategoryUpdateRequest
	if err := c.Bind(&req); err != nil {
		log.Warn("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	tenantScope, err := h.gate.Write(c.Request().Context(), caller, scope.EntityCategory)
	if err != nil {
		return writeError(c, caller, err)
	}

	category, err := h.categories.Update(c.Request().Context(), id, tenantScope.Filter(), store.CategoryUpdate{
		Name:      req.Name,
		ImageURL:  req.ImageURL,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		return writeError(c, caller, err)
	}

	prometheus.RecordEntityOperation("category", "update")
	log.Info("Category updated", zap.Uint("category_id", category.ID))
	return c.JSON(http.StatusOK, categoryResponse(*category, caller.IsSuperuser))
}

// DeleteCategory removes a category and cascades to its subcategories and items
func (h *Handler) DeleteCategory(c echo.Context) error {
	log := logger.FromContext(c)
	caller := callerFrom(c)

	id, err := idParam(c, "id")
	if err != nil {
		return writeError(c, caller, err)
	}

	tenantScope, err := h.gate.Write(c.Request().Context(), caller, scope.EntityCategory)
	if err != nil {
		return writeError(c, caller, err)
	}

	if err := h.categories.Delete(c.Request().Context(), id, tenantScope.Filter()); err != nil {
		return writeError(c, caller, err)
	}

	prometheus.RecordEntityOperation("category", "delete")
	log.Info("Category deleted", zap.Uint("category_id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "category deleted"})
}

// ReorderCategories applies a batch of category order changes atomically
func (h *Handler) ReorderCategories(c echo.Context) error {
	log := logger.FromContext(c)
	caller := callerFrom(c)

	var req ReorderRequest
	if err := c.Bind(&req); err != nil {
		log.Warn("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	tenantScope, err := h.gate.Write(c.Request().Context(), caller, scope.EntityCategory)
	if err != nil {
		return writeError(c, caller, err)
	}

	if err := h.categories.Reorder(c.Request().Context(), tenantScope.Filter(), req.Orders); err != nil {
		prometheus.RecordReorderBatch("category", "rejected")
		return writeError(c, caller, err)
	}

	prometheus.RecordReorderBatch("category", "accepted")
	log.Info("Categories reordered", zap.Int("count", len(req.Orders)))
	return c.JSON(http.StatusOK, echo.Map{"message": "order updated"})
}
