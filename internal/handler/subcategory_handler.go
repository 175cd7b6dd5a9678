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

// SubcategoryRequest defines the structure for subcategory creation requests
type SubcategoryRequest struct {
	Name       string `json:"name"`
	CategoryID uint   `json:"category_id"`
	SortOrder  int    `json:"sort_order"`
	TenantID   uint   `json:"tenant_id"`
}

// SubcategoryUpdateRequest defines the structure for partial subcategory updates
type SubcategoryUpdateRequest struct {
	Name       *string `json:"name"`
	CategoryID *uint   `json:"category_id"`
	SortOrder  *int    `json:"sort_order"`
}

// ListSubcategories retrieves the subcategories visible to the caller,
// optionally restricted to one parent category via the route parameter. A
// parent belonging to another tenant yields an empty list, not an error.
func (h *Handler) ListSubcategories(c echo.Context) error {
	log := logger.FromContext(c)
	caller := callerFrom(c)

	filter, err := h.gate.Read(c.Request().Context(), caller, scope.EntitySubcategory)
	if err != nil {
		return writeError(c, caller, err)
	}
	if c.Param("categoryID") != "" {
		categoryID, err := idParam(c, "categoryID")
		if err != nil {
			return writeError(c, caller, err)
		}
		filter = filter.WithCategory(categoryID)
	}

	subcategories, err := h.subcategories.List(c.Request().Context(), filter)
	if err != nil {
		return writeError(c, caller, err)
	}

	log.Info("Subcategories listed", zap.Int("count", len(subcategories)))
	return c.JSON(http.StatusOK, subcategoryListResponse(subcategories, caller.IsSuperuser))
}

// GetSubcategory retrieves a specific subcategory by ID
func (h *Handler) GetSubcategory(c echo.Context) error {
	caller := callerFrom(c)

	id, err := idParam(c, "id")
	if err != nil {
		return writeError(c, caller, err)
	}

	filter, err := h.gate.Read(c.Request().Context(), caller, scope.EntitySubcategory)
	if err != nil {
		return writeError(c, caller, err)
	}

	subcategory, err := h.subcategories.Get(c.Request().Context(), id, filter)
	if err != nil {
		return writeError(c, caller, err)
	}

	return c.JSON(http.StatusOK, subcategoryResponse(*subcategory, caller.IsSuperuser))
}

// CreateSubcategory adds a subcategory under a category of the same tenant
func (h *Handler) CreateSubcategory(c echo.Context) error {
	log := logger.FromContext(c)
	caller := callerFrom(c)

	var req SubcategoryRequest
	if err := c.Bind(&req); err != nil {
		log.Warn("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	tenantScope, err := h.gate.Write(c.Request().Context(), caller, scope.EntitySubcategory)
	if err != nil {
		return writeError(c, caller, err)
	}

	tenantID, err := tenantScope.AssignTenant(req.TenantID)
	if err != nil {
		return writeError(c, caller, err)
	}

	subcategory := model.Subcategory{
		TenantID:   tenantID,
		CategoryID: req.CategoryID,
		Name:       req.Name,
		SortOrder:  req.SortOrder,
	}
	if err := h.subcategories.Create(c.Request().Context(), &subcategory); err != nil {
		return writeError(c, caller, err)
	}

	prometheus.RecordEntityOperation("subcategory", "create")
	log.Info("Subcategory created",
		zap.Uint("subcategory_id", subcategory.ID),
		zap.Uint("category_id", subcategory.CategoryID),
		zap.Uint("tenant_id", subcategory.TenantID))
	return c.JSON(http.StatusCreated, subcategoryResponse(subcategory, caller.IsSuperuser))
}

// UpdateSubcategory applies a partial update to a subcategory within scope
func (h *Handler) UpdateSubcategory(c echo.Context) error {
	log := logger.FromContext(c)
	caller := callerFrom(c)

	id, err := idParam(c, "id")
	if err != nil {
		return writeError(c, caller, err)
	}

	var req SubcategoryUpdateRequest
	if err := c.Bind(&req); err != nil {
		log.Warn("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	tenantScope, err := h.gate.Write(c.Request().Context(), caller, scope.EntitySubcategory)
	if err != nil {
		return writeError(c, caller, err)
	}

	subcategory, err := h.subcategories.Update(c.Request().Context(), id, tenantScope.Filter(), store.SubcategoryUpdate{
		Name:       req.Name,
		CategoryID: req.CategoryID,
		SortOrder:  req.SortOrder,
	})
	if err != nil {
		return writeError(c, caller, err)
	}

	prometheus.RecordEntityOperation("subcategory", "update")
	log.Info("Subcategory updated", zap.Uint("subcategory_id", subcategory.ID))
	return c.JSON(http.StatusOK, subcategoryResponse(*subcategory, caller.IsSuperuser))
}

// DeleteSubcategory removes a subcategory and cascades to its items
func (h *Handler) DeleteSubcategory(c echo.Context) error {
	log := logger.FromContext(c)
	caller := callerFrom(c)

	id, err := idParam(c, "id")
	if err != nil {
		return writeError(c, caller, err)
	}

	tenantScope, err := h.gate.Write(c.Request().Context(), caller, scope.EntitySubcategory)
	if err != nil {
		return writeError(c, caller, err)
	}

	if err := h.subcategories.Delete(c.Request().Context(), id, tenantScope.Filter()); err != nil {
		return writeError(c, caller, err)
	}

	prometheus.RecordEntityOperation("subcategory", "delete")
	log.Info("Subcategory deleted", zap.Uint("subcategory_id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "subcategory deleted"})
}

// ReorderSubcategories applies a batch of subcategory order changes atomically
func (h *Handler) ReorderSubcategories(c echo.Context) error {
	log := logger.FromContext(c)
	caller := callerFrom(c)

	var req ReorderRequest
	if err := c.Bind(&req); err != nil {
		log.Warn("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	tenantScope, err := h.gate.Write(c.Request().Context(), caller, scope.EntitySubcategory)
	if err != nil {
		return writeError(c, caller, err)
	}

	if err := h.subcategories.Reorder(c.Request().Context(), tenantScope.Filter(), req.Orders); err != nil {
		prometheus.RecordReorderBatch("subcategory", "rejected")
		return writeError(c, caller, err)
	}

	prometheus.RecordReorderBatch("subcategory", "accepted")
	log.Info("Subcategories reordered", zap.Int("count", len(req.Orders)))
	return c.JSON(http.StatusOK, echo.Map{"message": "order updated"})
}
