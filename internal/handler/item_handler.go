package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"menu-service/internal/model"
	"menu-service/internal/scope"
	"menu-service/internal/store"
	"menu-service/pkg/logger"
	"menu-service/prometheus"
)

// ItemRequest defines the structure for item creation requests
type ItemRequest struct {
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	Available     *bool           `json:"available"`
	CategoryID    uint            `json:"category_id"`
	SubcategoryID *uint           `json:"subcategory_id"`
	SortOrder     int             `json:"sort_order"`
	TenantID      uint            `json:"tenant_id"`
}

// ItemUpdateRequest defines the structure for partial item updates.
// ClearSubcategory detaches the item from its subcategory.
type ItemUpdateRequest struct {
	Name             *string          `json:"name"`
	Description      *string          `json:"description"`
	Price            *decimal.Decimal `json:"price"`
	Available        *bool            `json:"available"`
	CategoryID       *uint            `json:"category_id"`
	SubcategoryID    *uint            `json:"subcategory_id"`
	ClearSubcategory bool             `json:"clear_subcategory"`
	SortOrder        *int             `json:"sort_order"`
}

// ListItems retrieves the items visible to the caller, optionally under one
// parent category or subcategory via the route parameters.
func (h *Handler) ListItems(c echo.Context) error {
	log := logger.FromContext(c)
	caller := callerFrom(c)

	filter, err := h.gate.Read(c.Request().Context(), caller, scope.EntityItem)
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
	if c.Param("subcategoryID") != "" {
		subcategoryID, err := idParam(c, "subcategoryID")
		if err != nil {
			return writeError(c, caller, err)
		}
		filter = filter.WithSubcategory(subcategoryID)
	}

	items, err := h.items.List(c.Request().Context(), filter, false)
	if err != nil {
		return writeError(c, caller, err)
	}

	log.Info("Items listed", zap.Int("count", len(items)))
	return c.JSON(http.StatusOK, itemListResponse(items, caller.IsSuperuser))
}

// GetItem retrieves a specific item by ID
func (h *Handler) GetItem(c echo.Context) error {
	caller := callerFrom(c)

	id, err := idParam(c, "id")
	if err != nil {
		return writeError(c, caller, err)
	}

	filter, err := h.gate.Read(c.Request().Context(), caller, scope.EntityItem)
	if err != nil {
		return writeError(c, caller, err)
	}

	item, err := h.items.Get(c.Request().Context(), id, filter)
	if err != nil {
		return writeError(c, caller, err)
	}

	return c.JSON(http.StatusOK, itemResponse(*item, caller.IsSuperuser))
}

// CreateItem adds a menu item under a category of the caller's tenant
func (h *Handler) CreateItem(c echo.Context) error {
	log := logger.FromContext(c)
	caller := callerFrom(c)

	var req ItemRequest
	if err := c.Bind(&req); err != nil {
		log.Warn("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	tenantScope, err := h.gate.Write(c.Request().Context(), caller, scope.EntityItem)
	if err != nil {
		return writeError(c, caller, err)
	}

	tenantID, err := tenantScope.AssignTenant(req.TenantID)
	if err != nil {
		return writeError(c, caller, err)
	}

	available := true
	if req.Available != nil {
		available = *req.Available
	}

	item := model.Item{
		TenantID:      tenantID,
		CategoryID:    req.CategoryID,
		SubcategoryID: req.SubcategoryID,
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		Available:     available,
		SortOrder:     req.SortOrder,
	}
	if err := h.items.Create(c.Request().Context(), &item); err != nil {
		return writeError(c, caller, err)
	}

	prometheus.RecordEntityOperation("item", "create")
	log.Info("Item created",
		zap.Uint("item_id", item.ID),
		zap.String("name", item.Name),
		zap.Uint("tenant_id", item.TenantID))
	return c.JSON(http.StatusCreated, itemResponse(item, caller.IsSuperuser))
}

// UpdateItem applies a partial update to an item within scope
func (h *Handler) UpdateItem(c echo.Context) error {
	log := logger.FromContext(c)
	caller := callerFrom(c)

	id, err := idParam(c, "id")
	if err != nil {
		return writeError(c, caller, err)
	}

	var req ItemUpdateRequest
	if err := c.Bind(&req); err != nil {
		log.Warn("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	tenantScope, err := h.gate.Write(c.Request().Context(), caller, scope.EntityItem)
	if err != nil {
		return writeError(c, caller, err)
	}

	item, err := h.items.Update(c.Request().Context(), id, tenantScope.Filter(), store.ItemUpdate{
		Name:             req.Name,
		Description:      req.Description,
		Price:            req.Price,
		Available:        req.Available,
		CategoryID:       req.CategoryID,
		SubcategoryID:    req.SubcategoryID,
		ClearSubcategory: req.ClearSubcategory,
		SortOrder:        req.SortOrder,
	})
	if err != nil {
		return writeError(c, caller, err)
	}

	prometheus.RecordEntityOperation("item", "update")
	log.Info("Item updated", zap.Uint("item_id", item.ID))
	return c.JSON(http.StatusOK, itemResponse(*item, caller.IsSuperuser))
}

// DeleteItem removes an item within scope
func (h *Handler) DeleteItem(c echo.Context) error {
	log := logger.FromContext(c)
	caller := callerFrom(c)

	id, err := idParam(c, "id")
	if err != nil {
		return writeError(c, caller, err)
	}

	tenantScope, err := h.gate.Write(c.Request().Context(), caller, scope.EntityItem)
	if err != nil {
		return writeError(c, caller, err)
	}

	if err := h.items.Delete(c.Request().Context(), id, tenantScope.Filter()); err != nil {
		return writeError(c, caller, err)
	}

	prometheus.RecordEntityOperation("item", "delete")
	log.Info("Item deleted", zap.Uint("item_id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "item deleted"})
}

// ReorderItems applies a batch of item order changes atomically
func (h *Handler) ReorderItems(c echo.Context) error {
	log := logger.FromContext(c)
	caller := callerFrom(c)

	var req ReorderRequest
	if err := c.Bind(&req); err != nil {
		log.Warn("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	tenantScope, err := h.gate.Write(c.Request().Context(), caller, scope.EntityItem)
	if err != nil {
		return writeError(c, caller, err)
	}

	if err := h.items.Reorder(c.Request().Context(), tenantScope.Filter(), req.Orders); err != nil {
		prometheus.RecordReorderBatch("item", "rejected")
		return writeError(c, caller, err)
	}

	prometheus.RecordReorderBatch("item", "accepted")
	log.Info("Items reordered", zap.Int("count", len(req.Orders)))
	return c.JSON(http.StatusOK, echo.Map{"message": "order updated"})
}
