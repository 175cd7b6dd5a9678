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

// TenantRequest defines the structure for tenant creation requests. A blank
// slug is derived from the name.
type TenantRequest struct {
	Name    string `json:"name"`
	Slug    string `json:"slug"`
	OwnerID uint   `json:"owner_id"`
	Active  *bool  `json:"active"`
}

// TenantUpdateRequest defines the structure for partial tenant updates
type TenantUpdateRequest struct {
	Name    *string `json:"name"`
	Slug    *string `json:"slug"`
	OwnerID *uint   `json:"owner_id"`
	Active  *bool   `json:"active"`
}

// ListTenants retrieves all tenants. Superuser only.
func (h *Handler) ListTenants(c echo.Context) error {
	caller := callerFrom(c)

	if _, err := h.gate.Read(c.Request().Context(), caller, scope.EntityTenant); err != nil {
		return writeError(c, caller, err)
	}

	tenants, err := h.tenants.List(c.Request().Context())
	if err != nil {
		return writeError(c, caller, err)
	}
	return c.JSON(http.StatusOK, tenants)
}

// GetTenant retrieves a specific tenant by ID. Superuser only.
func (h *Handler) GetTenant(c echo.Context) error {
	caller := callerFrom(c)

	id, err := idParam(c, "id")
	if err != nil {
		return writeError(c, caller, err)
	}

	if _, err := h.gate.Read(c.Request().Context(), caller, scope.EntityTenant); err != nil {
		return writeError(c, caller, err)
	}

	tenant, err := h.tenants.Get(c.Request().Context(), id)
	if err != nil {
		return writeError(c, caller, err)
	}
	return c.JSON(http.StatusOK, tenant)
}

// CreateTenant registers a new tenant. Superuser only.
func (h *Handler) CreateTenant(c echo.Context) error {
	log := logger.FromContext(c)
	caller := callerFrom(c)

	var req TenantRequest
	if err := c.Bind(&req); err != nil {
		log.Warn("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	if _, err := h.gate.Write(c.Request().Context(), caller, scope.EntityTenant); err != nil {
		return writeError(c, caller, err)
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	tenant := model.Tenant{
		Name:    req.Name,
		Slug:    req.Slug,
		OwnerID: req.OwnerID,
		Active:  active,
	}
	if err := h.tenants.Create(c.Request().Context(), &tenant); err != nil {
		return writeError(c, caller, err)
	}

	prometheus.RecordEntityOperation("tenant", "create")
	log.Info("Tenant created",
		zap.Uint("tenant_id", tenant.ID),
		zap.String("slug", tenant.Slug),
		zap.Uint("owner_id", tenant.OwnerID))
	return c.JSON(http.StatusCreated, tenant)
}

// UpdateTenant applies a partial update to a tenant. Superuser only.
func (h *Handler) UpdateTenant(c echo.Context) error {
	log := logger.FromContext(c)
	caller := callerFrom(c)

	id, err := idParam(c, "id")
	if err != nil {
		return writeError(c, caller, err)
	}

	var req TenantUpdateRequest
	if err := c.Bind(&req); err != nil {
		log.Warn("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	if _, err := h.gate.Write(c.Request().Context(), caller, scope.EntityTenant); err != nil {
		return writeError(c, caller, err)
	}

	tenant, err := h.tenants.Update(c.Request().Context(), id, store.TenantUpdate{
		Name:    req.Name,
		Slug:    req.Slug,
		OwnerID: req.OwnerID,
		Active:  req.Active,
	})
	if err != nil {
		return writeError(c, caller, err)
	}

	prometheus.RecordEntityOperation("tenant", "update")
	log.Info("Tenant updated", zap.Uint("tenant_id", tenant.ID))
	return c.JSON(http.StatusOK, tenant)
}

// DeleteTenant removes a tenant and its whole catalog. Superuser only.
func (h *Handler) DeleteTenant(c echo.Context) error {
	log := logger.FromContext(c)
	caller := callerFrom(c)

	id, err := idParam(c, "id")
	if err != nil {
		return writeError(c, caller, err)
	}

	if _, err := h.gate.Write(c.Request().Context(), caller, scope.EntityTenant); err != nil {
		return writeError(c, caller, err)
	}

	if err := h.tenants.Delete(c.Request().Context(), id); err != nil {
		return writeError(c, caller, err)
	}

	prometheus.RecordEntityOperation("tenant", "delete")
	log.Info("Tenant deleted", zap.Uint("tenant_id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "tenant deleted"})
}
