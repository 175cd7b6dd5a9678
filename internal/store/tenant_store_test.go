package store

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"menu-service/internal/model"
	"menu-service/internal/scope"
)

func TestTenantCreate_SlugDerivedFromName(t *testing.T) {
	db := newTestDB(t)
	tenants := NewTenantStore(db)

	tenant := &model.Tenant{Name: "La Casa del Mar", OwnerID: 7, Active: true}
	if err := tenants.Create(context.Background(), tenant); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if tenant.Slug != "la-casa-del-mar" {
		t.Errorf("Slug = %q, want %q", tenant.Slug, "la-casa-del-mar")
	}
}

func TestTenantCreate_SlugCollisionGetsSuffix(t *testing.T) {
	db := newTestDB(t)
	tenants := NewTenantStore(db)

	first := &model.Tenant{Name: "Casa", OwnerID: 7, Active: true}
	second := &model.Tenant{Name: "Casa", OwnerID: 8, Active: true}
	third := &model.Tenant{Name: "Casa", OwnerID: 9, Active: true}
	for _, tenant := range []*model.Tenant{first, second, third} {
		if err := tenants.Create(context.Background(), tenant); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	if first.Slug != "casa" {
		t.Errorf("first Slug = %q, want %q", first.Slug, "casa")
	}
	if second.Slug != "casa-2" {
		t.Errorf("second Slug = %q, want %q", second.Slug, "casa-2")
	}
	if third.Slug != "casa-3" {
		t.Errorf("third Slug = %q, want %q", third.Slug, "casa-3")
	}
}

func TestTenantCreate_SlugCollisionWithDeletedTenant(t *testing.T) {
	db := newTestDB(t)
	tenants := NewTenantStore(db)

	first := &model.Tenant{Name: "Casa", OwnerID: 7, Active: true}
	if err := tenants.Create(context.Background(), first); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := tenants.Delete(context.Background(), first.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	// The unique index still covers the deleted row, so the new tenant
	// must get a suffixed slug rather than die on the constraint.
	second := &model.Tenant{Name: "Casa", OwnerID: 8, Active: true}
	if err := tenants.Create(context.Background(), second); err != nil {
		t.Fatalf("Create after delete failed: %v", err)
	}
	if second.Slug != "casa-2" {
		t.Errorf("Slug = %q, want %q", second.Slug, "casa-2")
	}
}

func TestTenantCreate_ExplicitSlugIsSlugified(t *testing.T) {
	db := newTestDB(t)
	tenants := NewTenantStore(db)

	tenant := &model.Tenant{Name: "Casa", Slug: "Mi Carta Ñoña", OwnerID: 7, Active: true}
	if err := tenants.Create(context.Background(), tenant); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if tenant.Slug != "mi-carta-nona" {
		t.Errorf("Slug = %q, want %q", tenant.Slug, "mi-carta-nona")
	}
}

func TestTenantCreate_Validation(t *testing.T) {
	db := newTestDB(t)
	tenants := NewTenantStore(db)

	var verr *scope.ValidationError
	if err := tenants.Create(context.Background(), &model.Tenant{Name: "", OwnerID: 7}); !errors.As(err, &verr) {
		t.Errorf("blank name: error = %v, want ValidationError", err)
	}
	if err := tenants.Create(context.Background(), &model.Tenant{Name: "Casa"}); !errors.As(err, &verr) {
		t.Errorf("missing owner: error = %v, want ValidationError", err)
	}
}

func TestTenantCreate_InactiveStaysInactive(t *testing.T) {
	db := newTestDB(t)
	tenants := NewTenantStore(db)

	tenant := &model.Tenant{Name: "Cerrado por obras", OwnerID: 7, Active: false}
	if err := tenants.Create(context.Background(), tenant); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := tenants.Get(context.Background(), tenant.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Active {
		t.Error("tenant created inactive was stored as active")
	}
}

func TestTenantDelete_RemovesWholeCatalog(t *testing.T) {
	db := newTestDB(t)
	mine, theirs, _, _ := twoTenants(t, db)

	category := &model.Category{TenantID: mine.ID, Name: "Entrantes"}
	keep := &model.Category{TenantID: theirs.ID, Name: "Bebidas"}
	mustCreate(t, db, category)
	mustCreate(t, db, keep)
	subcategory := &model.Subcategory{TenantID: mine.ID, CategoryID: category.ID, Name: "Frías"}
	mustCreate(t, db, subcategory)
	mustCreate(t, db, &model.Item{TenantID: mine.ID, CategoryID: category.ID, Name: "Gazpacho", Price: decimal.NewFromFloat(6), Available: true})

	tenants := NewTenantStore(db)
	if err := tenants.Delete(context.Background(), mine.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	var categoryCount, subcategoryCount, itemCount int64
	db.Model(&model.Category{}).Count(&categoryCount)
	db.Model(&model.Subcategory{}).Count(&subcategoryCount)
	db.Model(&model.Item{}).Count(&itemCount)
	if categoryCount != 1 || subcategoryCount != 0 || itemCount != 0 {
		t.Errorf("after delete: categories=%d subcategories=%d items=%d, want 1/0/0",
			categoryCount, subcategoryCount, itemCount)
	}

	if _, err := tenants.Get(context.Background(), mine.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get deleted tenant: error = %v, want ErrNotFound", err)
	}
}
