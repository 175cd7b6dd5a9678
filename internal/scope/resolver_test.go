package scope

import (
	"context"
	"testing"

	"menu-service/internal/model"
)

func TestResolveTenant_Superuser(t *testing.T) {
	db := newTestDB(t)
	// A superuser who also owns a tenant still resolves to unrestricted
	mustCreate(t, db, &model.Tenant{Slug: "casa", Name: "Casa", OwnerID: 7, Active: true})

	resolver := NewResolver(db)
	got, err := resolver.ResolveTenant(context.Background(), Caller{UserID: 7, IsStaff: true, IsSuperuser: true})
	if err != nil {
		t.Fatalf("ResolveTenant failed: %v", err)
	}
	if !got.Unrestricted {
		t.Error("superuser should resolve to unrestricted scope")
	}
	if got.Tenant != nil {
		t.Error("superuser scope should carry no concrete tenant")
	}
}

func TestResolveTenant_Owner(t *testing.T) {
	db := newTestDB(t)
	mustCreate(t, db, &model.Tenant{Slug: "casa", Name: "Casa", OwnerID: 7, Active: true})
	mustCreate(t, db, &model.Tenant{Slug: "otro", Name: "Otro", OwnerID: 9, Active: true})

	resolver := NewResolver(db)
	got, err := resolver.ResolveTenant(context.Background(), Caller{UserID: 7, IsStaff: true})
	if err != nil {
		t.Fatalf("ResolveTenant failed: %v", err)
	}
	if got.Unrestricted {
		t.Error("owner should not be unrestricted")
	}
	if got.Tenant == nil || got.Tenant.Slug != "casa" {
		t.Fatalf("resolved tenant = %+v, want casa", got.Tenant)
	}
}

func TestResolveTenant_InactiveTenantIgnored(t *testing.T) {
	db := newTestDB(t)
	mustCreate(t, db, &model.Tenant{Slug: "casa", Name: "Casa", OwnerID: 7, Active: false})

	resolver := NewResolver(db)
	got, err := resolver.ResolveTenant(context.Background(), Caller{UserID: 7, IsStaff: true})
	if err != nil {
		t.Fatalf("ResolveTenant failed: %v", err)
	}
	if !got.None() {
		t.Errorf("inactive tenant should resolve to none, got %+v", got)
	}
}

func TestResolveTenant_MultipleTenantsFirstIDWins(t *testing.T) {
	db := newTestDB(t)
	mustCreate(t, db, &model.Tenant{Slug: "primero", Name: "Primero", OwnerID: 7, Active: true})
	mustCreate(t, db, &model.Tenant{Slug: "segundo", Name: "Segundo", OwnerID: 7, Active: true})

	resolver := NewResolver(db)
	got, err := resolver.ResolveTenant(context.Background(), Caller{UserID: 7, IsStaff: true})
	if err != nil {
		t.Fatalf("ResolveTenant failed: %v", err)
	}
	if got.Tenant == nil || got.Tenant.Slug != "primero" {
		t.Fatalf("resolved tenant = %+v, want primero", got.Tenant)
	}
}

func TestResolveTenant_NoTenant(t *testing.T) {
	db := newTestDB(t)

	resolver := NewResolver(db)
	got, err := resolver.ResolveTenant(context.Background(), Caller{UserID: 99, IsStaff: true})
	if err != nil {
		t.Fatalf("ResolveTenant failed: %v", err)
	}
	if !got.None() {
		t.Errorf("tenant-less caller should resolve to none, got %+v", got)
	}
	if filter := got.Filter(); !filter.Empty {
		t.Error("none scope should produce the empty filter")
	}
}

func TestResolveTenant_Anonymous(t *testing.T) {
	db := newTestDB(t)

	resolver := NewResolver(db)
	got, err := resolver.ResolveTenant(context.Background(), Caller{})
	if err != nil {
		t.Fatalf("ResolveTenant failed: %v", err)
	}
	if !got.None() {
		t.Errorf("anonymous caller should resolve to none, got %+v", got)
	}
}
