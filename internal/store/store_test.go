package store

import (
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"menu-service/internal/model"
	"menu-service/internal/scope"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql database: %v", err)
	}
	// In-memory sqlite is per connection
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&model.Tenant{}, &model.Category{}, &model.Subcategory{}, &model.Item{}); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	return db
}

func mustCreate(t *testing.T, db *gorm.DB, value interface{}) {
	t.Helper()
	if err := db.Create(value).Error; err != nil {
		t.Fatalf("create fixture: %v", err)
	}
}

// twoTenants seeds two active tenants and returns scope filters for the
// first one and for a superuser.
func twoTenants(t *testing.T, db *gorm.DB) (mine, theirs *model.Tenant, myFilter, allFilter scope.ScopeFilter) {
	t.Helper()

	mine = &model.Tenant{Slug: "casa", Name: "Casa", OwnerID: 7, Active: true}
	theirs = &model.Tenant{Slug: "otro", Name: "Otro", OwnerID: 9, Active: true}
	mustCreate(t, db, mine)
	mustCreate(t, db, theirs)

	myFilter = scope.TenantScope{Tenant: mine}.Filter()
	allFilter = scope.TenantScope{Unrestricted: true}.Filter()
	return mine, theirs, myFilter, allFilter
}
