package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/asset-tracking-api/internal/domain"
	"github.com/asset-tracking-api/internal/repository"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestStore(t *testing.T) *repository.Store {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
		&domain.User{},
		&domain.Department{},
		&domain.Asset{},
		&domain.Request{},
		&domain.RequestLog{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return repository.NewStore(db)
}

func seedUser(t *testing.T, store *repository.Store, userID, departmentID, position, role string) {
	t.Helper()

	user := &domain.User{
		UserID:       userID,
		FullName:     "User " + userID,
		Email:        userID + "@example.com",
		DepartmentID: departmentID,
		Position:     position,
		Role:         role,
	}
	if err := store.Users.Create(context.Background(), user); err != nil {
		t.Fatalf("failed to seed user %s: %v", userID, err)
	}
}

func seedAsset(t *testing.T, store *repository.Store, tag string) {
	t.Helper()

	asset := &domain.Asset{
		Tag:    tag,
		Name:   "Asset " + tag,
		Status: domain.AssetStatusAvailable,
	}
	if err := store.Assets.Create(context.Background(), asset); err != nil {
		t.Fatalf("failed to seed asset %s: %v", tag, err)
	}
}

func seedDepartment(t *testing.T, store *repository.Store, departmentID, managerUserID string) {
	t.Helper()

	dept := &domain.Department{
		DepartmentID:  departmentID,
		Name:          "Department " + departmentID,
		ManagerUserID: managerUserID,
		Positions:     []string{"Manager", "Engineer"},
		EmployeeCount: 3,
		Budget:        100000,
	}
	if err := store.Departments.Create(context.Background(), dept); err != nil {
		t.Fatalf("failed to seed department %s: %v", departmentID, err)
	}
}

func seedRequest(t *testing.T, store *repository.Store, typ domain.RequestType, assetTag, byID, toID, departmentID string) *domain.Request {
	t.Helper()

	request := &domain.Request{
		ID:                 uuid.NewString(),
		AssetTag:           assetTag,
		Type:               typ,
		Priority:           "high",
		Description:        "seeded request",
		ExpectedCompletion: time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
		RequestedByID:      byID,
		RequestedToID:      toID,
		DepartmentID:       departmentID,
		Status:             domain.RequestStatusPending,
	}
	if err := store.Requests.Create(context.Background(), request); err != nil {
		t.Fatalf("failed to seed request: %v", err)
	}
	return request
}

func mustLogCount(t *testing.T, store *repository.Store, requestID string) int64 {
	t.Helper()

	count, err := store.RequestLogs.CountByRequestID(context.Background(), requestID)
	if err != nil {
		t.Fatalf("failed to count logs: %v", err)
	}
	return count
}

func strPtrValue(p *string) string {
	if p == nil {
		return "<nil>"
	}
	return *p
}
