package services

import (
	"context"
	"testing"

	"grassroots/warchest/internal/constants"
	"grassroots/warchest/internal/db/repositories"

	"gorm.io/gorm"
)

func newTestUserService(db *gorm.DB) (*UserService, *PermissionService) {
	perms := newTestPermissionService(db)
	svc := NewUserService(db, repositories.NewUserRepositoryGORM(db), perms, newTestAudit(db))
	return svc, perms
}

func TestUserService_SuspendAndReinstate(t *testing.T) {
	db := setupTestDB(t)
	svc, perms := newTestUserService(db)

	admin := createTestUser(t, db, constants.PlatformRoleSuperAdmin, constants.UserStatusActive)
	user := createTestUser(t, db, constants.PlatformRoleSuperAdmin, constants.UserStatusActive)
	ctx := context.Background()

	// Warm the decision cache so suspension has something to invalidate
	allowed, err := perms.Resolve(ctx, user.ID, constants.PermDonationView, nil)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if !allowed {
		t.Fatal("Expected active super admin to be allowed")
	}

	if err := svc.Suspend(ctx, admin.ID, user.ID); err != nil {
		t.Fatalf("Suspend returned error: %v", err)
	}

	allowed, err = perms.Resolve(ctx, user.ID, constants.PermDonationView, nil)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if allowed {
		t.Error("Expected suspension to take effect immediately, cache included")
	}

	if err := svc.Reinstate(ctx, admin.ID, user.ID); err != nil {
		t.Fatalf("Reinstate returned error: %v", err)
	}

	allowed, err = perms.Resolve(ctx, user.ID, constants.PermDonationView, nil)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if !allowed {
		t.Error("Expected reinstatement to restore access")
	}

	// Reinstating an account that is not suspended is an error
	if err := svc.Reinstate(ctx, admin.ID, user.ID); err == nil {
		t.Error("Expected reinstate of active user to fail")
	}
}

func TestUserService_SetPlatformRole(t *testing.T) {
	db := setupTestDB(t)
	svc, perms := newTestUserService(db)

	admin := createTestUser(t, db, constants.PlatformRoleSuperAdmin, constants.UserStatusActive)
	user := createTestUser(t, db, constants.PlatformRoleDonor, constants.UserStatusActive)
	ctx := context.Background()

	if err := svc.SetPlatformRole(ctx, admin.ID, user.ID, constants.PlatformRoleSuperAdmin); err != nil {
		t.Fatalf("SetPlatformRole returned error: %v", err)
	}

	allowed, err := perms.Resolve(ctx, user.ID, constants.PermUserManagePerms, nil)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if !allowed {
		t.Error("Expected promoted user to resolve as super admin")
	}

	if err := svc.SetPlatformRole(ctx, admin.ID, user.ID, "demigod"); err == nil {
		t.Error("Expected unknown role to fail")
	}

	if err := svc.SetPlatformRole(ctx, admin.ID, "no-such-user", constants.PlatformRoleAdmin); err == nil {
		t.Error("Expected unknown user to fail")
	}
}

func TestUserService_GetUser(t *testing.T) {
	db := setupTestDB(t)
	svc, _ := newTestUserService(db)

	user := createTestUser(t, db, constants.PlatformRoleDonor, constants.UserStatusActive)
	org := createTestOrg(t, db, "details-org", constants.VerificationVerified)
	createTestMembership(t, db, user.ID, org.ID, constants.OrgRoleViewer)

	loaded, err := svc.GetUser(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("GetUser returned error: %v", err)
	}
	if len(loaded.Memberships) != 1 {
		t.Errorf("Expected 1 membership preloaded, got %d", len(loaded.Memberships))
	}

	if _, err := svc.GetUser(context.Background(), "no-such-user"); err == nil {
		t.Error("Expected unknown user to fail")
	}
}
