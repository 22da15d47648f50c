package services

import (
	"context"
	"strings"
	"testing"

	"grassroots/warchest/internal/constants"
	"grassroots/warchest/internal/db/repositories"
	"grassroots/warchest/internal/models/dtos"
	gormModels "grassroots/warchest/internal/models/gorm"

	"gorm.io/gorm"
)

func newTestOrgManagementService(db *gorm.DB) *OrgManagementService {
	return NewOrgManagementService(
		repositories.NewOrgRepository(db),
		repositories.NewMembershipRepository(db),
		repositories.NewUserRepositoryGORM(db),
		newTestPermissionService(db),
		newTestAudit(db),
	)
}

func TestOrgManagementService_AddMember(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestOrgManagementService(db)

	actor := createTestUser(t, db, constants.PlatformRoleOrgUser, constants.UserStatusActive)
	member := createTestUser(t, db, constants.PlatformRoleDonor, constants.UserStatusActive)
	org := createTestOrg(t, db, "members-org", constants.VerificationVerified)
	ctx := context.Background()

	membership, err := svc.AddMember(ctx, actor.ID, org.ID, &dtos.AddMemberRequest{
		UserID: member.ID,
		Role:   "editor",
	})
	if err != nil {
		t.Fatalf("AddMember returned error: %v", err)
	}
	if membership.Role != constants.OrgRoleEditor {
		t.Errorf("Expected editor role, got %s", membership.Role)
	}
	if !membership.IsActive {
		t.Error("Expected active membership")
	}

	// Re-adding is an error, not an upsert
	_, err = svc.AddMember(ctx, actor.ID, org.ID, &dtos.AddMemberRequest{
		UserID: member.ID,
		Role:   "viewer",
	})
	if err == nil || !strings.Contains(err.Error(), constants.StatusMembershipExists) {
		t.Errorf("Expected duplicate membership error, got %v", err)
	}

	// Unknown roles and unknown users are rejected
	if _, err := svc.AddMember(ctx, actor.ID, org.ID, &dtos.AddMemberRequest{
		UserID: member.ID, Role: "captain",
	}); err == nil {
		t.Error("Expected unknown role to fail")
	}
	if _, err := svc.AddMember(ctx, actor.ID, org.ID, &dtos.AddMemberRequest{
		UserID: "no-such-user", Role: "viewer",
	}); err == nil {
		t.Error("Expected unknown user to fail")
	}
}

func TestOrgManagementService_SetMemberRole(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestOrgManagementService(db)

	actor := createTestUser(t, db, constants.PlatformRoleOrgUser, constants.UserStatusActive)
	member := createTestUser(t, db, constants.PlatformRoleDonor, constants.UserStatusActive)
	org := createTestOrg(t, db, "roles-org", constants.VerificationVerified)
	createTestMembership(t, db, member.ID, org.ID, constants.OrgRoleViewer)
	ctx := context.Background()

	updated, err := svc.SetMemberRole(ctx, actor.ID, org.ID, &dtos.SetMemberRoleRequest{
		UserID: member.ID,
		Role:   "treasurer",
	})
	if err != nil {
		t.Fatalf("SetMemberRole returned error: %v", err)
	}
	if updated.Role != constants.OrgRoleTreasurer {
		t.Errorf("Expected treasurer role, got %s", updated.Role)
	}

	// No membership, no role change
	outsider := createTestUser(t, db, constants.PlatformRoleDonor, constants.UserStatusActive)
	if _, err := svc.SetMemberRole(ctx, actor.ID, org.ID, &dtos.SetMemberRoleRequest{
		UserID: outsider.ID, Role: "viewer",
	}); err == nil {
		t.Error("Expected role change for non-member to fail")
	}
}

func TestOrgManagementService_RemoveMember(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestOrgManagementService(db)

	actor := createTestUser(t, db, constants.PlatformRoleOrgUser, constants.UserStatusActive)
	member := createTestUser(t, db, constants.PlatformRoleDonor, constants.UserStatusActive)
	org := createTestOrg(t, db, "remove-org", constants.VerificationVerified)
	membership := createTestMembership(t, db, member.ID, org.ID, constants.OrgRoleViewer)
	ctx := context.Background()

	if err := svc.RemoveMember(ctx, actor.ID, org.ID, member.ID); err != nil {
		t.Fatalf("RemoveMember returned error: %v", err)
	}

	// The row is deactivated, not deleted
	var stored gormModels.OrgMembership
	if err := db.Where("id = ?", membership.ID).First(&stored).Error; err != nil {
		t.Fatalf("Expected membership row to survive removal: %v", err)
	}
	if stored.IsActive {
		t.Error("Expected membership to be inactive")
	}

	if err := svc.RemoveMember(ctx, actor.ID, org.ID, member.ID); err == nil {
		t.Error("Expected removing a non-member to fail")
	}
}

func TestOrgManagementService_SetVerificationStatus(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestOrgManagementService(db)

	admin := createTestUser(t, db, constants.PlatformRoleSuperAdmin, constants.UserStatusActive)
	org := createTestOrg(t, db, "verify-org", constants.VerificationPending)
	ctx := context.Background()

	updated, err := svc.SetVerificationStatus(ctx, admin.ID, org.ID, constants.VerificationVerified)
	if err != nil {
		t.Fatalf("SetVerificationStatus returned error: %v", err)
	}
	if updated.VerificationStatus != constants.VerificationVerified {
		t.Errorf("Expected verified status, got %s", updated.VerificationStatus)
	}

	if _, err := svc.SetVerificationStatus(ctx, admin.ID, org.ID, "audited"); err == nil {
		t.Error("Expected unknown verification status to fail")
	}

	// The decision lands in the audit trail
	var count int64
	if err := db.Model(&gormModels.AuditLog{}).
		Where("entity_type = ? AND entity_id = ?", "organization", org.ID).
		Count(&count).Error; err != nil {
		t.Fatalf("Failed to count audit rows: %v", err)
	}
	if count == 0 {
		t.Error("Expected verification change to be audited")
	}
}
