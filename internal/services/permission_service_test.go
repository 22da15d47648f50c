package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"grassroots/warchest/internal/common"
	"grassroots/warchest/internal/constants"
	"grassroots/warchest/internal/db/repositories"
	"grassroots/warchest/internal/models/dtos"
	gormModels "grassroots/warchest/internal/models/gorm"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Setup test database
func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// Auto migrate
	err = db.AutoMigrate(
		&gormModels.User{},
		&gormModels.Organization{},
		&gormModels.OrgMembership{},
		&gormModels.Fundraiser{},
		&gormModels.Donation{},
		&gormModels.Disbursement{},
		&gormModels.DisbursementItem{},
		&gormModels.Permission{},
		&gormModels.RolePermission{},
		&gormModels.UserPermission{},
		&gormModels.Candidate{},
		&gormModels.CandidateSyncHistory{},
		&gormModels.AuditLog{},
		&gormModels.PermissionAuditLog{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}

	return db
}

func newTestAudit(db *gorm.DB) *AuditService {
	return NewAuditService(repositories.NewAuditRepository(db))
}

func newTestPermissionService(db *gorm.DB) *PermissionService {
	return NewPermissionService(
		repositories.NewUserRepositoryGORM(db),
		repositories.NewMembershipRepository(db),
		repositories.NewPermissionRepository(db),
		common.NewCacheService(60, 120),
		nil,
		newTestAudit(db),
	)
}

func createTestUser(t *testing.T, db *gorm.DB, role constants.PlatformRole, status constants.UserStatus) *gormModels.User {
	user := &gormModels.User{
		Email:        strings.ToLower(role.String()) + "-" + uuid.NewString() + "@example.com",
		FullName:     "Test User",
		PlatformRole: role,
		Status:       status,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	return user
}

func createTestOrg(t *testing.T, db *gorm.DB, slug string, status constants.VerificationStatus) *gormModels.Organization {
	org := &gormModels.Organization{
		Name:               "Org " + slug,
		Slug:               slug,
		VerificationStatus: status,
		IsActive:           true,
	}
	if err := db.Create(org).Error; err != nil {
		t.Fatalf("Failed to create org: %v", err)
	}
	return org
}

func createTestMembership(t *testing.T, db *gorm.DB, userID, orgID string, role constants.OrgRole) *gormModels.OrgMembership {
	membership := &gormModels.OrgMembership{
		UserID:   userID,
		OrgID:    orgID,
		Role:     role,
		IsActive: true,
	}
	if err := db.Create(membership).Error; err != nil {
		t.Fatalf("Failed to create membership: %v", err)
	}
	return membership
}

func TestPermissionService_SuperAdminAlwaysAllowed(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestPermissionService(db)

	user := createTestUser(t, db, constants.PlatformRoleSuperAdmin, constants.UserStatusActive)

	ctx := context.Background()
	for _, perm := range constants.PermissionCatalog {
		allowed, err := svc.Resolve(ctx, user.ID, perm, nil)
		if err != nil {
			t.Fatalf("Resolve(%s) returned error: %v", perm, err)
		}
		if !allowed {
			t.Errorf("Expected super admin to hold %s", perm)
		}
	}
}

func TestPermissionService_SuspendedAlwaysDenied(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestPermissionService(db)

	// Suspension beats super admin
	user := createTestUser(t, db, constants.PlatformRoleSuperAdmin, constants.UserStatusSuspended)

	allowed, err := svc.Resolve(context.Background(), user.ID, constants.PermDonationView, nil)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if allowed {
		t.Error("Expected suspended super admin to be denied")
	}
}

func TestPermissionService_UnknownUserDenied(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestPermissionService(db)

	allowed, err := svc.Resolve(context.Background(), "no-such-user", constants.PermDonationView, nil)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if allowed {
		t.Error("Expected unknown user to be denied")
	}
}

func TestPermissionService_InvalidPermissionRejected(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestPermissionService(db)

	user := createTestUser(t, db, constants.PlatformRoleDonor, constants.UserStatusActive)

	_, err := svc.Resolve(context.Background(), user.ID, constants.Permission("not a permission"), nil)
	if err == nil {
		t.Error("Expected error for malformed permission name")
	}
}

func TestPermissionService_OwnerShortCircuit(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestPermissionService(db)

	user := createTestUser(t, db, constants.PlatformRoleDonor, constants.UserStatusActive)
	org := createTestOrg(t, db, "owner-org", constants.VerificationVerified)
	createTestMembership(t, db, user.ID, org.ID, constants.OrgRoleOwner)

	// Owners hold every org permission without explicit grants
	allowed, err := svc.Resolve(context.Background(), user.ID, constants.PermDisbursementApprove, &org.ID)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if !allowed {
		t.Error("Expected org owner to be allowed")
	}

	// Ownership of one org grants nothing globally
	allowed, err = svc.Resolve(context.Background(), user.ID, constants.PermDisbursementApprove, nil)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if allowed {
		t.Error("Expected owner to be denied outside their org scope")
	}
}

func TestPermissionService_OrgRoleDefaults(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestPermissionService(db)

	permRepo := repositories.NewPermissionRepository(db)
	if err := permRepo.SeedDefaults(context.Background()); err != nil {
		t.Fatalf("Failed to seed defaults: %v", err)
	}

	user := createTestUser(t, db, constants.PlatformRoleDonor, constants.UserStatusActive)
	org := createTestOrg(t, db, "treasury-org", constants.VerificationVerified)
	createTestMembership(t, db, user.ID, org.ID, constants.OrgRoleTreasurer)

	ctx := context.Background()

	allowed, err := svc.Resolve(ctx, user.ID, constants.PermDisbursementCreate, &org.ID)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if !allowed {
		t.Error("Expected treasurer to hold disbursement.create in their org")
	}

	allowed, err = svc.Resolve(ctx, user.ID, constants.PermFundraiserCreate, &org.ID)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if allowed {
		t.Error("Expected treasurer to be denied fundraiser.create")
	}
}

func TestPermissionService_InactiveMembershipIgnored(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestPermissionService(db)

	user := createTestUser(t, db, constants.PlatformRoleDonor, constants.UserStatusActive)
	org := createTestOrg(t, db, "left-org", constants.VerificationVerified)
	membership := createTestMembership(t, db, user.ID, org.ID, constants.OrgRoleOwner)

	if err := db.Model(membership).Update("is_active", false).Error; err != nil {
		t.Fatalf("Failed to deactivate membership: %v", err)
	}

	allowed, err := svc.Resolve(context.Background(), user.ID, constants.PermOrgManageMembers, &org.ID)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if allowed {
		t.Error("Expected deactivated member to be denied")
	}
}

func TestPermissionService_OverrideBeatsRoleDefault(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestPermissionService(db)

	permRepo := repositories.NewPermissionRepository(db)
	if err := permRepo.SeedDefaults(context.Background()); err != nil {
		t.Fatalf("Failed to seed defaults: %v", err)
	}

	user := createTestUser(t, db, constants.PlatformRoleDonor, constants.UserStatusActive)
	admin := createTestUser(t, db, constants.PlatformRoleSuperAdmin, constants.UserStatusActive)
	org := createTestOrg(t, db, "override-org", constants.VerificationVerified)
	createTestMembership(t, db, user.ID, org.ID, constants.OrgRoleAdmin)

	ctx := context.Background()

	// Role default says yes
	allowed, err := svc.Resolve(ctx, user.ID, constants.PermDonationRefund, &org.ID)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if !allowed {
		t.Error("Expected org admin to hold donation.refund by default")
	}

	// An explicit denial override shadows the role default
	_, err = svc.Grant(ctx, admin.ID, &dtos.GrantPermissionRequest{
		UserID:     user.ID,
		Permission: constants.PermDonationRefund.String(),
		OrgID:      &org.ID,
		Granted:    false,
	})
	if err != nil {
		t.Fatalf("Grant returned error: %v", err)
	}

	allowed, err = svc.Resolve(ctx, user.ID, constants.PermDonationRefund, &org.ID)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if allowed {
		t.Error("Expected denial override to beat role default")
	}
}

func TestPermissionService_OrgScopedOverrideBeatsGlobal(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestPermissionService(db)

	user := createTestUser(t, db, constants.PlatformRoleDonor, constants.UserStatusActive)
	admin := createTestUser(t, db, constants.PlatformRoleSuperAdmin, constants.UserStatusActive)
	org := createTestOrg(t, db, "scoped-org", constants.VerificationVerified)

	ctx := context.Background()

	// Global denial, org-scoped grant: the scoped row must win inside the org
	_, err := svc.Grant(ctx, admin.ID, &dtos.GrantPermissionRequest{
		UserID:     user.ID,
		Permission: constants.PermAuditView.String(),
		Granted:    false,
	})
	if err != nil {
		t.Fatalf("Grant returned error: %v", err)
	}
	_, err = svc.Grant(ctx, admin.ID, &dtos.GrantPermissionRequest{
		UserID:     user.ID,
		Permission: constants.PermAuditView.String(),
		OrgID:      &org.ID,
		Granted:    true,
	})
	if err != nil {
		t.Fatalf("Grant returned error: %v", err)
	}

	allowed, err := svc.Resolve(ctx, user.ID, constants.PermAuditView, &org.ID)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if !allowed {
		t.Error("Expected org-scoped grant to beat global denial")
	}

	allowed, err = svc.Resolve(ctx, user.ID, constants.PermAuditView, nil)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if allowed {
		t.Error("Expected global denial to hold outside the org")
	}
}

func TestPermissionService_ExpiredOverrideIgnored(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestPermissionService(db)

	user := createTestUser(t, db, constants.PlatformRoleDonor, constants.UserStatusActive)
	admin := createTestUser(t, db, constants.PlatformRoleSuperAdmin, constants.UserStatusActive)

	past := time.Now().Add(-time.Hour)
	override := &gormModels.UserPermission{
		UserID:     user.ID,
		Permission: constants.PermCandidateSync.String(),
		Granted:    true,
		ExpiresAt:  &past,
		GrantedBy:  admin.ID,
	}
	if err := db.Create(override).Error; err != nil {
		t.Fatalf("Failed to create override: %v", err)
	}

	allowed, err := svc.Resolve(context.Background(), user.ID, constants.PermCandidateSync, nil)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if allowed {
		t.Error("Expected expired override to be ignored")
	}
}

func TestPermissionService_GrantRevokeFlow(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestPermissionService(db)

	user := createTestUser(t, db, constants.PlatformRoleDonor, constants.UserStatusActive)
	admin := createTestUser(t, db, constants.PlatformRoleSuperAdmin, constants.UserStatusActive)

	ctx := context.Background()

	// Baseline denial is cached; the grant must invalidate it
	allowed, err := svc.Resolve(ctx, user.ID, constants.PermCandidateSync, nil)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if allowed {
		t.Error("Expected donor to be denied candidate.sync initially")
	}

	_, err = svc.Grant(ctx, admin.ID, &dtos.GrantPermissionRequest{
		UserID:     user.ID,
		Permission: constants.PermCandidateSync.String(),
		Granted:    true,
	})
	if err != nil {
		t.Fatalf("Grant returned error: %v", err)
	}

	allowed, err = svc.Resolve(ctx, user.ID, constants.PermCandidateSync, nil)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if !allowed {
		t.Error("Expected grant to take effect immediately")
	}

	err = svc.Revoke(ctx, admin.ID, &dtos.RevokePermissionRequest{
		UserID:     user.ID,
		Permission: constants.PermCandidateSync.String(),
	})
	if err != nil {
		t.Fatalf("Revoke returned error: %v", err)
	}

	allowed, err = svc.Resolve(ctx, user.ID, constants.PermCandidateSync, nil)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if allowed {
		t.Error("Expected revoke to take effect immediately")
	}

	// The revoked row is kept for the audit trail, not deleted
	var count int64
	if err := db.Model(&gormModels.UserPermission{}).Where("user_id = ?", user.ID).Count(&count).Error; err != nil {
		t.Fatalf("Failed to count overrides: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected override row to survive revoke, found %d rows", count)
	}

	// Both actions land in the permission audit stream
	var auditCount int64
	if err := db.Model(&gormModels.PermissionAuditLog{}).Where("user_id = ?", user.ID).Count(&auditCount).Error; err != nil {
		t.Fatalf("Failed to count permission audit rows: %v", err)
	}
	if auditCount != 2 {
		t.Errorf("Expected 2 permission audit rows, found %d", auditCount)
	}
}

func TestPermissionService_UnknownPermissionGrantRejected(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestPermissionService(db)

	admin := createTestUser(t, db, constants.PlatformRoleSuperAdmin, constants.UserStatusActive)
	user := createTestUser(t, db, constants.PlatformRoleDonor, constants.UserStatusActive)

	_, err := svc.Grant(context.Background(), admin.ID, &dtos.GrantPermissionRequest{
		UserID:     user.ID,
		Permission: "fundraiser.launch",
		Granted:    true,
	})
	if err == nil {
		t.Error("Expected grant of unknown permission to fail")
	}
}

func TestPermissionService_EffectivePermissions(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestPermissionService(db)

	permRepo := repositories.NewPermissionRepository(db)
	if err := permRepo.SeedDefaults(context.Background()); err != nil {
		t.Fatalf("Failed to seed defaults: %v", err)
	}

	user := createTestUser(t, db, constants.PlatformRoleDonor, constants.UserStatusActive)
	org := createTestOrg(t, db, "effective-org", constants.VerificationVerified)
	createTestMembership(t, db, user.ID, org.ID, constants.OrgRoleViewer)

	resp, err := svc.EffectivePermissions(context.Background(), user.ID, &org.ID)
	if err != nil {
		t.Fatalf("EffectivePermissions returned error: %v", err)
	}

	if len(resp.Permissions) != 1 || resp.Permissions[0] != constants.PermOrgViewReports.String() {
		t.Errorf("Expected viewer to hold only org.view_reports, got %v", resp.Permissions)
	}
}
