package services

import (
	"context"
	"testing"

	"grassroots/warchest/internal/constants"
	"grassroots/warchest/internal/models/dtos"
	gormModels "grassroots/warchest/internal/models/gorm"
)

func TestRegistrationService_RegisterUser_Success(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRegistrationService(db, newTestAudit(db))

	resp, err := svc.RegisterUser(context.Background(), &dtos.RegisterUserRequest{
		Email:    "donor@example.com",
		FullName: "Dana Donor",
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !resp.Status {
		t.Error("Expected status true")
	}
	if len(resp.Steps) != 2 {
		t.Errorf("Expected 2 steps, got %d", len(resp.Steps))
	}
	for i, step := range resp.Steps {
		if !step.Status {
			t.Errorf("Step %d (%s) failed: %s", i, step.Name, step.Message)
		}
	}

	var user gormModels.User
	if err := db.Where("email = ?", "donor@example.com").First(&user).Error; err != nil {
		t.Fatalf("User not found in database: %v", err)
	}
	if user.Status != constants.UserStatusPendingVerification {
		t.Errorf("Expected pending_verification status, got %s", user.Status)
	}
	if user.PlatformRole != constants.PlatformRoleDonor {
		t.Errorf("Expected donor role, got %s", user.PlatformRole)
	}
}

func TestRegistrationService_RegisterUser_DuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRegistrationService(db, newTestAudit(db))

	existing := gormModels.User{
		Email:    "donor@example.com",
		FullName: "First Donor",
	}
	if err := db.Create(&existing).Error; err != nil {
		t.Fatalf("Failed to seed user: %v", err)
	}

	resp, err := svc.RegisterUser(context.Background(), &dtos.RegisterUserRequest{
		Email:    "donor@example.com",
		FullName: "Second Donor",
	})
	if err == nil {
		t.Fatal("Expected duplicate registration to fail")
	}
	if resp.Status {
		t.Error("Expected status false")
	}
	if len(resp.Steps) != 1 || resp.Steps[0].Status {
		t.Error("Expected the duplicate_check step to fail")
	}
}

func TestRegistrationService_CompleteVerification(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRegistrationService(db, newTestAudit(db))

	user := createTestUser(t, db, constants.PlatformRoleDonor, constants.UserStatusPendingVerification)

	verified, err := svc.CompleteVerification(context.Background(), user.ID, &dtos.VerifyUserRequest{
		AddressLine1: "1 Main St",
		City:         "Montpelier",
		State:        "VT",
		PostalCode:   "05601",
		Employer:     "Self",
		Occupation:   "Farmer",
		IsUSCitizen:  true,
	})
	if err != nil {
		t.Fatalf("CompleteVerification returned error: %v", err)
	}

	if verified.Status != constants.UserStatusActive {
		t.Errorf("Expected active status, got %s", verified.Status)
	}
	if verified.AddressLine1 == nil || *verified.AddressLine1 != "1 Main St" {
		t.Error("Expected address to be stored")
	}
	if verified.AddressLine2 != nil {
		t.Error("Expected empty address_line2 to stay NULL")
	}
	if !verified.IsUSCitizen {
		t.Error("Expected citizenship flag to be stored")
	}
}

func TestRegistrationService_CompleteVerification_SuspendedRejected(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRegistrationService(db, newTestAudit(db))

	user := createTestUser(t, db, constants.PlatformRoleDonor, constants.UserStatusSuspended)

	_, err := svc.CompleteVerification(context.Background(), user.ID, &dtos.VerifyUserRequest{
		AddressLine1: "1 Main St",
	})
	if err == nil {
		t.Error("Expected verification of suspended account to fail")
	}
}

func TestRegistrationService_RegisterOrganization(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRegistrationService(db, newTestAudit(db))

	owner := createTestUser(t, db, constants.PlatformRoleOrgUser, constants.UserStatusActive)

	resp, err := svc.RegisterOrganization(context.Background(), owner.ID, &dtos.RegisterOrgRequest{
		Name:           "Green Mountain PAC",
		Slug:           "green-mountain-pac",
		FECCommitteeID: "C00123456",
	})
	if err != nil {
		t.Fatalf("RegisterOrganization returned error: %v", err)
	}
	if !resp.Status {
		t.Error("Expected status true")
	}

	var org gormModels.Organization
	if err := db.Where("slug = ?", "green-mountain-pac").First(&org).Error; err != nil {
		t.Fatalf("Organization not found: %v", err)
	}
	if org.VerificationStatus != constants.VerificationPending {
		t.Errorf("Expected pending verification, got %s", org.VerificationStatus)
	}
	if org.FECCommitteeID == nil || *org.FECCommitteeID != "C00123456" {
		t.Error("Expected FEC committee id to be stored")
	}

	// The caller becomes owner in the same transaction
	var membership gormModels.OrgMembership
	if err := db.Where("user_id = ? AND org_id = ?", owner.ID, org.ID).First(&membership).Error; err != nil {
		t.Fatalf("Owner membership not found: %v", err)
	}
	if membership.Role != constants.OrgRoleOwner {
		t.Errorf("Expected owner role, got %s", membership.Role)
	}
	if !membership.IsActive {
		t.Error("Expected membership to be active")
	}
}

func TestRegistrationService_RegisterOrganization_DuplicateSlug(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRegistrationService(db, newTestAudit(db))

	owner := createTestUser(t, db, constants.PlatformRoleOrgUser, constants.UserStatusActive)
	createTestOrg(t, db, "taken-slug", constants.VerificationPending)

	resp, err := svc.RegisterOrganization(context.Background(), owner.ID, &dtos.RegisterOrgRequest{
		Name: "Another Org",
		Slug: "taken-slug",
	})
	if err == nil {
		t.Fatal("Expected duplicate slug to fail")
	}
	if resp.Status {
		t.Error("Expected status false")
	}
	if len(resp.Steps) != 1 || resp.Steps[0].Status {
		t.Error("Expected the slug_check step to fail")
	}
}
