package services

import (
	"context"
	"strings"
	"testing"

	"grassroots/warchest/internal/constants"
	"grassroots/warchest/internal/db/repositories"
	"grassroots/warchest/internal/models/dtos"

	"gorm.io/gorm"
)

func newTestFundraiserService(db *gorm.DB) *FundraiserService {
	return NewFundraiserService(
		repositories.NewFundraiserRepository(db),
		repositories.NewOrgRepository(db),
		newTestAudit(db),
	)
}

func TestFundraiserService_CreateAndPublish(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestFundraiserService(db)

	user := createTestUser(t, db, constants.PlatformRoleOrgUser, constants.UserStatusActive)
	org := createTestOrg(t, db, "publish-org", constants.VerificationVerified)
	ctx := context.Background()

	fundraiser, err := svc.CreateFundraiser(ctx, user.ID, &dtos.CreateFundraiserRequest{
		OrgID:           org.ID,
		Title:           "School Board Run",
		GoalAmountCents: 250000,
	})
	if err != nil {
		t.Fatalf("CreateFundraiser returned error: %v", err)
	}
	if fundraiser.IsPublished {
		t.Error("Expected new fundraiser to start as a draft")
	}

	published, err := svc.Publish(ctx, fundraiser.ID, user.ID)
	if err != nil {
		t.Fatalf("Publish returned error: %v", err)
	}
	if !published.IsPublished {
		t.Error("Expected fundraiser to be published")
	}
	if published.PublishedAt == nil {
		t.Error("Expected published_at to be set")
	}

	// Publishing twice is a no-op, not an error
	if _, err := svc.Publish(ctx, fundraiser.ID, user.ID); err != nil {
		t.Errorf("Expected republish to be a no-op, got %v", err)
	}
}

func TestFundraiserService_PublishRequiresVerifiedOrg(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestFundraiserService(db)

	user := createTestUser(t, db, constants.PlatformRoleOrgUser, constants.UserStatusActive)
	org := createTestOrg(t, db, "unverified-publish-org", constants.VerificationPending)
	ctx := context.Background()

	// Drafts are allowed under an unverified org
	fundraiser, err := svc.CreateFundraiser(ctx, user.ID, &dtos.CreateFundraiserRequest{
		OrgID:           org.ID,
		Title:           "Early Draft",
		GoalAmountCents: 100000,
	})
	if err != nil {
		t.Fatalf("CreateFundraiser returned error: %v", err)
	}

	_, err = svc.Publish(ctx, fundraiser.ID, user.ID)
	if err == nil || !strings.Contains(err.Error(), constants.StatusOrgNotVerified) {
		t.Errorf("Expected publish to require verification, got %v", err)
	}
}

func TestFundraiserService_CreateValidation(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestFundraiserService(db)

	user := createTestUser(t, db, constants.PlatformRoleOrgUser, constants.UserStatusActive)
	org := createTestOrg(t, db, "validation-org", constants.VerificationVerified)
	ctx := context.Background()

	if _, err := svc.CreateFundraiser(ctx, user.ID, &dtos.CreateFundraiserRequest{
		OrgID: org.ID, GoalAmountCents: 1000,
	}); err == nil {
		t.Error("Expected missing title to fail")
	}

	if _, err := svc.CreateFundraiser(ctx, user.ID, &dtos.CreateFundraiserRequest{
		OrgID: org.ID, Title: "No Goal",
	}); err == nil {
		t.Error("Expected missing goal to fail")
	}
}

func TestFundraiserService_UnpublishAndEdit(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestFundraiserService(db)

	user := createTestUser(t, db, constants.PlatformRoleOrgUser, constants.UserStatusActive)
	org := createTestOrg(t, db, "edit-org", constants.VerificationVerified)
	fundraiser := createTestFundraiser(t, db, org.ID, user.ID, true)
	ctx := context.Background()

	unpublished, err := svc.Unpublish(ctx, fundraiser.ID, user.ID)
	if err != nil {
		t.Fatalf("Unpublish returned error: %v", err)
	}
	if unpublished.IsPublished {
		t.Error("Expected fundraiser to be unpublished")
	}

	edited, err := svc.Edit(ctx, fundraiser.ID, user.ID, &dtos.CreateFundraiserRequest{
		Title: "Renamed Run",
	})
	if err != nil {
		t.Fatalf("Edit returned error: %v", err)
	}
	if edited.Title != "Renamed Run" {
		t.Errorf("Expected title update, got %s", edited.Title)
	}
	// Fields left empty in the request stay untouched
	if edited.GoalAmountCents != fundraiser.GoalAmountCents {
		t.Errorf("Expected goal unchanged, got %d", edited.GoalAmountCents)
	}
}
