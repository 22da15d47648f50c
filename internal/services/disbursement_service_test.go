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

func newTestDisbursementService(db *gorm.DB) *DisbursementService {
	return NewDisbursementService(
		db,
		repositories.NewDisbursementRepository(db),
		repositories.NewDonationRepository(db),
		repositories.NewFundraiserRepository(db),
		repositories.NewOrgRepository(db),
		nil,
		newTestAudit(db),
	)
}

func createCompletedDonation(t *testing.T, db *gorm.DB, fundraiserID string, amountCents int64) *gormModels.Donation {
	donation := &gormModels.Donation{
		FundraiserID: fundraiserID,
		AmountCents:  amountCents,
		Currency:     "USD",
		Status:       constants.DonationCompleted,
	}
	if err := db.Create(donation).Error; err != nil {
		t.Fatalf("Failed to create donation: %v", err)
	}
	return donation
}

func disbursementFixture(t *testing.T, db *gorm.DB) (*gormModels.User, *gormModels.User, *gormModels.Organization, *gormModels.Fundraiser) {
	creator := createTestUser(t, db, constants.PlatformRoleOrgUser, constants.UserStatusActive)
	approver := createTestUser(t, db, constants.PlatformRoleOrgUser, constants.UserStatusActive)
	org := createTestOrg(t, db, "payout-org", constants.VerificationVerified)
	fundraiser := createTestFundraiser(t, db, org.ID, creator.ID, true)
	return creator, approver, org, fundraiser
}

func TestDisbursementService_CreateDisbursement(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestDisbursementService(db)

	creator, _, org, fundraiser := disbursementFixture(t, db)
	first := createCompletedDonation(t, db, fundraiser.ID, 5000)
	second := createCompletedDonation(t, db, fundraiser.ID, 3000)

	disbursement, err := svc.CreateDisbursement(context.Background(), creator.ID, &dtos.CreateDisbursementRequest{
		OrgID:       org.ID,
		DonationIDs: []string{first.ID, second.ID},
		Notes:       "Q3 payout",
	})
	if err != nil {
		t.Fatalf("CreateDisbursement returned error: %v", err)
	}

	if disbursement.AmountCents != 8000 {
		t.Errorf("Expected amount 8000, got %d", disbursement.AmountCents)
	}
	if disbursement.Status != constants.DisbursementPending {
		t.Errorf("Expected pending status, got %s", disbursement.Status)
	}
	if disbursement.CreatedBy != creator.ID {
		t.Errorf("Expected created_by %s, got %s", creator.ID, disbursement.CreatedBy)
	}

	var items int64
	if err := db.Model(&gormModels.DisbursementItem{}).Where("disbursement_id = ?", disbursement.ID).Count(&items).Error; err != nil {
		t.Fatalf("Failed to count items: %v", err)
	}
	if items != 2 {
		t.Errorf("Expected 2 disbursement items, got %d", items)
	}
}

func TestDisbursementService_CreateDisbursement_Validation(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestDisbursementService(db)

	creator, _, org, fundraiser := disbursementFixture(t, db)
	ctx := context.Background()

	// Empty batch
	if _, err := svc.CreateDisbursement(ctx, creator.ID, &dtos.CreateDisbursementRequest{
		OrgID: org.ID,
	}); err == nil {
		t.Error("Expected empty batch to fail")
	}

	// Pending donation cannot be paid out
	pending := &gormModels.Donation{
		FundraiserID: fundraiser.ID,
		AmountCents:  1000,
		Currency:     "USD",
		Status:       constants.DonationPending,
	}
	if err := db.Create(pending).Error; err != nil {
		t.Fatalf("Failed to create donation: %v", err)
	}
	if _, err := svc.CreateDisbursement(ctx, creator.ID, &dtos.CreateDisbursementRequest{
		OrgID:       org.ID,
		DonationIDs: []string{pending.ID},
	}); err == nil {
		t.Error("Expected non-completed donation to fail")
	}

	// Donation belonging to another org
	otherOrg := createTestOrg(t, db, "other-payout-org", constants.VerificationVerified)
	otherFundraiser := createTestFundraiser(t, db, otherOrg.ID, creator.ID, true)
	foreign := createCompletedDonation(t, db, otherFundraiser.ID, 1000)
	if _, err := svc.CreateDisbursement(ctx, creator.ID, &dtos.CreateDisbursementRequest{
		OrgID:       org.ID,
		DonationIDs: []string{foreign.ID},
	}); err == nil {
		t.Error("Expected cross-org donation to fail")
	}

	// Unverified org cannot receive payouts
	pendingOrg := createTestOrg(t, db, "pending-payout-org", constants.VerificationPending)
	pendingOrgFundraiser := createTestFundraiser(t, db, pendingOrg.ID, creator.ID, true)
	ok := createCompletedDonation(t, db, pendingOrgFundraiser.ID, 1000)
	if _, err := svc.CreateDisbursement(ctx, creator.ID, &dtos.CreateDisbursementRequest{
		OrgID:       pendingOrg.ID,
		DonationIDs: []string{ok.ID},
	}); err == nil {
		t.Error("Expected unverified org to fail")
	}
}

func TestDisbursementService_DonationPaidOutOnce(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestDisbursementService(db)

	creator, _, org, fundraiser := disbursementFixture(t, db)
	donation := createCompletedDonation(t, db, fundraiser.ID, 5000)
	ctx := context.Background()

	if _, err := svc.CreateDisbursement(ctx, creator.ID, &dtos.CreateDisbursementRequest{
		OrgID:       org.ID,
		DonationIDs: []string{donation.ID},
	}); err != nil {
		t.Fatalf("First disbursement failed: %v", err)
	}

	_, err := svc.CreateDisbursement(ctx, creator.ID, &dtos.CreateDisbursementRequest{
		OrgID:       org.ID,
		DonationIDs: []string{donation.ID},
	})
	if err == nil {
		t.Fatal("Expected second disbursement of the same donation to fail")
	}
	if !strings.Contains(err.Error(), "already disbursed") {
		t.Errorf("Expected already-disbursed error, got %v", err)
	}
}

func TestDisbursementService_TwoPersonRule(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestDisbursementService(db)

	creator, approver, org, fundraiser := disbursementFixture(t, db)
	donation := createCompletedDonation(t, db, fundraiser.ID, 5000)
	ctx := context.Background()

	disbursement, err := svc.CreateDisbursement(ctx, creator.ID, &dtos.CreateDisbursementRequest{
		OrgID:       org.ID,
		DonationIDs: []string{donation.ID},
	})
	if err != nil {
		t.Fatalf("CreateDisbursement returned error: %v", err)
	}

	// Creator cannot approve their own payout
	_, err = svc.Approve(ctx, disbursement.ID, creator.ID)
	if err == nil || !strings.Contains(err.Error(), constants.MsgSelfApproval) {
		t.Errorf("Expected self-approval to be rejected, got %v", err)
	}

	approved, err := svc.Approve(ctx, disbursement.ID, approver.ID)
	if err != nil {
		t.Fatalf("Approve returned error: %v", err)
	}
	if approved.Status != constants.DisbursementApproved {
		t.Errorf("Expected approved status, got %s", approved.Status)
	}
	if approved.ApprovedBy == nil || *approved.ApprovedBy != approver.ID {
		t.Error("Expected approved_by to record the approver")
	}
	if approved.ApprovedAt == nil {
		t.Error("Expected approved_at to be set")
	}
}

func TestDisbursementService_StatusFlow(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestDisbursementService(db)

	creator, approver, org, fundraiser := disbursementFixture(t, db)
	donation := createCompletedDonation(t, db, fundraiser.ID, 5000)
	ctx := context.Background()

	disbursement, err := svc.CreateDisbursement(ctx, creator.ID, &dtos.CreateDisbursementRequest{
		OrgID:       org.ID,
		DonationIDs: []string{donation.ID},
	})
	if err != nil {
		t.Fatalf("CreateDisbursement returned error: %v", err)
	}

	// pending cannot go straight to completed
	_, err = svc.MarkCompleted(ctx, disbursement.ID, approver.ID)
	if err == nil || !strings.Contains(err.Error(), constants.MsgBadTransition) {
		t.Errorf("Expected bad transition error, got %v", err)
	}

	if _, err := svc.Approve(ctx, disbursement.ID, approver.ID); err != nil {
		t.Fatalf("Approve returned error: %v", err)
	}
	if _, err := svc.MarkProcessing(ctx, disbursement.ID, approver.ID); err != nil {
		t.Fatalf("MarkProcessing returned error: %v", err)
	}
	final, err := svc.MarkCompleted(ctx, disbursement.ID, approver.ID)
	if err != nil {
		t.Fatalf("MarkCompleted returned error: %v", err)
	}
	if final.Status != constants.DisbursementCompleted {
		t.Errorf("Expected completed status, got %s", final.Status)
	}

	// completed is terminal
	if _, err := svc.MarkFailed(ctx, disbursement.ID, approver.ID); err == nil {
		t.Error("Expected transition out of completed to fail")
	}
}

func TestDisbursementService_Reject(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestDisbursementService(db)

	creator, approver, org, fundraiser := disbursementFixture(t, db)
	donation := createCompletedDonation(t, db, fundraiser.ID, 5000)
	ctx := context.Background()

	disbursement, err := svc.CreateDisbursement(ctx, creator.ID, &dtos.CreateDisbursementRequest{
		OrgID:       org.ID,
		DonationIDs: []string{donation.ID},
	})
	if err != nil {
		t.Fatalf("CreateDisbursement returned error: %v", err)
	}

	rejected, err := svc.Reject(ctx, disbursement.ID, approver.ID)
	if err != nil {
		t.Fatalf("Reject returned error: %v", err)
	}
	if rejected.Status != constants.DisbursementRejected {
		t.Errorf("Expected rejected status, got %s", rejected.Status)
	}

	// rejected is terminal
	if _, err := svc.Approve(ctx, disbursement.ID, approver.ID); err == nil {
		t.Error("Expected approval after rejection to fail")
	}
}
