package workers

import (
	"context"
	"testing"

	"grassroots/warchest/internal/constants"
	"grassroots/warchest/internal/db/repositories"
	gormModels "grassroots/warchest/internal/models/gorm"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupWorkerTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(&gormModels.Organization{}, &gormModels.Fundraiser{}, &gormModels.Donation{}); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}

	return db
}

func TestReconciliationWorker_Sweep(t *testing.T) {
	db := setupWorkerTestDB(t)

	org := gormModels.Organization{
		Name: "Sweep Org", Slug: "sweep-org",
		VerificationStatus: constants.VerificationVerified, IsActive: true,
	}
	if err := db.Create(&org).Error; err != nil {
		t.Fatalf("Failed to create org: %v", err)
	}

	// A fundraiser whose stored total drifted from its completed donations
	drifted := gormModels.Fundraiser{
		OrgID: org.ID, Title: "Drifted", GoalAmountCents: 100000,
		CurrentAmountCents: 999, IsPublished: true, CreatedBy: "op",
	}
	if err := db.Create(&drifted).Error; err != nil {
		t.Fatalf("Failed to create fundraiser: %v", err)
	}
	// And one whose total is already correct
	correct := gormModels.Fundraiser{
		OrgID: org.ID, Title: "Correct", GoalAmountCents: 100000,
		CurrentAmountCents: 4000, IsPublished: true, CreatedBy: "op",
	}
	if err := db.Create(&correct).Error; err != nil {
		t.Fatalf("Failed to create fundraiser: %v", err)
	}

	donations := []gormModels.Donation{
		{FundraiserID: drifted.ID, AmountCents: 5000, Currency: "USD", Status: constants.DonationCompleted},
		{FundraiserID: drifted.ID, AmountCents: 2000, Currency: "USD", Status: constants.DonationCompleted},
		{FundraiserID: drifted.ID, AmountCents: 9000, Currency: "USD", Status: constants.DonationPending},
		{FundraiserID: correct.ID, AmountCents: 4000, Currency: "USD", Status: constants.DonationCompleted},
	}
	for i := range donations {
		if err := db.Create(&donations[i]).Error; err != nil {
			t.Fatalf("Failed to create donation: %v", err)
		}
	}

	worker := NewReconciliationWorker(
		db,
		repositories.NewFundraiserRepository(db),
		repositories.NewDonationRepository(db),
	)

	corrected := worker.Sweep(context.Background())
	if corrected != 1 {
		t.Errorf("Expected 1 correction, got %d", corrected)
	}

	var stored gormModels.Fundraiser
	if err := db.Where("id = ?", drifted.ID).First(&stored).Error; err != nil {
		t.Fatalf("Failed to reload fundraiser: %v", err)
	}
	// Only completed donations count toward the derived total
	if stored.CurrentAmountCents != 7000 {
		t.Errorf("Expected corrected total 7000, got %d", stored.CurrentAmountCents)
	}

	// A second sweep finds nothing to fix
	if corrected := worker.Sweep(context.Background()); corrected != 0 {
		t.Errorf("Expected idempotent sweep, got %d corrections", corrected)
	}
}
