package constants

import "testing"

func TestDonationStatusTransitions(t *testing.T) {
	cases := []struct {
		from    DonationStatus
		to      DonationStatus
		allowed bool
	}{
		{DonationPending, DonationProcessing, true},
		{DonationPending, DonationFailed, true},
		{DonationPending, DonationCancelled, true},
		{DonationPending, DonationCompleted, false},
		{DonationPending, DonationRefunded, false},
		{DonationProcessing, DonationCompleted, true},
		{DonationProcessing, DonationFailed, true},
		{DonationProcessing, DonationCancelled, true},
		{DonationProcessing, DonationPending, false},
		{DonationCompleted, DonationRefunded, true},
		{DonationCompleted, DonationPending, false},
		{DonationCompleted, DonationFailed, false},
		{DonationFailed, DonationCompleted, false},
		{DonationCancelled, DonationProcessing, false},
		{DonationRefunded, DonationCompleted, false},
	}

	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.allowed {
			t.Errorf("%s -> %s: expected %v, got %v", tc.from, tc.to, tc.allowed, got)
		}
	}
}

func TestDonationStatusIsTerminal(t *testing.T) {
	terminal := []DonationStatus{DonationCompleted, DonationFailed, DonationCancelled, DonationRefunded}
	for _, s := range terminal {
		if !s.IsTerminal() {
			t.Errorf("Expected %s to be terminal", s)
		}
	}

	for _, s := range []DonationStatus{DonationPending, DonationProcessing} {
		if s.IsTerminal() {
			t.Errorf("Expected %s to be non-terminal", s)
		}
	}
}

func TestDisbursementStatusTransitions(t *testing.T) {
	cases := []struct {
		from    DisbursementStatus
		to      DisbursementStatus
		allowed bool
	}{
		{DisbursementPending, DisbursementApproved, true},
		{DisbursementPending, DisbursementRejected, true},
		{DisbursementPending, DisbursementProcessing, false},
		{DisbursementPending, DisbursementCompleted, false},
		{DisbursementApproved, DisbursementProcessing, true},
		{DisbursementApproved, DisbursementCompleted, false},
		{DisbursementApproved, DisbursementRejected, false},
		{DisbursementProcessing, DisbursementCompleted, true},
		{DisbursementProcessing, DisbursementFailed, true},
		{DisbursementRejected, DisbursementApproved, false},
		{DisbursementCompleted, DisbursementFailed, false},
		{DisbursementFailed, DisbursementProcessing, false},
	}

	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.allowed {
			t.Errorf("%s -> %s: expected %v, got %v", tc.from, tc.to, tc.allowed, got)
		}
	}
}

func TestPermissionValidate(t *testing.T) {
	for _, p := range PermissionCatalog {
		if err := p.Validate(); err != nil {
			t.Errorf("Catalog permission %s failed validation: %v", p, err)
		}
	}

	bad := []Permission{"", "donationview", "donation.view.all", "Donation.View", "donation view"}
	for _, p := range bad {
		if err := p.Validate(); err == nil {
			t.Errorf("Expected %q to fail validation", p)
		}
	}
}

func TestRoleIsValid(t *testing.T) {
	if !OrgRoleTreasurer.IsValid() {
		t.Error("Expected treasurer to be a valid org role")
	}
	if OrgRole("captain").IsValid() {
		t.Error("Expected unknown org role to be invalid")
	}
	if !PlatformRoleSuperAdmin.IsValid() {
		t.Error("Expected super_admin to be a valid platform role")
	}
	if PlatformRole("demigod").IsValid() {
		t.Error("Expected unknown platform role to be invalid")
	}
}
