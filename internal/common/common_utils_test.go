package common

import (
	"errors"
	"testing"
	"time"
)

func TestMonthPartitionKey(t *testing.T) {
	cases := []struct {
		in   time.Time
		want string
	}{
		{time.Date(2026, 7, 15, 12, 0, 0, 0, time.UTC), "2026-07"},
		{time.Date(2026, 12, 31, 23, 59, 59, 0, time.UTC), "2026-12"},
		// Local time just before midnight on the last day of the month is
		// already next month in UTC
		{time.Date(2026, 1, 31, 23, 30, 0, 0, time.FixedZone("EST", -5*3600)), "2026-02"},
	}

	for _, tc := range cases {
		if got := MonthPartitionKey(tc.in); got != tc.want {
			t.Errorf("MonthPartitionKey(%v): expected %s, got %s", tc.in, tc.want, got)
		}
	}
}

func TestCacheService_DeletePrefix(t *testing.T) {
	cs := NewCacheService(60, 120)

	cs.Set("PERM_user1_donation.view_global", true, time.Minute)
	cs.Set("PERM_user1_audit.view_org-a", false, time.Minute)
	cs.Set("PERM_user2_donation.view_global", true, time.Minute)

	cs.DeletePrefix("PERM_user1_")

	if _, found := cs.Get("PERM_user1_donation.view_global"); found {
		t.Error("Expected user1 global decision to be dropped")
	}
	if _, found := cs.Get("PERM_user1_audit.view_org-a"); found {
		t.Error("Expected user1 org decision to be dropped")
	}
	if _, found := cs.Get("PERM_user2_donation.view_global"); !found {
		t.Error("Expected user2 decision to survive")
	}
}

func TestCacheService_GetOrSet(t *testing.T) {
	cs := NewCacheService(60, 120)

	calls := 0
	loader := func() (any, error) {
		calls++
		return int64(42), nil
	}

	val, err := cs.GetOrSet("total", time.Minute, loader)
	if err != nil {
		t.Fatalf("GetOrSet returned error: %v", err)
	}
	if val.(int64) != 42 {
		t.Errorf("Expected 42, got %v", val)
	}

	if _, err := cs.GetOrSet("total", time.Minute, loader); err != nil {
		t.Fatalf("GetOrSet returned error: %v", err)
	}
	if calls != 1 {
		t.Errorf("Expected loader to run once, ran %d times", calls)
	}

	// Loader failures are not cached
	boom := errors.New("db down")
	if _, err := cs.GetOrSet("broken", time.Minute, func() (any, error) { return nil, boom }); err == nil {
		t.Error("Expected loader error to surface")
	}
	if _, found := cs.Get("broken"); found {
		t.Error("Expected failed load to leave no cache entry")
	}
}
