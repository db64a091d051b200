package model

import (
	"fmt"
	"testing"
)

func TestDefaultAppConfigMatchesDefaultDoor(t *testing.T) {
	cfg := DefaultAppConfig()

	if cfg.DefaultDoor != DefaultDoorConfig() {
		t.Errorf("default door mismatch: %+v", cfg.DefaultDoor)
	}
	if cfg.BeadingStockLength != 2400 {
		t.Errorf("expected 2400mm stock length, got %f", cfg.BeadingStockLength)
	}
	if cfg.RecentJobs == nil {
		t.Error("RecentJobs should not be nil")
	}
}

func TestAddRecentJob(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.AddRecentJob("a.json")
	cfg.AddRecentJob("b.json")
	cfg.AddRecentJob("a.json")

	if len(cfg.RecentJobs) != 2 || cfg.RecentJobs[0] != "a.json" || cfg.RecentJobs[1] != "b.json" {
		t.Errorf("unexpected recent list %v", cfg.RecentJobs)
	}

	for i := 0; i < MaxRecentJobs+5; i++ {
		cfg.AddRecentJob(fmt.Sprintf("job%d.json", i))
	}
	if len(cfg.RecentJobs) != MaxRecentJobs {
		t.Errorf("expected %d recent jobs, got %d", MaxRecentJobs, len(cfg.RecentJobs))
	}
}
