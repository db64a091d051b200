package model

import "testing"

func TestDefaultInventoryBeadings(t *testing.T) {
	inv := DefaultInventory()
	if len(inv.Beadings) == 0 {
		t.Fatal("expected default beading profiles")
	}
	for _, b := range inv.Beadings {
		if b.ID == "" || b.Width <= 0 || b.StockLength <= 0 {
			t.Errorf("bad default profile %+v", b)
		}
	}
	if len(inv.BeadingNames()) != len(inv.Beadings) {
		t.Error("names should match profiles")
	}
}

func TestInventoryFindBeading(t *testing.T) {
	inv := DefaultInventory()

	b := inv.FindBeadingByName("Bolection 30mm MDF")
	if b == nil {
		t.Fatal("expected to find Bolection 30mm MDF")
	}
	if b.Width != 30 {
		t.Errorf("expected width 30, got %f", b.Width)
	}
	if inv.FindBeadingByID(b.ID) != b {
		t.Error("FindBeadingByID should return the same profile")
	}
	if inv.FindBeadingByName("Nonexistent") != nil {
		t.Error("expected nil for missing profile")
	}
	if inv.FindBeadingByID("nope") != nil {
		t.Error("expected nil for missing ID")
	}
}

func TestBeadingProfileApplyToConfig(t *testing.T) {
	cfg := DefaultDoorConfig()
	NewBeadingProfile("Astragal", 12, 2100, "Hardwood").ApplyToConfig(&cfg)
	if cfg.BeadingWidth != 12 {
		t.Errorf("expected beading width 12, got %f", cfg.BeadingWidth)
	}
}
