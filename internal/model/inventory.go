package model

import "github.com/google/uuid"

// BeadingProfile is a moulding the user keeps in stock.
type BeadingProfile struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Width       float64 `json:"width"`        // Face width of the strip (mm)
	StockLength float64 `json:"stock_length"` // Length it is sold in (mm)
	Material    string  `json:"material"`
}

// NewBeadingProfile creates a new BeadingProfile with a generated ID.
func NewBeadingProfile(name string, width, stockLength float64, material string) BeadingProfile {
	return BeadingProfile{
		ID:          uuid.New().String()[:8],
		Name:        name,
		Width:       width,
		StockLength: stockLength,
		Material:    material,
	}
}

// ApplyToConfig copies the profile's face width into the door configuration.
func (bp BeadingProfile) ApplyToConfig(c *DoorConfig) {
	c.BeadingWidth = bp.Width
}

// Inventory holds the user's saved beading profiles.
type Inventory struct {
	Beadings []BeadingProfile `json:"beadings"`
}

// DefaultInventory returns an inventory populated with common mouldings.
func DefaultInventory() Inventory {
	return Inventory{
		Beadings: []BeadingProfile{
			NewBeadingProfile("Ogee 20mm Pine", 20, 2400, "Pine"),
			NewBeadingProfile("Ogee 15mm Pine", 15, 2400, "Pine"),
			NewBeadingProfile("Bolection 30mm MDF", 30, 2440, "MDF"),
			NewBeadingProfile("Astragal 12mm Hardwood", 12, 2100, "Hardwood"),
			NewBeadingProfile("Square 25mm MDF", 25, 2440, "MDF"),
		},
	}
}

// FindBeadingByID returns a pointer to the profile with the given ID, or nil.
func (inv *Inventory) FindBeadingByID(id string) *BeadingProfile {
	for i := range inv.Beadings {
		if inv.Beadings[i].ID == id {
			return &inv.Beadings[i]
		}
	}
	return nil
}

// FindBeadingByName returns a pointer to the first profile with the given name, or nil.
func (inv *Inventory) FindBeadingByName(name string) *BeadingProfile {
	for i := range inv.Beadings {
		if inv.Beadings[i].Name == name {
			return &inv.Beadings[i]
		}
	}
	return nil
}

// BeadingNames returns the profile names in inventory order.
func (inv *Inventory) BeadingNames() []string {
	names := make([]string, len(inv.Beadings))
	for i, b := range inv.Beadings {
		names[i] = b.Name
	}
	return names
}
