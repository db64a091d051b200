// Package export writes computed doors to PDF cut sheets, QR-coded piece
// labels, Excel workbooks and DXF drawings.
package export

import (
	"errors"
	"fmt"

	"github.com/piwi3910/DoorBeading/internal/model"
)

// ErrInvalidResult is returned when asked to export a door whose
// configuration produced blocking errors.
var ErrInvalidResult = errors.New("configuration is invalid, nothing to export")

func checkValid(door model.Door, res model.CutResult) error {
	if res.IsValid {
		return nil
	}
	if door.Name != "" {
		return fmt.Errorf("door %q: %w", door.Name, ErrInvalidResult)
	}
	return ErrInvalidResult
}
