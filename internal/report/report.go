// Package report formats a computed door as a plain-text cut list.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/piwi3910/DoorBeading/internal/engine"
	"github.com/piwi3910/DoorBeading/internal/model"
)

// Options selects the optional sections of a report.
type Options struct {
	Estimate   *model.MaterialEstimate   // Purchasing section
	Comparison []engine.ComparisonResult // What-if table
}

// Write renders the report for one door to w.
func Write(w io.Writer, door model.Door, res model.CutResult, opts Options) error {
	_, err := io.WriteString(w, Format(door, res, opts))
	return err
}

// Format renders the report for one door. Invalid results print their
// errors instead of a cut list.
func Format(door model.Door, res model.CutResult, opts Options) string {
	var b strings.Builder
	c := door.Config

	title := "DOOR BEADING CUT LIST"
	if door.Name != "" {
		title += " - " + door.Name
	}
	b.WriteString(title + "\n")
	b.WriteString(strings.Repeat("=", len(title)) + "\n")
	fmt.Fprintf(&b, "Door:    %s x %s mm, handle %s\n", num(c.DoorWidth), num(c.DoorHeight), c.HandleSide)
	fmt.Fprintf(&b, "Margins: top %s, bottom %s, left %s, right %s mm\n",
		num(c.TopMargin), num(c.BottomMargin), num(c.LeftMargin), num(c.RightMargin))
	fmt.Fprintf(&b, "Gaps:    horizontal %s, vertical %s mm\n", num(c.HorizontalGap), num(c.VerticalGap))
	fmt.Fprintf(&b, "Beading: %s mm, rows %s/%s %%\n", num(c.BeadingWidth), num(c.TopPanelRatio), num(c.BottomPanelRatio()))

	if !res.IsValid {
		b.WriteString("\nCONFIGURATION INVALID - no cut list produced\n")
		for _, e := range res.Errors {
			fmt.Fprintf(&b, "  - %s\n", e)
		}
		writeWarnings(&b, res)
		return b.String()
	}

	b.WriteString("\nMDF PANELS\n")
	for _, p := range res.PanelPieces() {
		fmt.Fprintf(&b, "  %-18s %7.1f x %7.1f mm  x%d\n", p.Label, p.Width, p.Height, p.Quantity)
	}
	fmt.Fprintf(&b, "  Panel-to-beading gap: %.1f mm\n", res.PanelBeadingGap)

	b.WriteString("\nBEADING (45 deg mitre, long point / short point)\n")
	for _, p := range res.BeadingPieces() {
		fmt.Fprintf(&b, "  %-18s %7.1f / %7.1f mm  x%d\n", p.Label, p.LongPoint, p.ShortPoint, p.Quantity)
	}
	fmt.Fprintf(&b, "  Total beading (long point): %.1f mm\n", res.TotalBeadingLength())

	b.WriteString("\nFITTING PINS (from door top-left)\n")
	for _, u := range res.UnitPositions {
		fmt.Fprintf(&b, "  %-13s pin X %7.1f  Y %7.1f   frame %.1f-%.1f at Y %.1f\n",
			u.Label, u.PinX, u.PinY, u.BeadingLeftX, u.BeadingRightX, u.BeadingY)
	}

	if est := opts.Estimate; est != nil {
		b.WriteString("\nMATERIALS\n")
		fmt.Fprintf(&b, "  Beading: %.2f m, %d x %s mm lengths (%d with %s%% waste)\n",
			est.TotalBeadingM, est.LengthsNeededMin, num(est.StockLength), est.LengthsWithWaste, num(est.WastePercent))
		if est.PieceExceedsStock {
			fmt.Fprintf(&b, "  Longest strip %.1f mm is longer than one stock length\n", est.LongestPiece)
		}
		fmt.Fprintf(&b, "  MDF: %d panels, %.3f m2\n", est.PanelCount, est.PanelAreaM2)
	}

	writeWarnings(&b, res)

	if len(opts.Comparison) > 0 {
		b.WriteString("\nALTERNATIVES\n")
		fmt.Fprintf(&b, "  %-32s %-7s %7s %9s %9s %10s\n", "Scenario", "Valid", "Gap", "Top", "Bottom", "Beading")
		for _, cr := range opts.Comparison {
			valid := "yes"
			if !cr.IsValid {
				valid = "NO"
			}
			fmt.Fprintf(&b, "  %-32s %-7s %7.1f %9.1f %9.1f %10.1f\n",
				cr.Scenario.Name, valid, cr.PanelBeadingGap, cr.TopPanelHeight, cr.BottomPanelHeight, cr.TotalBeadingLength)
		}
	}

	return b.String()
}

func writeWarnings(b *strings.Builder, res model.CutResult) {
	if len(res.HandleWarnings) == 0 {
		return
	}
	b.WriteString("\nWARNINGS\n")
	for _, w := range res.HandleWarnings {
		fmt.Fprintf(b, "  ! %s\n", w)
	}
}

// num prints an input measurement without trailing zeros.
func num(v float64) string {
	s := fmt.Sprintf("%.1f", model.Round1(v))
	return strings.TrimSuffix(s, ".0")
}
