// Package cli parses the doorbeading command line.
package cli

import (
	"errors"
	"flag"
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/piwi3910/DoorBeading/internal/model"
	"github.com/piwi3910/DoorBeading/internal/project"
	"github.com/piwi3910/DoorBeading/internal/schematic"
)

// Version is stamped at build time with -ldflags "-X .../cli.Version=...".
var Version = "dev"

// Output formats for stdout.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// doorFlag binds a command-line flag to a DoorConfig field.
type doorFlag struct {
	name  string
	field string
	usage string
}

// doorFlags are the per-measurement overrides, in the order they are shown.
var doorFlags = []doorFlag{
	{"width", "door_width", "door width (mm)"},
	{"height", "door_height", "door height (mm)"},
	{"top-margin", "top_margin", "door top edge to top frames (mm)"},
	{"bottom-margin", "bottom_margin", "bottom frames to door bottom edge (mm)"},
	{"left-margin", "left_margin", "door left edge to left frames (mm)"},
	{"right-margin", "right_margin", "right frames to door right edge (mm)"},
	{"hgap", "horizontal_gap", "gap between the two columns (mm)"},
	{"vgap", "vertical_gap", "gap between the two rows (mm)"},
	{"beading", "beading_width", "beading face width (mm)"},
	{"panel-width", "mdf_panel_width", "MDF panel width (mm)"},
	{"ratio", "top_panel_ratio", "top row share of the available height (%)"},
	{"handle-height", "handle_height", "handle centre from the door top (mm)"},
	{"handle-indent", "handle_indent", "handle centre from the handle-side edge (mm)"},
	{"handle-spread", "handle_spread", "handle hardware reach from the door edge (mm)"},
}

// Options holds all CLI flags and arguments.
type Options struct {
	// Input
	ConfigPath    string
	InventoryPath string
	JobFile       string
	JobDoors      []string // Doors of the job to keep, by name or ID
	RemoveDoors   []string // Doors of the job to drop, by name or ID
	ImportFile    string   // .csv or .xlsx door list
	Name          string

	// Door overrides
	Overrides  map[string]float64 // DoorConfig JSON field -> value, only flags given
	HandleSide string
	Profile    string // Beading profile name or ID from the inventory

	// Purchasing overrides; negative means use the config
	StockLength  float64
	WastePercent float64

	// Output
	Format   string
	Compare  bool
	Estimate bool
	PDF      string
	Labels   string
	XLSX     string
	DXF      string
	Guides   []schematic.Guide
	SaveJob  string

	// Maintenance
	SaveDefaults    bool
	Backup          string
	Restore         string
	ImportInventory string

	Verbose bool
	Version bool
}

// NewFlagSet returns a configured FlagSet with custom usage/help.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(),
			`%s: four-panel overlay beading cut lists

Version: %s

Computes MDF panel sizes, mitred beading lengths and fitting pin
positions for a door. Doors come from the saved defaults, a job file
(-job), or a CSV/XLSX list (-import); measurement flags override them.

Usage of %s:
`, name, Version, name)
		fs.PrintDefaults()
	}
	return fs
}

// ParseArgs registers and parses all flags, returns an Options struct.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var opt Options
	var help bool

	// Input
	fs.StringVar(&opt.ConfigPath, "config", project.DefaultConfigPath(), "application config file")
	fs.StringVar(&opt.InventoryPath, "inventory", project.DefaultInventoryPath(), "beading inventory file")
	fs.StringVar(&opt.JobFile, "job", "", "job file with several doors (.json | .yaml)")
	var jobDoors, removeDoors stringSlice
	fs.Var(&jobDoors, "door", "only compute this door of the -job, by name or ID (repeatable)")
	fs.Var(&removeDoors, "remove-door", "drop this door from the -job, by name or ID (repeatable; use with -save-job to edit the job)")
	fs.StringVar(&opt.ImportFile, "import", "", "door list to import (.csv | .xlsx)")
	fs.StringVar(&opt.Name, "name", "", "door name for a single door")

	// Door measurements
	values := make(map[string]*float64, len(doorFlags))
	for _, df := range doorFlags {
		values[df.name] = fs.Float64(df.name, 0, df.usage)
	}
	fs.StringVar(&opt.HandleSide, "handle-side", "", "handle side: left | right")
	fs.StringVar(&opt.Profile, "profile", "", "beading profile name or ID from the inventory (sets -beading)")

	// Purchasing
	fs.Float64Var(&opt.StockLength, "stock-length", -1, "beading stock length (mm, -1 = config)")
	fs.Float64Var(&opt.WastePercent, "waste", -1, "beading waste allowance (%, -1 = config)")

	// Output
	fs.StringVar(&opt.Format, "format", FormatText, "stdout format: text | json")
	fs.BoolVar(&opt.Compare, "compare", false, "add the what-if comparison table")
	fs.BoolVar(&opt.Estimate, "estimate", false, "add the materials estimate")
	fs.StringVar(&opt.PDF, "pdf", "", "write a PDF cut sheet")
	fs.StringVar(&opt.Labels, "labels", "", "write a PDF of QR piece labels")
	fs.StringVar(&opt.XLSX, "xlsx", "", "write an Excel workbook of all doors")
	fs.StringVar(&opt.DXF, "dxf", "", "write a DXF drawing")
	var guides stringSlice
	fs.Var(&guides, "guide", "dimension guide on PDF/DXF (repeatable): one of "+strings.Join(guideNames(), ", ")+
		", or the field it explains: "+strings.Join(schematic.Fields(), ", "))
	fs.StringVar(&opt.SaveJob, "save-job", "", "save the doors to a job file (.json | .yaml)")

	// Maintenance
	fs.BoolVar(&opt.SaveDefaults, "save-defaults", false, "store the resulting door measurements as the new defaults")
	fs.StringVar(&opt.Backup, "backup", "", "write config and inventory to a backup file and exit")
	fs.StringVar(&opt.Restore, "restore", "", "restore config and inventory from a backup file and exit")
	fs.StringVar(&opt.ImportInventory, "import-inventory", "", "merge beading profiles from another inventory file and exit")

	fs.BoolVar(&opt.Verbose, "verbose", false, "log progress to stderr")
	fs.BoolVar(&opt.Version, "version", false, "print version and exit")
	fs.BoolVar(&help, "h", false, "show this help message")

	if err := fs.Parse(argv); err != nil {
		return opt, err
	}
	if help {
		fs.Usage()
		return opt, flag.ErrHelp
	}
	if opt.Version {
		return opt, nil
	}
	if fs.NArg() > 0 {
		return opt, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	opt.JobDoors = jobDoors
	opt.RemoveDoors = removeDoors
	opt.Overrides = map[string]float64{}
	fs.Visit(func(f *flag.Flag) {
		for _, df := range doorFlags {
			if f.Name == df.name {
				opt.Overrides[df.field] = *values[df.name]
			}
		}
	})
	for field, v := range opt.Overrides {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return opt, fmt.Errorf("--%s must be a finite number", flagFor(field))
		}
		if v < 0 {
			return opt, fmt.Errorf("--%s must be ≥ 0", flagFor(field))
		}
	}

	for _, p := range []struct {
		name  string
		value float64
	}{{"stock-length", opt.StockLength}, {"waste", opt.WastePercent}} {
		if math.IsNaN(p.value) || math.IsInf(p.value, 0) {
			return opt, fmt.Errorf("--%s must be a finite number", p.name)
		}
	}

	for _, g := range guides {
		guide, err := parseGuide(g)
		if err != nil {
			return opt, err
		}
		opt.Guides = append(opt.Guides, guide)
	}

	// Validation
	if opt.JobFile != "" && opt.ImportFile != "" {
		return opt, errors.New("--job conflicts with --import")
	}
	maintenance := 0
	for _, p := range []string{opt.Backup, opt.Restore, opt.ImportInventory} {
		if p != "" {
			maintenance++
		}
	}
	if maintenance > 1 {
		return opt, errors.New("--backup, --restore and --import-inventory are mutually exclusive")
	}
	if (len(opt.JobDoors) > 0 || len(opt.RemoveDoors) > 0) && opt.JobFile == "" {
		return opt, errors.New("--door and --remove-door need --job")
	}
	if opt.HandleSide != "" {
		if _, ok := model.ParseHandleSide(opt.HandleSide); !ok {
			return opt, fmt.Errorf("invalid --handle-side %q", opt.HandleSide)
		}
	}
	if opt.Format != FormatText && opt.Format != FormatJSON {
		return opt, fmt.Errorf("invalid --format %q", opt.Format)
	}
	if opt.ImportFile != "" {
		switch strings.ToLower(filepath.Ext(opt.ImportFile)) {
		case ".csv", ".txt", ".tsv", ".xlsx":
		default:
			return opt, fmt.Errorf("--import: unsupported file type %q", filepath.Ext(opt.ImportFile))
		}
	}
	if opt.Name != "" && (opt.JobFile != "" || opt.ImportFile != "") {
		return opt, errors.New("--name only applies to a single door")
	}
	return opt, nil
}

// ApplyTo writes the handle side and measurement overrides onto c.
func (o Options) ApplyTo(c *model.DoorConfig) {
	if side, ok := model.ParseHandleSide(o.HandleSide); ok {
		c.HandleSide = side
	}
	for field, v := range o.Overrides {
		c.SetField(field, v)
	}
}

// HasDoorOverrides reports whether any measurement or handle flag was given.
func (o Options) HasDoorOverrides() bool {
	return len(o.Overrides) > 0 || o.HandleSide != "" || o.Profile != ""
}

// parseGuide accepts a guide name or a DoorConfig field name.
func parseGuide(s string) (schematic.Guide, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if g := schematic.GuideFor(s); g != schematic.GuideNone {
		return g, nil
	}
	for _, g := range guideKinds {
		if string(g) == s {
			return g, nil
		}
	}
	return schematic.GuideNone, fmt.Errorf("invalid --guide %q", s)
}

// guideKinds lists the guides in the order the help text shows them.
var guideKinds = []schematic.Guide{
	schematic.GuideDoor, schematic.GuideMargins, schematic.GuideGaps, schematic.GuideBeading,
	schematic.GuidePanel, schematic.GuideRatio, schematic.GuideHandle,
}

func guideNames() []string {
	names := make([]string, len(guideKinds))
	for i, g := range guideKinds {
		names[i] = string(g)
	}
	return names
}

func flagFor(field string) string {
	for _, df := range doorFlags {
		if df.field == field {
			return df.name
		}
	}
	return field
}

// stringSlice allows repeatable string flags.
type stringSlice []string

func (s *stringSlice) String() string     { return strings.Join(*s, ",") }
func (s *stringSlice) Set(v string) error { *s = append(*s, v); return nil }
