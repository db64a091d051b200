// Package app wires the command line to the engine, report and exporters.
package app

import (
	"bufio"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"

	"github.com/piwi3910/DoorBeading/internal/cli"
	"github.com/piwi3910/DoorBeading/internal/engine"
	"github.com/piwi3910/DoorBeading/internal/export"
	"github.com/piwi3910/DoorBeading/internal/importer"
	"github.com/piwi3910/DoorBeading/internal/model"
	"github.com/piwi3910/DoorBeading/internal/project"
	"github.com/piwi3910/DoorBeading/internal/report"
)

// Exit codes.
const (
	ExitOK      = 0
	ExitInvalid = 1 // At least one door has blocking errors
	ExitUsage   = 2 // Bad flags or unreadable input
	ExitOutput  = 3 // A file or stdout could not be written
)

// Run parses argv, computes every door and writes the report to stdout and
// diagnostics to stderr. It returns the process exit code.
func Run(argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	defer func() { _ = outw.Flush() }()

	fs := cli.NewFlagSet("doorbeading")
	fs.SetOutput(io.Discard)

	opts, err := cli.ParseArgs(fs, argv)
	if err != nil {
		fs.SetOutput(outw)
		if errors.Is(err, flag.ErrHelp) {
			fs.Usage()
			return ExitOK
		}
		_, _ = fmt.Fprintln(stderr, err)
		fs.Usage()
		return ExitUsage
	}

	if opts.Version {
		_, _ = fmt.Fprintf(outw, "doorbeading version %s\n", cli.Version)
		return ExitOK
	}

	logOut := io.Discard
	if opts.Verbose {
		logOut = stderr
	}
	r := &runner{
		opts:   opts,
		stdout: outw,
		stderr: stderr,
		log:    log.New(logOut, "doorbeading: ", 0),
	}
	code := r.run()
	if err := outw.Flush(); err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return ExitOutput
	}
	return code
}

// runner carries the state of one invocation.
type runner struct {
	opts   cli.Options
	stdout io.Writer
	stderr io.Writer
	log    *log.Logger

	appCfg  model.AppConfig
	inv     model.Inventory
	jobName string
}

func (r *runner) fail(code int, format string, args ...any) int {
	_, _ = fmt.Fprintf(r.stderr, format+"\n", args...)
	return code
}

func (r *runner) run() int {
	var err error
	r.appCfg, err = project.LoadAppConfig(r.opts.ConfigPath)
	if err != nil {
		return r.fail(ExitUsage, "load config: %v", err)
	}
	r.log.Printf("config %s", r.opts.ConfigPath)

	if r.opts.Backup != "" || r.opts.Restore != "" || r.opts.ImportInventory != "" {
		return r.maintenance()
	}

	if r.opts.Profile != "" || r.opts.ImportFile != "" {
		r.inv, err = project.LoadInventory(r.opts.InventoryPath)
		if err != nil {
			return r.fail(ExitUsage, "load inventory: %v", err)
		}
	}

	base, err := r.baseConfig()
	if err != nil {
		return r.fail(ExitUsage, "%v", err)
	}

	doors, code := r.loadDoors(base)
	if code != ExitOK {
		return code
	}

	results := make([]model.CutResult, len(doors))
	exit := ExitOK
	for i, d := range doors {
		results[i] = engine.ComputeCutResult(d.Config)
		if !results[i].IsValid {
			exit = ExitInvalid
			r.log.Printf("door %q is invalid: %s", d.Name, strings.Join(results[i].Errors, "; "))
		}
	}

	if err := r.writeStdout(doors, results); err != nil {
		return r.fail(ExitOutput, "write output: %v", err)
	}
	if code := r.writeFiles(doors, results); code != ExitOK {
		return code
	}
	if code := r.save(base, doors); code != ExitOK {
		return code
	}
	return exit
}

// baseConfig is the saved default door with the profile and flags applied.
func (r *runner) baseConfig() (model.DoorConfig, error) {
	base := r.appCfg.DefaultDoor
	if err := r.applyOverrides(&base); err != nil {
		return base, err
	}
	return base, nil
}

// applyOverrides applies the beading profile and then explicit flags, so a
// -beading flag beats -profile.
func (r *runner) applyOverrides(c *model.DoorConfig) error {
	if r.opts.Profile != "" {
		bp := r.inv.FindBeadingByID(r.opts.Profile)
		if bp == nil {
			bp = r.inv.FindBeadingByName(r.opts.Profile)
		}
		if bp == nil {
			return fmt.Errorf("unknown beading profile %q (have: %s)", r.opts.Profile, strings.Join(r.inv.BeadingNames(), ", "))
		}
		bp.ApplyToConfig(c)
	}
	r.opts.ApplyTo(c)
	return nil
}

// loadDoors returns the doors to compute: from a job file, an import, or
// a single door built from the base configuration.
func (r *runner) loadDoors(base model.DoorConfig) ([]model.Door, int) {
	switch {
	case r.opts.JobFile != "":
		job, err := project.LoadJob(r.opts.JobFile, base)
		if err != nil {
			return nil, r.fail(ExitUsage, "%v", err)
		}
		if err := r.selectJobDoors(&job); err != nil {
			return nil, r.fail(ExitUsage, "job %s: %v", r.opts.JobFile, err)
		}
		if len(job.Doors) == 0 {
			return nil, r.fail(ExitUsage, "job %s has no doors", r.opts.JobFile)
		}
		r.jobName = job.Name
		r.log.Printf("loaded %d doors from job %q", len(job.Doors), job.Name)
		if r.opts.HasDoorOverrides() {
			for i := range job.Doors {
				_ = r.applyOverrides(&job.Doors[i].Config)
			}
		}
		return job.Doors, ExitOK

	case r.opts.ImportFile != "":
		iopts := importer.Options{Base: base, Inventory: r.inv}
		var res importer.ImportResult
		if strings.EqualFold(filepath.Ext(r.opts.ImportFile), ".xlsx") {
			res = importer.ImportExcel(r.opts.ImportFile, iopts)
		} else {
			res = importer.ImportCSV(r.opts.ImportFile, iopts)
		}
		for _, w := range res.Warnings {
			r.log.Print(w)
		}
		for _, e := range res.Errors {
			_, _ = fmt.Fprintf(r.stderr, "import: %s\n", e)
		}
		if len(res.Doors) == 0 {
			return nil, r.fail(ExitUsage, "import %s: no doors", r.opts.ImportFile)
		}
		r.jobName = strings.TrimSuffix(filepath.Base(r.opts.ImportFile), filepath.Ext(r.opts.ImportFile))
		r.log.Printf("imported %d doors from %s", len(res.Doors), r.opts.ImportFile)
		// Flags win over imported columns.
		for i := range res.Doors {
			r.opts.ApplyTo(&res.Doors[i].Config)
		}
		return res.Doors, ExitOK
	}

	if err := base.Validate(); err != nil {
		return nil, r.fail(ExitUsage, "door: %v", err)
	}
	name := r.opts.Name
	if name == "" {
		name = "Door"
	}
	return []model.Door{model.NewDoor(name, base)}, ExitOK
}

// selectJobDoors applies -remove-door and then -door to a loaded job.
func (r *runner) selectJobDoors(job *model.Job) error {
	for _, ref := range r.opts.RemoveDoors {
		d := findDoor(job, ref)
		if d == nil {
			return unknownDoor(job, ref)
		}
		job.Remove(d.ID)
		r.log.Printf("removed door %q", ref)
	}
	if len(r.opts.JobDoors) == 0 {
		return nil
	}
	picked := make([]model.Door, 0, len(r.opts.JobDoors))
	for _, ref := range r.opts.JobDoors {
		d := findDoor(job, ref)
		if d == nil {
			return unknownDoor(job, ref)
		}
		picked = append(picked, *d)
	}
	job.Doors = picked
	return nil
}

// findDoor looks a door up by ID first, then by name.
func findDoor(job *model.Job, ref string) *model.Door {
	if d := job.FindByID(ref); d != nil {
		return d
	}
	return job.FindByName(ref)
}

func unknownDoor(job *model.Job, ref string) error {
	return fmt.Errorf("no door %q (doors: %s)", ref, strings.Join(job.Names(), ", "))
}

// purchasing returns the stock length and waste percent after flags.
func (r *runner) purchasing() (float64, float64) {
	stock, waste := r.appCfg.BeadingStockLength, r.appCfg.WastePercent
	if r.opts.StockLength >= 0 {
		stock = r.opts.StockLength
	}
	if r.opts.WastePercent >= 0 {
		waste = r.opts.WastePercent
	}
	return stock, waste
}

func (r *runner) reportOptions(d model.Door, res model.CutResult) report.Options {
	var ro report.Options
	if r.opts.Estimate && res.IsValid {
		stock, waste := r.purchasing()
		est := model.CalculateMaterialEstimate(res, stock, waste)
		ro.Estimate = &est
	}
	if r.opts.Compare {
		ro.Comparison = engine.CompareScenarios(engine.BuildDefaultScenarios(d.Config))
	}
	return ro
}

func (r *runner) writeStdout(doors []model.Door, results []model.CutResult) error {
	if r.opts.Format == cli.FormatJSON {
		out := make([]doorOutput, len(doors))
		for i, d := range doors {
			out[i] = newDoorOutput(d, results[i], r.reportOptions(d, results[i]))
		}
		enc := json.NewEncoder(r.stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	for i, d := range doors {
		if i > 0 {
			if _, err := io.WriteString(r.stdout, "\n"); err != nil {
				return err
			}
		}
		if err := report.Write(r.stdout, d, results[i], r.reportOptions(d, results[i])); err != nil {
			return err
		}
	}
	return nil
}

// writeFiles runs the requested exporters. Invalid doors are reported and
// skipped; a write failure stops the run.
func (r *runner) writeFiles(doors []model.Door, results []model.CutResult) int {
	perDoor := []struct {
		path  string
		kind  string
		write func(path string, d model.Door, res model.CutResult) error
	}{
		{r.opts.PDF, "PDF", func(p string, d model.Door, res model.CutResult) error {
			return export.ExportPDF(p, d, res, r.opts.Guides...)
		}},
		{r.opts.Labels, "labels", export.ExportLabels},
		{r.opts.DXF, "DXF", func(p string, d model.Door, res model.CutResult) error {
			return export.ExportDXF(p, d, res, r.opts.Guides...)
		}},
	}

	suffixes := doorSuffixes(doors)
	for _, out := range perDoor {
		if out.path == "" {
			continue
		}
		for i, d := range doors {
			path := r.outputPath(out.path, suffixes[i])
			err := out.write(path, d, results[i])
			if errors.Is(err, export.ErrInvalidResult) {
				_, _ = fmt.Fprintf(r.stderr, "%s skipped: %v\n", out.kind, err)
				continue
			}
			if err != nil {
				return r.fail(ExitOutput, "write %s %s: %v", out.kind, path, err)
			}
			r.log.Printf("wrote %s %s", out.kind, path)
		}
	}

	if r.opts.XLSX != "" {
		var valid []model.Door
		for i, d := range doors {
			if results[i].IsValid {
				valid = append(valid, d)
			} else {
				_, _ = fmt.Fprintf(r.stderr, "XLSX: door %q left out: %v\n", d.Name, export.ErrInvalidResult)
			}
		}
		if len(valid) > 0 {
			path := r.outputPath(r.opts.XLSX, "")
			if err := export.ExportExcel(path, valid); err != nil {
				return r.fail(ExitOutput, "write XLSX %s: %v", path, err)
			}
			r.log.Printf("wrote XLSX %s (%d doors)", path, len(valid))
		}
	}
	return ExitOK
}

// save writes the job file and the updated app config when asked to.
func (r *runner) save(base model.DoorConfig, doors []model.Door) int {
	dirty := false

	if r.opts.SaveJob != "" {
		name := r.jobName
		if name == "" {
			name = doors[0].Name
		}
		job := model.NewJob(name)
		for _, d := range doors {
			job.Add(d)
		}
		if err := project.SaveJob(r.opts.SaveJob, job); err != nil {
			return r.fail(ExitOutput, "save job: %v", err)
		}
		r.log.Printf("saved job %s", r.opts.SaveJob)
		r.appCfg.AddRecentJob(r.opts.SaveJob)
		dirty = true
	}

	if r.opts.SaveDefaults {
		r.appCfg.DefaultDoor = base
		dirty = true
	}

	if dirty {
		if err := project.SaveAppConfig(r.opts.ConfigPath, r.appCfg); err != nil {
			return r.fail(ExitOutput, "save config: %v", err)
		}
		r.log.Printf("saved config %s", r.opts.ConfigPath)
	}
	return ExitOK
}

// maintenance handles -backup, -restore and -import-inventory.
func (r *runner) maintenance() int {
	if r.opts.ImportInventory != "" {
		inv, err := project.LoadInventory(r.opts.InventoryPath)
		if err != nil {
			return r.fail(ExitUsage, "load inventory: %v", err)
		}
		merged, err := project.ImportInventory(r.opts.ImportInventory, inv)
		if err != nil {
			return r.fail(ExitUsage, "%v", err)
		}
		if err := project.SaveInventory(r.opts.InventoryPath, merged); err != nil {
			return r.fail(ExitOutput, "save inventory: %v", err)
		}
		_, _ = fmt.Fprintf(r.stdout, "imported %d beading profiles, %d in inventory\n",
			len(merged.Beadings)-len(inv.Beadings), len(merged.Beadings))
		return ExitOK
	}

	if r.opts.Backup != "" {
		inv, err := project.LoadInventory(r.opts.InventoryPath)
		if err != nil {
			return r.fail(ExitUsage, "load inventory: %v", err)
		}
		if err := project.ExportAllData(r.opts.Backup, r.appCfg, inv); err != nil {
			return r.fail(ExitOutput, "%v", err)
		}
		r.log.Printf("backup written to %s", r.opts.Backup)
		return ExitOK
	}

	backup, err := project.ImportAllData(r.opts.Restore)
	if err != nil {
		return r.fail(ExitUsage, "%v", err)
	}
	if err := backup.Config.DefaultDoor.Validate(); err != nil {
		return r.fail(ExitUsage, "backup %s: default door: %v", r.opts.Restore, err)
	}
	if err := project.SaveAppConfig(r.opts.ConfigPath, backup.Config); err != nil {
		return r.fail(ExitOutput, "save config: %v", err)
	}
	if err := project.SaveInventory(r.opts.InventoryPath, backup.Inventory); err != nil {
		return r.fail(ExitOutput, "save inventory: %v", err)
	}
	r.log.Printf("restored backup from %s (created %s)", r.opts.Restore, backup.CreatedAt)
	return ExitOK
}

// outputPath resolves relative paths against the configured output
// directory and inserts suffix, if any, before the extension.
func (r *runner) outputPath(p, suffix string) string {
	if !filepath.IsAbs(p) && r.appCfg.OutputDir != "" {
		p = filepath.Join(r.appCfg.OutputDir, p)
	}
	if suffix == "" {
		return p
	}
	ext := filepath.Ext(p)
	return strings.TrimSuffix(p, ext) + "-" + suffix + ext
}

// doorSuffixes names each door's export files in a multi-door run. Doors
// whose names slug the same are told apart by their position, so no two
// doors share a file. A single door gets no suffix.
func doorSuffixes(doors []model.Door) []string {
	out := make([]string, len(doors))
	if len(doors) < 2 {
		return out
	}
	counts := make(map[string]int, len(doors))
	for _, d := range doors {
		counts[slug(d.Name)]++
	}
	used := make(map[string]bool, len(doors))
	for i, d := range doors {
		base := slug(d.Name)
		switch {
		case base == "":
			base = strconv.Itoa(i + 1)
		case counts[base] > 1:
			base += "-" + strconv.Itoa(i+1)
		}
		suffix := base
		for n := 2; used[suffix]; n++ {
			suffix = base + "-" + strconv.Itoa(n)
		}
		used[suffix] = true
		out[i] = suffix
	}
	return out
}

// slug lower-cases s and collapses anything but letters and digits to '-'.
func slug(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
		} else if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
