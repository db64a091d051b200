package app

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/piwi3910/DoorBeading/internal/model"
	"github.com/piwi3910/DoorBeading/internal/project"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// env isolates config and inventory in a temp dir.
type env struct {
	t   *testing.T
	dir string
}

func newEnv(t *testing.T) env {
	return env{t: t, dir: t.TempDir()}
}

func (e env) path(name string) string { return filepath.Join(e.dir, name) }

func (e env) run(args ...string) (int, string, string) {
	e.t.Helper()
	argv := append([]string{"-config", e.path("config.json"), "-inventory", e.path("inventory.json")}, args...)
	var out, errBuf bytes.Buffer
	code := Run(argv, &out, &errBuf)
	return code, out.String(), errBuf.String()
}

func TestRun_DefaultDoor(t *testing.T) {
	e := newEnv(t)
	code, out, stderr := e.run("-name", "Lounge")

	assert.Equal(t, ExitOK, code)
	assert.Empty(t, stderr)
	assert.Contains(t, out, "DOOR BEADING CUT LIST - Lounge")
	assert.Contains(t, out, "Top panel            215.0 x   634.4 mm  x2")
	assert.Contains(t, out, "Total beading (long point): 8892.0 mm")

	_, err := os.Stat(e.path("config.json"))
	assert.True(t, os.IsNotExist(err), "a plain run must not write the config")
}

func TestRun_FlagOverrides(t *testing.T) {
	code, out, _ := newEnv(t).run("-width", "842")

	assert.Equal(t, ExitOK, code)
	assert.Contains(t, out, "301.0 /   261.0 mm  x4")
	assert.Contains(t, out, "Panel-to-beading gap: 23.0 mm")
	assert.Contains(t, out, "Top panel            215.0 x   594.4 mm  x2")
}

func TestRun_InvalidDoor(t *testing.T) {
	e := newEnv(t)
	code, out, stderr := e.run("-panel-width", "400", "-pdf", e.path("door.pdf"))

	assert.Equal(t, ExitInvalid, code)
	assert.Contains(t, out, "CONFIGURATION INVALID")
	assert.Contains(t, stderr, "PDF skipped")
	assert.NoFileExists(t, e.path("door.pdf"))
}

func TestRun_JSON(t *testing.T) {
	code, out, _ := newEnv(t).run("-format", "json", "-estimate", "-compare")
	require.Equal(t, ExitOK, code)

	var docs []struct {
		Door               model.Door              `json:"door"`
		Result             model.CutResult         `json:"result"`
		PanelPieces        []model.PanelPiece      `json:"panel_pieces"`
		BeadingPieces      []model.BeadingPiece    `json:"beading_pieces"`
		TotalBeadingLength float64                 `json:"total_beading_length"`
		Estimate           *model.MaterialEstimate `json:"estimate"`
		Comparison         []map[string]any        `json:"comparison"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &docs))
	require.Len(t, docs, 1)

	d := docs[0]
	assert.Equal(t, "Door", d.Door.Name)
	assert.True(t, d.Result.IsValid)
	assert.Equal(t, 3.0, d.Result.PanelBeadingGap)
	assert.Len(t, d.PanelPieces, 2)
	assert.Len(t, d.BeadingPieces, 4)
	assert.Equal(t, 8892.0, d.TotalBeadingLength)
	require.NotNil(t, d.Estimate)
	assert.Equal(t, 4, d.Estimate.LengthsNeededMin)
	require.NotEmpty(t, d.Comparison)
	assert.Equal(t, "Current Settings", d.Comparison[0]["name"])
}

func TestRun_JSONInvalidHasNoCutList(t *testing.T) {
	code, out, _ := newEnv(t).run("-format", "json", "-height", "300")
	assert.Equal(t, ExitInvalid, code)
	assert.NotContains(t, out, "beading_pieces")
	assert.Contains(t, out, `"is_valid": false`)
}

func TestRun_Exports(t *testing.T) {
	e := newEnv(t)
	code, _, stderr := e.run(
		"-name", "Hall",
		"-pdf", e.path("door.pdf"),
		"-labels", e.path("labels.pdf"),
		"-xlsx", e.path("door.xlsx"),
		"-dxf", e.path("door.dxf"),
		"-guide", "margins",
		"-verbose",
	)

	require.Equal(t, ExitOK, code, stderr)
	for _, name := range []string{"door.pdf", "labels.pdf", "door.xlsx", "door.dxf"} {
		assert.FileExists(t, e.path(name))
	}
	assert.Contains(t, stderr, "doorbeading: wrote PDF")
	assert.Contains(t, stderr, "doorbeading: wrote XLSX")
}

func TestRun_JobWithSeveralDoors(t *testing.T) {
	e := newEnv(t)
	job := model.NewJob("House")
	job.Add(model.NewDoor("Hall", model.DefaultDoorConfig()))
	job.Add(model.NewDoor("Back Bedroom", model.DefaultDoorConfig()))
	require.NoError(t, project.SaveJob(e.path("house.yaml"), job))

	code, out, stderr := e.run("-job", e.path("house.yaml"), "-beading", "25", "-pdf", e.path("cut.pdf"))

	require.Equal(t, ExitOK, code, stderr)
	assert.Contains(t, out, "DOOR BEADING CUT LIST - Hall")
	assert.Contains(t, out, "DOOR BEADING CUT LIST - Back Bedroom")
	assert.Contains(t, out, "Beading: 25 mm")
	assert.FileExists(t, e.path("cut-hall.pdf"))
	assert.FileExists(t, e.path("cut-back-bedroom.pdf"))
}

func TestRun_JobWithSameNamedDoors(t *testing.T) {
	e := newEnv(t)
	narrow := model.DefaultDoorConfig()
	narrow.DoorWidth = 686
	narrow.MDFPanelWidth = 170
	job := model.NewJob("Flat")
	job.Add(model.NewDoor("Hall", model.DefaultDoorConfig()))
	job.Add(model.NewDoor("Hall", narrow))
	require.NoError(t, project.SaveJob(e.path("flat.json"), job))

	code, _, stderr := e.run("-job", e.path("flat.json"), "-dxf", e.path("d.dxf"), "-verbose")

	require.Equal(t, ExitOK, code, stderr)
	assert.FileExists(t, e.path("d-hall-1.dxf"))
	assert.FileExists(t, e.path("d-hall-2.dxf"))
	assert.NoFileExists(t, e.path("d-hall.dxf"))
}

func TestRun_Import(t *testing.T) {
	e := newEnv(t)
	csv := "name,width,panel width\nKitchen,762,200\nBroken,wide,200\nStudy,686,400\n"
	require.NoError(t, os.WriteFile(e.path("doors.csv"), []byte(csv), 0644))

	code, out, stderr := e.run("-import", e.path("doors.csv"))

	assert.Equal(t, ExitInvalid, code, "Study's panel is too wide")
	assert.Contains(t, stderr, "import: Line 3: Invalid door width 'wide'")
	assert.Contains(t, out, "DOOR BEADING CUT LIST - Kitchen")
	assert.Contains(t, out, "DOOR BEADING CUT LIST - Study")
	assert.Contains(t, out, "Panel too wide")
}

func TestRun_ImportNothing(t *testing.T) {
	e := newEnv(t)
	require.NoError(t, os.WriteFile(e.path("doors.csv"), []byte("name\nHall\n"), 0644))

	code, _, stderr := e.run("-import", e.path("doors.csv"))
	assert.Equal(t, ExitUsage, code)
	assert.Contains(t, stderr, "no doors")
}

func TestRun_Profile(t *testing.T) {
	e := newEnv(t)
	code, out, _ := e.run("-profile", "Bolection 30mm MDF")
	assert.Equal(t, ExitOK, code)
	assert.Contains(t, out, "Beading: 30 mm")
	assert.FileExists(t, e.path("inventory.json"))

	code, _, stderr := e.run("-profile", "Egg and dart")
	assert.Equal(t, ExitUsage, code)
	assert.Contains(t, stderr, `unknown beading profile "Egg and dart"`)
}

func TestRun_ProfileByID(t *testing.T) {
	e := newEnv(t)
	inv := model.Inventory{Beadings: []model.BeadingProfile{
		{ID: "bead0001", Name: "Torus 18mm Oak", Width: 18, StockLength: 2400, Material: "Oak"},
	}}
	require.NoError(t, project.SaveInventory(e.path("inventory.json"), inv))

	code, out, stderr := e.run("-profile", "bead0001")
	require.Equal(t, ExitOK, code, stderr)
	assert.Contains(t, out, "Beading: 18 mm")
}

func TestRun_ImportInventory(t *testing.T) {
	e := newEnv(t)
	extra := model.Inventory{Beadings: []model.BeadingProfile{
		{ID: "bead0001", Name: "Torus 18mm Oak", Width: 18, StockLength: 2400, Material: "Oak"},
	}}
	require.NoError(t, project.SaveInventory(e.path("supplier.json"), extra))

	code, out, stderr := e.run("-import-inventory", e.path("supplier.json"))
	require.Equal(t, ExitOK, code, stderr)
	n := len(model.DefaultInventory().Beadings)
	assert.Contains(t, out, fmt.Sprintf("imported 1 beading profiles, %d in inventory", n+1))

	inv, err := project.LoadInventory(e.path("inventory.json"))
	require.NoError(t, err)
	assert.NotNil(t, inv.FindBeadingByID("bead0001"))

	// Importing again adds nothing.
	_, out, _ = e.run("-import-inventory", e.path("supplier.json"))
	assert.Contains(t, out, "imported 0 beading profiles")

	code, _, _ = e.run("-import-inventory", e.path("missing.json"))
	assert.Equal(t, ExitUsage, code)
}

func TestRun_JobDoorSelection(t *testing.T) {
	e := newEnv(t)
	job := model.NewJob("House")
	hall := model.NewDoor("Hall", model.DefaultDoorConfig())
	job.Add(hall)
	job.Add(model.NewDoor("Study", model.DefaultDoorConfig()))
	job.Add(model.NewDoor("Porch", model.DefaultDoorConfig()))
	require.NoError(t, project.SaveJob(e.path("house.json"), job))

	code, out, stderr := e.run("-job", e.path("house.json"), "-door", "Study", "-door", hall.ID)
	require.Equal(t, ExitOK, code, stderr)
	assert.Contains(t, out, "DOOR BEADING CUT LIST - Study")
	assert.Contains(t, out, "DOOR BEADING CUT LIST - Hall")
	assert.NotContains(t, out, "Porch")
	assert.Less(t, strings.Index(out, "- Study"), strings.Index(out, "- Hall"), "selection order")

	code, _, stderr = e.run("-job", e.path("house.json"), "-remove-door", "Porch", "-save-job", e.path("house.json"))
	require.Equal(t, ExitOK, code, stderr)
	saved, err := project.LoadJob(e.path("house.json"), model.DefaultDoorConfig())
	require.NoError(t, err)
	assert.Equal(t, []string{"Hall", "Study"}, saved.Names())

	code, _, stderr = e.run("-job", e.path("house.json"), "-door", "Garage")
	assert.Equal(t, ExitUsage, code)
	assert.Contains(t, stderr, `no door "Garage" (doors: Hall, Study)`)
}

func TestRun_NonFiniteMeasurement(t *testing.T) {
	code, _, stderr := newEnv(t).run("-width", "NaN", "-format", "json")
	assert.Equal(t, ExitUsage, code)
	assert.Contains(t, stderr, "--width must be a finite number")
}

func TestRun_SaveDefaultsAndJob(t *testing.T) {
	e := newEnv(t)
	code, _, stderr := e.run("-beading", "25", "-save-defaults", "-save-job", e.path("jobs/one.json"))
	require.Equal(t, ExitOK, code, stderr)

	cfg, err := project.LoadAppConfig(e.path("config.json"))
	require.NoError(t, err)
	assert.Equal(t, 25.0, cfg.DefaultDoor.BeadingWidth)
	assert.Equal(t, []string{e.path("jobs/one.json")}, cfg.RecentJobs)

	job, err := project.LoadJob(e.path("jobs/one.json"), model.DefaultDoorConfig())
	require.NoError(t, err)
	require.Len(t, job.Doors, 1)
	assert.Equal(t, 25.0, job.Doors[0].Config.BeadingWidth)

	// The next run starts from the saved defaults.
	_, out, _ := e.run()
	assert.Contains(t, out, "Beading: 25 mm")
}

func TestRun_BackupAndRestore(t *testing.T) {
	e := newEnv(t)
	_, _, _ = e.run("-waste", "12", "-ratio", "45", "-save-defaults")

	code, _, stderr := e.run("-backup", e.path("backup.json"))
	require.Equal(t, ExitOK, code, stderr)
	assert.FileExists(t, e.path("backup.json"))

	other := newEnv(t)
	var out, errBuf bytes.Buffer
	code = Run([]string{
		"-config", other.path("config.json"),
		"-inventory", other.path("inventory.json"),
		"-restore", e.path("backup.json"),
	}, &out, &errBuf)
	require.Equal(t, ExitOK, code, errBuf.String())

	cfg, err := project.LoadAppConfig(other.path("config.json"))
	require.NoError(t, err)
	assert.Equal(t, 45.0, cfg.DefaultDoor.TopPanelRatio)
	assert.FileExists(t, other.path("inventory.json"))
}

func TestRun_HelpVersionAndBadFlags(t *testing.T) {
	var out, errBuf bytes.Buffer
	assert.Equal(t, ExitOK, Run([]string{"-h"}, &out, &errBuf))
	assert.Contains(t, out.String(), "Usage of doorbeading")

	out.Reset()
	assert.Equal(t, ExitOK, Run([]string{"-version"}, &out, &errBuf))
	assert.Contains(t, out.String(), "doorbeading version")

	out.Reset()
	errBuf.Reset()
	assert.Equal(t, ExitUsage, Run([]string{"-format", "xml"}, &out, &errBuf))
	assert.Contains(t, errBuf.String(), `invalid --format "xml"`)
}

func TestRun_BadConfig(t *testing.T) {
	e := newEnv(t)
	require.NoError(t, os.WriteFile(e.path("config.json"), []byte("{"), 0644))
	code, _, stderr := e.run()
	assert.Equal(t, ExitUsage, code)
	assert.Contains(t, stderr, "load config")
}

func TestSlug(t *testing.T) {
	tests := map[string]string{
		"Hall":              "hall",
		"Back Bedroom":      "back-bedroom",
		"  Door #2 (left) ": "door-2-left",
		"":                  "",
		"---":               "",
	}
	for in, want := range tests {
		assert.Equal(t, want, slug(in), in)
	}
}

func TestOutputPath(t *testing.T) {
	r := &runner{appCfg: model.AppConfig{OutputDir: "out"}}

	assert.Equal(t, filepath.Join("out", "cut.pdf"), r.outputPath("cut.pdf", ""))
	assert.Equal(t, filepath.Join("out", "cut-hall.pdf"), r.outputPath("cut.pdf", "hall"))
	assert.Equal(t, "/abs/cut.dxf", r.outputPath("/abs/cut.dxf", ""))
}

func TestDoorSuffixes(t *testing.T) {
	doors := func(names ...string) []model.Door {
		out := make([]model.Door, len(names))
		for i, n := range names {
			out[i] = model.Door{Name: n}
		}
		return out
	}

	tests := []struct {
		name  string
		doors []model.Door
		want  []string
	}{
		{"single door", doors("Hall"), []string{""}},
		{"distinct names", doors("Hall", "Back Bedroom"), []string{"hall", "back-bedroom"}},
		{"unnamed", doors("", "Hall", ""), []string{"1", "hall", "3"}},
		{"same name", doors("Hall", "Study", "Hall"), []string{"hall-1", "study", "hall-3"}},
		{"same slug", doors("Hall", "hall!"), []string{"hall-1", "hall-2"}},
		{"numbered name clash", doors("Hall", "Hall", "Hall 2"), []string{"hall-1", "hall-2", "hall-2-2"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, doorSuffixes(tt.doors))
		})
	}
}
