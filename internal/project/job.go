// Package project loads and saves the files the CLI works with: job files
// holding a batch of doors, the application config, the beading inventory
// and full backups.
package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/piwi3910/DoorBeading/internal/model"
	"gopkg.in/yaml.v3"
)

// isYAML reports whether the path's extension selects YAML.
func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// SaveJob writes a job to path, as YAML for .yaml/.yml and JSON otherwise.
// It creates any missing parent directories automatically.
func SaveJob(path string, job model.Job) error {
	var data []byte
	var err error
	if isYAML(path) {
		data, err = yaml.Marshal(job)
	} else {
		data, err = json.MarshalIndent(job, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to encode job: %w", err)
	}

	if err := writeFile(path, data); err != nil {
		return fmt.Errorf("job: %w", err)
	}
	return nil
}

// LoadJob reads a job file. Door fields missing from the file take their
// values from base, doors without an ID get one, and every door is
// validated.
func LoadJob(path string, base model.DoorConfig) (model.Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Job{}, fmt.Errorf("failed to read job file: %w", err)
	}

	var raw struct {
		Name      string    `json:"name" yaml:"name"`
		CreatedAt string    `json:"created_at" yaml:"created_at"`
		UpdatedAt string    `json:"updated_at" yaml:"updated_at"`
		Doors     []jobDoor `json:"doors" yaml:"doors"`
	}
	if isYAML(path) {
		err = yaml.Unmarshal(data, &raw)
	} else {
		err = json.Unmarshal(data, &raw)
	}
	if err != nil {
		return model.Job{}, fmt.Errorf("failed to parse job file %s: %w", path, err)
	}

	job := model.Job{
		Name:      raw.Name,
		CreatedAt: raw.CreatedAt,
		UpdatedAt: raw.UpdatedAt,
		Doors:     make([]model.Door, 0, len(raw.Doors)),
	}
	for i, jd := range raw.Doors {
		door, err := jd.toDoor(base)
		if err == nil {
			err = door.Config.Validate()
		}
		if err != nil {
			return model.Job{}, fmt.Errorf("job %s door %d (%s): %w", path, i+1, door.Name, err)
		}
		job.Doors = append(job.Doors, door)
	}
	return job, nil
}

// jobDoor decodes a door whose config starts from a base so that files
// only need the measurements that differ.
type jobDoor struct {
	ID     string         `json:"id" yaml:"id"`
	Name   string         `json:"name" yaml:"name"`
	Config map[string]any `json:"config" yaml:"config"`
}

func (jd jobDoor) toDoor(base model.DoorConfig) (model.Door, error) {
	door := model.NewDoor(jd.Name, base)
	if jd.ID != "" {
		door.ID = jd.ID
	}
	if len(jd.Config) == 0 {
		return door, nil
	}
	// Accept the same spellings as the importer and -handle-side.
	if s, ok := jd.Config["handle_side"].(string); ok {
		if side, ok := model.ParseHandleSide(s); ok {
			jd.Config["handle_side"] = string(side)
		}
	}
	// Round-trip the overrides through JSON onto the base values.
	data, err := json.Marshal(jd.Config)
	if err != nil {
		return door, err
	}
	if err := json.Unmarshal(data, &door.Config); err != nil {
		return door, fmt.Errorf("invalid config: %w", err)
	}
	return door, nil
}
