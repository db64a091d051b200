package model

import "time"

// Job is a batch of doors worked on together, e.g. every door in one house.
type Job struct {
	Name      string `json:"name" yaml:"name"`
	CreatedAt string `json:"created_at" yaml:"created_at"`
	UpdatedAt string `json:"updated_at" yaml:"updated_at"`
	Doors     []Door `json:"doors" yaml:"doors"`
}

// NewJob creates an empty job stamped with the current time.
func NewJob(name string) Job {
	now := time.Now().UTC().Format(time.RFC3339)
	return Job{
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
		Doors:     []Door{},
	}
}

// Add appends a door to the job.
func (j *Job) Add(d Door) {
	j.Doors = append(j.Doors, d)
	j.touch()
}

// Remove removes a door by ID. Returns true if found and removed.
func (j *Job) Remove(id string) bool {
	for i, d := range j.Doors {
		if d.ID == id {
			j.Doors = append(j.Doors[:i], j.Doors[i+1:]...)
			j.touch()
			return true
		}
	}
	return false
}

// FindByID returns a pointer to the door with the given ID, or nil.
func (j *Job) FindByID(id string) *Door {
	for i := range j.Doors {
		if j.Doors[i].ID == id {
			return &j.Doors[i]
		}
	}
	return nil
}

// FindByName returns a pointer to the first door with the given name, or nil.
func (j *Job) FindByName(name string) *Door {
	for i := range j.Doors {
		if j.Doors[i].Name == name {
			return &j.Doors[i]
		}
	}
	return nil
}

// Names returns the door names in job order.
func (j *Job) Names() []string {
	names := make([]string, len(j.Doors))
	for i, d := range j.Doors {
		names[i] = d.Name
	}
	return names
}

func (j *Job) touch() {
	j.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
}
