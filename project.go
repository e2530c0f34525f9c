package gtd

import (
	"encoding/json"
	"fmt"
)

// ProjectStatus is the state of a project. Unlike tasks, projects are never done: they are archived.
type ProjectStatus string

const (
	ProjectActive   ProjectStatus = "active"
	ProjectSomeday  ProjectStatus = "someday"
	ProjectWaiting  ProjectStatus = "waiting"
	ProjectArchived ProjectStatus = "archived"
)

// Project describes a project as stored in the data file. Use ProjectPatch for adding or updating a project (see
// also QueueProjectAdd, QueueProjectUpdate).
type Project struct {
	ID           string        `json:"id" yaml:"id"`
	Title        string        `json:"title" yaml:"title"`
	Status       ProjectStatus `json:"status" yaml:"status"`
	Color        string        `json:"color" yaml:"color"`
	TagIDs       []string      `json:"tagIds" yaml:"tagIds"`
	IsSequential bool          `json:"isSequential,omitempty" yaml:"isSequential,omitempty"`
	IsFocused    bool          `json:"isFocused,omitempty" yaml:"isFocused,omitempty"`
	SupportNotes string        `json:"supportNotes,omitempty" yaml:"supportNotes,omitempty"`
	ReviewAt     string        `json:"reviewAt,omitempty" yaml:"reviewAt,omitempty"`
	AreaID       string        `json:"areaId,omitempty" yaml:"areaId,omitempty"`
	CreatedAt    string        `json:"createdAt" yaml:"createdAt"`
	UpdatedAt    string        `json:"updatedAt" yaml:"updatedAt"`
	DeletedAt    string        `json:"deletedAt,omitempty" yaml:"deletedAt,omitempty"`
}

// Deleted reports whether the project has been soft-deleted.
func (p *Project) Deleted() bool {
	return p.DeletedAt != ""
}

// ProjectPatch holds a subset of attributes for a new or existing project, meant for an add or update command.
type ProjectPatch struct {
	id    string
	attrs map[string]string
}

func NewProjectPatch(id string) *ProjectPatch {
	var project ProjectPatch
	project.id = id
	project.attrs = make(map[string]string)
	return &project
}

func (project *ProjectPatch) WithTitle(value string) *ProjectPatch {
	project.attrs["title"] = quote(value)
	return project
}

func (project *ProjectPatch) WithStatus(value ProjectStatus) *ProjectPatch {
	project.attrs["status"] = quote(string(value))
	return project
}

func (project *ProjectPatch) WithColor(value string) *ProjectPatch {
	project.attrs["color"] = quote(value)
	return project
}

func (project *ProjectPatch) WithAreaID(value string) *ProjectPatch {
	project.attrs["areaId"] = quote(value)
	return project
}

func (project *ProjectPatch) WithSequential(value bool) *ProjectPatch {
	project.attrs["isSequential"] = fmt.Sprint(value)
	return project
}

// MarshalJSON implements json.Marshaler.
func (project *ProjectPatch) MarshalJSON() ([]byte, error) {
	return marshalPatch(project.id, project.attrs), nil
}

func (project *ProjectPatch) apply(target *Project) error {
	id := target.ID
	if err := json.Unmarshal(marshalPatch(project.id, project.attrs), target); err != nil {
		return fmt.Errorf("project %s: %w", id, err)
	}
	target.ID = id
	return nil
}

// quote encodes a string as a JSON string. (Go's %q verb is not JSON for all inputs.)
func quote(value string) string {
	b, _ := json.Marshal(value)
	return string(b)
}
