package gtd

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Area is a broad area of responsibility (Work, Health, ...) that groups projects and tasks.
type Area struct {
	ID        string `json:"id" yaml:"id"`
	Name      string `json:"name" yaml:"name"`
	Color     string `json:"color,omitempty" yaml:"color,omitempty"`
	Icon      string `json:"icon,omitempty" yaml:"icon,omitempty"`
	Order     int    `json:"order" yaml:"order"`
	CreatedAt string `json:"createdAt,omitempty" yaml:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty" yaml:"updatedAt,omitempty"`
	DeletedAt string `json:"deletedAt,omitempty" yaml:"deletedAt,omitempty"`
}

// Deleted reports whether the area has been soft-deleted.
func (a *Area) Deleted() bool {
	return a.DeletedAt != ""
}

// AreaPatch is used to add or update areas (see, e.g., QueueAreaAdd, QueueAreaUpdate).
type AreaPatch struct {
	id    string
	attrs map[string]string
}

func NewAreaPatch(id string) *AreaPatch {
	area := new(AreaPatch)
	area.id = id
	area.attrs = make(map[string]string)
	return area
}

func (area *AreaPatch) WithName(value string) *AreaPatch {
	area.attrs["name"] = quote(value)
	return area
}

func (area *AreaPatch) WithColor(value string) *AreaPatch {
	area.attrs["color"] = quote(value)
	return area
}

func (area *AreaPatch) WithIcon(value string) *AreaPatch {
	area.attrs["icon"] = quote(value)
	return area
}

func (area *AreaPatch) WithOrder(value int) *AreaPatch {
	area.attrs["order"] = strconv.Itoa(value)
	return area
}

// MarshalJSON implements json.Marshaler.
func (area *AreaPatch) MarshalJSON() ([]byte, error) {
	return marshalPatch(area.id, area.attrs), nil
}

func (area *AreaPatch) apply(target *Area) error {
	id := target.ID
	if err := json.Unmarshal(marshalPatch(area.id, area.attrs), target); err != nil {
		return fmt.Errorf("area %s: %w", id, err)
	}
	target.ID = id
	return nil
}
