package gtd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

// Status is the GTD list a task is on.
type Status string

const (
	Inbox    Status = "inbox"
	Next     Status = "next"
	Waiting  Status = "waiting"
	Someday  Status = "someday"
	Done     Status = "done"
	Archived Status = "archived"
)

// Statuses lists the valid statuses, in workflow order.
var Statuses = []Status{Inbox, Next, Waiting, Someday, Done, Archived}

// ParseStatus parses a status case-insensitively.
func ParseStatus(value string) (Status, bool) {
	s := Status(strings.ToLower(strings.TrimSpace(value)))
	for _, valid := range Statuses {
		if s == valid {
			return s, true
		}
	}
	return "", false
}

// Open reports whether the task still needs doing, i.e., it is neither done nor archived.
func (s Status) Open() bool {
	return s != Done && s != Archived
}

// Task holds a task as stored in the data file. Fields this package does not know about are not preserved.
// Mutating store methods take a TaskPatch rather than a Task.
type Task struct {
	ID             string          `json:"id" yaml:"id"`
	Title          string          `json:"title" yaml:"title"`
	Status         Status          `json:"status" yaml:"status"`
	Priority       string          `json:"priority,omitempty" yaml:"priority,omitempty"`
	TaskMode       string          `json:"taskMode,omitempty" yaml:"taskMode,omitempty"`
	StartTime      string          `json:"startTime,omitempty" yaml:"startTime,omitempty"`
	DueDate        string          `json:"dueDate,omitempty" yaml:"dueDate,omitempty"`
	Recurrence     *Recurrence     `json:"recurrence,omitempty" yaml:"recurrence,omitempty"`
	PushCount      int             `json:"pushCount,omitempty" yaml:"pushCount,omitempty"`
	Tags           []string        `json:"tags" yaml:"tags"`
	Contexts       []string        `json:"contexts" yaml:"contexts"`
	Checklist      []ChecklistItem `json:"checklist,omitempty" yaml:"checklist,omitempty"`
	Description    string          `json:"description,omitempty" yaml:"description,omitempty"`
	Location       string          `json:"location,omitempty" yaml:"location,omitempty"`
	ProjectID      string          `json:"projectId,omitempty" yaml:"projectId,omitempty"`
	AreaID         string          `json:"areaId,omitempty" yaml:"areaId,omitempty"`
	IsFocusedToday bool            `json:"isFocusedToday,omitempty" yaml:"isFocusedToday,omitempty"`
	TimeEstimate   string          `json:"timeEstimate,omitempty" yaml:"timeEstimate,omitempty"`
	ReviewAt       string          `json:"reviewAt,omitempty" yaml:"reviewAt,omitempty"`
	CompletedAt    string          `json:"completedAt,omitempty" yaml:"completedAt,omitempty"`
	CreatedAt      string          `json:"createdAt" yaml:"createdAt"`
	UpdatedAt      string          `json:"updatedAt" yaml:"updatedAt"`
	DeletedAt      string          `json:"deletedAt,omitempty" yaml:"deletedAt,omitempty"`
}

// DueTime parses the due date. Date-only values are due at the end of the day. The zero time is returned if there
// is no due date or it can't be parsed.
func (task *Task) DueTime() time.Time {
	if task.DueDate == "" {
		return time.Time{}
	}
	t, ok := ParseDueDate(task.DueDate)
	if !ok {
		log.WithFields(log.Fields{
			"task": task.ID,
			"date": task.DueDate,
		}).Warning("Could not parse due date")
	}
	return t
}

// Deleted reports whether the task has been soft-deleted.
func (task *Task) Deleted() bool {
	return task.DeletedAt != ""
}

// TaskPatch describes an update to a task, or the attributes of a task to add. (The setter methods With* might incur
// an error, which will surface when marshalling to JSON or applying the patch.)
type TaskPatch struct {
	id    string
	attrs map[string]string // JSON-encoded values
	err   error             // If an error occurred in any of the .With* methods.
}

// NewTaskPatch starts a patch for the task with the given id. Use the empty id for a new task.
func NewTaskPatch(id string) *TaskPatch {
	var task TaskPatch
	task.id = id
	task.attrs = make(map[string]string)
	return &task
}

func (task *TaskPatch) set(key string, value interface{}) *TaskPatch {
	if task.err != nil {
		return task
	}
	b, err := json.Marshal(value)
	if err != nil {
		task.err = fmt.Errorf("setting %s: %w", key, err)
	} else {
		task.attrs[key] = string(b)
	}
	return task
}

func (task *TaskPatch) WithTitle(value string) *TaskPatch {
	return task.set("title", value)
}

func (task *TaskPatch) WithStatus(value Status) *TaskPatch {
	return task.set("status", value)
}

func (task *TaskPatch) WithProjectID(value string) *TaskPatch {
	return task.set("projectId", value)
}

func (task *TaskPatch) WithAreaID(value string) *TaskPatch {
	return task.set("areaId", value)
}

func (task *TaskPatch) WithDescription(value string) *TaskPatch {
	return task.set("description", value)
}

// WithDueDate sets the due date, in any of the stored forms: 2019-08-07, 2019-08-07T21:20 (local time) or RFC 3339.
func (task *TaskPatch) WithDueDate(value string) *TaskPatch {
	return task.set("dueDate", value)
}

func (task *TaskPatch) WithStartTime(value string) *TaskPatch {
	return task.set("startTime", value)
}

func (task *TaskPatch) WithReviewAt(value string) *TaskPatch {
	return task.set("reviewAt", value)
}

func (task *TaskPatch) WithTags(value ...string) *TaskPatch {
	if value == nil {
		value = []string{}
	}
	return task.set("tags", value)
}

func (task *TaskPatch) WithContexts(value ...string) *TaskPatch {
	if value == nil {
		value = []string{}
	}
	return task.set("contexts", value)
}

func (task *TaskPatch) WithRecurrence(value *Recurrence) *TaskPatch {
	return task.set("recurrence", value)
}

func (task *TaskPatch) WithChecklist(value ...ChecklistItem) *TaskPatch {
	return task.set("checklist", value)
}

func (task *TaskPatch) WithFocusedToday(value bool) *TaskPatch {
	return task.set("isFocusedToday", value)
}

// WithQuickAdd sets all the properties found by ParseQuickAdd.
func (task *TaskPatch) WithQuickAdd(q *QuickAdd) *TaskPatch {
	if q.Title != "" {
		task.WithTitle(q.Title)
	}
	if q.Status != "" {
		task.WithStatus(q.Status)
	}
	if q.DueDate != "" {
		task.WithDueDate(q.DueDate)
	}
	if q.Description != "" {
		task.WithDescription(q.Description)
	}
	if len(q.Tags) > 0 {
		task.WithTags(q.Tags...)
	}
	if len(q.Contexts) > 0 {
		task.WithContexts(q.Contexts...)
	}
	if q.ProjectID != "" {
		task.WithProjectID(q.ProjectID)
	}
	if q.AreaID != "" {
		task.WithAreaID(q.AreaID)
	}
	return task
}

// ID returns the id of the patched task.
func (task *TaskPatch) ID() string {
	return task.id
}

// Empty reports whether the patch sets no attributes.
func (task *TaskPatch) Empty() bool {
	return len(task.attrs) == 0
}

// MarshalJSON implements json.Marshaler. Attributes are sorted by name.
func (task *TaskPatch) MarshalJSON() ([]byte, error) {
	if task.err != nil {
		return nil, task.err
	}
	return marshalPatch(task.id, task.attrs), nil
}

// apply merges the patch into the given task.
func (task *TaskPatch) apply(target *Task) error {
	b, err := task.MarshalJSON()
	if err != nil {
		return err
	}
	id := target.ID
	if err := json.Unmarshal(b, target); err != nil {
		return fmt.Errorf("task %s: %w", id, err)
	}
	target.ID = id
	return nil
}

func marshalPatch(id string, attrs map[string]string) []byte {
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	buf := bytes.NewBuffer(nil)
	buf.WriteString(`{"id":` + quote(id))
	for _, k := range keys {
		_, _ = fmt.Fprintf(buf, `,%q:%s`, k, attrs[k])
	}
	buf.WriteString("}")
	return buf.Bytes()
}
