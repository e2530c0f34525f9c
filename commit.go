package gtd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

// ErrEmptyTitle is returned for a task or project added without a title.
var ErrEmptyTitle = errors.New("empty title")

// CommitError reports the commands of a batch that could not be applied, by command UUID.
type CommitError map[string]error

func (e CommitError) Error() string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteString("; ")
		}
		_, _ = fmt.Fprintf(&b, "%s: %v", k, e[k])
	}
	return b.String()
}

// Unwrap allows errors.Is and errors.As to look at the errors of the single commands.
func (e CommitError) Unwrap() []error {
	var errs []error
	for _, err := range e {
		errs = append(errs, err)
	}
	return errs
}

// Commit applies all queued commands, in order, and empties the queue. If any of them fails, a CommitError is
// returned with all failures; the commands that succeeded stay applied. The data file is not written, call Dump
// for that.
func (s *Store) Commit() error {
	commands := s.commands
	s.commands = nil
	if len(commands) == 0 {
		return nil
	}
	b, err := json.Marshal(commands)
	if err != nil {
		// A patch failed to build. Apply none of the batch.
		return fmt.Errorf("commit: %w", err)
	}
	_, _ = s.journal.Write([]byte(`{"type": "commands", "commands": `))
	_, _ = s.journal.Write(b)
	_, _ = s.journal.Write([]byte("}\n"))

	failed := make(CommitError)
	for _, c := range commands {
		if err := s.apply(c); err != nil {
			log.WithFields(log.Fields{
				"op":    c.Type,
				"uuid":  c.UUID,
				"cause": err,
			}).Debug("Command failed")
			failed[c.UUID] = fmt.Errorf("%s: %w", c.Type, err)
		}
	}
	if len(failed) != 0 {
		return failed
	}
	return nil
}

// Close closes the journal, if any.
func (s *Store) Close() error {
	if c, ok := s.journal.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func (s *Store) apply(c *command) error {
	now := s.now()
	ts := now.Format(time.RFC3339)
	switch c.Type {
	case taskAdd:
		patch := c.Args.(*TaskPatch)
		task := &Task{
			ID:        patch.id,
			Status:    Inbox,
			Tags:      []string{},
			Contexts:  []string{},
			CreatedAt: ts,
			UpdatedAt: ts,
		}
		if err := patch.apply(task); err != nil {
			return err
		}
		if strings.TrimSpace(task.Title) == "" {
			return ErrEmptyTitle
		}
		s.data.Tasks = append(s.data.Tasks, task)
	case taskUpdate:
		patch := c.Args.(*TaskPatch)
		task, err := s.task(patch.id)
		if err != nil {
			return err
		}
		if err := patch.apply(task); err != nil {
			return err
		}
		task.UpdatedAt = ts
	case taskComplete:
		task, err := s.task(c.Args.(idContainer).ID)
		if err != nil {
			return err
		}
		if task.Status == Done {
			return nil
		}
		previous := task.Status
		task.Status = Done
		task.CompletedAt = ts
		task.IsFocusedToday = false
		task.UpdatedAt = ts
		if next := NextRecurringTask(task, now, previous); next != nil {
			s.data.Tasks = append(s.data.Tasks, next)
		}
	case taskDelete, taskRestore:
		task, err := s.task(c.Args.(idContainer).ID)
		if err != nil {
			return err
		}
		if c.Type == taskDelete {
			task.DeletedAt = ts
		} else {
			task.DeletedAt = ""
		}
		task.UpdatedAt = ts
	case projectAdd:
		patch := c.Args.(*ProjectPatch)
		project := &Project{
			ID:        patch.id,
			Status:    ProjectActive,
			TagIDs:    []string{},
			CreatedAt: ts,
			UpdatedAt: ts,
		}
		if err := patch.apply(project); err != nil {
			return err
		}
		if strings.TrimSpace(project.Title) == "" {
			return ErrEmptyTitle
		}
		s.data.Projects = append(s.data.Projects, project)
	case projectUpdate:
		patch := c.Args.(*ProjectPatch)
		project, err := s.project(patch.id)
		if err != nil {
			return err
		}
		if err := patch.apply(project); err != nil {
			return err
		}
		project.UpdatedAt = ts
	case projectArchive, projectDelete:
		project, err := s.project(c.Args.(idContainer).ID)
		if err != nil {
			return err
		}
		if c.Type == projectArchive {
			project.Status = ProjectArchived
		} else {
			project.DeletedAt = ts
		}
		project.UpdatedAt = ts
	case areaAdd:
		patch := c.Args.(*AreaPatch)
		area := &Area{
			ID:        patch.id,
			Order:     len(s.data.Areas),
			CreatedAt: ts,
			UpdatedAt: ts,
		}
		if err := patch.apply(area); err != nil {
			return err
		}
		s.data.Areas = append(s.data.Areas, area)
	case areaUpdate:
		patch := c.Args.(*AreaPatch)
		area, err := s.area(patch.id)
		if err != nil {
			return err
		}
		if err := patch.apply(area); err != nil {
			return err
		}
		area.UpdatedAt = ts
	case areaDelete:
		area, err := s.area(c.Args.(idContainer).ID)
		if err != nil {
			return err
		}
		area.DeletedAt = ts
		area.UpdatedAt = ts
	default:
		return fmt.Errorf("unknown command type %q", c.Type)
	}
	return nil
}

func (s *Store) task(id string) (*Task, error) {
	if id == "" {
		return nil, ErrZeroID
	}
	task, ok := s.TaskByID(id)
	if !ok {
		return nil, fmt.Errorf("task %s: %w", id, ErrNotFound)
	}
	return task, nil
}

func (s *Store) project(id string) (*Project, error) {
	if id == "" {
		return nil, ErrZeroID
	}
	project, ok := s.ProjectByID(id)
	if !ok {
		return nil, fmt.Errorf("project %s: %w", id, ErrNotFound)
	}
	return project, nil
}

func (s *Store) area(id string) (*Area, error) {
	if id == "" {
		return nil, ErrZeroID
	}
	area, ok := s.AreaByID(id)
	if !ok {
		return nil, fmt.Errorf("area %s: %w", id, ErrNotFound)
	}
	return area, nil
}
