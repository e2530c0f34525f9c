package gtd

import (
	"bytes"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

var (
	// ErrCorrupted is returned by Load for a data file that can't be decoded.
	ErrCorrupted = errors.New("local data is corrupted")

	// ErrNotFound is returned when a command refers to an unknown entity.
	ErrNotFound = errors.New("entity not found")
)

// StoreOption configures a Store created by NewStore.
type StoreOption func(*Store) error

// WithDataPath is a store option to set the data file read by Load and written by Dump.
func WithDataPath(pathname string) StoreOption {
	return func(s *Store) error {
		s.path = pathname
		return nil
	}
}

// WithJournal is a store option to log all committed commands, one JSON object per line, to the specified file.
// Useful to find out what changed the data; not needed in normal operation.
func WithJournal(pathname string) StoreOption {
	return func(s *Store) error {
		f, err := os.OpenFile(pathname, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0600)
		if err == nil {
			s.journal = f
		}
		return err
	}
}

// WithClock is a store option to replace time.Now, meant for tests.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) error {
		s.now = now
		return nil
	}
}

// Settings holds the settings object of the data file. Its content belongs to other clients; the store only carries
// it over from Load to Dump.
type Settings map[string]interface{}

// Data is the content of the data file.
type Data struct {
	Tasks    []*Task    `json:"tasks" yaml:"tasks"`
	Projects []*Project `json:"projects" yaml:"projects"`
	Areas    []*Area    `json:"areas" yaml:"areas"`
	Settings Settings   `json:"settings" yaml:"settings,omitempty"`
}

// Store holds tasks, projects and areas in memory, and moves them from and to the data file.
type Store struct {
	path string

	// If non-nil, log all committed commands to this file, one per line, in JSON format.
	journal io.Writer

	data *Data

	// Commands, such as changing a task's title, are queued here and applied when the Commit() method is called.
	commands []*command

	now func() time.Time
}

// NewStore creates a store with no data. Call Load to read the data file.
func NewStore(opts ...StoreOption) (*Store, error) {
	s := &Store{
		data:    &Data{Settings: make(Settings)},
		journal: io.Discard,
		now:     time.Now,
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Path returns the data file path.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) sumPath() string {
	return s.path + ".sum"
}

// Load replaces the in-memory data with the content of the data file. The checksum file next to it holds the hash
// of what Dump last wrote; if the data file differs, another client changed it since, and it is loaded all the same.
// Data that can't be decoded is ErrCorrupted, and the in-memory data is left alone.
func (s *Store) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return err
	}
	var loaded Data
	if err := json.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("%s: %w: %w", s.path, ErrCorrupted, err)
	}
	changed, err := s.changedElsewhere(data)
	if err != nil {
		return err
	}
	if changed {
		log.WithField("path", s.path).Warning("Data file changed by another client since the last save")
	}
	if loaded.Settings == nil {
		loaded.Settings = make(Settings)
	}
	for _, t := range loaded.Tasks {
		if t.Tags == nil {
			t.Tags = []string{}
		}
		if t.Contexts == nil {
			t.Contexts = []string{}
		}
	}
	s.data = &loaded
	return nil
}

// changedElsewhere compares data with the checksum written by the last Dump. Other clients never write the checksum
// file, so a missing one means nothing is known.
func (s *Store) changedElsewhere(data []byte) (bool, error) {
	savedSum, err := os.ReadFile(s.sumPath())
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	sum := sha256.Sum256(data)
	return !bytes.Equal(savedSum, sum[:]), nil
}

// Dump saves the in-memory data to the data file, creating its directory if needed, and then writes the checksum
// file. The data file is replaced by renaming a temporary file, so readers never see it half written.
func (s *Store) Dump() error {
	data, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return err
	}
	sum := sha256.Sum256(data)
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*")
	if err != nil {
		return err
	}
	defer func() {
		_ = os.Remove(f.Name())
	}()
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	if err := os.Rename(f.Name(), s.path); err != nil {
		return err
	}
	return os.WriteFile(s.sumPath(), sum[:], 0600)
}

// Data returns the in-memory data. It should be treated as read-only; use the Queue* methods and Commit to modify it.
func (s *Store) Data() *Data {
	return s.data
}

// TaskByID looks up the task by id. The task should be treated as read-only. To update a task's property, the
// workflow is to enqueue commands, e.g., using TaskPatch and QueueTaskUpdate, then Commit them.
func (s *Store) TaskByID(id string) (*Task, bool) {
	for _, t := range s.data.Tasks {
		if t.ID == id {
			return t, true
		}
	}
	return nil, false
}

// ProjectByID is analogous to TaskByID.
func (s *Store) ProjectByID(id string) (*Project, bool) {
	for _, p := range s.data.Projects {
		if p.ID == id {
			return p, true
		}
	}
	return nil, false
}

// AreaByID is analogous to TaskByID.
func (s *Store) AreaByID(id string) (*Area, bool) {
	for _, a := range s.data.Areas {
		if a.ID == id {
			return a, true
		}
	}
	return nil, false
}

// ProjectByTitle finds a project that is not deleted by case-insensitive title.
func (s *Store) ProjectByTitle(title string) *Project {
	for _, p := range s.data.Projects {
		if !p.Deleted() && strings.EqualFold(p.Title, title) {
			return p
		}
	}
	return nil
}

// AreaByName finds an area that is not deleted by case-insensitive name.
func (s *Store) AreaByName(name string) *Area {
	for _, a := range s.data.Areas {
		if !a.Deleted() && strings.EqualFold(a.Name, name) {
			return a
		}
	}
	return nil
}

// Projects returns the projects that are not deleted.
func (s *Store) Projects() []*Project {
	return s.SearchProjects().WithIsDeleted(false).Results()
}

// Areas returns the areas that are not deleted.
func (s *Store) Areas() []*Area {
	return s.SearchAreas().WithIsDeleted(false).Results()
}

// timestamp returns the store's current time as stored in the data file.
func (s *Store) timestamp() string {
	return s.now().Format(time.RFC3339)
}
