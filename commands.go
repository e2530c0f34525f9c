package gtd

import "strings"

// These constants are among the possible values for the type property of a command.
const (
	taskAdd      = "task_add"
	taskUpdate   = "task_update"
	taskComplete = "task_complete"
	taskDelete   = "task_delete"
	taskRestore  = "task_restore"

	projectAdd     = "project_add"
	projectUpdate  = "project_update"
	projectArchive = "project_archive"
	projectDelete  = "project_delete"

	areaAdd    = "area_add"
	areaUpdate = "area_update"
	areaDelete = "area_delete"
)

type idContainer struct {
	ID string `json:"id"`
}

// command is a change to the data, queued by the Queue* methods and applied by Commit.
type command struct {
	Type string `json:"type"`

	// Identifies the command, to report which commands of a batch failed.
	UUID string `json:"uuid"`

	// A task patch, a project patch, an area patch, or an idContainer.
	Args interface{} `json:"args"`
}

func newCommand(cmdType string, args interface{}) *command {
	return &command{Type: cmdType, UUID: NewID(), Args: args}
}

func (s *Store) queue(cmdType string, args interface{}) {
	s.commands = append(s.commands, newCommand(cmdType, args))
}

// Pending returns the number of queued commands.
func (s *Store) Pending() int {
	return len(s.commands)
}

// QueueTaskAdd enqueues the creation of a task with the attributes in the patch; the patch id is ignored. The new
// task's id is returned straight away, so it can be used in further commands of the same batch.
func (s *Store) QueueTaskAdd(task *TaskPatch) (id string) {
	task.id = NewID()
	s.queue(taskAdd, task)
	return task.id
}

// QueueQuickAdd parses the text with ParseQuickAdd, resolving +Project and !Area against the store's data and
// relative dates against the store's clock, and enqueues the creation of the task. If no title is left after
// parsing, the whole text is used as title.
func (s *Store) QueueQuickAdd(text string) (id string, parsed *QuickAdd) {
	parsed = ParseQuickAdd(text, s.Projects(), s.now(), s.Areas()...)
	patch := NewTaskPatch("").WithQuickAdd(parsed)
	if parsed.Title == "" {
		patch.WithTitle(strings.TrimSpace(text))
	}
	return s.QueueTaskAdd(patch), parsed
}

func (s *Store) QueueTaskUpdate(task *TaskPatch) {
	s.queue(taskUpdate, task)
}

// QueueTaskComplete enqueues marking the task done. If the task recurs, its next instance is created on commit.
func (s *Store) QueueTaskComplete(id string) {
	s.queue(taskComplete, idContainer{ID: id})
}

// QueueTaskDelete enqueues a soft delete: the task stays in the data file with deletedAt set.
func (s *Store) QueueTaskDelete(id string) {
	s.queue(taskDelete, idContainer{ID: id})
}

func (s *Store) QueueTaskRestore(id string) {
	s.queue(taskRestore, idContainer{ID: id})
}

func (s *Store) QueueProjectAdd(project *ProjectPatch) (id string) {
	project.id = NewID()
	s.queue(projectAdd, project)
	return project.id
}

func (s *Store) QueueProjectUpdate(project *ProjectPatch) {
	s.queue(projectUpdate, project)
}

func (s *Store) QueueProjectArchive(id string) {
	s.queue(projectArchive, idContainer{ID: id})
}

func (s *Store) QueueProjectDelete(id string) {
	s.queue(projectDelete, idContainer{ID: id})
}

func (s *Store) QueueAreaAdd(area *AreaPatch) (id string) {
	area.id = NewID()
	s.queue(areaAdd, area)
	return area.id
}

func (s *Store) QueueAreaUpdate(area *AreaPatch) {
	s.queue(areaUpdate, area)
}

func (s *Store) QueueAreaDelete(id string) {
	s.queue(areaDelete, idContainer{ID: id})
}
