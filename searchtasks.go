package gtd

import "strings"

type taskPredicate func(*Task) bool

func negate(p taskPredicate) taskPredicate {
	return func(task *Task) bool {
		return !p(task)
	}
}

type TaskScan struct {
	store      *Store
	predicates []taskPredicate
}

// Not negates the last predicate added.  It will panic if no predicates were added.
func (s *TaskScan) Not() *TaskScan {
	i := len(s.predicates) - 1
	s.predicates[i] = negate(s.predicates[i])
	return s
}

// WithStatus looks for tasks with any of the given statuses, that is, arguments are ORed together.
func (s *TaskScan) WithStatus(value ...Status) *TaskScan {
	s.predicates = append(s.predicates, func(task *Task) bool {
		for _, status := range value {
			if task.Status == status {
				return true
			}
		}
		return false
	})
	return s
}

// WithOpen looks for tasks that are neither done nor archived.
func (s *TaskScan) WithOpen() *TaskScan {
	s.predicates = append(s.predicates, func(task *Task) bool {
		return task.Status.Open()
	})
	return s
}

// WithProjectID looks for tasks in any of the given projects.
func (s *TaskScan) WithProjectID(value ...string) *TaskScan {
	s.predicates = append(s.predicates, func(task *Task) bool {
		for _, pid := range value {
			if task.ProjectID == pid {
				return true
			}
		}
		return false
	})
	return s
}

// WithContext looks for tasks with the given context (e.g., @phone), case-insensitive. A context also matches its
// sub-contexts, so @home matches @home/garden.
func (s *TaskScan) WithContext(context string) *TaskScan {
	s.predicates = append(s.predicates, func(task *Task) bool {
		return hasToken(task.Contexts, context)
	})
	return s
}

// WithTag is like WithContext, for tags.
func (s *TaskScan) WithTag(tag string) *TaskScan {
	s.predicates = append(s.predicates, func(task *Task) bool {
		return hasToken(task.Tags, tag)
	})
	return s
}

func hasToken(tokens []string, needle string) bool {
	prefix := strings.ToLower(needle) + "/"
	for _, t := range tokens {
		if strings.EqualFold(t, needle) || strings.HasPrefix(strings.ToLower(t), prefix) {
			return true
		}
	}
	return false
}

// WithText looks for tasks whose title or description contains the given substring, case-insensitive.
func (s *TaskScan) WithText(needle string) *TaskScan {
	needle = strings.ToLower(needle)
	s.predicates = append(s.predicates, func(task *Task) bool {
		return strings.Contains(strings.ToLower(task.Title), needle) ||
			strings.Contains(strings.ToLower(task.Description), needle)
	})
	return s
}

func (s *TaskScan) WithDue() *TaskScan {
	s.predicates = append(s.predicates, func(task *Task) bool {
		return task.DueDate != ""
	})
	return s
}

func (s *TaskScan) WithIsDeleted(value bool) *TaskScan {
	s.predicates = append(s.predicates, func(task *Task) bool {
		return task.Deleted() == value
	})
	return s
}

func (s *TaskScan) Results() []*Task {
	var results []*Task
	for _, task := range s.store.data.Tasks {
		if s.match(task) {
			results = append(results, task)
		}
	}
	return results
}

func (s *TaskScan) match(task *Task) bool {
	for _, match := range s.predicates {
		if !match(task) {
			return false
		}
	}
	return true
}

func (s *Store) SearchTasks() *TaskScan {
	return &TaskScan{
		store: s,
	}
}
