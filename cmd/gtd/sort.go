package main

import "github.com/nicolagi/gtd"

// tasksByDue puts tasks without a due date last.
type tasksByDue []*gtd.Task

func (tasks tasksByDue) Len() int {
	return len(tasks)
}

func (tasks tasksByDue) Swap(i, j int) {
	tasks[i], tasks[j] = tasks[j], tasks[i]
}

func (tasks tasksByDue) Less(i, j int) bool {
	a, b := tasks[i].DueTime(), tasks[j].DueTime()
	if a.IsZero() || b.IsZero() {
		return !a.IsZero() && b.IsZero()
	}
	return a.Before(b)
}

type projectsByTitle []*gtd.Project

func (projects projectsByTitle) Len() int {
	return len(projects)
}

func (projects projectsByTitle) Swap(i, j int) {
	projects[i], projects[j] = projects[j], projects[i]
}

func (projects projectsByTitle) Less(i, j int) bool {
	return projects[i].Title < projects[j].Title
}
