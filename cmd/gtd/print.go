package main

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/nicolagi/gtd"
)

// now is replaced in tests.
var now = time.Now

var statusColors = map[gtd.Status]*color.Color{
	gtd.Inbox:    color.New(color.FgCyan),
	gtd.Next:     color.New(color.FgGreen, color.Bold),
	gtd.Waiting:  color.New(color.FgYellow),
	gtd.Someday:  color.New(color.FgMagenta),
	gtd.Done:     color.New(color.FgHiBlack),
	gtd.Archived: color.New(color.FgHiBlack),
}

func formatStatus(status gtd.Status) string {
	label := "[" + string(status) + "]"
	if c, ok := statusColors[status]; ok {
		return c.Sprint(label)
	}
	return label
}

// relativeDurationFormat formats a duration as days and hours, or minutes if shorter than an hour, e.g., 2d3h.
// Negative durations (overdue tasks) get a minus sign.
func relativeDurationFormat(d time.Duration) string {
	var buf bytes.Buffer
	if d < 0 {
		buf.WriteByte('-')
		d = -d
	}
	t := d / (24 * time.Hour)
	if t != 0 {
		fmt.Fprintf(&buf, "%dd", t)
	}
	d -= t * 24 * time.Hour
	t = d / time.Hour
	if t != 0 {
		fmt.Fprintf(&buf, "%dh", t)
	}
	d -= t * time.Hour
	if t == 0 && buf.Len() <= 1 {
		fmt.Fprintf(&buf, "%dm", d/time.Minute)
	}
	return buf.String()
}

// formatTaskLine gives the one-line form of a task: id, status, title and due date, if any.
func formatTaskLine(task *gtd.Task) string {
	parts := []string{task.ID, formatStatus(task.Status), task.Title}
	if task.DueDate != "" {
		due := task.DueDate
		if len(due) > len(gtd.DateLayout) {
			due = due[:len(gtd.DateLayout)]
		}
		if t := task.DueTime(); !t.IsZero() && task.Status.Open() {
			parts = append(parts, fmt.Sprintf("(due %s, %s)", due, relativeDurationFormat(t.Sub(now()))))
		} else {
			parts = append(parts, fmt.Sprintf("(due %s)", due))
		}
	}
	return strings.Join(parts, " ")
}

func printTasks(w io.Writer, tasks []*gtd.Task) {
	for _, task := range tasks {
		_, _ = fmt.Fprintln(w, formatTaskLine(task))
	}
}

func printProjects(w io.Writer, projects []*gtd.Project) {
	for _, p := range projects {
		_, _ = fmt.Fprintf(w, "%s %s\n", p.ID, p.Title)
	}
}

func printTask(w io.Writer, task *gtd.Task) {
	_, _ = fmt.Fprintf(w, "ID: %s\n", task.ID)
	_, _ = fmt.Fprintf(w, "Title: %s\n", task.Title)
	_, _ = fmt.Fprintf(w, "Status: %s\n", formatStatus(task.Status))
	_, _ = fmt.Fprintf(w, "Project: %s\n", projectTitle(task.ProjectID))
	_, _ = fmt.Fprintf(w, "Area: %s\n", areaName(task.AreaID))
	_, _ = fmt.Fprintf(w, "Contexts: %s\n", strings.Join(task.Contexts, " "))
	_, _ = fmt.Fprintf(w, "Tags: %s\n", strings.Join(task.Tags, " "))
	_, _ = fmt.Fprintf(w, "Due: %s\n", task.DueDate)
	if task.Recurrence.EffectiveRule() != "" {
		var days []string
		for _, d := range task.Recurrence.Weekdays() {
			days = append(days, string(d))
		}
		_, _ = fmt.Fprintf(w, "Recurrence: %s (%s) %s\n",
			task.Recurrence.EffectiveRule(), task.Recurrence.EffectiveStrategy(), strings.Join(days, ","))
	}
	if task.CompletedAt != "" {
		_, _ = fmt.Fprintf(w, "Completed: %s\n", task.CompletedAt)
	}
	for _, item := range task.Checklist {
		mark := " "
		if item.IsCompleted {
			mark = "x"
		}
		_, _ = fmt.Fprintf(w, "[%s] %s\n", mark, item.Title)
	}
	if task.Description != "" {
		_, _ = fmt.Fprintf(w, "\n%s\n", task.Description)
	}
}

func projectTitle(id string) string {
	if id == "" {
		return ""
	}
	if p, ok := store.ProjectByID(id); ok {
		return p.Title
	}
	return id
}

func areaName(id string) string {
	if id == "" {
		return ""
	}
	if a, ok := store.AreaByID(id); ok {
		return a.Name
	}
	return id
}
