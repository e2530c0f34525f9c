package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nicolagi/gtd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// isolate keeps the user's config and environment out of the test, and returns a data file path.
func isolate(t *testing.T) string {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	t.Setenv("GTD_DATA", "")
	t.Setenv("MINDWTR_DATA", "")
	t.Setenv("GTD_LOG_LEVEL", "")
	return filepath.Join(t.TempDir(), "data.json")
}

func run(t *testing.T, dataPath string, args ...string) (string, error) {
	t.Helper()
	root := newRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--no-color", "--log-level", "error", "--data", dataPath}, args...))
	err := root.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, dataPath string, args ...string) string {
	t.Helper()
	out, err := run(t, dataPath, args...)
	require.NoError(t, err, out)
	return out
}

const recurringData = `{
  "tasks": [
    {"id": "t1", "title": "Pay rent", "status": "next", "tags": [], "contexts": ["@home"],
     "dueDate": "2030-01-31", "recurrence": {"rule": "monthly", "strategy": "strict"},
     "checklist": [{"id": "c1", "title": "transfer", "isCompleted": true}],
     "createdAt": "2029-12-01T00:00:00Z", "updatedAt": "2029-12-01T00:00:00Z"}
  ],
  "projects": [],
  "settings": {}
}`

func writeData(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
}

func TestRootCommand(t *testing.T) {
	root := newRootCommand()
	assert.Equal(t, "gtd", root.Use)
	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	for _, expected := range []string{"add", "list", "search", "complete", "show", "export", "rrule"} {
		assert.Contains(t, names, expected)
	}
}

func TestAddListComplete(t *testing.T) {
	data := isolate(t)

	id := strings.TrimSpace(mustRun(t, data, "add", "Water plants @home /next /due:2030-01-02"))
	require.True(t, gtd.ValidID(id), id)
	mustRun(t, data, "add", "Buy milk @store #errand")
	mustRun(t, data, "add", "Learn", "piano", "/someday")

	out := mustRun(t, data, "list")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], id+" [next] Water plants (due 2030-01-02"), lines[0])
	assert.Contains(t, lines[1], "[inbox] Buy milk")
	assert.Contains(t, lines[2], "[someday] Learn piano")

	assert.Equal(t, "ok\n", mustRun(t, data, "complete", id))
	out = mustRun(t, data, "list")
	assert.NotContains(t, out, "Water plants")
	out = mustRun(t, data, "list", "--all")
	assert.Contains(t, out, id+" [done] Water plants (due 2030-01-02)")

	out = mustRun(t, data, "list", "--status", "inbox")
	assert.Equal(t, 1, strings.Count(out, "\n"))
	assert.Contains(t, out, "Buy milk")

	assert.FileExists(t, data+".sum")
}

func TestAddCreateProject(t *testing.T) {
	data := isolate(t)
	id := strings.TrimSpace(mustRun(t, data, "add", "Draft outline +Book Launch"))
	out := mustRun(t, data, "show", id)
	assert.Contains(t, out, "Project: \n")

	id = strings.TrimSpace(mustRun(t, data, "add", "--create-project", "Draft outline +Book Launch"))
	out = mustRun(t, data, "show", id)
	assert.Contains(t, out, "Project: Book Launch\n")

	// Now the project exists and is matched.
	id = strings.TrimSpace(mustRun(t, data, "add", "Pick cover +book launch"))
	out = mustRun(t, data, "show", id)
	assert.Contains(t, out, "Title: Pick cover\n")
	assert.Contains(t, out, "Project: Book Launch\n")
}

func TestCompleteRecurring(t *testing.T) {
	data := isolate(t)
	writeData(t, data, recurringData)

	assert.Equal(t, "ok\n", mustRun(t, data, "complete", "t1"))
	out := mustRun(t, data, "list")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "[next] Pay rent (due 2030-02-28")

	nextID := strings.Fields(lines[0])[0]
	out = mustRun(t, data, "show", nextID)
	assert.Contains(t, out, "Recurrence: monthly (strict)")
	assert.Contains(t, out, "[ ] transfer")
}

func TestCompleteUnknown(t *testing.T) {
	data := isolate(t)
	writeData(t, data, recurringData)
	_, err := run(t, data, "complete", "nope")
	assert.True(t, errors.Is(err, gtd.ErrNotFound), "got %v", err)
}

func TestListQuery(t *testing.T) {
	data := isolate(t)
	mustRun(t, data, "add", "Mow lawn @home/garden")
	mustRun(t, data, "add", "Buy nails @home #errand")
	mustRun(t, data, "add", "Call plumber @phone /waiting")

	out := mustRun(t, data, "list", "--query", "@home -#errand")
	assert.Contains(t, out, "Mow lawn")
	assert.NotContains(t, out, "Buy nails")
	assert.NotContains(t, out, "Call plumber")

	out = mustRun(t, data, "list", "--query", "/waiting plumber")
	assert.Equal(t, 1, strings.Count(out, "\n"))
	assert.Contains(t, out, "Call plumber")

	_, err := run(t, data, "list", "--status", "later")
	assert.Error(t, err)
}

func TestSearch(t *testing.T) {
	data := isolate(t)
	mustRun(t, data, "add", "--create-project", "Order tiles +Kitchen remodel")
	mustRun(t, data, "add", "Ask about kitchen sink")
	mustRun(t, data, "add", "Unrelated")

	out := mustRun(t, data, "search", "kitchen")
	assert.Contains(t, out, "Projects:\n")
	assert.Contains(t, out, " Kitchen remodel\n")
	assert.Contains(t, out, "Tasks:\n")
	assert.Contains(t, out, "Ask about kitchen sink")
	assert.NotContains(t, out, "Order tiles")
	assert.NotContains(t, out, "Unrelated")

	out = mustRun(t, data, "search", "+kitchen")
	assert.NotContains(t, out, "Projects:")
	assert.Contains(t, out, "Order tiles")
}

func TestExport(t *testing.T) {
	data := isolate(t)
	writeData(t, data, recurringData)

	out := mustRun(t, data, "export")
	assert.Contains(t, out, `"title": "Pay rent"`)

	out = mustRun(t, data, "export", "--format", "yaml")
	var exported gtd.Data
	require.NoError(t, yaml.Unmarshal([]byte(out), &exported))
	require.Len(t, exported.Tasks, 1)
	assert.Equal(t, "Pay rent", exported.Tasks[0].Title)
	assert.Equal(t, gtd.Monthly, exported.Tasks[0].Recurrence.Rule)
	assert.Equal(t, []string{"@home"}, exported.Tasks[0].Contexts)

	_, err := run(t, data, "export", "--format", "xml")
	assert.Error(t, err)
}

func TestRRule(t *testing.T) {
	data := isolate(t)
	assert.Equal(t, "FREQ=WEEKLY;BYDAY=MO,WE\n", mustRun(t, data, "rrule", "build", "weekly", "WE", "mo"))
	assert.Equal(t, "FREQ=DAILY\n", mustRun(t, data, "rrule", "build", "Daily", "MO"))
	assert.Equal(t, "rule: monthly\nbyDay: SU,FR\n", mustRun(t, data, "rrule", "parse", "FREQ=MONTHLY;BYDAY=SU,FR"))

	_, err := run(t, data, "rrule", "build", "hourly")
	assert.Error(t, err)
	_, err = run(t, data, "rrule", "parse", "BYDAY=MO")
	assert.Error(t, err)

	// No data file is needed.
	assert.NoFileExists(t, data)
}

func TestCorruptedDataFileIsNotOverwritten(t *testing.T) {
	data := isolate(t)
	mustRun(t, data, "add", "Buy milk")
	b, err := os.ReadFile(data)
	require.NoError(t, err)
	truncated := string(b[:len(b)/2])
	writeData(t, data, truncated)

	_, err = run(t, data, "add", "Buy bread")
	assert.True(t, errors.Is(err, gtd.ErrCorrupted), "got %v", err)
	b, err = os.ReadFile(data)
	require.NoError(t, err)
	assert.Equal(t, truncated, string(b))
}

func TestDataFileChangedByAnotherClient(t *testing.T) {
	data := isolate(t)
	mustRun(t, data, "add", "Buy milk")
	b, err := os.ReadFile(data)
	require.NoError(t, err)
	writeData(t, data, strings.Replace(string(b), "milk", "beer", 1)+"\n")

	mustRun(t, data, "add", "Buy bread")
	out := mustRun(t, data, "list")
	assert.Contains(t, out, "Buy beer")
	assert.Contains(t, out, "Buy bread")
	assert.NotContains(t, out, "Buy milk")
}
