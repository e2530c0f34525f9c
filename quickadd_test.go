package gtd_test

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/nicolagi/gtd"
	"github.com/stretchr/testify/assert"
)

var quickAddNow = time.Date(2025, time.January, 1, 10, 0, 0, 0, time.UTC) // A Wednesday

func TestParseQuickAddAllTokens(t *testing.T) {
	got := gtd.ParseQuickAdd("Call mom @phone #family /next /due:tomorrow 5pm /note:ask about trip", nil, quickAddNow)
	want := &gtd.QuickAdd{
		Title:       "Call mom",
		Status:      gtd.Next,
		DueDate:     "2025-01-02T17:00:00Z",
		Description: "ask about trip",
		Tags:        []string{"#family"},
		Contexts:    []string{"@phone"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseQuickAdd mismatch (-want +got):\n%s", diff)
	}
}

func TestParseQuickAddProjects(t *testing.T) {
	projects := []*gtd.Project{
		{ID: "p1", Title: "MyProject", Status: gtd.ProjectActive},
		{ID: "p2", Title: "Project Name", Status: gtd.ProjectActive},
		{ID: "p3", Title: "Gone", Status: gtd.ProjectActive, DeletedAt: "2024-12-01T00:00:00Z"},
	}
	testCases := []struct {
		input        string
		title        string
		projectID    string
		projectTitle string
	}{
		{"Write report +MyProject", "Write report", "p1", ""},
		{"Write report +myproject", "Write report", "p1", ""},
		{"Plan roadmap +Project Name /next", "Plan roadmap", "p2", ""},
		{"Plan roadmap +Project Name soon", "Plan roadmap soon", "p2", ""},
		{"Draft outline +NewProject", "Draft outline", "", "NewProject"},
		{"Draft outline +New Big Thing @desk", "Draft outline", "", "New Big Thing"},
		{"Revive +Gone", "Revive", "", "Gone"},
		{"Use /project:abc123 explicitly +MyProject", "Use explicitly", "abc123", ""},
		{"One + two", "One + two", "", ""},
	}
	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			got := gtd.ParseQuickAdd(tc.input, projects, quickAddNow)
			assert.Equal(t, tc.title, got.Title)
			assert.Equal(t, tc.projectID, got.ProjectID)
			assert.Equal(t, tc.projectTitle, got.ProjectTitle)
		})
	}
}

func TestParseQuickAddUnknownProjectWithoutProjects(t *testing.T) {
	assert.NotPanics(t, func() {
		got := gtd.ParseQuickAdd("Write report +Nowhere", nil, quickAddNow)
		assert.Equal(t, "", got.ProjectID)
		assert.Equal(t, "Nowhere", got.ProjectTitle)
	})
}

func TestParseQuickAddAreas(t *testing.T) {
	areas := []*gtd.Area{
		{ID: "a1", Name: "Work"},
		{ID: "a2", Name: "Personal"},
		{ID: "a3", Name: "Side Projects"},
	}
	testCases := []struct {
		input  string
		title  string
		areaID string
	}{
		{"Draft report !Work /next", "Draft report", "a1"},
		{"Plan budget /area:Personal /next", "Plan budget", "a2"},
		{"Ship it !Side Projects", "Ship it", "a3"},
		{"Ship it /area: side projects", "Ship it", "a3"},
		{"Wow !Unknown", "Wow !Unknown", ""},
		{"Nope /area:Unknown", "Nope", ""},
	}
	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			got := gtd.ParseQuickAdd(tc.input, nil, quickAddNow, areas...)
			assert.Equal(t, tc.title, got.Title)
			assert.Equal(t, tc.areaID, got.AreaID)
		})
	}
}

func TestParseQuickAddUnicode(t *testing.T) {
	got := gtd.ParseQuickAdd("计划 @工作 #项目 /next", nil, quickAddNow)
	assert.Equal(t, "计划", got.Title)
	assert.Equal(t, []string{"@工作"}, got.Contexts)
	assert.Equal(t, []string{"#项目"}, got.Tags)
	assert.Equal(t, gtd.Next, got.Status)
}

func TestParseQuickAddTokens(t *testing.T) {
	testCases := []struct {
		input    string
		title    string
		contexts []string
		tags     []string
		status   gtd.Status
	}{
		{"Buy milk", "Buy milk", nil, nil, ""},
		{"Buy milk @store @store #errand", "Buy milk", []string{"@store"}, []string{"#errand"}, ""},
		{"Fix @home/garden fence", "Fix fence", []string{"@home/garden"}, nil, ""},
		{"Email a@b.com", "Email a@b.com", nil, nil, ""},
		{"Lone @ and # markers", "Lone @ and # markers", nil, nil, ""},
		{"Rate 5/5 /Waiting", "Rate 5/5", nil, nil, gtd.Waiting},
		{"Do it /later /someday", "Do it /later", nil, nil, gtd.Someday},
		{"  spaced   out  ", "spaced out", nil, nil, ""},
		{"", "", nil, nil, ""},
	}
	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			got := gtd.ParseQuickAdd(tc.input, nil, quickAddNow)
			assert.Equal(t, tc.title, got.Title)
			assert.Equal(t, tc.contexts, got.Contexts)
			assert.Equal(t, tc.tags, got.Tags)
			assert.Equal(t, tc.status, got.Status)
		})
	}
}

func TestParseQuickAddNote(t *testing.T) {
	testCases := []struct {
		input       string
		title       string
		description string
		status      gtd.Status
	}{
		{"Pay rent /note:before the   5th, @bank", "Pay rent", "before the   5th, @bank", ""},
		{"Pay rent /note:transfer /next", "Pay rent", "transfer", gtd.Next},
		{"Pay rent /note: see 1/2 of it /due:today", "Pay rent", "see 1/2 of it", ""},
		{"Pay rent /NOTE:upper", "Pay rent", "upper", ""},
		{"Pay rent /note:", "Pay rent", "", ""},
	}
	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			got := gtd.ParseQuickAdd(tc.input, nil, quickAddNow)
			assert.Equal(t, tc.title, got.Title)
			assert.Equal(t, tc.description, got.Description)
			assert.Equal(t, tc.status, got.Status)
		})
	}
}

func TestParseQuickAddDue(t *testing.T) {
	testCases := []struct {
		input string
		title string
		due   string
	}{
		{"Call /due:tomorrow 5pm", "Call", "2025-01-02T17:00:00Z"},
		{"Call /due:tomorrow at 17:30", "Call", "2025-01-02T17:30:00Z"},
		{"Call /due:today", "Call", "2025-01-01"},
		{"Call /due:5pm", "Call", "2025-01-01T17:00:00Z"},
		{"Call /due:tomorrow back", "Call back", "2025-01-02"},
		{"Call /due:friday", "Call", "2025-01-03"},
		{"Call /due:wed", "Call", "2025-01-08"},
		{"Call /due:next week", "Call", "2025-01-08"},
		{"Call /due:in 3 days", "Call", "2025-01-04"},
		{"Call /due:2025-03-01 9:30am", "Call", "2025-03-01T09:30:00Z"},
		{"Call /due: tomorrow noon", "Call", "2025-01-02T12:00:00Z"},
		{"Call /due:someday-ish later", "Call later", ""},
		{"Call /due:25pm", "Call", ""},
	}
	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			got := gtd.ParseQuickAdd(tc.input, nil, quickAddNow)
			assert.Equal(t, tc.title, got.Title)
			assert.Equal(t, tc.due, got.DueDate)
		})
	}
}

func TestParseQuickAddLocation(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	now := time.Date(2025, time.January, 1, 23, 0, 0, 0, tokyo)
	got := gtd.ParseQuickAdd("Call /due:tomorrow 8am", nil, now)
	assert.Equal(t, "2025-01-02T08:00:00+09:00", got.DueDate)
}
