package gtd

import (
	"encoding/json"
	"strings"
	"time"
)

// Rule is the frequency of a recurring task.
type Rule string

const (
	Daily   Rule = "daily"
	Weekly  Rule = "weekly"
	Monthly Rule = "monthly"
	Yearly  Rule = "yearly"
)

// Rules lists the valid frequencies.
var Rules = []Rule{Daily, Weekly, Monthly, Yearly}

// Valid reports whether r is one of Rules.
func (r Rule) Valid() bool {
	switch r {
	case Daily, Weekly, Monthly, Yearly:
		return true
	}
	return false
}

// Strategy decides what the next occurrence of a recurring task is computed from.
type Strategy string

const (
	// Strict reschedules from the original due date, regardless of when the task was completed.
	Strict Strategy = "strict"
	// Fluid reschedules from the completion time.
	Fluid Strategy = "fluid"
)

// Weekday is a two-letter RFC 5545 weekday token.
type Weekday string

const (
	Sunday    Weekday = "SU"
	Monday    Weekday = "MO"
	Tuesday   Weekday = "TU"
	Wednesday Weekday = "WE"
	Thursday  Weekday = "TH"
	Friday    Weekday = "FR"
	Saturday  Weekday = "SA"
)

// WeekdayOrder is indexed by time.Weekday.
var WeekdayOrder = []Weekday{Sunday, Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}

// WeekdayOf returns the token for a time.Weekday.
func WeekdayOf(day time.Weekday) Weekday {
	return WeekdayOrder[day]
}

// Recurrence describes how a task repeats. In data files it is either an object with the fields below or just the
// rule as a string; both forms are accepted by UnmarshalJSON.
type Recurrence struct {
	Rule     Rule      `json:"rule" yaml:"rule"`
	Strategy Strategy  `json:"strategy,omitempty" yaml:"strategy,omitempty"`
	ByDay    []Weekday `json:"byDay,omitempty" yaml:"byDay,omitempty"`

	// Optional RFC 5545 fragment, e.g., FREQ=WEEKLY;BYDAY=MO,WE. Other clients may store only this.
	RRule string `json:"rrule,omitempty" yaml:"rrule,omitempty"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *Recurrence) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var rule string
		if err := json.Unmarshal(b, &rule); err != nil {
			return err
		}
		*r = Recurrence{Rule: Rule(rule)}
		return nil
	}
	type plain Recurrence
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*r = Recurrence(p)
	return nil
}

// EffectiveRule returns the recurrence rule, falling back on the frequency in the RRULE string. The empty rule means
// the task does not actually recur.
func (r *Recurrence) EffectiveRule() Rule {
	if r == nil {
		return ""
	}
	if r.Rule.Valid() {
		return r.Rule
	}
	if r.RRule != "" {
		rule, _ := ParseRRule(r.RRule)
		return rule
	}
	return ""
}

// EffectiveStrategy returns Fluid only if explicitly set, Strict otherwise.
func (r *Recurrence) EffectiveStrategy() Strategy {
	if r != nil && r.Strategy == Fluid {
		return Fluid
	}
	return Strict
}

// Weekdays returns the explicit weekdays if any, otherwise those in the RRULE string. The string is parsed anew on
// each call.
func (r *Recurrence) Weekdays() []Weekday {
	if r == nil {
		return nil
	}
	if days := normalizeWeekdays(r.ByDay); len(days) > 0 {
		return days
	}
	if r.RRule != "" {
		_, days := ParseRRule(r.RRule)
		return days
	}
	return nil
}

// String returns the RRULE form of the recurrence, e.g., FREQ=WEEKLY;BYDAY=MO,FR.
func (r *Recurrence) String() string {
	if r == nil {
		return ""
	}
	if r.RRule != "" {
		return r.RRule
	}
	return BuildRRule(r.Rule, r.ByDay...)
}

func (r *Recurrence) clone() *Recurrence {
	if r == nil {
		return nil
	}
	c := *r
	c.ByDay = append([]Weekday(nil), r.ByDay...)
	return &c
}

// normalizeWeekdays upper-cases and trims the tokens, drops unknown ones and duplicates, keeping the first
// occurrence order.
func normalizeWeekdays(days []Weekday) []Weekday {
	var normalized []Weekday
	seen := make(map[Weekday]bool)
	for _, day := range days {
		d := Weekday(strings.ToUpper(strings.TrimSpace(string(day))))
		if seen[d] || !d.valid() {
			continue
		}
		seen[d] = true
		normalized = append(normalized, d)
	}
	return normalized
}

func (d Weekday) valid() bool {
	for _, w := range WeekdayOrder {
		if d == w {
			return true
		}
	}
	return false
}

// BuildRRule serializes a rule and its weekdays, e.g., FREQ=WEEKLY;BYDAY=MO,WE. Weekdays are emitted in calendar
// order starting from Sunday; they are only meaningful, and so only emitted, for weekly and monthly rules.
func BuildRRule(rule Rule, byDay ...Weekday) string {
	parts := []string{"FREQ=" + strings.ToUpper(string(rule))}
	if days := normalizeWeekdays(byDay); len(days) > 0 && (rule == Weekly || rule == Monthly) {
		var ordered []string
		for _, w := range WeekdayOrder {
			for _, d := range days {
				if d == w {
					ordered = append(ordered, string(w))
				}
			}
		}
		parts = append(parts, "BYDAY="+strings.Join(ordered, ","))
	}
	return strings.Join(parts, ";")
}

// ParseRRule is the inverse of BuildRRule. It never fails: an unknown or missing frequency gives the empty rule,
// and missing or unrecognized weekdays give an empty list.
func ParseRRule(text string) (Rule, []Weekday) {
	tokens := make(map[string]string)
	for _, part := range strings.Split(text, ";") {
		kv := strings.SplitN(part, "=", 2)
		if len(kv) != 2 {
			continue
		}
		key, value := strings.ToUpper(strings.TrimSpace(kv[0])), strings.TrimSpace(kv[1])
		if key != "" && value != "" {
			tokens[key] = value
		}
	}
	var rule Rule
	if freq := Rule(strings.ToLower(tokens["FREQ"])); freq.Valid() {
		rule = freq
	}
	var days []Weekday
	if byDay, ok := tokens["BYDAY"]; ok {
		for _, d := range strings.Split(byDay, ",") {
			days = append(days, Weekday(d))
		}
	}
	return rule, normalizeWeekdays(days)
}

// NextOccurrence computes the occurrence that follows base. Weekly rules with weekdays pick the first of the
// following seven days that is one of them. Monthly and yearly steps clamp to the end of shorter months; weekdays
// of a monthly rule are kept in its RRULE but do not move the date.
func NextOccurrence(base time.Time, rule Rule, byDay []Weekday) time.Time {
	days := normalizeWeekdays(byDay)
	switch rule {
	case Daily:
		return base.AddDate(0, 0, 1)
	case Weekly:
		if len(days) == 0 {
			return base.AddDate(0, 0, 7)
		}
		return firstMatching(base, days)
	case Monthly:
		return addMonths(base, 1)
	case Yearly:
		return addMonths(base, 12)
	}
	return base
}

// firstMatching returns the first of the seven days after base whose weekday is in days.
func firstMatching(base time.Time, days []Weekday) time.Time {
	for i := 1; i <= 7; i++ {
		candidate := base.AddDate(0, 0, i)
		for _, d := range days {
			if WeekdayOf(candidate.Weekday()) == d {
				return candidate
			}
		}
	}
	return base.AddDate(0, 0, 7)
}

// nextDateFrom shifts a stored date value to its next occurrence, keeping its storage format. If the value is
// missing or malformed, the occurrence is computed from fallback and formatted as RFC 3339.
func nextDateFrom(value string, rule Rule, byDay []Weekday, fallback time.Time) string {
	base, ok := ParseDate(value)
	if !ok {
		return NextOccurrence(fallback, rule, byDay).Format(time.RFC3339)
	}
	return formatLike(value, NextOccurrence(base, rule, byDay))
}

// NextRecurringTask creates the instance of a recurring task that follows its completion at completedAt. It returns
// nil if the task does not recur. Due, start and review dates move to their next occurrence, computed from the
// dates themselves (Strict) or from the completion time (Fluid). The new task is a fresh copy: new id, unchecked
// checklist, not focused, and with status next if the completed task was done.
func NextRecurringTask(task *Task, completedAt time.Time, previous Status) *Task {
	rule := task.Recurrence.EffectiveRule()
	if rule == "" {
		return nil
	}
	byDay := task.Recurrence.Weekdays()
	completed := completedAt.Format(time.RFC3339)
	base := func(value string) string {
		if task.Recurrence.EffectiveStrategy() == Fluid {
			return completed
		}
		return value
	}

	next := &Task{
		ID:           NewID(),
		Title:        task.Title,
		Status:       previous,
		Priority:     task.Priority,
		TaskMode:     task.TaskMode,
		DueDate:      nextDateFrom(base(task.DueDate), rule, byDay, completedAt),
		Recurrence:   task.Recurrence.clone(),
		Tags:         append([]string{}, task.Tags...),
		Contexts:     append([]string{}, task.Contexts...),
		Checklist:    resetChecklist(task.Checklist),
		Description:  task.Description,
		Location:     task.Location,
		ProjectID:    task.ProjectID,
		AreaID:       task.AreaID,
		TimeEstimate: task.TimeEstimate,
		CreatedAt:    completed,
		UpdatedAt:    completed,
	}
	if next.Status == Done {
		next.Status = Next
	}
	if task.StartTime != "" {
		next.StartTime = nextDateFrom(base(task.StartTime), rule, byDay, completedAt)
	}
	if task.ReviewAt != "" {
		next.ReviewAt = nextDateFrom(base(task.ReviewAt), rule, byDay, completedAt)
	}
	return next
}
