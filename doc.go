// The gtd package contains the data model and the local store of a GTD-style task manager: tasks flow from the
// inbox to next actions, are grouped by projects and areas, and are filtered by @contexts and #tags. The data file
// is the JSON document shared with the other clients of the system ({"tasks": ..., "projects": ..., "areas": ...}),
// so values are kept in the same shape, e.g., dates are strings and may or may not carry a time zone.
//
// Two parts do actual parsing work. ParseQuickAdd turns a line of free text such as
//
//	Call mom @phone #family /next /due:tomorrow 5pm /note:ask about trip
//
// into a title and a property bag, and the recurrence functions (BuildRRule, ParseRRule, NextRecurringTask)
// serialize repetition rules and compute the next instance of a recurring task when one is completed.
//
// When a recurring task is completed, the dates of its next instance keep the shape of the dates they come from:
// a date-only value such as 2025-01-16 stays date-only, rather than becoming 2025-01-16T00:00, and a value with an
// offset keeps it. A date that is missing or malformed is computed from the completion time and written as RFC 3339
// (2025-01-16T18:30:00+01:00), not as a local date-time. Other clients reading the data file must accept all three
// forms.
//
// Like the rest of the system, parsing is best effort: malformed input degrades to empty values rather than errors.
//
// The Store keeps all data in memory and scans through slices for lookups and searches. Methods that modify the
// data, e.g., QueueTaskAdd, enqueue commands that are applied in bulk by Commit; Load and Dump move the data from
// and to the data file.
package gtd // import "github.com/nicolagi/gtd"
