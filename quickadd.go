package gtd

import (
	"strings"
	"time"
	"unicode"
)

// QuickAdd is the result of parsing a quick-add line: the title left after removing recognized tokens, and the task
// properties those tokens set. Unset properties are zero values.
type QuickAdd struct {
	Title       string
	Status      Status
	DueDate     string // RFC 3339 if a time of day was given, YYYY-MM-DD otherwise
	Description string
	Tags        []string // With the leading #
	Contexts    []string // With the leading @
	ProjectID   string
	AreaID      string

	// ProjectTitle holds the title given with + when no project matched it, so that callers can offer to create
	// the project. It is empty when ProjectID was resolved.
	ProjectTitle string
}

// The characters that introduce a token. A multi-word project or area title stops at the first word starting with
// one of these.
const markers = "@#+!/"

type word struct {
	text       string
	start, end int // Byte offsets in the input
}

func splitWords(input string) []word {
	var words []word
	start := -1
	for i, r := range input {
		if unicode.IsSpace(r) {
			if start >= 0 {
				words = append(words, word{text: input[start:i], start: start, end: i})
				start = -1
			}
		} else if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		words = append(words, word{text: input[start:], start: start, end: len(input)})
	}
	return words
}

func startsWithMarker(s string) bool {
	return s != "" && strings.IndexByte(markers, s[0]) >= 0
}

// validToken reports whether s (without its marker) can be a context or tag name: letters of any script, digits,
// dashes, underscores and slashes (for hierarchies such as @home/office).
func validToken(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && !unicode.IsMark(r) && r != '-' && r != '_' && r != '/' {
			return false
		}
	}
	return true
}

// slashCommand recognizes the commands that start with a slash, returning their lower-cased name (e.g., "due",
// "note", or a status) and the argument following the colon, if any.
func slashCommand(text string) (name, arg string, ok bool) {
	if !strings.HasPrefix(text, "/") {
		return "", "", false
	}
	body := text[1:]
	if i := strings.IndexByte(body, ':'); i >= 0 {
		name = strings.ToLower(body[:i])
		switch name {
		case "due", "note", "project", "area":
			return name, body[i+1:], true
		}
		return "", "", false
	}
	if status, ok := ParseStatus(body); ok && body != "" {
		return string(status), "", true
	}
	return "", "", false
}

// phrase collects the words of a multi-word title: first (which may be empty) followed by the words after index i
// up to the next one starting with a marker.
func phrase(first string, words []word, i int) []string {
	var parts []string
	if first != "" {
		parts = append(parts, first)
	}
	for j := i + 1; j < len(words) && !startsWithMarker(words[j].text); j++ {
		parts = append(parts, words[j].text)
	}
	return parts
}

// longestMatch finds the longest prefix of parts for which match returns a non-empty id. It returns the id and the
// prefix length, or zero if no prefix matches.
func longestMatch(parts []string, match func(string) string) (string, int) {
	for n := len(parts); n > 0; n-- {
		if id := match(strings.Join(parts[:n], " ")); id != "" {
			return id, n
		}
	}
	return "", 0
}

func projectMatcher(projects []*Project) func(string) string {
	return func(title string) string {
		for _, p := range projects {
			if p != nil && !p.Deleted() && strings.EqualFold(p.Title, title) {
				return p.ID
			}
		}
		return ""
	}
}

func areaMatcher(areas []*Area) func(string) string {
	return func(name string) string {
		for _, a := range areas {
			if a != nil && !a.Deleted() && strings.EqualFold(a.Name, name) {
				return a.ID
			}
		}
		return ""
	}
}

func appendUnique(list []string, value string) []string {
	for _, v := range list {
		if v == value {
			return list
		}
	}
	return append(list, value)
}

// ParseQuickAdd parses a line of free text in a single left-to-right scan. The recognized tokens are
//
//	@context #tag       added to the task's contexts and tags (Unicode letters allowed)
//	+Project Title      resolved against projects by case-insensitive title; may span words
//	!Area Name          resolved against areas by case-insensitive name; may span words
//	/area:Name          same as !Name
//	/project:<id>       sets the project id verbatim, overriding any +Project
//	/next, /waiting...  sets the status (any Status)
//	/due:<expression>   sets the due date, e.g., /due:tomorrow 5pm, /due:friday, /due:2025-03-01 9:30am
//	/note:<text>        sets the description to the text up to the next slash command, verbatim
//
// All other words form the title. Relative dates are resolved against now, in its location; the zero time means
// the current time. Parsing never fails: an unresolved project is reported in ProjectTitle, an unresolved area or
// unparseable due date is dropped, and anything unrecognized stays in the title.
func ParseQuickAdd(input string, projects []*Project, now time.Time, areas ...*Area) *QuickAdd {
	if now.IsZero() {
		now = time.Now()
	}
	q := new(QuickAdd)
	var title []string
	var explicitProjectID string
	words := splitWords(input)

	for i := 0; i < len(words); i++ {
		w := words[i]
		switch w.text[0] {
		case '@', '#':
			if !validToken(w.text[1:]) {
				title = append(title, w.text)
			} else if w.text[0] == '@' {
				q.Contexts = appendUnique(q.Contexts, w.text)
			} else {
				q.Tags = appendUnique(q.Tags, w.text)
			}

		case '+':
			parts := phrase(w.text[1:], words, i)
			if len(parts) == 0 || w.text == "+" {
				title = append(title, w.text)
				continue
			}
			// Words of the phrase beyond the first are at indices i+1...
			if id, n := longestMatch(parts, projectMatcher(projects)); n > 0 {
				q.ProjectID, q.ProjectTitle = id, ""
				i += n - 1
			} else {
				q.ProjectID, q.ProjectTitle = "", strings.Join(parts, " ")
				i += len(parts) - 1
			}

		case '!':
			parts := phrase(w.text[1:], words, i)
			id, n := longestMatch(parts, areaMatcher(areas))
			if n == 0 || w.text == "!" {
				title = append(title, w.text)
				continue
			}
			q.AreaID = id
			i += n - 1

		case '/':
			name, arg, ok := slashCommand(w.text)
			if !ok {
				title = append(title, w.text)
				continue
			}
			switch name {
			case "note":
				start := w.start + len("/note:")
				end := len(input)
				j := i + 1
				for ; j < len(words); j++ {
					if _, _, ok := slashCommand(words[j].text); ok {
						end = words[j].start
						break
					}
				}
				q.Description = strings.TrimSpace(input[start:end])
				i = j - 1
			case "due":
				i += q.parseDue(arg, words, i, now)
			case "project":
				if arg != "" {
					explicitProjectID = arg
				}
			case "area":
				parts := phrase(arg, words, i)
				if id, n := longestMatch(parts, areaMatcher(areas)); n > 0 {
					q.AreaID = id
					if arg == "" {
						i += n
					} else {
						i += n - 1
					}
				}
			default:
				q.Status = Status(name)
			}

		default:
			title = append(title, w.text)
		}
	}

	if explicitProjectID != "" {
		q.ProjectID, q.ProjectTitle = explicitProjectID, ""
	}
	q.Title = strings.Join(title, " ")
	return q
}

// parseDue parses the expression following /due: (arg, then the following words up to the next marker) and
// returns how many words after index i it consumed.
func (q *QuickAdd) parseDue(arg string, words []word, i int, now time.Time) int {
	parts := phrase(arg, words, i)
	value, n := parseDateExpression(parts, now)
	if n == 0 {
		return 0
	}
	q.DueDate = value
	if arg == "" {
		return n
	}
	return n - 1
}

