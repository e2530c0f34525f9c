package main

import (
	"strings"

	"github.com/nicolagi/gtd"
)

// addQuery narrows the scan with the terms of a query, which are ANDed together. A term is one of
//
//	@context   tasks with the context (or a sub-context of it)
//	#tag       tasks with the tag
//	+project   tasks in projects whose title contains the string
//	/status    tasks with the status
//	text       tasks whose title or description contains the text
//
// and a leading minus negates it. It returns the plain text terms, which also apply to projects.
func addQuery(s *gtd.TaskScan, query string) (text []string) {
	for _, term := range strings.Fields(query) {
		if t, ok := addSearchTerm(s, term); ok {
			text = append(text, t)
		}
	}
	return text
}

func addSearchTerm(s *gtd.TaskScan, term string) (text string, isText bool) {
	if len(term) > 1 && term[0] == '-' {
		addSearchTerm(s, term[1:])
		s.Not()
		return "", false
	}
	if len(term) > 1 {
		switch term[0] {
		case '@':
			s.WithContext(term)
			return "", false
		case '#':
			s.WithTag(term)
			return "", false
		case '+':
			var pids []string
			for _, p := range store.SearchProjects().WithIsDeleted(false).WithTitle(term[1:]).Results() {
				pids = append(pids, p.ID)
			}
			// No ids means no task matches.
			s.WithProjectID(pids...)
			return "", false
		case '/':
			if status, ok := gtd.ParseStatus(term[1:]); ok {
				s.WithStatus(status)
				return "", false
			}
		}
	}
	s.WithText(term)
	return term, true
}
