package gtd

import "strings"

type projectPredicate func(*Project) bool

type ProjectScan struct {
	store      *Store
	predicates []projectPredicate
}

func (s *ProjectScan) WithStatus(value ProjectStatus) *ProjectScan {
	s.predicates = append(s.predicates, func(p *Project) bool {
		return p.Status == value
	})
	return s
}

func (s *ProjectScan) WithIsDeleted(value bool) *ProjectScan {
	s.predicates = append(s.predicates, func(p *Project) bool {
		return p.Deleted() == value
	})
	return s
}

func (s *ProjectScan) WithAreaID(value string) *ProjectScan {
	s.predicates = append(s.predicates, func(p *Project) bool {
		return p.AreaID == value
	})
	return s
}

// WithTitle looks for projects containing the given substring, case-insensitive.
func (s *ProjectScan) WithTitle(needle string) *ProjectScan {
	needle = strings.ToLower(needle)
	s.predicates = append(s.predicates, func(p *Project) bool {
		return strings.Contains(strings.ToLower(p.Title), needle)
	})
	return s
}

func (s *ProjectScan) Results() []*Project {
	var results []*Project
	for _, project := range s.store.data.Projects {
		if s.match(project) {
			results = append(results, project)
		}
	}
	return results
}

func (s *ProjectScan) match(project *Project) bool {
	for _, match := range s.predicates {
		if !match(project) {
			return false
		}
	}
	return true
}

func (s *Store) SearchProjects() *ProjectScan {
	return &ProjectScan{
		store: s,
	}
}
