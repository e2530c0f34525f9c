package gtd

import "strings"

type areaPredicate func(*Area) bool

type AreaScan struct {
	store      *Store
	predicates []areaPredicate
}

func (s *AreaScan) WithIsDeleted(value bool) *AreaScan {
	s.predicates = append(s.predicates, func(area *Area) bool {
		return area.Deleted() == value
	})
	return s
}

// WithName looks for areas containing the given substring, case-insensitive.
func (s *AreaScan) WithName(needle string) *AreaScan {
	needle = strings.ToLower(needle)
	s.predicates = append(s.predicates, func(area *Area) bool {
		return strings.Contains(strings.ToLower(area.Name), needle)
	})
	return s
}

func (s *AreaScan) Results() []*Area {
	var results []*Area
	for _, area := range s.store.data.Areas {
		if s.match(area) {
			results = append(results, area)
		}
	}
	return results
}

func (s *AreaScan) match(area *Area) bool {
	for _, match := range s.predicates {
		if !match(area) {
			return false
		}
	}
	return true
}

func (s *Store) SearchAreas() *AreaScan {
	return &AreaScan{
		store: s,
	}
}
