package gtd

// ChecklistItem is a subtask, or an entry of a shopping list, embedded in a task.
type ChecklistItem struct {
	ID          string `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	IsCompleted bool   `json:"isCompleted" yaml:"isCompleted"`
}

// NewChecklist builds unchecked items with the given titles.
func NewChecklist(titles ...string) []ChecklistItem {
	var items []ChecklistItem
	for _, title := range titles {
		items = append(items, ChecklistItem{ID: NewID(), Title: title})
	}
	return items
}

// resetChecklist copies the checklist for a new instance of a recurring task: fresh ids, nothing checked.
func resetChecklist(items []ChecklistItem) []ChecklistItem {
	if len(items) == 0 {
		return nil
	}
	reset := make([]ChecklistItem, len(items))
	for i, item := range items {
		reset[i] = ChecklistItem{ID: NewID(), Title: item.Title}
	}
	return reset
}
