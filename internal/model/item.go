package model

// Item is the domain model for a to-do entry.
// ID is assigned by the store and never changes afterwards.
type Item struct {
	ID         int    `json:"id"`
	Text       string `json:"text"`
	IsComplete bool   `json:"isComplete"`
	IsSelected bool   `json:"isSelected"`
}

// Stats counts complete and pending items.
func Stats(items []Item) (done, pending int) {
	for _, it := range items {
		if it.IsComplete {
			done++
		} else {
			pending++
		}
	}
	return
}
