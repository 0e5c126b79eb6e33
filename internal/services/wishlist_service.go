package services

// Wishlist is an insertion-ordered set of product ids.
type Wishlist struct {
	ids []string
}

// Toggle adds id when absent and removes it when present. It reports whether id is now saved.
func (w *Wishlist) Toggle(id string) bool {
	for i, existing := range w.ids {
		if existing == id {
			w.ids = append(w.ids[:i], w.ids[i+1:]...)
			return false
		}
	}
	w.ids = append(w.ids, id)
	return true
}

func (w *Wishlist) Contains(id string) bool {
	for _, existing := range w.ids {
		if existing == id {
			return true
		}
	}
	return false
}

func (w *Wishlist) IDs() []string {
	return append([]string{}, w.ids...)
}
