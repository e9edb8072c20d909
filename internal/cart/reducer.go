package cart

// Pure state transitions over the item list. No I/O here; the service
// layer owns persistence. Every transition preserves two invariants:
// no item with quantity <= 0, and no two items with the same ID.

// addItem merges by ID: an existing entry gets its quantity bumped and
// keeps every other field from its original catalog snapshot; a new
// entry is appended, preserving insertion order.
func addItem(items []LineItem, incoming LineItem) []LineItem {
	for i, item := range items {
		if item.ID == incoming.ID {
			next := make([]LineItem, len(items))
			copy(next, items)
			next[i].Quantity += incoming.Quantity
			return next
		}
	}

	next := make([]LineItem, len(items), len(items)+1)
	copy(next, items)
	return append(next, incoming)
}

// removeItem is a no-op when the ID is absent.
func removeItem(items []LineItem, id int64) []LineItem {
	next := make([]LineItem, 0, len(items))
	for _, item := range items {
		if item.ID != id {
			next = append(next, item)
		}
	}
	return next
}

// setQuantity overwrites the quantity for positive inputs and removes
// the item otherwise, so the invariants hold no matter who dispatches.
func setQuantity(items []LineItem, id, quantity int64) []LineItem {
	if quantity <= 0 {
		return removeItem(items, id)
	}

	next := make([]LineItem, len(items))
	copy(next, items)
	for i := range next {
		if next[i].ID == id {
			next[i].Quantity = quantity
		}
	}
	return next
}
