package ticket

import (
	"fmt"
	"strings"

	"cinemabackend/internal/data"
)

// Quantity change directions.
const (
	ChangeIncrease = "increase"
	ChangeDecrease = "decrease"
)

// QuantityChange records an item present in both lists with a different
// quantity. Change is always positive; Type carries the direction.
type QuantityChange struct {
	Item   data.BarItem `json:"item"`
	Change int          `json:"change"`
	Type   string       `json:"type"`
}

// DiffResult classifies the delta between two bar item lists.
type DiffResult struct {
	Added           []data.BarItem   `json:"added"`
	Removed         []data.BarItem   `json:"removed"`
	QuantityChanged []QuantityChange `json:"quantityChanged"`
}

// Empty reports whether the diff carries no changes at all.
func (d DiffResult) Empty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0 && len(d.QuantityChanged) == 0
}

// DiffBarItems compares old and new bar item lists by item id. New items are
// added, missing ones removed, and items in both lists with differing
// quantities produce a QuantityChange. Equal quantities produce nothing.
// Output order follows input slice order, so messages are deterministic.
func DiffBarItems(oldItems, newItems []data.BarItem) DiffResult {
	oldByID := make(map[int]data.BarItem, len(oldItems))
	for _, item := range oldItems {
		oldByID[item.ID] = item
	}
	newByID := make(map[int]data.BarItem, len(newItems))
	for _, item := range newItems {
		newByID[item.ID] = item
	}

	var result DiffResult
	for _, item := range newItems {
		oldItem, existed := oldByID[item.ID]
		if !existed {
			result.Added = append(result.Added, item)
			continue
		}
		switch {
		case item.Quantity > oldItem.Quantity:
			result.QuantityChanged = append(result.QuantityChanged, QuantityChange{
				Item:   item,
				Change: item.Quantity - oldItem.Quantity,
				Type:   ChangeIncrease,
			})
		case item.Quantity < oldItem.Quantity:
			result.QuantityChanged = append(result.QuantityChanged, QuantityChange{
				Item:   item,
				Change: oldItem.Quantity - item.Quantity,
				Type:   ChangeDecrease,
			})
		}
	}

	for _, item := range oldItems {
		if _, stillThere := newByID[item.ID]; !stillThere {
			result.Removed = append(result.Removed, item)
		}
	}

	return result
}

// Message renders the diff for the audit log. Empty categories contribute no
// sentence; a fully empty diff yields the literal no-change sentence.
func (d DiffResult) Message() string {
	if d.Empty() {
		return "No changes to bar items."
	}

	var parts []string

	if len(d.Added) > 0 {
		names := make([]string, 0, len(d.Added))
		for _, item := range d.Added {
			names = append(names, fmt.Sprintf("%s x%d", item.Name, item.Quantity))
		}
		parts = append(parts, "Added bar items: "+strings.Join(names, ", ")+".")
	}

	if len(d.Removed) > 0 {
		names := make([]string, 0, len(d.Removed))
		for _, item := range d.Removed {
			names = append(names, fmt.Sprintf("%s x%d", item.Name, item.Quantity))
		}
		parts = append(parts, "Removed bar items: "+strings.Join(names, ", ")+".")
	}

	if len(d.QuantityChanged) > 0 {
		changes := make([]string, 0, len(d.QuantityChanged))
		for _, change := range d.QuantityChanged {
			sign := "+"
			if change.Type == ChangeDecrease {
				sign = "-"
			}
			changes = append(changes, fmt.Sprintf("%s %s%d", change.Item.Name, sign, change.Change))
		}
		parts = append(parts, "Changed quantities: "+strings.Join(changes, ", ")+".")
	}

	return strings.Join(parts, " ")
}

// SessionChangeMessage describes a ticket moving between sessions, with both
// dates in local time.
func SessionChangeMessage(oldSession, newSession data.Session) string {
	return fmt.Sprintf("Moved ticket from session on %s to session on %s.",
		oldSession.Date.Local().Format("2006-01-02 15:04"),
		newSession.Date.Local().Format("2006-01-02 15:04"))
}
