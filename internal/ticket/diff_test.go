package ticket

import (
	"testing"
	"time"

	"cinemabackend/internal/data"
)

func TestDiffBarItemsNoChanges(t *testing.T) {
	items := []data.BarItem{
		{ID: 1, Name: "Popcorn", Price: 5.25, Quantity: 2},
		{ID: 2, Name: "Soda", Price: 3.50, Quantity: 1},
	}

	diff := DiffBarItems(items, items)

	if !diff.Empty() {
		t.Errorf("Expected empty diff, got %+v", diff)
	}
	if msg := diff.Message(); msg != "No changes to bar items." {
		t.Errorf("Unexpected message: %q", msg)
	}
}

func TestDiffBarItemsAdded(t *testing.T) {
	oldItems := []data.BarItem{{ID: 2, Name: "Soda", Quantity: 1}}
	newItems := []data.BarItem{
		{ID: 2, Name: "Soda", Quantity: 1},
		{ID: 1, Name: "Popcorn", Quantity: 2},
	}

	diff := DiffBarItems(oldItems, newItems)

	if len(diff.Added) != 1 || diff.Added[0].ID != 1 {
		t.Fatalf("Expected Popcorn added, got %+v", diff.Added)
	}
	if len(diff.Removed) != 0 || len(diff.QuantityChanged) != 0 {
		t.Errorf("Expected only additions, got %+v", diff)
	}
	if msg := diff.Message(); msg != "Added bar items: Popcorn x2." {
		t.Errorf("Unexpected message: %q", msg)
	}
}

func TestDiffBarItemsRemoved(t *testing.T) {
	oldItems := []data.BarItem{
		{ID: 1, Name: "Popcorn", Quantity: 2},
		{ID: 2, Name: "Soda", Quantity: 1},
	}
	newItems := []data.BarItem{{ID: 1, Name: "Popcorn", Quantity: 2}}

	diff := DiffBarItems(oldItems, newItems)

	if len(diff.Removed) != 1 || diff.Removed[0].ID != 2 {
		t.Fatalf("Expected Soda removed, got %+v", diff.Removed)
	}
	if msg := diff.Message(); msg != "Removed bar items: Soda x1." {
		t.Errorf("Unexpected message: %q", msg)
	}
}

func TestDiffBarItemsQuantityIncrease(t *testing.T) {
	oldItems := []data.BarItem{{ID: 1, Name: "Popcorn", Quantity: 2}}
	newItems := []data.BarItem{{ID: 1, Name: "Popcorn", Quantity: 5}}

	diff := DiffBarItems(oldItems, newItems)

	if len(diff.QuantityChanged) != 1 {
		t.Fatalf("Expected one quantity change, got %+v", diff)
	}
	change := diff.QuantityChanged[0]
	if change.Change != 3 || change.Type != ChangeIncrease {
		t.Errorf("Expected +3 increase, got change=%d type=%s", change.Change, change.Type)
	}
	if msg := diff.Message(); msg != "Changed quantities: Popcorn +3." {
		t.Errorf("Unexpected message: %q", msg)
	}
}

func TestDiffBarItemsQuantityDecrease(t *testing.T) {
	oldItems := []data.BarItem{{ID: 2, Name: "Soda", Quantity: 4}}
	newItems := []data.BarItem{{ID: 2, Name: "Soda", Quantity: 1}}

	diff := DiffBarItems(oldItems, newItems)

	if len(diff.QuantityChanged) != 1 {
		t.Fatalf("Expected one quantity change, got %+v", diff)
	}
	change := diff.QuantityChanged[0]
	if change.Change != 3 || change.Type != ChangeDecrease {
		t.Errorf("Expected -3 decrease, got change=%d type=%s", change.Change, change.Type)
	}
	if msg := diff.Message(); msg != "Changed quantities: Soda -3." {
		t.Errorf("Unexpected message: %q", msg)
	}
}

func TestDiffBarItemsMixed(t *testing.T) {
	oldItems := []data.BarItem{
		{ID: 1, Name: "Popcorn", Quantity: 2},
		{ID: 2, Name: "Soda", Quantity: 1},
	}
	newItems := []data.BarItem{
		{ID: 1, Name: "Popcorn", Quantity: 3},
		{ID: 3, Name: "Nachos", Quantity: 1},
	}

	diff := DiffBarItems(oldItems, newItems)

	if len(diff.Added) != 1 || len(diff.Removed) != 1 || len(diff.QuantityChanged) != 1 {
		t.Fatalf("Expected one of each category, got %+v", diff)
	}

	want := "Added bar items: Nachos x1. Removed bar items: Soda x1. Changed quantities: Popcorn +1."
	if msg := diff.Message(); msg != want {
		t.Errorf("Unexpected message:\n got: %q\nwant: %q", msg, want)
	}
}

func TestSessionChangeMessage(t *testing.T) {
	oldSession := data.Session{ID: 1, Date: time.Date(2026, 9, 10, 20, 0, 0, 0, time.Local)}
	newSession := data.Session{ID: 2, Date: time.Date(2026, 9, 12, 18, 30, 0, 0, time.Local)}

	msg := SessionChangeMessage(oldSession, newSession)
	want := "Moved ticket from session on 2026-09-10 20:00 to session on 2026-09-12 18:30."
	if msg != want {
		t.Errorf("Unexpected message:\n got: %q\nwant: %q", msg, want)
	}
}
