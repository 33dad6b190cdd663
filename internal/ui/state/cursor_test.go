package state

import "testing"

func newTestLevel(ids ...string) *Level {
	items := make([]Item, len(ids))
	for i, id := range ids {
		items[i] = Item{ID: id, Label: id}
	}
	return NewLevel("test", "Test", items)
}

func TestNewLevelStartsOnFirstItem(t *testing.T) {
	l := newTestLevel("a", "b")
	if l.Cursor != 0 {
		t.Fatalf("expected cursor 0, got %d", l.Cursor)
	}
	item, ok := l.Current()
	if !ok || item.ID != "a" {
		t.Fatalf("expected current item a, got %#v (ok=%v)", item, ok)
	}
	if _, ok := newTestLevel().Current(); ok {
		t.Fatalf("expected no current item on empty level")
	}
}

func TestMoveCursorUpDownWraps(t *testing.T) {
	l := newTestLevel("a", "b", "c")
	if !l.MoveCursorUp() || l.Cursor != 2 {
		t.Fatalf("expected wrap to last item, got %d", l.Cursor)
	}
	if !l.MoveCursorDown() || l.Cursor != 0 {
		t.Fatalf("expected wrap to first item, got %d", l.Cursor)
	}
	single := newTestLevel("only")
	if single.MoveCursorDown() {
		t.Fatalf("expected no movement with a single item")
	}
	if newTestLevel().MoveCursorUp() {
		t.Fatalf("expected no movement for empty level")
	}
}

func TestMoveCursorHomeEnd(t *testing.T) {
	l := newTestLevel("a", "b", "c")
	if !l.MoveCursorEnd() || l.Cursor != 2 {
		t.Fatalf("expected cursor 2, got %d", l.Cursor)
	}
	if l.MoveCursorEnd() {
		t.Fatalf("expected no movement when already at end")
	}
	if !l.MoveCursorHome() || l.Cursor != 0 {
		t.Fatalf("expected cursor 0, got %d", l.Cursor)
	}

	empty := newTestLevel()
	empty.Cursor = 5
	if empty.MoveCursorHome() {
		t.Fatalf("expected no movement for empty level")
	}
	if empty.Cursor != 0 {
		t.Fatalf("expected cursor reset to 0, got %d", empty.Cursor)
	}
}

func TestMoveCursorPaging(t *testing.T) {
	l := newTestLevel("a", "b", "c", "d", "e")
	if !l.MoveCursorPageDown(2) || l.Cursor != 2 {
		t.Fatalf("expected cursor 2, got %d", l.Cursor)
	}
	if !l.MoveCursorPageDown(2) || l.Cursor != 4 {
		t.Fatalf("expected cursor 4, got %d", l.Cursor)
	}
	if l.MoveCursorPageDown(2) {
		t.Fatalf("expected no further movement past end")
	}
	if !l.MoveCursorPageUp(2) || l.Cursor != 2 {
		t.Fatalf("expected cursor 2 after page up, got %d", l.Cursor)
	}
	if !l.MoveCursorPageUp(10) || l.Cursor != 0 {
		t.Fatalf("expected cursor at start, got %d", l.Cursor)
	}
}

func TestSetCursor(t *testing.T) {
	l := newTestLevel("a", "b", "c")
	if !l.SetCursor(1) || l.Cursor != 1 {
		t.Fatalf("expected cursor 1, got %d", l.Cursor)
	}
	if l.SetCursor(7) || l.Cursor != 1 {
		t.Fatalf("expected out-of-range index to be ignored, got %d", l.Cursor)
	}
}

func TestEnsureCursorVisibleAdjustsViewport(t *testing.T) {
	l := newTestLevel("a", "b", "c", "d", "e")
	l.Cursor = 4
	l.EnsureCursorVisible(2)
	if l.ViewportOffset != 3 {
		t.Fatalf("expected offset 3, got %d", l.ViewportOffset)
	}
	visible, start := l.Visible(2)
	if start != 3 || len(visible) != 2 || visible[1].ID != "e" {
		t.Fatalf("unexpected visible window start=%d items=%#v", start, visible)
	}

	l.Cursor = -1
	l.EnsureCursorVisible(2)
	if l.Cursor != 0 {
		t.Fatalf("expected cursor normalised to 0, got %d", l.Cursor)
	}

	l.ViewportOffset = 4
	l.EnsureCursorVisible(0)
	if l.ViewportOffset != 0 {
		t.Fatalf("expected offset reset when maxVisible <= 0, got %d", l.ViewportOffset)
	}

	l.ViewportOffset = 4
	l.Cursor = 1
	l.EnsureCursorVisible(3)
	if l.ViewportOffset != 1 {
		t.Fatalf("expected offset aligned with cursor, got %d", l.ViewportOffset)
	}
}

func TestUpdateItemsKeepsCursorOnSameItem(t *testing.T) {
	l := newTestLevel("a", "b", "c")
	l.Cursor = 2
	l.UpdateItems([]Item{{ID: "c", Label: "c"}, {ID: "a", Label: "a"}})
	if l.Cursor != 0 {
		t.Fatalf("expected cursor to follow item c to index 0, got %d", l.Cursor)
	}
	l.UpdateItems(nil)
	if l.Cursor != 0 || l.ViewportOffset != 0 {
		t.Fatalf("expected reset on empty items, got cursor=%d offset=%d", l.Cursor, l.ViewportOffset)
	}
}
