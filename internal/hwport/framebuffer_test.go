package hwport

import "testing"

func TestNewFramebufferIsBlank(t *testing.T) {
	fb := NewFramebuffer()
	cell := fb.ReadCell(0, 0)
	if cell.Char != ' ' || cell.Attr != DefaultAttr {
		t.Fatalf("got %+v, want space+DefaultAttr", cell)
	}
}

func TestWriteReadCell(t *testing.T) {
	fb := NewFramebuffer()
	fb.WriteCell(3, 4, 'X', 0x1F)
	cell := fb.ReadCell(3, 4)
	if cell.Char != 'X' || cell.Attr != 0x1F {
		t.Fatalf("got %+v, want X/0x1F", cell)
	}
}

func TestWriteCellOutOfBoundsIsNoOp(t *testing.T) {
	fb := NewFramebuffer()
	fb.WriteCell(-1, 0, 'X', 0)
	fb.WriteCell(Height, 0, 'X', 0)
	fb.WriteCell(0, -1, 'X', 0)
	fb.WriteCell(0, Width, 'X', 0)
	// No panic, and reading still returns the default fallback.
	if got := fb.ReadCell(-1, 0); got.Char != ' ' {
		t.Fatalf("got %+v", got)
	}
}

func TestScrollUp(t *testing.T) {
	fb := NewFramebuffer()
	fb.WriteCell(1, 0, 'A', DefaultAttr)
	fb.WriteCell(2, 0, 'B', DefaultAttr)
	fb.ScrollUp(1, 3, DefaultAttr)

	if got := fb.ReadCell(1, 0).Char; got != 'B' {
		t.Fatalf("row 1 after scroll = %q, want B", got)
	}
	if got := fb.ReadCell(2, 0).Char; got != ' ' {
		t.Fatalf("row 2 after scroll = %q, want blank", got)
	}
}

func TestCursorState(t *testing.T) {
	fb := NewFramebuffer()
	if fb.CursorVisible() {
		t.Fatal("cursor should start hidden")
	}
	fb.EnableCursor(0, 15)
	if !fb.CursorVisible() {
		t.Fatal("cursor should be visible after EnableCursor")
	}
	fb.SetCursorPos(5, 6)
	row, col := fb.CursorPos()
	if row != 5 || col != 6 {
		t.Fatalf("CursorPos() = (%d, %d), want (5, 6)", row, col)
	}
	fb.HideCursor()
	if fb.CursorVisible() {
		t.Fatal("cursor should be hidden after HideCursor")
	}
}
