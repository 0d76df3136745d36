package display

import (
	"testing"

	"github.com/rcornwell/coopkernel/internal/hwport"
)

func TestPutCharAdvancesCursor(t *testing.T) {
	fb := hwport.NewFramebuffer()
	d := New(fb)
	d.PutChar('A')
	if row, col := d.Cursor(); row != 0 || col != 1 {
		t.Fatalf("cursor = (%d, %d), want (0, 1)", row, col)
	}
	if got := fb.ReadCell(0, 0).Char; got != 'A' {
		t.Fatalf("got %q at (0,0), want A", got)
	}
}

func TestNewlineAdvancesRow(t *testing.T) {
	fb := hwport.NewFramebuffer()
	d := New(fb)
	d.PutChar('A')
	d.PutChar('\n')
	if row, col := d.Cursor(); row != 1 || col != 0 {
		t.Fatalf("cursor = (%d, %d), want (1, 0)", row, col)
	}
}

func TestColumnOverflowWraps(t *testing.T) {
	fb := hwport.NewFramebuffer()
	d := New(fb)
	for i := 0; i < hwport.Width; i++ {
		d.PutChar('X')
	}
	if row, col := d.Cursor(); row != 1 || col != 0 {
		t.Fatalf("cursor = (%d, %d), want (1, 0) after filling a row", row, col)
	}
}

func TestNewlineAtBottomRowScrolls(t *testing.T) {
	fb := hwport.NewFramebuffer()
	d := New(fb)
	d.SetCursor(TextAreaHeight-1, 0)
	d.PutChar('Z')
	d.PutChar('\n')
	if row, _ := d.Cursor(); row != TextAreaHeight-1 {
		t.Fatalf("cursor row = %d, want %d (scrolled, stayed at last row)", row, TextAreaHeight-1)
	}
	// The reserved bottom row (TextAreaHeight) must never be touched by scrolling.
	if got := fb.ReadCell(TextAreaHeight, 0).Char; got != ' ' {
		t.Fatalf("reserved row was modified: got %q", got)
	}
}

func TestPutCharAtDoesNotMoveCursor(t *testing.T) {
	fb := hwport.NewFramebuffer()
	d := New(fb)
	d.SetCursor(5, 5)
	d.PutCharAt(10, 10, 'Q')
	if row, col := d.Cursor(); row != 5 || col != 5 {
		t.Fatalf("cursor moved to (%d, %d), want (5, 5) unchanged", row, col)
	}
	if got := fb.ReadCell(10, 10).Char; got != 'Q' {
		t.Fatalf("got %q, want Q", got)
	}
}

func TestWriteAtStopsAtRowEnd(t *testing.T) {
	fb := hwport.NewFramebuffer()
	d := New(fb)
	d.WriteAt(0, hwport.Width-2, "abcdef")
	if got := fb.ReadCell(0, hwport.Width-2).Char; got != 'a' {
		t.Fatalf("got %q", got)
	}
	if got := fb.ReadCell(0, hwport.Width-1).Char; got != 'b' {
		t.Fatalf("got %q", got)
	}
}
