package region

import (
	"testing"

	"github.com/rcornwell/coopkernel/internal/display"
	"github.com/rcornwell/coopkernel/internal/hwport"
	"github.com/rcornwell/coopkernel/internal/task"
)

func newTestManager() (*Manager, *hwport.Framebuffer) {
	fb := hwport.NewFramebuffer()
	drv := display.New(fb)
	tasks := task.NewTable()
	return New(drv, tasks), fb
}

func TestOverlayBaseRow(t *testing.T) {
	if row, ok := OverlayBaseRow("heartbeat0"); !ok || row != Overlay0Base {
		t.Fatalf("got (%d, %v), want (%d, true)", row, ok, Overlay0Base)
	}
	if row, ok := OverlayBaseRow("heartbeat1"); !ok || row != Overlay1Base {
		t.Fatalf("got (%d, %v), want (%d, true)", row, ok, Overlay1Base)
	}
	if _, ok := OverlayBaseRow("shell"); ok {
		t.Fatal("shell should not own an overlay band")
	}
}

func TestRenderOverlayWritesText(t *testing.T) {
	m, fb := newTestManager()
	m.RenderOverlay(Overlay0Base, 0, "hb0 42")
	if got := fb.ReadCell(Overlay0Base, OverlayCol).Char; got != 'h' {
		t.Fatalf("got %q, want h", got)
	}
}

func TestRenderOverlayOutOfRangeIsNoOp(t *testing.T) {
	m, fb := newTestManager()
	before := fb.ReadCell(Overlay0Base, OverlayCol)
	m.RenderOverlay(Overlay0Base, OverlayRows, "should not appear")
	after := fb.ReadCell(Overlay0Base, OverlayCol)
	if before != after {
		t.Fatal("out-of-range overlay index should not write anything")
	}
}

func TestClearOverlayRow(t *testing.T) {
	m, fb := newTestManager()
	m.RenderOverlay(Overlay1Base, 1, "x")
	m.ClearOverlayRow(Overlay1Base, 1)
	if got := fb.ReadCell(Overlay1Base+1, OverlayCol).Char; got != ' ' {
		t.Fatalf("got %q, want blank after clear", got)
	}
}

func TestRedrawIfDirtyOnlyWhenFlagged(t *testing.T) {
	m, fb := newTestManager()
	// hud_dirty starts false on a fresh table with no task activity.
	m.RedrawIfDirty()
	if got := fb.ReadCell(m.hudRow, m.hudCol).Char; got == 'T' {
		t.Fatal("HUD should not have redrawn without a dirty flag")
	}
	m.ForceRedraw()
	if got := fb.ReadCell(m.hudRow, m.hudCol).Char; got != 'T' {
		t.Fatalf("got %q, want T (start of \"Tasks\")", got)
	}
}
