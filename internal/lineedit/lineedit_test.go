package lineedit

import (
	"testing"
	"time"

	"github.com/rcornwell/coopkernel/internal/display"
	"github.com/rcornwell/coopkernel/internal/hwport"
	"github.com/rcornwell/coopkernel/internal/keyboard"
	"github.com/rcornwell/coopkernel/internal/task"
)

func TestReadLineBasicTyping(t *testing.T) {
	fb := hwport.NewFramebuffer()
	drv := display.New(fb)
	port := hwport.NewKeyboardPort()
	poller := keyboard.New(port)
	tasks := task.NewTable()
	editor := New(poller, drv, tasks)

	result := make(chan string, 1)
	tasks.Create("reader", func(id int) {
		result <- editor.ReadLine(id, 0, 0)
		select {}
	})
	go tasks.Run()

	for _, b := range []byte("hi") {
		keyboard.PushASCII(port, b)
	}
	keyboard.PushASCII(port, '\n')

	select {
	case got := <-result:
		if got != "hi" {
			t.Fatalf("got %q, want %q", got, "hi")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for ReadLine to return")
	}
}

func TestReadLineBackspaceAndDelete(t *testing.T) {
	fb := hwport.NewFramebuffer()
	drv := display.New(fb)
	port := hwport.NewKeyboardPort()
	poller := keyboard.New(port)
	tasks := task.NewTable()
	editor := New(poller, drv, tasks)

	result := make(chan string, 1)
	tasks.Create("reader", func(id int) {
		result <- editor.ReadLine(id, 0, 0)
		select {}
	})
	go tasks.Run()

	// Type "hxiz", backspace the 'z', move left twice, delete the 'x',
	// arriving at "hi".
	for _, b := range []byte("hxiz") {
		keyboard.PushASCII(port, b)
	}
	keyboard.PushASCII(port, '\b') // backspace, removes 'z'
	port.Push(0xE0)
	port.Push(0x4B) // left
	port.Push(0xE0)
	port.Push(0x4B) // left
	port.Push(0xE0)
	port.Push(0x53) // delete, removes 'x'
	keyboard.PushASCII(port, '\n')

	select {
	case got := <-result:
		if got != "hi" {
			t.Fatalf("got %q, want %q", got, "hi")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for ReadLine to return")
	}
}
