package command

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

type doneMsg struct{ value string }

func TestExecuteRunsHandler(t *testing.T) {
	bus := New()
	defer bus.Close()
	cmd := bus.Execute(Request{ID: "launch", Label: "Notes", Handler: func(ctx context.Context) tea.Msg {
		return doneMsg{value: "ok"}
	}})
	if cmd == nil {
		t.Fatal("expected command")
	}
	if bus.Inflight() != 1 {
		t.Fatalf("expected one inflight request, got %d", bus.Inflight())
	}
	msg, ok := cmd().(doneMsg)
	if !ok || msg.value != "ok" {
		t.Fatalf("unexpected message %#v", msg)
	}
	if bus.Inflight() != 0 {
		t.Fatalf("expected no inflight requests, got %d", bus.Inflight())
	}
}

func TestExecuteWithoutHandler(t *testing.T) {
	if cmd := New().Execute(Request{ID: "noop"}); cmd != nil {
		t.Fatal("expected nil command for missing handler")
	}
}

func TestCloseSkipsPendingWork(t *testing.T) {
	bus := New()
	called := false
	cmd := bus.Execute(Request{ID: "late", Handler: func(ctx context.Context) tea.Msg {
		called = true
		return doneMsg{}
	}})
	bus.Close()
	if msg := cmd(); msg != nil {
		t.Fatalf("expected nil message after close, got %#v", msg)
	}
	if called {
		t.Fatal("expected handler to be skipped after close")
	}
}
