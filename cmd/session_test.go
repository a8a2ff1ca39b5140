package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ChrisBushman/tiger-claude/internal/chat"
	"github.com/ChrisBushman/tiger-claude/internal/config"
)

// stubCompleter returns a scripted reply (or error) and records the
// history it was handed.
type stubCompleter struct {
	reply   string
	err     error
	history []chat.Turn
	calls   int
}

func (c *stubCompleter) Complete(_ context.Context, history []chat.Turn) (chat.Turn, error) {
	c.calls++
	c.history = append([]chat.Turn(nil), history...)
	if c.err != nil {
		return chat.Turn{}, c.err
	}
	return chat.NewAssistantTurn(c.reply), nil
}

func newTestSession(t *testing.T, stub *stubCompleter) (*Session, *bytes.Buffer) {
	t.Helper()
	cfg := config.NewConfig()
	out := &bytes.Buffer{}
	s := NewSession(cfg, stub, out)
	s.spin = false
	return s, out
}

func TestDispatchAsk(t *testing.T) {
	stub := &stubCompleter{reply: "4"}
	s, out := newTestSession(t, stub)

	cmd, err := chat.Parse("ask What is 2+2?")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if quit := s.Dispatch(cmd); quit {
		t.Error("Dispatch(ask) should not end the session")
	}

	if !strings.Contains(out.String(), "4") {
		t.Errorf("Output = %q, want the reply %q", out.String(), "4")
	}

	history := s.Conversation().History()
	if len(history) != 2 {
		t.Fatalf("History length = %d, want 2", len(history))
	}
	if history[0].Role != chat.RoleUser || history[0].Content != "What is 2+2?" {
		t.Errorf("First turn = %+v, want user question", history[0])
	}
	if history[1].Role != chat.RoleAssistant || history[1].Content != "4" {
		t.Errorf("Second turn = %+v, want assistant reply", history[1])
	}
}

func TestDispatchQuit(t *testing.T) {
	stub := &stubCompleter{}
	s, _ := newTestSession(t, stub)

	cmd, err := chat.Parse("quit")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if quit := s.Dispatch(cmd); !quit {
		t.Error("Dispatch(quit) should end the session")
	}
	if stub.calls != 0 {
		t.Error("quit should not call the API")
	}
}

func TestDispatchSendsFullHistory(t *testing.T) {
	stub := &stubCompleter{reply: "ok"}
	s, _ := newTestSession(t, stub)

	for _, line := range []string{"ask first", "ask second", "ask third"} {
		cmd, err := chat.Parse(line)
		if err != nil {
			t.Fatalf("Parse(%q) failed: %v", line, err)
		}
		s.Dispatch(cmd)
	}

	// The last call sees two completed exchanges plus the new question
	if len(stub.history) != 5 {
		t.Errorf("Last request carried %d turns, want 5", len(stub.history))
	}
	if s.Conversation().Len() != 6 {
		t.Errorf("Conversation length = %d, want 6", s.Conversation().Len())
	}
}

func TestDispatchMissingFile(t *testing.T) {
	stub := &stubCompleter{reply: "never sent"}
	s, out := newTestSession(t, stub)

	cmd, err := chat.Parse("explain missing.py")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	s.Dispatch(cmd)

	if !strings.Contains(out.String(), "missing.py") {
		t.Errorf("Output = %q, want a message naming the file", out.String())
	}
	if stub.calls != 0 {
		t.Error("Unreadable file should not reach the API")
	}
	if s.Conversation().Len() != 0 {
		t.Errorf("Conversation length = %d, want 0 after a file error", s.Conversation().Len())
	}
}

func TestDispatchFailedSendKeepsUserTurn(t *testing.T) {
	stub := &stubCompleter{err: errors.New("connection reset")}
	s, out := newTestSession(t, stub)

	cmd, err := chat.Parse("ask does this survive?")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	s.Dispatch(cmd)

	if !strings.Contains(out.String(), "connection reset") {
		t.Errorf("Output = %q, want the send error", out.String())
	}

	history := s.Conversation().History()
	if len(history) != 1 {
		t.Fatalf("History length = %d, want 1 (user turn kept, no reply)", len(history))
	}
	if history[0].Role != chat.RoleUser {
		t.Errorf("Surviving turn role = %q, want user", history[0].Role)
	}
}

func TestDispatchFileCommand(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hello.go")
	if err := os.WriteFile(path, []byte("package main\n"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	stub := &stubCompleter{reply: "looks fine"}
	s, _ := newTestSession(t, stub)

	cmd, err := chat.Parse("review " + path)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	s.Dispatch(cmd)

	if len(stub.history) != 1 {
		t.Fatalf("Request carried %d turns, want 1", len(stub.history))
	}
	sent := stub.history[0].Content
	if !strings.Contains(sent, "package main") {
		t.Errorf("Sent turn does not include the file contents: %q", sent)
	}
	if !strings.Contains(sent, path) {
		t.Errorf("Sent turn does not name the file: %q", sent)
	}
}

func TestOneShot(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "util.go")
	if err := os.WriteFile(path, []byte("func add(a, b int) int { return a + b }\n"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	stub := &stubCompleter{reply: "It adds two ints."}
	s, out := newTestSession(t, stub)

	if err := s.OneShot("What does this do?", []string{path}); err != nil {
		t.Fatalf("OneShot failed: %v", err)
	}

	if stub.calls != 1 {
		t.Errorf("API calls = %d, want 1 (files merge into one turn)", stub.calls)
	}
	sent := stub.history[0].Content
	if !strings.Contains(sent, "What does this do?") || !strings.Contains(sent, "func add") {
		t.Errorf("Sent turn missing question or file contents: %q", sent)
	}
	if !strings.Contains(out.String(), "It adds two ints.") {
		t.Errorf("Output = %q, want the reply", out.String())
	}
}

func TestOneShotMissingFile(t *testing.T) {
	stub := &stubCompleter{reply: "never sent"}
	s, _ := newTestSession(t, stub)

	if err := s.OneShot("question", []string{"nope.txt"}); err == nil {
		t.Error("OneShot with a missing file should fail")
	}
	if stub.calls != 0 {
		t.Error("Missing file should not reach the API")
	}
}

func TestOneShotFailedSend(t *testing.T) {
	stub := &stubCompleter{err: errors.New("boom")}
	s, _ := newTestSession(t, stub)

	if err := s.OneShot("question", nil); err == nil {
		t.Error("OneShot should report a failed send")
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		kind chat.CommandKind
		want string
	}{
		{chat.CmdAsk, "Thinking..."},
		{chat.CmdFile, "Analyzing..."},
		{chat.CmdExplain, "Analyzing..."},
		{chat.CmdFix, "Analyzing..."},
		{chat.CmdReview, "Reviewing..."},
		{chat.CmdTest, "Generating tests..."},
	}
	for _, tt := range tests {
		if got := statusFor(tt.kind); got != tt.want {
			t.Errorf("statusFor(%v) = %q, want %q", tt.kind, got, tt.want)
		}
	}
}
