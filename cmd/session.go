package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/ChrisBushman/tiger-claude/internal/api"
	"github.com/ChrisBushman/tiger-claude/internal/chat"
	"github.com/ChrisBushman/tiger-claude/internal/config"
	"github.com/ChrisBushman/tiger-claude/internal/display"
)

// Session owns one conversation and the pipeline that resolves a command:
// load file, build turn, append, send full history, append reply, print.
// Strictly sequential; one command is fully resolved before the next is read.
type Session struct {
	cfg    *config.Config
	client api.Completer
	conv   *chat.Conversation
	loader *chat.FileLoader
	out    io.Writer

	// spin controls the progress spinner; disabled in tests
	spin bool
}

// NewSession creates a session around a completer and an output stream.
func NewSession(cfg *config.Config, client api.Completer, out io.Writer) *Session {
	return &Session{
		cfg:    cfg,
		client: client,
		conv:   chat.NewConversation(),
		loader: chat.NewFileLoader(cfg.MaxFileBytes),
		out:    out,
		spin:   true,
	}
}

// Conversation exposes the history for inspection.
func (s *Session) Conversation() *chat.Conversation {
	return s.conv
}

// Dispatch resolves one parsed command. Returns true when the session
// should end. Every failure is printed; none of them end the session.
func (s *Session) Dispatch(cmd chat.Command) bool {
	if cmd.Kind == chat.CmdQuit {
		return true
	}

	var fc *chat.FileContent
	if cmd.NeedsFile() {
		loaded, err := s.loader.Load(cmd.Path)
		if err != nil {
			// File errors are user-visible and non-fatal; no turn recorded
			fmt.Fprintf(s.out, "Error: %v\n", err)
			return false
		}
		fc = loaded
	}

	turn, err := chat.BuildTurn(cmd, fc)
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return false
	}

	s.exchange(turn, statusFor(cmd.Kind))
	return false
}

// OneShot sends a single question with optional context files and exits the
// pipeline. Unlike interactive mode, an unreadable file here is fatal.
func (s *Session) OneShot(question string, paths []string) error {
	var files []*chat.FileContent
	for _, path := range paths {
		fc, err := s.loader.Load(path)
		if err != nil {
			fmt.Fprintf(s.out, "Error: %v\n", err)
			return err
		}
		files = append(files, fc)
	}

	if !s.exchange(chat.BuildContextTurn(question, files), "Thinking...") {
		return errors.New("request failed")
	}
	return nil
}

// exchange appends the user turn, sends the full history, appends the
// reply, and prints it. The user turn stays recorded even when the send
// fails or is interrupted; no partial assistant turn is ever appended.
func (s *Session) exchange(turn chat.Turn, status string) bool {
	s.conv.Append(turn)

	// Ctrl-C during a pending send aborts the in-flight call and returns
	// to the prompt with the conversation intact
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var sp *display.Spinner
	if s.spin {
		sp = display.NewSpinner(status)
		sp.Start()
	}

	reply, err := s.client.Complete(ctx, s.conv.History())

	if sp != nil {
		sp.Stop()
	}

	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return false
	}

	s.conv.Append(reply)
	s.print(reply.Content)
	return true
}

func (s *Session) print(content string) {
	if s.cfg.Render {
		display.ShowContentRendered(content)
		return
	}
	fmt.Fprintln(s.out, content)
}

// statusFor picks the spinner text for a command, matching the status
// lines the original tool printed.
func statusFor(kind chat.CommandKind) string {
	switch kind {
	case chat.CmdFile, chat.CmdExplain, chat.CmdFix:
		return "Analyzing..."
	case chat.CmdReview:
		return "Reviewing..."
	case chat.CmdTest:
		return "Generating tests..."
	default:
		return "Thinking..."
	}
}
