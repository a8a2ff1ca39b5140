// Package cmd implements the CLI commands for tiger-claude.
package cmd

import (
	"fmt"
	"strings"

	"github.com/elk-language/go-prompt"
	istrings "github.com/elk-language/go-prompt/strings"

	"github.com/ChrisBushman/tiger-claude/internal/chat"
)

// InteractiveSession holds the state for the interactive read loop.
type InteractiveSession struct {
	app      *App
	session  *Session
	exitFlag bool
}

// completer provides auto-completion for the interactive commands.
func (s *InteractiveSession) completer(d prompt.Document) ([]prompt.Suggest, istrings.RuneNumber, istrings.RuneNumber) {
	endIndex := d.CurrentRuneIndex()
	w := d.GetWordBeforeCursor()
	startIndex := endIndex - istrings.RuneCountInString(w)

	// Only suggest on the first token; the remainder is free text or a path
	if strings.Contains(strings.TrimSpace(d.TextBeforeCursor()), " ") {
		return []prompt.Suggest{}, startIndex, endIndex
	}

	suggestions := []prompt.Suggest{
		{Text: "ask", Description: "Ask a question"},
		{Text: "file", Description: "Ask about a specific file"},
		{Text: "explain", Description: "Explain what a file does"},
		{Text: "fix", Description: "Suggest fixes for a file"},
		{Text: "review", Description: "Get a code review"},
		{Text: "test", Description: "Generate tests for code"},
		{Text: "model", Description: "Show or switch model (current: " + s.app.cfg.Model + ")"},
		{Text: "clear", Description: "Clear conversation history"},
		{Text: "help", Description: "Show available commands"},
		{Text: "quit", Description: "Exit"},
	}

	return prompt.FilterHasPrefix(suggestions, w, true), startIndex, endIndex
}

// runInteractive starts the interactive session with a REPL interface.
func (app *App) runInteractive(session *Session) {
	fmt.Println("tiger-claude - Claude for vintage Macs")
	fmt.Printf("Model: %s\n", app.cfg.Model)
	fmt.Println()
	printCommands()
	fmt.Println()

	s := &InteractiveSession{
		app:     app,
		session: session,
	}

	p := prompt.New(
		s.executor,
		prompt.WithCompleter(s.completer),
		prompt.WithPrefix("claude> "),
		prompt.WithTitle("tiger-claude"),
		prompt.WithPrefixTextColor(prompt.Green),
		prompt.WithMaxSuggestion(10),
		prompt.WithExitChecker(func(in string, breakline bool) bool {
			return s.exitFlag
		}),
		prompt.WithKeyBind(prompt.KeyBind{
			Key: prompt.ControlD,
			Fn: func(p *prompt.Prompt) bool {
				if p.Buffer().Text() == "" {
					fmt.Println("Goodbye!")
					s.exitFlag = true
				}
				return false
			},
		}),
	)

	p.Run()
}

// executor handles one line of interactive input.
func (s *InteractiveSession) executor(input string) {
	if s.exitFlag {
		return
	}

	input = strings.TrimSpace(input)
	if input == "" {
		return
	}

	// Session-level commands that never touch the conversation pipeline
	if s.handleSessionCommand(input) {
		return
	}

	cmd, err := chat.Parse(input)
	if err != nil {
		fmt.Println(err)
		return
	}

	if s.session.Dispatch(cmd) {
		fmt.Println("Goodbye!")
		s.exitFlag = true
	}
}

// handleSessionCommand processes commands that manage the session itself
// (help, model, clear). Returns true when the input was consumed.
func (s *InteractiveSession) handleSessionCommand(input string) bool {
	fields := strings.Fields(input)
	switch fields[0] {
	case "help":
		printCommands()
		return true

	case "clear":
		s.session.Conversation().Clear()
		fmt.Println("Conversation cleared.")
		return true

	case "model":
		if len(fields) > 1 {
			s.app.cfg.Model = fields[1]
			fmt.Printf("Switched to model: %s\n", s.app.cfg.Model)
		} else {
			fmt.Printf("Current model: %s\n", s.app.cfg.Model)
		}
		return true
	}
	return false
}

func printCommands() {
	fmt.Println("Commands:")
	fmt.Println("  ask <question>         - Ask Claude a question")
	fmt.Println("  file <path> <question> - Ask about a specific file")
	fmt.Println("  explain <path>         - Ask Claude to explain a file")
	fmt.Println("  fix <path>             - Ask Claude to suggest fixes for a file")
	fmt.Println("  review <path>          - Get a code review")
	fmt.Println("  test <path>            - Generate tests for code")
	fmt.Println("  model [name]           - Show or switch the model")
	fmt.Println("  clear                  - Clear conversation history")
	fmt.Println("  quit                   - Exit")
}
