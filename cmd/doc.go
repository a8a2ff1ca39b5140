// Package cmd implements the CLI commands for tiger-claude.
//
// # Architecture
//
// This package is organized into the following logical groups:
//
// ## Core CLI
//
//   - root.go: Main entry point, App struct, cobra command setup, and flags
//   - session.go: Session type driving the ask/answer exchange loop
//   - checkssl.go: The check-ssl diagnostic subcommand
//
// ## Interactive Mode
//
//   - interactive.go: Interactive REPL with completion, session-level
//     commands (help, model, clear), and graceful exit handling
//
// # Key Components
//
// ## App
//
// The App struct holds application state and configuration. It's created
// in Execute() and passed through command handlers.
//
// ## Session
//
// Session owns the conversation history, the file loader, and the API
// client. Both one-shot and interactive modes funnel through Session:
// parsed commands become user turns, get sent with the full history, and
// the reply is appended and printed. A send that fails keeps the user
// turn so the question is not lost on a flaky connection.
//
// ## InteractiveSession
//
// Wraps a Session with a go-prompt read loop: command completion,
// Ctrl+D exit on an empty line, and commands that manage the session
// itself without calling the API.
//
// # Usage
//
//	// Main entry point
//	func main() {
//	    cmd.Execute()
//	}
package cmd
