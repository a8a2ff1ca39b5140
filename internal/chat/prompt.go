package chat

import (
	"errors"
	"fmt"
	"strings"
)

// Task preambles prepended to file contents. Wording matters: these are the
// instructions the model actually sees.
const (
	explainPrompt = "Please explain what this code does, how it works, and any important details:"
	fixPrompt     = "Please review this code and suggest improvements, bug fixes, or optimizations:"
	reviewPrompt  = "Please perform a thorough code review, checking for bugs, security issues, style problems, and suggesting improvements:"
	testPrompt    = "Please generate unit tests for this code. Include edge cases and error conditions:"
)

// ErrFileContentRequired is a programming contract violation: a file-taking
// command reached the builder without loaded file content.
var ErrFileContentRequired = errors.New("chat: file content required but not loaded")

// BuildTurn converts a parsed command plus optional loaded file content into
// exactly one user turn. Pure construction, no side effects.
func BuildTurn(cmd Command, fc *FileContent) (Turn, error) {
	if cmd.NeedsFile() && fc == nil {
		return Turn{}, ErrFileContentRequired
	}

	switch cmd.Kind {
	case CmdAsk:
		return NewUserTurn(cmd.Text), nil
	case CmdFile:
		return NewUserTurn(withFileContext(cmd.Text, fc)), nil
	case CmdExplain:
		return NewUserTurn(withFileContext(explainPrompt, fc)), nil
	case CmdFix:
		return NewUserTurn(withFileContext(fixPrompt, fc)), nil
	case CmdReview:
		return NewUserTurn(withFileContext(reviewPrompt, fc)), nil
	case CmdTest:
		return NewUserTurn(withFileContext(testPrompt, fc)), nil
	default:
		return Turn{}, fmt.Errorf("chat: command %s does not produce a turn", cmd.Kind)
	}
}

// withFileContext appends the file text under a path-labeled delimiter.
func withFileContext(prompt string, fc *FileContent) string {
	return BuildContextTurn(prompt, []*FileContent{fc}).Content
}

// BuildContextTurn builds a user turn from a question plus any number of
// context files, each framed under a path-labeled delimiter. With no files
// the question is used verbatim. This is the one-shot invocation path.
func BuildContextTurn(question string, files []*FileContent) Turn {
	if len(files) == 0 {
		return NewUserTurn(question)
	}
	var b strings.Builder
	b.WriteString(question)
	b.WriteString("\n\nContext files:\n")
	for _, fc := range files {
		fmt.Fprintf(&b, "\n--- %s ---\n%s\n", fc.Path, fc.Text)
	}
	return NewUserTurn(b.String())
}
