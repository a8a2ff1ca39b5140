package chat

import (
	"fmt"
	"strings"
)

// CommandKind identifies an interactive command.
type CommandKind int

const (
	// CmdAsk sends a free-form question
	CmdAsk CommandKind = iota
	// CmdFile asks a question about a file
	CmdFile
	// CmdExplain asks for an explanation of a file
	CmdExplain
	// CmdFix asks for fixes and improvements to a file
	CmdFix
	// CmdReview asks for a code review of a file
	CmdReview
	// CmdTest asks for generated tests for a file
	CmdTest
	// CmdQuit ends the session
	CmdQuit
)

// String returns the command keyword.
func (k CommandKind) String() string {
	switch k {
	case CmdAsk:
		return "ask"
	case CmdFile:
		return "file"
	case CmdExplain:
		return "explain"
	case CmdFix:
		return "fix"
	case CmdReview:
		return "review"
	case CmdTest:
		return "test"
	case CmdQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Command is one parsed line of interactive input. Text holds the question
// for ask/file; Path holds the file path for the file-taking commands.
type Command struct {
	Kind CommandKind
	Text string
	Path string
}

// NeedsFile reports whether the command requires loading a file.
func (c Command) NeedsFile() bool {
	switch c.Kind {
	case CmdFile, CmdExplain, CmdFix, CmdReview, CmdTest:
		return true
	}
	return false
}

// ParseErrorKind classifies a command parse failure.
type ParseErrorKind int

const (
	// UnknownCommand means the first token is not a recognized keyword
	UnknownCommand ParseErrorKind = iota
	// MissingArgument means a required argument was not supplied
	MissingArgument
)

// ParseError reports why a line could not be parsed into a command.
type ParseError struct {
	Kind    ParseErrorKind
	Keyword string
	Usage   string
}

func (e *ParseError) Error() string {
	if e.Kind == UnknownCommand {
		return fmt.Sprintf("Unknown command: %s", e.Keyword)
	}
	return fmt.Sprintf("Usage: %s", e.Usage)
}

// usage strings shown on MissingArgument, keyed by keyword
var usages = map[string]string{
	"ask":     "ask <question>",
	"file":    "file <path> <question>",
	"explain": "explain <path>",
	"fix":     "fix <path>",
	"review":  "review <path>",
	"test":    "test <path>",
}

// Parse converts one non-empty line of interactive input into a Command.
// The first whitespace-delimited token selects the keyword; the remainder is
// keyword-specific. Parsing is total: every non-empty line yields either a
// Command or a *ParseError.
func Parse(line string) (Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{}, &ParseError{Kind: MissingArgument, Usage: "ask <question>"}
	}

	keyword := fields[0]
	switch keyword {
	case "quit", "exit":
		return Command{Kind: CmdQuit}, nil

	case "ask":
		if len(fields) < 2 {
			return Command{}, &ParseError{Kind: MissingArgument, Keyword: keyword, Usage: usages[keyword]}
		}
		// Remainder verbatim, with the keyword and leading space stripped
		text := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), keyword))
		return Command{Kind: CmdAsk, Text: text}, nil

	case "file":
		if len(fields) < 3 {
			return Command{}, &ParseError{Kind: MissingArgument, Keyword: keyword, Usage: usages[keyword]}
		}
		path := fields[1]
		rest := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), keyword))
		question := strings.TrimSpace(strings.TrimPrefix(rest, path))
		return Command{Kind: CmdFile, Path: path, Text: question}, nil

	case "explain", "fix", "review", "test":
		if len(fields) < 2 {
			return Command{}, &ParseError{Kind: MissingArgument, Keyword: keyword, Usage: usages[keyword]}
		}
		kind := map[string]CommandKind{
			"explain": CmdExplain,
			"fix":     CmdFix,
			"review":  CmdReview,
			"test":    CmdTest,
		}[keyword]
		return Command{Kind: kind, Path: fields[1]}, nil

	default:
		return Command{}, &ParseError{Kind: UnknownCommand, Keyword: keyword}
	}
}
