// Package chat provides the conversation model for a session: turns,
// append-only history, interactive command parsing, and building user
// turns from questions and file contents.
package chat

// Roles recognized by the Messages API
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is one role-tagged message in a conversation. Immutable once created.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// NewUserTurn creates a user turn with the given content.
func NewUserTurn(content string) Turn {
	return Turn{Role: RoleUser, Content: content}
}

// NewAssistantTurn creates an assistant turn with the given content.
func NewAssistantTurn(content string) Turn {
	return Turn{Role: RoleAssistant, Content: content}
}

// Conversation is the ordered, append-only history of one session.
// The remote API is stateless, so the full history is sent on every request.
// Lifetime is one process run; nothing is persisted.
type Conversation struct {
	turns []Turn
}

// NewConversation creates an empty conversation.
func NewConversation() *Conversation {
	return &Conversation{}
}

// Append adds a turn to the end of the history. Earlier turns are never
// mutated or removed.
func (c *Conversation) Append(t Turn) {
	c.turns = append(c.turns, t)
}

// History returns the full ordered turn sequence for transmission.
// The returned slice is a copy; callers cannot modify the history.
func (c *Conversation) History() []Turn {
	out := make([]Turn, len(c.turns))
	copy(out, c.turns)
	return out
}

// Len returns the number of turns recorded so far.
func (c *Conversation) Len() int {
	return len(c.turns)
}

// Clear discards all turns, starting a fresh conversation.
func (c *Conversation) Clear() {
	c.turns = nil
}
