// Package session keeps per-user conversation state in memory. Conversations
// accumulate question/answer turns so follow-up questions can carry context
// into the prompt; state does not survive a restart.
package session

import (
	"sync"
	"time"

	"github.com/strustar/Road-Assistant/internal/domain/document"
)

// Turn is one completed question/answer exchange with its source documents.
type Turn struct {
	Question string
	Answer   string
	Sources  []document.Candidate
	AskedAt  time.Time
}

// Conversation is a single chat session. Safe for concurrent use.
type Conversation struct {
	id string

	mu    sync.Mutex
	turns []Turn
}

// ID returns the session identifier.
func (c *Conversation) ID() string { return c.id }

// Append records a completed turn.
func (c *Conversation) Append(turn Turn) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.turns = append(c.turns, turn)
}

// Turns returns a copy of the conversation history, oldest first.
func (c *Conversation) Turns() []Turn {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Turn, len(c.turns))
	copy(out, c.turns)
	return out
}

// Len returns the number of completed turns.
func (c *Conversation) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.turns)
}

// Reset drops the conversation history but keeps the session alive.
func (c *Conversation) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.turns = nil
}
