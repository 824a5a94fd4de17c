// Package store holds the in-memory conversation transcript of an agent run.
package store

import (
	"sync"

	ai "github.com/spetersoncode/goalagent"
)

// Transcript is an append-only conversation log. The first messages it is
// created with form its head, which stays fixed for the transcript's life.
type Transcript struct {
	mu       sync.RWMutex
	messages []ai.Message
	head     int
}

// NewTranscript creates a transcript seeded with the given head messages.
func NewTranscript(head ...ai.Message) *Transcript {
	t := &Transcript{
		messages: make([]ai.Message, len(head)),
		head:     len(head),
	}
	copy(t.messages, head)
	return t
}

// Append adds messages to the end of the transcript.
func (t *Transcript) Append(msgs ...ai.Message) {
	if len(msgs) == 0 {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.messages = append(t.messages, msgs...)
}

// Messages returns a copy of every message in order.
func (t *Transcript) Messages() []ai.Message {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return clone(t.messages)
}

// Head returns a copy of the seed messages.
func (t *Transcript) Head() []ai.Message {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return clone(t.messages[:t.head])
}

// Since returns a copy of the messages appended after the first n.
func (t *Transcript) Since(n int) []ai.Message {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if n < 0 {
		n = 0
	}
	if n >= len(t.messages) {
		return nil
	}
	return clone(t.messages[n:])
}

// Last returns the most recent message.
func (t *Transcript) Last() (ai.Message, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if len(t.messages) == 0 {
		return ai.Message{}, false
	}
	return t.messages[len(t.messages)-1], true
}

// Len returns the number of messages.
func (t *Transcript) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.messages)
}

// ToolResults returns every tool result recorded so far, in order.
func (t *Transcript) ToolResults() []ai.ToolResult {
	t.mu.RLock()
	defer t.mu.RUnlock()
	var results []ai.ToolResult
	for _, m := range t.messages {
		if m.Role == ai.RoleTool {
			results = append(results, m.ToolResults...)
		}
	}
	return results
}

func clone(msgs []ai.Message) []ai.Message {
	out := make([]ai.Message, len(msgs))
	copy(out, msgs)
	return out
}
