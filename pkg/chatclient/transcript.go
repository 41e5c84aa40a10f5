package chatclient

import (
	"sync"

	"github.com/google/uuid"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single transcript entry. Messages are never mutated or
// removed once appended.
type Message struct {
	ID      string `json:"id"`
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Transcript is the ordered, append-only log of chat messages shown in the
// UI.
type Transcript struct {
	mu       sync.RWMutex
	messages []Message
}

func NewTranscript() *Transcript {
	return &Transcript{}
}

func (t *Transcript) Append(role Role, content string) Message {
	t.mu.Lock()
	defer t.mu.Unlock()

	msg := Message{
		ID:      uuid.NewString(),
		Role:    role,
		Content: content,
	}
	t.messages = append(t.messages, msg)
	return msg
}

// Messages returns a snapshot in insertion order.
func (t *Transcript) Messages() []Message {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]Message, len(t.messages))
	copy(out, t.messages)
	return out
}

func (t *Transcript) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.messages)
}
