package game

import (
	"time"

	"github.com/Bash-the-Kernel/Lan-Lords/internal/protocol"
)

// chatLog is the bounded chat history. It is not self-locking: the owning
// World serializes access under its mutex.
type chatLog struct {
	limit   int
	entries []protocol.ChatMessage
}

func newChatLog(limit int) *chatLog {
	return &chatLog{limit: limit}
}

// append records one line, dropping the oldest entries once the retention
// limit is exceeded.
func (c *chatLog) append(text string, system bool, now time.Time) {
	c.entries = append(c.entries, protocol.ChatMessage{
		Text:      text,
		IsSystem:  system,
		Timestamp: now.UnixMilli(),
	})
	if len(c.entries) > c.limit {
		c.entries = c.entries[len(c.entries)-c.limit:]
	}
}

// tail copies the most recent n entries. Broadcasts show less history than
// the log retains.
func (c *chatLog) tail(n int) []protocol.ChatMessage {
	if n > len(c.entries) {
		n = len(c.entries)
	}
	out := make([]protocol.ChatMessage, n)
	copy(out, c.entries[len(c.entries)-n:])
	return out
}

// size reports how many entries the log currently retains.
func (c *chatLog) size() int {
	return len(c.entries)
}
