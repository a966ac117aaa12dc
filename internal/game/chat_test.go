package game

import (
	"fmt"
	"strings"
	"testing"
)

func TestAppendChatAttributesAndStores(t *testing.T) {
	w := newTestWorld(t)

	annID, annClient := joinTestPlayer(t, w, "Ann")
	w.AppendChat(annID, "hello arena")

	w.SendStateTo(annID)
	snap, ok := annClient.lastGameState(t)
	if !ok {
		t.Fatalf("expected a game_state after SendStateTo")
	}
	if len(snap.Chat) != 1 {
		t.Fatalf("expected one chat entry, got %d", len(snap.Chat))
	}
	msg := snap.Chat[0]
	if msg.Text != "Ann: hello arena" {
		t.Fatalf("expected attributed text, got %q", msg.Text)
	}
	if msg.IsSystem {
		t.Fatalf("expected a user message, got a system one")
	}
	if msg.Timestamp == 0 {
		t.Fatalf("expected a timestamp")
	}
}

func TestAppendChatIgnoresEmptyText(t *testing.T) {
	w := newTestWorld(t)

	annID, _ := joinTestPlayer(t, w, "Ann")
	w.AppendChat(annID, "")

	w.mu.Lock()
	size := w.chat.size()
	w.mu.Unlock()
	if size != 0 {
		t.Fatalf("expected empty chat log, got %d entries", size)
	}
}

func TestChatHistoryTrimsOldestBeyondLimit(t *testing.T) {
	w := newTestWorld(t)
	cfg := w.Config()

	annID, _ := joinTestPlayer(t, w, "Ann")
	for i := 0; i < cfg.ChatHistoryLimit+25; i++ {
		w.AppendChat(annID, fmt.Sprintf("line %d", i))
	}

	w.mu.Lock()
	size := w.chat.size()
	newest := w.chat.tail(1)
	w.mu.Unlock()

	if size != cfg.ChatHistoryLimit {
		t.Fatalf("expected retention capped at %d, got %d", cfg.ChatHistoryLimit, size)
	}
	if len(newest) != 1 || !strings.HasSuffix(newest[0].Text, fmt.Sprintf("line %d", cfg.ChatHistoryLimit+24)) {
		t.Fatalf("expected the newest line to survive trimming, got %v", newest)
	}
}

func TestSnapshotCarriesOnlyChatTail(t *testing.T) {
	w := newTestWorld(t)
	cfg := w.Config()

	annID, annClient := joinTestPlayer(t, w, "Ann")
	for i := 0; i < cfg.ChatTailSize*3; i++ {
		w.AppendChat(annID, fmt.Sprintf("line %d", i))
	}

	w.SendStateTo(annID)
	snap, ok := annClient.lastGameState(t)
	if !ok {
		t.Fatalf("expected a game_state after SendStateTo")
	}
	if len(snap.Chat) != cfg.ChatTailSize {
		t.Fatalf("expected snapshot tail of %d, got %d", cfg.ChatTailSize, len(snap.Chat))
	}

	// The tail is the most recent slice, oldest first.
	first := fmt.Sprintf("line %d", cfg.ChatTailSize*2)
	if !strings.HasSuffix(snap.Chat[0].Text, first) {
		t.Fatalf("expected tail to start at %q, got %q", first, snap.Chat[0].Text)
	}
}
