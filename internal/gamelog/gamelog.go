// Package gamelog keeps the bounded, player-facing message history.
package gamelog

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/samdwyer/dungeoncrawl/internal/logger"
)

// Kind classifies a message.
type Kind string

const (
	KindInfo   Kind = "info"
	KindCombat Kind = "combat"
	KindSpeech Kind = "speech"
)

// Entry is a single message.
type Entry struct {
	Turn int
	Kind Kind
	Text string
}

// Log is a fixed-capacity message history; the oldest entries drop first.
// Every entry is mirrored to the structured logger.
type Log struct {
	capacity int
	turn     int
	entries  []Entry
}

// New creates a log holding at most capacity entries.
func New(capacity int) *Log {
	if capacity < 1 {
		capacity = 1
	}
	return &Log{capacity: capacity, entries: make([]Entry, 0, capacity)}
}

// SetTurn stamps subsequent entries with the given turn number.
func (l *Log) SetTurn(turn int) {
	l.turn = turn
}

// Add appends a formatted message.
func (l *Log) Add(kind Kind, format string, args ...any) {
	text := fmt.Sprintf(format, args...)
	if len(l.entries) == l.capacity {
		copy(l.entries, l.entries[1:])
		l.entries = l.entries[:len(l.entries)-1]
	}
	l.entries = append(l.entries, Entry{Turn: l.turn, Kind: kind, Text: text})

	logger.Log.WithFields(logrus.Fields{
		"component": "game_log",
		"kind":      string(kind),
		"turn":      l.turn,
	}).Info(text)
}

// Len returns the number of stored entries.
func (l *Log) Len() int {
	return len(l.entries)
}

// Recent returns up to n of the newest entries, oldest first.
func (l *Log) Recent(n int) []Entry {
	if n > len(l.entries) {
		n = len(l.entries)
	}
	out := make([]Entry, n)
	copy(out, l.entries[len(l.entries)-n:])
	return out
}
