// Package conversation defines the persisted conversation document: per-user
// partitions of subject-keyed conversations, each holding ordered scripts and
// hook-sets.
package conversation

import (
	"crypto/rand"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/oklog/ulid/v2"
)

// Script is one accepted long-form text artifact.
type Script struct {
	Content string `json:"content"`

	// CharCount is a stored derived field: always the rune count of Content
	// at insertion or update time.
	CharCount int `json:"char_count"`
}

// Hook is one generated set of short attention-grabbing lines.
type Hook struct {
	Content string `json:"content"`
}

// Conversation is the per-(owner, subject) container of scripts and hooks.
type Conversation struct {
	ID string `json:"id"`

	// Subject is the user-chosen topic, stored with the casing of first
	// creation. Lookups match it case-insensitively.
	Subject string `json:"animal"`

	Scripts []Script `json:"scripts"`
	Hooks   []Hook   `json:"hooks"`

	// CreatedAt is set once at creation and never mutated. Nil means a
	// legacy record that predates retention tracking; the sweeper drops it.
	CreatedAt *time.Time `json:"created_at"`
}

// Partition is one owner's conversation set.
type Partition struct {
	Conversations []*Conversation `json:"conversations"`
}

// Document is the whole conversation store as persisted: username → partition.
type Document map[string]*Partition

// SubjectKey returns the canonical lookup key for a subject: trimmed and
// lowercased. Two subjects with the same key address the same conversation.
func SubjectKey(subject string) string {
	return strings.ToLower(strings.TrimSpace(subject))
}

// CountChars returns the character count as runes (not bytes), matching the
// stored char_count semantics for multi-byte text.
func CountChars(text string) int {
	return utf8.RuneCountInString(text)
}

// NewID generates a ULID for a new conversation.
func NewID() (string, error) {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(time.Now()), entropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// Find returns the conversation with the given subject in the partition,
// matched case-insensitively, or nil if absent.
func (p *Partition) Find(subject string) *Conversation {
	if p == nil {
		return nil
	}
	key := SubjectKey(subject)
	for _, c := range p.Conversations {
		if SubjectKey(c.Subject) == key {
			return c
		}
	}
	return nil
}

// FindByID returns the conversation with the given id, or nil if absent.
func (p *Partition) FindByID(id string) *Conversation {
	if p == nil {
		return nil
	}
	for _, c := range p.Conversations {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// RemainingTTL reports how much of the retention window is left for c at now.
// The second return is false for a record without a creation timestamp.
func RemainingTTL(c *Conversation, now time.Time, ttl time.Duration) (time.Duration, bool) {
	if c == nil || c.CreatedAt == nil {
		return 0, false
	}
	return ttl - now.Sub(*c.CreatedAt), true
}
