// Package store persists the two application documents — the credit ledger
// and the conversation partitions — as whole JSON files, rewritten in full on
// every save. A corrupt or missing document loads as an empty store
// (recoverOrEmpty); a failed save is surfaced loudly and never retried.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"hookline/internal/config"
	"hookline/internal/conversation"
	"hookline/internal/errors"
	"hookline/internal/ledger"
)

const (
	ledgerFile        = "ledger.json"
	conversationsFile = "conversations.json"
)

// Store serializes all document access behind one in-process mutex. The
// underlying files carry no cross-process coordination: a concurrent writer
// in another process loses updates (documented single-writer limitation).
type Store struct {
	baseDir         string
	ttl             time.Duration
	defaultPassword string

	mu sync.Mutex
}

// Open prepares the data directory at baseDir and returns a Store configured
// with the retention window and shared-password bootstrap from cfg.
// The baseDir parameter allows tests to use t.TempDir() instead of ~/.hookline.
func Open(baseDir string, cfg *config.Config) (*Store, error) {
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}
	_ = os.Chmod(baseDir, 0700)

	return &Store{
		baseDir:         baseDir,
		ttl:             cfg.TTL(),
		defaultPassword: cfg.DefaultPassword,
	}, nil
}

// BaseDir returns the data directory the store persists into.
func (s *Store) BaseDir() string {
	return s.baseDir
}

// ViewLedger runs fn against a loaded ledger snapshot without persisting.
func (s *Store) ViewLedger(fn func(*ledger.Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return fn(s.loadLedger())
}

// UpdateLedger runs fn against a loaded ledger snapshot and persists the
// full document when fn succeeds. An error from fn aborts the update with
// nothing written.
func (s *Store) UpdateLedger(fn func(*ledger.Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.loadLedger()
	if err := fn(doc); err != nil {
		return err
	}
	return s.save(ledgerFile, doc)
}

// ViewConversations runs fn against a swept conversation snapshot without
// persisting. Expired conversations are dropped from the snapshot before fn
// observes it; the deletions become durable on the next write.
func (s *Store) ViewConversations(fn func(conversation.Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, _ := conversation.Sweep(s.loadConversations(), time.Now(), s.ttl)
	return fn(doc)
}

// UpdateConversations runs fn against a swept conversation snapshot and
// persists the full document when fn succeeds, durably committing both fn's
// mutations and the sweep's deletions.
func (s *Store) UpdateConversations(fn func(conversation.Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, _ := conversation.Sweep(s.loadConversations(), time.Now(), s.ttl)
	if err := fn(doc); err != nil {
		return err
	}
	return s.save(conversationsFile, doc)
}

// loadLedger reads the ledger document, treating a missing or corrupt file
// as an empty ledger seeded with the default shared password.
func (s *Store) loadLedger() *ledger.Document {
	doc := &ledger.Document{}
	if !s.load(ledgerFile, doc) {
		return ledger.NewDocument(s.defaultPassword)
	}
	if doc.Users == nil {
		doc.Users = make(map[string]*ledger.User)
	}
	if doc.GlobalPassword == "" {
		doc.GlobalPassword = s.defaultPassword
	}
	return doc
}

// loadConversations reads the conversation document, treating a missing or
// corrupt file as an empty store.
func (s *Store) loadConversations() conversation.Document {
	doc := conversation.Document{}
	if !s.load(conversationsFile, &doc) {
		return conversation.Document{}
	}
	return doc
}

// load reads and unmarshals one document file. Returns false when the file
// is unreadable or unparsable; availability wins over strict durability here.
func (s *Store) load(name string, v any) bool {
	data, err := os.ReadFile(filepath.Join(s.baseDir, name))
	if err != nil {
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false
	}
	return true
}

// save rewrites one document file in full, via temp file + rename so a
// failed write never truncates the previous document.
func (s *Store) save(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.NewPersistenceFailure(err)
	}

	path := filepath.Join(s.baseDir, name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return errors.NewPersistenceFailure(err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return errors.NewPersistenceFailure(err)
	}
	return nil
}
