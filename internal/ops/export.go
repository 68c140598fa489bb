package ops

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"hookline/internal/conversation"
	"hookline/internal/errors"
	"hookline/internal/store"
)

// ExportInput contains parameters for the Export operation.
type ExportInput struct {
	Username string

	// Subject narrows the export to one conversation; empty exports the
	// owner's whole partition.
	Subject string

	// Path is the destination file. Default:
	// <baseDir>/exports/<username>-<timestamp>.md
	Path string
}

// ExportOutput contains the result of the Export operation.
type ExportOutput struct {
	Path          string `json:"path"`
	Conversations int    `json:"conversations"`
	Scripts       int    `json:"scripts"`
	Hooks         int    `json:"hooks"`
}

// Export writes an owner's conversations to a markdown file, one section per
// conversation with its scripts and hook-sets. The file is written via temp
// file + rename so a failed export never leaves a partial document.
func Export(st *store.Store, input ExportInput) (*ExportOutput, error) {
	username, err := ValidateUsername(input.Username)
	if err != nil {
		return nil, err
	}

	var convs []*conversation.Conversation
	err = st.ViewConversations(func(doc conversation.Document) error {
		p := doc[username]
		if input.Subject != "" {
			c := p.Find(input.Subject)
			if c == nil {
				return errors.NewNotFound("conversation for " + input.Subject)
			}
			convs = []*conversation.Conversation{c}
			return nil
		}
		if p != nil {
			convs = p.Conversations
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	path := input.Path
	if path == "" {
		timestamp := time.Now().Format("2006-01-02T150405")
		path = filepath.Join(st.BaseDir(), "exports", fmt.Sprintf("%s-%s.md", username, timestamp))
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to create export directory: %w", err))
	}

	output := &ExportOutput{Path: path, Conversations: len(convs)}
	var b strings.Builder
	fmt.Fprintf(&b, "# Conversations for %s\n", username)
	for _, c := range convs {
		fmt.Fprintf(&b, "\n## %s\n", c.Subject)
		if c.CreatedAt != nil {
			fmt.Fprintf(&b, "\nCreated: %s\n", c.CreatedAt.Format(time.RFC3339))
		}
		for i, s := range c.Scripts {
			fmt.Fprintf(&b, "\n### Script %d (%d chars)\n\n%s\n", i+1, s.CharCount, s.Content)
			output.Scripts++
		}
		for i, h := range c.Hooks {
			fmt.Fprintf(&b, "\n### Hooks %d\n\n%s\n", i+1, h.Content)
			output.Hooks++
		}
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(b.String()), 0600); err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to write export file: %w", err))
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return nil, errors.NewInternal(fmt.Errorf("failed to finalize export: %w", err))
	}

	return output, nil
}
