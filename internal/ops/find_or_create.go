package ops

import (
	"time"

	"hookline/internal/conversation"
	"hookline/internal/errors"
	"hookline/internal/store"
)

// FindOrCreateInput contains parameters for the FindOrCreate operation.
type FindOrCreateInput struct {
	Username string
	Subject  string
}

// FindOrCreateOutput contains the result of the FindOrCreate operation.
type FindOrCreateOutput struct {
	ID      string `json:"id"`
	Subject string `json:"animal"`
	Created bool   `json:"created"`
	Scripts int    `json:"scripts"`
	Hooks   int    `json:"hooks"`
}

// FindOrCreate returns the conversation for (username, subject), creating it
// when absent. Subjects match case-insensitively; a new conversation stores
// the subject with the caller's casing.
func FindOrCreate(st *store.Store, input FindOrCreateInput) (*FindOrCreateOutput, error) {
	username, err := ValidateUsername(input.Username)
	if err != nil {
		return nil, err
	}
	subject, err := ValidateSubject(input.Subject)
	if err != nil {
		return nil, err
	}

	output := &FindOrCreateOutput{}
	err = st.UpdateConversations(func(doc conversation.Document) error {
		c, created, err := findOrCreate(doc, username, subject)
		if err != nil {
			return err
		}
		output.ID = c.ID
		output.Subject = c.Subject
		output.Created = created
		output.Scripts = len(c.Scripts)
		output.Hooks = len(c.Hooks)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return output, nil
}

// findOrCreate is the in-document form shared by every op that lazily
// materializes a conversation. The doc passed in is the swept snapshot; a
// conversation recreated after expiry gets a fresh id and timestamp.
func findOrCreate(doc conversation.Document, username, subject string) (*conversation.Conversation, bool, error) {
	p := doc[username]
	if p == nil {
		p = &conversation.Partition{}
		doc[username] = p
	}

	if c := p.Find(subject); c != nil {
		return c, false, nil
	}

	id, err := conversation.NewID()
	if err != nil {
		return nil, false, errors.NewInternal(err)
	}
	now := time.Now()
	c := &conversation.Conversation{
		ID:        id,
		Subject:   subject,
		Scripts:   []conversation.Script{},
		Hooks:     []conversation.Hook{},
		CreatedAt: &now,
	}
	p.Conversations = append(p.Conversations, c)
	return c, true, nil
}
