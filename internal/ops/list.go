package ops

import (
	"time"

	"hookline/internal/conversation"
	"hookline/internal/store"
)

// ListConversationsInput contains parameters for the ListConversations
// operation.
type ListConversationsInput struct {
	Username string

	// TTL is the retention window used to report remaining lifetimes.
	TTL time.Duration
}

// ConversationSummary is one row of the ListConversations output.
type ConversationSummary struct {
	ID        string     `json:"id"`
	Subject   string     `json:"animal"`
	Scripts   int        `json:"scripts"`
	Hooks     int        `json:"hooks"`
	CreatedAt *time.Time `json:"created_at"`

	// RemainingSeconds is the time left before retention drops the
	// conversation. Omitted for records without a creation timestamp.
	RemainingSeconds *int64 `json:"remaining_seconds,omitempty"`
}

// ListConversationsOutput contains the result of the ListConversations
// operation.
type ListConversationsOutput struct {
	Conversations []ConversationSummary `json:"conversations"`
	Total         int                   `json:"total"`
}

// ListConversations returns the owner's conversations in insertion order,
// with script/hook counts and remaining retention. Expired records were
// already swept from the snapshot and never appear.
func ListConversations(st *store.Store, input ListConversationsInput) (*ListConversationsOutput, error) {
	username, err := ValidateUsername(input.Username)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	output := &ListConversationsOutput{Conversations: []ConversationSummary{}}
	err = st.ViewConversations(func(doc conversation.Document) error {
		p := doc[username]
		if p == nil {
			return nil
		}
		for _, c := range p.Conversations {
			s := ConversationSummary{
				ID:        c.ID,
				Subject:   c.Subject,
				Scripts:   len(c.Scripts),
				Hooks:     len(c.Hooks),
				CreatedAt: c.CreatedAt,
			}
			if remaining, ok := conversation.RemainingTTL(c, now, input.TTL); ok {
				secs := int64(remaining / time.Second)
				s.RemainingSeconds = &secs
			}
			output.Conversations = append(output.Conversations, s)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	output.Total = len(output.Conversations)
	return output, nil
}
