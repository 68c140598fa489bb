package conversation

import "time"

// Sweep returns a copy of doc with every conversation whose age at now has
// reached ttl removed, along with the number of conversations dropped.
// Records without a creation timestamp are dropped too: they predate
// retention tracking and cannot be aged. The input document is not mutated;
// callers decide whether to persist the result.
func Sweep(doc Document, now time.Time, ttl time.Duration) (Document, int) {
	if doc == nil {
		return Document{}, 0
	}

	swept := make(Document, len(doc))
	dropped := 0

	for owner, part := range doc {
		if part == nil {
			swept[owner] = &Partition{}
			continue
		}
		kept := make([]*Conversation, 0, len(part.Conversations))
		for _, c := range part.Conversations {
			if c.CreatedAt == nil || now.Sub(*c.CreatedAt) >= ttl {
				dropped++
				continue
			}
			kept = append(kept, c)
		}
		swept[owner] = &Partition{Conversations: kept}
	}

	return swept, dropped
}
