package conversation

import (
	"testing"
	"time"
)

const week = 7 * 24 * time.Hour

func partitionWith(created ...*time.Time) *Partition {
	p := &Partition{}
	for i, ts := range created {
		p.Conversations = append(p.Conversations, &Conversation{
			ID:        string(rune('a' + i)),
			Subject:   "subject",
			CreatedAt: ts,
		})
	}
	return p
}

func timePtr(t time.Time) *time.Time { return &t }

func TestSweep_DropsExpired(t *testing.T) {
	now := time.Now()
	expired := timePtr(now.Add(-week - time.Second))
	fresh := timePtr(now.Add(-week + time.Second))

	doc := Document{
		"alice": partitionWith(expired, fresh),
	}

	swept, dropped := Sweep(doc, now, week)

	if dropped != 1 {
		t.Errorf("dropped = %d, want 1", dropped)
	}
	if got := len(swept["alice"].Conversations); got != 1 {
		t.Fatalf("len(conversations) = %d, want 1", got)
	}
	if swept["alice"].Conversations[0].CreatedAt != fresh {
		t.Error("the surviving conversation is not the fresh one")
	}
}

func TestSweep_BoundaryIsExpired(t *testing.T) {
	now := time.Now()
	exactly := timePtr(now.Add(-week))

	doc := Document{"bob": partitionWith(exactly)}

	swept, dropped := Sweep(doc, now, week)

	if dropped != 1 {
		t.Errorf("dropped = %d, want 1 (age == TTL must expire)", dropped)
	}
	if got := len(swept["bob"].Conversations); got != 0 {
		t.Errorf("len(conversations) = %d, want 0", got)
	}
}

func TestSweep_DropsMissingCreatedAt(t *testing.T) {
	now := time.Now()
	doc := Document{"carol": partitionWith(nil, timePtr(now))}

	swept, dropped := Sweep(doc, now, week)

	if dropped != 1 {
		t.Errorf("dropped = %d, want 1", dropped)
	}
	if got := len(swept["carol"].Conversations); got != 1 {
		t.Errorf("len(conversations) = %d, want 1", got)
	}
}

func TestSweep_DoesNotMutateInput(t *testing.T) {
	now := time.Now()
	doc := Document{
		"dave": partitionWith(timePtr(now.Add(-2 * week)), timePtr(now)),
	}

	_, dropped := Sweep(doc, now, week)

	if dropped != 1 {
		t.Fatalf("dropped = %d, want 1", dropped)
	}
	if got := len(doc["dave"].Conversations); got != 2 {
		t.Errorf("input partition length = %d after sweep, want 2", got)
	}
}

func TestSweep_NilDocument(t *testing.T) {
	swept, dropped := Sweep(nil, time.Now(), week)
	if dropped != 0 {
		t.Errorf("dropped = %d, want 0", dropped)
	}
	if swept == nil {
		t.Error("swept document is nil, want empty")
	}
}

func TestSweep_NilPartition(t *testing.T) {
	doc := Document{"erin": nil}
	swept, _ := Sweep(doc, time.Now(), week)
	if swept["erin"] == nil {
		t.Error("nil partition not normalized to empty")
	}
}
