package ops

import (
	"testing"

	"hookline/internal/errors"
)

func TestAppendScript_LazilyCreates(t *testing.T) {
	st := newTestStore(t)

	out, err := AppendScript(st, AppendScriptInput{Username: "alice", Subject: "shark", Content: "a shark script"})
	if err != nil {
		t.Fatalf("AppendScript failed: %v", err)
	}
	if out.Index != 0 {
		t.Errorf("Index = %d, want 0", out.Index)
	}
	if out.CharCount != 14 {
		t.Errorf("CharCount = %d, want 14", out.CharCount)
	}

	c := fetchConversation(t, st, "alice", "shark")
	if c == nil {
		t.Fatal("conversation not created")
	}
	if len(c.Scripts) != 1 || c.Scripts[0].Content != "a shark script" {
		t.Errorf("scripts = %+v, want one script", c.Scripts)
	}
}

func TestAppendScript_MultiByteCharCount(t *testing.T) {
	st := newTestStore(t)

	out, err := AppendScript(st, AppendScriptInput{Username: "alice", Subject: "panda", Content: "日本語"})
	if err != nil {
		t.Fatalf("AppendScript failed: %v", err)
	}
	if out.CharCount != 3 {
		t.Errorf("CharCount = %d, want 3 (runes, not bytes)", out.CharCount)
	}
}

func TestAppendScript_OrderPreserved(t *testing.T) {
	st := newTestStore(t)

	for _, content := range []string{"first", "second", "third"} {
		if _, err := AppendScript(st, AppendScriptInput{Username: "alice", Subject: "panda", Content: content}); err != nil {
			t.Fatalf("AppendScript failed: %v", err)
		}
	}

	c := fetchConversation(t, st, "alice", "panda")
	want := []string{"first", "second", "third"}
	for i, w := range want {
		if c.Scripts[i].Content != w {
			t.Errorf("Scripts[%d] = %q, want %q", i, c.Scripts[i].Content, w)
		}
	}
}

func TestAppendScript_EmptyContent(t *testing.T) {
	st := newTestStore(t)
	if _, err := AppendScript(st, AppendScriptInput{Username: "alice", Subject: "panda"}); !errors.Is(err, errors.ErrInvalidRequest) {
		t.Fatalf("error = %v, want INVALID_REQUEST", err)
	}
}
