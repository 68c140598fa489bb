package ops

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"hookline/internal/errors"
)

func TestExport(t *testing.T) {
	st := newTestStore(t)
	if _, err := AppendScript(st, AppendScriptInput{Username: "alice", Subject: "Panda", Content: "panda script"}); err != nil {
		t.Fatalf("AppendScript failed: %v", err)
	}
	created, err := FindOrCreate(st, FindOrCreateInput{Username: "alice", Subject: "Panda"})
	if err != nil {
		t.Fatalf("FindOrCreate failed: %v", err)
	}
	if _, err := AppendHook(st, AppendHookInput{Username: "alice", ConversationID: created.ID, Content: "1. hook"}); err != nil {
		t.Fatalf("AppendHook failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "out.md")
	out, err := Export(st, ExportInput{Username: "alice", Path: path})
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if out.Conversations != 1 || out.Scripts != 1 || out.Hooks != 1 {
		t.Errorf("output = %+v, want 1/1/1", out)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	text := string(data)
	for _, want := range []string{"## Panda", "panda script", "1. hook"} {
		if !strings.Contains(text, want) {
			t.Errorf("export missing %q", want)
		}
	}
}

func TestExport_DefaultPath(t *testing.T) {
	st := newTestStore(t)
	if _, err := AppendScript(st, AppendScriptInput{Username: "alice", Subject: "panda", Content: "s"}); err != nil {
		t.Fatalf("AppendScript failed: %v", err)
	}

	out, err := Export(st, ExportInput{Username: "alice"})
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if !strings.HasPrefix(out.Path, filepath.Join(st.BaseDir(), "exports")) {
		t.Errorf("Path = %q, want under %s/exports", out.Path, st.BaseDir())
	}
	if _, err := os.Stat(out.Path); err != nil {
		t.Errorf("export file missing: %v", err)
	}
}

func TestExport_SubjectFilter(t *testing.T) {
	st := newTestStore(t)
	if _, err := AppendScript(st, AppendScriptInput{Username: "alice", Subject: "panda", Content: "panda text"}); err != nil {
		t.Fatalf("AppendScript failed: %v", err)
	}
	if _, err := AppendScript(st, AppendScriptInput{Username: "alice", Subject: "shark", Content: "shark text"}); err != nil {
		t.Fatalf("AppendScript failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "panda.md")
	out, err := Export(st, ExportInput{Username: "alice", Subject: "PANDA", Path: path})
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if out.Conversations != 1 {
		t.Errorf("Conversations = %d, want 1", out.Conversations)
	}
	data, _ := os.ReadFile(path)
	if strings.Contains(string(data), "shark text") {
		t.Error("subject filter leaked another conversation")
	}
}

func TestExport_UnknownSubject(t *testing.T) {
	st := newTestStore(t)
	if _, err := Export(st, ExportInput{Username: "alice", Subject: "nope"}); !errors.Is(err, errors.ErrNotFound) {
		t.Fatalf("error = %v, want NOT_FOUND", err)
	}
}
