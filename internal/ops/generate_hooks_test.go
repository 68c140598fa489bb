package ops

import (
	"context"
	"testing"

	"hookline/internal/errors"
)

func TestGenerateHooks(t *testing.T) {
	st, cfg, coord := generateEnv(t)
	mustAddUser(t, st, "alice", 5)
	for _, content := range []string{"script one", "script two"} {
		if _, err := AppendScript(st, AppendScriptInput{Username: "alice", Subject: "panda", Content: content}); err != nil {
			t.Fatalf("AppendScript failed: %v", err)
		}
	}
	gw := &fakeGateway{hooksText: "1. hook\n2. hook"}

	out, err := GenerateHooks(context.Background(), st, cfg, coord, gw, GenerateHooksInput{
		Username: "alice", Subject: "PANDA",
	})
	if err != nil {
		t.Fatalf("GenerateHooks failed: %v", err)
	}
	if out.Content != "1. hook\n2. hook" {
		t.Errorf("Content = %q", out.Content)
	}
	if len(gw.gotScripts) != 2 || gw.gotScripts[0] != "script one" {
		t.Errorf("gateway scripts = %v, want both scripts in order", gw.gotScripts)
	}

	c := fetchConversation(t, st, "alice", "panda")
	if len(c.Hooks) != 1 {
		t.Fatalf("hooks = %d, want 1", len(c.Hooks))
	}

	u := userRecord(t, st, "alice")
	if u.Credits != 4 {
		t.Errorf("Credits = %d, want 4", u.Credits)
	}
	if u.TotalHooks != 1 {
		t.Errorf("TotalHooks = %d, want 1", u.TotalHooks)
	}
}

func TestGenerateHooks_NoScripts(t *testing.T) {
	st, cfg, coord := generateEnv(t)
	mustAddUser(t, st, "alice", 5)
	if _, err := FindOrCreate(st, FindOrCreateInput{Username: "alice", Subject: "panda"}); err != nil {
		t.Fatalf("FindOrCreate failed: %v", err)
	}
	gw := &fakeGateway{hooksText: "hooks"}

	_, err := GenerateHooks(context.Background(), st, cfg, coord, gw, GenerateHooksInput{
		Username: "alice", Subject: "panda",
	})
	if !errors.Is(err, errors.ErrInvalidRequest) {
		t.Fatalf("error = %v, want INVALID_REQUEST", err)
	}
	if gw.calls != 0 {
		t.Error("gateway must not run for an empty conversation")
	}
	if got := userRecord(t, st, "alice").Credits; got != 5 {
		t.Errorf("Credits = %d, want 5 (nothing charged)", got)
	}
}

func TestGenerateHooks_UnknownConversation(t *testing.T) {
	st, cfg, coord := generateEnv(t)
	mustAddUser(t, st, "alice", 5)
	gw := &fakeGateway{hooksText: "hooks"}

	_, err := GenerateHooks(context.Background(), st, cfg, coord, gw, GenerateHooksInput{
		Username: "alice", Subject: "panda",
	})
	if !errors.Is(err, errors.ErrNotFound) {
		t.Fatalf("error = %v, want NOT_FOUND", err)
	}
}

func TestGenerateHooks_RefundOnGatewayFailure(t *testing.T) {
	st, cfg, coord := generateEnv(t)
	mustAddUser(t, st, "alice", 5)
	if _, err := AppendScript(st, AppendScriptInput{Username: "alice", Subject: "panda", Content: "script"}); err != nil {
		t.Fatalf("AppendScript failed: %v", err)
	}
	gw := &fakeGateway{err: errors.NewGatewayFailure("boom")}

	_, err := GenerateHooks(context.Background(), st, cfg, coord, gw, GenerateHooksInput{
		Username: "alice", Subject: "panda",
	})
	if !errors.Is(err, errors.ErrGatewayFailure) {
		t.Fatalf("error = %v, want GATEWAY_FAILURE", err)
	}
	u := userRecord(t, st, "alice")
	if u.Credits != 5 {
		t.Errorf("Credits = %d, want 5 (refunded)", u.Credits)
	}
	if u.TotalHooks != 0 {
		t.Errorf("TotalHooks = %d, want 0", u.TotalHooks)
	}
}
