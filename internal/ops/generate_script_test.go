package ops

import (
	"context"
	"io"
	"strings"
	"testing"

	"hookline/internal/config"
	"hookline/internal/credit"
	"hookline/internal/errors"
	"hookline/internal/store"
)

// fakeGateway returns canned text or a canned error, recording its inputs.
type fakeGateway struct {
	scriptText string
	hooksText  string
	err        error

	gotSubject string
	gotScripts []string
	calls      int
}

func (g *fakeGateway) GenerateScript(ctx context.Context, subject string, sink io.Writer) (string, error) {
	g.calls++
	g.gotSubject = subject
	if g.err != nil {
		return "", g.err
	}
	if sink != nil {
		_, _ = io.WriteString(sink, g.scriptText)
	}
	return g.scriptText, nil
}

func (g *fakeGateway) GenerateHooks(ctx context.Context, scripts []string, sink io.Writer) (string, error) {
	g.calls++
	g.gotScripts = scripts
	if g.err != nil {
		return "", g.err
	}
	if sink != nil {
		_, _ = io.WriteString(sink, g.hooksText)
	}
	return g.hooksText, nil
}

func generateEnv(t *testing.T) (*store.Store, *config.Config, *credit.Coordinator) {
	t.Helper()
	st := newTestStore(t)
	cfg := config.DefaultConfig()
	return st, cfg, credit.NewCoordinator(st, nil)
}

func TestGenerateScript(t *testing.T) {
	st, cfg, coord := generateEnv(t)
	mustAddUser(t, st, "alice", 5)
	gw := &fakeGateway{scriptText: "generated panda script"}

	var sink strings.Builder
	out, err := GenerateScript(context.Background(), st, cfg, coord, gw, GenerateScriptInput{
		Username: "alice", Subject: "panda", Sink: &sink,
	})
	if err != nil {
		t.Fatalf("GenerateScript failed: %v", err)
	}
	if out.Content != "generated panda script" {
		t.Errorf("Content = %q", out.Content)
	}
	if out.CreditsCharged != 1 {
		t.Errorf("CreditsCharged = %d, want 1", out.CreditsCharged)
	}
	if gw.gotSubject != "panda" {
		t.Errorf("gateway subject = %q, want panda", gw.gotSubject)
	}
	if sink.String() != "generated panda script" {
		t.Errorf("sink = %q, want streamed text", sink.String())
	}

	c := fetchConversation(t, st, "alice", "panda")
	if len(c.Scripts) != 1 || c.Scripts[0].CharCount != 22 {
		t.Errorf("scripts = %+v, want one with char_count 22", c.Scripts)
	}

	u := userRecord(t, st, "alice")
	if u.Credits != 4 {
		t.Errorf("Credits = %d, want 4", u.Credits)
	}
	if u.TotalScripts != 1 {
		t.Errorf("TotalScripts = %d, want 1", u.TotalScripts)
	}
	if u.LastActivity == nil {
		t.Error("last_activity not stamped")
	}
}

func TestGenerateScript_RefundOnGatewayFailure(t *testing.T) {
	st, cfg, coord := generateEnv(t)
	mustAddUser(t, st, "alice", 5)
	gw := &fakeGateway{err: errors.NewGatewayFailure("upstream produced no text")}

	_, err := GenerateScript(context.Background(), st, cfg, coord, gw, GenerateScriptInput{
		Username: "alice", Subject: "panda",
	})
	if !errors.Is(err, errors.ErrGatewayFailure) {
		t.Fatalf("error = %v, want GATEWAY_FAILURE", err)
	}

	u := userRecord(t, st, "alice")
	if u.Credits != 5 {
		t.Errorf("Credits = %d, want 5 (refunded)", u.Credits)
	}
	if u.TotalScripts != 0 {
		t.Errorf("TotalScripts = %d, want 0 (no counter on failure)", u.TotalScripts)
	}
	if fetchConversation(t, st, "alice", "panda") != nil {
		t.Error("failed generation must not create the conversation")
	}
}

func TestGenerateScript_InsufficientCredits(t *testing.T) {
	st, cfg, coord := generateEnv(t)
	mustAddUser(t, st, "alice", 0)
	gw := &fakeGateway{scriptText: "text"}

	_, err := GenerateScript(context.Background(), st, cfg, coord, gw, GenerateScriptInput{
		Username: "alice", Subject: "panda",
	})
	if !errors.Is(err, errors.ErrInsufficientCredits) {
		t.Fatalf("error = %v, want INSUFFICIENT_CREDITS", err)
	}
	if gw.calls != 0 {
		t.Error("gateway must not be called without a committed debit")
	}
}

func TestGenerateScript_AdminBypass(t *testing.T) {
	st, cfg, coord := generateEnv(t)
	gw := &fakeGateway{scriptText: "admin script"}

	out, err := GenerateScript(context.Background(), st, cfg, coord, gw, GenerateScriptInput{
		Username: "root", Subject: "panda", Admin: true,
	})
	if err != nil {
		t.Fatalf("GenerateScript failed: %v", err)
	}
	if out.CreditsCharged != 0 {
		t.Errorf("CreditsCharged = %d, want 0 for admin", out.CreditsCharged)
	}
	if userRecord(t, st, "root") != nil {
		t.Error("admin generation must not create a ledger record")
	}
	if fetchConversation(t, st, "root", "panda") == nil {
		t.Error("admin generation must still persist the script")
	}
}
