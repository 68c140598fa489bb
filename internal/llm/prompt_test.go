package llm

import (
	"strings"
	"testing"
)

func TestBuildScriptPrompt(t *testing.T) {
	prompt, err := BuildScriptPrompt("Write a viral script about {{ANIMAL}}.", "Panda")
	if err != nil {
		t.Fatalf("BuildScriptPrompt failed: %v", err)
	}
	if prompt != "Write a viral script about Panda." {
		t.Errorf("prompt = %q", prompt)
	}
}

func TestBuildScriptPrompt_EmptyTemplate(t *testing.T) {
	if _, err := BuildScriptPrompt("", "Panda"); err == nil {
		t.Error("empty template should fail")
	}
}

func TestBuildScriptPrompt_MissingPlaceholder(t *testing.T) {
	_, err := BuildScriptPrompt("Write a viral script.", "Panda")
	if err == nil {
		t.Fatal("template without placeholder should fail")
	}
	if !strings.Contains(err.Error(), "{{ANIMAL}}") {
		t.Errorf("error %q should name the placeholder", err)
	}
}

func TestBuildHookPrompt(t *testing.T) {
	prompt, err := BuildHookPrompt("Hooks for:\n{{SCRIPT}}", []string{"alpha", "beta"})
	if err != nil {
		t.Fatalf("BuildHookPrompt failed: %v", err)
	}

	want := "Hooks for:\nSCRIPT 1:\nalpha\n\nSCRIPT 2:\nbeta"
	if prompt != want {
		t.Errorf("prompt = %q, want %q", prompt, want)
	}
}

func TestBuildHookPrompt_EmptyTemplate(t *testing.T) {
	if _, err := BuildHookPrompt("", []string{"alpha"}); err == nil {
		t.Error("empty template should fail")
	}
}

func TestBuildHookPrompt_NoScripts(t *testing.T) {
	if _, err := BuildHookPrompt("{{SCRIPT}}", nil); err == nil {
		t.Error("empty script list should fail")
	}
}
