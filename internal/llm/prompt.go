package llm

import (
	"fmt"
	"strings"
)

// Template placeholders. The script template carries the subject slot; the
// hook template carries the combined-scripts slot.
const (
	SubjectPlaceholder = "{{ANIMAL}}"
	ScriptPlaceholder  = "{{SCRIPT}}"
)

// BuildScriptPrompt substitutes the subject into the script template.
// The template must be non-empty and contain the subject placeholder.
func BuildScriptPrompt(template, subject string) (string, error) {
	if template == "" {
		return "", fmt.Errorf("script prompt is not configured")
	}
	if !strings.Contains(template, SubjectPlaceholder) {
		return "", fmt.Errorf("script prompt is missing the %s placeholder", SubjectPlaceholder)
	}
	return strings.ReplaceAll(template, SubjectPlaceholder, subject), nil
}

// BuildHookPrompt combines all scripts into one numbered block and
// substitutes it into the hook template.
func BuildHookPrompt(template string, scripts []string) (string, error) {
	if template == "" {
		return "", fmt.Errorf("hook prompt is not configured")
	}
	if len(scripts) == 0 {
		return "", fmt.Errorf("no scripts to build hooks from")
	}

	parts := make([]string, len(scripts))
	for i, s := range scripts {
		parts[i] = fmt.Sprintf("SCRIPT %d:\n%s", i+1, s)
	}
	combined := strings.Join(parts, "\n\n")

	return strings.ReplaceAll(template, ScriptPlaceholder, combined), nil
}
