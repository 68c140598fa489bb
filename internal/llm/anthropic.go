package llm

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"hookline/internal/config"
	"hookline/internal/errors"
	"hookline/internal/logging"
)

const defaultEndpoint = "https://api.anthropic.com/v1/messages"

// AnthropicGateway implements Gateway against the Anthropic Messages API
// using SSE streaming.
type AnthropicGateway struct {
	// Endpoint is the messages API URL. Overridable for tests.
	Endpoint string

	apiKey          string
	model           string
	scriptPrompt    string
	hookPrompt      string
	scriptMaxTokens int
	hookMaxTokens   int
	temperature     float64
	client          *http.Client
	log             logging.Logger
}

// NewAnthropicGateway creates a gateway from config. credentials and prompt
// templates are validated lazily, per call, so a partially configured
// install still serves unpaid operations.
func NewAnthropicGateway(cfg *config.Config, log logging.Logger) *AnthropicGateway {
	return &AnthropicGateway{
		Endpoint:        defaultEndpoint,
		apiKey:          cfg.APIKey,
		model:           cfg.Model,
		scriptPrompt:    cfg.ScriptPrompt,
		hookPrompt:      cfg.HookPrompt,
		scriptMaxTokens: cfg.ScriptMaxTokens,
		hookMaxTokens:   cfg.HookMaxTokens,
		temperature:     cfg.Temperature,
		client:          &http.Client{Timeout: 120 * time.Second},
		log:             log,
	}
}

// GenerateScript produces one script for the subject.
func (g *AnthropicGateway) GenerateScript(ctx context.Context, subject string, sink io.Writer) (string, error) {
	prompt, err := BuildScriptPrompt(g.scriptPrompt, subject)
	if err != nil {
		return "", errors.NewGatewayFailure(err.Error())
	}
	return g.stream(ctx, prompt, g.scriptMaxTokens, sink)
}

// GenerateHooks produces one hook-set from the given scripts.
func (g *AnthropicGateway) GenerateHooks(ctx context.Context, scripts []string, sink io.Writer) (string, error) {
	prompt, err := BuildHookPrompt(g.hookPrompt, scripts)
	if err != nil {
		return "", errors.NewGatewayFailure(err.Error())
	}
	return g.stream(ctx, prompt, g.hookMaxTokens, sink)
}

// stream performs one streaming completion, writing deltas to sink as they
// arrive and returning the full concatenated text.
func (g *AnthropicGateway) stream(ctx context.Context, prompt string, maxTokens int, sink io.Writer) (string, error) {
	if g.apiKey == "" {
		return "", errors.NewGatewayFailure("api key is not configured")
	}
	if sink == nil {
		sink = io.Discard
	}

	logger := g.log.With("model", g.model, "max_tokens", maxTokens)
	start := time.Now()

	reqBody := map[string]any{
		"model":       g.model,
		"max_tokens":  maxTokens,
		"temperature": g.temperature,
		"stream":      true,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", errors.NewInternal(fmt.Errorf("marshal request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.Endpoint, bytes.NewReader(body))
	if err != nil {
		return "", errors.NewInternal(fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", g.apiKey)
	req.Header.Set("anthropic-version", "2023-06-01")

	resp, err := g.client.Do(req)
	if err != nil {
		logger.Error(ctx, "generation request failed", "error", err)
		return "", errors.NewGatewayFailure(fmt.Sprintf("request failed: %v", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		logger.Error(ctx, "generation returned non-OK status",
			"status", resp.StatusCode, "body", string(respBody))
		return "", errors.NewGatewayFailure(fmt.Sprintf("upstream returned status %d", resp.StatusCode))
	}

	var full strings.Builder
	scanner := bufio.NewScanner(resp.Body)

	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		data := strings.TrimPrefix(line, "data: ")

		var event struct {
			Type  string `json:"type"`
			Delta struct {
				Type string `json:"type"`
				Text string `json:"text"`
			} `json:"delta"`
		}
		if err := json.Unmarshal([]byte(data), &event); err != nil {
			continue
		}

		if event.Type == "content_block_delta" && event.Delta.Text != "" {
			full.WriteString(event.Delta.Text)
			if _, err := sink.Write([]byte(event.Delta.Text)); err != nil {
				return "", errors.NewGatewayFailure(fmt.Sprintf("write to sink: %v", err))
			}
		}
	}

	if err := scanner.Err(); err != nil {
		logger.Error(ctx, "generation stream read failed", "error", err)
		return "", errors.NewGatewayFailure(fmt.Sprintf("read stream: %v", err))
	}

	text := full.String()
	if strings.TrimSpace(text) == "" {
		logger.Warn(ctx, "generation produced empty text")
		return "", errors.NewGatewayFailure("upstream produced no text")
	}

	logger.Debug(ctx, "generation completed",
		"latency_ms", time.Since(start).Milliseconds(),
		"chars", len(text))

	return text, nil
}
