// Package mcp exposes the hookline operations as MCP tools over stdio. The
// transport is local and single-operator: tools act on behalf of the
// username they are given, and the configured admin identity bypasses credit
// charges the same way it does on the CLI.
package mcp

import (
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"hookline/internal/config"
	"hookline/internal/llm"
	"hookline/internal/logging"
	"hookline/internal/store"
)

// KnownTypes lists all valid tool type prefixes.
var KnownTypes = []string{"user", "conversation", "script", "hook", "subject"}

// toolEntry pairs a tool definition with a handler factory.
type toolEntry struct {
	def     mcp.Tool
	handler func(*Handlers) server.ToolHandlerFunc
}

// toolRegistry maps tool names to their definitions and handler factories.
var toolRegistry = map[string]toolEntry{
	"user_add": {
		def:     userAddToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleUserAdd },
	},
	"user_remove": {
		def:     userRemoveToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleUserRemove },
	},
	"user_list": {
		def:     userListToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleUserList },
	},
	"user_credits_get": {
		def:     userCreditsGetToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleCreditsGet },
	},
	"user_credits_set": {
		def:     userCreditsSetToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleCreditsSet },
	},
	"user_password_update": {
		def:     userPasswordUpdateToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandlePasswordUpdate },
	},
	"conversation_list": {
		def:     conversationListToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleConversationList },
	},
	"conversation_fetch": {
		def:     conversationFetchToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleConversationFetch },
	},
	"conversation_wipe": {
		def:     conversationWipeToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleConversationWipe },
	},
	"conversation_export": {
		def:     conversationExportToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleConversationExport },
	},
	"script_generate": {
		def:     scriptGenerateToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleScriptGenerate },
	},
	"script_add": {
		def:     scriptAddToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleScriptAdd },
	},
	"script_update": {
		def:     scriptUpdateToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleScriptUpdate },
	},
	"script_delete": {
		def:     scriptDeleteToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleScriptDelete },
	},
	"hook_generate": {
		def:     hookGenerateToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleHookGenerate },
	},
	"hook_add": {
		def:     hookAddToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleHookAdd },
	},
	"hook_update": {
		def:     hookUpdateToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleHookUpdate },
	},
	"hook_delete": {
		def:     hookDeleteToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleHookDelete },
	},
	"subject_suggest": {
		def:     subjectSuggestToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleSubjectSuggest },
	},
}

// AllToolNames returns a list of all valid tool names.
func AllToolNames() []string {
	names := make([]string, 0, len(toolRegistry))
	for name := range toolRegistry {
		names = append(names, name)
	}
	return names
}

// ValidateDisabledTools returns the unknown tool names from the given list.
func ValidateDisabledTools(names []string) []string {
	unknown := make([]string, 0)
	for _, name := range names {
		if _, ok := toolRegistry[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	return unknown
}

// GetTypeForTool extracts the type prefix from a tool name, e.g.
// "script_generate" → "script".
func GetTypeForTool(toolName string) string {
	if idx := strings.Index(toolName, "_"); idx > 0 {
		return toolName[:idx]
	}
	return ""
}

// NewServer creates an MCP server with the hookline tools registered.
// Tools listed in cfg.DisabledTools are excluded from registration.
func NewServer(st *store.Store, cfg *config.Config, gw llm.Gateway, log logging.Logger, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"hookline",
		version,
		server.WithToolCapabilities(true),
	)

	h := NewHandlers(st, cfg, gw, log)

	disabled := make(map[string]bool)
	for _, name := range cfg.DisabledTools {
		disabled[name] = true
	}

	for name, entry := range toolRegistry {
		if disabled[name] {
			continue
		}
		s.AddTool(entry.def, entry.handler(h))
	}

	return s
}

// Run starts the MCP server using stdio transport.
func Run(st *store.Store, cfg *config.Config, gw llm.Gateway, log logging.Logger, version string) error {
	s := NewServer(st, cfg, gw, log, version)
	return server.ServeStdio(s)
}
