package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"

	"hookline/internal/config"
	"hookline/internal/credit"
	"hookline/internal/errors"
	"hookline/internal/llm"
	"hookline/internal/logging"
	"hookline/internal/ops"
	"hookline/internal/store"
)

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	store *store.Store
	cfg   *config.Config
	coord *credit.Coordinator
	gw    llm.Gateway
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(st *store.Store, cfg *config.Config, gw llm.Gateway, log logging.Logger) *Handlers {
	return &Handlers{
		store: st,
		cfg:   cfg,
		coord: credit.NewCoordinator(st, log),
		gw:    gw,
	}
}

// isAdmin reports whether username is the configured admin identity. The
// stdio transport is local, so possession of the process stands in for the
// password check the outer surfaces do.
func (h *Handlers) isAdmin(username string) bool {
	return h.cfg.AdminUsername != "" && username == h.cfg.AdminUsername
}

// Request types for each tool

// UserAddRequest represents the arguments for user_add.
type UserAddRequest struct {
	Username string `json:"username"`
	Credits  int    `json:"credits,omitempty"`
}

// UserRemoveRequest represents the arguments for user_remove.
type UserRemoveRequest struct {
	Username string `json:"username"`
}

// CreditsGetRequest represents the arguments for user_credits_get.
type CreditsGetRequest struct {
	Username string `json:"username"`
}

// CreditsSetRequest represents the arguments for user_credits_set.
type CreditsSetRequest struct {
	Username string `json:"username"`
	Credits  int    `json:"credits"`
}

// PasswordUpdateRequest represents the arguments for user_password_update.
type PasswordUpdateRequest struct {
	Password string `json:"password"`
}

// ConversationListRequest represents the arguments for conversation_list.
type ConversationListRequest struct {
	Username string `json:"username"`
}

// ConversationFetchRequest represents the arguments for conversation_fetch.
type ConversationFetchRequest struct {
	Username       string `json:"username"`
	Subject        string `json:"animal,omitempty"`
	ConversationID string `json:"conversation_id,omitempty"`
}

// ConversationWipeRequest represents the arguments for conversation_wipe.
type ConversationWipeRequest struct {
	Username string `json:"username,omitempty"`
	All      bool   `json:"all,omitempty"`
}

// ConversationExportRequest represents the arguments for conversation_export.
type ConversationExportRequest struct {
	Username string `json:"username"`
	Subject  string `json:"animal,omitempty"`
	Path     string `json:"path,omitempty"`
}

// GenerateRequest represents the arguments for script_generate and
// hook_generate.
type GenerateRequest struct {
	Username string `json:"username"`
	Subject  string `json:"animal"`
}

// ScriptAddRequest represents the arguments for script_add.
type ScriptAddRequest struct {
	Username string `json:"username"`
	Subject  string `json:"animal"`
	Content  string `json:"content"`
}

// HookAddRequest represents the arguments for hook_add.
type HookAddRequest struct {
	Username       string `json:"username"`
	ConversationID string `json:"conversation_id"`
	Content        string `json:"content"`
}

// EntryUpdateRequest represents the arguments for script_update and
// hook_update.
type EntryUpdateRequest struct {
	Username string `json:"username"`
	Subject  string `json:"animal"`
	Index    int    `json:"index"`
	Content  string `json:"content"`
}

// EntryDeleteRequest represents the arguments for script_delete and
// hook_delete.
type EntryDeleteRequest struct {
	Username string `json:"username"`
	Subject  string `json:"animal"`
	Index    int    `json:"index"`
}

// Handler implementations

// HandleUserAdd handles the user_add tool call.
func (h *Handlers) HandleUserAdd(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[UserAddRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.AddUser(h.store, ops.AddUserInput{
		Username: input.Username,
		Credits:  input.Credits,
	})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleUserRemove handles the user_remove tool call.
func (h *Handlers) HandleUserRemove(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[UserRemoveRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.RemoveUser(h.store, ops.RemoveUserInput{Username: input.Username})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleUserList handles the user_list tool call.
func (h *Handlers) HandleUserList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := ops.ListUsers(h.store)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleCreditsGet handles the user_credits_get tool call.
func (h *Handlers) HandleCreditsGet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[CreditsGetRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.GetCredits(h.store, ops.GetCreditsInput{Username: input.Username})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleCreditsSet handles the user_credits_set tool call.
func (h *Handlers) HandleCreditsSet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[CreditsSetRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.SetCredits(h.store, ops.SetCreditsInput{
		Username: input.Username,
		Credits:  input.Credits,
	})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandlePasswordUpdate handles the user_password_update tool call.
func (h *Handlers) HandlePasswordUpdate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[PasswordUpdateRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.UpdateGlobalPassword(h.store, ops.UpdatePasswordInput{Password: input.Password})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleConversationList handles the conversation_list tool call.
func (h *Handlers) HandleConversationList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ConversationListRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.ListConversations(h.store, ops.ListConversationsInput{
		Username: input.Username,
		TTL:      h.cfg.TTL(),
	})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleConversationFetch handles the conversation_fetch tool call.
func (h *Handlers) HandleConversationFetch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ConversationFetchRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Fetch(h.store, ops.FetchInput{
		Username:       input.Username,
		Subject:        input.Subject,
		ConversationID: input.ConversationID,
	})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleConversationWipe handles the conversation_wipe tool call.
func (h *Handlers) HandleConversationWipe(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ConversationWipeRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Wipe(h.store, ops.WipeInput{
		Username: input.Username,
		All:      input.All,
	})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleConversationExport handles the conversation_export tool call.
func (h *Handlers) HandleConversationExport(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ConversationExportRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Export(h.store, ops.ExportInput{
		Username: input.Username,
		Subject:  input.Subject,
		Path:     input.Path,
	})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleScriptGenerate handles the script_generate tool call.
func (h *Handlers) HandleScriptGenerate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[GenerateRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.GenerateScript(ctx, h.store, h.cfg, h.coord, h.gw, ops.GenerateScriptInput{
		Username: input.Username,
		Subject:  input.Subject,
		Admin:    h.isAdmin(input.Username),
	})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleScriptAdd handles the script_add tool call.
func (h *Handlers) HandleScriptAdd(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ScriptAddRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.AppendScript(h.store, ops.AppendScriptInput{
		Username: input.Username,
		Subject:  input.Subject,
		Content:  input.Content,
	})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleScriptUpdate handles the script_update tool call.
func (h *Handlers) HandleScriptUpdate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[EntryUpdateRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.UpdateScript(h.store, ops.UpdateScriptInput{
		Username: input.Username,
		Subject:  input.Subject,
		Index:    input.Index,
		Content:  input.Content,
	})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleScriptDelete handles the script_delete tool call.
func (h *Handlers) HandleScriptDelete(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[EntryDeleteRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.DeleteScript(h.store, ops.DeleteScriptInput{
		Username: input.Username,
		Subject:  input.Subject,
		Index:    input.Index,
	})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleHookGenerate handles the hook_generate tool call.
func (h *Handlers) HandleHookGenerate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[GenerateRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.GenerateHooks(ctx, h.store, h.cfg, h.coord, h.gw, ops.GenerateHooksInput{
		Username: input.Username,
		Subject:  input.Subject,
		Admin:    h.isAdmin(input.Username),
	})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleHookAdd handles the hook_add tool call.
func (h *Handlers) HandleHookAdd(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[HookAddRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.AppendHook(h.store, ops.AppendHookInput{
		Username:       input.Username,
		ConversationID: input.ConversationID,
		Content:        input.Content,
	})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleHookUpdate handles the hook_update tool call.
func (h *Handlers) HandleHookUpdate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[EntryUpdateRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.UpdateHook(h.store, ops.UpdateHookInput{
		Username: input.Username,
		Subject:  input.Subject,
		Index:    input.Index,
		Content:  input.Content,
	})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleHookDelete handles the hook_delete tool call.
func (h *Handlers) HandleHookDelete(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[EntryDeleteRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.DeleteHook(h.store, ops.DeleteHookInput{
		Username: input.Username,
		Subject:  input.Subject,
		Index:    input.Index,
	})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleSubjectSuggest handles the subject_suggest tool call.
func (h *Handlers) HandleSubjectSuggest(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return successResult(ops.SuggestSubjects(h.cfg))
}

// Result helpers

// errorResult creates an MCP error result from any error. Internal error
// details stay out of the payload so file paths and upstream messages do not
// leak to clients.
func errorResult(err error) *mcp.CallToolResult {
	var payload map[string]any

	if hErr, ok := err.(*errors.Error); ok {
		errorObj := map[string]any{
			"code":    hErr.Code,
			"message": hErr.Message,
			"status":  hErr.Status,
		}
		if hErr.Code != errors.ErrInternal && hErr.Details != nil {
			errorObj["details"] = hErr.Details
		}
		payload = map[string]any{"error": errorObj}
	} else {
		payload = map[string]any{
			"error": map[string]any{
				"code":    "INTERNAL",
				"message": "an internal error occurred",
				"status":  500,
			},
		}
	}

	content, _ := json.Marshal(payload)
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult creates an MCP success result from any data.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}
