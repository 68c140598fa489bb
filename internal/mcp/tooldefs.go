package mcp

import "github.com/mark3labs/mcp-go/mcp"

var userAddToolDef = mcp.NewTool("user_add",
	mcp.WithDescription("Create a user account with a starting credit balance."),
	mcp.WithString("username", mcp.Required(), mcp.Description("Username to create")),
	mcp.WithNumber("credits", mcp.Description("Starting credit balance (default 0)")),
)

var userRemoveToolDef = mcp.NewTool("user_remove",
	mcp.WithDescription("Remove a user account and, best-effort, their conversations."),
	mcp.WithString("username", mcp.Required(), mcp.Description("Username to remove")),
)

var userListToolDef = mcp.NewTool("user_list",
	mcp.WithDescription("List all user accounts with balances, usage counters, and timestamps."),
)

var userCreditsGetToolDef = mcp.NewTool("user_credits_get",
	mcp.WithDescription("Read a user's credit balance. Unknown users read as zero."),
	mcp.WithString("username", mcp.Required(), mcp.Description("Username to look up")),
)

var userCreditsSetToolDef = mcp.NewTool("user_credits_set",
	mcp.WithDescription("Overwrite a user's credit balance with an absolute value."),
	mcp.WithString("username", mcp.Required(), mcp.Description("Username to update")),
	mcp.WithNumber("credits", mcp.Required(), mcp.Description("New absolute balance")),
)

var userPasswordUpdateToolDef = mcp.NewTool("user_password_update",
	mcp.WithDescription("Replace the shared password used by all non-admin users."),
	mcp.WithString("password", mcp.Required(), mcp.Description("New shared password")),
)

var conversationListToolDef = mcp.NewTool("conversation_list",
	mcp.WithDescription("List a user's conversations with script/hook counts and remaining retention."),
	mcp.WithString("username", mcp.Required(), mcp.Description("Owner of the conversations")),
)

var conversationFetchToolDef = mcp.NewTool("conversation_fetch",
	mcp.WithDescription("Fetch one conversation in full, addressed by animal or conversation id."),
	mcp.WithString("username", mcp.Required(), mcp.Description("Owner of the conversation")),
	mcp.WithString("animal", mcp.Description("Subject of the conversation (case-insensitive)")),
	mcp.WithString("conversation_id", mcp.Description("Conversation id, alternative to animal")),
)

var conversationWipeToolDef = mcp.NewTool("conversation_wipe",
	mcp.WithDescription("Delete a user's conversations, or every user's when all is set."),
	mcp.WithString("username", mcp.Description("Owner to wipe; ignored when all is true")),
	mcp.WithBoolean("all", mcp.Description("Wipe every user's conversations")),
)

var conversationExportToolDef = mcp.NewTool("conversation_export",
	mcp.WithDescription("Export a user's conversations to a markdown file."),
	mcp.WithString("username", mcp.Required(), mcp.Description("Owner of the conversations")),
	mcp.WithString("animal", mcp.Description("Export only this subject's conversation")),
	mcp.WithString("path", mcp.Description("Destination file (default under the data directory)")),
)

var scriptGenerateToolDef = mcp.NewTool("script_generate",
	mcp.WithDescription("Generate a viral script for a subject and append it to the user's conversation. Costs credits."),
	mcp.WithString("username", mcp.Required(), mcp.Description("User to charge and attribute")),
	mcp.WithString("animal", mcp.Required(), mcp.Description("Subject to write the script about")),
)

var scriptAddToolDef = mcp.NewTool("script_add",
	mcp.WithDescription("Append a manually written script to a conversation. Free: no credits move."),
	mcp.WithString("username", mcp.Required(), mcp.Description("Owner of the conversation")),
	mcp.WithString("animal", mcp.Required(), mcp.Description("Subject of the conversation")),
	mcp.WithString("content", mcp.Required(), mcp.Description("Script text")),
)

var scriptUpdateToolDef = mcp.NewTool("script_update",
	mcp.WithDescription("Replace a script by position; its character count is recomputed."),
	mcp.WithString("username", mcp.Required(), mcp.Description("Owner of the conversation")),
	mcp.WithString("animal", mcp.Required(), mcp.Description("Subject of the conversation")),
	mcp.WithNumber("index", mcp.Required(), mcp.Description("Zero-based script position")),
	mcp.WithString("content", mcp.Required(), mcp.Description("Replacement text")),
)

var scriptDeleteToolDef = mcp.NewTool("script_delete",
	mcp.WithDescription("Delete a script by position; later scripts shift down."),
	mcp.WithString("username", mcp.Required(), mcp.Description("Owner of the conversation")),
	mcp.WithString("animal", mcp.Required(), mcp.Description("Subject of the conversation")),
	mcp.WithNumber("index", mcp.Required(), mcp.Description("Zero-based script position")),
)

var hookGenerateToolDef = mcp.NewTool("hook_generate",
	mcp.WithDescription("Generate a hook-set from every script in a conversation. Costs credits."),
	mcp.WithString("username", mcp.Required(), mcp.Description("User to charge and attribute")),
	mcp.WithString("animal", mcp.Required(), mcp.Description("Subject whose scripts feed the hooks")),
)

var hookAddToolDef = mcp.NewTool("hook_add",
	mcp.WithDescription("Append a manually written hook-set to a conversation by id. Free: no credits move."),
	mcp.WithString("username", mcp.Required(), mcp.Description("Owner of the conversation")),
	mcp.WithString("conversation_id", mcp.Required(), mcp.Description("Conversation id")),
	mcp.WithString("content", mcp.Required(), mcp.Description("Hook-set text")),
)

var hookUpdateToolDef = mcp.NewTool("hook_update",
	mcp.WithDescription("Replace a hook-set by position."),
	mcp.WithString("username", mcp.Required(), mcp.Description("Owner of the conversation")),
	mcp.WithString("animal", mcp.Required(), mcp.Description("Subject of the conversation")),
	mcp.WithNumber("index", mcp.Required(), mcp.Description("Zero-based hook-set position")),
	mcp.WithString("content", mcp.Required(), mcp.Description("Replacement text")),
)

var hookDeleteToolDef = mcp.NewTool("hook_delete",
	mcp.WithDescription("Delete a hook-set by position; later hook-sets shift down."),
	mcp.WithString("username", mcp.Required(), mcp.Description("Owner of the conversation")),
	mcp.WithString("animal", mcp.Required(), mcp.Description("Subject of the conversation")),
	mcp.WithNumber("index", mcp.Required(), mcp.Description("Zero-based hook-set position")),
)

var subjectSuggestToolDef = mcp.NewTool("subject_suggest",
	mcp.WithDescription("Suggest up to ten random subjects from the configured pool."),
)
