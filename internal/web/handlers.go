package web

import (
	"net/http"
	"time"

	"hookline/internal/config"
	"hookline/internal/conversation"
	"hookline/internal/errors"
	"hookline/internal/ops"
	"hookline/internal/store"
)

// Handlers contains HTTP route handlers for the viewer.
type Handlers struct {
	store    *store.Store
	cfg      *config.Config
	renderer *Renderer
}

// HandleUsers handles GET /users — the account index.
func (h *Handlers) HandleUsers(w http.ResponseWriter, r *http.Request) {
	result, err := ops.ListUsers(h.store)
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	h.renderer.renderPage(w, "users", UsersPageData{
		PageData: PageData{
			Title:   "Users",
			Version: h.renderer.version,
			Nav:     "users",
		},
		Users: result.Users,
		Total: result.Total,
	})
}

// HandleConversations handles GET /users/{username} — one owner's
// conversation list.
func (h *Handlers) HandleConversations(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")
	if username == "" {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("username is required"))
		return
	}

	result, err := ops.ListConversations(h.store, ops.ListConversationsInput{
		Username: username,
		TTL:      h.cfg.TTL(),
	})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	h.renderer.renderPage(w, "conversations", ConversationsPageData{
		PageData: PageData{
			Title:   username,
			Version: h.renderer.version,
			Nav:     "users",
		},
		Username:      username,
		Conversations: result.Conversations,
		Total:         result.Total,
	})
}

// HandleDetail handles GET /users/{username}/conversations/{id} — one
// conversation with rendered markdown.
func (h *Handlers) HandleDetail(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")
	id := r.PathValue("id")
	if username == "" || id == "" {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("username and conversation id are required"))
		return
	}

	result, err := ops.Fetch(h.store, ops.FetchInput{
		Username:       username,
		ConversationID: id,
	})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	scripts := make([]RenderedEntry, len(result.Scripts))
	for i, s := range result.Scripts {
		scripts[i] = RenderedEntry{
			Index:     i,
			CharCount: s.CharCount,
			HTML:      renderMarkdown(s.Content),
		}
	}
	hooks := make([]RenderedEntry, len(result.Hooks))
	for i, hk := range result.Hooks {
		hooks[i] = RenderedEntry{
			Index: i,
			HTML:  renderMarkdown(hk.Content),
		}
	}

	remaining := ""
	c := &conversation.Conversation{CreatedAt: result.CreatedAt}
	if left, ok := conversation.RemainingTTL(c, time.Now(), h.cfg.TTL()); ok {
		remaining = formatRemaining(left)
	}

	h.renderer.renderPage(w, "detail", DetailPageData{
		PageData: PageData{
			Title:   result.Subject,
			Version: h.renderer.version,
			Nav:     "users",
		},
		Username:  username,
		Subject:   result.Subject,
		ID:        result.ID,
		CreatedAt: result.CreatedAt,
		Remaining: remaining,
		Scripts:   scripts,
		Hooks:     hooks,
	})
}
