package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/atinyakov/VocabDeck/internal/completion"
	"github.com/atinyakov/VocabDeck/internal/prompt"
	"go.uber.org/zap"
)

// ProviderKeyHeader carries an optional per-user provider credential.
const ProviderKeyHeader = "X-Provider-Key"

// Completer forwards prompts to the language-model provider.
type Completer interface {
	Complete(ctx context.Context, req completion.Request) (string, error)
}

// CompletionHandler handles POST /completion.
type CompletionHandler struct {
	Completer Completer
	Log       *zap.Logger
}

// CompletionRequest is the body of POST /completion. Prompt is either a plain
// string or a list of {role, content} messages.
type CompletionRequest struct {
	Prompt json.RawMessage `json:"prompt"`
	Format prompt.Format   `json:"format"`
}

// Complete relays the prompt and writes the generated text verbatim. Provider
// errors are never passed through to the caller.
func (h *CompletionHandler) Complete(w http.ResponseWriter, r *http.Request) {
	var req CompletionRequest
	if r.Body == nil || json.NewDecoder(r.Body).Decode(&req) != nil {
		http.Error(w, completion.ErrNoPrompt.Error(), http.StatusBadRequest)
		return
	}
	msgs, ok := parsePrompt(req.Prompt)
	if !ok {
		http.Error(w, completion.ErrNoPrompt.Error(), http.StatusBadRequest)
		return
	}

	text, err := h.Completer.Complete(r.Context(), completion.Request{
		Messages: msgs,
		Format:   req.Format,
		APIKey:   r.Header.Get(ProviderKeyHeader),
	})
	switch {
	case errors.Is(err, completion.ErrNoPrompt):
		http.Error(w, completion.ErrNoPrompt.Error(), http.StatusBadRequest)
		return
	case errors.Is(err, completion.ErrEmptyCompletion):
		http.Error(w, completion.ErrEmptyCompletion.Error(), http.StatusInternalServerError)
		return
	case err != nil:
		if h.Log != nil {
			h.Log.Error("completion failed", zap.Error(err))
		}
		http.Error(w, completion.ErrProvider.Error(), http.StatusInternalServerError)
		return
	}

	if req.Format == prompt.FormatJSON {
		w.Header().Set("Content-Type", "application/json")
	} else {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	}
	_, _ = w.Write([]byte(text))
}

func parsePrompt(raw json.RawMessage) ([]prompt.Message, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, false
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if s == "" {
			return nil, false
		}
		return []prompt.Message{{Role: prompt.RoleUser, Content: s}}, true
	}

	var msgs []prompt.Message
	if err := json.Unmarshal(raw, &msgs); err != nil || len(msgs) == 0 {
		return nil, false
	}
	return msgs, true
}
