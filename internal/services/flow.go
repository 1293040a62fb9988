package services

import (
	"github.com/adamstosho/GroChain-sub004/internal/models"
	"github.com/adamstosho/GroChain-sub004/internal/storage"
)

// FlowHandler runs one step of a multi-step flow. tokens are relative to the
// point the flow was entered: an empty slice means the flow has just been
// entered and should prompt for its first field without persisting anything.
//
// Handlers read and mutate the session's FlowState directly but never decide
// termination on their own: they return a Reply and the renderer applies it.
// A validation failure must re-prompt the same field with a corrective hint;
// the bad token is consumed by the protocol but must not advance the draft,
// which is what keeps handlers idempotent under malformed input.
type FlowHandler interface {
	Name() string
	Handle(session *models.Session, tokens []string) (Reply, error)
}

// newFlowHandlers wires every flow family to its handler.
func newFlowHandlers(store storage.Store, verifier IdentityVerifier) map[string]FlowHandler {
	handlers := map[string]FlowHandler{}
	for _, h := range []FlowHandler{
		NewHarvestFlow(store),
		NewBrowseFlow(store),
		NewCreditFlow(store, verifier),
		NewSupportFlow(store),
	} {
		handlers[h.Name()] = h
	}
	return handlers
}

// lastToken returns the most recent token, the candidate input for whatever
// field the flow is waiting on.
func lastToken(tokens []string) string {
	if len(tokens) == 0 {
		return ""
	}
	return tokens[len(tokens)-1]
}
