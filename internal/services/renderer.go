package services

import "github.com/adamstosho/GroChain-sub004/internal/models"

// Protocol prefixes. CON keeps the session open and expects more input; END
// terminates the call and displays the final text.
const (
	continuePrefix = "CON "
	endPrefix      = "END "
)

// Reply is the internal outcome of one menu or flow step, before the
// renderer stamps the protocol prefix.
type Reply struct {
	Text  string
	Close bool
}

// Response is the outbound aggregator payload.
type Response struct {
	SessionID   string `json:"sessionId"`
	Response    string `json:"response"`
	ShouldClose bool   `json:"shouldClose"`
}

// RenderReply is the single authority for termination. It stamps the
// protocol prefix and flips the session inactive in the same place, so the
// emitted prefix and the persisted IsActive flag cannot diverge. It also
// records the rendered response on the session for replay of retransmitted
// requests.
func RenderReply(session *models.Session, reply Reply) Response {
	prefix := continuePrefix
	if reply.Close {
		prefix = endPrefix
		session.IsActive = false
		session.ClearFlow()
	}

	resp := Response{
		SessionID:   session.SessionID,
		Response:    prefix + reply.Text,
		ShouldClose: reply.Close,
	}
	session.LastResponse = resp.Response
	session.LastClose = reply.Close
	return resp
}
