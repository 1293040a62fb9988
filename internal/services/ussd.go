package services

import (
	"log"

	"github.com/adamstosho/GroChain-sub004/internal/models"
	"github.com/adamstosho/GroChain-sub004/internal/storage"
	"github.com/adamstosho/GroChain-sub004/internal/utils"
)

// Fixed terminal texts. These bypass the menu tree entirely.
const (
	staleSessionText = "Your session has expired. Please dial again."
	unavailableText  = "Service temporarily unavailable. Please try again later."
	goodbyeText      = "Thank you for using GroChain."
)

// Request is the inbound aggregator payload. The aggregator posts it as a
// form in production and as JSON from the test console.
type Request struct {
	SessionID   string `json:"sessionId" form:"sessionId"`
	PhoneNumber string `json:"phoneNumber" form:"phoneNumber"`
	ServiceCode string `json:"serviceCode" form:"serviceCode"`
	Text        string `json:"text" form:"text"`
}

// USSDService orchestrates one request end to end: load session, resolve
// step and menu, run the handler, render, persist.
type USSDService struct {
	store    storage.Store
	sessions *SessionManager
	flows    map[string]FlowHandler
}

// NewUSSDService creates the orchestrator.
func NewUSSDService(store storage.Store, sessions *SessionManager, verifier IdentityVerifier) *USSDService {
	return &USSDService{
		store:    store,
		sessions: sessions,
		flows:    newFlowHandlers(store, verifier),
	}
}

// ProcessRequest is the single entry point for inbound USSD requests.
// It never returns an error: every failure mode renders as a terminal
// response, because the caller has no way to retry a stuck state short of a
// fresh call.
func (u *USSDService) ProcessRequest(req Request) Response {
	unlock := u.sessions.LockSession(req.SessionID)
	defer unlock()

	phone := utils.NormalizePhone(req.PhoneNumber)

	session, err := u.sessions.GetOrCreateSession(req.SessionID, phone)
	if err != nil {
		log.Printf("❌ Session load failed for %s (%s): %v", req.SessionID, phone, err)
		return Response{SessionID: req.SessionID, Response: endPrefix + unavailableText, ShouldClose: true}
	}

	// A request against a terminated or stale session gets a fixed
	// rejection without mutating further.
	if !session.IsActive || u.sessions.IsStale(session) {
		if session.IsActive {
			session.IsActive = false
			if saveErr := u.sessions.SaveSession(session); saveErr != nil {
				log.Printf("❌ Failed to retire stale session %s (%s): %v", session.SessionID, phone, saveErr)
			}
		}
		return Response{SessionID: session.SessionID, Response: endPrefix + staleSessionText, ShouldClose: true}
	}

	// Retransmission: identical accumulated text replays the previous
	// response instead of advancing state twice.
	if req.Text == session.LastInput && session.LastResponse != "" {
		return Response{SessionID: session.SessionID, Response: session.LastResponse, ShouldClose: session.LastClose}
	}

	reply, failed := u.step(session, req.Text)
	resp := RenderReply(session, reply)

	session.LastInput = req.Text
	session.Touch()
	if err := u.sessions.SaveSession(session); err != nil {
		// Can't trust any state we failed to persist; terminate the call and
		// make a best-effort retire write so the END the caller sees and the
		// stored row agree rather than waiting for the sweep.
		log.Printf("❌ Failed to persist session %s (%s): %v", session.SessionID, phone, err)
		session.IsActive = false
		if retireErr := u.sessions.SaveSession(session); retireErr != nil {
			log.Printf("❌ Failed to retire session %s (%s) after persist error: %v", session.SessionID, phone, retireErr)
		}
		return Response{SessionID: session.SessionID, Response: endPrefix + unavailableText, ShouldClose: true}
	}

	u.appendLog(session, req, resp, !failed)
	return resp
}

// step resolves one request against the menu tree or the flow in progress.
// Any panic or handler error is converted into a terminal service-unavailable
// reply with the session forced inactive, so a fault never leaves a session
// stuck open. failed reports that conversion for the audit log.
func (u *USSDService) step(session *models.Session, text string) (reply Reply, failed bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("❌ USSD step panicked for session %s (%s): %v", session.SessionID, session.PhoneNumber, r)
			reply = Reply{Text: unavailableText, Close: true}
			failed = true
		}
	}()

	tokens := ParseInput(text)
	session.Step = len(tokens)

	// A flow in progress consumes tokens relative to its entry point.
	if fs := session.Flow(); fs.Flow != "" {
		handler, ok := u.flows[fs.Flow]
		if !ok {
			// Unknown flow family in stored state; fall back to main.
			session.ClearFlow()
			session.CurrentMenu = models.MenuMain
			return Reply{Text: MenuPrompt(models.MenuMain)}, false
		}

		entry := fs.EntryStep
		if entry > len(tokens) {
			entry = len(tokens)
		}
		rep, err := handler.Handle(session, tokens[entry:])
		if err != nil {
			log.Printf("❌ Flow %s failed for session %s (%s): %v", fs.Flow, session.SessionID, session.PhoneNumber, err)
			return Reply{Text: unavailableText, Close: true}, true
		}
		return rep, false
	}

	// Fresh dial: render the main menu.
	if len(tokens) == 0 {
		session.CurrentMenu = models.MenuMain
		return Reply{Text: MenuPrompt(models.MenuMain)}, false
	}

	if !IsMenuNode(session.CurrentMenu) {
		session.CurrentMenu = models.MenuMain
	}

	option := tokens[len(tokens)-1]
	next, known := ResolveMenu(session.CurrentMenu, option)
	if !known {
		// Unknown selection re-renders the current menu.
		return Reply{Text: MenuPrompt(session.CurrentMenu)}, false
	}

	if next == menuExit {
		return Reply{Text: goodbyeText, Close: true}, false
	}

	session.CurrentMenu = next

	// Flow-entry nodes hand off immediately: the entry request prompts for
	// the flow's first field.
	if flow := FlowForMenu(next); flow != "" {
		session.SetFlow(models.FlowState{Flow: flow, EntryStep: len(tokens)})
		handler := u.flows[flow]
		rep, err := handler.Handle(session, nil)
		if err != nil {
			log.Printf("❌ Flow %s entry failed for session %s (%s): %v", flow, session.SessionID, session.PhoneNumber, err)
			return Reply{Text: unavailableText, Close: true}, true
		}
		return rep, false
	}

	return Reply{Text: MenuPrompt(next)}, false
}

// appendLog writes the per-request audit row. Best-effort: a logging failure
// must never affect the response.
func (u *USSDService) appendLog(session *models.Session, req Request, resp Response, succeeded bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("⚠️  Session log write panicked for %s: %v", session.SessionID, r)
		}
	}()

	tokens := ParseInput(req.Text)
	entry := &models.SessionLog{
		SessionID:     session.SessionID,
		PhoneNumber:   session.PhoneNumber,
		MenuName:      session.CurrentMenu,
		UserInput:     lastToken(tokens),
		Text:          req.Text,
		Succeeded:     succeeded,
		StatusMessage: truncate(resp.Response, 500),
	}
	if err := u.store.AppendSessionLog(entry); err != nil {
		log.Printf("⚠️  Failed to append session log for %s: %v", session.SessionID, err)
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
