package services

import (
	"fmt"
	"log"

	"github.com/adamstosho/GroChain-sub004/internal/models"
	"github.com/adamstosho/GroChain-sub004/internal/storage"
	"github.com/adamstosho/GroChain-sub004/internal/utils"
)

// CreditFlow collects a BVN, runs the identity verification lookup and
// terminates with a distinct message per outcome.
type CreditFlow struct {
	store    storage.Store
	verifier IdentityVerifier
}

// NewCreditFlow creates the credit-check flow handler.
func NewCreditFlow(store storage.Store, verifier IdentityVerifier) *CreditFlow {
	return &CreditFlow{store: store, verifier: verifier}
}

func (f *CreditFlow) Name() string {
	return models.FlowCredit
}

func (f *CreditFlow) Handle(session *models.Session, tokens []string) (Reply, error) {
	fs := session.Flow()
	if fs.Credit == nil {
		fs.Credit = &models.CreditDraft{}
	}
	draft := fs.Credit

	if len(tokens) == 0 {
		session.SetFlow(fs)
		return Reply{Text: "Enter your 11-digit BVN:"}, nil
	}

	input := lastToken(tokens)
	if !isBVN(input) {
		return Reply{Text: "A BVN is exactly 11 digits.\nEnter your 11-digit BVN:"}, nil
	}
	draft.BVN = input
	session.SetFlow(fs)

	outcome, score, err := f.verifier.CheckBVN(input, session.PhoneNumber)
	if err != nil {
		return Reply{}, fmt.Errorf("verify BVN for %s: %w", session.PhoneNumber, err)
	}

	check := &models.CreditCheck{
		PhoneNumber: session.PhoneNumber,
		MaskedBVN:   utils.MaskBVN(input),
		Outcome:     outcome,
		Score:       score,
	}
	if err := f.store.SaveCreditCheck(check); err != nil {
		log.Printf("❌ Failed to save credit check for session %s (%s): %v",
			session.SessionID, session.PhoneNumber, err)
	}

	switch outcome {
	case models.VerificationVerified:
		return Reply{
			Text:  fmt.Sprintf("Identity verified.\nYour GroChain credit score is %d.\nYou will receive loan offers by SMS.", score),
			Close: true,
		}, nil
	case models.VerificationPending:
		return Reply{
			Text:  "Your identity verification is still in progress.\nYou will receive your score by SMS once it completes.",
			Close: true,
		}, nil
	default: // manual review
		return Reply{
			Text:  "We could not verify your identity automatically.\nOur team will review your details and contact you.",
			Close: true,
		}, nil
	}
}

func isBVN(s string) bool {
	if len(s) != 11 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
