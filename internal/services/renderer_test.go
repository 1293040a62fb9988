package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/adamstosho/GroChain-sub004/internal/models"
)

func TestRenderReplyContinue(t *testing.T) {
	session := &models.Session{SessionID: "AT-render-1", IsActive: true}

	resp := RenderReply(session, Reply{Text: "Enter quantity in kg:"})
	assert.Equal(t, "CON Enter quantity in kg:", resp.Response)
	assert.False(t, resp.ShouldClose)
	assert.True(t, session.IsActive)
	assert.Equal(t, resp.Response, session.LastResponse)
	assert.False(t, session.LastClose)
}

func TestRenderReplyCloseRetiresSession(t *testing.T) {
	session := &models.Session{SessionID: "AT-render-2", IsActive: true}
	session.SetFlow(models.FlowState{Flow: models.FlowHarvest, EntryStep: 2})

	resp := RenderReply(session, Reply{Text: "Thank you for using GroChain.", Close: true})
	assert.Equal(t, "END Thank you for using GroChain.", resp.Response)
	assert.True(t, resp.ShouldClose)

	// Closing retires the session and discards the in-progress flow in the
	// same place the prefix is stamped.
	assert.False(t, session.IsActive)
	assert.Empty(t, session.Flow().Flow)
	assert.Equal(t, resp.Response, session.LastResponse)
	assert.True(t, session.LastClose)
}
