package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/adamstosho/GroChain-sub004/internal/models"
)

func TestResolveMenuTransitions(t *testing.T) {
	tests := []struct {
		name      string
		current   string
		option    string
		wantNext  string
		wantKnown bool
	}{
		{"main to harvest", models.MenuMain, "1", models.MenuHarvest, true},
		{"main to marketplace", models.MenuMain, "2", models.MenuBrowseProducts, true},
		{"main to credit", models.MenuMain, "3", models.MenuCheckCredit, true},
		{"main to support", models.MenuMain, "4", models.MenuSupport, true},
		{"main exit", models.MenuMain, "0", menuExit, true},
		{"harvest to log", models.MenuHarvest, "1", models.MenuLogHarvest, true},
		{"harvest back", models.MenuHarvest, "0", models.MenuMain, true},
		{"unknown option at main", models.MenuMain, "9", models.MenuMain, false},
		{"unknown option at harvest", models.MenuHarvest, "7", models.MenuHarvest, false},
		{"garbage option", models.MenuMain, "xyz", models.MenuMain, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, known := ResolveMenu(tt.current, tt.option)
			assert.Equal(t, tt.wantNext, next)
			assert.Equal(t, tt.wantKnown, known)
		})
	}
}

func TestResolveMenuUnknownNodeFallsBackToMain(t *testing.T) {
	next, known := ResolveMenu("no_such_menu", "1")
	assert.True(t, known)
	assert.Equal(t, models.MenuHarvest, next)

	next, known = ResolveMenu("no_such_menu", "9")
	assert.False(t, known)
	assert.Equal(t, models.MenuMain, next)
}

func TestEveryTransitionTargetIsDefined(t *testing.T) {
	for node, row := range menuTransitions {
		for option, target := range row {
			if target == menuExit {
				continue
			}
			defined := IsMenuNode(target) || FlowForMenu(target) != ""
			assert.True(t, defined, "node %s option %s points at undefined target %s", node, option, target)
		}
	}
}

func TestMenuPrompt(t *testing.T) {
	assert.Contains(t, MenuPrompt(models.MenuMain), "Welcome to GroChain")
	assert.Contains(t, MenuPrompt(models.MenuHarvest), "Log new harvest")
	// Unknown nodes render the main menu rather than crashing.
	assert.Contains(t, MenuPrompt("bogus"), "Welcome to GroChain")
}

func TestFlowForMenu(t *testing.T) {
	assert.Equal(t, models.FlowHarvest, FlowForMenu(models.MenuLogHarvest))
	assert.Equal(t, models.FlowBrowse, FlowForMenu(models.MenuBrowseProducts))
	assert.Equal(t, models.FlowCredit, FlowForMenu(models.MenuCheckCredit))
	assert.Equal(t, models.FlowSupport, FlowForMenu(models.MenuSupport))
	assert.Equal(t, "", FlowForMenu(models.MenuMain))
}
