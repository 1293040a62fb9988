package services

import "github.com/adamstosho/GroChain-sub004/internal/models"

// menuExit is a pseudo-target: selecting it terminates the session.
const menuExit = "exit"

// menuTransitions is the static menu tree: (node, option) -> next node.
// Option 0 is reserved for back/exit everywhere. Options absent from a
// node's row are unknown selections and keep the caller on the same node.
var menuTransitions = map[string]map[string]string{
	models.MenuMain: {
		"1": models.MenuHarvest,
		"2": models.MenuBrowseProducts,
		"3": models.MenuCheckCredit,
		"4": models.MenuSupport,
		"0": menuExit,
	},
	models.MenuHarvest: {
		"1": models.MenuLogHarvest,
		"0": models.MenuMain,
	},
}

// menuPrompts holds the display template for every pure menu node.
var menuPrompts = map[string]string{
	models.MenuMain: "Welcome to GroChain\n" +
		"1. Harvest\n" +
		"2. Marketplace\n" +
		"3. Credit Check\n" +
		"4. Support\n" +
		"0. Exit",
	models.MenuHarvest: "Harvest\n" +
		"1. Log new harvest\n" +
		"0. Back",
}

// menuFlows maps flow-entry nodes to the flow family that owns them. Pure
// menus are absent.
var menuFlows = map[string]string{
	models.MenuLogHarvest:     models.FlowHarvest,
	models.MenuBrowseProducts: models.FlowBrowse,
	models.MenuCheckCredit:    models.FlowCredit,
	models.MenuSupport:        models.FlowSupport,
}

// ResolveMenu looks up the transition for the given option at the given
// node. Unknown options return the current node with known=false so the
// caller re-prompts instead of landing in an undefined state. An
// unrecognized node resolves as the main menu.
func ResolveMenu(current, option string) (next string, known bool) {
	row, ok := menuTransitions[current]
	if !ok {
		row = menuTransitions[models.MenuMain]
		current = models.MenuMain
	}
	next, known = row[option]
	if !known {
		return current, false
	}
	return next, true
}

// MenuPrompt renders the display text for a menu node, falling back to the
// main menu for anything it does not know.
func MenuPrompt(menu string) string {
	if prompt, ok := menuPrompts[menu]; ok {
		return prompt
	}
	return menuPrompts[models.MenuMain]
}

// FlowForMenu returns the flow family owning a node, or "" for pure menus.
func FlowForMenu(menu string) string {
	return menuFlows[menu]
}

// IsMenuNode reports whether the identifier names a pure menu node.
func IsMenuNode(menu string) bool {
	_, ok := menuTransitions[menu]
	return ok
}
