package game

import "fmt"

// Action is one of the fixed player verbs applicable to a selected word.
type Action string

const (
	ActionEat     Action = "eat"
	ActionAttack  Action = "attack"
	ActionTalk    Action = "talk"
	ActionImitate Action = "imitate"
)

// Actions lists every valid action, in display order.
var Actions = []Action{ActionEat, ActionAttack, ActionTalk, ActionImitate}

// ParseAction maps a command word to an Action.
func ParseAction(s string) (Action, bool) {
	switch Action(s) {
	case ActionEat, ActionAttack, ActionTalk, ActionImitate:
		return Action(s), true
	}
	return "", false
}

// ResponseSet maps target words to canned narrative responses for one action.
// Default is required and covers any word without a specific response,
// including words that were never part of the active scene.
type ResponseSet struct {
	Responses map[string]string `yaml:"responses"`
	Default   string            `yaml:"default"`
}

// ResponseTable is the two-level (action, word) -> response mapping.
type ResponseTable map[Action]ResponseSet

// Validate checks the table covers every action with a non-empty default.
// Called once at load time so lookups never fall through.
func (t ResponseTable) Validate() error {
	for _, action := range Actions {
		set, ok := t[action]
		if !ok {
			return fmt.Errorf("response table: missing action %q", action)
		}
		if set.Default == "" {
			return fmt.Errorf("response table: action %q has no default response", action)
		}
	}
	return nil
}

// Lookup resolves the response for an action on a word, falling back to the
// action's default.
func (t ResponseTable) Lookup(action Action, word string) string {
	set := t[action]
	if response, ok := set.Responses[word]; ok {
		return response
	}
	return set.Default
}
