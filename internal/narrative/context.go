// Package narrative builds prompt contexts from game history and talks to
// the narrative-generation providers.
package narrative

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/laicwew/LexiQuest/internal/models"
)

//go:embed prompts/system.txt
var SystemPrompt string

//go:embed prompts/start_journey.txt
var startJourneyPrompt string

// historyWindow is how many trailing turns feed the continuation context.
const historyWindow = 3

const continuationRules = "Based on this history, continue the adventure in Middle-earth. Follow the same format as before:\n" +
	"1. Describe the new scene (3-4 sentences)\n" +
	"2. Include 2-4 new interactable objects wrapped in **double asterisks**\n" +
	"3. Maintain Tolkien's tone and lore\n" +
	"4. All output must be in English only"

// BuildContinuationContext renders the prompt asking for the next scene.
// With no history it returns the fixed start-journey instruction; otherwise
// the last turns are rendered as labeled blocks under a fixed preamble.
func BuildContinuationContext(history []models.HistoryEntry) string {
	if len(history) == 0 {
		return strings.TrimRight(startJourneyPrompt, "\n")
	}

	recent := history
	if len(recent) > historyWindow {
		recent = recent[len(recent)-historyWindow:]
	}

	var b strings.Builder
	b.WriteString("Continue the story based on the following history:\n\n")
	for i, entry := range recent {
		fmt.Fprintf(&b, "Turn %d:\n", i+1)
		fmt.Fprintf(&b, "GM Narrative: %s\n", entry.GMNarrative)
		fmt.Fprintf(&b, "Player Action: %s\n", entry.PlayerAction)
		fmt.Fprintf(&b, "Action Result: %s\n\n", entry.ActionResult)
	}
	b.WriteString(continuationRules)
	return b.String()
}
