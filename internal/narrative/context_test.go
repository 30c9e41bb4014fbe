package narrative

import (
	"strings"
	"testing"

	"github.com/laicwew/LexiQuest/internal/models"
)

const startJourney = "START_JOURNEY\n\n" +
	"Generate the opening scene for a new adventurer in Middle-earth.\n" +
	"Begin the story in a suitable location and provide the first interactive elements."

func TestBuildContinuationContextEmptyHistory(t *testing.T) {
	got := BuildContinuationContext(nil)
	if got != startJourney {
		t.Errorf("Start-journey prompt mismatch:\nwant %q\ngot  %q", startJourney, got)
	}
}

func TestBuildContinuationContextRendersTurns(t *testing.T) {
	history := []models.HistoryEntry{
		{GMNarrative: "A quiet glade.", PlayerAction: "talk stone", ActionResult: "The stone is silent."},
	}

	got := BuildContinuationContext(history)

	want := "Continue the story based on the following history:\n\n" +
		"Turn 1:\n" +
		"GM Narrative: A quiet glade.\n" +
		"Player Action: talk stone\n" +
		"Action Result: The stone is silent.\n\n" +
		"Based on this history, continue the adventure in Middle-earth. Follow the same format as before:\n" +
		"1. Describe the new scene (3-4 sentences)\n" +
		"2. Include 2-4 new interactable objects wrapped in **double asterisks**\n" +
		"3. Maintain Tolkien's tone and lore\n" +
		"4. All output must be in English only"
	if got != want {
		t.Errorf("Context mismatch:\nwant %q\ngot  %q", want, got)
	}
}

func TestBuildContinuationContextWindowsHistory(t *testing.T) {
	history := []models.HistoryEntry{
		{GMNarrative: "scene one", PlayerAction: "talk a", ActionResult: "r1"},
		{GMNarrative: "scene two", PlayerAction: "eat b", ActionResult: "r2"},
		{GMNarrative: "scene three", PlayerAction: "attack c", ActionResult: "r3"},
		{GMNarrative: "scene four", PlayerAction: "imitate d", ActionResult: "r4"},
	}

	got := BuildContinuationContext(history)

	if strings.Contains(got, "scene one") {
		t.Error("Expected the oldest turn dropped from the window")
	}
	for _, scene := range []string{"scene two", "scene three", "scene four"} {
		if !strings.Contains(got, scene) {
			t.Errorf("Expected %q in the context", scene)
		}
	}
	// Windowed turns are renumbered from 1.
	if !strings.Contains(got, "Turn 1:\nGM Narrative: scene two") {
		t.Error("Expected the window to start at Turn 1 with the second entry")
	}
	if strings.Contains(got, "Turn 4:") {
		t.Error("Expected at most 3 turns in the window")
	}
}
