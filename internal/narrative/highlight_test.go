package narrative

import (
	"reflect"
	"strings"
	"testing"
)

func TestExtractInteractables(t *testing.T) {
	raw := "You see an **Apple** on a **shelf**. The **apple** gleams; beyond lies an ** **."

	got := ExtractInteractables(raw)
	want := []string{"apple", "shelf"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestExtractInteractablesNoMarkers(t *testing.T) {
	if got := ExtractInteractables("Nothing here to touch."); got != nil {
		t.Errorf("Expected nil, got %v", got)
	}
}

func TestHighlightHTML(t *testing.T) {
	got := HighlightHTML("You see an **apple**.")
	want := `You see an <span class="interactive-word" data-word="apple">apple</span>.`
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestHighlightWith(t *testing.T) {
	got := HighlightWith("An **apple** and a **shelf**.", strings.ToUpper)
	want := "An APPLE and a SHELF."
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestStrip(t *testing.T) {
	got := Strip("An **apple** and a **shelf**.")
	want := "An apple and a shelf."
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}
