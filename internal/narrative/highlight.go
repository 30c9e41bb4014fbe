package narrative

import (
	"regexp"
	"strings"
)

// Generated scenes mark interactable words with the **word** convention.
var interactableRe = regexp.MustCompile(`\*\*(.*?)\*\*`)

// ExtractInteractables returns the marked words of a raw scene in order of
// appearance, case-folded and deduplicated.
func ExtractInteractables(raw string) []string {
	matches := interactableRe.FindAllStringSubmatch(raw, -1)
	seen := make(map[string]bool, len(matches))
	var words []string
	for _, m := range matches {
		word := strings.ToLower(strings.TrimSpace(m[1]))
		if word == "" || seen[word] {
			continue
		}
		seen[word] = true
		words = append(words, word)
	}
	return words
}

// HighlightHTML converts the raw scene into the display form used by browser
// clients, wrapping each marked word in an interactive span.
func HighlightHTML(raw string) string {
	return interactableRe.ReplaceAllString(raw, `<span class="interactive-word" data-word="$1">$1</span>`)
}

// HighlightWith renders each marked word through a custom renderer, for
// clients with their own display form (e.g. terminal styling).
func HighlightWith(raw string, render func(word string) string) string {
	return interactableRe.ReplaceAllStringFunc(raw, func(m string) string {
		word := strings.Trim(m, "*")
		return render(word)
	})
}

// Strip removes the markers, leaving plain prose.
func Strip(raw string) string {
	return interactableRe.ReplaceAllString(raw, "$1")
}
