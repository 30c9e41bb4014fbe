package tui

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/laicwew/LexiQuest/internal/export"
	"github.com/laicwew/LexiQuest/internal/game"
	"github.com/laicwew/LexiQuest/internal/narrative"
)

type sessionState int

const (
	statePlaying sessionState = iota
	stateLoading
	stateError
)

type model struct {
	state     sessionState
	store     *game.Store
	provider  narrative.Provider
	textInput textinput.Model
	viewport  viewport.Model
	err       error
	gameLog   string
	width     int
	height    int
}

var (
	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EEEEEE")).
			Background(lipgloss.Color("#5F5F87")).
			Bold(true).
			PaddingLeft(1)

	gameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF"))

	wordStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true).
			Underline(true)

	noticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87D787")).
			Italic(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true)

	stateStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("#3C3C3C")).
			PaddingLeft(2).
			Foreground(lipgloss.Color("#AAAAAA"))

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500")).
			Bold(true).
			Underline(true)
)

func NewModel(store *game.Store, provider narrative.Provider) model {
	ti := textinput.New()
	ti.Placeholder = "eat/attack/talk/imitate <word>, or /continue..."
	ti.Focus()
	ti.CharLimit = 156
	ti.Width = 40

	m := model{
		state:     statePlaying,
		store:     store,
		provider:  provider,
		textInput: ti,
	}
	m.gameLog = m.initialLog()
	return m
}

func (m model) initialLog() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("LexiQuest") + "\n\n")
	if text := m.store.StoryText(); text != "" {
		b.WriteString(m.renderScene(text) + "\n\n")
	} else if raw := m.store.RawGeneratedContent(); raw != "" {
		b.WriteString(m.renderScene(raw) + "\n\n")
	} else {
		b.WriteString(m.renderScene(m.store.SceneText()) + "\n\n")
	}
	return b.String()
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

type storyGeneratedMsg struct {
	raw     string
	opening bool
}

type errMsg struct {
	err error
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit

		case tea.KeyEnter:
			if m.state != statePlaying {
				return m, nil
			}
			input := strings.TrimSpace(m.textInput.Value())
			if input == "" {
				return m, nil
			}
			m.textInput.Reset()
			return m.handleCommand(input)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		logWidth := int(float64(msg.Width) * 0.75)
		if m.viewport.Width == 0 {
			m.viewport = viewport.New(logWidth, msg.Height-6)
		} else {
			m.viewport.Width = logWidth
			m.viewport.Height = msg.Height - 6
		}
		m.viewport.SetContent(m.gameLog)

	case storyGeneratedMsg:
		display := narrative.HighlightHTML(msg.raw)
		if msg.opening {
			m.store.RecordOpeningScene(msg.raw, display)
		} else {
			m.store.UpdateRawGeneratedContent(msg.raw)
			m.store.UpdateGeneratedContent(display)
		}
		m.state = statePlaying
		m.appendLog(m.renderScene(msg.raw))
		return m, nil

	case errMsg:
		m.err = msg.err
		m.state = stateError
		return m, nil
	}

	if m.state == statePlaying {
		m.textInput, cmd = m.textInput.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m model) handleCommand(input string) (tea.Model, tea.Cmd) {
	fields := strings.Fields(input)

	switch fields[0] {
	case "/quit":
		return m, tea.Quit

	case "/save":
		if err := m.store.SaveGame(); err != nil {
			m.appendLog(noticeStyle.Render("Save failed: " + err.Error()))
		} else {
			m.appendLog(noticeStyle.Render("Game saved."))
		}
		return m, nil

	case "/continue":
		if m.provider == nil {
			m.appendLog(noticeStyle.Render("No AI backend configured; set GEMINI_API_KEY, DEEPSEEK_API_KEY or LEXIQUEST_PROXY_URL."))
			return m, nil
		}
		m.state = stateLoading
		return m, m.continueStory()

	case "/dict":
		m.appendLog(m.renderDictionary())
		return m, nil

	case "/export":
		path := "dictionary.pdf"
		if len(fields) > 1 {
			path = fields[1]
		}
		m.appendLog(noticeStyle.Render(m.exportDictionary(path)))
		return m, nil

	case "/cleardict":
		m.store.ClearDictionary()
		m.appendLog(noticeStyle.Render("Dictionary cleared."))
		return m, nil

	case "/clearhistory":
		m.store.ClearHistory()
		m.gameLog = titleStyle.Render("LexiQuest") + "\n\n"
		m.viewport.SetContent(m.gameLog)
		return m, nil

	case "/tab":
		if len(fields) < 2 {
			m.appendLog(noticeStyle.Render("Usage: /tab generated|dummy"))
			return m, nil
		}
		m.store.SwitchTab(strings.ToUpper(fields[1]))
		m.gameLog = m.initialLog()
		m.viewport.SetContent(m.gameLog)
		m.viewport.GotoBottom()
		return m, nil

	case "clear":
		m.store.ClearSelectedWord()
		return m, nil
	}

	// "eat apple" style: action plus target word.
	if len(fields) == 2 {
		if action, ok := game.ParseAction(fields[0]); ok {
			word := strings.ToLower(fields[1])
			m.store.SelectWord(word)
			result := m.store.PerformAction(action)

			logWidth := int(float64(m.width) * 0.75)
			m.appendLog(userStyle.Width(logWidth).Render("> " + input))
			m.appendLog(gameStyle.Width(logWidth).Render(result))
			return m, nil
		}
	}

	// "select apple" or a bare word selects it for the next action.
	if len(fields) == 2 && fields[0] == "select" {
		m.store.SelectWord(strings.ToLower(fields[1]))
		return m, nil
	}
	if len(fields) == 1 && !strings.HasPrefix(fields[0], "/") {
		m.store.SelectWord(strings.ToLower(fields[0]))
		return m, nil
	}

	m.appendLog(helpStyle.Render("Commands: <action> <word>, select <word>, /continue, /tab, /dict, /export, /cleardict, /clearhistory, /save, /quit"))
	return m, nil
}

func (m *model) appendLog(s string) {
	m.gameLog += s + "\n\n"
	m.viewport.SetContent(m.gameLog)
	m.viewport.GotoBottom()
}

func (m model) View() string {
	var s string

	switch m.state {
	case stateLoading:
		s = "\n  The story continues... please wait.\n"

	case statePlaying:
		logView := m.viewport.View()
		stateView := m.renderState()

		mainView := lipgloss.JoinHorizontal(lipgloss.Top,
			logView,
			stateView,
		)

		help := helpStyle.Render("Act on a word: eat/attack/talk/imitate <word>. Continue the story: /continue. Quit: /quit.")

		s = lipgloss.JoinVertical(lipgloss.Left,
			mainView,
			"\n"+m.textInput.View(),
			"\n"+help,
		)

	case stateError:
		s = fmt.Sprintf("\n  Error: %v\n\nPress Esc to quit.", m.err)
	}

	return "\n" + s + "\n"
}

func (m model) renderState() string {
	c := m.store.Character()
	p := m.store.Progress()

	character := titleStyle.Render("CHARACTER") + "\n"
	character += fmt.Sprintf("%s (Lv %d)\n", c.Name, c.Level)
	character += fmt.Sprintf("HP %d/%d (%.0f%%)\n", c.HP, c.MaxHP, m.store.HPPercent())
	character += fmt.Sprintf("Energy %d/%d (%.0f%%)\n", c.Energy, c.MaxEnergy, m.store.EnergyPercent())
	character += fmt.Sprintf("XP %d/%d (%.0f%%)\n\n", c.Experience, c.MaxExperience, m.store.XPPercent())

	rank := titleStyle.Render("RANK") + "\n"
	rank += fmt.Sprintf("Rank %d, %d words\n", m.store.Rank(), m.store.VocabCount())
	if next := m.store.WordsToNextRank(); next > 0 {
		rank += fmt.Sprintf("%d words to next rank\n", next)
	}
	rank += "\n"

	progress := titleStyle.Render("PROGRESS") + "\n"
	progress += fmt.Sprintf("Words today: %d\n", p.WordsLearnedToday)
	progress += fmt.Sprintf("Actions: %d\n", p.ActionsTaken)
	progress += fmt.Sprintf("Time: %dm%02ds\n", p.TimeSpent/60, p.TimeSpent%60)
	if len(p.Achievements) > 0 {
		progress += "Achievements: " + strings.Join(p.Achievements, ", ") + "\n"
	}
	progress += "\n"

	vocab := titleStyle.Render("VOCABULARY") + "\n"
	if selected := m.store.SelectedWord(); selected != "" {
		vocab += "Selected: " + wordStyle.Render(selected) + "\n"
	}
	if m.store.ActiveTab() == game.TabDummy {
		for _, entry := range m.store.SceneVocabulary() {
			vocab += fmt.Sprintf("- %s (%s) %s\n", entry.Word, entry.POS, entry.Translation)
		}
	} else {
		for _, word := range narrative.ExtractInteractables(m.store.RawGeneratedContent()) {
			vocab += "- " + word + "\n"
		}
	}

	content := character + rank + progress + vocab

	stateWidth := int(float64(m.width) * 0.23)
	return stateStyle.Width(stateWidth).Height(m.viewport.Height).Render(content)
}

func (m model) renderScene(text string) string {
	logWidth := int(float64(m.width) * 0.75)
	if logWidth <= 0 {
		logWidth = 80
	}
	styled := narrative.HighlightWith(text, func(word string) string {
		return wordStyle.Render(word)
	})
	return gameStyle.Width(logWidth).Render(styled)
}

func (m model) renderDictionary() string {
	entries := m.store.DictionaryData()
	if len(entries) == 0 {
		return noticeStyle.Render("Dictionary is empty. Imitate a word to learn it.")
	}
	out := titleStyle.Render("DICTIONARY") + "\n"
	for _, entry := range entries {
		out += fmt.Sprintf("- %s (reviews: %d)\n", entry.Word, entry.ReviewCount)
	}
	return out
}

func (m model) exportDictionary(path string) string {
	f, err := os.Create(path)
	if err != nil {
		return "Export failed: " + err.Error()
	}
	defer f.Close()
	if err := export.WriteDictionaryPDF(f, m.store.Character().Name, m.store.DictionaryData()); err != nil {
		return "Export failed: " + err.Error()
	}
	return "Dictionary exported to " + path
}

func (m model) continueStory() tea.Cmd {
	opening := len(m.store.GameHistory()) == 0
	prompt := m.store.ContextForContinuation()
	return func() tea.Msg {
		raw, err := m.provider.Generate(context.Background(), narrative.SystemPrompt, prompt)
		if err != nil {
			return errMsg{err}
		}
		return storyGeneratedMsg{raw: raw, opening: opening}
	}
}

func Run(store *game.Store, provider narrative.Provider) error {
	p := tea.NewProgram(NewModel(store, provider), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
